package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{name: "simple", link: "http://x.test/videos/clip.mp4", want: "clip.mp4"},
		{name: "encoded space", link: "http://x.test/videos/clip%20one.mp4", want: "clip one.mp4"},
		{name: "encoded slash splits", link: "http://x.test/videos/a%2Fb.mp4", want: "b.mp4"},
		{name: "query kept", link: "http://x.test/get.mp4?id=1", want: "get.mp4?id=1"},
		{name: "trailing slash", link: "http://x.test/videos/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.link))
		})
	}
}

func TestNewDownloadTask(t *testing.T) {
	folder := t.TempDir()
	task := NewDownloadTask("http://x.test/videos/clip%20one.mp4", folder)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "http://x.test/videos/clip%20one.mp4", task.URL)
	assert.Equal(t, filepath.Join(folder, "clip one.mp4"), task.Path)
	assert.Equal(t, "clip one.mp4", task.Name())

	other := NewDownloadTask("http://x.test/videos/clip%20one.mp4", folder)
	assert.NotEqual(t, task.ID, other.ID, "tasks for duplicate links get distinct ids")
	assert.Equal(t, task.Path, other.Path)
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome Outcome
		ok      bool
		str     string
	}{
		{OutcomeSaved, true, "saved"},
		{OutcomeSkipped, true, "skipped"},
		{OutcomeForbidden, false, "forbidden"},
		{OutcomeFailed, false, "failed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.outcome.OK(), tt.str)
		assert.Equal(t, tt.str, tt.outcome.String())
	}
}
