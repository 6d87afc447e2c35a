package model

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/handiism/archive-downloader/internal/urlcodec"
)

// VideoLink is an absolute, percent-encoded URL of a remote file.
//
// Links carry no identity beyond their string value; the same link may
// appear more than once in a discovery result.
type VideoLink = string

// DownloadTask pairs a link with the local file it is written to.
//
// A task is created just before its download is attempted and has no
// lifecycle beyond that attempt.
type DownloadTask struct {
	// ID correlates log lines for this task. It is not persisted.
	ID string

	// URL is the link being downloaded.
	URL VideoLink

	// Path is the destination file: the basename of the decoded URL
	// joined with the destination folder.
	Path string
}

// NewDownloadTask creates a task for link inside folder.
//
// Example:
//
//	task := NewDownloadTask("http://x.test/videos/clip%20one.mp4", "/data")
//	// task.Path = "/data/clip one.mp4"
func NewDownloadTask(link VideoLink, folder string) *DownloadTask {
	return &DownloadTask{
		ID:   uuid.NewString(),
		URL:  link,
		Path: filepath.Join(folder, FileName(link)),
	}
}

// Name returns the file name the task writes to.
func (t *DownloadTask) Name() string {
	return filepath.Base(t.Path)
}

// FileName returns the text after the last '/' of the decoded link.
//
// The whole URL is decoded, so a query string stays part of the name. A link
// ending in '/' yields an empty name.
func FileName(link VideoLink) string {
	decoded := urlcodec.Unquote(link)
	return decoded[strings.LastIndex(decoded, "/")+1:]
}
