package archive

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	archivehttp "github.com/handiism/archive-downloader/internal/http"
)

type stubFetcher struct {
	page  string
	err   error
	calls int
}

func (s *stubFetcher) GetString(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.page, s.err
}

func TestDiscoverer_ExtractLinks(t *testing.T) {
	tests := []struct {
		name string
		base string
		html string
		want []string
	}{
		{
			name: "space encoded and other extensions dropped",
			base: "http://x.test/videos",
			html: `<html><body><a href="clip one.mp4">One</a><a href="notes.txt">Notes</a></body></html>`,
			want: []string{"http://x.test/videos/clip%20one.mp4"},
		},
		{
			name: "already encoded href is encoded once",
			base: "http://x.test/videos",
			html: `<a href="clip%20one.mp4">One</a>`,
			want: []string{"http://x.test/videos/clip%20one.mp4"},
		},
		{
			name: "document order and duplicates preserved",
			base: "http://x.test/videos",
			html: `<a href="b.mp4"></a><a href="a.mp4"></a><a href="b.mp4"></a>`,
			want: []string{
				"http://x.test/videos/b.mp4",
				"http://x.test/videos/a.mp4",
				"http://x.test/videos/b.mp4",
			},
		},
		{
			name: "suffix match is case-sensitive",
			base: "http://x.test/videos",
			html: `<a href="LOUD.MP4"></a><a href="quiet.mp4"></a>`,
			want: []string{"http://x.test/videos/quiet.mp4"},
		},
		{
			name: "query string defeats the suffix",
			base: "http://x.test/videos",
			html: `<a href="clip.mp4?dl=1"></a>`,
			want: nil,
		},
		{
			name: "non-anchor elements ignored",
			base: "http://x.test/videos",
			html: `<video src="v.mp4"></video><link href="style.mp4"><source src="s.mp4"><a>no href</a>`,
			want: nil,
		},
		{
			name: "html entities decoded before matching",
			base: "http://x.test/videos",
			html: `<a href="tom&amp;jerry.mp4"></a>`,
			want: []string{"http://x.test/videos/tom%26jerry.mp4"},
		},
		{
			name: "root-relative and subdirectory paths",
			base: "http://x.test/videos",
			html: `<a href="/other/a.mp4"></a><a href="sub/b.mp4"></a><a href="../c.mp4"></a>`,
			want: []string{
				"http://x.test/other/a.mp4",
				"http://x.test/videos/sub/b.mp4",
				"http://x.test/c.mp4",
			},
		},
		{
			name: "reserved characters encoded",
			base: "http://x.test/videos",
			html: `<a href="a+b (1).mp4"></a>`,
			want: []string{"http://x.test/videos/a%2Bb%20%281%29.mp4"},
		},
		{
			name: "self closing anchor",
			base: "http://x.test/videos",
			html: `<a href="a.mp4"/>`,
			want: []string{"http://x.test/videos/a.mp4"},
		},
		{
			name: "malformed markup still scanned",
			base: "http://x.test/videos",
			html: `<div><a href="a.mp4">unclosed<p><a href='b.mp4'>`,
			want: []string{"http://x.test/videos/a.mp4", "http://x.test/videos/b.mp4"},
		},
		{
			name: "no links",
			base: "http://x.test/videos",
			html: `<html><body>Nothing here</body></html>`,
			want: nil,
		},
	}

	d := NewDiscoverer(&stubFetcher{}, ".mp4")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.ExtractLinks(tt.base, tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverer_ExtractLinks_OtherExtension(t *testing.T) {
	d := NewDiscoverer(&stubFetcher{}, ".webm")

	got, err := d.ExtractLinks("http://x.test", `<a href="a.mp4"></a><a href="b.webm"></a>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://x.test/b.webm"}, got)
}

func TestDiscoverer_ExtractLinks_InvalidBase(t *testing.T) {
	d := NewDiscoverer(&stubFetcher{}, ".mp4")

	_, err := d.ExtractLinks("http://[::1", `<a href="a.mp4"></a>`)
	assert.Error(t, err)
}

func TestDiscoverer_FindLinks_FetchError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	d := NewDiscoverer(fetcher, ".mp4")

	links, err := d.FindLinks(context.Background(), "http://x.test/videos")
	assert.Error(t, err)
	assert.Empty(t, links)
	assert.Equal(t, 1, fetcher.calls)
}

func TestDiscoverer_FindLinks_HTTP(t *testing.T) {
	var requests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/videos", func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`<a href="clip one.mp4">x</a><a href="notes.txt">y</a>`))
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := archivehttp.NewClient(archivehttp.Options{
		Header:       http.Header{"User-Agent": {"test"}},
		PageTimeout:  time.Second,
		StallTimeout: time.Second,
	})
	d := NewDiscoverer(client, ".mp4")

	links, err := d.FindLinks(context.Background(), server.URL+"/videos")
	require.NoError(t, err)
	assert.Equal(t, []string{server.URL + "/videos/clip%20one.mp4"}, links)
	assert.Equal(t, int32(1), requests.Load())

	links, err = d.FindLinks(context.Background(), server.URL+"/gone")
	assert.Error(t, err)
	assert.Empty(t, links)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base string
		href string
		want string
	}{
		{"http://x.test/videos", "clip one.mp4", "http://x.test/videos/clip%20one.mp4"},
		{"http://x.test/videos/", "a.mp4", "http://x.test/videos//a.mp4"},
		{"http://x.test", "a.mp4", "http://x.test/a.mp4"},
		{"https://x.test/v", "caf%C3%A9.mp4", "https://x.test/v/caf%C3%A9.mp4"},
	}

	for _, tt := range tests {
		got, err := Resolve(tt.base, tt.href)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Resolve(%q, %q)", tt.base, tt.href)
	}
}
