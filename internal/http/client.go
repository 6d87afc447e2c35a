package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	ioutils "github.com/handiism/archive-downloader/internal/io"
)

// ErrForbidden is returned when the server answers 403. Callers treat it as
// final and do not retry.
var ErrForbidden = errors.New("http: access forbidden")

// ErrStalled is returned when a response body delivers no data for longer
// than the stall timeout.
var ErrStalled = errors.New("http: read timed out")

// StatusError reports an error status other than 403.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s for url: %s", e.Code, e.Status, e.URL)
}

// Options configures the HTTP client.
type Options struct {
	// Header is sent with every request.
	Header http.Header

	// PageTimeout bounds a whole page fetch.
	PageTimeout time.Duration

	// StallTimeout bounds connecting, waiting for response headers and
	// each gap between body reads. It is not a limit on total download time.
	StallTimeout time.Duration

	// ChunkSize is the block size used when streaming to disk.
	ChunkSize int
}

// Client wraps HTTP operations with a fixed header set.
//
// Client provides:
//   - The same headers (User-Agent, Referer) on every request
//   - Page fetches bounded by a total timeout
//   - Streamed downloads bounded by a stall timeout
//
// Example usage:
//
//	client := NewClient(Options{Header: settings.Headers(), ...})
//
//	// Fetch HTML content
//	page, err := client.GetString(ctx, base)
//
//	// Download file with progress
//	err = client.DownloadFile(ctx, link, "/videos/clip.mp4", func(written, total int64) {
//	    if total > 0 {
//	        fmt.Printf("%.1f%%\r", float64(written)/float64(total)*100)
//	    }
//	})
type Client struct {
	httpClient *http.Client
	opts       Options
}

// NewClient creates a new HTTP client. Redirects are followed.
func NewClient(opts Options) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   opts.StallTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = opts.StallTimeout
	transport.ResponseHeaderTimeout = opts.StallTimeout

	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 8192
	}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		opts:       opts,
	}
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header),
	// or -1 when unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// GetString performs a GET request and returns the response body as a string.
//
// The whole request, body included, must finish within PageTimeout.
//
// Returns an error if:
//   - The request fails
//   - The response status is 400 or above
//   - Reading the body fails
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	if c.opts.PageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.PageTimeout)
		defer cancel()
	}

	resp, err := c.do(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadFile downloads a file to the specified path with optional progress callback.
//
// The status is checked before the file is touched. On success the file is
// created (or truncated if it exists) and the body is streamed to it in
// ChunkSize blocks; onProgress is called after every block with the bytes
// written so far and the Content-Length (-1 if not sent).
//
// Returns ErrForbidden for a 403, *StatusError for any other status of 400
// or above, and ErrStalled when the body stops delivering data.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resp, err := c.do(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	file, err := ioutils.CreateFile(destPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	body := newStallReader(resp.Body, c.opts.StallTimeout, cancel)
	defer body.stop()

	buf := make([]byte, c.opts.ChunkSize)
	// Hide any WriterTo/ReaderFrom so every block goes through buf.
	_, err = io.CopyBuffer(struct{ io.Writer }{writer}, struct{ io.Reader }{body}, buf)
	if err != nil && body.stalled() {
		return fmt.Errorf("%w after %s", ErrStalled, c.opts.StallTimeout)
	}
	if err != nil {
		return err
	}
	return file.Close()
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.opts.Header != nil {
		req.Header = c.opts.Header.Clone()
	}

	return c.httpClient.Do(req)
}

// checkStatus returns an appropriate error for error status codes.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode >= 400:
		return &StatusError{
			URL:    resp.Request.URL.String(),
			Code:   resp.StatusCode,
			Status: http.StatusText(resp.StatusCode),
		}
	default:
		return nil
	}
}

// stallReader cancels the request when no Read completes within timeout.
type stallReader struct {
	r       io.Reader
	timeout time.Duration
	timer   *time.Timer

	mu    sync.Mutex
	fired bool
}

func newStallReader(r io.Reader, timeout time.Duration, cancel context.CancelFunc) *stallReader {
	s := &stallReader{r: r, timeout: timeout}
	if timeout > 0 {
		s.timer = time.AfterFunc(timeout, func() {
			s.mu.Lock()
			s.fired = true
			s.mu.Unlock()
			cancel()
		})
	}
	return s
}

func (s *stallReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if s.timer != nil && n > 0 {
		s.timer.Reset(s.timeout)
	}
	return n, err
}

func (s *stallReader) stalled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

func (s *stallReader) stop() {
	if s.timer != nil {
		s.timer.Stop()
	}
}
