// Package http provides the HTTP client used for page fetches and file
// downloads.
//
// The Client in this package handles:
//   - A fixed User-Agent and Referer header pair
//   - Page fetches with a total timeout
//   - Streamed file downloads with a stall timeout and progress tracking
//   - Classification of 403 responses as ErrForbidden
//
// # Basic Usage
//
//	client := http.NewClient(http.Options{
//	    Header:       settings.Headers(),
//	    PageTimeout:  15 * time.Second,
//	    StallTimeout: 20 * time.Second,
//	    ChunkSize:    8192,
//	})
//
//	// Fetch HTML page
//	page, err := client.GetString(ctx, settings.BaseURL)
//
//	// Download file with progress callback
//	err = client.DownloadFile(ctx, link, "/videos/clip.mp4", func(written, total int64) {
//	    fmt.Printf("%d/%d\n", written, total)
//	})
//	if errors.Is(err, http.ErrForbidden) {
//	    // do not retry
//	}
package http
