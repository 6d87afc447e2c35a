// Package download provides the download orchestration logic for
// fetching every video linked from one archive page.
//
// # Manager
//
// The Manager coordinates the entire download process:
//
//  1. Create the destination folder
//  2. Discover links on the page
//  3. Skip links whose file already exists locally
//  4. Download the rest, one by one or on a worker pool
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	summary, err := manager.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d saved, %d failed\n", summary.Saved, summary.Failed)
//
// # Concurrency
//
// With settings.Threads greater than 1, tasks run on an errgroup limited to
// that many goroutines and may finish in any order. Otherwise they run in
// discovery order on the calling goroutine.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success, Progress
//	    ...
//	}
//
// The callback is shared by all workers. Use console.Console (or a Bubble
// Tea program) to serialise output.
//
// # Retry Logic
//
// A failed download is retried after settings.RetryDelay, up to
// settings.Retries attempts in total. A 403 response is never retried.
// Nothing is resumed: every attempt starts again from the first byte.
package download
