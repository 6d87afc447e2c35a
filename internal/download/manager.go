package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/archive-downloader/internal/archive"
	"github.com/handiism/archive-downloader/internal/config"
	"github.com/handiism/archive-downloader/internal/http"
	ioutils "github.com/handiism/archive-downloader/internal/io"
	"github.com/handiism/archive-downloader/internal/logger"
	"github.com/handiism/archive-downloader/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess

	// LevelProgress events replace the previous progress line instead of
	// adding a new one.
	LevelProgress
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// Task is set for events about a single download.
	Task *model.DownloadTask

	// Percent and FreeBytes are set on LevelProgress events.
	Percent   float64
	FreeBytes uint64
}

// Summary counts task outcomes for one run.
type Summary struct {
	Found     int
	Saved     int
	Skipped   int
	Forbidden int
	Failed    int
}

// Done returns the number of tasks that have finished, whatever the outcome.
func (s Summary) Done() int {
	return s.Saved + s.Skipped + s.Forbidden + s.Failed
}

// Manager discovers links on one page and downloads them.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	discoverer *archive.Discoverer
	freeSpace  func(path string) (uint64, error)

	found     atomic.Int32
	saved     atomic.Int32
	skipped   atomic.Int32
	forbidden atomic.Int32
	failed    atomic.Int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
//
// onProgress may be called from several goroutines at once when more than
// one worker is configured; it must be safe for concurrent use.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	client := http.NewClient(http.Options{
		Header:       settings.Headers(),
		PageTimeout:  settings.PageTimeout,
		StallTimeout: settings.DownloadTimeout,
		ChunkSize:    settings.ChunkSize,
	})

	return &Manager{
		settings:   settings,
		httpClient: client,
		discoverer: archive.NewDiscoverer(client, settings.Extension),
		freeSpace:  ioutils.FreeSpace,
		onProgress: onProgress,
	}
}

// Run downloads every matching link on the configured page.
//
// The destination folder is created first; failing to create it is the only
// error besides cancellation. A page that cannot be fetched or has no links
// ends the run early with an empty summary. Individual download failures
// are reported through events and counted in the summary, never returned.
func (m *Manager) Run(ctx context.Context) (Summary, error) {
	if err := ioutils.EnsureDir(m.settings.Folder); err != nil {
		return Summary{}, fmt.Errorf("could not create folder %s: %w", m.settings.Folder, err)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching video links from %s...", m.settings.BaseURL), Level: LevelInfo})

	links := m.discover(ctx)
	if len(links) == 0 {
		return m.GetProgress(), ctx.Err()
	}

	m.found.Store(int32(len(links)))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d video(s). Downloading...", len(links)), Level: LevelInfo})

	if m.settings.Parallel() {
		var g errgroup.Group
		g.SetLimit(m.settings.Threads)

		for _, link := range links {
			if ctx.Err() != nil {
				break
			}
			link := link
			g.Go(func() error {
				m.downloadVideo(ctx, link)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, link := range links {
			if ctx.Err() != nil {
				break
			}
			m.downloadVideo(ctx, link)
		}
	}

	if err := ctx.Err(); err != nil {
		return m.GetProgress(), err
	}

	m.progress(ProgressEvent{Message: "All downloads complete!", Level: LevelSuccess})
	return m.GetProgress(), nil
}

// GetProgress returns the outcome counts so far.
func (m *Manager) GetProgress() Summary {
	return Summary{
		Found:     int(m.found.Load()),
		Saved:     int(m.saved.Load()),
		Skipped:   int(m.skipped.Load()),
		Forbidden: int(m.forbidden.Load()),
		Failed:    int(m.failed.Load()),
	}
}

func (m *Manager) discover(ctx context.Context) []model.VideoLink {
	links, err := m.discoverer.FindLinks(ctx, m.settings.BaseURL)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error accessing %s: %v", m.settings.BaseURL, err), Level: LevelError})
		return nil
	}

	if len(links) == 0 {
		ext := strings.ToUpper(strings.TrimPrefix(m.settings.Extension, "."))
		m.progress(ProgressEvent{Message: fmt.Sprintf("No %s files found.", ext), Level: LevelWarning})
	}
	return links
}

// downloadVideo runs one task: skip when the target exists, otherwise
// download it.
func (m *Manager) downloadVideo(ctx context.Context, link model.VideoLink) model.Outcome {
	task := model.NewDownloadTask(link, m.settings.Folder)

	if ioutils.Exists(task.Path) {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s, already downloaded.", task.Path), Level: LevelInfo, Task: task})
		m.record(model.OutcomeSkipped)
		return model.OutcomeSkipped
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading %s...", task.URL), Level: LevelInfo, Task: task})
	outcome := m.DownloadWithRetries(ctx, task)
	m.record(outcome)
	return outcome
}

// DownloadWithRetries downloads task.URL to task.Path.
//
// Each attempt streams the body straight into the destination file,
// overwriting it. A 403 ends the task at once. Any other failure is retried
// after a fixed delay until the retry budget is spent.
func (m *Manager) DownloadWithRetries(ctx context.Context, task *model.DownloadTask) model.Outcome {
	retries := m.settings.Retries
	fields := logrus.Fields{"task": task.ID, "url": task.URL}

	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 && !m.waitForRetry(ctx) {
			break
		}

		logger.Debug("download attempt", fields, logrus.Fields{"attempt": attempt + 1})
		err := m.httpClient.DownloadFile(ctx, task.URL, task.Path, m.reportProgress(task))
		if err == nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Saved to %s", task.Path), Level: LevelSuccess, Task: task})
			return model.OutcomeSaved
		}

		if errors.Is(err, http.ErrForbidden) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Access forbidden for %s. Skipping...", task.URL), Level: LevelWarning, Task: task})
			return model.OutcomeForbidden
		}

		if ctx.Err() != nil {
			break
		}

		logger.Debug("download attempt failed", fields, logrus.Fields{"attempt": attempt + 1, "error": err})
		m.progress(ProgressEvent{Message: fmt.Sprintf("Attempt %d failed: %v", attempt+1, err), Level: LevelWarning, Task: task})
	}

	if ctx.Err() != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cancelled %s", task.URL), Level: LevelError, Task: task})
		return model.OutcomeFailed
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Giving up on %s after %d attempts.", task.URL, retries), Level: LevelError, Task: task})
	return model.OutcomeFailed
}

// reportProgress returns the per-chunk callback for task. Nothing is
// reported when the server did not send a Content-Length.
func (m *Manager) reportProgress(task *model.DownloadTask) func(written, total int64) {
	return func(written, total int64) {
		if total <= 0 {
			return
		}

		percent := float64(written) / float64(total) * 100
		free, err := m.freeSpace(m.settings.Folder)
		if err != nil {
			logger.Debug("free space lookup failed", logrus.Fields{"folder": m.settings.Folder, "error": err})
		}

		m.progress(ProgressEvent{
			Message:   fmt.Sprintf("Downloading %s: %.2f%% (%s MB free)", task.Name(), percent, ioutils.FormatMB(free)),
			Level:     LevelProgress,
			Task:      task,
			Percent:   percent,
			FreeBytes: free,
		})
	}
}

// waitForRetry sleeps for the retry delay. It returns false if ctx ends first.
func (m *Manager) waitForRetry(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(m.settings.RetryDelay):
		return true
	}
}

func (m *Manager) record(outcome model.Outcome) {
	switch outcome {
	case model.OutcomeSaved:
		m.saved.Add(1)
	case model.OutcomeSkipped:
		m.skipped.Add(1)
	case model.OutcomeForbidden:
		m.forbidden.Add(1)
	default:
		m.failed.Add(1)
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
