package config

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultUserAgent is sent with every request. Some archive hosts refuse
// clients that do not look like a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Settings holds all configuration options for one run.
type Settings struct {
	// Source and destination
	BaseURL string `validate:"required,url"`
	Folder  string `validate:"required"`

	// Link discovery
	Extension   string        `validate:"required"`
	PageTimeout time.Duration `validate:"gt=0"`

	// Download settings
	Threads         int
	Retries         int           `validate:"min=1"`
	RetryDelay      time.Duration `validate:"gte=0"`
	DownloadTimeout time.Duration `validate:"gt=0"`
	ChunkSize       int           `validate:"min=1"`

	UserAgent string `validate:"required"`
}

// DefaultSettings returns settings with default values. BaseURL and Folder
// are left empty and must be supplied by the caller.
func DefaultSettings() *Settings {
	return &Settings{
		Extension:   ".mp4",
		PageTimeout: 15 * time.Second,

		Threads:         1,
		Retries:         3,
		RetryDelay:      2 * time.Second,
		DownloadTimeout: 20 * time.Second,
		ChunkSize:       8192,

		UserAgent: DefaultUserAgent,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings for missing or out-of-range values.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Headers returns the header pair sent with every request: the fixed
// User-Agent and the base page as Referer.
func (s *Settings) Headers() http.Header {
	h := make(http.Header, 2)
	h.Set("User-Agent", s.UserAgent)
	h.Set("Referer", s.BaseURL)
	return h
}

// Parallel reports whether downloads should be dispatched to a worker pool.
func (s *Settings) Parallel() bool {
	return s.Threads > 1
}
