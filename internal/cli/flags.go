// Package cli holds the command-line wiring shared by the archive-dl and
// archive-tui commands.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/handiism/archive-downloader/internal/config"
	"github.com/handiism/archive-downloader/internal/logger"
)

// Exit codes returned by the commands.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitCancelled = 130
)

// Options are the values parsed from the command line.
type Options struct {
	Settings *config.Settings

	Verbose  bool
	LogLevel string
	NoColor  bool
}

// BindFlags registers the download flags on cmd and returns the options
// they fill in. --url and --folder are required.
func BindFlags(cmd *cobra.Command) *Options {
	opts := &Options{Settings: config.DefaultSettings()}
	s := opts.Settings

	flags := cmd.Flags()
	flags.StringVarP(&s.BaseURL, "url", "u", "", "page listing the videos")
	flags.StringVarP(&s.Folder, "folder", "f", "", "folder to save videos in")
	flags.IntVarP(&s.Threads, "threads", "t", s.Threads, "number of parallel downloads")
	flags.IntVar(&s.Retries, "retries", s.Retries, "attempts per video")
	flags.StringVar(&s.Extension, "ext", s.Extension, "file extension to download")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("folder")

	return opts
}

// Prepare sets up logging and colors and validates the settings.
func (o *Options) Prepare() (*config.Settings, error) {
	logger.InitLogger(o.LogLevel, o.NoColor)
	if o.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if err := o.Settings.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("settings", logrus.Fields{
		"url":     o.Settings.BaseURL,
		"folder":  o.Settings.Folder,
		"threads": o.Settings.Threads,
		"retries": o.Settings.Retries,
	})
	return o.Settings, nil
}

// ExitCode maps the error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCancelled
	default:
		return ExitError
	}
}

// Fail prints err the way every command reports a fatal error.
func Fail(cmd *cobra.Command, err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Download cancelled.")
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
