// Package console prints download events to a terminal.
//
// Workers report through one Console, which owns the output: events are
// queued on a channel and written by a single goroutine, so lines from
// concurrent downloads never interleave mid-line.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/archive-downloader/internal/download"
)

// Styles for console output
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

// levelPlain marks lines written by Println, which carry no prefix.
const levelPlain download.ProgressLevel = -1

// Console serialises events onto a writer.
type Console struct {
	out     io.Writer
	verbose bool

	events chan download.ProgressEvent
	done   chan struct{}

	closeOnce sync.Once

	// progressWidth is the length of the progress line currently on screen,
	// 0 if none. Only the writer goroutine touches it.
	progressWidth int
}

// New starts a Console writing to out. Verbose events are dropped unless
// verbose is set.
func New(out io.Writer, verbose bool) *Console {
	c := &Console{
		out:     out,
		verbose: verbose,
		events:  make(chan download.ProgressEvent, 256),
		done:    make(chan struct{}),
	}
	go c.loop()
	return c
}

// Handle queues an event. It is safe for concurrent use and is meant to be
// passed to download.NewManager. Handle must not be called after Close.
func (c *Console) Handle(event download.ProgressEvent) {
	c.events <- event
}

// Println writes a plain line through the same queue.
func (c *Console) Println(message string) {
	c.Handle(download.ProgressEvent{Message: message, Level: levelPlain})
}

// Close flushes queued events and stops the writer goroutine.
func (c *Console) Close() {
	c.closeOnce.Do(func() {
		close(c.events)
		<-c.done
	})
}

func (c *Console) loop() {
	defer close(c.done)
	for event := range c.events {
		c.write(event)
	}
	c.endProgressLine()
}

func (c *Console) write(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !c.verbose {
		return
	}

	if event.Level == download.LevelProgress {
		line := event.Message
		pad := ""
		if n := c.progressWidth - len(line); n > 0 {
			pad = strings.Repeat(" ", n)
		}
		fmt.Fprint(c.out, "\r"+line+pad)
		c.progressWidth = len(line)
		return
	}

	c.endProgressLine()
	fmt.Fprintln(c.out, Render(event))
}

func (c *Console) endProgressLine() {
	if c.progressWidth > 0 {
		fmt.Fprintln(c.out)
		c.progressWidth = 0
	}
}

// Render formats an event as one styled line with a level prefix.
func Render(event download.ProgressEvent) string {
	switch event.Level {
	case download.LevelError:
		return errorStyle.Render("✗ " + event.Message)
	case download.LevelWarning:
		return warningStyle.Render("! " + event.Message)
	case download.LevelSuccess:
		return successStyle.Render("✓ " + event.Message)
	case download.LevelInfo:
		return infoStyle.Render("› " + event.Message)
	case download.LevelVerbose:
		return dimStyle.Render("  " + event.Message)
	default:
		return event.Message
	}
}
