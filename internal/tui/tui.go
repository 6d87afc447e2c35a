// Package tui provides a Bubble Tea terminal user interface for archive-downloader.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/archive-downloader/internal/config"
	"github.com/handiism/archive-downloader/internal/download"
	ioutils "github.com/handiism/archive-downloader/internal/io"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// maxLogs is how many log lines stay on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateDiscovering State = iota
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Runner is the part of download.Manager the UI drives.
type Runner interface {
	Run(ctx context.Context) (download.Summary, error)
	GetProgress() download.Summary
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	spinner  spinner.Model
	overall  progress.Model
	file     progress.Model
	settings *config.Settings
	verbose  bool
	logs     []LogEntry
	err      error

	ctx    context.Context
	cancel context.CancelFunc
	runner Runner

	summary     download.Summary
	currentFile string
	filePercent float64
	freeBytes   uint64
}

// NewModel creates a new TUI model for one run.
func NewModel(ctx context.Context, settings *config.Settings, runner Runner, verbose bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	overall := progress.New(progress.WithDefaultGradient())
	overall.Width = 50

	file := progress.New(progress.WithSolidFill("#4ECDC4"))
	file.Width = 50

	ctx, cancel := context.WithCancel(ctx)

	return Model{
		state:    StateDiscovering,
		spinner:  sp,
		overall:  overall,
		file:     file,
		settings: settings,
		verbose:  verbose,
		ctx:      ctx,
		cancel:   cancel,
		runner:   runner,
	}
}

// Init starts the run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRun(), m.tickProgress())
}

// Message types
type (
	// ProgressMsg carries one event from the download manager.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// RunDoneMsg is sent when the run ends.
	RunDoneMsg struct {
		Summary download.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := min(max(msg.Width-20, 20), 80)
		m.overall.Width = width
		m.file.Width = width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.state == StateDiscovering || m.state == StateDownloading {
				m.cancel()
				return m, nil
			}
			return m, tea.Quit

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m = m.applyEvent(msg.Event)

	case TickMsg:
		if m.state == StateDiscovering || m.state == StateDownloading {
			m.summary = m.runner.GetProgress()
			if m.summary.Found > 0 {
				m.state = StateDownloading
			}
			cmds = append(cmds, m.tickProgress())
		}

	case RunDoneMsg:
		m.summary = msg.Summary
		m.err = msg.Err
		if msg.Err != nil {
			m.state = StateError
		} else {
			m.state = StateComplete
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) applyEvent(event download.ProgressEvent) Model {
	if event.Level == download.LevelProgress {
		if event.Task != nil {
			m.currentFile = event.Task.Name()
		}
		m.filePercent = event.Percent / 100
		m.freeBytes = event.FreeBytes
		return m
	}

	if event.Level == download.LevelVerbose && !m.verbose {
		return m
	}

	m.logs = append(m.logs, LogEntry{
		Message: event.Message,
		Level:   event.Level,
	})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
	return m
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// startRun runs the download manager in the background.
func (m Model) startRun() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.runner.Run(m.ctx)
		return RunDoneMsg{Summary: summary, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Archive Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s → %s", m.settings.BaseURL, m.settings.Folder)))
	b.WriteString("\n\n")

	switch m.state {
	case StateDiscovering:
		b.WriteString(m.viewDiscovering())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewDiscovering() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching video links..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	var percent float64
	if m.summary.Found > 0 {
		percent = float64(m.summary.Done()) / float64(m.summary.Found)
	}
	b.WriteString(m.overall.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Saved: %d | Skipped: %d | Failed: %d",
		m.summary.Done(),
		m.summary.Found,
		m.summary.Saved,
		m.summary.Skipped,
		m.summary.Failed+m.summary.Forbidden,
	)))
	b.WriteString("\n\n")

	if m.currentFile != "" {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render(m.currentFile))
		b.WriteString("\n")
		b.WriteString(m.file.ViewAs(m.filePercent))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s MB free", ioutils.FormatMB(m.freeBytes))))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	return boxStyle.Render(fmt.Sprintf(
		"All downloads complete!\n\n"+
			"Found:     %d\n"+
			"Saved:     %d\n"+
			"Skipped:   %d\n"+
			"Forbidden: %d\n"+
			"Failed:    %d",
		m.summary.Found,
		m.summary.Saved,
		m.summary.Skipped,
		m.summary.Forbidden,
		m.summary.Failed,
	)) + "\n\n" + m.renderLogs()
}

func (m Model) viewError() string {
	var b strings.Builder

	if errors.Is(m.err, context.Canceled) {
		b.WriteString(warningStyle.Render("Download cancelled."))
	} else {
		b.WriteString(errorStyle.Render("Error occurred:"))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateDiscovering, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "q: quit"
	}
	return ""
}

// Run starts the TUI application and blocks until the user quits.
func Run(ctx context.Context, settings *config.Settings, verbose bool) (download.Summary, error) {
	var p *tea.Program
	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		p.Send(ProgressMsg{Event: event})
	})

	model := NewModel(ctx, settings, manager, verbose)
	defer model.cancel()

	p = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return manager.GetProgress(), ctx.Err()
		}
		return manager.GetProgress(), err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.summary, fm.err
	}
	return manager.GetProgress(), nil
}
