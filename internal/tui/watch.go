// Package tui implements the live status view behind "wl status --watch".
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/worklog/internal/model"
	"github.com/Tiliavir/worklog/internal/render"
	"github.com/Tiliavir/worklog/internal/status"
)

// Source is what the watch view reads from and writes to.
type Source interface {
	Status() (status.Snapshot, error)
	CommitStop(offset time.Duration) (model.Record, error)
}

const refreshInterval = time.Second

type keyMap struct {
	Stop key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Stop: key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "stop tracking")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	boxStyle   = lipgloss.NewStyle().Padding(1, 2)
)

// tickMsg triggers a reload of the log.
type tickMsg time.Time

type statusMsg struct {
	snap status.Snapshot
	err  error
}

type stoppedMsg struct {
	rec model.Record
	err error
}

// WatchModel is the bubbletea model of the watch view.
type WatchModel struct {
	src      Source
	snap     status.Snapshot
	loaded   bool
	err      error
	width    int
	target   progress.Model
	overtime progress.Model

	stopped  *model.Record
	quitting bool
}

// NewWatchModel returns a model that polls src once per second.
func NewWatchModel(src Source) WatchModel {
	return WatchModel{
		src:      src,
		target:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		overtime: progress.New(progress.WithGradient("#F59E0B", "#EF4444"), progress.WithWidth(40)),
	}
}

// Init loads the first snapshot and starts the ticker.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m WatchModel) refresh() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		snap, err := src.Status()
		return statusMsg{snap: snap, err: err}
	}
}

func (m WatchModel) stop() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		rec, err := src.CommitStop(0)
		return stoppedMsg{rec: rec, err: err}
	}
}

// Update handles ticks, reloads and key presses.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.quitting {
			return m, nil
		}
		return m, tea.Batch(m.refresh(), tick())

	case statusMsg:
		m.snap, m.err = msg.snap, msg.err
		m.loaded = msg.err == nil
		return m, nil

	case stoppedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		rec := msg.rec
		m.stopped = &rec
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := min(max(msg.Width-8, 10), 60)
		m.target.Width = w
		m.overtime.Width = w
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Stop):
			if m.snap.Tracking {
				return m, m.stop()
			}
		}
	}
	return m, nil
}

// View renders the current snapshot with progress bars.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("worklog"))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case !m.loaded:
		b.WriteString("Loading...\n")
	default:
		_ = render.StatusText(&b, m.snap)
		b.WriteString("\n")
		b.WriteString(m.target.ViewAs(status.Clamp(m.snap.PercentElapsed) / 100))
		b.WriteString("\n")
		if m.snap.Overtime > 0 {
			b.WriteString(m.overtime.ViewAs(status.Clamp(m.snap.PercentOvertimeBuffer) / 100))
			b.WriteString("\n")
		}
	}

	help := fmt.Sprintf("%s • %s", keys.Quit.Help().Key+" "+keys.Quit.Help().Desc, keys.Stop.Help().Key+" "+keys.Stop.Help().Desc)
	if !m.snap.Tracking {
		help = keys.Quit.Help().Key + " " + keys.Quit.Help().Desc
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))
	return boxStyle.Render(b.String())
}

// Stopped returns the stop record committed from the view, if any.
func (m WatchModel) Stopped() *model.Record {
	return m.stopped
}

// Run starts the watch view and blocks until the user quits. It returns the
// stop record when the session was stopped from the view.
func Run(src Source) (*model.Record, error) {
	final, err := tea.NewProgram(NewWatchModel(src), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(WatchModel); ok {
		return m.Stopped(), nil
	}
	return nil, nil
}
