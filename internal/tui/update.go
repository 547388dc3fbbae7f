package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dcoutinho/tempora/internal/engine"
	"github.com/dcoutinho/tempora/internal/logger"
	"github.com/dcoutinho/tempora/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		// A tick from a run that has since stopped is stale.
		if msg.seq != m.tickSeq {
			return m, nil
		}
		if _, running := m.trk.Running(); !running {
			return m, nil
		}
		return m, tickCmd(m.tickSeq)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if user := m.currentUser(); user != nil && m.cursor < len(user.Tasks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Period):
			m.period = nextPeriod(m.period)
		case key.Matches(msg, m.keys.Toggle):
			return m.toggle()
		}
	}

	return m, nil
}

// quit stops any running stopwatch so its time is accumulated before the
// program exits. A failure here must survive the exit: the final view is
// blank, so the error is kept for the command layer to report.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if name, running := m.trk.Running(); running {
		if elapsed, err := m.trk.Stop(name); err != nil {
			logger.Error("Failed to save tracked time on quit",
				"task", name, "elapsed_seconds", elapsed, "error", err)
			m.finalErr = fmt.Errorf("%d tracked seconds were not saved: %w", elapsed, err)
		}
	}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) toggle() (tea.Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	m.errMsg = ""

	if m.trk.IsRunning(task.Name) {
		m.tickSeq++
		if _, err := m.trk.Stop(task.Name); err != nil {
			m.errMsg = stopError(err)
		}
		return m, nil
	}

	if err := m.trk.Start(task.Name); err != nil {
		switch {
		case errors.Is(err, tracker.ErrConflict):
			m.errMsg = "another task is already running"
		case errors.Is(err, engine.ErrTaskNotFound):
			m.errMsg = "task not found"
		default:
			m.errMsg = err.Error()
		}
		return m, nil
	}

	m.tickSeq++
	return m, tickCmd(m.tickSeq)
}

func stopError(err error) string {
	if errors.Is(err, engine.ErrPersistenceFailed) {
		return "failed to save tracked time"
	}
	return err.Error()
}
