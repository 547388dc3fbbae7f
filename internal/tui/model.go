// Package tui renders the interactive tracking dashboard: one stopwatch per
// task, a single task active at a time, and a report panel for the selected
// task.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/models"
	"github.com/dcoutinho/tempora/internal/tracker"
)

// tickMsg drives the live elapsed display while a stopwatch runs. The seq
// field ties the message to the run that scheduled it so ticks from a
// stopped run are discarded.
type tickMsg struct {
	seq int
}

func tickCmd(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

type Model struct {
	trk      *tracker.Tracker
	doc      *models.Document
	userName string
	keys     KeyMap
	help     help.Model
	now      func() time.Time
	period   constants.Period

	cursor   int
	tickSeq  int
	errMsg   string
	finalErr error
	quitting bool
	width    int
	height   int
}

func NewModel(trk *tracker.Tracker, doc *models.Document, userName string) Model {
	return Model{
		trk:      trk,
		doc:      doc,
		userName: userName,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		now:      time.Now,
		period:   constants.PeriodWeekly,
	}
}

// WithClock overrides the report reference time. Test hook.
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Err reports a failure that happened while shutting the dashboard down,
// such as a persistence failure when stopping the running stopwatch on quit.
// The command layer inspects it after the program exits.
func (m Model) Err() error {
	return m.finalErr
}

// SelectedTaskName returns the name of the task under the cursor, "" when the
// user has none.
func (m Model) SelectedTaskName() string {
	if task := m.selectedTask(); task != nil {
		return task.Name
	}
	return ""
}

// currentUser re-resolves the user on every access because a successful
// accumulation replaces the document's user slice.
func (m Model) currentUser() *models.User {
	return m.doc.FindUser(m.userName)
}

func (m Model) selectedTask() *models.Task {
	user := m.currentUser()
	if user == nil || m.cursor < 0 || m.cursor >= len(user.Tasks) {
		return nil
	}
	return &user.Tasks[m.cursor]
}

func nextPeriod(p constants.Period) constants.Period {
	switch p {
	case constants.PeriodDaily:
		return constants.PeriodWeekly
	case constants.PeriodWeekly:
		return constants.PeriodMonthly
	default:
		return constants.PeriodDaily
	}
}
