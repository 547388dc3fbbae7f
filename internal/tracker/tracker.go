// Package tracker enforces the one-active-task stopwatch over a user's tasks
// and feeds elapsed time into the accumulation engine.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/dcoutinho/tempora/internal/engine"
	"github.com/dcoutinho/tempora/internal/logger"
	"github.com/dcoutinho/tempora/internal/models"
	"github.com/dcoutinho/tempora/internal/timefmt"
)

var (
	// ErrConflict is returned when starting a task while another one runs.
	ErrConflict = errors.New("only one task may be active at a time")

	// ErrInvalidState is returned when stopping a task that is not running
	// or starting one that already is.
	ErrInvalidState = errors.New("invalid stopwatch state")
)

// Clock supplies the current time. Injected so tests control elapsed time.
type Clock func() time.Time

// Tracker is the per-user stopwatch controller. It is driven from a single
// goroutine (the TUI event loop or a test); it is not safe for concurrent
// use.
type Tracker struct {
	eng      *engine.Engine
	doc      *models.Document
	userName string
	clock    Clock

	active    string // normalized name of the running task, "" when idle
	startedAt time.Time
}

func New(eng *engine.Engine, doc *models.Document, userName string) *Tracker {
	return &Tracker{
		eng:      eng,
		doc:      doc,
		userName: userName,
		clock:    time.Now,
	}
}

// WithClock overrides the wall clock.
func (t *Tracker) WithClock(clock Clock) *Tracker {
	t.clock = clock
	return t
}

// Running returns the name key of the running task, if any.
func (t *Tracker) Running() (string, bool) {
	return t.active, t.active != ""
}

// IsRunning reports whether the named task is the running one.
func (t *Tracker) IsRunning(taskName string) bool {
	return t.active != "" && t.active == models.NormalizeName(taskName)
}

// Start transitions the named task from Idle to Running and records the
// wall-clock baseline. Fails with ErrConflict while any other task runs; the
// running task's state and baseline are left untouched.
func (t *Tracker) Start(taskName string) error {
	user := t.doc.FindUser(t.userName)
	if user == nil {
		return fmt.Errorf("%w: %q", engine.ErrUserNotFound, t.userName)
	}
	task := user.FindTask(taskName)
	if task == nil {
		return fmt.Errorf("%w: %q", engine.ErrTaskNotFound, taskName)
	}

	key := models.NormalizeName(task.Name)
	if t.active != "" {
		if t.active == key {
			return fmt.Errorf("%w: task %q is already running", ErrInvalidState, task.Name)
		}
		return fmt.Errorf("%w (running: %q)", ErrConflict, t.active)
	}

	t.active = key
	t.startedAt = t.clock()
	logger.Debug("Stopwatch started", "user", t.userName, "task", task.Name)
	return nil
}

// Stop transitions the running task back to Idle, accumulates the elapsed
// seconds (a zero delta is still accumulated), and returns the delta. Only
// valid for the task currently in Running. On a persistence failure the
// stopwatch still stops and the delta is returned alongside the error so the
// caller can retry the accumulation.
func (t *Tracker) Stop(taskName string) (int, error) {
	key := models.NormalizeName(taskName)
	if t.active == "" || t.active != key {
		return 0, fmt.Errorf("%w: task %q is not running", ErrInvalidState, taskName)
	}

	elapsed := int(t.clock().Sub(t.startedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}

	t.active = ""
	logger.Debug("Stopwatch stopped", "user", t.userName, "task", taskName, "elapsed_seconds", elapsed)

	if err := t.eng.Accumulate(t.doc, t.userName, taskName, elapsed); err != nil {
		return elapsed, err
	}
	return elapsed, nil
}

// Elapsed returns the live seconds since Start for the named task, zero when
// it is not running.
func (t *Tracker) Elapsed(taskName string) int {
	if !t.IsRunning(taskName) {
		return 0
	}
	elapsed := int(t.clock().Sub(t.startedAt).Seconds())
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Display renders the advisory running total for a task: the accumulated
// history plus the in-flight elapsed time. Only the delta at Stop is ever
// persisted.
func (t *Tracker) Display(taskName string) string {
	user := t.doc.FindUser(t.userName)
	if user == nil {
		return timefmt.FormatDuration(0)
	}
	task := user.FindTask(taskName)
	if task == nil {
		return timefmt.FormatDuration(0)
	}
	return timefmt.FormatDuration(task.TotalSeconds() + t.Elapsed(taskName))
}
