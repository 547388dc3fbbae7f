// Package engine merges elapsed-time deltas into the data document and keeps
// the durable store in sync.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/logger"
	"github.com/dcoutinho/tempora/internal/models"
	"github.com/dcoutinho/tempora/internal/storage"
	"github.com/dcoutinho/tempora/internal/timefmt"
)

var (
	// ErrUserNotFound indicates no user matched the lookup name.
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound indicates the user exists but has no matching task.
	ErrTaskNotFound = errors.New("task not found")

	// ErrValidation indicates a malformed input (negative delta, bad manual
	// entry date or clock time).
	ErrValidation = errors.New("invalid input")

	// ErrPersistenceFailed indicates the accumulation was computed but could
	// not be durably saved. The in-memory document is left untouched, so the
	// caller may retry.
	ErrPersistenceFailed = errors.New("persistence failed")
)

// Engine applies additive time mutations to a document and persists them.
type Engine struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *Engine {
	return &Engine{store: store, now: time.Now}
}

// WithClock overrides the engine's notion of "now". Used by tests and by the
// tracker, which shares one clock across components.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Today returns the current calendar date in the accounting process's local
// timezone, day granularity.
func (e *Engine) Today() string {
	return e.now().Format(constants.DateFormat)
}

// Accumulate merges deltaSeconds into the (user, task) record for today,
// creating the record if the task has none for the date, and persists the
// updated document before reporting success. The document is only mutated
// when the save succeeds; on persistence failure it is left exactly as it
// was. A zero delta is a successful no-op that is still persisted.
func (e *Engine) Accumulate(doc *models.Document, userName, taskName string, deltaSeconds int) error {
	return e.accumulateOn(doc, userName, taskName, e.Today(), deltaSeconds)
}

// RecordManual validates an out-of-band entry (a date plus an HH:MM clock
// time representing the duration worked) and merges it through the same
// one-record-per-day path as Accumulate.
func (e *Engine) RecordManual(doc *models.Document, userName, taskName, date, clock string) error {
	if date == "" || clock == "" {
		return fmt.Errorf("%w: date and time are required", ErrValidation)
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	parsed, err := time.Parse(constants.ClockFormat, clock)
	if err != nil {
		return fmt.Errorf("%w: invalid time %q", ErrValidation, clock)
	}

	delta := parsed.Hour()*3600 + parsed.Minute()*60
	return e.accumulateOn(doc, userName, taskName, date, delta)
}

func (e *Engine) accumulateOn(doc *models.Document, userName, taskName, date string, deltaSeconds int) error {
	if deltaSeconds < 0 {
		return fmt.Errorf("%w: negative delta %d", ErrValidation, deltaSeconds)
	}

	// Mutate a working copy; the caller's document is only updated once the
	// store accepts the rewrite.
	working := doc.Clone()

	user := working.FindUser(userName)
	if user == nil {
		return fmt.Errorf("%w: %q", ErrUserNotFound, userName)
	}
	task := user.FindTask(taskName)
	if task == nil {
		return fmt.Errorf("%w: %q for user %q", ErrTaskNotFound, taskName, userName)
	}

	if rec := task.RecordFor(date); rec != nil {
		existing, err := timefmt.ParseDuration(rec.Time)
		if err != nil {
			logger.Warn("Unparseable stored duration, treating as zero",
				"task", task.Name, "date", date, "time", rec.Time)
			existing = 0
		}
		rec.Time = timefmt.FormatDuration(existing + deltaSeconds)
	} else {
		task.Records = append(task.Records, models.TimeRecord{
			Date: date,
			Time: timefmt.FormatDuration(deltaSeconds),
		})
	}

	if err := e.store.Save(working); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	doc.Users = working.Users
	logger.Debug("Accumulated time", "user", userName, "task", taskName,
		"date", date, "delta_seconds", deltaSeconds)
	return nil
}
