// Package models defines the in-memory representation of the backing data
// document. Field tags follow the document's wire format, which predates this
// implementation and uses Portuguese keys.
package models

import (
	"strings"

	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/timefmt"
)

// Document is the root of the data file: every user with their goals, tasks
// and per-day time records.
type Document struct {
	Users []User `json:"usuarios"`
}

// Goals holds a user's target durations per reporting period, as "HH:MM:SS".
type Goals struct {
	Daily   string `json:"diaria,omitempty"`
	Weekly  string `json:"semanal,omitempty"`
	Monthly string `json:"mensal,omitempty"`
}

// User owns an ordered list of tasks. Users are created by authoring the data
// file; this code never deletes them.
type User struct {
	Name  string `json:"nome"`
	Goals *Goals `json:"metas,omitempty"`
	Tasks []Task `json:"tarefas"`
}

// Task is a named unit of trackable work with one record per worked day.
type Task struct {
	Name    string       `json:"nome_tarefa"`
	Records []TimeRecord `json:"registros"`
}

// TimeRecord is one day's accumulated duration for a task.
type TimeRecord struct {
	Date string `json:"data"`  // YYYY-MM-DD
	Time string `json:"tempo"` // HH:MM:SS
}

// NormalizeName produces the match key used for user and task lookup:
// surrounding whitespace stripped, lower-cased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FindUser returns the first user whose name matches ignoring case and
// surrounding whitespace. Duplicate names are a data-authoring error; first
// match wins.
func (d *Document) FindUser(name string) *User {
	key := NormalizeName(name)
	for i := range d.Users {
		if NormalizeName(d.Users[i].Name) == key {
			return &d.Users[i]
		}
	}
	return nil
}

// FindTask returns the first task of the user whose name matches, using the
// same rule as FindUser.
func (u *User) FindTask(name string) *Task {
	key := NormalizeName(name)
	for i := range u.Tasks {
		if NormalizeName(u.Tasks[i].Name) == key {
			return &u.Tasks[i]
		}
	}
	return nil
}

// RecordFor returns the task's record for the given date, or nil.
func (t *Task) RecordFor(date string) *TimeRecord {
	for i := range t.Records {
		if t.Records[i].Date == date {
			return &t.Records[i]
		}
	}
	return nil
}

// TotalSeconds sums every record of the task. Records whose duration does not
// parse are counted as zero.
func (t *Task) TotalSeconds() int {
	total := 0
	for _, r := range t.Records {
		s, err := timefmt.ParseDuration(r.Time)
		if err != nil {
			continue
		}
		total += s
	}
	return total
}

// GoalFor returns the user's goal duration for the given period, or the zero
// duration when unset.
func (u *User) GoalFor(period constants.Period) string {
	if u.Goals == nil {
		return constants.ZeroDuration
	}
	var goal string
	switch period {
	case constants.PeriodDaily:
		goal = u.Goals.Daily
	case constants.PeriodWeekly:
		goal = u.Goals.Weekly
	case constants.PeriodMonthly:
		goal = u.Goals.Monthly
	}
	if goal == "" {
		return constants.ZeroDuration
	}
	return goal
}

// DailyGoalSeconds returns the user's daily goal in seconds, zero when unset
// or unparseable.
func (u *User) DailyGoalSeconds() int {
	s, err := timefmt.ParseDuration(u.GoalFor(constants.PeriodDaily))
	if err != nil {
		return 0
	}
	return s
}

// Clone deep-copies the document so callers can mutate a working copy and
// roll back by discarding it.
func (d *Document) Clone() *Document {
	out := &Document{Users: make([]User, len(d.Users))}
	for i, u := range d.Users {
		cu := u
		if u.Goals != nil {
			g := *u.Goals
			cu.Goals = &g
		}
		cu.Tasks = make([]Task, len(u.Tasks))
		for j, t := range u.Tasks {
			ct := t
			ct.Records = make([]TimeRecord, len(t.Records))
			copy(ct.Records, t.Records)
			cu.Tasks[j] = ct
		}
		out.Users[i] = cu
	}
	return out
}
