// Package report computes period-bounded aggregates over a task's time
// records and productivity ratios against the owner's goals.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/models"
	"github.com/dcoutinho/tempora/internal/timefmt"
)

// Report is the aggregate for one task over one period.
type Report struct {
	Period              constants.Period `json:"periodo"`
	TotalSeconds        int              `json:"total_segundos"`
	FormattedTotal      string           `json:"tempo_rastreado"`
	ProductivityPercent int              `json:"produtividade"`
	GoalDisplay         string           `json:"meta"`
}

// daysInPeriod is a fixed divisor per period; monthly is a flat 30 regardless
// of the calendar month.
func daysInPeriod(period constants.Period) int {
	switch period {
	case constants.PeriodWeekly:
		return constants.DaysWeekly
	case constants.PeriodMonthly:
		return constants.DaysMonthly
	default:
		return constants.DaysDaily
	}
}

// inWindow reports whether a record date falls in the period window ending at
// refDate. Daily means refDate exactly; weekly the trailing 7 days inclusive;
// monthly everything up to and including refDate. Future records never count.
func inWindow(recDate, refDate time.Time, period constants.Period) bool {
	if recDate.After(refDate) {
		return false
	}
	switch period {
	case constants.PeriodDaily:
		return recDate.Equal(refDate)
	case constants.PeriodWeekly:
		lower := refDate.AddDate(0, 0, -(constants.DaysWeekly - 1))
		return !recDate.Before(lower)
	default:
		return true
	}
}

// Aggregate computes the report for one of the user's tasks. refDate is
// truncated to day granularity; records with unparseable dates or durations
// are skipped.
func Aggregate(user *models.User, task *models.Task, period constants.Period, refDate time.Time) Report {
	ref := time.Date(refDate.Year(), refDate.Month(), refDate.Day(), 0, 0, 0, 0, time.UTC)

	total := 0
	for _, rec := range task.Records {
		d, err := time.ParseInLocation(constants.DateFormat, rec.Date, time.UTC)
		if err != nil {
			continue
		}
		if !inWindow(d, ref, period) {
			continue
		}
		s, err := timefmt.ParseDuration(rec.Time)
		if err != nil {
			continue
		}
		total += s
	}

	productivity := 0
	if goal := user.DailyGoalSeconds(); goal > 0 {
		avgDaily := float64(total) / float64(daysInPeriod(period))
		productivity = int(math.Round(100 * avgDaily / float64(goal)))
	}

	return Report{
		Period:              period,
		TotalSeconds:        total,
		FormattedTotal:      timefmt.FormatDuration(total),
		ProductivityPercent: productivity,
		GoalDisplay:         user.GoalFor(period),
	}
}

// SortKey selects the record-history sort column.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByDuration SortKey = "duration"
)

// FilterRange returns the records whose date falls inside [from, to]
// inclusive. An empty bound is open. Dates are compared as YYYY-MM-DD
// strings, which order the same as calendar dates.
func FilterRange(records []models.TimeRecord, from, to string) []models.TimeRecord {
	out := make([]models.TimeRecord, 0, len(records))
	for _, rec := range records {
		if from != "" && rec.Date < from {
			continue
		}
		if to != "" && rec.Date > to {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SortRecords returns a copy of records ordered by the given key.
func SortRecords(records []models.TimeRecord, key SortKey, descending bool) []models.TimeRecord {
	out := make([]models.TimeRecord, len(records))
	copy(out, records)

	less := func(i, j int) bool { return out[i].Date < out[j].Date }
	if key == SortByDuration {
		less = func(i, j int) bool {
			si, _ := timefmt.ParseDuration(out[i].Time)
			sj, _ := timefmt.ParseDuration(out[j].Time)
			return si < sj
		}
	}
	if descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(out, less)
	return out
}
