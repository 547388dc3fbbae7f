package constants

// Period identifies a reporting window.
type Period string

const (
	AppName         = "tempora"
	Version         = "v0.3.0"
	DefaultDataPath = "~/.config/tempora/data.json"

	// DefaultUser is the identity assumed when neither a flag nor the saved
	// session names one.
	DefaultUser = "Daniel"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ClockFormat is the time-of-day format accepted by manual entries (HH:MM)
	ClockFormat = "15:04"

	// ZeroDuration is the canonical rendering of an empty duration
	ZeroDuration = "00:00:00"

	// Reporting periods
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"

	// Fixed day divisors used for the productivity average. Monthly uses a
	// flat 30 regardless of calendar month length.
	DaysDaily   = 1
	DaysWeekly  = 7
	DaysMonthly = 30

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tempora-"

	// HTTP defaults
	DefaultListenAddr = ":3000"
)

// Valid reports whether p is one of the known reporting periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}
