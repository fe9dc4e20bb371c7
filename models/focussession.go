package models

import "time"

// Focus session duration bounds in minutes.
const (
	MinFocusDuration = 5
	MaxFocusDuration = 300
)

// FocusSession is one timed focus block. EndedAt is nil until the session
// is ended; ending again overwrites the previous end.
type FocusSession struct {
	ID              int        `json:"id"`
	UserID          string     `json:"userId"`
	DurationMinutes int        `json:"durationMinutes"`
	BreaksTaken     int        `json:"breaksTaken"`
	IsCompleted     bool       `json:"isCompleted"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt"`
}

// WeekWindow returns the [Sunday midnight, next Sunday midnight) UTC window
// containing t.
func WeekWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return start, start.AddDate(0, 0, 7)
}
