package models

import "time"

// DailyGoal is a checklist item scoped to the UTC day it was created on.
// There is no target date; CreatedAt is the day key.
type DailyGoal struct {
	ID          int       `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DayWindow returns the [midnight, midnight+24h) UTC window containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
