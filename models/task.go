package models

import (
	"strings"
	"time"
)

// Task priority values as they appear on the wire.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task status values as they appear on the wire.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// TaskItem is a single task owned by exactly one user.
type TaskItem struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"userId"`
}

// IsOverdue reports whether the task's deadline has passed without completion.
func (t *TaskItem) IsOverdue(now time.Time) bool {
	return t.DueDate.Before(now) && t.Status != StatusCompleted
}

// ParsePriority maps a client priority string to a canonical value.
// Unrecognized input falls back to medium rather than erroring; clients
// have always relied on this.
func ParsePriority(priority string) string {
	switch strings.ToLower(priority) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// ParseStatus maps a client status string to a canonical value.
// Unrecognized input falls back to todo, same policy as ParsePriority.
func ParseStatus(status string) string {
	switch strings.ToLower(status) {
	case StatusInProgress:
		return StatusInProgress
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusTodo
	}
}

// CombineDueDate builds a deadline from a "2006-01-02" date and an optional
// "15:04" time. With no time the deadline is the end of that calendar day,
// 23:59:59.
func CombineDueDate(dateStr, timeStr string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return time.Time{}, err
	}

	if timeStr == "" {
		return date.Add(23*time.Hour + 59*time.Minute + 59*time.Second), nil
	}

	t, err := time.ParseInLocation("15:04", timeStr, time.UTC)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

var lenientDueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseLenientDueDate parses a due date from the internal agent API, which
// sends whatever its language model extracted. Missing or unparsable input
// defaults to tomorrow at 23:59:59 relative to now.
func ParseLenientDueDate(s string, now time.Time) time.Time {
	if s != "" {
		for _, layout := range lenientDueDateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t
			}
		}
	}

	tomorrow := now.UTC().AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, 0, time.UTC)
}
