package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityLow, ParsePriority("low"))
	assert.Equal(t, PriorityLow, ParsePriority("LOW"))
	assert.Equal(t, PriorityHigh, ParsePriority("High"))
	assert.Equal(t, PriorityMedium, ParsePriority("medium"))
	assert.Equal(t, PriorityMedium, ParsePriority(""))
	assert.Equal(t, PriorityMedium, ParsePriority("urgent"))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusInProgress, ParseStatus("In-Progress"))
	assert.Equal(t, StatusCompleted, ParseStatus("completed"))
	assert.Equal(t, StatusTodo, ParseStatus("todo"))
	assert.Equal(t, StatusTodo, ParseStatus(""))
	assert.Equal(t, StatusTodo, ParseStatus("done"))
}

func TestCombineDueDate(t *testing.T) {
	got, err := CombineDueDate("2026-03-01", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC), got)

	got, err = CombineDueDate("2026-03-01", "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), got)

	_, err = CombineDueDate("01/03/2026", "")
	assert.Error(t, err)

	_, err = CombineDueDate("2026-03-01", "9:3pm")
	assert.Error(t, err)
}

func TestParseLenientDueDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	cases := map[string]time.Time{
		"2026-10-05T14:30:00Z":  time.Date(2026, 10, 5, 14, 30, 0, 0, time.UTC),
		"2026-10-05T14:30:00":   time.Date(2026, 10, 5, 14, 30, 0, 0, time.UTC),
		"2026-10-05 14:30:00":   time.Date(2026, 10, 5, 14, 30, 0, 0, time.UTC),
		"2026-10-05 14:30":      time.Date(2026, 10, 5, 14, 30, 0, 0, time.UTC),
		"2026-10-05":            time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		"":                      time.Date(2026, 9, 2, 23, 59, 59, 0, time.UTC),
		"sometime next tuesday": time.Date(2026, 9, 2, 23, 59, 59, 0, time.UTC),
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseLenientDueDate(input, now), "input %q", input)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	task := TaskItem{DueDate: now.Add(-time.Hour), Status: StatusTodo}
	assert.True(t, task.IsOverdue(now))

	task.Status = StatusCompleted
	assert.False(t, task.IsOverdue(now))

	task = TaskItem{DueDate: now.Add(time.Hour), Status: StatusInProgress}
	assert.False(t, task.IsOverdue(now))
}
