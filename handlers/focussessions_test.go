package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskify/taskify-api/models"
	"github.com/taskify/taskify-api/repository"
)

func seedSession(t *testing.T, uow *repository.MemoryUnitOfWork, userID string, minutes int, startedAt time.Time, completed bool, breaks int) *models.FocusSession {
	t.Helper()
	session := &models.FocusSession{
		UserID:          userID,
		DurationMinutes: minutes,
		StartedAt:       startedAt,
		IsCompleted:     completed,
		BreaksTaken:     breaks,
	}
	require.NoError(t, uow.FocusSessions().Create(context.Background(), session))
	return session
}

func TestFocusSessionStartValidation(t *testing.T) {
	app, uow := newTestApp(t)
	user := createUser(t, uow, "alice@example.com", "Passw0rd")
	token := tokenFor(t, user)

	for _, minutes := range []int{0, 4, 301, -10} {
		resp := doJSON(t, app, http.MethodPost, "/api/focussession/start", token, map[string]any{"durationMinutes": minutes})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "duration %d", minutes)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/focussession/start", token, map[string]any{"durationMinutes": 25})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.FocusSession
	decodeJSON(t, resp, &created)
	assert.Equal(t, 25, created.DurationMinutes)
	assert.False(t, created.IsCompleted)
	assert.Nil(t, created.EndedAt)
}

func TestFocusSessionEndOverwrites(t *testing.T) {
	app, uow := newTestApp(t)
	user := createUser(t, uow, "alice@example.com", "Passw0rd")
	session := seedSession(t, uow, user.ID, 25, time.Now().UTC(), false, 0)
	token := tokenFor(t, user)

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/focussession/%d/end", session.ID), token,
		map[string]any{"isCompleted": true, "breaksTaken": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ended models.FocusSession
	decodeJSON(t, resp, &ended)
	require.NotNil(t, ended.EndedAt)
	assert.True(t, ended.IsCompleted)
	assert.Equal(t, 2, ended.BreaksTaken)

	// ending again is allowed and replaces the first outcome
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/focussession/%d/end", session.ID), token,
		map[string]any{"isCompleted": false, "breaksTaken": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &ended)
	require.NotNil(t, ended.EndedAt)
	assert.False(t, ended.IsCompleted)
	assert.Equal(t, 5, ended.BreaksTaken)
}

func TestFocusSessionEndRejectsNegativeBreaks(t *testing.T) {
	app, uow := newTestApp(t)
	user := createUser(t, uow, "alice@example.com", "Passw0rd")
	session := seedSession(t, uow, user.ID, 25, time.Now().UTC(), false, 0)

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/focussession/%d/end", session.ID), tokenFor(t, user),
		map[string]any{"isCompleted": true, "breaksTaken": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFocusSessionStats(t *testing.T) {
	app, uow := newTestApp(t)
	user := createUser(t, uow, "alice@example.com", "Passw0rd")
	other := createUser(t, uow, "bob@example.com", "Passw0rd")
	now := time.Now().UTC()

	seedSession(t, uow, user.ID, 25, now, true, 1)
	seedSession(t, uow, user.ID, 50, now, false, 2)
	// outside today but still counted for the week when it lands inside the
	// same Sunday-start window
	weekStart, _ := models.WeekWindow(now)
	if dayStart, _ := models.DayWindow(now); dayStart.After(weekStart) {
		seedSession(t, uow, user.ID, 30, dayStart.Add(-time.Hour), true, 0)
	}
	// another user's session never counts
	seedSession(t, uow, other.ID, 90, now, true, 3)

	resp := doJSON(t, app, http.MethodGet, "/api/focussession/stats", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		TotalSessionsToday     int `json:"totalSessionsToday"`
		CompletedSessionsToday int `json:"completedSessionsToday"`
		TotalMinutesToday      int `json:"totalMinutesToday"`
		TotalBreaksToday       int `json:"totalBreaksToday"`
		TotalSessionsThisWeek  int `json:"totalSessionsThisWeek"`
		TotalMinutesThisWeek   int `json:"totalMinutesThisWeek"`
	}
	decodeJSON(t, resp, &stats)

	assert.Equal(t, 2, stats.TotalSessionsToday)
	assert.Equal(t, 1, stats.CompletedSessionsToday)
	assert.Equal(t, 75, stats.TotalMinutesToday)
	assert.Equal(t, 3, stats.TotalBreaksToday)
	assert.GreaterOrEqual(t, stats.TotalSessionsThisWeek, 2)
	assert.GreaterOrEqual(t, stats.TotalMinutesThisWeek, 75)
}

func TestFocusSessionOwnershipEnforced(t *testing.T) {
	app, uow := newTestApp(t)
	owner := createUser(t, uow, "alice@example.com", "Passw0rd")
	other := createUser(t, uow, "bob@example.com", "Passw0rd")
	session := seedSession(t, uow, owner.ID, 25, time.Now().UTC(), false, 0)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/focussession/%d", session.ID), tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/focussession/%d/end", session.ID), tokenFor(t, other),
		map[string]any{"isCompleted": true, "breaksTaken": 0})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestFocusSessionTodayExcludesYesterday(t *testing.T) {
	app, uow := newTestApp(t)
	user := createUser(t, uow, "alice@example.com", "Passw0rd")
	now := time.Now().UTC()

	seedSession(t, uow, user.ID, 25, now.AddDate(0, 0, -1), true, 0)
	today := seedSession(t, uow, user.ID, 50, now, false, 0)

	resp := doJSON(t, app, http.MethodGet, "/api/focussession/today", tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessions []models.FocusSession
	decodeJSON(t, resp, &sessions)
	require.Len(t, sessions, 1)
	assert.Equal(t, today.ID, sessions[0].ID)
}
