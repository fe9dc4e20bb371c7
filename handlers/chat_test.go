package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRelaysServiceReplies(t *testing.T) {
	app, uow := newTestApp(t)
	user := createUser(t, uow, "alice@example.com", "Passw0rd")

	resp := doJSON(t, app, http.MethodPost, "/api/chat", tokenFor(t, user),
		map[string]any{"message": "what is due today?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Messages []struct {
			Text string `json:"text"`
		} `json:"messages"`
	}
	decodeJSON(t, resp, &body)
	require.Len(t, body.Messages, 1)
	assert.Equal(t, "echo: what is due today?", body.Messages[0].Text)
}

func TestChatRequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/chat", "", map[string]any{"message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
