package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookChatServiceRelaysReplies(t *testing.T) {
	var gotBody map[string]string
	var gotToken string

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode([]map[string]string{
			{"recipient_id": "u1", "text": "hello"},
			{"recipient_id": "u1", "text": "  "},
			{"recipient_id": "u1", "text": "how can I help?"},
		})
	}))
	defer upstream.Close()

	svc := NewWebhookChatService(upstream.URL, "hook-token", 2*time.Second)
	replies := svc.SendMessage("u1", "hi")

	assert.Equal(t, []string{"hello", "how can I help?"}, replies)
	assert.Equal(t, "hook-token", gotToken)
	assert.Equal(t, map[string]string{"sender": "u1", "message": "hi"}, gotBody)
}

func TestWebhookChatServiceOmitsEmptyToken(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("token"))
		json.NewEncoder(w).Encode([]map[string]string{{"recipient_id": "u1", "text": "ok"}})
	}))
	defer upstream.Close()

	svc := NewWebhookChatService(upstream.URL, "", 2*time.Second)
	assert.Equal(t, []string{"ok"}, svc.SendMessage("u1", "hi"))
}

func TestWebhookChatServiceFallsBack(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		svc := NewWebhookChatService("http://127.0.0.1:1/webhook", "", time.Second)
		assert.Equal(t, []string{FallbackMessage}, svc.SendMessage("u1", "hi"))
	})

	t.Run("non-2xx", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		svc := NewWebhookChatService(upstream.URL, "", time.Second)
		assert.Equal(t, []string{FallbackMessage}, svc.SendMessage("u1", "hi"))
	})

	t.Run("invalid json", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer upstream.Close()

		svc := NewWebhookChatService(upstream.URL, "", time.Second)
		assert.Equal(t, []string{FallbackMessage}, svc.SendMessage("u1", "hi"))
	})

	t.Run("only blank replies", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]string{{"recipient_id": "u1", "text": "   "}})
		}))
		defer upstream.Close()

		svc := NewWebhookChatService(upstream.URL, "", time.Second)
		assert.Equal(t, []string{FallbackMessage}, svc.SendMessage("u1", "hi"))
	})
}
