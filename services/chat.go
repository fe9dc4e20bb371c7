package services

import (
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// FallbackMessage is returned whenever the assistant webhook cannot be
// reached or answers with garbage. The caller never sees a hard failure.
const FallbackMessage = "The assistant is temporarily unavailable. Please try again later."

// ChatService forwards user messages to the conversational agent.
type ChatService interface {
	SendMessage(userID, message string) []string
}

// WebhookChatService proxies to an external REST webhook (Rasa-style):
// POST {sender, message}, response [{recipient_id, text}].
type WebhookChatService struct {
	webhookURL string
	token      string
	timeout    time.Duration
	client     *fasthttp.Client
}

// NewWebhookChatService builds the proxy. token may be empty.
func NewWebhookChatService(webhookURL, token string, timeout time.Duration) *WebhookChatService {
	return &WebhookChatService{
		webhookURL: webhookURL,
		token:      token,
		timeout:    timeout,
		client:     &fasthttp.Client{},
	}
}

type webhookMessage struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}

// SendMessage posts the user's message and relays the agent's replies.
// Any transport, timeout, status, or decode failure collapses into the
// single fallback message.
func (s *WebhookChatService) SendMessage(userID, message string) []string {
	target := s.webhookURL
	if s.token != "" {
		target += "?token=" + url.QueryEscape(s.token)
	}

	body, err := json.Marshal(map[string]string{"sender": userID, "message": message})
	if err != nil {
		return []string{FallbackMessage}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		log.Printf("chat webhook request failed for sender %s: %v", userID, err)
		return []string{FallbackMessage}
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		log.Printf("chat webhook returned %d for sender %s", status, userID)
		return []string{FallbackMessage}
	}

	var replies []webhookMessage
	if err := json.Unmarshal(resp.Body(), &replies); err != nil {
		log.Printf("chat webhook response was not valid JSON for sender %s: %v", userID, err)
		return []string{FallbackMessage}
	}

	texts := []string{}
	for _, m := range replies {
		if t := strings.TrimSpace(m.Text); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return []string{FallbackMessage}
	}

	return texts
}
