package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/j03-dev/ankamantatra-bot/internal/payload"
)

func TestWebhookVerification(t *testing.T) {
	h := NewWebhookHandler("verify-me", nil, payload.NewCodec([]byte("secret")))

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "12345", rec.Body.String())
}

func TestWebhookVerificationWrongToken(t *testing.T) {
	h := NewWebhookHandler("verify-me", nil, payload.NewCodec([]byte("secret")))

	req := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=guess&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookAcknowledgesPageEvents(t *testing.T) {
	h := NewWebhookHandler("verify-me", nil, payload.NewCodec([]byte("secret")))

	req := httptest.NewRequest(http.MethodPost, "/webhook",
		strings.NewReader(`{"object":"page","entry":[]}`))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "EVENT_RECEIVED", rec.Body.String())
}

func TestWebhookRejectsNonPageObjects(t *testing.T) {
	h := NewWebhookHandler("verify-me", nil, payload.NewCodec([]byte("secret")))

	req := httptest.NewRequest(http.MethodPost, "/webhook",
		strings.NewReader(`{"object":"instagram","entry":[]}`))
	rec := httptest.NewRecorder()
	h.Webhook(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func parseMessaging(t *testing.T, raw string) messagingEvent {
	t.Helper()
	var m messagingEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestToEventQuickReply(t *testing.T) {
	codec := payload.NewCodec([]byte("secret"))
	h := NewWebhookHandler("verify-me", nil, codec)

	encoded, err := codec.Encode("grade_answer", payload.AnswerSubmission{
		V:               payload.Version,
		Question:        "q",
		CandidateAnswer: "a",
		CorrectAnswer:   "b",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(map[string]any{
		"sender":  map[string]string{"id": "u1"},
		"message": map[string]any{"text": "a", "quick_reply": map[string]string{"payload": encoded}},
	})
	require.NoError(t, err)

	ev := h.toEvent(parseMessaging(t, string(raw)))
	require.Equal(t, "u1", ev.UserID)
	require.Equal(t, "grade_answer", ev.Route)
	require.NotEmpty(t, ev.Data)
	require.Equal(t, "a", ev.Text)
}

func TestToEventDropsTamperedPayload(t *testing.T) {
	codec := payload.NewCodec([]byte("secret"))
	h := NewWebhookHandler("verify-me", nil, codec)

	m := parseMessaging(t, `{
		"sender": {"id": "u1"},
		"postback": {"payload": "not-a-signed-payload"}
	}`)

	ev := h.toEvent(m)
	require.Equal(t, "u1", ev.UserID)
	require.Empty(t, ev.Route, "a forged payload routes nowhere")
	require.Empty(t, ev.Data)
}

func TestToEventPlainText(t *testing.T) {
	h := NewWebhookHandler("verify-me", nil, payload.NewCodec([]byte("secret")))

	m := parseMessaging(t, `{
		"sender": {"id": "u1"},
		"message": {"text": "alice"}
	}`)

	ev := h.toEvent(m)
	require.Equal(t, "u1", ev.UserID)
	require.Empty(t, ev.Route)
	require.Equal(t, "alice", ev.Text)
}
