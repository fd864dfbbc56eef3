package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/j03-dev/ankamantatra-bot/internal/bot"
	"github.com/j03-dev/ankamantatra-bot/internal/payload"
)

const turnTimeout = 30 * time.Second

// WebhookHandler terminates the messenger webhook: the GET verification
// handshake and the POST event intake. Each messaging event runs on its
// own goroutine so one user's turn never blocks another's.
type WebhookHandler struct {
	verifyToken string
	router      *bot.Router
	codec       *payload.Codec
}

func NewWebhookHandler(verifyToken string, router *bot.Router, codec *payload.Codec) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		router:      router,
		codec:       codec,
	}
}

func (h *WebhookHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.verify(w, r)
	case http.MethodPost:
		h.receive(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *WebhookHandler) verify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("hub.mode") == "subscribe" && query.Get("hub.verify_token") == h.verifyToken {
		w.Write([]byte(query.Get("hub.challenge")))
		return
	}
	http.Error(w, "verification failed", http.StatusForbidden)
}

type messagingEvent struct {
	Sender struct {
		ID string `json:"id"`
	} `json:"sender"`
	Message *struct {
		Text       string `json:"text"`
		QuickReply *struct {
			Payload string `json:"payload"`
		} `json:"quick_reply"`
	} `json:"message"`
	Postback *struct {
		Payload string `json:"payload"`
	} `json:"postback"`
}

type webhookBody struct {
	Object string `json:"object"`
	Entry  []struct {
		Messaging []messagingEvent `json:"messaging"`
	} `json:"entry"`
}

func (h *WebhookHandler) receive(w http.ResponseWriter, r *http.Request) {
	var body webhookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if body.Object != "page" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	for _, entry := range body.Entry {
		for _, event := range entry.Messaging {
			go h.dispatch(event)
		}
	}

	// The platform just needs a fast acknowledgement; turns run on
	// their own goroutines.
	w.Write([]byte("EVENT_RECEIVED"))
}

func (h *WebhookHandler) dispatch(m messagingEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("webhook: panic handling event for user %s: %v", m.Sender.ID, rec)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
	defer cancel()

	ev := h.toEvent(m)
	if err := h.router.Handle(ctx, ev); err != nil {
		log.Printf("webhook: turn for user %s: %v", m.Sender.ID, err)
	}
}

// toEvent translates a messaging event into a conversation event. An
// encoded payload that fails authentication is dropped: the turn then
// resolves through the pending action or the entry step, never through a
// forged route.
func (h *WebhookHandler) toEvent(m messagingEvent) bot.Event {
	ev := bot.Event{UserID: m.Sender.ID}

	var raw string
	switch {
	case m.Message != nil && m.Message.QuickReply != nil:
		raw = m.Message.QuickReply.Payload
	case m.Postback != nil:
		raw = m.Postback.Payload
	}
	if raw != "" {
		env, err := h.codec.Decode(raw)
		if err != nil {
			log.Printf("webhook: rejected payload from user %s: %v", m.Sender.ID, err)
		} else {
			ev.Route = env.Route
			ev.Data = env.Data
		}
	}

	if m.Message != nil {
		ev.Text = m.Message.Text
	}
	return ev
}
