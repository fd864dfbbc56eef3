package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://graph.facebook.com/v19.0"

// Client talks to the messenger Send API. Send is synchronous, so
// messages sent by one handler call arrive in call order.
type Client struct {
	accessToken string
	baseURL     string
	httpc       *http.Client
}

func NewClient(accessToken string) *Client {
	return &Client{
		accessToken: accessToken,
		baseURL:     defaultBaseURL,
		httpc:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Send delivers one message to the given recipient.
func (c *Client) Send(ctx context.Context, userID string, msg Message) error {
	body := map[string]any{
		"recipient": map[string]any{"id": userID},
		"message":   msg.message(),
	}
	return c.post(ctx, "/me/messages", body)
}

// SetupProfile publishes the get-started button and the persistent menu.
// Called once at startup.
func (c *Client) SetupProfile(ctx context.Context, getStartedPayload string, menu []MenuButton) error {
	actions := make([]map[string]any, 0, len(menu))
	for _, button := range menu {
		actions = append(actions, map[string]any{
			"type":    "postback",
			"title":   button.Title,
			"payload": button.Payload,
		})
	}
	body := map[string]any{
		"get_started": map[string]any{"payload": getStartedPayload},
		"persistent_menu": []map[string]any{{
			"locale":                  "default",
			"composer_input_disabled": false,
			"call_to_actions":         actions,
		}},
	}
	return c.post(ctx, "/me/messenger_profile", body)
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("messenger: marshal body: %w", err)
	}

	url := c.baseURL + path + "?access_token=" + c.accessToken
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("messenger: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("messenger: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("messenger: %s returned status %d: %s", path, resp.StatusCode, detail)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
