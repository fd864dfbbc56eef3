package messenger

// Message is one outbound message body. The conversation layer builds
// these; the client renders them into Send API calls.
type Message interface {
	message() any
}

// TextMessage is a plain text bubble.
type TextMessage struct {
	Text string
}

func (m TextMessage) message() any {
	return map[string]any{"text": m.Text}
}

// QuickReply is one selectable option: a visible label plus the opaque
// payload echoed back when the user taps it.
type QuickReply struct {
	Title   string
	Payload string
}

// QuickReplyMessage is a text bubble with a row of mutually exclusive
// quick replies.
type QuickReplyMessage struct {
	Text    string
	Replies []QuickReply
}

func (m QuickReplyMessage) message() any {
	replies := make([]map[string]any, 0, len(m.Replies))
	for _, reply := range m.Replies {
		replies = append(replies, map[string]any{
			"content_type": "text",
			"title":        reply.Title,
			"payload":      reply.Payload,
		})
	}
	return map[string]any{
		"text":          m.Text,
		"quick_replies": replies,
	}
}

// MenuButton is one entry of the persistent menu.
type MenuButton struct {
	Title   string
	Payload string
}
