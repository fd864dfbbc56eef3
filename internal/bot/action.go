package bot

// Action names one step of the conversation state machine. The set is
// closed: dispatch is an exhaustive switch, and only route strings
// arriving from the transport can fail to parse.
type Action string

const (
	// ActionEntry is the default menu/welcome step.
	ActionEntry Action = "entry"
	// ActionRegister consumes the pseudonym typed after the
	// registration prompt.
	ActionRegister Action = "register"
	// ActionChooseCategory shows the category menu and records a pick.
	ActionChooseCategory Action = "choose_category"
	// ActionAskQuestion draws a random question from the user's category.
	ActionAskQuestion Action = "ask_question"
	// ActionGradeAnswer grades a submitted answer.
	ActionGradeAnswer Action = "grade_answer"
	// ActionSettings handles the persistent menu choices.
	ActionSettings Action = "settings"
)

// ParseAction resolves an external route string to a known action.
func ParseAction(name string) (Action, bool) {
	switch Action(name) {
	case ActionEntry, ActionRegister, ActionChooseCategory,
		ActionAskQuestion, ActionGradeAnswer, ActionSettings:
		return Action(name), true
	}
	return "", false
}

// Event is one inbound unit of conversation input.
type Event struct {
	// UserID is the stable messenger identity of the sender.
	UserID string
	// Route is the explicit route carried by the event payload, empty
	// when the turn relies on stored continuation state.
	Route string
	// Data is the opaque record decoded from the payload envelope.
	Data []byte
	// Text is the free text typed by the user, if any.
	Text string
}

// Result is what a handler returns: at most one of a direct chain to the
// next action or a pending action for the user's next inbound event.
type Result struct {
	Next    Action
	Pending Action
}
