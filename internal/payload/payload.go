package payload

import "encoding/json"

// Version tags every payload record so a stale payload from an older
// deployment is recognizable instead of silently misread.
const Version = 1

// Envelope is the outer payload shape echoed through the transport: the
// route to dispatch to and the record for that handler.
type Envelope struct {
	V     int             `json:"v"`
	Route string          `json:"route"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// CategoryChoice rides on a category quick reply.
type CategoryChoice struct {
	V        int    `json:"v"`
	Category string `json:"category"`
}

// AnswerSubmission rides on an answer quick reply. It carries everything
// grading needs so the next turn never re-queries the question bank.
type AnswerSubmission struct {
	V               int    `json:"v"`
	Question        string `json:"question"`
	CandidateAnswer string `json:"candidate_answer"`
	CorrectAnswer   string `json:"correct_answer"`
}

// Persistent menu choices.
const (
	SettingResetScore     = "reset_score"
	SettingDeleteAccount  = "delete_account"
	SettingChooseCategory = "choose_category"
)

// SettingsChoice rides on a persistent menu button.
type SettingsChoice struct {
	V      int    `json:"v"`
	Choice string `json:"choice"`
}
