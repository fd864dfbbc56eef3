package entity

// Question shapes as they appear in the content document.
const (
	ShapeMultiple = "multiple"
	ShapeUnique   = "unique"
	ShapeNumber   = "number"
	ShapeString   = "string"
)

// Question is one quiz item. Options is empty for number and string
// shapes; Answer is the canonical correct value, compared
// case-insensitively against the user's choice.
type Question struct {
	Prompt  string
	Options []string
	Answer  string
	Shape   string
}

// Candidates returns the choices offered to the user. Shapes without
// options get a fixed yes/no pair.
func (q Question) Candidates() []string {
	if len(q.Options) > 0 {
		return q.Options
	}
	return []string{"yes", "no"}
}

// Category is a named, immutable pool of questions.
type Category struct {
	Name      string
	Questions []Question
}
