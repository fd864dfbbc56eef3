package quiz

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/j03-dev/ankamantatra-bot/internal/entity"
)

// Load reads and indexes the content document. Missing file, malformed
// JSON, a missing required category or a question that does not fit its
// shape all fail with *LoadError.
func Load(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var doc map[string]categoryDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	for _, name := range RequiredCategories {
		if _, ok := doc[name]; !ok {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("missing category %q", name)}
		}
	}

	pools := make(map[string][]entity.Question, len(doc))
	for name, category := range doc {
		questions, err := category.questions()
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("category %q: %w", name, err)}
		}
		pools[name] = questions
	}

	return NewBank(pools), nil
}

// categoryDoc accepts both observed document layouts: a flat question
// list, or an object grouping questions by shape.
type categoryDoc struct {
	flat   []questionDoc
	shaped map[string][]questionDoc
}

func (c *categoryDoc) UnmarshalJSON(data []byte) error {
	var flat []questionDoc
	if err := json.Unmarshal(data, &flat); err == nil {
		c.flat = flat
		return nil
	}
	var shaped map[string][]questionDoc
	if err := json.Unmarshal(data, &shaped); err != nil {
		return fmt.Errorf("category is neither a question list nor a shape object: %w", err)
	}
	for shape := range shaped {
		switch shape {
		case entity.ShapeMultiple, entity.ShapeUnique, entity.ShapeNumber, entity.ShapeString:
		default:
			return fmt.Errorf("unknown question shape %q", shape)
		}
	}
	c.shaped = shaped
	return nil
}

func (c categoryDoc) questions() ([]entity.Question, error) {
	var questions []entity.Question
	appendShape := func(shape string, docs []questionDoc) error {
		for i, doc := range docs {
			q, err := doc.question(shape)
			if err != nil {
				return fmt.Errorf("%s question %d: %w", shape, i, err)
			}
			questions = append(questions, q)
		}
		return nil
	}

	if c.flat != nil {
		for i, doc := range c.flat {
			shape := entity.ShapeString
			if len(doc.Options) > 0 {
				shape = entity.ShapeUnique
			}
			q, err := doc.question(shape)
			if err != nil {
				return nil, fmt.Errorf("question %d: %w", i, err)
			}
			questions = append(questions, q)
		}
		return questions, nil
	}

	for _, shape := range []string{entity.ShapeMultiple, entity.ShapeUnique, entity.ShapeNumber, entity.ShapeString} {
		if err := appendShape(shape, c.shaped[shape]); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

type questionDoc struct {
	Question string      `json:"question"`
	Options  []string    `json:"options"`
	Answer   answerValue `json:"answer"`
}

func (d questionDoc) question(shape string) (entity.Question, error) {
	if d.Question == "" {
		return entity.Question{}, fmt.Errorf("empty question text")
	}
	if d.Answer == "" {
		return entity.Question{}, fmt.Errorf("missing answer")
	}
	switch shape {
	case entity.ShapeMultiple, entity.ShapeUnique:
		if len(d.Options) < 2 {
			return entity.Question{}, fmt.Errorf("shape %q needs at least two options", shape)
		}
	case entity.ShapeNumber, entity.ShapeString:
		if len(d.Options) > 0 {
			return entity.Question{}, fmt.Errorf("shape %q takes no options", shape)
		}
	}
	return entity.Question{
		Prompt:  d.Question,
		Options: d.Options,
		Answer:  string(d.Answer),
		Shape:   shape,
	}, nil
}

// answerValue tolerates the three answer encodings found in content
// documents: a string, a number, or a list of strings (first one is
// canonical).
type answerValue string

func (a *answerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = answerValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = answerValue(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("answer must be a string, a number or a string list")
	}
	if len(list) == 0 {
		return fmt.Errorf("answer list is empty")
	}
	*a = answerValue(list[0])
	return nil
}

// Source hands a loaded bank to conversation handlers, surfacing the load
// failure instead when there is nothing to serve.
type Source interface {
	Bank() (*Bank, error)
}

// LazySource loads the document on first use and caches the bank once a
// load succeeds. Failed loads are retried on the next call.
type LazySource struct {
	path string

	mu   sync.Mutex
	bank *Bank
}

func NewLazySource(path string) *LazySource {
	return &LazySource{path: path}
}

func (s *LazySource) Bank() (*Bank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bank != nil {
		return s.bank, nil
	}
	bank, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	s.bank = bank
	return s.bank, nil
}
