package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/j03-dev/ankamantatra-bot/internal/entity"
)

// RequiredCategories is the fixed category set the content document must
// provide. A document missing any of them fails to load.
var RequiredCategories = []string{"math", "science", "history", "sport", "programming"}

var (
	ErrEmptyCategory   = errors.New("quiz: category has no questions")
	ErrUnknownCategory = errors.New("quiz: unknown category")
)

// LoadError means the content document is missing or malformed. Nothing
// partial survives a failed load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("quiz: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Bank is the in-memory question index, read-only after construction.
// Random selection goes through a seeded source guarded by a mutex so
// concurrent conversations can pick questions safely.
type Bank struct {
	categories map[string]entity.Category
	names      []string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBank indexes the given pools. The category order follows
// RequiredCategories for names in that set; extra names go after, in the
// order given.
func NewBank(pools map[string][]entity.Question) *Bank {
	b := &Bank{
		categories: make(map[string]entity.Category, len(pools)),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, name := range RequiredCategories {
		if questions, ok := pools[name]; ok {
			b.categories[name] = entity.Category{Name: name, Questions: questions}
			b.names = append(b.names, name)
		}
	}
	for name, questions := range pools {
		if _, ok := b.categories[name]; ok {
			continue
		}
		b.categories[name] = entity.Category{Name: name, Questions: questions}
		b.names = append(b.names, name)
	}
	return b
}

// Categories returns the known category names, required ones first.
func (b *Bank) Categories() []string {
	names := make([]string, len(b.names))
	copy(names, b.names)
	return names
}

// Has reports whether the category exists.
func (b *Bank) Has(name string) bool {
	_, ok := b.categories[name]
	return ok
}

// Pick draws one question uniformly at random from the category's pool.
func (b *Bank) Pick(name string) (entity.Question, error) {
	category, ok := b.categories[name]
	if !ok {
		return entity.Question{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	if len(category.Questions) == 0 {
		return entity.Question{}, fmt.Errorf("%w: %q", ErrEmptyCategory, name)
	}

	b.mu.Lock()
	index := b.rng.Intn(len(category.Questions))
	b.mu.Unlock()

	return category.Questions[index], nil
}
