package quiz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/j03-dev/ankamantatra-bot/internal/entity"
)

const validDoc = `{
	"math": {
		"unique": [
			{"question": "2+2?", "options": ["3", "4"], "answer": "4"}
		],
		"number": [
			{"question": "How many sides does a square have?", "answer": 4}
		]
	},
	"science": [
		{"question": "Red planet?", "options": ["Mars", "Venus"], "answer": "Mars"}
	],
	"history": {
		"multiple": [
			{"question": "Ancient empires?", "options": ["Roman", "British"], "answer": ["Roman"]}
		]
	},
	"sport": {"unique": []},
	"programming": {
		"string": [
			{"question": "Go mascot?", "answer": "gopher"}
		]
	}
}`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	bank, err := Load(writeDoc(t, validDoc))
	require.NoError(t, err)

	require.Equal(t, RequiredCategories, bank.Categories())
	require.True(t, bank.Has("math"))
	require.False(t, bank.Has("geography"))
}

func TestLoadNormalizesAnswers(t *testing.T) {
	bank, err := Load(writeDoc(t, validDoc))
	require.NoError(t, err)

	q, err := bank.Pick("history")
	require.NoError(t, err)
	require.Equal(t, "Roman", q.Answer, "list answers normalize to their first element")

	q, err = bank.Pick("programming")
	require.NoError(t, err)
	require.Equal(t, "gopher", q.Answer)
	require.Empty(t, q.Options)
	require.Equal(t, []string{"yes", "no"}, q.Candidates())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadMissingRequiredCategory(t *testing.T) {
	doc := `{
		"math": [], "science": [], "sport": [], "programming": []
	}`
	_, err := Load(writeDoc(t, doc))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Contains(t, err.Error(), "history")
}

func TestLoadMalformedDocument(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":          `{"math": [`,
		"bad shape":         `{"math": {"riddle": []}, "science": [], "history": [], "sport": [], "programming": []}`,
		"missing answer":    `{"math": [{"question": "2+2?", "options": ["3", "4"]}], "science": [], "history": [], "sport": [], "programming": []}`,
		"single option":     `{"math": {"unique": [{"question": "2+2?", "options": ["4"], "answer": "4"}]}, "science": [], "history": [], "sport": [], "programming": []}`,
		"options on string": `{"math": {"string": [{"question": "2+2?", "options": ["4"], "answer": "4"}]}, "science": [], "history": [], "sport": [], "programming": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeDoc(t, doc))
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestPickDrawsFromPool(t *testing.T) {
	bank, err := Load(writeDoc(t, validDoc))
	require.NoError(t, err)

	prompts := map[string]bool{
		"2+2?":                               true,
		"How many sides does a square have?": true,
	}
	for i := 0; i < 20; i++ {
		q, err := bank.Pick("math")
		require.NoError(t, err)
		require.True(t, prompts[q.Prompt], "picked a question outside the pool: %q", q.Prompt)
	}
}

func TestPickEmptyCategory(t *testing.T) {
	bank, err := Load(writeDoc(t, validDoc))
	require.NoError(t, err)

	_, err = bank.Pick("sport")
	require.ErrorIs(t, err, ErrEmptyCategory)
}

func TestPickUnknownCategory(t *testing.T) {
	bank := NewBank(map[string][]entity.Question{})
	_, err := bank.Pick("geography")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestLazySourceCachesSuccess(t *testing.T) {
	path := writeDoc(t, validDoc)
	source := NewLazySource(path)

	bank, err := source.Bank()
	require.NoError(t, err)

	// A later rewrite must not be observed; the bank is immutable for
	// the process lifetime once loaded.
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	again, err := source.Bank()
	require.NoError(t, err)
	require.Same(t, bank, again)
}

func TestLazySourceRetriesFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	source := NewLazySource(path)

	_, err := source.Bank()
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)

	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))
	_, err = source.Bank()
	require.NoError(t, err)
}
