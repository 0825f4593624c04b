package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"mind-service/internal/models"
)

// Score accumulates integer values per parameter name, preserving the
// declaration order of the test's parameter set.
type Score struct {
	names  []string
	values map[string]int
}

// NewScore initializes every given parameter name to zero.
func NewScore(names []string) Score {
	values := make(map[string]int, len(names))
	for _, n := range names {
		values[n] = 0
	}
	return Score{names: names, values: values}
}

// Add adds delta to a declared parameter. Deltas for names outside the
// declared set are dropped so a malformed selection cannot introduce
// parameters the test never declared.
func (s Score) Add(name string, delta int) {
	if _, ok := s.values[name]; !ok {
		return
	}
	s.values[name] += delta
}

func (s Score) Value(name string) int {
	return s.values[name]
}

func (s Score) Names() []string {
	return s.names
}

// Prompt serializes the score as the user turn of a chat completion:
// "My data is a A:3,B:-2". An empty score yields "My data is a ".
func (s Score) Prompt() string {
	var b strings.Builder
	b.WriteString("My data is a ")
	for i, name := range s.names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.values[name]))
	}
	return b.String()
}

// SelectionRangeError reports a progress digit that points past the end
// of a question's selection list.
type SelectionRangeError struct {
	Question   int
	Index      int
	Selections int
}

func (e *SelectionRangeError) Error() string {
	return fmt.Sprintf("question %d: selection index %d out of range (have %d selections)",
		e.Question, e.Index, e.Selections)
}

// selectionAt parses the selection index for question i from the
// progress string. A missing or non-digit character counts as selection
// 0; this fallback is deliberate and covered by tests.
func selectionAt(progress string, i int) int {
	if i < 0 || i >= len(progress) {
		return 0
	}
	c := progress[i]
	if c < '0' || c > '9' {
		return 0
	}
	return int(c - '0')
}

// Aggregate folds a progress string over a test definition into a
// Score. Every declared parameter starts at zero; each question
// contributes the param deltas of its chosen selection.
func Aggregate(progress string, def *models.TestDefinition) (Score, error) {
	score := NewScore(def.ParameterNames())

	for i, q := range def.Questions {
		sel := selectionAt(progress, i)
		if sel >= len(q.Selection) {
			return Score{}, &SelectionRangeError{Question: i, Index: sel, Selections: len(q.Selection)}
		}
		for name, delta := range q.Selection[sel].Params {
			score.Add(name, delta)
		}
	}
	return score, nil
}
