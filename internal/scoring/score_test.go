package scoring

import (
	"errors"
	"reflect"
	"testing"

	"mind-service/internal/models"
)

func sampleTest() *models.TestDefinition {
	return &models.TestDefinition{
		ID:       1,
		TestName: "sample",
		Settings: models.TestSettings{
			Parameters: map[string]string{"0": "X", "1": "Y"},
		},
		Questions: []models.Question{
			{
				Selection: []models.Selection{
					{Params: map[string]int{"X": 1}},
					{Params: map[string]int{"Y": 3}},
				},
			},
			{
				Selection: []models.Selection{
					{Params: map[string]int{"X": 2}},
					{Params: map[string]int{"X": 5, "Y": 2}},
				},
			},
		},
	}
}

func TestNewScoreInitializesDeclaredParameters(t *testing.T) {
	score := NewScore([]string{"A", "B", "C"})

	for _, name := range []string{"A", "B", "C"} {
		if score.Value(name) != 0 {
			t.Errorf("Expected %s to start at 0, got %d", name, score.Value(name))
		}
	}
	if got := score.Prompt(); got != "My data is a A:0,B:0,C:0" {
		t.Errorf("Unexpected prompt for zero score: %q", got)
	}
}

func TestAddIgnoresUndeclaredParameter(t *testing.T) {
	score := NewScore([]string{"A"})
	score.Add("Z", 7)

	if got := score.Prompt(); got != "My data is a A:0" {
		t.Errorf("Undeclared parameter leaked into score: %q", got)
	}
}

func TestAggregateEndToEnd(t *testing.T) {
	score, err := Aggregate("01", sampleTest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if score.Value("X") != 6 {
		t.Errorf("Expected X=6, got %d", score.Value("X"))
	}
	if score.Value("Y") != 2 {
		t.Errorf("Expected Y=2, got %d", score.Value("Y"))
	}
	if got := score.Prompt(); got != "My data is a X:6,Y:2" {
		t.Errorf("Expected prompt %q, got %q", "My data is a X:6,Y:2", got)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	def := sampleTest()

	first, err := Aggregate("01", def)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Aggregate("01", def)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregating the same input twice differed: %v vs %v", first, second)
	}
}

func TestSelectionFallback(t *testing.T) {
	testCases := []struct {
		name     string
		progress string
		i        int
		expected int
	}{
		{"digit", "12", 0, 1},
		{"second digit", "12", 1, 2},
		{"missing character", "1", 1, 0},
		{"empty progress", "", 0, 0},
		{"non-digit character", "1x", 1, 0},
		{"negative index", "1", -1, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := selectionAt(tc.progress, tc.i); got != tc.expected {
				t.Errorf("selectionAt(%q, %d) = %d, expected %d", tc.progress, tc.i, got, tc.expected)
			}
		})
	}
}

func TestAggregateShortProgressScoresAsSelectionZero(t *testing.T) {
	// One answered question out of two: question 2 falls back to
	// selection 0.
	score, err := Aggregate("1", sampleTest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if score.Value("X") != 2 {
		t.Errorf("Expected X=2, got %d", score.Value("X"))
	}
	if score.Value("Y") != 3 {
		t.Errorf("Expected Y=3, got %d", score.Value("Y"))
	}
}

func TestAggregateOutOfRangeSelection(t *testing.T) {
	_, err := Aggregate("09", sampleTest())
	if err == nil {
		t.Fatal("Expected an error for an out-of-range selection index")
	}

	var rangeErr *SelectionRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("Expected *SelectionRangeError, got %T: %v", err, err)
	}
	if rangeErr.Question != 1 || rangeErr.Index != 9 {
		t.Errorf("Unexpected error detail: %+v", rangeErr)
	}
}

func TestPromptFormat(t *testing.T) {
	score := NewScore([]string{"A", "B"})
	score.Add("A", 3)
	score.Add("B", -2)

	if got := score.Prompt(); got != "My data is a A:3,B:-2" {
		t.Errorf("Expected %q, got %q", "My data is a A:3,B:-2", got)
	}
}

func TestPromptEmptyScore(t *testing.T) {
	score := NewScore(nil)

	if got := score.Prompt(); got != "My data is a " {
		t.Errorf("Expected %q, got %q", "My data is a ", got)
	}
}

func TestParameterNamesDeclarationOrder(t *testing.T) {
	def := &models.TestDefinition{
		Settings: models.TestSettings{
			Parameters: map[string]string{"2": "C", "0": "A", "10": "K", "1": "B"},
		},
	}

	got := def.ParameterNames()
	expected := []string{"A", "B", "C", "K"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
