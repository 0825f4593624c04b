package models

import (
	"sort"
	"strconv"
)

// Selection is one answer option of a question. Params maps a parameter
// name to the integer delta that choosing this option contributes.
type Selection struct {
	Text   string         `bson:"text" json:"text"`
	Params map[string]int `bson:"params" json:"params"`
}

type Question struct {
	Text      string      `bson:"text" json:"text"`
	Selection []Selection `bson:"selection" json:"selection"`
}

// TestSettings.Parameters maps an index key ("0", "1", ...) to a
// human-readable parameter name.
type TestSettings struct {
	Parameters map[string]string `bson:"parameters" json:"parameters"`
}

type TestDefinition struct {
	ID            int          `bson:"_id" json:"id"`
	TestName      string       `bson:"test_name" json:"test_name"`
	SystemMessage string       `bson:"system_message" json:"system_message"`
	Settings      TestSettings `bson:"settings" json:"settings"`
	Questions     []Question   `bson:"questions" json:"questions"`
}

// ParameterNames returns the declared parameter names in declaration
// order, i.e. ascending numeric order of the Parameters index keys.
func (t *TestDefinition) ParameterNames() []string {
	keys := make([]string, 0, len(t.Settings.Parameters))
	for k := range t.Settings.Parameters {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr != nil || berr != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, t.Settings.Parameters[k])
	}
	return names
}
