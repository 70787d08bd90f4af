package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	candidates := []string{"Inventory", "Slot", "Rarity", "shared.Container", "Stack", "Invent"}

	tests := []struct {
		name     string
		input    string
		limit    int
		expected []string
	}{
		{name: "typo", input: "Inventroy", limit: 3, expected: []string{"Inventory", "Invent"}},
		{name: "case only", input: "inventory", limit: 3, expected: []string{"Inventory", "Invent"}},
		{name: "limit", input: "Inventroy", limit: 1, expected: []string{"Inventory"}},
		{name: "qualified", input: "shared.Contianer", limit: 3, expected: []string{"shared.Container"}},
		{name: "separators ignored", input: "RARITY", limit: 3, expected: []string{"Rarity"}},
		{name: "nothing close", input: "Weapon", limit: 3, expected: []string{}},
		{name: "exact name skipped", input: "Slot", limit: 3, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Suggest(tt.input, candidates, tt.limit))
		})
	}
}

func TestSuggest_Duplicates(t *testing.T) {
	assert.Equal(t, []string{"Slot"}, Suggest("Slott", []string{"Slot", "Slot"}, 0))
}

func TestHint(t *testing.T) {
	assert.Equal(t, "", Hint(nil))
	assert.Equal(t, "did you mean Slot?", Hint([]string{"Slot"}))
	assert.Equal(t, "did you mean Slot or Stack?", Hint([]string{"Slot", "Stack"}))
	assert.Equal(t, "did you mean a, b or c?", Hint([]string{"a", "b", "c"}))
}
