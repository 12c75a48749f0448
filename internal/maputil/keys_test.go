package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]int
		expected []string
	}{
		{
			name:     "component counts",
			input:    map[string]int{"responses": 1, "parameters": 2, "headers": 1},
			expected: []string{"headers", "parameters", "responses"},
		},
		{
			name:     "single section",
			input:    map[string]int{"schemas": 4},
			expected: []string{"schemas"},
		},
		{
			name:     "empty map",
			input:    map[string]int{},
			expected: []string{},
		},
		{
			name:     "nil map",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SortedKeys(tt.input))
		})
	}
}

func TestSortedKeys_SetValues(t *testing.T) {
	input := map[string]struct{}{"Widget": {}, "Error": {}, "Part": {}}
	assert.Equal(t, []string{"Error", "Part", "Widget"}, SortedKeys(input))
}
