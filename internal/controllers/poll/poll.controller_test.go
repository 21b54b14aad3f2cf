package pollController

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	a := uuid.Must(uuid.NewV7())
	b := uuid.Must(uuid.NewV7())
	c := uuid.Must(uuid.NewV7())

	tests := []struct {
		name     string
		input    []uuid.UUID
		expected []uuid.UUID
	}{
		{
			name:     "no duplicates",
			input:    []uuid.UUID{a, b, c},
			expected: []uuid.UUID{a, b, c},
		},
		{
			name:     "duplicates removed, order preserved",
			input:    []uuid.UUID{a, b, a, c, b},
			expected: []uuid.UUID{a, b, c},
		},
		{
			name:     "all the same",
			input:    []uuid.UUID{a, a, a},
			expected: []uuid.UUID{a},
		},
		{
			name:     "empty",
			input:    []uuid.UUID{},
			expected: []uuid.UUID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dedupe(tt.input))
		})
	}
}
