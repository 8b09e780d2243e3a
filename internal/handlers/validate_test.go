package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input string
		id    int
		ok    bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"1.5", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"", 0, false},
		{" 7", 0, false},
	}

	for _, tt := range tests {
		id, ok := parseID(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.id, id, "input %q", tt.input)
	}
}
