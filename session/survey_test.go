package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
		ok    bool
	}{
		{"bare number", "8", 8, true},
		{"embedded", "I'd say 9, thanks!", 9, true},
		{"slash form", "7/10", 7, true},
		{"upper bound", "10", 10, true},
		{"out of range", "42", 0, false},
		{"zero", "0", 0, false},
		{"no number", "great, thanks", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRating(tt.reply)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
