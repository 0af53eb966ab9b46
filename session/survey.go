package session

import (
	"strconv"
	"strings"
)

// SurveyPrompt is shown once a turn terminates with a delivered result.
const SurveyPrompt = "On a scale of 1-10, how satisfied are you with the help you received?"

// ParseRating extracts a 1-10 satisfaction rating from free-form survey
// input. It accepts a bare number anywhere in the reply ("8", "I'd say 8/10").
// The second return is false when no rating in range is present.
func ParseRating(reply string) (int, bool) {
	for _, field := range strings.FieldsFunc(reply, func(r rune) bool {
		return r < '0' || r > '9'
	}) {
		n, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		if n >= 1 && n <= 10 {
			return n, true
		}
	}
	return 0, false
}
