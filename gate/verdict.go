package gate

import (
	"strings"

	"github.com/doitintl/flexsolve/types"
)

const (
	approvalKeyword = "APPROVE"
	reworkPrefix    = "REWORK:"
)

// ParseVerdict turns raw expert text into a verdict.
//
// Matching is deliberately lexical, not semantic: any verdict containing the
// approval keyword (case-insensitive) counts as approval, even surrounded by
// qualifying language. "REWORK: <feedback>" requests rework with the
// feedback attached. Anything else is a malformed verdict and conservatively
// treated as rework with empty feedback — an ambiguous verdict is never
// shipped as approved. Swapping the matching strategy only requires changing
// this function; the state machine never inspects verdict text.
func ParseVerdict(text string) types.ExpertVerdict {
	trimmed := strings.TrimSpace(text)
	upper := strings.ToUpper(trimmed)

	if idx := strings.Index(upper, reworkPrefix); idx >= 0 {
		feedback := strings.TrimSpace(trimmed[idx+len(reworkPrefix):])
		return types.ExpertVerdict{Decision: types.DecisionRework, Feedback: feedback}
	}
	if strings.Contains(upper, approvalKeyword) {
		return types.ExpertVerdict{Decision: types.DecisionApprove}
	}
	return types.ExpertVerdict{Decision: types.DecisionRework}
}
