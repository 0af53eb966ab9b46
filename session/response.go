package session

import (
	"fmt"
	"strings"

	"github.com/doitintl/flexsolve/types"
)

// ResponseKind identifies what a turn response carries.
type ResponseKind string

const (
	// ResponseQuestions is a grouped clarification-question list.
	ResponseQuestions ResponseKind = "questions"
	// ResponseSolutions is a grouped, deduplicated solution list.
	ResponseSolutions ResponseKind = "solutions"
	// ResponseNotice is a direct textual reply or termination notice.
	ResponseNotice ResponseKind = "notice"
)

// Response is what the controller hands back to the embedding surface for
// one user message.
type Response struct {
	Kind   ResponseKind
	Result *types.AggregatedResult
	Notice string
	// Unreviewed flags a solution delivered without expert approval after
	// the rework bound was exhausted.
	Unreviewed bool

	// formatted holds the formatter's rewrite of the delivered text, set by
	// the controller after review concludes.
	formatted string
}

// FormatterFunc optionally rewrites the delivered solution text. It runs
// only once review has concluded, receives the result read-only, and must
// return the text to present in place of the default rendering.
type FormatterFunc func(result types.AggregatedResult, rendered string) string

// Render produces a plain-text rendering of the response. Rendering reads
// the aggregated result; it never alters it.
func (r *Response) Render() string {
	if r.formatted != "" {
		return r.formatted
	}
	switch r.Kind {
	case ResponseQuestions:
		var b strings.Builder
		b.WriteString("To narrow this down, please answer:\n")
		writeGroups(&b, r.Result)
		return b.String()
	case ResponseSolutions:
		var b strings.Builder
		b.WriteString("Proposed solution:\n")
		writeGroups(&b, r.Result)
		if r.Unreviewed {
			b.WriteString("\nNote: this proposal was not approved by a human expert; treat it as best-effort.\n")
		}
		return b.String()
	default:
		return r.Notice
	}
}

func writeGroups(b *strings.Builder, result *types.AggregatedResult) {
	if result == nil {
		return
	}
	n := 0
	for _, group := range result.Groups {
		if len(group.Items) == 0 {
			continue
		}
		fmt.Fprintf(b, "\n[%s]\n", group.Topic)
		for _, item := range group.Items {
			n++
			fmt.Fprintf(b, "%d. %s\n", n, item.Text)
		}
	}
}
