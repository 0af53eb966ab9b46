// Package classify decides how an incoming user message is handled:
// routed to domain agents, answered directly, or treated as the signal to
// move from clarification to solution.
//
// The precedence TERMINATING > CASUAL > TECHNICAL is owned here. An external
// text-classification collaborator may be consulted, but only as advisory
// input for the technical/casual split; it never overrides the termination
// rules.
package classify

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/doitintl/flexsolve/types"
)

// Outcome is the classification of one user message.
type Outcome string

const (
	// OutcomeTechnical routes the message to domain agents.
	OutcomeTechnical Outcome = "technical"
	// OutcomeCasual is handled directly without routing.
	OutcomeCasual Outcome = "casual"
	// OutcomeTerminating ends the clarification phase: the user answered the
	// outstanding questions or explicitly asked to proceed.
	OutcomeTerminating Outcome = "terminating"
)

// TextClassifier is the external technical/non-technical collaborator.
// Its answer is advisory; classification policy stays in this package.
type TextClassifier interface {
	IsTechnical(ctx context.Context, text string) (bool, error)
}

// numberedAnswer matches replies shaped like answers to a numbered question
// list, e.g. "1. ELB 2. us-west-2".
var numberedAnswer = regexp.MustCompile(`(^|\s)\d+[.)]\s*\S`)

// proceedPhrases explicitly ask to move on to the solution.
var proceedPhrases = []string{
	"proceed",
	"continue with solution",
	"continue with the solution",
	"go ahead",
}

// greetings cover casual openers with no technical content.
var greetings = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening",
	"thanks", "thank you", "how are you",
}

// Classifier implements the message classification contract.
type Classifier struct {
	external TextClassifier
	logger   *zap.Logger
}

// New creates a classifier. external may be nil, in which case anything that
// is neither terminating nor an obvious greeting is treated as technical.
func New(external TextClassifier, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		external: external,
		logger:   logger.With(zap.String("component", "classifier")),
	}
}

// Classify determines the outcome for the latest user message. The decision
// itself is pure; only the advisory technical/casual call can block.
func (c *Classifier) Classify(ctx context.Context, message string, turn *types.Turn) Outcome {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)

	// Termination signals short-circuit everything else, even when the text
	// also looks technical.
	if c.isTerminating(lower, turn) {
		return OutcomeTerminating
	}

	if isGreeting(lower) && !clarificationPending(turn) {
		return OutcomeCasual
	}

	if c.external != nil {
		technical, err := c.external.IsTechnical(ctx, trimmed)
		if err != nil {
			// Fail safe to TECHNICAL: over-routing is recoverable,
			// silently dropping a real question is not.
			c.logger.Warn("text classification failed, assuming technical",
				zap.Error(err))
			return OutcomeTechnical
		}
		if !technical {
			return OutcomeCasual
		}
	}
	return OutcomeTechnical
}

func (c *Classifier) isTerminating(lower string, turn *types.Turn) bool {
	for _, phrase := range proceedPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	// A numbered reply only terminates the clarification phase when there is
	// an open clarification request to answer.
	return clarificationPending(turn) && numberedAnswer.MatchString(lower)
}

// clarificationPending reports whether the turn has an open clarification
// request: agents have already asked questions and no solution phase has
// started.
func clarificationPending(turn *types.Turn) bool {
	return turn != nil &&
		turn.Status == types.StatusGatheringContext &&
		turn.HasMessageKind(types.KindAgent)
}

// isGreeting matches only pure chit-chat openers. Anything carrying more
// than a couple of words is left to the advisory classifier so a greeting
// followed by a real question still routes.
func isGreeting(lower string) bool {
	stripped := strings.Trim(lower, " .,!?")
	for _, g := range greetings {
		if stripped == g || stripped == g+" there" || stripped == g+" everyone" {
			return true
		}
	}
	return false
}
