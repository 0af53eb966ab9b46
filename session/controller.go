// Package session owns the turn lifecycle: it wires the classifier, router,
// gatherer, aggregator and escalation gate into the
// GATHERING_CONTEXT -> PROPOSING_SOLUTION -> AWAITING_EXPERT -> TERMINATED
// state machine and enforces its bounds.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/doitintl/flexsolve/aggregate"
	"github.com/doitintl/flexsolve/classify"
	"github.com/doitintl/flexsolve/gate"
	"github.com/doitintl/flexsolve/gather"
	"github.com/doitintl/flexsolve/internal/metrics"
	"github.com/doitintl/flexsolve/route"
	"github.com/doitintl/flexsolve/types"
)

const casualReply = "Hello! How can I help with your AWS environment today?"

// Config controls turn processing.
type Config struct {
	// MaxRounds bounds routing rounds per turn.
	MaxRounds int
	// CarryoverTokenBudget bounds the folded context, in tokens.
	CarryoverTokenBudget int
	// TokenizerModel selects the tiktoken encoding for the budget.
	TokenizerModel string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRounds:            20,
		CarryoverTokenBudget: 4096,
		TokenizerModel:       "gpt-4o",
	}
}

// Controller processes the turns of one user conversation. A controller
// instance owns its turns exclusively; it is not safe for concurrent use.
type Controller struct {
	classifier *classify.Classifier
	router     *route.Router
	gatherer   *gather.Gatherer
	gate       *gate.Gate
	folder     *Folder
	formatter  FormatterFunc
	cfg        Config
	logger     *zap.Logger
	metrics    *metrics.Collector
	tracer     trace.Tracer
}

// NewController wires the pipeline components into a turn controller.
func NewController(
	classifier *classify.Classifier,
	router *route.Router,
	gatherer *gather.Gatherer,
	reviewGate *gate.Gate,
	cfg Config,
	logger *zap.Logger,
	collector *metrics.Collector,
) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultConfig()
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = def.MaxRounds
	}
	if cfg.TokenizerModel == "" {
		cfg.TokenizerModel = def.TokenizerModel
	}
	return &Controller{
		classifier: classifier,
		router:     router,
		gatherer:   gatherer,
		gate:       reviewGate,
		folder:     NewFolder(cfg.TokenizerModel, cfg.CarryoverTokenBudget, logger),
		cfg:        cfg,
		logger:     logger.With(zap.String("component", "turn_controller")),
		metrics:    collector,
		tracer:     otel.Tracer("github.com/doitintl/flexsolve/session"),
	}
}

// SetFormatter installs an optional rewrite of delivered solution text. The
// formatter runs only after review concludes, never on clarification
// questions or notices.
func (c *Controller) SetFormatter(f FormatterFunc) {
	c.formatter = f
}

// NewTurn starts a fresh turn.
func (c *Controller) NewTurn() *types.Turn {
	return types.NewTurn(uuid.NewString())
}

// Abort terminates the turn immediately, discarding in-flight work. The
// escalation gate is never invoked for an aborted turn.
func (c *Controller) Abort(turn *types.Turn, reason string) {
	if turn.Terminated() {
		return
	}
	_ = turn.AdvanceTo(types.StatusTerminated)
	c.metrics.TurnTerminated("aborted")
	c.logger.Info("turn aborted",
		zap.String("turn_id", turn.ID),
		zap.String("reason", reason),
	)
}

// HandleMessage processes one user message against the turn and returns the
// response to present. Component-local failures degrade into the response;
// only session-abort-class errors (cancellation, stalled review,
// unrecoverable collaborator failure) are returned as errors.
func (c *Controller) HandleMessage(ctx context.Context, turn *types.Turn, text string) (*Response, error) {
	if turn.Terminated() {
		return nil, types.NewError(types.ErrSessionAbort,
			fmt.Sprintf("turn %s already terminated", turn.ID))
	}

	ctx, span := c.tracer.Start(ctx, "turn.handle",
		trace.WithAttributes(attribute.String("turn.id", turn.ID)))
	defer span.End()

	turn.Record(types.NewUserMessage(text))

	outcome := c.classifier.Classify(ctx, text, turn)
	c.logger.Debug("message classified",
		zap.String("turn_id", turn.ID),
		zap.String("outcome", string(outcome)),
	)

	switch outcome {
	case classify.OutcomeCasual:
		return &Response{Kind: ResponseNotice, Notice: casualReply}, nil

	case classify.OutcomeTerminating:
		c.folder.Fold(turn, "User: "+text)
		if err := turn.AdvanceTo(types.StatusProposingSolution); err != nil {
			return nil, err
		}
		return c.proposeSolution(ctx, turn, text)

	default:
		// Once the turn left GATHERING_CONTEXT it never goes back: a turn
		// parked in AWAITING_EXPERT after a stalled review resumes the
		// solution phase, it does not reopen clarification.
		if turn.Status == types.StatusGatheringContext {
			return c.gatherContext(ctx, turn, text)
		}
		return c.proposeSolution(ctx, turn, text)
	}
}

// gatherContext runs one clarification round: researchers propose questions,
// which are aggregated and presented to the user. When no questions come
// back the turn moves straight to the solution phase.
func (c *Controller) gatherContext(ctx context.Context, turn *types.Turn, text string) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "turn.gather_context")
	defer span.End()

	c.folder.Fold(turn, "User: "+text)

	result, resp, err := c.runRound(ctx, turn, text, "", types.PhaseQuestions)
	if resp != nil || err != nil {
		return resp, err
	}

	if result.Empty() {
		// Researchers have no outstanding questions; propose a solution.
		if err := turn.AdvanceTo(types.StatusProposingSolution); err != nil {
			return nil, err
		}
		return c.proposeSolution(ctx, turn, text)
	}

	response := &Response{Kind: ResponseQuestions, Result: &result}
	rendered := response.Render()
	turn.Record(types.NewAgentMessage("coordinator", rendered))
	c.folder.Fold(turn, "Clarifying questions asked:\n"+rendered)
	return response, nil
}

// proposeSolution runs solution rounds through the escalation gate until
// approval, rework exhaustion, or termination.
func (c *Controller) proposeSolution(ctx context.Context, turn *types.Turn, text string) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "turn.propose_solution")
	defer span.End()

	feedback := ""
	reworks := 0
	for {
		result, resp, err := c.runRound(ctx, turn, text, feedback, types.PhaseSolutions)
		if resp != nil || err != nil {
			return resp, err
		}

		if result.Empty() {
			// Nothing usable came back; surface it instead of retrying.
			return c.terminate(turn, "no_information",
				"The specialist team could not produce a proposal for this request."), nil
		}

		if err := turn.AdvanceTo(types.StatusAwaitingExpert); err != nil {
			return nil, err
		}

		verdict, err := c.gate.SubmitForReview(ctx, result)
		if err != nil {
			if types.IsCode(err, types.ErrReviewStalled) {
				// Stalled turn: neither approved nor rejected. The turn
				// stays in AWAITING_EXPERT for the embedder to resolve.
				return nil, err
			}
			c.terminateQuiet(turn, "aborted")
			return nil, err
		}
		turn.Record(types.NewExpertMessage("aws_architect",
			string(verdict.Decision)+": "+verdict.Feedback))

		if verdict.Decision == types.DecisionApprove {
			return c.deliver(turn, result, false, "approved"), nil
		}

		reworks++
		if reworks >= c.gate.MaxRework() {
			// Fail open: deliver the last result flagged as unreviewed
			// rather than looping forever or dropping the user's question.
			c.logger.Warn("rework bound exhausted, delivering unreviewed result",
				zap.String("turn_id", turn.ID),
				zap.Int("reworks", reworks),
			)
			return c.deliver(turn, result, true, "unreviewed"), nil
		}

		if err := turn.AdvanceTo(types.StatusProposingSolution); err != nil {
			return nil, err
		}
		feedback = verdict.Feedback
		c.folder.Fold(turn, "Expert feedback: "+feedback)
	}
}

// runRound routes, gathers and aggregates one phase. It returns a non-nil
// response (or error) when the round itself decided the turn's fate;
// otherwise the caller consumes the aggregated result.
func (c *Controller) runRound(ctx context.Context, turn *types.Turn, text, feedback string, phase types.Phase) (types.AggregatedResult, *Response, error) {
	turn.Rounds++
	if turn.Rounds > c.cfg.MaxRounds {
		return types.AggregatedResult{}, c.terminate(turn, "round_limit",
			"This conversation reached its round limit; please start a new request."), nil
	}
	c.metrics.RoundStarted(string(phase))

	profiles := c.router.Route(text, phase)
	if len(profiles) == 0 {
		return types.AggregatedResult{}, c.terminate(turn, "no_information",
			"No agents are available for this request."), nil
	}

	request := c.router.BuildRequest(turn, text, feedback)
	contributions, err := c.gatherer.Collect(ctx, profiles, request)
	if err != nil {
		c.Abort(turn, "contribution round canceled")
		return types.AggregatedResult{}, nil, err
	}

	return aggregate.Aggregate(contributions, phase), nil, nil
}

// deliver terminates the turn with the final solution, applying the
// configured formatter to the rendered text. Review has already concluded
// by the time this runs; the aggregated result itself is never altered.
func (c *Controller) deliver(turn *types.Turn, result types.AggregatedResult, unreviewed bool, outcome string) *Response {
	resp := &Response{Kind: ResponseSolutions, Result: &result, Unreviewed: unreviewed}
	if c.formatter != nil {
		resp.formatted = c.formatter(result, resp.Render())
	}
	turn.Record(types.NewAgentMessage("coordinator", resp.Render()))
	c.terminateQuiet(turn, outcome)
	return resp
}

// terminate ends the turn with a user-facing notice.
func (c *Controller) terminate(turn *types.Turn, outcome, notice string) *Response {
	c.terminateQuiet(turn, outcome)
	if notice == "" {
		return nil
	}
	turn.Record(types.NewAgentMessage("coordinator", notice))
	return &Response{Kind: ResponseNotice, Notice: notice}
}

func (c *Controller) terminateQuiet(turn *types.Turn, outcome string) {
	if turn.Terminated() {
		return
	}
	_ = turn.AdvanceTo(types.StatusTerminated)
	c.metrics.TurnTerminated(outcome)
	c.logger.Info("turn terminated",
		zap.String("turn_id", turn.ID),
		zap.String("outcome", outcome),
		zap.Int("rounds", turn.Rounds),
	)
}
