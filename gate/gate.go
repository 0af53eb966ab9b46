// Package gate implements the human-in-the-loop approval checkpoint between
// aggregation and final delivery.
//
// Review may block indefinitely on a live human, so submission is bounded by
// a caller-supplied context; an expired review surfaces as a stalled-turn
// condition rather than a silent approval or rejection.
package gate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/doitintl/flexsolve/internal/metrics"
	"github.com/doitintl/flexsolve/types"
)

// Expert is the consumed human-expert collaborator interface. The returned
// text is parsed with ParseVerdict.
type Expert interface {
	Review(ctx context.Context, result types.AggregatedResult) (string, error)
}

// Config controls review behavior.
type Config struct {
	// MaxRework bounds expert-requested rework cycles per turn. When the
	// bound is exceeded the turn fails open: the last result is delivered
	// flagged as unreviewed.
	MaxRework int `yaml:"max_rework"`
	// ReviewTimeout bounds a single review. Zero means no bound beyond the
	// caller's context.
	ReviewTimeout time.Duration `yaml:"review_timeout"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxRework: 3}
}

// Gate submits aggregated results for expert review.
type Gate struct {
	expert  Expert
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New creates a gate around the expert collaborator.
func New(expert Expert, cfg Config, logger *zap.Logger, collector *metrics.Collector) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRework <= 0 {
		cfg.MaxRework = DefaultConfig().MaxRework
	}
	return &Gate{
		expert:  expert,
		cfg:     cfg,
		logger:  logger.With(zap.String("component", "escalation_gate")),
		metrics: collector,
	}
}

// MaxRework returns the configured rework bound.
func (g *Gate) MaxRework() int {
	return g.cfg.MaxRework
}

// SubmitForReview sends the result to the human expert and returns the
// parsed verdict. The result itself is passed through read-only: on
// approval the caller delivers it exactly as reviewed. A review that
// outlives its deadline returns a REVIEW_STALLED error; the caller must not
// interpret that as either approval or rework.
func (g *Gate) SubmitForReview(ctx context.Context, result types.AggregatedResult) (types.ExpertVerdict, error) {
	if g.cfg.ReviewTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.ReviewTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.expert.Review(ctx, result)
	g.metrics.ReviewFinished(time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			g.logger.Warn("expert review stalled", zap.Error(err))
			return types.ExpertVerdict{}, types.NewError(types.ErrReviewStalled,
				"human review did not complete").WithCause(err)
		}
		return types.ExpertVerdict{}, types.NewError(types.ErrInternalError,
			"expert review failed").WithCause(err)
	}

	verdict := ParseVerdict(text)
	g.logger.Info("expert verdict received",
		zap.String("decision", string(verdict.Decision)),
		zap.Bool("has_feedback", verdict.Feedback != ""),
	)
	if verdict.Decision == types.DecisionRework {
		g.metrics.ReworkCycle()
	}
	return verdict, nil
}
