// Package gather collects contributions from routed domain agents.
//
// Querying N agents for one routing round is embarrassingly parallel; the
// gatherer fans out with bounded concurrency and normalizes results back to
// registry order regardless of completion order, since aggregation
// tie-breaks depend on a defined contributor order. A timeout or error from
// one agent becomes an empty contribution from that agent; the round
// proceeds with whatever survived.
package gather

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/doitintl/flexsolve/internal/metrics"
	"github.com/doitintl/flexsolve/types"
)

// DomainAgent is the consumed domain-agent collaborator interface. An agent
// may legitimately return an empty contribution when the request is outside
// its domain.
type DomainAgent interface {
	Invoke(ctx context.Context, profile types.AgentProfile, request string) (types.Contribution, error)
}

// Config controls fan-out behavior.
type Config struct {
	// MaxConcurrent bounds the number of in-flight agent calls.
	MaxConcurrent int `yaml:"max_concurrent"`
	// AgentTimeout bounds a single agent call. A timeout is treated as an
	// empty contribution, not a round failure.
	AgentTimeout time.Duration `yaml:"agent_timeout"`
	// RequestsPerSecond rate-limits collaborator invocations across the
	// session. Zero disables limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	// Burst is the limiter burst size.
	Burst int `yaml:"burst"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent: 5,
		AgentTimeout:  60 * time.Second,
	}
}

// Gatherer fans a request out to routed agents and collects contributions.
type Gatherer struct {
	agent   DomainAgent
	cfg     Config
	limiter *rate.Limiter
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New creates a gatherer around the domain-agent collaborator.
func New(agent DomainAgent, cfg Config, logger *zap.Logger, collector *metrics.Collector) *Gatherer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultConfig().MaxConcurrent
	}
	if cfg.AgentTimeout <= 0 {
		cfg.AgentTimeout = DefaultConfig().AgentTimeout
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return &Gatherer{
		agent:   agent,
		cfg:     cfg,
		limiter: limiter,
		logger:  logger.With(zap.String("component", "gatherer")),
		metrics: collector,
	}
}

// Collect queries every routed agent with the request and returns one
// contribution per agent, in the order the profiles were given. Failed or
// timed-out agents yield empty contributions in their slot. Collect only
// returns an error when the parent context is canceled, which aborts the
// whole round.
func (g *Gatherer) Collect(ctx context.Context, profiles []types.AgentProfile, request string) ([]types.Contribution, error) {
	if len(profiles) == 0 {
		return nil, nil
	}

	results := make([]types.Contribution, len(profiles))
	var eg errgroup.Group
	eg.SetLimit(g.cfg.MaxConcurrent)

	for i, profile := range profiles {
		i, profile := i, profile
		eg.Go(func() error {
			results[i] = g.collectOne(ctx, profile, request)
			return nil
		})
	}
	// Workers never return errors; per-agent failures degrade to empty
	// contributions instead.
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, types.NewError(types.ErrSessionAbort, "contribution round canceled").WithCause(err)
	}
	return results, nil
}

func (g *Gatherer) collectOne(parent context.Context, profile types.AgentProfile, request string) types.Contribution {
	empty := types.Contribution{AgentID: profile.ID}

	if g.limiter != nil {
		if err := g.limiter.Wait(parent); err != nil {
			return empty
		}
	}

	ctx, cancel := context.WithTimeout(parent, g.cfg.AgentTimeout)
	defer cancel()

	start := time.Now()
	contribution, err := g.agent.Invoke(ctx, profile, request)
	elapsed := time.Since(start)

	switch {
	case err != nil && ctx.Err() == context.DeadlineExceeded:
		g.logger.Warn("agent timed out, dropping its contribution",
			zap.String("agent_id", string(profile.ID)),
			zap.Duration("timeout", g.cfg.AgentTimeout),
		)
		g.metrics.ContributionFailed(string(profile.ID), "timeout")
		return empty
	case err != nil:
		g.logger.Warn("agent call failed, dropping its contribution",
			zap.String("agent_id", string(profile.ID)),
			zap.Error(err),
		)
		g.metrics.ContributionFailed(string(profile.ID), "error")
		return empty
	}

	contribution.AgentID = profile.ID
	g.metrics.ContributionCollected(string(profile.ID), elapsed)
	return contribution
}
