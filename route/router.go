// Package route selects the domain agents consulted for a routing round.
//
// The default policy routes to every registered agent whose role matches the
// phase: researchers for clarification, specialists for solutions. Domain
// filtering is an optional refinement and never required for correctness;
// when filtering recognizes no service area it falls back to the full set.
package route

import (
	"strings"

	"go.uber.org/zap"

	"github.com/doitintl/flexsolve/registry"
	"github.com/doitintl/flexsolve/types"
)

// Config controls routing policy.
type Config struct {
	// FilterByDomain narrows the routed set to agents whose domain the
	// message lexically refers to. Off by default: route-to-all is the
	// simplest always-correct policy.
	FilterByDomain bool `yaml:"filter_by_domain"`
}

// Router selects agents for a phase and builds their request context.
type Router struct {
	registry *registry.Registry
	cfg      Config
	logger   *zap.Logger
}

// New creates a router over the given registry.
func New(reg *registry.Registry, cfg Config, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		registry: reg,
		cfg:      cfg,
		logger:   logger.With(zap.String("component", "router")),
	}
}

// Route returns the agents to consult for the message in the given phase,
// in registration order. An empty registry yields an empty set; the caller
// treats that as "no information available", not as an error.
func (r *Router) Route(message string, phase types.Phase) []types.AgentProfile {
	candidates := r.registry.ByRole(types.RoleForPhase(phase))
	if len(candidates) == 0 {
		r.logger.Warn("no agents registered for phase", zap.String("phase", string(phase)))
		return nil
	}

	if r.cfg.FilterByDomain {
		if filtered := filterByDomain(candidates, message); len(filtered) > 0 {
			r.logger.Debug("domain-filtered routing",
				zap.String("phase", string(phase)),
				zap.Int("selected", len(filtered)),
				zap.Int("candidates", len(candidates)),
			)
			return filtered
		}
		// No recognizable service area: fall back to the full set rather
		// than dropping the question.
	}
	return candidates
}

// BuildRequest composes the request context sent to routed agents: folded
// carryover from earlier rounds, the user's message, and any expert rework
// feedback. Feedback is appended to the existing context, never substituted
// for it, so a retry keeps the prior discussion.
func (r *Router) BuildRequest(turn *types.Turn, message, feedback string) string {
	var b strings.Builder
	for _, entry := range turn.Carryover {
		b.WriteString(entry)
		b.WriteString("\n")
	}
	b.WriteString(message)
	if feedback != "" {
		b.WriteString("\n\nExpert feedback on the previous proposal:\n")
		b.WriteString(feedback)
	}
	return b.String()
}

func filterByDomain(candidates []types.AgentProfile, message string) []types.AgentProfile {
	domains := InferDomains(message)
	if len(domains) == 0 {
		return nil
	}
	wanted := make(map[types.Domain]bool, len(domains))
	for _, d := range domains {
		wanted[d] = true
	}
	var out []types.AgentProfile
	for _, p := range candidates {
		if wanted[p.Domain] {
			out = append(out, p)
		}
	}
	return out
}
