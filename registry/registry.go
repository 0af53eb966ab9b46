// Package registry manages the process-wide set of agent profiles.
// The registry is populated once at startup and read-only afterwards;
// it is passed by reference into the router instead of living behind a
// global lookup.
package registry

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/doitintl/flexsolve/types"
)

// Registry holds the registered agent profiles in registration order.
// Registration order is load-bearing: it defines the contributor order the
// aggregator uses for dedup tie-breaks.
type Registry struct {
	mu       sync.RWMutex
	profiles []types.AgentProfile
	byID     map[types.AgentID]types.AgentProfile
	logger   *zap.Logger
}

// New creates a registry with the given profiles.
func New(logger *zap.Logger, profiles ...types.AgentProfile) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		byID:   make(map[types.AgentID]types.AgentProfile),
		logger: logger.With(zap.String("component", "registry")),
	}
	for _, p := range profiles {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a profile. Registration happens at process start, before
// any turn is processed.
func (r *Registry) Register(profile types.AgentProfile) error {
	if profile.ID == "" {
		return types.NewError(types.ErrInternalError, "agent profile has empty ID")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[profile.ID]; exists {
		return types.NewError(types.ErrInternalError,
			fmt.Sprintf("agent %s already registered", profile.ID))
	}
	r.profiles = append(r.profiles, profile)
	r.byID[profile.ID] = profile
	r.logger.Debug("agent registered",
		zap.String("agent_id", string(profile.ID)),
		zap.String("domain", string(profile.Domain)),
		zap.String("role", string(profile.Role)),
	)
	return nil
}

// Profiles returns all profiles in registration order.
func (r *Registry) Profiles() []types.AgentProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.AgentProfile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// ByRole returns profiles with the given role, in registration order.
func (r *Registry) ByRole(role types.Role) []types.AgentProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []types.AgentProfile
	for _, p := range r.profiles {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the profile for an agent ID.
func (r *Registry) Lookup(id types.AgentID) (types.AgentProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	return p, ok
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}
