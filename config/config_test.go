package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.Session.MaxRounds)
	assert.Equal(t, 3, cfg.Gate.MaxRework)
	assert.False(t, cfg.Route.FilterByDomain)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
session:
  max_rounds: 5
gate:
  max_rework: 2
  review_timeout: 30s
route:
  filter_by_domain: true
`), 0o600))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Session.MaxRounds)
	assert.Equal(t, 2, cfg.Gate.MaxRework)
	assert.Equal(t, 30*time.Second, cfg.Gate.ReviewTimeout)
	assert.True(t, cfg.Route.FilterByDomain)
	// Untouched sections keep defaults.
	assert.Equal(t, Default().Gather.MaxConcurrent, cfg.Gather.MaxConcurrent)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  max_rounds: 5\n"), 0o600))

	t.Setenv("FLEXSOLVE_SESSION_MAX_ROUNDS", "7")
	t.Setenv("FLEXSOLVE_GATHER_AGENT_TIMEOUT", "90s")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Session.MaxRounds)
	assert.Equal(t, 90*time.Second, cfg.Gather.AgentTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("FLEXSOLVE_GATE_MAX_REWORK", "0")
	_, err := NewLoader().Load()
	require.Error(t, err)

	t.Setenv("FLEXSOLVE_GATE_MAX_REWORK", "not-a-number")
	_, err = NewLoader().Load()
	require.Error(t, err)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := NewLoader().WithConfigPath("/nonexistent/config.yaml").Load()
	require.Error(t, err)
}

func TestBuildLogger(t *testing.T) {
	logger, err := BuildLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = BuildLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
}
