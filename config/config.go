// Package config provides unified configuration loading for flexsolve:
// defaults, overridden by a YAML file, overridden by environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/doitintl/flexsolve/gate"
	"github.com/doitintl/flexsolve/gather"
	"github.com/doitintl/flexsolve/route"
)

// Config is the complete flexsolve configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Session SessionConfig `yaml:"session"`
	Route   route.Config  `yaml:"route"`
	Gather  gather.Config `yaml:"gather"`
	Gate    gate.Config   `yaml:"gate"`
}

// LogConfig controls the zap logger built by BuildLogger.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format: json or console.
	Format string `yaml:"format"`
}

// SessionConfig controls turn processing.
type SessionConfig struct {
	// MaxRounds bounds routing rounds per turn.
	MaxRounds int `yaml:"max_rounds"`
	// CarryoverTokenBudget bounds the folded context carried between
	// rounds, measured in tokens.
	CarryoverTokenBudget int `yaml:"carryover_token_budget"`
	// TokenizerModel selects the tiktoken encoding used for the budget.
	TokenizerModel string `yaml:"tokenizer_model"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Session: SessionConfig{
			MaxRounds:            20,
			CarryoverTokenBudget: 4096,
			TokenizerModel:       "gpt-4o",
		},
		Route:  route.Config{},
		Gather: gather.DefaultConfig(),
		Gate:   gate.DefaultConfig(),
	}
}

// Validate checks the configuration for values the runtime cannot work with.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Session.MaxRounds <= 0 {
		return fmt.Errorf("session.max_rounds must be positive, got %d", c.Session.MaxRounds)
	}
	if c.Session.CarryoverTokenBudget <= 0 {
		return fmt.Errorf("session.carryover_token_budget must be positive, got %d", c.Session.CarryoverTokenBudget)
	}
	if c.Gather.MaxConcurrent <= 0 {
		return fmt.Errorf("gather.max_concurrent must be positive, got %d", c.Gather.MaxConcurrent)
	}
	if c.Gather.AgentTimeout <= 0 {
		return fmt.Errorf("gather.agent_timeout must be positive, got %s", c.Gather.AgentTimeout)
	}
	if c.Gate.MaxRework <= 0 {
		return fmt.Errorf("gate.max_rework must be positive, got %d", c.Gate.MaxRework)
	}
	return nil
}

// Loader loads configuration with the precedence
// defaults -> YAML file -> environment variables.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a loader with the default env prefix.
func NewLoader() *Loader {
	return &Loader{envPrefix: "FLEXSOLVE"}
}

// WithConfigPath sets the YAML file to load. Optional; a missing path is
// only an error when it was set explicitly.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix overrides the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load resolves the final configuration.
func (l *Loader) Load() (Config, error) {
	cfg := Default()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) error {
	var err error
	setString(l.key("LOG_LEVEL"), &cfg.Log.Level)
	setString(l.key("LOG_FORMAT"), &cfg.Log.Format)
	err = firstErr(err, setInt(l.key("SESSION_MAX_ROUNDS"), &cfg.Session.MaxRounds))
	err = firstErr(err, setInt(l.key("SESSION_CARRYOVER_TOKEN_BUDGET"), &cfg.Session.CarryoverTokenBudget))
	setString(l.key("SESSION_TOKENIZER_MODEL"), &cfg.Session.TokenizerModel)
	err = firstErr(err, setBool(l.key("ROUTE_FILTER_BY_DOMAIN"), &cfg.Route.FilterByDomain))
	err = firstErr(err, setInt(l.key("GATHER_MAX_CONCURRENT"), &cfg.Gather.MaxConcurrent))
	err = firstErr(err, setDuration(l.key("GATHER_AGENT_TIMEOUT"), &cfg.Gather.AgentTimeout))
	err = firstErr(err, setInt(l.key("GATE_MAX_REWORK"), &cfg.Gate.MaxRework))
	err = firstErr(err, setDuration(l.key("GATE_REVIEW_TIMEOUT"), &cfg.Gate.ReviewTimeout))
	return err
}

func (l *Loader) key(suffix string) string {
	return l.envPrefix + "_" + suffix
}

func setString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func setDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// BuildLogger constructs a zap logger from the log configuration.
func BuildLogger(cfg LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	zc.Level = level
	return zc.Build()
}
