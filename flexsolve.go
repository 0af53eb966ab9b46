// Package flexsolve provides a top-level convenience entry point for
// assembling the AWS-support conversation pipeline with minimal boilerplate.
//
// Usage:
//
//	import "github.com/doitintl/flexsolve"
//
//	ctrl, err := flexsolve.New(
//		flexsolve.WithDomainAgent(myAgent),
//		flexsolve.WithExpert(myExpert),
//	)
//	turn := ctrl.NewTurn()
//	resp, err := ctrl.HandleMessage(ctx, turn, "my lambda keeps timing out")
//
// The domain-agent and expert collaborators are the only required inputs;
// everything else defaults to the full thirteen-domain AWS catalog and the
// standard configuration.
package flexsolve

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/doitintl/flexsolve/classify"
	"github.com/doitintl/flexsolve/config"
	"github.com/doitintl/flexsolve/gate"
	"github.com/doitintl/flexsolve/gather"
	"github.com/doitintl/flexsolve/internal/metrics"
	"github.com/doitintl/flexsolve/registry"
	"github.com/doitintl/flexsolve/route"
	"github.com/doitintl/flexsolve/session"
	"github.com/doitintl/flexsolve/types"
)

type options struct {
	cfg        *config.Config
	logger     *zap.Logger
	registry   *registry.Registry
	agent      gather.DomainAgent
	expert     gate.Expert
	classifier classify.TextClassifier
	formatter  session.FormatterFunc
	promReg    prometheus.Registerer
}

// Option configures the pipeline created by [New].
type Option func(*options)

// WithConfig supplies a full configuration; defaults apply otherwise.
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.cfg = &cfg }
}

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry replaces the default AWS domain-agent catalog.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithDomainAgent sets the domain-agent collaborator. Required.
func WithDomainAgent(agent gather.DomainAgent) Option {
	return func(o *options) { o.agent = agent }
}

// WithDomainAgentFunc sets a raw-text domain-agent collaborator whose replies
// are parsed into structured contributions.
func WithDomainAgentFunc(fn gather.TextFunc) Option {
	return func(o *options) { o.agent = fn }
}

// WithExpert sets the human-expert collaborator. Required.
func WithExpert(expert gate.Expert) Option {
	return func(o *options) { o.expert = expert }
}

// WithTextClassifier sets the advisory technical/casual collaborator.
// Without one, anything that is not an obvious greeting routes as technical.
func WithTextClassifier(tc classify.TextClassifier) Option {
	return func(o *options) { o.classifier = tc }
}

// WithFormatter installs a rewrite of the delivered solution text, applied
// after review concludes. Without one the default rendering is delivered.
func WithFormatter(f session.FormatterFunc) Option {
	return func(o *options) { o.formatter = f }
}

// WithMetrics enables Prometheus instrumentation across the pipeline,
// registering the pipeline's metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.promReg = reg }
}

// New assembles a turn controller from the given options. At minimum the
// domain-agent and expert collaborators must be provided.
func New(opts ...Option) (*session.Controller, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.agent == nil {
		return nil, types.NewError(types.ErrInternalError, "a domain-agent collaborator is required")
	}
	if o.expert == nil {
		return nil, types.NewError(types.ErrInternalError, "an expert collaborator is required")
	}

	if o.cfg == nil {
		cfg := config.Default()
		o.cfg = &cfg
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.registry == nil {
		o.registry = registry.NewDefault(o.logger)
	}

	var collector *metrics.Collector
	if o.promReg != nil {
		collector = metrics.NewCollector("flexsolve", o.promReg, o.logger)
	}

	ctrl := session.NewController(
		classify.New(o.classifier, o.logger),
		route.New(o.registry, o.cfg.Route, o.logger),
		gather.New(o.agent, o.cfg.Gather, o.logger, collector),
		gate.New(o.expert, o.cfg.Gate, o.logger, collector),
		session.Config{
			MaxRounds:            o.cfg.Session.MaxRounds,
			CarryoverTokenBudget: o.cfg.Session.CarryoverTokenBudget,
			TokenizerModel:       o.cfg.Session.TokenizerModel,
		},
		o.logger,
		collector,
	)
	if o.formatter != nil {
		ctrl.SetFormatter(o.formatter)
	}
	return ctrl, nil
}
