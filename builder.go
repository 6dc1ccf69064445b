package fluxbot

import (
	"github.com/fluxbot/fluxbot/connect"
	"github.com/fluxbot/fluxbot/logger"
	"github.com/fluxbot/fluxbot/metric"
)

// registration is one ordered pipeline element: a bare handler or a
// service, plus any guards attached at registration time.
type registration struct {
	handler Handler
	service Service
	guards  []Guard
}

// Builder assembles a Bot: connection config, shared state, and the
// ordered handler/service registrations. Registration order defines
// pipeline precedence and is never reordered at runtime.
type Builder struct {
	cfg     connect.Config
	states  *stateRegistry
	regs    []registration
	metrics *metric.Metrics
}

// New creates a Builder for the given connection configuration.
func New(cfg connect.Config) *Builder {
	return &Builder{
		cfg:    cfg,
		states: newStateRegistry(),
	}
}

// WithState registers a shared value, keyed by its type. Registering a
// second value of the same type replaces the first. States are read via
// StateOf or the extract.State extractor.
func (b *Builder) WithState(v any) *Builder {
	b.states.insert(v)
	return b
}

// WithHandler appends a handler to the pipeline. Guards are evaluated
// before the handler's extractors; a failing guard skips the handler for
// that event.
func (b *Builder) WithHandler(h Handler, guards ...Guard) *Builder {
	b.regs = append(b.regs, registration{handler: h, guards: guards})
	return b
}

// WithService appends a service to the pipeline. Its Init step runs once
// at startup, in registration order, before the read loop starts.
func (b *Builder) WithService(s Service, guards ...Guard) *Builder {
	b.regs = append(b.regs, registration{service: s, guards: guards})
	return b
}

// WithMetrics attaches Prometheus instrumentation. The caller registers
// the collectors with their registry of choice.
func (b *Builder) WithMetrics(m *metric.Metrics) *Builder {
	b.metrics = m
	return b
}

// Build assembles the Bot. The Builder must not be reused afterwards.
func (b *Builder) Build() *Bot {
	return &Bot{
		cfg:  b.cfg,
		regs: b.regs,
		bc:   newContext(b.states, b.metrics),
		log:  logger.New("bot"),
	}
}
