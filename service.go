package fluxbot

import (
	"context"

	"github.com/fluxbot/fluxbot/event"
)

// Service is a self-contained pipeline unit with its own startup step.
// Init runs once per service, in registration order, after the first
// connection is established and before the read loop processes frames;
// it may use the context to perform setup work (pre-populating caches,
// issuing calls). Serve receives the context and event directly and does
// its own extraction where needed.
type Service interface {
	Init(ctx context.Context, bc *Context) error
	Serve(ctx context.Context, bc *Context, ev *event.Event) Control
}

// Chain is a Service built from an ordered list of handlers, typically
// constructed with the On1..On6 adapters. Serve runs each handler in
// order against the event: a failed extraction skips that handler only,
// and Block stops both the chain and the surrounding pipeline.
type Chain struct {
	// Setup, when non-nil, becomes the service's Init step.
	Setup func(ctx context.Context, bc *Context) error

	Handlers []Handler
}

// Init implements Service.
func (c *Chain) Init(ctx context.Context, bc *Context) error {
	if c.Setup == nil {
		return nil
	}
	return c.Setup(ctx, bc)
}

// Serve implements Service.
func (c *Chain) Serve(ctx context.Context, bc *Context, ev *event.Event) Control {
	for _, h := range c.Handlers {
		if h.Handle(ctx, bc, ev) == Block {
			return Block
		}
	}
	return Continue
}
