package fluxbot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"

	"github.com/fluxbot/fluxbot/connect"
	"github.com/fluxbot/fluxbot/event"
	"github.com/fluxbot/fluxbot/logger"
	"github.com/fluxbot/fluxbot/metric"
)

// Bot runs the connection lifecycle: dial, service initialization, the
// read loop that classifies frames, and reconnection per the configured
// policy. Build one with Builder.
type Bot struct {
	cfg  connect.Config
	regs []registration
	bc   *Context
	log  *logger.Logger

	servicesReady bool
}

// Context returns the shared bot context, e.g. to issue calls from
// outside the pipeline.
func (b *Bot) Context() *Context {
	return b.bc
}

// Run connects and processes frames until ctx is cancelled or the
// reconnection policy gives up. A service Init failure aborts Run
// without reconnecting.
func (b *Bot) Run(ctx context.Context) error {
	bo := b.cfg.Reconnect.BackOff()

	for {
		err := b.runSession(ctx, bo)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var initErr *serviceInitError
		if errors.As(err, &initErr) {
			return err
		}

		delay := bo.NextBackOff()
		if delay == backoff.Stop {
			b.log.Error("giving up after connection failure: %v", err)
			return err
		}
		b.log.Warn("connection lost: %v, reconnecting in %s", err, delay)
		b.bc.metrics.ObserveReconnect()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// serviceInitError marks a startup failure that must not be retried.
type serviceInitError struct{ err error }

func (e *serviceInitError) Error() string { return fmt.Sprintf("fluxbot: service init: %v", e.err) }
func (e *serviceInitError) Unwrap() error { return e.err }

// runSession dials once and serves the connection until it fails.
func (b *Bot) runSession(ctx context.Context, bo backoff.BackOff) error {
	conn, err := connect.Dial(ctx, b.cfg)
	if err != nil {
		return err
	}
	b.log.Info("connected to %s", b.cfg.Target)

	b.bc.attach(conn)
	defer b.bc.detach()

	// Init every service once, in registration order, before the read
	// loop touches a single frame.
	if !b.servicesReady {
		if err := b.initServices(ctx); err != nil {
			return &serviceInitError{err: err}
		}
		b.servicesReady = true
	}

	bo.Reset()
	return b.readLoop(ctx, conn)
}

func (b *Bot) initServices(ctx context.Context) error {
	var result *multierror.Error
	for _, reg := range b.regs {
		if reg.service == nil {
			continue
		}
		if err := reg.service.Init(ctx, b.bc); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// readLoop is the single owner of the read half. It classifies each frame
// in strict arrival order: correlated replies go to the pending table
// synchronously, events spawn an independent dispatch goroutine so a
// stalled handler never blocks delivery of later frames.
func (b *Bot) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadMessage when ctx is cancelled.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-watchDone:
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", ErrConnClosed, err)
		}
		if msgType != websocket.TextMessage {
			continue
		}

		if echo, ok := replyEcho(data); ok {
			b.bc.metrics.ObserveFrame(metric.FrameReply)
			if !b.bc.completeReply(echo, data) {
				b.log.Trace("dropped late reply echo=%s", echo)
			}
			continue
		}

		ev, err := event.Decode(data)
		if err != nil {
			b.log.Warn("malformed event frame: %v", err)
			continue
		}
		b.bc.metrics.ObserveFrame(metric.FrameEvent)
		b.bc.metrics.ObserveDispatch(ev.Type)
		go b.dispatch(ctx, ev)
	}
}

// replyEcho reports whether the frame is a call reply. Reply envelopes
// carry a top-level echo token; event envelopes never do.
func replyEcho(data []byte) (string, bool) {
	var probe struct {
		Echo string `json:"echo"`
	}
	if err := codec.Unmarshal(data, &probe); err != nil {
		return "", false
	}
	return probe.Echo, probe.Echo != ""
}

// dispatch runs the full pipeline for one event: registrations in
// registration order, guards and extractors deciding skips, Block
// terminating the chain. Each event runs in its own goroutine; only the
// handler chain within one event is ordered.
func (b *Bot) dispatch(ctx context.Context, ev *event.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("handler panic: post_type=%s err=%v", ev.Type, r)
		}
	}()

	for i := range b.regs {
		reg := &b.regs[i]
		if !reg.match(ctx, b.bc, ev) {
			continue
		}

		var ctl Control
		if reg.service != nil {
			ctl = reg.service.Serve(ctx, b.bc, ev)
		} else {
			ctl = reg.handler.Handle(ctx, b.bc, ev)
		}
		if ctl == Block {
			return
		}
	}
}

func (r *registration) match(ctx context.Context, bc *Context, ev *event.Event) bool {
	for _, g := range r.guards {
		if !g(ctx, bc, ev) {
			return false
		}
	}
	return true
}
