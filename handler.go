package fluxbot

import (
	"context"

	"github.com/fluxbot/fluxbot/event"
)

// Handler is one unit of the dispatch pipeline. Handle resolves whatever
// the handler needs from the context and event and returns a pipeline
// control signal. The On1..On6 adapters build Handlers from plain
// functions with declared extractor arguments.
type Handler interface {
	Handle(ctx context.Context, bc *Context, ev *event.Event) Control
}

// HandlerFunc adapts a bare function to the Handler interface.
type HandlerFunc func(ctx context.Context, bc *Context, ev *event.Event) Control

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, bc *Context, ev *event.Event) Control {
	return f(ctx, bc, ev)
}

// OnEvent registers a handler that takes the raw event with no extractor
// arguments. It always runs (the context and event passthroughs always
// succeed).
func OnEvent(fn func(ctx context.Context, bc *Context, ev *event.Event) Control) Handler {
	return HandlerFunc(fn)
}

// On1 builds a Handler with one declared extractor argument. The argument
// is resolved in order against the event; if extraction fails the handler
// body never runs and the registration is skipped for this event.
func On1[T1 any, PT1 Ptr[T1]](fn func(ctx context.Context, bc *Context, a1 *T1) Control) Handler {
	return HandlerFunc(func(ctx context.Context, bc *Context, ev *event.Event) Control {
		var a1 T1
		if !PT1(&a1).Extract(ctx, bc, ev) {
			return Skip
		}
		return fn(ctx, bc, &a1)
	})
}

// On2 builds a Handler with two extractor arguments, resolved in order.
func On2[T1 any, PT1 Ptr[T1], T2 any, PT2 Ptr[T2]](
	fn func(ctx context.Context, bc *Context, a1 *T1, a2 *T2) Control,
) Handler {
	return HandlerFunc(func(ctx context.Context, bc *Context, ev *event.Event) Control {
		var a1 T1
		var a2 T2
		if !PT1(&a1).Extract(ctx, bc, ev) || !PT2(&a2).Extract(ctx, bc, ev) {
			return Skip
		}
		return fn(ctx, bc, &a1, &a2)
	})
}

// On3 builds a Handler with three extractor arguments, resolved in order.
func On3[T1 any, PT1 Ptr[T1], T2 any, PT2 Ptr[T2], T3 any, PT3 Ptr[T3]](
	fn func(ctx context.Context, bc *Context, a1 *T1, a2 *T2, a3 *T3) Control,
) Handler {
	return HandlerFunc(func(ctx context.Context, bc *Context, ev *event.Event) Control {
		var a1 T1
		var a2 T2
		var a3 T3
		if !PT1(&a1).Extract(ctx, bc, ev) || !PT2(&a2).Extract(ctx, bc, ev) ||
			!PT3(&a3).Extract(ctx, bc, ev) {
			return Skip
		}
		return fn(ctx, bc, &a1, &a2, &a3)
	})
}

// On4 builds a Handler with four extractor arguments, resolved in order.
func On4[T1 any, PT1 Ptr[T1], T2 any, PT2 Ptr[T2], T3 any, PT3 Ptr[T3], T4 any, PT4 Ptr[T4]](
	fn func(ctx context.Context, bc *Context, a1 *T1, a2 *T2, a3 *T3, a4 *T4) Control,
) Handler {
	return HandlerFunc(func(ctx context.Context, bc *Context, ev *event.Event) Control {
		var a1 T1
		var a2 T2
		var a3 T3
		var a4 T4
		if !PT1(&a1).Extract(ctx, bc, ev) || !PT2(&a2).Extract(ctx, bc, ev) ||
			!PT3(&a3).Extract(ctx, bc, ev) || !PT4(&a4).Extract(ctx, bc, ev) {
			return Skip
		}
		return fn(ctx, bc, &a1, &a2, &a3, &a4)
	})
}

// On5 builds a Handler with five extractor arguments, resolved in order.
func On5[T1 any, PT1 Ptr[T1], T2 any, PT2 Ptr[T2], T3 any, PT3 Ptr[T3], T4 any, PT4 Ptr[T4], T5 any, PT5 Ptr[T5]](
	fn func(ctx context.Context, bc *Context, a1 *T1, a2 *T2, a3 *T3, a4 *T4, a5 *T5) Control,
) Handler {
	return HandlerFunc(func(ctx context.Context, bc *Context, ev *event.Event) Control {
		var a1 T1
		var a2 T2
		var a3 T3
		var a4 T4
		var a5 T5
		if !PT1(&a1).Extract(ctx, bc, ev) || !PT2(&a2).Extract(ctx, bc, ev) ||
			!PT3(&a3).Extract(ctx, bc, ev) || !PT4(&a4).Extract(ctx, bc, ev) ||
			!PT5(&a5).Extract(ctx, bc, ev) {
			return Skip
		}
		return fn(ctx, bc, &a1, &a2, &a3, &a4, &a5)
	})
}

// On6 builds a Handler with six extractor arguments, resolved in order.
func On6[T1 any, PT1 Ptr[T1], T2 any, PT2 Ptr[T2], T3 any, PT3 Ptr[T3], T4 any, PT4 Ptr[T4], T5 any, PT5 Ptr[T5], T6 any, PT6 Ptr[T6]](
	fn func(ctx context.Context, bc *Context, a1 *T1, a2 *T2, a3 *T3, a4 *T4, a5 *T5, a6 *T6) Control,
) Handler {
	return HandlerFunc(func(ctx context.Context, bc *Context, ev *event.Event) Control {
		var a1 T1
		var a2 T2
		var a3 T3
		var a4 T4
		var a5 T5
		var a6 T6
		if !PT1(&a1).Extract(ctx, bc, ev) || !PT2(&a2).Extract(ctx, bc, ev) ||
			!PT3(&a3).Extract(ctx, bc, ev) || !PT4(&a4).Extract(ctx, bc, ev) ||
			!PT5(&a5).Extract(ctx, bc, ev) || !PT6(&a6).Extract(ctx, bc, ev) {
			return Skip
		}
		return fn(ctx, bc, &a1, &a2, &a3, &a4, &a5, &a6)
	})
}
