package fluxbot

import (
	"context"

	"github.com/fluxbot/fluxbot/event"
)

// Extractor is the capability every handler argument type implements:
// fill the receiver from the shared context and the current event, and
// report whether a value could be produced. Absence is routine, never an
// error — a failed extraction skips the handler for this event.
//
// Extractors may perform further asynchronous work (e.g. fetch a
// replied-to message over the wire); ctx bounds that work.
type Extractor interface {
	Extract(ctx context.Context, bc *Context, ev *event.Event) bool
}

// Ptr constrains PT to be *T implementing Extractor. It lets the generic
// registration adapters allocate argument values themselves.
type Ptr[T any] interface {
	*T
	Extractor
}

// Guard is a value-parameterized predicate attached at registration time
// (e.g. extract.InGroup(123)). A failing guard skips the registration for
// this event, exactly like a failed extraction.
type Guard func(ctx context.Context, bc *Context, ev *event.Event) bool

// Maybe wraps another extractor so that absence becomes a value instead
// of a pipeline skip: extraction always succeeds, and Value is nil when
// the inner extractor did not match.
type Maybe[T any, PT Ptr[T]] struct {
	Value *T
}

// Extract implements Extractor. It never fails.
func (m *Maybe[T, PT]) Extract(ctx context.Context, bc *Context, ev *event.Event) bool {
	var inner T
	if PT(&inner).Extract(ctx, bc, ev) {
		m.Value = &inner
	}
	return true
}

// FirstOf2 tries A then B against the same context and event, adopting
// the first that matches. Exactly one of A and B is non-nil on success;
// extraction fails when neither candidate matches.
type FirstOf2[T1 any, PT1 Ptr[T1], T2 any, PT2 Ptr[T2]] struct {
	A *T1
	B *T2
}

// Extract implements Extractor.
func (f *FirstOf2[T1, PT1, T2, PT2]) Extract(ctx context.Context, bc *Context, ev *event.Event) bool {
	var a T1
	if PT1(&a).Extract(ctx, bc, ev) {
		f.A = &a
		return true
	}
	var b T2
	if PT2(&b).Extract(ctx, bc, ev) {
		f.B = &b
		return true
	}
	return false
}

// FirstOf3 is FirstOf2 extended with a third candidate.
type FirstOf3[T1 any, PT1 Ptr[T1], T2 any, PT2 Ptr[T2], T3 any, PT3 Ptr[T3]] struct {
	A *T1
	B *T2
	C *T3
}

// Extract implements Extractor.
func (f *FirstOf3[T1, PT1, T2, PT2, T3, PT3]) Extract(ctx context.Context, bc *Context, ev *event.Event) bool {
	var a T1
	if PT1(&a).Extract(ctx, bc, ev) {
		f.A = &a
		return true
	}
	var b T2
	if PT2(&b).Extract(ctx, bc, ev) {
		f.B = &b
		return true
	}
	var c T3
	if PT3(&c).Extract(ctx, bc, ev) {
		f.C = &c
		return true
	}
	return false
}
