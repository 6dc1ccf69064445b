package fluxbot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fluxbot/fluxbot/connect"
	"github.com/fluxbot/fluxbot/event"
)

// recorder collects handler invocations across goroutines.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]string, len(r.calls))
	copy(cp, r.calls)
	return cp
}

func record(r *recorder, name string, ctl Control) Handler {
	return HandlerFunc(func(context.Context, *Context, *event.Event) Control {
		r.add(name)
		return ctl
	})
}

func groupMessage(groupID, userID int64) *event.Event {
	return &event.Event{
		Type: event.PostMessage,
		Message: &event.MessageEvent{
			MessageType: event.MessageGroup,
			GroupID:     groupID,
			UserID:      userID,
		},
	}
}

func TestDispatchRunsInRegistrationOrder(t *testing.T) {
	r := &recorder{}
	b := New(connect.Config{}).
		WithHandler(record(r, "first", Continue)).
		WithHandler(record(r, "second", Skip)).
		WithHandler(record(r, "third", Continue)).
		Build()

	b.dispatch(context.Background(), groupMessage(1, 2))

	got := r.get()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDispatchBlockStopsPipeline(t *testing.T) {
	r := &recorder{}
	b := New(connect.Config{}).
		WithHandler(record(r, "first", Continue)).
		WithHandler(record(r, "blocker", Block)).
		WithHandler(record(r, "unreached", Continue)).
		Build()

	b.dispatch(context.Background(), groupMessage(1, 2))

	got := r.get()
	if len(got) != 2 || got[1] != "blocker" {
		t.Fatalf("block did not stop the pipeline: %v", got)
	}
}

func TestDispatchGuardSkipsRegistrationOnly(t *testing.T) {
	r := &recorder{}
	inGroup := func(id int64) Guard {
		return func(_ context.Context, _ *Context, ev *event.Event) bool {
			return ev.Message != nil && ev.Message.GroupID == id
		}
	}
	b := New(connect.Config{}).
		WithHandler(record(r, "wrong-group", Block), inGroup(999)).
		WithHandler(record(r, "right-group", Continue), inGroup(1)).
		Build()

	b.dispatch(context.Background(), groupMessage(1, 2))

	got := r.get()
	if len(got) != 1 || got[0] != "right-group" {
		t.Fatalf("guard routing wrong: %v", got)
	}
}

func TestDispatchRecoverHandlerPanic(t *testing.T) {
	b := New(connect.Config{}).
		WithHandler(HandlerFunc(func(context.Context, *Context, *event.Event) Control {
			panic("boom")
		})).
		Build()

	// Must not crash the process.
	b.dispatch(context.Background(), groupMessage(1, 2))
}

// initService records Init and Serve invocations.
type initService struct {
	r       *recorder
	name    string
	initErr error
}

func (s *initService) Init(context.Context, *Context) error {
	s.r.add("init:" + s.name)
	return s.initErr
}

func (s *initService) Serve(_ context.Context, _ *Context, _ *event.Event) Control {
	s.r.add("serve:" + s.name)
	return Continue
}

func TestInitServicesRunInOrder(t *testing.T) {
	r := &recorder{}
	b := New(connect.Config{}).
		WithService(&initService{r: r, name: "a"}).
		WithHandler(record(r, "plain", Continue)).
		WithService(&initService{r: r, name: "b"}).
		Build()

	if err := b.initServices(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	got := r.get()
	if len(got) != 2 || got[0] != "init:a" || got[1] != "init:b" {
		t.Fatalf("init order wrong: %v", got)
	}
}

func TestInitServicesAggregatesFailures(t *testing.T) {
	r := &recorder{}
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	b := New(connect.Config{}).
		WithService(&initService{r: r, name: "a", initErr: errA}).
		WithService(&initService{r: r, name: "b", initErr: errB}).
		Build()

	err := b.initServices(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("aggregated error missing causes: %v", err)
	}
	// Later services still get their Init even when an earlier one failed.
	got := r.get()
	if len(got) != 2 {
		t.Fatalf("init calls: %v", got)
	}
}

func TestChainServiceBlockShortCircuits(t *testing.T) {
	r := &recorder{}
	chain := &Chain{Handlers: []Handler{
		record(r, "one", Continue),
		record(r, "two", Block),
		record(r, "three", Continue),
	}}

	ctl := chain.Serve(context.Background(), newContext(newStateRegistry(), nil), groupMessage(1, 2))
	if ctl != Block {
		t.Fatalf("want Block, got %v", ctl)
	}
	got := r.get()
	if len(got) != 2 || got[1] != "two" {
		t.Fatalf("chain did not short-circuit: %v", got)
	}
}

func TestChainServiceSetupIsInit(t *testing.T) {
	called := false
	chain := &Chain{Setup: func(context.Context, *Context) error {
		called = true
		return nil
	}}
	if err := chain.Init(context.Background(), newContext(newStateRegistry(), nil)); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !called {
		t.Fatal("setup not invoked")
	}

	var empty Chain
	if err := empty.Init(context.Background(), nil); err != nil {
		t.Fatalf("nil setup must be a no-op, got %v", err)
	}
}

func TestStateOf(t *testing.T) {
	type counters struct{ hits int }

	b := New(connect.Config{}).
		WithState(&counters{hits: 7}).
		WithState("a name").
		Build()

	c, ok := StateOf[*counters](b.Context())
	if !ok || c.hits != 7 {
		t.Fatalf("state lookup failed: %v %v", c, ok)
	}
	s, ok := StateOf[string](b.Context())
	if !ok || s != "a name" {
		t.Fatalf("state lookup failed: %q %v", s, ok)
	}
	if _, ok := StateOf[int64](b.Context()); ok {
		t.Fatal("unregistered type must not resolve")
	}
}

func TestStateReplacedByType(t *testing.T) {
	b := New(connect.Config{}).
		WithState("first").
		WithState("second").
		Build()

	s, ok := StateOf[string](b.Context())
	if !ok || s != "second" {
		t.Fatalf("want latest value, got %q %v", s, ok)
	}
}
