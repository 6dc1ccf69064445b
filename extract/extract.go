// Package extract provides the predefined extractors: projections over
// the current event (message body, sender, mentions, group id, reply
// target) and over the shared state registry. Handlers declare them as
// arguments via the fluxbot.On1..On6 adapters; a non-matching extractor
// skips the handler for that event.
package extract

import (
	"context"
	"strconv"

	"github.com/spf13/cast"

	fluxbot "github.com/fluxbot/fluxbot"
	"github.com/fluxbot/fluxbot/api"
	"github.com/fluxbot/fluxbot/event"
	"github.com/fluxbot/fluxbot/message"
)

// Event is the raw-event passthrough; it always matches.
type Event struct {
	*event.Event
}

// Extract implements fluxbot.Extractor.
func (e *Event) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	e.Event = ev
	return true
}

// Message matches message events and projects the full message payload.
type Message struct {
	*event.MessageEvent
}

// Extract implements fluxbot.Extractor.
func (m *Message) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	if ev.Message == nil {
		return false
	}
	m.MessageEvent = ev.Message
	return true
}

// Sender matches message events and projects the author info.
type Sender struct {
	event.Sender
}

// Extract implements fluxbot.Extractor.
func (s *Sender) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	if ev.Message == nil {
		return false
	}
	s.Sender = ev.Message.Sender
	return true
}

// SenderID matches message events whose sender id is known.
type SenderID struct {
	ID int64
}

// Extract implements fluxbot.Extractor.
func (s *SenderID) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	if ev.Message == nil || ev.Message.UserID == 0 {
		return false
	}
	s.ID = ev.Message.UserID
	return true
}

// GroupID matches group messages only and projects the group id.
type GroupID struct {
	ID int64
}

// Extract implements fluxbot.Extractor.
func (g *GroupID) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	if ev.Message == nil || !ev.Message.IsGroup() {
		return false
	}
	g.ID = ev.Message.GroupID
	return true
}

// At matches messages containing an at-mention and projects the first
// mentioned user. The wire carries qq as either a number or a string
// ("all" for @everyone).
type At struct {
	UserID string
}

// Extract implements fluxbot.Extractor.
func (a *At) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	if ev.Message == nil {
		return false
	}
	seg, ok := ev.Message.Message.First(message.TypeAt)
	if !ok {
		return false
	}
	a.UserID = cast.ToString(seg.Data["qq"])
	return true
}

// PlainText matches messages consisting solely of text segments and
// projects the joined text.
type PlainText struct {
	Text string
}

// Extract implements fluxbot.Extractor.
func (p *PlainText) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	if ev.Message == nil {
		return false
	}
	text, ok := ev.Message.Message.ExtractIfPlainText()
	if !ok {
		return false
	}
	p.Text = text
	return true
}

// Reply matches messages that quote an earlier message and resolves the
// quoted message body with a nested get_msg call. Lookup failures are a
// non-match, not an error.
type Reply struct {
	Message message.Message
}

// Extract implements fluxbot.Extractor.
func (r *Reply) Extract(ctx context.Context, bc *fluxbot.Context, ev *event.Event) bool {
	if ev.Message == nil {
		return false
	}
	seg, ok := ev.Message.Message.First(message.TypeReply)
	if !ok {
		return false
	}
	id, err := strconv.ParseInt(seg.Get("id"), 10, 64)
	if err != nil {
		return false
	}
	got, err := api.For(bc).GetMsg(ctx, id)
	if err != nil {
		return false
	}
	r.Message = got.Message
	return true
}

// Notice matches notice events.
type Notice struct {
	*event.Notice
}

// Extract implements fluxbot.Extractor.
func (n *Notice) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	if ev.Notice == nil {
		return false
	}
	n.Notice = ev.Notice
	return true
}

// Request matches request events.
type Request struct {
	*event.Request
}

// Extract implements fluxbot.Extractor.
func (r *Request) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	if ev.Request == nil {
		return false
	}
	r.Request = ev.Request
	return true
}

// Meta matches meta events (lifecycle, heartbeat).
type Meta struct {
	*event.MetaEvent
}

// Extract implements fluxbot.Extractor.
func (m *Meta) Extract(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
	if ev.Meta == nil {
		return false
	}
	m.MetaEvent = ev.Meta
	return true
}

// State projects a shared value registered with Builder.WithState.
// Absence of the requested type is a non-match.
type State[T any] struct {
	Value T
}

// Extract implements fluxbot.Extractor.
func (s *State[T]) Extract(_ context.Context, bc *fluxbot.Context, _ *event.Event) bool {
	v, ok := fluxbot.StateOf[T](bc)
	if !ok {
		return false
	}
	s.Value = v
	return true
}
