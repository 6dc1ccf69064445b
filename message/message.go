// Package message defines the OneBot 11 message model: an ordered list of
// typed segments plus helpers for building and inspecting them.
package message

import (
	"strings"

	"github.com/spf13/cast"
)

// Message is an ordered list of segments (the wire "array format").
type Message []Segment

// New builds a message from the given segments.
func New(segments ...Segment) Message {
	return Message(segments)
}

// FromText builds a single-segment plain-text message.
func FromText(text string) Message {
	return Message{Text(text)}
}

// Of converts a loosely-typed value into a Message:
// strings become a text segment, Segments and Messages pass through.
// Anything else is stringified into a text segment.
func Of(v any) Message {
	switch m := v.(type) {
	case Message:
		return m
	case []Segment:
		return Message(m)
	case Segment:
		return Message{m}
	case string:
		return FromText(m)
	default:
		return FromText(cast.ToString(v))
	}
}

// Append returns a new message with more segments added.
func (m Message) Append(segments ...Segment) Message {
	return append(m, segments...)
}

// First returns the first segment of the given type, or false if absent.
func (m Message) First(typ string) (Segment, bool) {
	for _, s := range m {
		if s.Type == typ {
			return s, true
		}
	}
	return Segment{}, false
}

// ExtractPlainText joins the text of all text segments.
func (m Message) ExtractPlainText() string {
	var sb strings.Builder
	for _, s := range m {
		if s.Type == TypeText {
			sb.WriteString(s.Get("text"))
		}
	}
	return sb.String()
}

// IsPlainText reports whether every segment is a text segment.
func (m Message) IsPlainText() bool {
	for _, s := range m {
		if s.Type != TypeText {
			return false
		}
	}
	return true
}

// ExtractIfPlainText returns the joined text only when the whole message
// is plain text.
func (m Message) ExtractIfPlainText() (string, bool) {
	if !m.IsPlainText() {
		return "", false
	}
	return m.ExtractPlainText(), true
}
