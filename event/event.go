// Package event models the inbound OneBot 11 event envelope: a timestamp,
// the bot's own identifier, and one discriminated payload selected by the
// post_type field.
package event

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Post types used as the envelope discriminator.
const (
	PostMessage   = "message"
	PostNotice    = "notice"
	PostRequest   = "request"
	PostMetaEvent = "meta_event"
	PostUnknown   = "unknown"
)

// Event is one inbound non-reply frame. Exactly one of Message, Notice,
// Request and Meta is non-nil, matching Type; frames with an unrecognized
// post_type keep only Raw and report Type "unknown".
//
// Events are shared read-only across every handler goroutine; nothing may
// mutate them after decode.
type Event struct {
	Time   int64  `json:"time"`
	SelfID int64  `json:"self_id"`
	Type   string `json:"post_type"`

	Message *MessageEvent `json:"-"`
	Notice  *Notice       `json:"-"`
	Request *Request      `json:"-"`
	Meta    *MetaEvent    `json:"-"`

	// Raw is the full original frame, kept for unknown payloads and
	// for callers that need fields the typed model does not carry.
	Raw json.RawMessage `json:"-"`
}

// Decode parses a raw frame into an Event.
func Decode(data []byte) (*Event, error) {
	var ev Event
	if err := codec.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("event: decode envelope: %w", err)
	}
	ev.Raw = append(json.RawMessage(nil), data...)

	switch ev.Type {
	case PostMessage:
		ev.Message = &MessageEvent{}
		if err := codec.Unmarshal(data, ev.Message); err != nil {
			return nil, fmt.Errorf("event: decode message: %w", err)
		}
	case PostNotice:
		ev.Notice = &Notice{}
		if err := codec.Unmarshal(data, ev.Notice); err != nil {
			return nil, fmt.Errorf("event: decode notice: %w", err)
		}
		ev.Notice.Raw = ev.Raw
	case PostRequest:
		ev.Request = &Request{}
		if err := codec.Unmarshal(data, ev.Request); err != nil {
			return nil, fmt.Errorf("event: decode request: %w", err)
		}
	case PostMetaEvent:
		ev.Meta = &MetaEvent{}
		if err := codec.Unmarshal(data, ev.Meta); err != nil {
			return nil, fmt.Errorf("event: decode meta event: %w", err)
		}
	default:
		ev.Type = PostUnknown
	}
	return &ev, nil
}
