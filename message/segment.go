package message

import (
	"github.com/spf13/cast"
)

// Segment type names defined by the OneBot 11 message-segment catalogue.
const (
	TypeText      = "text"
	TypeFace      = "face"
	TypeImage     = "image"
	TypeRecord    = "record"
	TypeVideo     = "video"
	TypeAt        = "at"
	TypeRPS       = "rps"
	TypeDice      = "dice"
	TypeShake     = "shake"
	TypePoke      = "poke"
	TypeAnonymous = "anonymous"
	TypeShare     = "share"
	TypeContact   = "contact"
	TypeLocation  = "location"
	TypeMusic     = "music"
	TypeReply     = "reply"
	TypeForward   = "forward"
	TypeNode      = "node"
	TypeXML       = "xml"
	TypeJSON      = "json"
)

// Segment is one element of a message in array format:
// {"type": "...", "data": {...}}.
//
// Data values arrive as strings or numbers depending on the server
// implementation; use the typed getters rather than asserting directly.
type Segment struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// Get returns the named data field as a string. Missing fields yield "".
func (s Segment) Get(key string) string {
	if s.Data == nil {
		return ""
	}
	return cast.ToString(s.Data[key])
}

// GetInt64 returns the named data field as an int64. Missing or
// non-numeric fields yield 0.
func (s Segment) GetInt64(key string) int64 {
	if s.Data == nil {
		return 0
	}
	return cast.ToInt64(s.Data[key])
}

func seg(typ string, data map[string]any) Segment {
	return Segment{Type: typ, Data: data}
}

// Text creates a plain-text segment.
func Text(text string) Segment {
	return seg(TypeText, map[string]any{"text": text})
}

// Face creates a QQ-emoji segment.
func Face(id string) Segment {
	return seg(TypeFace, map[string]any{"id": id})
}

// Image creates an image segment. file may be a filename, absolute path,
// URL or base64 payload.
func Image(file string) Segment {
	return seg(TypeImage, map[string]any{"file": file})
}

// Record creates a voice-record segment.
func Record(file string) Segment {
	return seg(TypeRecord, map[string]any{"file": file})
}

// Video creates a video segment.
func Video(file string) Segment {
	return seg(TypeVideo, map[string]any{"file": file})
}

// At creates an at-mention segment. Use AtAll for @everyone.
func At(userID int64) Segment {
	return seg(TypeAt, map[string]any{"qq": cast.ToString(userID)})
}

// AtAll creates an at-everyone segment.
func AtAll() Segment {
	return seg(TypeAt, map[string]any{"qq": "all"})
}

// RPS creates a rock-paper-scissors magic segment.
func RPS() Segment { return seg(TypeRPS, map[string]any{}) }

// Dice creates a dice magic segment.
func Dice() Segment { return seg(TypeDice, map[string]any{}) }

// Shake creates a window-shake segment.
func Shake() Segment { return seg(TypeShake, map[string]any{}) }

// Poke creates a poke segment.
func Poke(typ, id string) Segment {
	return seg(TypePoke, map[string]any{"type": typ, "id": id})
}

// Share creates a link-share segment.
func Share(url, title string) Segment {
	return seg(TypeShare, map[string]any{"url": url, "title": title})
}

// Contact creates a contact-recommendation segment. typ is "qq" or "group".
func Contact(typ, id string) Segment {
	return seg(TypeContact, map[string]any{"type": typ, "id": id})
}

// Location creates a location segment.
func Location(lat, lon string) Segment {
	return seg(TypeLocation, map[string]any{"lat": lat, "lon": lon})
}

// Music creates a music-share segment for a platform-hosted track.
func Music(typ, id string) Segment {
	return seg(TypeMusic, map[string]any{"type": typ, "id": id})
}

// Reply creates a reply-reference segment pointing at an earlier message.
func Reply(messageID string) Segment {
	return seg(TypeReply, map[string]any{"id": messageID})
}

// Forward creates a forwarded-messages segment.
func Forward(id string) Segment {
	return seg(TypeForward, map[string]any{"id": id})
}

// Node creates a forward-node segment referencing a message by id.
func Node(id string) Segment {
	return seg(TypeNode, map[string]any{"id": id})
}

// XML creates an XML-card segment.
func XML(data string) Segment {
	return seg(TypeXML, map[string]any{"data": data})
}

// JSON creates a JSON-card segment.
func JSON(data string) Segment {
	return seg(TypeJSON, map[string]any{"data": data})
}
