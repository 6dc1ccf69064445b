package event

import (
	"strconv"

	"github.com/fluxbot/fluxbot/message"
)

// Message types.
const (
	MessagePrivate = "private"
	MessageGroup   = "group"
)

// Sender describes the message author. Private messages fill the basic
// fields; group messages may add card, area, level, role and title.
type Sender struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
	Card     string `json:"card,omitempty"`
	Sex      string `json:"sex,omitempty"` // "male", "female" or "unknown"
	Age      int32  `json:"age,omitempty"`
	Area     string `json:"area,omitempty"`
	Level    string `json:"level,omitempty"`
	Role     string `json:"role,omitempty"` // "owner", "admin" or "member"
	Title    string `json:"title,omitempty"`
}

// Anonymous describes an anonymous group sender.
type Anonymous struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// MessageEvent is the payload of a post_type "message" frame.
// GroupID and Anonymous are meaningful only when MessageType is "group".
type MessageEvent struct {
	MessageType string          `json:"message_type"` // "private" or "group"
	SubType     string          `json:"sub_type"`
	MessageID   int64           `json:"message_id"`
	UserID      int64           `json:"user_id"`
	GroupID     int64           `json:"group_id,omitempty"`
	Anonymous   *Anonymous      `json:"anonymous,omitempty"`
	Message     message.Message `json:"message"`
	RawMessage  string          `json:"raw_message"`
	Font        int32           `json:"font"`
	Sender      Sender          `json:"sender"`
}

// IsGroup reports whether this is a group message.
func (m *MessageEvent) IsGroup() bool {
	return m.MessageType == MessageGroup
}

// IsPrivate reports whether this is a private message.
func (m *MessageEvent) IsPrivate() bool {
	return m.MessageType == MessagePrivate
}

// PlainText joins the text segments of the message body.
func (m *MessageEvent) PlainText() string {
	return m.Message.ExtractPlainText()
}

// Reply builds a message that quotes this one, followed by body.
func (m *MessageEvent) Reply(body message.Message) message.Message {
	out := message.Message{message.Reply(strconv.FormatInt(m.MessageID, 10))}
	return append(out, body...)
}
