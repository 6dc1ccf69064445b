// Package api wraps the OneBot 11 action catalogue in typed helpers over
// Context.Call. Every helper is a thin call-with-named-parameters wrapper;
// the correlation, timeout and error semantics live in the core.
package api

import (
	"context"
	"encoding/json"

	jsoniter "github.com/json-iterator/go"

	fluxbot "github.com/fluxbot/fluxbot"
	"github.com/fluxbot/fluxbot/event"
	"github.com/fluxbot/fluxbot/message"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Client issues OneBot actions through a bot context. It is a cheap
// value; construct one per call site with For.
type Client struct {
	bc *fluxbot.Context
}

// For wraps the given context in an action client.
func For(bc *fluxbot.Context) Client {
	return Client{bc: bc}
}

// call issues the action and decodes the reply payload into out when out
// is non-nil.
func (c Client) call(ctx context.Context, action string, params, out any) error {
	data, err := c.bc.Call(ctx, action, params)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return codec.Unmarshal(data, out)
}

// MessageID is the reply payload of the send_*_msg actions.
type MessageID struct {
	MessageID int64 `json:"message_id"`
}

// GetMessage is the reply payload of get_msg.
type GetMessage struct {
	Time        int64           `json:"time"`
	MessageType string          `json:"message_type"`
	MessageID   int64           `json:"message_id"`
	RealID      int64           `json:"real_id"`
	Sender      event.Sender    `json:"sender"`
	Message     message.Message `json:"message"`
}

// ForwardMessage is the reply payload of get_forward_msg.
type ForwardMessage struct {
	Message message.Message `json:"message"`
}

// LoginInfo is the reply payload of get_login_info.
type LoginInfo struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
}

// StrangerInfo is the reply payload of get_stranger_info.
type StrangerInfo struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
	Sex      string `json:"sex"`
	Age      int32  `json:"age"`
}

// FriendInfo is one element of the get_friend_list reply.
type FriendInfo struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
	Remark   string `json:"remark"`
}

// GroupInfo is the reply payload of get_group_info and one element of
// get_group_list.
type GroupInfo struct {
	GroupID        int64  `json:"group_id"`
	GroupName      string `json:"group_name"`
	MemberCount    int32  `json:"member_count"`
	MaxMemberCount int32  `json:"max_member_count"`
}

// GroupMemberInfo is the reply payload of get_group_member_info and one
// element of get_group_member_list.
type GroupMemberInfo struct {
	GroupID         int64  `json:"group_id"`
	UserID          int64  `json:"user_id"`
	Nickname        string `json:"nickname"`
	Card            string `json:"card"`
	Sex             string `json:"sex"`
	Age             int32  `json:"age"`
	Area            string `json:"area,omitempty"`
	JoinTime        int64  `json:"join_time"`
	LastSentTime    int64  `json:"last_sent_time"`
	Level           string `json:"level"`
	Role            string `json:"role"`
	Unfriendly      bool   `json:"unfriendly"`
	Title           string `json:"title,omitempty"`
	TitleExpireTime int64  `json:"title_expire_time"`
	CardChangeable  bool   `json:"card_changeable"`
}

// HonorUser is one honoree in a get_group_honor_info reply.
type HonorUser struct {
	UserID      int64  `json:"user_id"`
	Nickname    string `json:"nickname"`
	Avatar      string `json:"avatar"`
	DayCount    int32  `json:"day_count,omitempty"`
	Description string `json:"description,omitempty"`
}

// GroupHonorInfo is the reply payload of get_group_honor_info.
type GroupHonorInfo struct {
	GroupID          int64       `json:"group_id"`
	CurrentTalkative *HonorUser  `json:"current_talkative,omitempty"`
	TalkativeList    []HonorUser `json:"talkative_list,omitempty"`
	PerformerList    []HonorUser `json:"performer_list,omitempty"`
	LegendList       []HonorUser `json:"legend_list,omitempty"`
	StrongNewbieList []HonorUser `json:"strong_newbie_list,omitempty"`
	EmotionList      []HonorUser `json:"emotion_list,omitempty"`
}

// Cookies is the reply payload of get_cookies.
type Cookies struct {
	Cookies string `json:"cookies"`
}

// CSRFToken is the reply payload of get_csrf_token.
type CSRFToken struct {
	Token int64 `json:"token"`
}

// Credentials is the reply payload of get_credentials.
type Credentials struct {
	Cookies   string `json:"cookies"`
	CSRFToken int64  `json:"csrf_token"`
}

// FileResult is the reply payload of get_record and get_image.
type FileResult struct {
	File string `json:"file"`
}

// CanSend is the reply payload of can_send_image and can_send_record.
type CanSend struct {
	Yes bool `json:"yes"`
}

// VersionInfo is the reply payload of get_version_info. Implementations
// attach extra fields; Raw keeps them.
type VersionInfo struct {
	AppName         string `json:"app_name"`
	AppVersion      string `json:"app_version"`
	ProtocolVersion string `json:"protocol_version"`

	Raw json.RawMessage `json:"-"`
}
