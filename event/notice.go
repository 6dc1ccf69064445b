package event

import "encoding/json"

// Notice types.
const (
	NoticeGroupUpload   = "group_upload"
	NoticeGroupAdmin    = "group_admin"
	NoticeGroupDecrease = "group_decrease"
	NoticeGroupIncrease = "group_increase"
	NoticeGroupBan      = "group_ban"
	NoticeFriendAdd     = "friend_add"
	NoticeGroupRecall   = "group_recall"
	NoticeFriendRecall  = "friend_recall"
	NoticeNotify        = "notify"
)

// File describes an uploaded group file.
type File struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	BusID int64  `json:"busid"`
}

// Notice is the payload of a post_type "notice" frame. The populated
// fields depend on NoticeType; e.g. OperatorID is set for group_decrease,
// group_increase, group_ban and group_recall, Duration for group_ban only.
type Notice struct {
	NoticeType string `json:"notice_type"`
	SubType    string `json:"sub_type,omitempty"`
	GroupID    int64  `json:"group_id,omitempty"`
	UserID     int64  `json:"user_id,omitempty"`
	OperatorID int64  `json:"operator_id,omitempty"`
	MessageID  int64  `json:"message_id,omitempty"`
	Duration   int64  `json:"duration,omitempty"`
	TargetID   int64  `json:"target_id,omitempty"` // notify: poke/honor target
	File       *File  `json:"file,omitempty"`

	// Raw keeps the whole payload for "notify" sub-variants that carry
	// implementation-specific fields.
	Raw json.RawMessage `json:"-"`
}
