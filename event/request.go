package event

// Request types.
const (
	RequestFriend = "friend"
	RequestGroup  = "group"
)

// Group request sub-types.
const (
	GroupRequestAdd    = "add"
	GroupRequestInvite = "invite"
)

// Request is the payload of a post_type "request" frame: someone asking to
// become a friend or to join (or invite the bot into) a group. Flag is the
// opaque token passed back when approving or rejecting.
type Request struct {
	RequestType string `json:"request_type"` // "friend" or "group"
	SubType     string `json:"sub_type,omitempty"`
	UserID      int64  `json:"user_id"`
	GroupID     int64  `json:"group_id,omitempty"`
	Comment     string `json:"comment"`
	Flag        string `json:"flag"`
}
