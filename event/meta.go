package event

import "encoding/json"

// Meta event types.
const (
	MetaLifecycle = "lifecycle"
	MetaHeartbeat = "heartbeat"
)

// Lifecycle sub-types.
const (
	LifecycleEnable  = "enable"
	LifecycleDisable = "disable"
	LifecycleConnect = "connect"
)

// Status is the running status reported by heartbeats and get_status.
// Servers attach free-form extra fields; they are kept in Extra.
type Status struct {
	Online *bool           `json:"online"`
	Good   bool            `json:"good"`
	Extra  json.RawMessage `json:"-"`
}

// MetaEvent is the payload of a post_type "meta_event" frame.
// Interval and Status are set for heartbeats, SubType for lifecycle.
type MetaEvent struct {
	MetaEventType string  `json:"meta_event_type"` // "lifecycle" or "heartbeat"
	SubType       string  `json:"sub_type,omitempty"`
	Interval      int64   `json:"interval,omitempty"`
	Status        *Status `json:"status,omitempty"`
}
