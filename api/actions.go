package api

import (
	"context"
	"fmt"

	"github.com/fluxbot/fluxbot/event"
	"github.com/fluxbot/fluxbot/message"
)

// SendPrivateMsg sends a private message and returns its id.
func (c Client) SendPrivateMsg(ctx context.Context, userID int64, msg message.Message) (int64, error) {
	params := struct {
		UserID  int64           `json:"user_id"`
		Message message.Message `json:"message"`
	}{userID, msg}
	var out MessageID
	if err := c.call(ctx, "send_private_msg", params, &out); err != nil {
		return 0, err
	}
	return out.MessageID, nil
}

// SendGroupMsg sends a group message and returns its id.
func (c Client) SendGroupMsg(ctx context.Context, groupID int64, msg message.Message) (int64, error) {
	params := struct {
		GroupID int64           `json:"group_id"`
		Message message.Message `json:"message"`
	}{groupID, msg}
	var out MessageID
	if err := c.call(ctx, "send_group_msg", params, &out); err != nil {
		return 0, err
	}
	return out.MessageID, nil
}

// SendMsgLike answers in the same scope the given message event arrived
// in: the group for group messages, the sender for private ones.
func (c Client) SendMsgLike(ctx context.Context, src *event.MessageEvent, msg message.Message) (int64, error) {
	if src.IsGroup() {
		return c.SendGroupMsg(ctx, src.GroupID, msg)
	}
	return c.SendPrivateMsg(ctx, src.UserID, msg)
}

// DeleteMsg recalls a message.
func (c Client) DeleteMsg(ctx context.Context, messageID int64) error {
	params := struct {
		MessageID int64 `json:"message_id"`
	}{messageID}
	return c.call(ctx, "delete_msg", params, nil)
}

// GetMsg fetches a message by id.
func (c Client) GetMsg(ctx context.Context, messageID int64) (*GetMessage, error) {
	params := struct {
		MessageID int64 `json:"message_id"`
	}{messageID}
	var out GetMessage
	if err := c.call(ctx, "get_msg", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForwardMsg fetches the content of a forwarded-messages bundle.
func (c Client) GetForwardMsg(ctx context.Context, id string) (*ForwardMessage, error) {
	params := struct {
		ID string `json:"id"`
	}{id}
	var out ForwardMessage
	if err := c.call(ctx, "get_forward_msg", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendLike sends profile likes to a user.
func (c Client) SendLike(ctx context.Context, userID int64, times int32) error {
	params := struct {
		UserID int64 `json:"user_id"`
		Times  int32 `json:"times,omitempty"`
	}{userID, times}
	return c.call(ctx, "send_like", params, nil)
}

// SetGroupKick removes a member from a group.
func (c Client) SetGroupKick(ctx context.Context, groupID, userID int64, rejectAddRequest bool) error {
	params := struct {
		GroupID          int64 `json:"group_id"`
		UserID           int64 `json:"user_id"`
		RejectAddRequest bool  `json:"reject_add_request,omitempty"`
	}{groupID, userID, rejectAddRequest}
	return c.call(ctx, "set_group_kick", params, nil)
}

// SetGroupBan mutes a member for the given duration in seconds; zero
// lifts the ban.
func (c Client) SetGroupBan(ctx context.Context, groupID, userID, duration int64) error {
	params := struct {
		GroupID  int64 `json:"group_id"`
		UserID   int64 `json:"user_id"`
		Duration int64 `json:"duration"`
	}{groupID, userID, duration}
	return c.call(ctx, "set_group_ban", params, nil)
}

// SetGroupAnonymousBan mutes an anonymous sender identified by flag.
func (c Client) SetGroupAnonymousBan(ctx context.Context, groupID int64, flag string, duration int64) error {
	params := struct {
		GroupID  int64  `json:"group_id"`
		Flag     string `json:"flag"`
		Duration int64  `json:"duration"`
	}{groupID, flag, duration}
	return c.call(ctx, "set_group_anonymous_ban", params, nil)
}

// SetGroupWholeBan mutes or unmutes the whole group.
func (c Client) SetGroupWholeBan(ctx context.Context, groupID int64, enable bool) error {
	params := struct {
		GroupID int64 `json:"group_id"`
		Enable  bool  `json:"enable"`
	}{groupID, enable}
	return c.call(ctx, "set_group_whole_ban", params, nil)
}

// SetGroupAdmin grants or revokes group admin.
func (c Client) SetGroupAdmin(ctx context.Context, groupID, userID int64, enable bool) error {
	params := struct {
		GroupID int64 `json:"group_id"`
		UserID  int64 `json:"user_id"`
		Enable  bool  `json:"enable"`
	}{groupID, userID, enable}
	return c.call(ctx, "set_group_admin", params, nil)
}

// SetGroupAnonymous toggles anonymous chat in a group.
func (c Client) SetGroupAnonymous(ctx context.Context, groupID int64, enable bool) error {
	params := struct {
		GroupID int64 `json:"group_id"`
		Enable  bool  `json:"enable"`
	}{groupID, enable}
	return c.call(ctx, "set_group_anonymous", params, nil)
}

// SetGroupCard sets a member's group card; empty clears it.
func (c Client) SetGroupCard(ctx context.Context, groupID, userID int64, card string) error {
	params := struct {
		GroupID int64  `json:"group_id"`
		UserID  int64  `json:"user_id"`
		Card    string `json:"card"`
	}{groupID, userID, card}
	return c.call(ctx, "set_group_card", params, nil)
}

// SetGroupName renames a group.
func (c Client) SetGroupName(ctx context.Context, groupID int64, name string) error {
	params := struct {
		GroupID   int64  `json:"group_id"`
		GroupName string `json:"group_name"`
	}{groupID, name}
	return c.call(ctx, "set_group_name", params, nil)
}

// SetGroupLeave leaves a group; isDismiss dissolves it when the bot owns
// the group.
func (c Client) SetGroupLeave(ctx context.Context, groupID int64, isDismiss bool) error {
	params := struct {
		GroupID   int64 `json:"group_id"`
		IsDismiss bool  `json:"is_dismiss,omitempty"`
	}{groupID, isDismiss}
	return c.call(ctx, "set_group_leave", params, nil)
}

// SetGroupSpecialTitle sets a member's special title for duration
// seconds; -1 means forever.
func (c Client) SetGroupSpecialTitle(ctx context.Context, groupID, userID int64, title string, duration int64) error {
	params := struct {
		GroupID      int64  `json:"group_id"`
		UserID       int64  `json:"user_id"`
		SpecialTitle string `json:"special_title"`
		Duration     int64  `json:"duration"`
	}{groupID, userID, title, duration}
	return c.call(ctx, "set_group_special_title", params, nil)
}

// SetFriendAddRequest approves or rejects a friend request by flag.
func (c Client) SetFriendAddRequest(ctx context.Context, flag string, approve bool, remark string) error {
	params := struct {
		Flag    string `json:"flag"`
		Approve bool   `json:"approve"`
		Remark  string `json:"remark,omitempty"`
	}{flag, approve, remark}
	return c.call(ctx, "set_friend_add_request", params, nil)
}

// SetGroupAddRequest approves or rejects a group join request or invite.
// subType is event.GroupRequestAdd or event.GroupRequestInvite.
func (c Client) SetGroupAddRequest(ctx context.Context, flag, subType string, approve bool, reason string) error {
	params := struct {
		Flag    string `json:"flag"`
		SubType string `json:"sub_type"`
		Approve bool   `json:"approve"`
		Reason  string `json:"reason,omitempty"`
	}{flag, subType, approve, reason}
	return c.call(ctx, "set_group_add_request", params, nil)
}

// GetLoginInfo returns the bot's own account info.
func (c Client) GetLoginInfo(ctx context.Context) (*LoginInfo, error) {
	var out LoginInfo
	if err := c.call(ctx, "get_login_info", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelfID returns the bot's own user id.
func (c Client) SelfID(ctx context.Context) (int64, error) {
	info, err := c.GetLoginInfo(ctx)
	if err != nil {
		return 0, fmt.Errorf("api: self id: %w", err)
	}
	return info.UserID, nil
}

// GetStrangerInfo looks up an arbitrary user.
func (c Client) GetStrangerInfo(ctx context.Context, userID int64, noCache bool) (*StrangerInfo, error) {
	params := struct {
		UserID  int64 `json:"user_id"`
		NoCache bool  `json:"no_cache,omitempty"`
	}{userID, noCache}
	var out StrangerInfo
	if err := c.call(ctx, "get_stranger_info", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFriendList returns the bot's friends.
func (c Client) GetFriendList(ctx context.Context) ([]FriendInfo, error) {
	var out []FriendInfo
	if err := c.call(ctx, "get_friend_list", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetGroupInfo looks up a group.
func (c Client) GetGroupInfo(ctx context.Context, groupID int64, noCache bool) (*GroupInfo, error) {
	params := struct {
		GroupID int64 `json:"group_id"`
		NoCache bool  `json:"no_cache,omitempty"`
	}{groupID, noCache}
	var out GroupInfo
	if err := c.call(ctx, "get_group_info", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetGroupList returns every group the bot is in.
func (c Client) GetGroupList(ctx context.Context) ([]GroupInfo, error) {
	var out []GroupInfo
	if err := c.call(ctx, "get_group_list", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetGroupMemberInfo looks up one group member.
func (c Client) GetGroupMemberInfo(ctx context.Context, groupID, userID int64, noCache bool) (*GroupMemberInfo, error) {
	params := struct {
		GroupID int64 `json:"group_id"`
		UserID  int64 `json:"user_id"`
		NoCache bool  `json:"no_cache,omitempty"`
	}{groupID, userID, noCache}
	var out GroupMemberInfo
	if err := c.call(ctx, "get_group_member_info", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetGroupMemberList returns all members of a group.
func (c Client) GetGroupMemberList(ctx context.Context, groupID int64) ([]GroupMemberInfo, error) {
	params := struct {
		GroupID int64 `json:"group_id"`
	}{groupID}
	var out []GroupMemberInfo
	if err := c.call(ctx, "get_group_member_list", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetGroupHonorInfo fetches a group's honor listings. typ is one of
// "talkative", "performer", "legend", "strong_newbie", "emotion" or "all".
func (c Client) GetGroupHonorInfo(ctx context.Context, groupID int64, typ string) (*GroupHonorInfo, error) {
	params := struct {
		GroupID int64  `json:"group_id"`
		Type    string `json:"type"`
	}{groupID, typ}
	var out GroupHonorInfo
	if err := c.call(ctx, "get_group_honor_info", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCookies fetches cookies for the given domain.
func (c Client) GetCookies(ctx context.Context, domain string) (*Cookies, error) {
	params := struct {
		Domain string `json:"domain,omitempty"`
	}{domain}
	var out Cookies
	if err := c.call(ctx, "get_cookies", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCSRFToken fetches the CSRF token.
func (c Client) GetCSRFToken(ctx context.Context) (*CSRFToken, error) {
	var out CSRFToken
	if err := c.call(ctx, "get_csrf_token", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCredentials fetches cookies and CSRF token together.
func (c Client) GetCredentials(ctx context.Context, domain string) (*Credentials, error) {
	params := struct {
		Domain string `json:"domain,omitempty"`
	}{domain}
	var out Credentials
	if err := c.call(ctx, "get_credentials", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecord downloads a voice record converted to outFormat.
func (c Client) GetRecord(ctx context.Context, file, outFormat string) (*FileResult, error) {
	params := struct {
		File      string `json:"file"`
		OutFormat string `json:"out_format"`
	}{file, outFormat}
	var out FileResult
	if err := c.call(ctx, "get_record", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetImage downloads an image file.
func (c Client) GetImage(ctx context.Context, file string) (*FileResult, error) {
	params := struct {
		File string `json:"file"`
	}{file}
	var out FileResult
	if err := c.call(ctx, "get_image", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CanSendImage reports whether the server can send images.
func (c Client) CanSendImage(ctx context.Context) (bool, error) {
	var out CanSend
	if err := c.call(ctx, "can_send_image", struct{}{}, &out); err != nil {
		return false, err
	}
	return out.Yes, nil
}

// CanSendRecord reports whether the server can send voice records.
func (c Client) CanSendRecord(ctx context.Context) (bool, error) {
	var out CanSend
	if err := c.call(ctx, "can_send_record", struct{}{}, &out); err != nil {
		return false, err
	}
	return out.Yes, nil
}

// GetStatus returns the server's running status.
func (c Client) GetStatus(ctx context.Context) (*event.Status, error) {
	var out event.Status
	if err := c.call(ctx, "get_status", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVersionInfo returns the server's version info.
func (c Client) GetVersionInfo(ctx context.Context) (*VersionInfo, error) {
	data, err := c.bc.Call(ctx, "get_version_info", struct{}{})
	if err != nil {
		return nil, err
	}
	var out VersionInfo
	if err := codec.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	out.Raw = data
	return &out, nil
}

// SetRestart asks the server to restart itself after delay milliseconds.
func (c Client) SetRestart(ctx context.Context, delay int64) error {
	params := struct {
		Delay int64 `json:"delay,omitempty"`
	}{delay}
	return c.call(ctx, "set_restart", params, nil)
}

// CleanCache asks the server to clear its data cache.
func (c Client) CleanCache(ctx context.Context) error {
	return c.call(ctx, "clean_cache", struct{}{}, nil)
}
