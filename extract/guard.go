package extract

import (
	"context"
	"strconv"

	fluxbot "github.com/fluxbot/fluxbot"
	"github.com/fluxbot/fluxbot/event"
)

// InGroup matches group messages from the given group.
func InGroup(groupID int64) fluxbot.Guard {
	return func(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
		return ev.Message != nil && ev.Message.IsGroup() && ev.Message.GroupID == groupID
	}
}

// FromUser matches messages sent by the given user.
func FromUser(userID int64) fluxbot.Guard {
	return func(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
		return ev.Message != nil && ev.Message.UserID == userID
	}
}

// Private matches private messages.
func Private() fluxbot.Guard {
	return func(_ context.Context, _ *fluxbot.Context, ev *event.Event) bool {
		return ev.Message != nil && ev.Message.IsPrivate()
	}
}

// ToMe matches group messages that mention the bot account, and all
// private messages.
func ToMe() fluxbot.Guard {
	return func(ctx context.Context, bc *fluxbot.Context, ev *event.Event) bool {
		if ev.Message == nil {
			return false
		}
		if ev.Message.IsPrivate() {
			return true
		}
		var at At
		return at.Extract(ctx, bc, ev) && at.UserID == strconv.FormatInt(ev.SelfID, 10)
	}
}
