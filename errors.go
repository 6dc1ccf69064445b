package fluxbot

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNoConnection is returned when a call is attempted while no
	// socket is attached.
	ErrNoConnection = errors.New("fluxbot: no connection")

	// ErrNoResponse is returned when the connection drops while a call
	// is still waiting for its reply.
	ErrNoResponse = errors.New("fluxbot: no response")

	// ErrCallTimeout is returned when no reply arrives within the call
	// deadline.
	ErrCallTimeout = errors.New("fluxbot: call timed out")

	// ErrConnClosed wraps the read error that terminated the read loop.
	ErrConnClosed = errors.New("fluxbot: connection closed")
)

// ActionError reports a call reply whose status is "failed".
type ActionError struct {
	Action  string
	Status  string
	RetCode int64
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("fluxbot: action %q failed: status=%s retcode=%d", e.Action, e.Status, e.RetCode)
}
