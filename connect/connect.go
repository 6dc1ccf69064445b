// Package connect establishes the reverse WebSocket connection to the
// OneBot server and owns the reconnection policy consulted by the bot's
// run loop.
package connect

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

const handshakeTimeout = 10 * time.Second

// Policy selects how the run loop reacts when the read loop terminates
// with a connection error.
type Policy int

const (
	// PolicyInfinite reconnects forever with bounded exponential backoff.
	PolicyInfinite Policy = iota
	// PolicyLimited reconnects at most MaxAttempts times.
	PolicyLimited
	// PolicyNone gives up after the first connection failure.
	PolicyNone
)

// Reconnect configures the reconnection policy.
// Zero delays fall back to 1s initial / 60s max.
type Reconnect struct {
	Policy       Policy
	InitialDelay time.Duration
	MaxDelay     time.Duration
	MaxAttempts  uint64 // PolicyLimited only
}

// Config is the build-time connection configuration. Target and
// AccessToken are not renegotiated after connect.
type Config struct {
	// Target is the WebSocket URL of the server, e.g. "ws://localhost:19999".
	Target string

	// AccessToken, when non-empty, is attached to the handshake as an
	// "Authorization: Bearer <token>" header.
	AccessToken string

	Reconnect Reconnect
}

// BackOff builds the delay schedule for this policy. PolicyNone yields a
// schedule that stops immediately after the first failure.
func (r Reconnect) BackOff() backoff.BackOff {
	if r.Policy == PolicyNone {
		return &backoff.StopBackOff{}
	}

	initial := r.InitialDelay
	if initial <= 0 {
		initial = time.Second
	}
	max := r.MaxDelay
	if max <= 0 {
		max = 60 * time.Second
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initial
	bo.MaxInterval = max
	bo.MaxElapsedTime = 0 // never stop on elapsed time
	bo.Reset()

	if r.Policy == PolicyLimited {
		return backoff.WithMaxRetries(bo, r.MaxAttempts)
	}
	return bo
}

// Dial performs the WebSocket handshake against cfg.Target and returns the
// raw duplex connection. The caller splits it into the guarded write half
// and the read half consumed by the dispatch loop.
func Dial(ctx context.Context, cfg Config) (*websocket.Conn, error) {
	header := http.Header{}
	if cfg.AccessToken != "" {
		header.Set("Authorization", "Bearer "+cfg.AccessToken)
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, resp, err := dialer.DialContext(ctx, cfg.Target, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connect: dial %s: %w (status %s)", cfg.Target, err, resp.Status)
		}
		return nil, fmt.Errorf("connect: dial %s: %w", cfg.Target, err)
	}
	return conn, nil
}
