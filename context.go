package fluxbot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"github.com/fluxbot/fluxbot/logger"
	"github.com/fluxbot/fluxbot/metric"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// callTimeout is the fixed window a call waits for its reply.
const callTimeout = 30 * time.Second

// callFrame is the outgoing call envelope.
type callFrame struct {
	Action string `json:"action"`
	Params any    `json:"params"`
	Echo   string `json:"echo"`
}

// replyFrame is the inbound call-reply envelope.
type replyFrame struct {
	Status  string          `json:"status"`
	RetCode int64           `json:"retcode"`
	Data    json.RawMessage `json:"data"`
	Echo    string          `json:"echo"`
}

// Context is the per-bot shared state handed to every handler invocation:
// the guarded write half of the socket, the pending-request table and the
// state registry. One Context lives for the lifetime of the bot; every
// dispatch goroutine holds the same instance.
type Context struct {
	connMu sync.Mutex
	conn   *websocket.Conn

	// pending maps an outstanding correlation token to its one-shot
	// reply channel (buffered, capacity 1). Entries are consumed exactly
	// once, by a matching reply or by timeout-triggered removal.
	pending sync.Map // string -> chan []byte

	states  *stateRegistry
	log     *logger.Logger
	metrics *metric.Metrics

	timeout time.Duration // callTimeout unless overridden by tests
}

func newContext(states *stateRegistry, metrics *metric.Metrics) *Context {
	return &Context{
		states:  states,
		log:     logger.New("context"),
		metrics: metrics,
		timeout: callTimeout,
	}
}

// attach installs the write half of a freshly dialed connection.
func (c *Context) attach(conn *websocket.Conn) {
	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
}

// detach drops the connection and fails every outstanding call with
// ErrNoResponse by closing its reply channel without a value.
func (c *Context) detach() {
	c.connMu.Lock()
	conn := c.conn
	c.conn = nil
	c.connMu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}

	c.pending.Range(func(key, value any) bool {
		if _, loaded := c.pending.LoadAndDelete(key); loaded {
			close(value.(chan []byte))
		}
		return true
	})
}

// send writes one text frame, holding the write lock only for the
// duration of the write.
func (c *Context) send(data []byte) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	if c.conn == nil {
		return ErrNoConnection
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("fluxbot: write: %w", err)
	}
	return nil
}

// completeReply hands a raw reply to the call waiting on echo. It returns
// false when no call is outstanding for that token (already timed out, or
// unknown), in which case the reply is dropped; late replies are expected
// and not an error.
func (c *Context) completeReply(echo string, raw []byte) bool {
	v, loaded := c.pending.LoadAndDelete(echo)
	if !loaded {
		return false
	}
	ch := v.(chan []byte)
	ch <- raw
	close(ch)
	return true
}

// Call sends an action frame and blocks until the matching reply arrives,
// the 30-second window elapses, or the connection drops. The correlation
// token is registered before the frame is written, so a reply can never
// race the registration. Calls are never retried; callers decide.
//
// On success the reply's data payload is returned still encoded; the api
// package decodes it into typed responses.
func (c *Context) Call(ctx context.Context, action string, params any) (json.RawMessage, error) {
	done := c.metrics.CallStarted()

	echo := uuid.NewString()
	ch := make(chan []byte, 1)
	c.pending.Store(echo, ch)

	data, err := codec.Marshal(callFrame{Action: action, Params: params, Echo: echo})
	if err != nil {
		c.pending.Delete(echo)
		done("encode")
		return nil, fmt.Errorf("fluxbot: encode call %q: %w", action, err)
	}

	if err := c.send(data); err != nil {
		c.pending.Delete(echo)
		done("send")
		return nil, err
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case raw, ok := <-ch:
		if !ok {
			done("no_response")
			return nil, ErrNoResponse
		}
		reply, err := decodeReply(action, raw)
		if err != nil {
			done("decode")
			return nil, err
		}
		done("")
		return reply, nil
	case <-timer.C:
		c.pending.Delete(echo)
		done("timeout")
		return nil, fmt.Errorf("%w: action %q after %s", ErrCallTimeout, action, c.timeout)
	case <-ctx.Done():
		c.pending.Delete(echo)
		done("canceled")
		return nil, ctx.Err()
	}
}

func decodeReply(action string, raw []byte) (json.RawMessage, error) {
	var reply replyFrame
	if err := codec.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("fluxbot: decode reply for %q: %w", action, err)
	}
	if reply.Status == "failed" {
		return nil, &ActionError{Action: action, Status: reply.Status, RetCode: reply.RetCode}
	}
	return reply.Data, nil
}
