package fluxbot_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fluxbot "github.com/fluxbot/fluxbot"
	"github.com/fluxbot/fluxbot/api"
	"github.com/fluxbot/fluxbot/connect"
	"github.com/fluxbot/fluxbot/extract"
	"github.com/fluxbot/fluxbot/message"
)

var wire = jsoniter.ConfigCompatibleWithStandardLibrary

// fakeServer is an in-process OneBot endpoint: it pushes the configured
// event frames on connect and answers calls via the reply function.
type fakeServer struct {
	t      *testing.T
	srv    *httptest.Server
	events []string
	reply  func(action string, params jsoniter.RawMessage) (string, bool)

	calls chan string
}

func newFakeServer(t *testing.T, events []string, reply func(action string, params jsoniter.RawMessage) (string, bool)) *fakeServer {
	t.Helper()
	f := &fakeServer{t: t, events: events, reply: reply, calls: make(chan string, 16)}

	up := websocket.Upgrader{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for _, ev := range f.events {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(ev)); err != nil {
				return
			}
		}
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var frame struct {
				Action string              `json:"action"`
				Params jsoniter.RawMessage `json:"params"`
				Echo   string              `json:"echo"`
			}
			if wire.Unmarshal(data, &frame) != nil {
				continue
			}
			f.calls <- frame.Action
			payload, ok := f.reply(frame.Action, frame.Params)
			if !ok {
				continue
			}
			out := `{"status":"ok","retcode":0,"data":` + payload + `,"echo":"` + frame.Echo + `"}`
			if err := conn.WriteMessage(websocket.TextMessage, []byte(out)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) target() string {
	return "ws" + strings.TrimPrefix(f.srv.URL, "http")
}

const quotingGroupMessage = `{
	"time": 1700000000,
	"self_id": 10001,
	"post_type": "message",
	"message_type": "group",
	"message_id": 7,
	"group_id": 12345,
	"user_id": 67890,
	"message": [
		{"type": "reply", "data": {"id": "99"}},
		{"type": "text", "data": {"text": "what did that say?"}}
	],
	"sender": {"user_id": 67890, "nickname": "alice"}
}`

func TestBotEndToEnd(t *testing.T) {
	reply := func(action string, _ jsoniter.RawMessage) (string, bool) {
		switch action {
		case "get_msg":
			return `{
				"time": 1699999999,
				"message_type": "group",
				"message_id": 99,
				"real_id": 99,
				"sender": {"user_id": 5, "nickname": "bob"},
				"message": [{"type": "text", "data": {"text": "the original"}}]
			}`, true
		case "send_group_msg":
			return `{"message_id": 123}`, true
		default:
			return "", false
		}
	}
	server := newFakeServer(t, []string{quotingGroupMessage}, reply)

	type outcome struct {
		quoted string
		sentID int64
	}
	done := make(chan outcome, 1)

	bot := fluxbot.New(connect.Config{
		Target:    server.target(),
		Reconnect: connect.Reconnect{Policy: connect.PolicyNone},
	}).WithHandler(fluxbot.On2(func(ctx context.Context, bc *fluxbot.Context,
		m *extract.Message, r *extract.Reply) fluxbot.Control {

		sentID, err := api.For(bc).SendGroupMsg(ctx, m.GroupID, m.Reply(message.FromText("it said: "+r.Message.ExtractPlainText())))
		if err != nil {
			t.Errorf("send_group_msg: %v", err)
			return fluxbot.Skip
		}
		done <- outcome{quoted: r.Message.ExtractPlainText(), sentID: sentID}
		return fluxbot.Block
	})).Build()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- bot.Run(ctx) }()

	select {
	case got := <-done:
		assert.Equal(t, "the original", got.quoted)
		assert.EqualValues(t, 123, got.sentID)
	case <-time.After(5 * time.Second):
		t.Fatal("handler never completed")
	}

	// The reply extractor resolves the quote before the handler body runs.
	require.Equal(t, "get_msg", <-server.calls)
	require.Equal(t, "send_group_msg", <-server.calls)

	cancel()
	select {
	case err := <-runErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop on cancel")
	}
}

func TestRunServiceInitFailureAborts(t *testing.T) {
	server := newFakeServer(t, nil, func(string, jsoniter.RawMessage) (string, bool) { return "", false })

	boom := errors.New("schema migration failed")
	bot := fluxbot.New(connect.Config{
		Target:    server.target(),
		Reconnect: connect.Reconnect{Policy: connect.PolicyInfinite},
	}).WithService(&fluxbot.Chain{
		Setup: func(context.Context, *fluxbot.Context) error { return boom },
	}).Build()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := bot.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestRunPolicyNoneReturnsAfterDisconnect(t *testing.T) {
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.Close()
	}))
	defer srv.Close()

	bot := fluxbot.New(connect.Config{
		Target:    "ws" + strings.TrimPrefix(srv.URL, "http"),
		Reconnect: connect.Reconnect{Policy: connect.PolicyNone},
	}).Build()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := bot.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, fluxbot.ErrConnClosed)
}

func TestCallOutsidePipeline(t *testing.T) {
	server := newFakeServer(t, nil, func(action string, _ jsoniter.RawMessage) (string, bool) {
		if action == "get_login_info" {
			return `{"user_id": 10001, "nickname": "flux"}`, true
		}
		return "", false
	})

	bot := fluxbot.New(connect.Config{
		Target:    server.target(),
		Reconnect: connect.Reconnect{Policy: connect.PolicyNone},
	}).Build()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- bot.Run(ctx) }()

	// Wait for the session to come up before calling.
	deadline := time.Now().Add(5 * time.Second)
	var info *api.LoginInfo
	var err error
	for time.Now().Before(deadline) {
		callCtx, callCancel := context.WithTimeout(ctx, time.Second)
		info, err = api.For(bot.Context()).GetLoginInfo(callCtx)
		callCancel()
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	assert.EqualValues(t, 10001, info.UserID)
	assert.Equal(t, "flux", info.Nickname)

	cancel()
	<-runErr
}
