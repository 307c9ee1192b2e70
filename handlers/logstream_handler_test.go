package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/thoufiq2326/NexusAI/models"
	"github.com/thoufiq2326/NexusAI/services/notify"
)

func startLogStream(t *testing.T, env *testEnv, keepalive time.Duration) *httptest.Server {
	t.Helper()
	require.NoError(t, env.hub.Start())
	env.journal.SetPublisher(env.hub)

	handler := NewLogStreamHandler(env.journal, env.hub, LogStreamConfig{KeepaliveInterval: keepalive}, nil, zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(handler.HandleLogs))
	t.Cleanup(srv.Close)
	return srv
}

func dialLogStream(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) notify.Message {
	t.Helper()
	var msg notify.Message
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	return msg
}

func waitForSubscribers(t *testing.T, hub *notify.Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.SubscriberCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestLogStream_InitThenLiveEntries(t *testing.T) {
	env := newTestEnv(t, nil)
	srv := startLogStream(t, env, time.Minute)
	defer env.hub.Stop(time.Second)

	env.journal.Log(models.AgentSystem, "booted", models.SeverityInfo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn := dialLogStream(t, ctx, srv)

	first := readMessage(t, ctx, conn)
	assert.Equal(t, notify.MessageInit, first.Type)
	require.Len(t, first.Logs, 1)
	assert.Equal(t, "booted", first.Logs[0].Message)

	waitForSubscribers(t, env.hub, 1)
	env.journal.Log(models.AgentHunter, "Scored Vizag Pharma", models.SeverityInfo)

	live := readMessage(t, ctx, conn)
	assert.Equal(t, notify.MessageNewLog, live.Type)
	require.NotNil(t, live.Log)
	assert.Equal(t, models.AgentHunter, live.Log.Agent)
	assert.Equal(t, "Scored Vizag Pharma", live.Log.Message)
}

func TestLogStream_EmptyFeed(t *testing.T) {
	env := newTestEnv(t, nil)
	srv := startLogStream(t, env, time.Minute)
	defer env.hub.Stop(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn := dialLogStream(t, ctx, srv)

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"init","logs":[]}`, string(data))
}

func TestLogStream_Keepalive(t *testing.T) {
	env := newTestEnv(t, nil)
	srv := startLogStream(t, env, 50*time.Millisecond)
	defer env.hub.Stop(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn := dialLogStream(t, ctx, srv)

	assert.Equal(t, notify.MessageInit, readMessage(t, ctx, conn).Type)
	assert.Equal(t, notify.MessagePing, readMessage(t, ctx, conn).Type)
}

func TestLogStream_ResetBroadcast(t *testing.T) {
	env := newTestEnv(t, nil)
	srv := startLogStream(t, env, time.Minute)
	defer env.hub.Stop(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn := dialLogStream(t, ctx, srv)
	readMessage(t, ctx, conn)
	waitForSubscribers(t, env.hub, 1)

	require.NoError(t, env.engine.Reset(ctx))
	assert.Equal(t, notify.MessageReset, readMessage(t, ctx, conn).Type)
}

func TestLogStream_HubStopClosesConnection(t *testing.T) {
	env := newTestEnv(t, nil)
	srv := startLogStream(t, env, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn := dialLogStream(t, ctx, srv)
	readMessage(t, ctx, conn)
	waitForSubscribers(t, env.hub, 1)

	require.NoError(t, env.hub.Stop(time.Second))

	_, _, err := conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))
}

func TestLogStream_DisconnectUnsubscribes(t *testing.T) {
	env := newTestEnv(t, nil)
	srv := startLogStream(t, env, time.Minute)
	defer env.hub.Stop(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	readMessage(t, ctx, conn)
	waitForSubscribers(t, env.hub, 1)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, "bye"))
	waitForSubscribers(t, env.hub, 0)
}

func TestOriginPatterns(t *testing.T) {
	patterns := OriginPatterns([]string{
		"http://localhost:5173",
		"https://dashboard.example.com",
		"*",
		"example.org",
	})
	assert.Equal(t, []string{"localhost:5173", "dashboard.example.com", "*", "example.org"}, patterns)
}
