package bridge_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/tabs/internal/host"
	"github.com/nikbrunner/tabs/internal/host/bridge"
	"github.com/nikbrunner/tabs/internal/model"
)

func startServer(t *testing.T) (*bridge.Server, string) {
	t.Helper()
	srv := bridge.New()
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func nextEvent(t *testing.T, srv *bridge.Server) host.Event {
	t.Helper()
	select {
	case ev := <-srv.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return host.Event{}
	}
}

// attach connects a fake extension and waits until the server has seen it.
func attach(t *testing.T, srv *bridge.Server, url string) *websocket.Conn {
	t.Helper()
	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(bridge.Inbound{
		Type: "snapshot",
		Tabs: []model.Tab{
			{ID: 10, Index: 0, Title: "Mail", URL: "https://mail.example.com"},
			{ID: 11, Index: 1, Title: "Docs", URL: "https://docs.example.com"},
		},
	}))
	ev := nextEvent(t, srv)
	require.Equal(t, host.EventSnapshot, ev.Type)
	require.Len(t, ev.Tabs, 2)
	return conn
}

func withTimeout(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestServer_NotConnected(t *testing.T) {
	srv, _ := startServer(t)

	require.False(t, srv.Connected())
	require.ErrorIs(t, srv.Activate(withTimeout(t), 1), host.ErrNotConnected)
	require.ErrorIs(t, srv.Move(withTimeout(t), 1, 0), host.ErrNotConnected)
}

func TestServer_TabEvents(t *testing.T) {
	srv, url := startServer(t)
	conn := attach(t, srv, url)

	require.True(t, srv.Connected())

	require.NoError(t, conn.WriteJSON(bridge.Inbound{Type: "tab.created", Tab: &model.Tab{ID: 12, Index: 2, Title: "Chat"}}))
	require.NoError(t, conn.WriteJSON(bridge.Inbound{Type: "tab.bogus"}))
	require.NoError(t, conn.WriteJSON(bridge.Inbound{Type: "tab.updated"})) // missing tab
	require.NoError(t, conn.WriteJSON(bridge.Inbound{Type: "tab.moved", Tab: &model.Tab{ID: 12, Index: 0, Title: "Chat"}}))
	require.NoError(t, conn.WriteJSON(bridge.Inbound{Type: "tab.removed", TabID: 10}))

	ev := nextEvent(t, srv)
	require.Equal(t, host.EventCreated, ev.Type)
	require.Equal(t, 12, ev.Tab.ID)

	ev = nextEvent(t, srv)
	require.Equal(t, host.EventMoved, ev.Type)
	require.Equal(t, 0, ev.Tab.Index)

	ev = nextEvent(t, srv)
	require.Equal(t, host.EventRemoved, ev.Type)
	require.Equal(t, 10, ev.TabID)
}

func TestServer_ActivateRoundTrip(t *testing.T) {
	srv, url := startServer(t)
	conn := attach(t, srv, url)

	got := make(chan bridge.Outbound, 1)
	go func() {
		var cmd bridge.Outbound
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		got <- cmd
		ok := true
		_ = conn.WriteJSON(bridge.Inbound{ID: cmd.ID, OK: &ok})
	}()

	require.NoError(t, srv.Activate(withTimeout(t), 11))

	cmd := <-got
	require.Equal(t, "focus", cmd.Action)
	require.Equal(t, 11, cmd.TabID)
	require.Nil(t, cmd.Index)
	require.NotEmpty(t, cmd.ID)
}

func TestServer_MoveFailureReported(t *testing.T) {
	srv, url := startServer(t)
	conn := attach(t, srv, url)

	go func() {
		var cmd bridge.Outbound
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		ok := false
		_ = conn.WriteJSON(bridge.Inbound{ID: cmd.ID, OK: &ok, Error: "no tab with id 99"})
	}()

	err := srv.Move(withTimeout(t), 99, 3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no tab with id 99")
}

func TestServer_CommandTimesOutWithoutResponse(t *testing.T) {
	srv, url := startServer(t)
	attach(t, srv, url)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, srv.Activate(ctx, 10), context.DeadlineExceeded)
}

func TestServer_Disconnect(t *testing.T) {
	srv, url := startServer(t)
	conn := attach(t, srv, url)

	require.NoError(t, conn.Close())

	ev := nextEvent(t, srv)
	require.Equal(t, host.EventDisconnected, ev.Type)
	require.False(t, srv.Connected())
	require.ErrorIs(t, srv.Activate(withTimeout(t), 10), host.ErrNotConnected)
}

func TestServer_CloseClosesEvents(t *testing.T) {
	srv, url := startServer(t)
	attach(t, srv, url)

	require.NoError(t, srv.Close())

	_, ok := <-srv.Events()
	require.False(t, ok)
}
