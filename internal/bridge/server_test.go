package bridge

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gen3d-desktop/internal/dispatch"
	"gen3d-desktop/internal/events"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello outbound
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "subscribed", hello.Type)
	return conn
}

func TestBridgeForwardsMenuActions(t *testing.T) {
	bridge := NewServer("", nil)
	srv := httptest.NewServer(bridge)
	defer srv.Close()

	conn := dial(t, srv)

	bus := events.NewBus(8, nil)
	bus.Subscribe(dispatch.EventName, bridge)
	dispatch.New(bus, nil).Dispatch("menu_export_glb")
	bus.Shutdown()

	var msg outbound
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, outbound{Type: "event", Event: "menu-action", Payload: "menu_export_glb"}, msg)
}

func TestBridgeAnswersPing(t *testing.T) {
	bridge := NewServer("", nil)
	srv := httptest.NewServer(bridge)
	defer srv.Close()

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(inbound{Type: "ping"}))

	var msg outbound
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "pong", msg.Type)

	require.NoError(t, conn.WriteJSON(inbound{Type: "launch"}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
}

func TestBridgeHealthz(t *testing.T) {
	srv := httptest.NewServer(NewServer("", nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestBridgeShutdownDisconnectsClients(t *testing.T) {
	bridge := NewServer("", nil)
	srv := httptest.NewServer(bridge)
	defer srv.Close()

	conn := dial(t, srv)
	require.Equal(t, 1, bridge.ClientCount())

	bridge.Shutdown()
	assert.Zero(t, bridge.ClientCount())

	var msg outbound
	assert.Error(t, conn.ReadJSON(&msg))

	bridge.Handle(events.Event{Name: dispatch.EventName, Payload: "menu_logs"})
}
