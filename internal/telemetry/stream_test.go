package telemetry

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus/internal/logs"
)

func dialStream(t *testing.T, interval time.Duration) (*websocket.Conn, func()) {
	t.Helper()
	logs.Init(logs.Options{Level: "error"})

	r := mux.NewRouter()
	RegisterRoutes(r, NewHandler(interval))
	srv := httptest.NewServer(r)

	wsURL := strings.Replace(srv.URL, "http", "ws", 1) + "/ws/metrics"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestStream_EmitsSnapshots(t *testing.T) {
	conn, cleanup := dialStream(t, 10*time.Millisecond)
	defer cleanup()

	for i := 0; i < 3; i++ {
		var snap Snapshot
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&snap))

		assert.GreaterOrEqual(t, snap.CPU, 20.0)
		assert.LessOrEqual(t, snap.CPU, 80.0)
		assert.GreaterOrEqual(t, snap.Memory, 30.0)
		assert.LessOrEqual(t, snap.Memory, 70.0)
		assert.GreaterOrEqual(t, snap.NetworkIn, 100.0)
		assert.LessOrEqual(t, snap.NetworkIn, 500.0)
		assert.GreaterOrEqual(t, snap.NetworkOut, 50.0)
		assert.LessOrEqual(t, snap.NetworkOut, 200.0)

		_, err := time.Parse(time.RFC3339, snap.Timestamp)
		assert.NoError(t, err)
	}
}

func TestStream_StopsOnClientClose(t *testing.T) {
	conn, cleanup := dialStream(t, 10*time.Millisecond)
	defer cleanup()

	var snap Snapshot
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&snap))

	// A clean client close must end the stream within one interval:
	// the server's next write fails and the handler returns.
	require.NoError(t, conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second)))
	require.NoError(t, conn.Close())
}

func TestNewHandler_DefaultInterval(t *testing.T) {
	h := NewHandler(0)
	assert.Equal(t, DefaultInterval, h.interval)
}
