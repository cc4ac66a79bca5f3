// Package telemetry serves the simulated live-metrics websocket. The
// stream is synthetic, unauthenticated and non-restartable: it pushes
// random snapshots on a fixed interval until the client goes away.
package telemetry

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"nexus/internal/logs"
)

const DefaultInterval = 2 * time.Second

type Snapshot struct {
	CPU        float64 `json:"cpu"`
	Memory     float64 `json:"memory"`
	NetworkIn  float64 `json:"network_in"`
	NetworkOut float64 `json:"network_out"`
	Timestamp  string  `json:"timestamp"`
}

type Handler struct {
	upgrader websocket.Upgrader
	interval time.Duration
}

func NewHandler(interval time.Duration) *Handler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		interval: interval,
	}
}

// RegisterRoutes installs the websocket endpoint.
func RegisterRoutes(r *mux.Router, h *Handler) {
	r.HandleFunc("/ws/metrics", h.Stream).Methods(http.MethodGet)
}

// Stream upgrades the connection and emits one snapshot per interval.
// No inbound messages are consumed; the read pump exists only to
// notice the close. Transport errors end the stream silently.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logs.Logger.Debugf("metrics ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			if err := conn.WriteJSON(randomSnapshot()); err != nil {
				return
			}
		}
	}
}

func randomSnapshot() Snapshot {
	return Snapshot{
		CPU:        uniform(20, 80),
		Memory:     uniform(30, 70),
		NetworkIn:  uniform(100, 500),
		NetworkOut: uniform(50, 200),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func uniform(lo, hi float64) float64 { return lo + rand.Float64()*(hi-lo) }
