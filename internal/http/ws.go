package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed serves the same-origin dashboard and exposes read-only
	// status data, so cross-origin upgrades are not a concern here.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// statusFeed upgrades the connection and pushes a fresh status snapshot
// every feed interval until the client goes away. Each connection reads
// the store independently; there is no shared hub.
func (a *API) statusFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := newFeedTicker(a.feedInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		overview, err := a.status.Snapshot(ctx)
		if err != nil {
			a.logger.Error("status feed snapshot failed", "err", err)
			return
		}
		if err := conn.WriteJSON(statusPayload(overview)); err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

func newFeedTicker(interval time.Duration) *time.Ticker {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return time.NewTicker(interval)
}
