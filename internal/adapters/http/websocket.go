package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/propertymap/internal/adapters/nats"
	"github.com/samirrijal/propertymap/internal/pkg/metrics"
)

const wsPingInterval = 30 * time.Second

// WebSocketHandler relays one session's drawer and marker events to the
// browser. Clients connect with /ws?session=<id>; every NATS message on the
// session's subjects is forwarded verbatim.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		sessionID := c.Query("session")
		if sessionID == "" {
			_ = writeJSON(map[string]string{"error": "session query parameter is required"})
			return
		}
		if _, err := deps.Sessions.Get(sessionID); err != nil {
			_ = writeJSON(map[string]string{"error": "unknown session"})
			return
		}
		if deps.NATS == nil {
			_ = writeJSON(map[string]string{"error": "event relay unavailable"})
			return
		}

		relay := func(msg *nats.Msg) {
			_ = writeJSON(json.RawMessage(msg.Data))
		}
		var subs []*nats.Subscription
		for _, subject := range []string{natsadapter.DrawerSubject(sessionID), natsadapter.MarkerSubject(sessionID)} {
			sub, err := deps.NATS.Subscribe(subject, relay)
			if err != nil {
				slog.Error("ws subscribe", "subject", subject, "error", err)
				_ = writeJSON(map[string]string{"error": "subscribe failed"})
				for _, s := range subs {
					_ = s.Unsubscribe()
				}
				return
			}
			subs = append(subs, sub)
		}

		metrics.ActiveWebSockets.Inc()
		slog.Info("ws client connected", "session", sessionID, "remote", c.RemoteAddr().String())
		_ = writeJSON(map[string]string{"status": "subscribed", "session": sessionID})

		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(wsPingInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// The relay is one-way; reading only detects the close.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}

		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		metrics.ActiveWebSockets.Dec()
		slog.Info("ws client disconnected", "session", sessionID)
	}
}
