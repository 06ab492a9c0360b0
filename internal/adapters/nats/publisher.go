package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/ports"
)

var _ ports.DrawerListener = (*Publisher)(nil)

const (
	drawerSubjectPrefix = "map.drawer."
	markerSubjectPrefix = "map.marker."
)

// DrawerSubject is the subject carrying drawer updates for a session.
func DrawerSubject(sessionID string) string { return drawerSubjectPrefix + sessionID }

// MarkerSubject is the subject carrying focus-mode marker clicks for a session.
func MarkerSubject(sessionID string) string { return markerSubjectPrefix + sessionID }

// Event is the envelope published on both subjects and relayed verbatim
// to WebSocket clients.
type Event struct {
	Type      string             `json:"type"`
	SessionID string             `json:"session_id"`
	Drawer    *domain.DrawerData `json:"drawer,omitempty"`
	ProjectID string             `json:"project_id,omitempty"`
}

const (
	EventDrawerData  = "drawer_data"
	EventMarkerClick = "marker_click"
)

// Publisher implements ports.DrawerListener on NATS. A JetStream stream
// retains recent events so a reconnecting relay can catch up.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the MAP_EVENTS stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      "MAP_EVENTS",
		Subjects:  []string{"map.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    15 * time.Minute,
		Storage:   nats.MemoryStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// DrawerChanged publishes the drawer state of a session. Publishing is
// buffered by the client and never blocks the caller.
func (p *Publisher) DrawerChanged(ctx context.Context, sessionID string, data domain.DrawerData) {
	p.publish(ctx, DrawerSubject(sessionID), Event{Type: EventDrawerData, SessionID: sessionID, Drawer: &data})
}

// MarkerClicked publishes a focus-mode marker click.
func (p *Publisher) MarkerClicked(ctx context.Context, sessionID, projectID string) {
	p.publish(ctx, MarkerSubject(sessionID), Event{Type: EventMarkerClick, SessionID: sessionID, ProjectID: projectID})
}

func (p *Publisher) publish(ctx context.Context, subject string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.ErrorContext(ctx, "marshal map event", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		slog.WarnContext(ctx, "publish map event", "subject", subject, "error", err)
	}
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
