package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/pkg/metrics"
)

// CreateSessionInput describes a new map. A FocusProjectID opens the map
// in focus mode on that project. Viewport attaches the map right away.
type CreateSessionInput struct {
	FocusProjectID string           `json:"focus_project_id,omitempty"`
	Viewport       *domain.Viewport `json:"viewport,omitempty"`
	Bounds         *domain.Bounds   `json:"bounds,omitempty"`
}

// SessionService owns the live map sessions.
type SessionService struct {
	projects *ProjectService
	svc      MapServices
	newID    func() string

	mu       sync.Mutex
	sessions map[string]*MapSession
}

// NewSessionService creates a SessionService whose sessions use svc.
func NewSessionService(projects *ProjectService, svc MapServices) *SessionService {
	return &SessionService{
		projects: projects,
		svc:      svc,
		newID:    uuid.NewString,
		sessions: make(map[string]*MapSession),
	}
}

// Create starts a session over the current project list.
func (s *SessionService) Create(ctx context.Context, in CreateSessionInput) (*MapSession, error) {
	if in.Bounds != nil && !in.Bounds.Valid() {
		return nil, fmt.Errorf("%w: bounds out of range", domain.ErrInvalidInput)
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	var focused *domain.Project
	if in.FocusProjectID != "" {
		focused, err = s.projects.GetByID(ctx, in.FocusProjectID)
		if err != nil {
			return nil, fmt.Errorf("focus project: %w", err)
		}
	}

	sess := NewMapSession(s.newID(), projects, focused, s.svc)
	if in.Viewport != nil {
		sess.Attach(ctx, *in.Viewport, in.Bounds)
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	metrics.ActiveSessions.Set(float64(n))

	slog.InfoContext(ctx, "map session created", "session", sess.ID(), "projects", len(projects), "focus", in.FocusProjectID)
	return sess, nil
}

// Get returns a live session and marks it used.
func (s *SessionService) Get(id string) (*MapSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	sess.touch()
	return sess, nil
}

// Delete ends a session.
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	delete(s.sessions, id)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return nil
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions unused for longer than maxIdle and returns how many
// were dropped.
func (s *SessionService) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(s.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		metrics.SessionsExpired.Add(float64(dropped))
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
	}
	return dropped
}

// Run sweeps idle sessions every interval until ctx is done.
func (s *SessionService) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(maxIdle); n > 0 {
				slog.Info("expired idle map sessions", "count", n)
			}
		}
	}
}
