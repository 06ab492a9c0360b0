package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// drawingKey is the storage key used when the caller gives none: the
// project being edited, else the session itself.
func (s *MapSession) drawingKey(key string) string {
	if key != "" {
		return key
	}
	if s.layout.projectID != "" {
		return "project:" + s.layout.projectID
	}
	return "session:" + s.id
}

// SaveDrawing persists the serialized overlays under key and returns the
// key used. Saving with no map attached stores nothing.
func (s *MapSession) SaveDrawing(ctx context.Context, key string) (string, int, error) {
	s.mu.Lock()
	key = s.drawingKey(key)
	records := s.drawing.Serialize()
	attached := s.canvas != nil
	s.mu.Unlock()

	if !attached {
		return key, 0, nil
	}
	if s.svc.Drawings == nil {
		return key, 0, errors.New("no drawing store configured")
	}
	if err := s.svc.Drawings.Save(ctx, key, records); err != nil {
		return key, 0, fmt.Errorf("save drawing %s: %w", key, err)
	}
	return key, len(records), nil
}

// LoadDrawing restores the overlays saved under key.
func (s *MapSession) LoadDrawing(ctx context.Context, key string) (restored, skipped int, err error) {
	s.mu.Lock()
	key = s.drawingKey(key)
	s.mu.Unlock()

	if s.svc.Drawings == nil {
		return 0, 0, errors.New("no drawing store configured")
	}
	records, err := s.svc.Drawings.Load(ctx, key)
	if err != nil {
		return 0, 0, fmt.Errorf("load drawing %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	restored, skipped = s.restore(records)
	return restored, skipped, nil
}

// ExportText returns the overlays as the JSON text users copy and share.
func (s *MapSession) ExportText() (string, error) {
	records := s.Serialize()
	if records == nil {
		records = []domain.OverlayRecord{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal overlays: %w", err)
	}
	return string(b), nil
}

// ExportGeoJSON returns the overlays as a GeoJSON feature collection.
func (s *MapSession) ExportGeoJSON() *geojson.FeatureCollection {
	return domain.FeatureCollection(s.Serialize())
}

// ImportText restores overlays from shared JSON text. Entries that do not
// decode are skipped like malformed geometry; text that is not a JSON
// array at all is an input error.
func (s *MapSession) ImportText(text string) (restored, skipped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return 0, 0, fmt.Errorf("%w: drawing text is not a JSON list: %v", domain.ErrInvalidInput, err)
	}
	records := make([]domain.OverlayRecord, 0, len(raw))
	for _, r := range raw {
		var rec domain.OverlayRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		return 0, 0, nil
	}
	n, bad := s.restore(records)
	return n, skipped + bad, nil
}
