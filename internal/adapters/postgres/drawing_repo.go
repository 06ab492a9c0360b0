package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// DrawingRepo implements ports.DrawingRepository. Each key holds one JSONB
// array of overlay records.
type DrawingRepo struct {
	db *DB
}

// NewDrawingRepo creates a new DrawingRepo.
func NewDrawingRepo(db *DB) *DrawingRepo {
	return &DrawingRepo{db: db}
}

// Save replaces the drawing stored under key.
func (r *DrawingRepo) Save(ctx context.Context, key string, records []domain.OverlayRecord) error {
	if records == nil {
		records = []domain.OverlayRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal overlays: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO drawings (key, overlays, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET overlays = EXCLUDED.overlays, updated_at = now()
	`, key, data)
	return err
}

// Load returns the drawing stored under key.
func (r *DrawingRepo) Load(ctx context.Context, key string) ([]domain.OverlayRecord, error) {
	var data []byte
	err := r.db.Pool.QueryRow(ctx, `SELECT overlays FROM drawings WHERE key = $1`, key).Scan(&data)
	if err != nil {
		return nil, notFound(err, "drawing "+key)
	}
	var records []domain.OverlayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode drawing %s: %w", key, err)
	}
	return records, nil
}
