package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// LayoutRepo implements ports.LayoutRepository with pgx.
type LayoutRepo struct {
	db *DB
}

// NewLayoutRepo creates a new LayoutRepo.
func NewLayoutRepo(db *DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// SaveBoundary upserts the project's boundary.
func (r *LayoutRepo) SaveBoundary(ctx context.Context, b *domain.Boundary) error {
	shape, err := json.Marshal(b.Shape)
	if err != nil {
		return fmt.Errorf("marshal boundary: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO layout_boundaries (project_id, overlay_id, shape, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (project_id) DO UPDATE
		SET overlay_id = EXCLUDED.overlay_id, shape = EXCLUDED.shape, updated_at = now()
	`, b.ProjectID, b.OverlayID, shape)
	return err
}

// SavePlots replaces the project's plots in one transaction.
func (r *LayoutRepo) SavePlots(ctx context.Context, projectID string, plots []domain.Plot) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM layout_plots WHERE project_id = $1`, projectID); err != nil {
			return fmt.Errorf("clear plots: %w", err)
		}
		batch := &pgx.Batch{}
		for _, p := range plots {
			shape, err := json.Marshal(p.Shape)
			if err != nil {
				return fmt.Errorf("marshal plot %d: %w", p.Number, err)
			}
			batch.Queue(`
				INSERT INTO layout_plots (project_id, overlay_id, number, status, facing, confirmed, shape)
				VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
			`, projectID, p.OverlayID, p.Number, string(p.Status), p.Facing, p.Confirmed, shape)
		}
		br := tx.SendBatch(ctx, batch)
		defer br.Close()
		for range plots {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("batch exec: %w", err)
			}
		}
		return nil
	})
}

// SaveLandmarks replaces the project's pinned landmarks.
func (r *LayoutRepo) SaveLandmarks(ctx context.Context, projectID string, landmarks []domain.Landmark) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM layout_landmarks WHERE project_id = $1`, projectID); err != nil {
			return fmt.Errorf("clear landmarks: %w", err)
		}
		batch := &pgx.Batch{}
		for _, l := range landmarks {
			batch.Queue(`
				INSERT INTO layout_landmarks (project_id, place_id, name, category, address, latitude, longitude)
				VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
			`, projectID, l.PlaceID, l.Name, l.Category, l.Address, l.Location.Lat, l.Location.Lng)
		}
		br := tx.SendBatch(ctx, batch)
		defer br.Close()
		for range landmarks {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("batch exec: %w", err)
			}
		}
		return nil
	})
}
