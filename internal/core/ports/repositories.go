package ports

import (
	"context"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// ProjectRepository reads project listings.
type ProjectRepository interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
}

// DrawingRepository persists serialized overlay collections by key.
type DrawingRepository interface {
	Save(ctx context.Context, key string, records []domain.OverlayRecord) error
	// Load returns domain.ErrNotFound when nothing was saved under key.
	Load(ctx context.Context, key string) ([]domain.OverlayRecord, error)
}

// LayoutRepository persists a project's layout: boundary, plots, landmarks.
type LayoutRepository interface {
	SaveBoundary(ctx context.Context, b *domain.Boundary) error
	SavePlots(ctx context.Context, projectID string, plots []domain.Plot) error
	SaveLandmarks(ctx context.Context, projectID string, landmarks []domain.Landmark) error
}
