package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// ProjectRepo implements ports.ProjectRepository with pgx.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo creates a new ProjectRepo.
func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `
	id::text, COALESCE(slug, ''), name, COALESCE(address, ''), COALESCE(cover_image_url, ''),
	latitude, longitude, created_at`

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Address, &p.CoverImageURL,
		&p.Latitude, &p.Longitude, &p.CreatedAt)
	return p, err
}

// List returns every published project, newest first. Coordinates stay
// nil for projects that were never geocoded.
func (r *ProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+projectColumns+`
		FROM projects
		WHERE published
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID returns a project by id or slug.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := scanProject(r.db.Pool.QueryRow(ctx, `SELECT `+projectColumns+`
		FROM projects
		WHERE id::text = $1 OR slug = $1
		LIMIT 1`, id))
	if err != nil {
		return nil, notFound(err, "project "+id)
	}
	return &p, nil
}
