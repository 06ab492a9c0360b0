package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/ports"
)

const (
	projectsListKey  = "projects:all"
	projectsListTTL  = 60
	projectByIDTTL   = 300
	projectKeyPrefix = "projects:id:"
)

// ProjectService handles project listing with read-through caching.
type ProjectService struct {
	projects ports.ProjectRepository
	cache    ports.CacheService
}

// NewProjectService creates a new ProjectService. cache may be nil.
func NewProjectService(projects ports.ProjectRepository, cache ports.CacheService) *ProjectService {
	return &ProjectService{projects: projects, cache: cache}
}

// List returns every project, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, projectsListKey); err == nil {
			var projects []domain.Project
			if err := json.Unmarshal(data, &projects); err == nil {
				return projects, nil
			}
		}
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	// Short TTL: listings are edited from the admin side
	if s.cache != nil {
		if data, err := json.Marshal(projects); err == nil {
			_ = s.cache.Set(ctx, projectsListKey, data, projectsListTTL)
		}
	}

	return projects, nil
}

// GetByID returns a single project.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: project id is required", domain.ErrInvalidInput)
	}
	cacheKey := projectKeyPrefix + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var p domain.Project
			if err := json.Unmarshal(data, &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, projectByIDTTL)
		}
	}

	return p, nil
}

// InBounds returns the projects located inside b, in list order.
func (s *ProjectService) InBounds(ctx context.Context, b domain.Bounds) ([]domain.Project, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: bounds out of range", domain.ErrInvalidInput)
	}
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterVisible(projects, b), nil
}

