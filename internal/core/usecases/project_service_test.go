package usecases_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/usecases"
)

func TestProjectService_ListReadsThroughCache(t *testing.T) {
	calls := 0
	repo := &mockProjectRepo{listFn: func(ctx context.Context) ([]domain.Project, error) {
		calls++
		return puneProjects(), nil
	}}
	cache := newMockCache()
	svc := usecases.NewProjectService(repo, cache)

	for i := 0; i < 3; i++ {
		projects, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(projects) != 6 {
			t.Fatalf("expected 6 projects, got %d", len(projects))
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 repository call, got %d", calls)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.sets)
	}
}

func TestProjectService_CachedCopyKeepsMissingCoordinates(t *testing.T) {
	repo := &mockProjectRepo{listFn: func(ctx context.Context) ([]domain.Project, error) {
		return puneProjects(), nil
	}}
	svc := usecases.NewProjectService(repo, newMockCache())
	_, _ = svc.List(context.Background())

	cached, _ := svc.List(context.Background())
	if _, ok := cached[1].Location(); ok {
		t.Error("ungeocoded project gained coordinates through the cache")
	}
}

func TestProjectService_GetByID(t *testing.T) {
	repo := &mockProjectRepo{getByIDFn: func(ctx context.Context, id string) (*domain.Project, error) {
		if id == "a" {
			p := project("a", 18.52, 73.85)
			return &p, nil
		}
		return nil, domain.ErrNotFound
	}}
	svc := usecases.NewProjectService(repo, nil)

	p, err := svc.GetByID(context.Background(), "a")
	if err != nil || p.ID != "a" {
		t.Fatalf("expected project a, got %+v err=%v", p, err)
	}
	if _, err := svc.GetByID(context.Background(), "zz"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectService_InBounds(t *testing.T) {
	repo := &mockProjectRepo{listFn: func(ctx context.Context) ([]domain.Project, error) {
		return puneProjects(), nil
	}}
	svc := usecases.NewProjectService(repo, nil)

	got, err := svc.InBounds(context.Background(), puneBox)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []string{"a", "b", "c"}) {
		t.Errorf("expected [a b c], got %v", ids(got))
	}
}

func TestProjectService_ListError(t *testing.T) {
	repo := &mockProjectRepo{listFn: func(ctx context.Context) ([]domain.Project, error) {
		return nil, errors.New("connection refused")
	}}
	svc := usecases.NewProjectService(repo, nil)
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
