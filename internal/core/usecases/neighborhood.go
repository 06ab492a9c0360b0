package usecases

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// SetNeighborhoodFilter replaces the live scene with markers for places of
// category near the target. CategoryNone clears the scene. An unknown
// category is an input error and leaves the live scene alone.
func (s *MapSession) SetNeighborhoodFilter(ctx context.Context, category domain.Category) error {
	if category == domain.CategoryNone {
		s.ClearNeighborhood()
		return nil
	}
	placeType, ok := category.PlaceType()
	if !ok {
		return fmt.Errorf("%w: unknown neighborhood category %q", domain.ErrInvalidInput, category)
	}

	s.mu.Lock()
	gen := s.scenes.begin(domain.SceneNeighborhood)
	center, _, ok := s.target()
	s.mu.Unlock()
	if !ok {
		return nil
	}

	places := s.nearby(ctx, domain.NearbyQuery{Location: center, Radius: domain.NeighborhoodRadius, Type: placeType})
	markers := make([]domain.Marker, 0, len(places))
	for _, p := range places {
		markers = append(markers, domain.Marker{
			Role:     domain.RolePlace,
			Position: p.Location,
			Title:    p.Name,
			Icon:     category.Icon(),
			Category: string(category),
			PlaceID:  p.PlaceID,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scenes.live(gen, domain.SceneNeighborhood) {
		s.scenes.commit(&domain.Scene{
			Generation: gen,
			Kind:       domain.SceneNeighborhood,
			Category:   category,
			Places:     markers,
		})
	}
	return nil
}

// SetNeighborhoodView routes from the visitor to the target, then marks
// schools, hospitals, malls, restaurants, parks and universities around
// the target. Without a position nothing is drawn.
func (s *MapSession) SetNeighborhoodView(ctx context.Context) *domain.Alert {
	s.mu.Lock()
	gen := s.scenes.begin(domain.SceneNeighborhoodView)
	dest, name, ok := s.target()
	s.mu.Unlock()
	if !ok {
		return nil
	}

	origin, alert := s.locate(ctx)
	if origin == nil {
		return alert
	}

	scene := &domain.Scene{
		Generation:  gen,
		Kind:        domain.SceneNeighborhoodView,
		Origin:      &domain.Marker{Role: domain.RoleOrigin, Position: *origin, Title: "Your location"},
		Destination: &domain.Marker{Role: domain.RoleDestination, Position: dest, Title: name},
	}
	if dir, err := s.route(ctx, *origin, dest); err != nil {
		s.log.WarnContext(ctx, "neighborhood route failed", "error", err)
	} else {
		scene.Route = routeLine(dir, true)
	}

	s.mu.Lock()
	if !s.scenes.live(gen, domain.SceneNeighborhoodView) {
		s.mu.Unlock()
		return nil
	}
	s.scenes.commit(scene)
	if s.canvas != nil {
		s.canvas.fitBounds(domain.BoundsOf(*origin, dest))
	}
	s.mu.Unlock()

	markers := s.searchViewCategories(ctx, dest)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scenes.live(gen, domain.SceneNeighborhoodView) && s.scenes.current != nil {
		s.scenes.current.Places = markers
	}
	return nil
}

// searchViewCategories runs one nearby search per view category
// concurrently and merges the results in category order, first
// occurrence of a place winning.
func (s *MapSession) searchViewCategories(ctx context.Context, center domain.LatLng) []domain.Marker {
	cats := domain.NeighborhoodViewCategories
	results := make([][]domain.Place, len(cats))

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range cats {
		g.Go(func() error {
			results[i] = s.nearby(gctx, domain.NearbyQuery{Location: center, Radius: domain.NeighborhoodRadius, Type: cat.PlaceType})
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	var markers []domain.Marker
	for i, places := range results {
		for _, p := range places {
			if seen[p.PlaceID] {
				continue
			}
			seen[p.PlaceID] = true
			markers = append(markers, domain.Marker{
				Role:     domain.RolePlace,
				Position: p.Location,
				Title:    p.Name,
				Icon:     cats[i].Icon,
				Category: cats[i].PlaceType,
				PlaceID:  p.PlaceID,
				Info:     infoContent(p),
			})
		}
	}
	return markers
}

// nearby runs a nearby search. Zero results and service failures both
// yield no places.
func (s *MapSession) nearby(ctx context.Context, q domain.NearbyQuery) []domain.Place {
	if s.svc.Places == nil {
		return nil
	}
	places, err := s.svc.Places.NearbySearch(ctx, q)
	if err != nil {
		if !errors.Is(err, domain.ErrZeroResults) {
			s.log.WarnContext(ctx, "nearby search failed", "type", q.Type, "error", err)
		}
		return nil
	}
	return places
}

func infoContent(p domain.Place) string {
	if p.Address == "" {
		return p.Name
	}
	return p.Name + "\n" + p.Address
}

// ClearNeighborhood removes the live neighborhood scene and resets the
// category. A navigation scene is left in place.
func (s *MapSession) ClearNeighborhood() {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.scenes.kind {
	case domain.SceneNeighborhood, domain.SceneNeighborhoodView:
		s.scenes.reset()
	}
}
