package usecases

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/pkg/geospatial"
)

// layoutState is the layout editor's view of the drawing: which overlay is
// the project boundary, which overlays are plots, and the landmark list.
type layoutState struct {
	projectID  string
	boundary   *domain.Overlay
	locked     bool
	plots      map[string]*domain.Plot
	nextNumber int

	landmarks   []domain.Landmark
	landmarkGen uint64
}

func newLayoutState() layoutState {
	return layoutState{plots: make(map[string]*domain.Plot), nextNumber: 1}
}

func (l *layoutState) isBoundary(ov *domain.Overlay) bool {
	return l.boundary != nil && l.boundary == ov
}

func (l *layoutState) clear() {
	l.boundary = nil
	l.locked = false
	l.plots = make(map[string]*domain.Plot)
	l.nextNumber = 1
}

func projectRequired() *domain.Alert {
	return raise(AlertProjectRequired, "Open a project before editing its layout.")
}

// SaveBoundary turns the selected polygon or rectangle, or else the most
// recently drawn one, into the project boundary and persists it.
func (s *MapSession) SaveBoundary(ctx context.Context) *domain.Alert {
	s.mu.Lock()
	if s.layout.projectID == "" {
		s.mu.Unlock()
		return projectRequired()
	}
	ov := s.boundaryCandidate()
	if ov == nil {
		s.mu.Unlock()
		return raise(AlertBoundaryMissing, "Draw the project boundary first.")
	}
	if s.drawing.Selected() == ov {
		s.drawing.ClearSelection()
	}
	if prev := s.layout.boundary; prev != nil && prev != ov {
		prev.Clickable = true
	}
	ov.Clickable = false
	s.layout.boundary = ov
	b := &domain.Boundary{ProjectID: s.layout.projectID, OverlayID: ov.ID, Shape: ov.Record()}
	repo := s.svc.Layouts
	s.mu.Unlock()

	if repo == nil {
		return nil
	}
	if err := repo.SaveBoundary(ctx, b); err != nil {
		s.log.ErrorContext(ctx, "save boundary failed", "project_id", b.ProjectID, "error", err)
		return raise(AlertBoundarySaveFailed, "Failed to save boundary. Please try again.")
	}
	s.log.InfoContext(ctx, "boundary saved", "project_id", b.ProjectID, "kind", b.Shape.Type)
	return nil
}

func (s *MapSession) boundaryCandidate() *domain.Overlay {
	eligible := func(ov *domain.Overlay) bool {
		k := ov.Kind()
		return (k == domain.KindPolygon || k == domain.KindRectangle) && s.layout.plots[ov.ID] == nil
	}
	if sel := s.drawing.Selected(); sel != nil && eligible(sel) {
		return sel
	}
	overlays := s.drawing.Overlays()
	for i := len(overlays) - 1; i >= 0; i-- {
		if eligible(overlays[i]) {
			return overlays[i]
		}
	}
	return nil
}

// EditBoundary makes the saved boundary selectable and selects it.
func (s *MapSession) EditBoundary() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ov := s.layout.boundary
	if ov == nil || s.drawing.Get(ov.ID) == nil {
		return fmt.Errorf("boundary: %w", domain.ErrNotFound)
	}
	ov.Clickable = true
	return s.drawing.Select(ov.ID)
}

// LockToBoundary restricts the camera to the boundary. While locked,
// newly drawn shapes must fit inside it and become plots.
func (s *MapSession) LockToBoundary() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canvas == nil {
		return domain.ErrMapNotReady
	}
	ov := s.layout.boundary
	if ov == nil || s.drawing.Get(ov.ID) == nil {
		return fmt.Errorf("%w: save a boundary before locking", domain.ErrInvalidInput)
	}
	b := ov.Shape.Bounds()
	s.canvas.camera.Restriction = &b
	s.canvas.fitBounds(b)
	s.layout.locked = true
	return nil
}

// UnlockCanvas lifts the camera restriction.
func (s *MapSession) UnlockCanvas() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.locked = false
	if s.canvas != nil {
		s.canvas.camera.Restriction = nil
	}
}

// UndoLastDrawing removes the most recently drawn overlay.
func (s *MapSession) UndoLastDrawing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ov := s.drawing.Undo()
	if ov == nil {
		return false
	}
	if s.layout.isBoundary(ov) {
		s.releaseBoundary()
	}
	return true
}

// Redo restores the most recently undone overlay. A restored plot keeps
// its number and fields.
func (s *MapSession) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing.Redo() != nil
}

// releaseBoundary forgets the boundary, making its overlay an ordinary
// shape again and unlocking the canvas.
func (s *MapSession) releaseBoundary() {
	s.layout.boundary.Clickable = true
	s.layout.boundary = nil
	s.layout.locked = false
	if s.canvas != nil {
		s.canvas.camera.Restriction = nil
	}
}

// GetPlot returns the plot drawn as overlayID.
func (s *MapSession) GetPlot(overlayID string) (domain.Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.plot(overlayID)
	if err != nil {
		return domain.Plot{}, err
	}
	return *p, nil
}

func (s *MapSession) plot(overlayID string) (*domain.Plot, error) {
	p := s.layout.plots[overlayID]
	ov := s.drawing.Get(overlayID)
	if p == nil || ov == nil {
		return nil, fmt.Errorf("plot %s: %w", overlayID, domain.ErrNotFound)
	}
	p.Shape = ov.Record()
	return p, nil
}

// UpdatePlotField sets one plot attribute. Invalid values leave the plot
// unchanged.
func (s *MapSession) UpdatePlotField(overlayID string, field domain.PlotField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.plot(overlayID)
	if err != nil {
		return err
	}
	return p.Set(field, value)
}

// ConfirmPlot marks a plot confirmed and persists every plot of the
// project. The plot stays unconfirmed when persisting fails.
func (s *MapSession) ConfirmPlot(ctx context.Context, overlayID string) (*domain.Alert, error) {
	s.mu.Lock()
	p, err := s.plot(overlayID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	projectID := s.layout.projectID
	if projectID == "" {
		s.mu.Unlock()
		return projectRequired(), nil
	}
	plots := s.livePlots()
	for i := range plots {
		if plots[i].OverlayID == overlayID {
			plots[i].Confirmed = true
		}
	}
	repo := s.svc.Layouts
	s.mu.Unlock()

	if repo != nil {
		if err := repo.SavePlots(ctx, projectID, plots); err != nil {
			s.log.ErrorContext(ctx, "save plots failed", "project_id", projectID, "error", err)
			return raise(AlertPlotSaveFailed, "Failed to save plot. Please try again."), nil
		}
	}

	s.mu.Lock()
	p.Confirmed = true
	s.mu.Unlock()
	return nil, nil
}

// livePlots returns copies of the plots whose overlays are on the map,
// ordered by number.
func (s *MapSession) livePlots() []domain.Plot {
	out := make([]domain.Plot, 0, len(s.layout.plots))
	for _, ov := range s.drawing.Overlays() {
		if p := s.layout.plots[ov.ID]; p != nil {
			cp := *p
			cp.Shape = ov.Record()
			out = append(out, cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// addPlot registers ov as a new plot.
func (s *MapSession) addPlot(ov *domain.Overlay) {
	s.layout.plots[ov.ID] = &domain.Plot{
		OverlayID: ov.ID,
		Number:    s.layout.nextNumber,
		Status:    domain.PlotAvailable,
		Shape:     ov.Record(),
	}
	s.layout.nextNumber++
}

// FetchLandmarks searches for landmarks around the target and merges them
// into the available list. Earlier selections are kept.
func (s *MapSession) FetchLandmarks(ctx context.Context) *domain.Alert {
	s.mu.Lock()
	s.layout.landmarkGen++
	gen := s.layout.landmarkGen
	center, _, ok := s.target()
	s.mu.Unlock()
	if !ok || s.svc.Places == nil {
		return nil
	}

	results := make([][]domain.Place, len(domain.LandmarkQueries))
	g, gctx := errgroup.WithContext(ctx)
	for i, q := range domain.LandmarkQueries {
		g.Go(func() error {
			places, err := s.svc.Places.TextSearch(gctx, domain.TextQuery{Query: q, Location: center, Radius: domain.LandmarkRadius})
			if err != nil {
				s.log.DebugContext(gctx, "landmark search failed", "query", q, "error", err)
				return nil
			}
			results[i] = places
			return nil
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.layout.landmarkGen {
		return nil
	}
	seen := make(map[string]bool, len(s.layout.landmarks))
	merged := append([]domain.Landmark(nil), s.layout.landmarks...)
	for _, l := range merged {
		seen[l.PlaceID] = true
	}
	for i, places := range results {
		for _, p := range places {
			if seen[p.PlaceID] {
				continue
			}
			seen[p.PlaceID] = true
			merged = append(merged, domain.Landmark{
				PlaceID:  p.PlaceID,
				Name:     p.Name,
				Category: domain.LandmarkQueries[i],
				Location: p.Location,
				Address:  p.Address,
			})
		}
	}
	dist := func(l domain.Landmark) float64 {
		return geospatial.Haversine(center.Lat, center.Lng, l.Location.Lat, l.Location.Lng)
	}
	sort.SliceStable(merged, func(i, j int) bool { return dist(merged[i]) < dist(merged[j]) })
	s.layout.landmarks = merged
	return nil
}

// GetAvailableLandmarks returns every fetched landmark, nearest first.
func (s *MapSession) GetAvailableLandmarks() []domain.Landmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Landmark(nil), s.layout.landmarks...)
}

// ToggleLandmarkSelection flips whether a landmark is pinned.
func (s *MapSession) ToggleLandmarkSelection(placeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layout.landmarks {
		if s.layout.landmarks[i].PlaceID == placeID {
			s.layout.landmarks[i].Selected = !s.layout.landmarks[i].Selected
			return nil
		}
	}
	return fmt.Errorf("landmark %s: %w", placeID, domain.ErrNotFound)
}

// GetSelectedLandmarks returns the pinned landmarks.
func (s *MapSession) GetSelectedLandmarks() []domain.Landmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLandmarks()
}

func (s *MapSession) selectedLandmarks() []domain.Landmark {
	var out []domain.Landmark
	for _, l := range s.layout.landmarks {
		if l.Selected {
			out = append(out, l)
		}
	}
	return out
}

// SaveLandmarks persists the pinned landmarks. Failures are reported to
// the user and not retried.
func (s *MapSession) SaveLandmarks(ctx context.Context) *domain.Alert {
	s.mu.Lock()
	projectID := s.layout.projectID
	selected := s.selectedLandmarks()
	repo := s.svc.Layouts
	s.mu.Unlock()

	if projectID == "" {
		return projectRequired()
	}
	if repo == nil {
		return nil
	}
	if err := repo.SaveLandmarks(ctx, projectID, selected); err != nil {
		s.log.ErrorContext(ctx, "save landmarks failed", "project_id", projectID, "error", err)
		return raise(AlertLandmarkSaveFailed, "Failed to save landmarks. Please try again.")
	}
	return nil
}
