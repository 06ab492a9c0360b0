package usecases_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/usecases"
)

var parcel = domain.Polygon{Path: []domain.LatLng{
	{Lat: 18.510, Lng: 73.840}, {Lat: 18.530, Lng: 73.840},
	{Lat: 18.530, Lng: 73.860}, {Lat: 18.510, Lng: 73.860},
}}

var insidePlot = domain.Rectangle{Box: domain.Bounds{South: 18.512, West: 73.842, North: 18.515, East: 73.845}}

func lockedEditor(t *testing.T, repo *mockLayoutRepo) *usecases.MapSession {
	t.Helper()
	s := focusSession(usecases.MapServices{Layouts: repo})
	draw(t, s, parcel)
	if alert := s.SaveBoundary(context.Background()); alert != nil {
		t.Fatalf("save boundary: %+v", alert)
	}
	if err := s.LockToBoundary(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	return s
}

func TestSaveBoundary_PersistsAndLocksOverlay(t *testing.T) {
	var saved *domain.Boundary
	repo := &mockLayoutRepo{saveBoundaryFn: func(ctx context.Context, b *domain.Boundary) error {
		saved = b
		return nil
	}}
	s := focusSession(usecases.MapServices{Layouts: repo})
	ov := draw(t, s, parcel)

	if alert := s.SaveBoundary(context.Background()); alert != nil {
		t.Fatalf("unexpected alert: %+v", alert)
	}
	if saved == nil || saved.ProjectID != "a" || saved.OverlayID != ov.ID || saved.Shape.Type != domain.KindPolygon {
		t.Fatalf("unexpected saved boundary %+v", saved)
	}
	snap := s.Snapshot()
	if snap.Layout.BoundaryID != ov.ID {
		t.Errorf("expected boundary %s, got %s", ov.ID, snap.Layout.BoundaryID)
	}
	if b := snap.Drawing.Overlays[0]; b.Editable || b.Clickable {
		t.Errorf("expected boundary locked, got editable=%v clickable=%v", b.Editable, b.Clickable)
	}
	if err := s.SelectOverlay(ov.ID); err == nil {
		t.Error("expected saved boundary to refuse selection")
	}

	if err := s.EditBoundary(); err != nil {
		t.Fatalf("edit boundary: %v", err)
	}
	if s.Snapshot().Drawing.SelectedID != ov.ID {
		t.Error("expected boundary selected for editing")
	}
}

func TestSaveBoundary_ReplacingReleasesPrevious(t *testing.T) {
	s := focusSession(usecases.MapServices{Layouts: &mockLayoutRepo{}})
	old := draw(t, s, parcel)
	if alert := s.SaveBoundary(context.Background()); alert != nil {
		t.Fatalf("first save: %+v", alert)
	}
	next := draw(t, s, domain.Polygon{Path: []domain.LatLng{
		{Lat: 18.500, Lng: 73.830}, {Lat: 18.540, Lng: 73.830},
		{Lat: 18.540, Lng: 73.870}, {Lat: 18.500, Lng: 73.870},
	}})
	if alert := s.SaveBoundary(context.Background()); alert != nil {
		t.Fatalf("second save: %+v", alert)
	}

	snap := s.Snapshot()
	if snap.Layout.BoundaryID != next.ID {
		t.Fatalf("expected boundary %s, got %s", next.ID, snap.Layout.BoundaryID)
	}
	for _, ov := range snap.Drawing.Overlays {
		if want := ov.ID != next.ID; ov.Clickable != want {
			t.Errorf("overlay %s: expected clickable=%v, got %v", ov.ID, want, ov.Clickable)
		}
	}

	if err := s.SelectOverlay(old.ID); err != nil {
		t.Fatalf("expected released boundary to be selectable: %v", err)
	}
	if !s.DeleteSelected() {
		t.Fatal("expected released boundary to be deletable")
	}
	if got := len(s.Snapshot().Drawing.Overlays); got != 1 {
		t.Errorf("expected only the new boundary left, got %d overlays", got)
	}
}

func TestSaveBoundary_Alerts(t *testing.T) {
	t.Run("nothing drawn", func(t *testing.T) {
		s := focusSession(usecases.MapServices{Layouts: &mockLayoutRepo{}})
		draw(t, s, allKinds()[0]) // circles cannot be boundaries
		alert := s.SaveBoundary(context.Background())
		if alert == nil || alert.Code != usecases.AlertBoundaryMissing {
			t.Errorf("expected %s, got %+v", usecases.AlertBoundaryMissing, alert)
		}
	})
	t.Run("persist failure", func(t *testing.T) {
		repo := &mockLayoutRepo{saveBoundaryFn: func(ctx context.Context, b *domain.Boundary) error {
			return errors.New("db down")
		}}
		s := focusSession(usecases.MapServices{Layouts: repo})
		draw(t, s, parcel)
		alert := s.SaveBoundary(context.Background())
		if alert == nil || alert.Code != usecases.AlertBoundarySaveFailed {
			t.Errorf("expected %s, got %+v", usecases.AlertBoundarySaveFailed, alert)
		}
	})
	t.Run("no project", func(t *testing.T) {
		s := attachedSession(usecases.MapServices{Layouts: &mockLayoutRepo{}}, puneProjects())
		draw(t, s, parcel)
		alert := s.SaveBoundary(context.Background())
		if alert == nil || alert.Code != usecases.AlertProjectRequired {
			t.Errorf("expected %s, got %+v", usecases.AlertProjectRequired, alert)
		}
	})
}

func TestLockToBoundary_RestrictsCamera(t *testing.T) {
	s := lockedEditor(t, &mockLayoutRepo{})
	snap := s.Snapshot()
	if !snap.Layout.Locked || snap.Camera.Restriction == nil {
		t.Fatalf("expected locked camera, got %+v", snap.Camera)
	}
	if *snap.Camera.Restriction != parcel.Bounds() {
		t.Errorf("expected restriction %+v, got %+v", parcel.Bounds(), *snap.Camera.Restriction)
	}

	s.UnlockCanvas()
	snap = s.Snapshot()
	if snap.Layout.Locked || snap.Camera.Restriction != nil {
		t.Error("expected restriction lifted")
	}
}

func TestLockToBoundary_NeedsBoundary(t *testing.T) {
	s := focusSession(usecases.MapServices{})
	if err := s.LockToBoundary(); err == nil {
		t.Error("expected error without a boundary")
	}
}

func TestLockedDrawing_CreatesPlotsInsideBoundary(t *testing.T) {
	s := lockedEditor(t, &mockLayoutRepo{})

	first := draw(t, s, insidePlot)
	second := draw(t, s, domain.Circle{Center: domain.LatLng{Lat: 18.52, Lng: 73.85}, Radius: 50})

	p1, err := s.GetPlot(first.ID)
	if err != nil {
		t.Fatalf("get plot: %v", err)
	}
	if p1.Number != 1 || p1.Status != domain.PlotAvailable || p1.Confirmed {
		t.Errorf("unexpected first plot %+v", p1)
	}
	p2, _ := s.GetPlot(second.ID)
	if p2.Number != 2 {
		t.Errorf("expected plot number 2, got %d", p2.Number)
	}

	if err := s.StartDrawing(domain.KindRectangle); err != nil {
		t.Fatalf("start: %v", err)
	}
	outside := domain.Rectangle{Box: domain.Bounds{South: 18.60, West: 73.90, North: 18.61, East: 73.91}}
	if _, err := s.CompleteOverlay(outside); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for plot outside boundary, got %v", err)
	}
	if s.Snapshot().Drawing.Armed != "" {
		t.Error("expected drawing disarmed after rejected plot")
	}
	if n := len(s.Snapshot().Layout.Plots); n != 2 {
		t.Errorf("expected 2 plots, got %d", n)
	}
}

func TestUpdatePlotField(t *testing.T) {
	s := lockedEditor(t, &mockLayoutRepo{})
	ov := draw(t, s, insidePlot)

	if err := s.UpdatePlotField(ov.ID, domain.PlotFieldStatus, "Booked"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := s.UpdatePlotField(ov.ID, domain.PlotFieldFacing, "north-east"); err != nil {
		t.Fatalf("update facing: %v", err)
	}
	if err := s.UpdatePlotField(ov.ID, domain.PlotFieldNumber, "-3"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative number, got %v", err)
	}

	p, _ := s.GetPlot(ov.ID)
	if p.Status != domain.PlotBooked || p.Facing != "north-east" || p.Number != 1 {
		t.Errorf("unexpected plot %+v", p)
	}

	if err := s.UpdatePlotField("missing", domain.PlotFieldStatus, "sold"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConfirmPlot(t *testing.T) {
	var persisted []domain.Plot
	repo := &mockLayoutRepo{savePlotsFn: func(ctx context.Context, projectID string, plots []domain.Plot) error {
		persisted = plots
		return nil
	}}
	s := lockedEditor(t, repo)
	ov := draw(t, s, insidePlot)

	alert, err := s.ConfirmPlot(context.Background(), ov.ID)
	if err != nil || alert != nil {
		t.Fatalf("confirm: alert=%+v err=%v", alert, err)
	}
	if len(persisted) != 1 || !persisted[0].Confirmed {
		t.Errorf("expected one confirmed plot persisted, got %+v", persisted)
	}
	if p, _ := s.GetPlot(ov.ID); !p.Confirmed {
		t.Error("expected plot confirmed")
	}
}

func TestConfirmPlot_FailureLeavesUnconfirmed(t *testing.T) {
	repo := &mockLayoutRepo{savePlotsFn: func(ctx context.Context, projectID string, plots []domain.Plot) error {
		return errors.New("db down")
	}}
	s := lockedEditor(t, repo)
	ov := draw(t, s, insidePlot)

	alert, err := s.ConfirmPlot(context.Background(), ov.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alert == nil || alert.Code != usecases.AlertPlotSaveFailed {
		t.Errorf("expected %s, got %+v", usecases.AlertPlotSaveFailed, alert)
	}
	if p, _ := s.GetPlot(ov.ID); p.Confirmed {
		t.Error("expected plot to stay unconfirmed")
	}
}

func TestUndoRedo_KeepsPlotRecord(t *testing.T) {
	s := lockedEditor(t, &mockLayoutRepo{})
	ov := draw(t, s, insidePlot)
	_ = s.UpdatePlotField(ov.ID, domain.PlotFieldFacing, "east")

	s.UndoLastDrawing()
	if _, err := s.GetPlot(ov.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected undone plot to be gone, got %v", err)
	}
	s.Redo()
	p, err := s.GetPlot(ov.ID)
	if err != nil || p.Facing != "east" {
		t.Errorf("expected plot restored with its facing, got %+v err=%v", p, err)
	}
}

func TestUndoBoundary_Unlocks(t *testing.T) {
	s := lockedEditor(t, &mockLayoutRepo{})
	s.UndoLastDrawing()
	snap := s.Snapshot()
	if snap.Layout.BoundaryID != "" || snap.Layout.Locked || snap.Camera.Restriction != nil {
		t.Errorf("expected boundary released, got %+v", snap.Layout)
	}
}

func landmarkPlaces() *mockPlaces {
	return &mockPlaces{textFn: func(ctx context.Context, q domain.TextQuery) ([]domain.Place, error) {
		switch q.Query {
		case "hospital":
			return []domain.Place{{PlaceID: "h-far", Name: "Far Hospital", Location: domain.LatLng{Lat: 18.56, Lng: 73.85}}}, nil
		case "school":
			return []domain.Place{
				{PlaceID: "s-near", Name: "Near School", Location: domain.LatLng{Lat: 18.521, Lng: 73.85}},
				{PlaceID: "h-far", Name: "Far Hospital", Location: domain.LatLng{Lat: 18.56, Lng: 73.85}},
			}, nil
		}
		return nil, domain.ErrZeroResults
	}}
}

func TestFetchLandmarks_MergesSortsAndKeepsSelection(t *testing.T) {
	var mu sync.Mutex
	var radius float64
	places := landmarkPlaces()
	inner := places.textFn
	places.textFn = func(ctx context.Context, q domain.TextQuery) ([]domain.Place, error) {
		mu.Lock()
		radius = q.Radius
		mu.Unlock()
		return inner(ctx, q)
	}
	s := focusSession(usecases.MapServices{Places: places, Layouts: &mockLayoutRepo{}})

	if alert := s.FetchLandmarks(context.Background()); alert != nil {
		t.Fatalf("unexpected alert: %+v", alert)
	}
	got := s.GetAvailableLandmarks()
	if len(got) != 2 || got[0].PlaceID != "s-near" || got[1].PlaceID != "h-far" {
		t.Fatalf("expected [s-near h-far], got %+v", got)
	}
	if got[1].Category != "hospital" {
		t.Errorf("expected first query to win the category, got %q", got[1].Category)
	}
	if radius != 5000 {
		t.Errorf("expected 5000 m radius, got %v", radius)
	}

	if err := s.ToggleLandmarkSelection("h-far"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	_ = s.FetchLandmarks(context.Background())
	sel := s.GetSelectedLandmarks()
	if len(sel) != 1 || sel[0].PlaceID != "h-far" {
		t.Errorf("expected selection kept across fetches, got %+v", sel)
	}
	if n := len(s.GetAvailableLandmarks()); n != 2 {
		t.Errorf("expected no duplicates after refetch, got %d", n)
	}

	if err := s.ToggleLandmarkSelection("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveLandmarks(t *testing.T) {
	var saved []domain.Landmark
	repo := &mockLayoutRepo{saveLandmarksFn: func(ctx context.Context, projectID string, l []domain.Landmark) error {
		saved = l
		return nil
	}}
	s := focusSession(usecases.MapServices{Places: landmarkPlaces(), Layouts: repo})
	_ = s.FetchLandmarks(context.Background())
	_ = s.ToggleLandmarkSelection("s-near")

	if alert := s.SaveLandmarks(context.Background()); alert != nil {
		t.Fatalf("unexpected alert: %+v", alert)
	}
	if len(saved) != 1 || saved[0].PlaceID != "s-near" {
		t.Errorf("expected only the selected landmark saved, got %+v", saved)
	}
}

func TestSaveLandmarks_FailureAlertsAndAllowsRetry(t *testing.T) {
	calls := 0
	repo := &mockLayoutRepo{saveLandmarksFn: func(ctx context.Context, projectID string, l []domain.Landmark) error {
		calls++
		if calls == 1 {
			return errors.New("timeout")
		}
		return nil
	}}
	s := focusSession(usecases.MapServices{Places: landmarkPlaces(), Layouts: repo})

	alert := s.SaveLandmarks(context.Background())
	if alert == nil || alert.Code != usecases.AlertLandmarkSaveFailed {
		t.Fatalf("expected %s, got %+v", usecases.AlertLandmarkSaveFailed, alert)
	}
	if calls != 1 {
		t.Errorf("expected no automatic retry, got %d calls", calls)
	}
	if alert := s.SaveLandmarks(context.Background()); alert != nil {
		t.Errorf("expected manual retry to succeed, got %+v", alert)
	}
}
