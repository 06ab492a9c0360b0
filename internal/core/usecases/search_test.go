package usecases_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/usecases"
)

func TestApplySearch_CityBoundsShowsGeocodedInOrder(t *testing.T) {
	l := &recordingListener{}
	s := usecases.NewMapSession("s1", puneProjects(), nil, usecases.MapServices{Listener: l})
	s.Attach(context.Background(), domain.Viewport{Width: 1024, Height: 768}, &domain.Bounds{South: 40, West: -4, North: 41, East: -3})

	box := puneBox
	s.SetPendingPlace(&domain.Place{PlaceID: "pune", Name: "Pune", Location: box.Center(), Viewport: &box})
	if !s.ApplySearch(context.Background()) {
		t.Fatal("expected search to apply")
	}

	snap := s.Snapshot()
	if got := ids(snap.Drawer.Projects); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("expected [a b c], got %v", got)
	}
	if !snap.Drawer.Open {
		t.Error("expected drawer open")
	}
	if snap.FilterPanelOpen || snap.NoResults {
		t.Errorf("expected panel closed without no-results, got panel=%v noResults=%v", snap.FilterPanelOpen, snap.NoResults)
	}
	if snap.PendingPlace != nil {
		t.Error("expected pending place consumed")
	}
}

func TestApplySearch_ZeroMatchesKeepsPanelOpen(t *testing.T) {
	s := attachedSession(usecases.MapServices{}, puneProjects())
	s.SetDrawerOpen(context.Background(), true)

	s.SetPendingPlace(&domain.Place{PlaceID: "madrid", Location: domain.LatLng{Lat: 40.4168, Lng: -3.7038}})
	s.ApplySearch(context.Background())

	snap := s.Snapshot()
	if len(snap.Drawer.Projects) != 0 {
		t.Errorf("expected no visible projects, got %v", ids(snap.Drawer.Projects))
	}
	if !snap.FilterPanelOpen || !snap.NoResults {
		t.Errorf("expected panel open with no-results, got panel=%v noResults=%v", snap.FilterPanelOpen, snap.NoResults)
	}
	if snap.NoResultsMessage != usecases.NoResultsMessage {
		t.Errorf("expected no-results message, got %q", snap.NoResultsMessage)
	}
	if snap.Drawer.Open {
		t.Error("expected drawer closed")
	}
	if snap.Camera.Zoom != 14 {
		t.Errorf("expected point search zoom 14, got %d", snap.Camera.Zoom)
	}
}

func TestApplySearch_LeavesFocusMode(t *testing.T) {
	s := focusSession(usecases.MapServices{})
	if err := s.SelectProject(context.Background(), "a"); err != nil {
		t.Fatalf("select: %v", err)
	}

	box := puneBox
	s.SetPendingPlace(&domain.Place{PlaceID: "pune", Location: box.Center(), Viewport: &box})
	s.ApplySearch(context.Background())

	snap := s.Snapshot()
	if snap.FocusMode {
		t.Error("expected focus mode off after search")
	}
	if snap.Drawer.SelectedID != "" {
		t.Errorf("expected selection reset, got %q", snap.Drawer.SelectedID)
	}
	if got := ids(snap.Drawer.Projects); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("expected [a b c], got %v", got)
	}
}

func TestApplySearch_NoPendingPlaceIsNoop(t *testing.T) {
	s := attachedSession(usecases.MapServices{}, puneProjects())
	before := s.Snapshot()
	if s.ApplySearch(context.Background()) {
		t.Fatal("expected no-op")
	}
	after := s.Snapshot()
	if !reflect.DeepEqual(before.Camera, after.Camera) {
		t.Error("camera moved without a pending place")
	}
}

func TestSelectPlace_DoesNotMoveCamera(t *testing.T) {
	places := &mockPlaces{
		detailsFn: func(ctx context.Context, id string) (*domain.Place, error) {
			return &domain.Place{PlaceID: id, Name: "Madrid", Location: domain.LatLng{Lat: 40.4, Lng: -3.7}}, nil
		},
	}
	s := attachedSession(usecases.MapServices{Places: places}, puneProjects())
	before := s.Snapshot()

	if _, err := s.SelectPlace(context.Background(), "madrid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := s.Snapshot()
	if !reflect.DeepEqual(before.Camera, after.Camera) || !reflect.DeepEqual(ids(before.Drawer.Projects), ids(after.Drawer.Projects)) {
		t.Error("selecting a place must not change the camera or visible set")
	}
	if after.PendingPlace == nil || after.PendingPlace.PlaceID != "madrid" {
		t.Errorf("expected pending place madrid, got %+v", after.PendingPlace)
	}
}

func TestSelectPlace_PropagatesLookupFailure(t *testing.T) {
	places := &mockPlaces{
		detailsFn: func(ctx context.Context, id string) (*domain.Place, error) {
			return nil, domain.ErrNotFound
		},
	}
	s := attachedSession(usecases.MapServices{Places: places}, puneProjects())
	_, err := s.SelectPlace(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAutocomplete_RejectsEmptyInput(t *testing.T) {
	s := attachedSession(usecases.MapServices{Places: &mockPlaces{}}, puneProjects())
	if _, err := s.Autocomplete(context.Background(), "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
