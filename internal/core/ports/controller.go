package ports

import (
	"context"

	"github.com/samirrijal/propertymap/internal/core/domain"
)

// MapController is the imperative handle a hosting page holds into a map.
// Fail-soft operations report user-facing problems as an Alert instead of
// an error; errors are reserved for invalid input.
type MapController interface {
	GetDirections(ctx context.Context) *domain.Alert
	ToggleStreetView(ctx context.Context) *domain.Alert
	SetMapView()
	SetSatelliteView()
	Set3DView()
	SetNeighborhoodView(ctx context.Context) *domain.Alert
	SetNeighborhoodFilter(ctx context.Context, category domain.Category) error
	ClearNeighborhood()

	LayoutEditor
}

// LayoutEditor is the layout-editor-only part of the handle.
type LayoutEditor interface {
	SaveBoundary(ctx context.Context) *domain.Alert
	EditBoundary() error
	LockToBoundary() error
	UnlockCanvas()
	UndoLastDrawing() bool
	Redo() bool
	GetPlot(overlayID string) (domain.Plot, error)
	UpdatePlotField(overlayID string, field domain.PlotField, value string) error
	ConfirmPlot(ctx context.Context, overlayID string) (*domain.Alert, error)
	FetchLandmarks(ctx context.Context) *domain.Alert
	GetAvailableLandmarks() []domain.Landmark
	ToggleLandmarkSelection(placeID string) error
	GetSelectedLandmarks() []domain.Landmark
	SaveLandmarks(ctx context.Context) *domain.Alert
}
