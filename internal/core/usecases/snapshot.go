package usecases

import "github.com/samirrijal/propertymap/internal/core/domain"

// NoResultsMessage is shown inline when a search matched no projects.
const NoResultsMessage = "No projects available for this location"

// OverlayView is an overlay as rendered: its flags plus its geometry.
type OverlayView struct {
	ID        string `json:"id"`
	Editable  bool   `json:"editable"`
	Clickable bool   `json:"clickable"`
	domain.OverlayRecord
}

// DrawingView is the drawing part of a session snapshot.
type DrawingView struct {
	Armed      domain.OverlayKind `json:"armed,omitempty"`
	SelectedID string             `json:"selected_id,omitempty"`
	Overlays   []OverlayView      `json:"overlays"`
	CanUndo    bool               `json:"can_undo"`
	CanRedo    bool               `json:"can_redo"`
}

// LayoutView is the layout editor part of a session snapshot.
type LayoutView struct {
	ProjectID  string            `json:"project_id,omitempty"`
	BoundaryID string            `json:"boundary_id,omitempty"`
	Locked     bool              `json:"locked"`
	Plots      []domain.Plot     `json:"plots"`
	Landmarks  []domain.Landmark `json:"landmarks"`
}

// Snapshot is a point-in-time copy of everything a client renders.
type Snapshot struct {
	ID               string             `json:"id"`
	FocusMode        bool               `json:"focus_mode"`
	FocusedProjectID string             `json:"focused_project_id,omitempty"`
	Drawer           domain.DrawerData  `json:"drawer"`
	FilterPanelOpen  bool               `json:"filter_panel_open"`
	NoResults        bool               `json:"no_results"`
	NoResultsMessage string             `json:"no_results_message,omitempty"`
	PendingPlace     *domain.Place      `json:"pending_place,omitempty"`
	MapReady         bool               `json:"map_ready"`
	Camera           *domain.Camera     `json:"camera,omitempty"`
	StreetView       *domain.StreetView `json:"street_view,omitempty"`
	ThreeD           bool               `json:"three_d"`
	Scene            *domain.Scene      `json:"scene,omitempty"`
	Drawing          DrawingView        `json:"drawing"`
	Layout           LayoutView         `json:"layout"`
}

// Snapshot copies the session state.
func (s *MapSession) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:        s.id,
		FocusMode: s.focusMode,
		Drawer: domain.DrawerData{
			Projects:   append([]domain.Project{}, s.visible...),
			SelectedID: s.selectedID,
			Open:       s.drawerOpen,
		},
		FilterPanelOpen: s.filterPanelOpen,
		NoResults:       s.noResults,
		ThreeD:          s.is3D,
		Scene:           s.scenes.snapshot(),
	}
	if s.focused != nil {
		snap.FocusedProjectID = s.focused.ID
	}
	if s.noResults {
		snap.NoResultsMessage = NoResultsMessage
	}
	if s.pendingPlace != nil {
		p := *s.pendingPlace
		snap.PendingPlace = &p
	}
	if s.canvas != nil {
		cam, sv := s.canvas.snapshot()
		snap.MapReady = true
		snap.Camera = &cam
		snap.StreetView = &sv
	}

	snap.Drawing = DrawingView{
		Armed:    s.drawing.Armed(),
		Overlays: []OverlayView{},
		CanUndo:  s.drawing.CanUndo(),
		CanRedo:  s.drawing.CanRedo(),
	}
	if sel := s.drawing.Selected(); sel != nil {
		snap.Drawing.SelectedID = sel.ID
	}
	for _, ov := range s.drawing.Overlays() {
		snap.Drawing.Overlays = append(snap.Drawing.Overlays, OverlayView{
			ID:            ov.ID,
			Editable:      ov.Editable,
			Clickable:     ov.Clickable,
			OverlayRecord: ov.Record(),
		})
	}

	snap.Layout = LayoutView{
		ProjectID: s.layout.projectID,
		Locked:    s.layout.locked,
		Plots:     s.livePlots(),
		Landmarks: append([]domain.Landmark{}, s.layout.landmarks...),
	}
	if s.layout.boundary != nil {
		snap.Layout.BoundaryID = s.layout.boundary.ID
	}
	return snap
}
