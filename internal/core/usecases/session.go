package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/ports"
)

// MapServices are the collaborators a map session calls out to. Any of
// them may be nil; the matching features then do nothing.
type MapServices struct {
	Geolocator ports.Geolocator
	Directions ports.DirectionsService
	Places     ports.PlacesService
	StreetView ports.StreetViewService
	Drawings   ports.DrawingRepository
	Layouts    ports.LayoutRepository
	Listener   ports.DrawerListener
}

var _ ports.MapController = (*MapSession)(nil)

// MapSession is the state behind one interactive map: the project set, the
// canvas, drawn overlays, the live navigation/neighborhood scene and the
// layout editor. All methods are safe for concurrent use. Calls to the
// mapping service run without holding the lock; their results are applied
// only if the scene that requested them is still the live one.
type MapSession struct {
	mu  sync.Mutex
	id  string
	svc MapServices
	log *slog.Logger

	projects  []domain.Project
	focused   *domain.Project
	focusMode bool

	visible         []domain.Project
	selectedID      string
	drawerOpen      bool
	filterPanelOpen bool
	noResults       bool
	lastDrawer      *domain.DrawerData

	pendingPlace *domain.Place

	canvas  *Canvas
	drawing *DrawingSession
	scenes  sceneSlot
	is3D    bool
	layout  layoutState

	touched time.Time
}

// NewMapSession builds a session over projects. A non-nil focused project
// puts the session in focus mode.
func NewMapSession(id string, projects []domain.Project, focused *domain.Project, svc MapServices) *MapSession {
	s := &MapSession{
		id:       id,
		svc:      svc,
		log:      slog.Default().With("session", id),
		projects: projects,
		drawing:  NewDrawingSession(),
		layout:   newLayoutState(),
		touched:  time.Now(),
	}
	if focused != nil {
		f := *focused
		s.focused = &f
		s.focusMode = true
		s.visible = []domain.Project{f}
		s.layout.projectID = f.ID
	} else {
		s.visible = Geocoded(projects)
	}
	return s
}

// ID returns the session id.
func (s *MapSession) ID() string {
	return s.id
}

// Attach binds the session to a rendered map of the given size. bounds is
// the region the client already shows, if any. Attaching again only
// updates the viewport size.
func (s *MapSession) Attach(ctx context.Context, vp domain.Viewport, bounds *domain.Bounds) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.canvas != nil {
		if vp.Width > 0 && vp.Height > 0 {
			s.canvas.viewport = vp
		}
		return
	}

	s.canvas = newCanvas(vp)
	s.drawing.attach(s.canvas)

	switch {
	case bounds != nil:
		s.canvas.settle(*bounds)
	case s.focusMode:
		if loc, ok := s.focused.Location(); ok {
			s.canvas.centerOn(loc, focusZoom)
		}
	default:
		if geo := Geocoded(s.projects); len(geo) > 0 {
			pts := make([]domain.LatLng, 0, len(geo))
			for _, p := range geo {
				loc, _ := p.Location()
				pts = append(pts, loc)
			}
			s.canvas.fitBounds(domain.BoundsOf(pts...))
		}
	}

	if b := s.canvas.camera.Bounds; b != nil {
		s.refreshVisible(*b)
	}
	s.publishDrawer(ctx)
}

// Idle applies the bounds the client reports once the camera settles after
// a pan or zoom, and recomputes the visible projects. It reports whether
// the visible set changed.
func (s *MapSession) Idle(ctx context.Context, bounds domain.Bounds) (bool, error) {
	if !bounds.Valid() {
		return false, fmt.Errorf("%w: bounds out of range", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.canvas != nil {
		s.canvas.settle(bounds)
	}
	changed := s.refreshVisible(bounds)
	s.publishDrawer(ctx)
	return changed, nil
}

// SelectProject handles a project marker or card activation. In focus mode
// it fires the marker-click callback; otherwise it selects the project and
// opens the drawer.
func (s *MapSession) SelectProject(ctx context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.focusMode {
		if s.focused.ID != projectID {
			return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		if s.svc.Listener != nil {
			s.svc.Listener.MarkerClicked(ctx, s.id, s.focused.ID)
		}
		return nil
	}

	// projectID may alias a request buffer; keep the project's own id.
	p, ok := findProject(s.visible, projectID)
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	s.selectedID = p.ID
	s.drawerOpen = true
	s.publishDrawer(ctx)
	return nil
}

// SetDrawerOpen opens or closes the project drawer.
func (s *MapSession) SetDrawerOpen(ctx context.Context, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = open
	s.publishDrawer(ctx)
}

// Visible returns the current visible project set.
func (s *MapSession) Visible() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Project(nil), s.visible...)
}

// refreshVisible recomputes the visible set for bounds. The stored slice
// is only replaced when the id sequence differs.
func (s *MapSession) refreshVisible(bounds domain.Bounds) bool {
	var next []domain.Project
	if s.focusMode {
		next = []domain.Project{*s.focused}
	} else {
		next = FilterVisible(s.projects, bounds)
	}
	if sameIDs(s.visible, next) {
		return false
	}
	s.visible = next
	if s.selectedID != "" && !containsID(next, s.selectedID) {
		s.selectedID = ""
	}
	return true
}

// publishDrawer fires the drawer callback when the visible ids, selection
// or open state differ from what was last sent.
func (s *MapSession) publishDrawer(ctx context.Context) {
	data := domain.DrawerData{
		Projects:   append([]domain.Project(nil), s.visible...),
		SelectedID: s.selectedID,
		Open:       s.drawerOpen,
	}
	if last := s.lastDrawer; last != nil &&
		last.SelectedID == data.SelectedID && last.Open == data.Open && sameIDs(last.Projects, data.Projects) {
		return
	}
	s.lastDrawer = &data
	if s.svc.Listener != nil {
		s.svc.Listener.DrawerChanged(ctx, s.id, data)
	}
}

// target is the coordinate navigation, neighborhood, street view and
// landmark lookups are centered on: the focused project, else the selected
// project, else the camera center.
func (s *MapSession) target() (domain.LatLng, string, bool) {
	if s.focusMode {
		loc, ok := s.focused.Location()
		return loc, s.focused.Name, ok
	}
	if s.selectedID != "" {
		for _, p := range s.visible {
			if p.ID == s.selectedID {
				loc, ok := p.Location()
				return loc, p.Name, ok
			}
		}
	}
	if s.canvas != nil {
		return s.canvas.camera.Center, "", true
	}
	return domain.LatLng{}, "", false
}

func (s *MapSession) touch() {
	s.mu.Lock()
	s.touched = time.Now()
	s.mu.Unlock()
}

func (s *MapSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func containsID(projects []domain.Project, id string) bool {
	_, ok := findProject(projects, id)
	return ok
}

func findProject(projects []domain.Project, id string) (domain.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}
