package usecases_test

import (
	"context"
	"sync"

	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/core/usecases"
)

// --- Mock ProjectRepository ---

type mockProjectRepo struct {
	listFn    func(ctx context.Context) ([]domain.Project, error)
	getByIDFn func(ctx context.Context, id string) (*domain.Project, error)
}

func (m *mockProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

// --- Mock CacheService ---

type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets++
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// --- Mock mapping services ---

type mockGeolocator struct {
	fn func(ctx context.Context) (domain.LatLng, error)
}

func (m *mockGeolocator) CurrentPosition(ctx context.Context) (domain.LatLng, error) {
	return m.fn(ctx)
}

type mockDirections struct {
	routeFn func(ctx context.Context, origin, dest domain.LatLng, mode domain.TravelMode) (*domain.Directions, error)
}

func (m *mockDirections) Route(ctx context.Context, origin, dest domain.LatLng, mode domain.TravelMode) (*domain.Directions, error) {
	return m.routeFn(ctx, origin, dest, mode)
}

type mockPlaces struct {
	autocompleteFn func(ctx context.Context, input string) ([]domain.PlacePrediction, error)
	detailsFn      func(ctx context.Context, placeID string) (*domain.Place, error)
	nearbyFn       func(ctx context.Context, q domain.NearbyQuery) ([]domain.Place, error)
	textFn         func(ctx context.Context, q domain.TextQuery) ([]domain.Place, error)
}

func (m *mockPlaces) Autocomplete(ctx context.Context, input string) ([]domain.PlacePrediction, error) {
	if m.autocompleteFn != nil {
		return m.autocompleteFn(ctx, input)
	}
	return nil, nil
}

func (m *mockPlaces) Details(ctx context.Context, placeID string) (*domain.Place, error) {
	if m.detailsFn != nil {
		return m.detailsFn(ctx, placeID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPlaces) NearbySearch(ctx context.Context, q domain.NearbyQuery) ([]domain.Place, error) {
	if m.nearbyFn != nil {
		return m.nearbyFn(ctx, q)
	}
	return nil, domain.ErrZeroResults
}

func (m *mockPlaces) TextSearch(ctx context.Context, q domain.TextQuery) ([]domain.Place, error) {
	if m.textFn != nil {
		return m.textFn(ctx, q)
	}
	return nil, domain.ErrZeroResults
}

type mockStreetView struct {
	nearestFn func(ctx context.Context, loc domain.LatLng, radius float64) (*domain.Panorama, error)
}

func (m *mockStreetView) Nearest(ctx context.Context, loc domain.LatLng, radius float64) (*domain.Panorama, error) {
	return m.nearestFn(ctx, loc, radius)
}

// --- Mock repositories ---

type mockDrawingRepo struct {
	mu    sync.Mutex
	saved map[string][]domain.OverlayRecord
}

func newMockDrawingRepo() *mockDrawingRepo {
	return &mockDrawingRepo{saved: make(map[string][]domain.OverlayRecord)}
}

func (m *mockDrawingRepo) Save(ctx context.Context, key string, records []domain.OverlayRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[key] = append([]domain.OverlayRecord(nil), records...)
	return nil
}

func (m *mockDrawingRepo) Load(ctx context.Context, key string) ([]domain.OverlayRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.saved[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

type mockLayoutRepo struct {
	saveBoundaryFn  func(ctx context.Context, b *domain.Boundary) error
	savePlotsFn     func(ctx context.Context, projectID string, plots []domain.Plot) error
	saveLandmarksFn func(ctx context.Context, projectID string, landmarks []domain.Landmark) error
}

func (m *mockLayoutRepo) SaveBoundary(ctx context.Context, b *domain.Boundary) error {
	if m.saveBoundaryFn != nil {
		return m.saveBoundaryFn(ctx, b)
	}
	return nil
}

func (m *mockLayoutRepo) SavePlots(ctx context.Context, projectID string, plots []domain.Plot) error {
	if m.savePlotsFn != nil {
		return m.savePlotsFn(ctx, projectID, plots)
	}
	return nil
}

func (m *mockLayoutRepo) SaveLandmarks(ctx context.Context, projectID string, landmarks []domain.Landmark) error {
	if m.saveLandmarksFn != nil {
		return m.saveLandmarksFn(ctx, projectID, landmarks)
	}
	return nil
}

// --- Recording DrawerListener ---

type recordingListener struct {
	mu     sync.Mutex
	drawer []domain.DrawerData
	clicks []string
}

func (r *recordingListener) DrawerChanged(ctx context.Context, sessionID string, data domain.DrawerData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawer = append(r.drawer, data)
}

func (r *recordingListener) MarkerClicked(ctx context.Context, sessionID, projectID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clicks = append(r.clicks, projectID)
}

func (r *recordingListener) drawerEvents() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drawer)
}

// --- Fixtures ---

func f64(v float64) *float64 { return &v }

func project(id string, lat, lng float64) domain.Project {
	return domain.Project{ID: id, Name: "Project " + id, Latitude: f64(lat), Longitude: f64(lng)}
}

func ungeocoded(id string) domain.Project {
	return domain.Project{ID: id, Name: "Project " + id}
}

// puneBox covers central Pune.
var puneBox = domain.Bounds{South: 18.40, West: 73.70, North: 18.65, East: 74.00}

func puneProjects() []domain.Project {
	return []domain.Project{
		project("a", 18.52, 73.85),
		ungeocoded("x"),
		project("b", 18.60, 73.75),
		ungeocoded("y"),
		project("c", 18.45, 73.95),
		project("far", 19.07, 72.87),
	}
}

// attachedSession returns a browse-mode session already showing puneBox.
func attachedSession(svc usecases.MapServices, projects []domain.Project) *usecases.MapSession {
	s := usecases.NewMapSession("s1", projects, nil, svc)
	b := puneBox
	s.Attach(context.Background(), domain.Viewport{Width: 1024, Height: 768}, &b)
	return s
}

// focusSession returns a focus-mode session on project a.
func focusSession(svc usecases.MapServices) *usecases.MapSession {
	projects := puneProjects()
	focused := projects[0]
	s := usecases.NewMapSession("s1", projects, &focused, svc)
	s.Attach(context.Background(), domain.Viewport{Width: 1024, Height: 768}, nil)
	return s
}

func ids(projects []domain.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}
