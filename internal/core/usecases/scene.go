package usecases

import (
	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/pkg/metrics"
)

// sceneSlot holds the single live navigation/neighborhood scene. begin
// detaches whatever is live and opens a new generation; results computed
// for an older generation are discarded on arrival.
type sceneSlot struct {
	gen     uint64
	kind    domain.SceneKind
	current *domain.Scene
}

func (s *sceneSlot) begin(kind domain.SceneKind) uint64 {
	s.gen++
	s.kind = kind
	s.current = nil
	metrics.ScenesStarted.WithLabelValues(string(kind)).Inc()
	return s.gen
}

// reset drops the live scene without starting another.
func (s *sceneSlot) reset() {
	s.gen++
	s.kind = ""
	s.current = nil
}

// live reports whether gen is still the canonical scene. kind labels the
// discarded result when it is not.
func (s *sceneSlot) live(gen uint64, kind domain.SceneKind) bool {
	if gen == s.gen {
		return true
	}
	metrics.StaleSceneResults.WithLabelValues(string(kind)).Inc()
	return false
}

func (s *sceneSlot) commit(scene *domain.Scene) {
	s.current = scene
}

func (s *sceneSlot) snapshot() *domain.Scene {
	if s.current == nil {
		return nil
	}
	sc := *s.current
	if sc.Origin != nil {
		o := *sc.Origin
		sc.Origin = &o
	}
	if sc.Destination != nil {
		d := *sc.Destination
		sc.Destination = &d
	}
	if sc.Route != nil {
		r := *sc.Route
		r.Path = append([]domain.LatLng(nil), r.Path...)
		sc.Route = &r
	}
	sc.Places = append([]domain.Marker(nil), sc.Places...)
	return &sc
}
