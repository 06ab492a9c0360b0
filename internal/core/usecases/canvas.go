package usecases

import (
	"github.com/samirrijal/propertymap/internal/core/domain"
	"github.com/samirrijal/propertymap/internal/pkg/geospatial"
)

const (
	defaultViewportWidth  = 1024
	defaultViewportHeight = 768
	focusZoom             = 16
	searchPointZoom       = 14
)

// Canvas is the live map a session draws on: the camera and the street
// view panorama. A session without a canvas has no map yet.
type Canvas struct {
	viewport   domain.Viewport
	camera     domain.Camera
	streetView domain.StreetView
}

func newCanvas(vp domain.Viewport) *Canvas {
	if vp.Width <= 0 || vp.Height <= 0 {
		vp = domain.Viewport{Width: defaultViewportWidth, Height: defaultViewportHeight}
	}
	return &Canvas{
		viewport: vp,
		camera:   domain.Camera{Zoom: 2, MapType: domain.MapTypeRoadmap},
	}
}

// fitBounds moves the camera so b fills the viewport.
func (c *Canvas) fitBounds(b domain.Bounds) {
	c.camera.Zoom = geospatial.ZoomForBounds(b.South, b.West, b.North, b.East, c.viewport.Width, c.viewport.Height)
	c.camera.Center = b.Center()
	c.camera.Bounds = &b
}

// centerOn moves the camera to p at zoom and derives the visible bounds.
func (c *Canvas) centerOn(p domain.LatLng, zoom int) {
	c.camera.Center = p
	c.camera.Zoom = zoom
	s, w, n, e := geospatial.ViewportBounds(p.Lat, p.Lng, zoom, c.viewport.Width, c.viewport.Height)
	c.camera.Bounds = &domain.Bounds{South: s, West: w, North: n, East: e}
}

// settle records bounds reported by the client after a pan or zoom.
func (c *Canvas) settle(b domain.Bounds) {
	c.camera.Bounds = &b
	c.camera.Center = b.Center()
}

func (c *Canvas) snapshot() (domain.Camera, domain.StreetView) {
	cam := c.camera
	if cam.Bounds != nil {
		b := *cam.Bounds
		cam.Bounds = &b
	}
	if cam.Restriction != nil {
		r := *cam.Restriction
		cam.Restriction = &r
	}
	return cam, c.streetView
}
