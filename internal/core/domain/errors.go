package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrMapNotReady            = errors.New("map not ready")
	ErrGeolocationDenied      = errors.New("geolocation denied")
	ErrGeolocationUnsupported = errors.New("geolocation unsupported")
	ErrZeroResults            = errors.New("zero results")
	ErrNoPanorama             = errors.New("no street view panorama")
)

// Alert is a user-facing notice raised by a fail-soft operation.
type Alert struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
