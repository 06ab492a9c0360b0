package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PlotStatus is the sales state of a subplot.
type PlotStatus string

const (
	PlotAvailable PlotStatus = "available"
	PlotBooked    PlotStatus = "booked"
	PlotSold      PlotStatus = "sold"
	PlotBlocked   PlotStatus = "blocked"
)

var facings = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"north-east": true, "north-west": true, "south-east": true, "south-west": true,
}

// Plot is a subplot drawn inside a project boundary.
type Plot struct {
	OverlayID string        `json:"overlay_id"`
	Number    int           `json:"number"`
	Status    PlotStatus    `json:"status"`
	Facing    string        `json:"facing,omitempty"`
	Confirmed bool          `json:"confirmed"`
	Shape     OverlayRecord `json:"shape"`
}

// PlotField names an editable plot attribute.
type PlotField string

const (
	PlotFieldNumber PlotField = "number"
	PlotFieldStatus PlotField = "status"
	PlotFieldFacing PlotField = "facing"
)

// Set assigns value to field after validating it.
func (p *Plot) Set(field PlotField, value string) error {
	value = strings.TrimSpace(value)
	switch field {
	case PlotFieldNumber:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: plot number must be a positive integer", ErrInvalidInput)
		}
		p.Number = n
	case PlotFieldStatus:
		switch s := PlotStatus(strings.ToLower(value)); s {
		case PlotAvailable, PlotBooked, PlotSold, PlotBlocked:
			p.Status = s
		default:
			return fmt.Errorf("%w: unknown plot status %q", ErrInvalidInput, value)
		}
	case PlotFieldFacing:
		f := strings.ToLower(value)
		if !facings[f] {
			return fmt.Errorf("%w: unknown facing %q", ErrInvalidInput, value)
		}
		p.Facing = f
	default:
		return fmt.Errorf("%w: unknown plot field %q", ErrInvalidInput, field)
	}
	return nil
}

// Boundary is the saved outline of a project's land parcel.
type Boundary struct {
	ProjectID string        `json:"project_id"`
	OverlayID string        `json:"overlay_id"`
	Shape     OverlayRecord `json:"shape"`
}

// Landmark is a point of interest that can be pinned to a project.
type Landmark struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Location LatLng `json:"location"`
	Address  string `json:"address,omitempty"`
	Selected bool   `json:"selected"`
}

// LandmarkQueries are the text searches behind landmark discovery.
var LandmarkQueries = []string{"hospital", "school", "metro station", "shopping mall", "park", "bank"}

// LandmarkRadius is the text-search radius for landmarks in meters.
const LandmarkRadius = 5000.0
