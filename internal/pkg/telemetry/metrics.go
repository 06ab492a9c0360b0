package telemetry

// Span names for calls out to the mapping service.
const (
	SpanDirections   = "maps.directions"
	SpanNearby       = "maps.places.nearby"
	SpanTextSearch   = "maps.places.text"
	SpanAutocomplete = "maps.places.autocomplete"
	SpanDetails      = "maps.places.details"
	SpanStreetView   = "maps.streetview.metadata"
)
