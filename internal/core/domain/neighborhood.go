package domain

// Category is a neighborhood filter key.
type Category string

const (
	CategoryNone       Category = ""
	CategoryHospital   Category = "hospital"
	CategoryMarket     Category = "market"
	CategoryRestaurant Category = "restaurant"
	CategoryMetro      Category = "metro"
	CategorySchool     Category = "school"
)

// NeighborhoodRadius is the nearby-search radius around the focal project.
const NeighborhoodRadius = 2500.0

type categoryInfo struct {
	placeType string
	icon      string
}

var categories = map[Category]categoryInfo{
	CategoryHospital:   {placeType: "hospital", icon: "icons/hospital.png"},
	CategoryMarket:     {placeType: "supermarket", icon: "icons/market.png"},
	CategoryRestaurant: {placeType: "restaurant", icon: "icons/restaurant.png"},
	CategoryMetro:      {placeType: "subway_station", icon: "icons/metro.png"},
	CategorySchool:     {placeType: "school", icon: "icons/school.png"},
}

// PlaceType returns the mapping-service place type for c.
func (c Category) PlaceType() (string, bool) {
	info, ok := categories[c]
	return info.placeType, ok
}

// Icon returns the marker glyph for c.
func (c Category) Icon() string {
	return categories[c].icon
}

// ViewCategory is one of the place types searched by the combined
// neighborhood view.
type ViewCategory struct {
	PlaceType string
	Icon      string
}

// NeighborhoodViewCategories are searched, in order, by the combined view.
var NeighborhoodViewCategories = []ViewCategory{
	{PlaceType: "school", Icon: "icons/school.png"},
	{PlaceType: "hospital", Icon: "icons/hospital.png"},
	{PlaceType: "shopping_mall", Icon: "icons/mall.png"},
	{PlaceType: "restaurant", Icon: "icons/restaurant.png"},
	{PlaceType: "park", Icon: "icons/park.png"},
	{PlaceType: "university", Icon: "icons/university.png"},
}
