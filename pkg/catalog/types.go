// Package catalog defines the vehicle catalog entities and the pure rules
// that govern them: draft modes and the foreign-key cascade on delete.
package catalog

// SentinelID marks a record the server has not assigned an id to yet.
// A draft with this id creates on submit; any other id updates.
const SentinelID = 0

// Kind identifies one of the three catalog entity types.
type Kind string

const (
	KindSegment Kind = "segment"
	KindBrand   Kind = "brand"
	KindVehicle Kind = "vehicle"
)

// Segment is a market segment (SUV, EV, ...) vehicles are classified under.
type Segment struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"segment_name" yaml:"segmentName"`
}

// Brand is a vehicle manufacturer.
type Brand struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"brand_name" yaml:"brandName"`
}

// Vehicle references a Segment and a Brand by id. The name copies are
// denormalized display fields the backend fills in on read; the client never
// maintains them except by replacing the whole record.
type Vehicle struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"vehicle_name" yaml:"vehicleName"`
	ReleaseYear int     `json:"release_year" yaml:"releaseYear"`
	Price       float64 `json:"price" yaml:"price"`
	Segment     int     `json:"segment" yaml:"segment"`
	Brand       int     `json:"brand" yaml:"brand"`
	SegmentName string  `json:"segment_name,omitempty" yaml:"segmentName,omitempty"`
	BrandName   string  `json:"brand_name,omitempty" yaml:"brandName,omitempty"`
}

// Profile is the authenticated user as reported by the backend.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// EmptySegment returns the segment draft zero value.
func EmptySegment() Segment {
	return Segment{ID: SentinelID}
}

// EmptyBrand returns the brand draft zero value.
func EmptyBrand() Brand {
	return Brand{ID: SentinelID}
}

// EmptyVehicle returns the vehicle draft zero value. The release year
// defaults to 2020, matching the blank form the original client presents.
func EmptyVehicle() Vehicle {
	return Vehicle{ID: SentinelID, ReleaseYear: 2020}
}
