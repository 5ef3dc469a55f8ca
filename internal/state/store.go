// Package state holds the client-side view of the catalog: one collection
// per entity type plus the draft currently loaded into each editor. The
// store never talks to the network; callers apply a transformation only
// after the corresponding remote operation succeeded.
package state

import "github.com/garagectl/garagectl/pkg/catalog"

// Snapshot is a value copy of the full state tree. Mutating a snapshot never
// affects the store.
type Snapshot struct {
	Segments []catalog.Segment
	Brands   []catalog.Brand
	Vehicles []catalog.Vehicle

	SegmentDraft catalog.Segment
	BrandDraft   catalog.Brand
	VehicleDraft catalog.Vehicle
}

// Store defines the client-side catalog state operations.
type Store interface {
	// Snapshot returns a copy of the entire state tree.
	Snapshot() Snapshot

	// ReplaceAllSegments overwrites the segment collection with a freshly
	// fetched list. Stale entries are discarded, not merged.
	ReplaceAllSegments(segments []catalog.Segment)
	// AppendSegment adds a segment at the end of the collection.
	AppendSegment(seg catalog.Segment)
	// ReplaceSegment replaces the member with the same id in place.
	ReplaceSegment(seg catalog.Segment)
	// DeleteSegment removes the segment and, in the same transition, every
	// vehicle referencing it.
	DeleteSegment(id int)
	// SetSegmentDraft overwrites the segment draft wholesale.
	SetSegmentDraft(seg catalog.Segment)

	ReplaceAllBrands(brands []catalog.Brand)
	AppendBrand(b catalog.Brand)
	ReplaceBrand(b catalog.Brand)
	// DeleteBrand removes the brand and every vehicle referencing it.
	DeleteBrand(id int)
	SetBrandDraft(b catalog.Brand)

	ReplaceAllVehicles(vehicles []catalog.Vehicle)
	AppendVehicle(v catalog.Vehicle)
	ReplaceVehicle(v catalog.Vehicle)
	// DeleteVehicle removes one vehicle. It never touches segments or brands.
	DeleteVehicle(id int)
	SetVehicleDraft(v catalog.Vehicle)
}
