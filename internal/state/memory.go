package state

import (
	"sync"

	"github.com/garagectl/garagectl/pkg/catalog"
)

// MemoryStore is a mutex-guarded in-memory implementation of Store. Every
// mutation is a full swap of the affected collections under one lock, so a
// cascade delete is a single observable transition: no reader ever sees the
// parent gone while a dependent vehicle still references it.
type MemoryStore struct {
	mu sync.RWMutex

	segments []catalog.Segment
	brands   []catalog.Brand
	vehicles []catalog.Vehicle

	segmentDraft catalog.Segment
	brandDraft   catalog.Brand
	vehicleDraft catalog.Vehicle
}

// NewMemoryStore creates a store in the unloaded placeholder state: each
// collection holds a single sentinel record until the first successful list
// fetch replaces it.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		segments:     []catalog.Segment{catalog.EmptySegment()},
		brands:       []catalog.Brand{catalog.EmptyBrand()},
		vehicles:     []catalog.Vehicle{catalog.EmptyVehicle()},
		segmentDraft: catalog.EmptySegment(),
		brandDraft:   catalog.EmptyBrand(),
		vehicleDraft: catalog.EmptyVehicle(),
	}
}

// Snapshot returns a copy of the entire state tree.
func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Segments:     make([]catalog.Segment, len(s.segments)),
		Brands:       make([]catalog.Brand, len(s.brands)),
		Vehicles:     make([]catalog.Vehicle, len(s.vehicles)),
		SegmentDraft: s.segmentDraft,
		BrandDraft:   s.brandDraft,
		VehicleDraft: s.vehicleDraft,
	}
	copy(snap.Segments, s.segments)
	copy(snap.Brands, s.brands)
	copy(snap.Vehicles, s.vehicles)
	return snap
}

// ReplaceAllSegments overwrites the segment collection wholesale.
func (s *MemoryStore) ReplaceAllSegments(segments []catalog.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = append([]catalog.Segment(nil), segments...)
}

// AppendSegment adds a segment at the end of the collection. Ids are
// server-assigned, so no de-duplication is attempted.
func (s *MemoryStore) AppendSegment(seg catalog.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = append(s.segments, seg)
}

// ReplaceSegment replaces the member with the same id, order preserved.
func (s *MemoryStore) ReplaceSegment(seg catalog.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Segment, len(s.segments))
	for i, cur := range s.segments {
		if cur.ID == seg.ID {
			out[i] = seg
		} else {
			out[i] = cur
		}
	}
	s.segments = out
}

// DeleteSegment removes the segment and every vehicle referencing it in one
// transition.
func (s *MemoryStore) DeleteSegment(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Segment, 0, len(s.segments))
	for _, cur := range s.segments {
		if cur.ID != id {
			out = append(out, cur)
		}
	}
	s.segments = out
	s.vehicles = catalog.CascadeOnDelete(catalog.KindSegment, id, s.vehicles)
}

// SetSegmentDraft overwrites the segment draft wholesale.
func (s *MemoryStore) SetSegmentDraft(seg catalog.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.segmentDraft = seg
}

// ReplaceAllBrands overwrites the brand collection wholesale.
func (s *MemoryStore) ReplaceAllBrands(brands []catalog.Brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = append([]catalog.Brand(nil), brands...)
}

// AppendBrand adds a brand at the end of the collection.
func (s *MemoryStore) AppendBrand(b catalog.Brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = append(s.brands, b)
}

// ReplaceBrand replaces the member with the same id, order preserved.
func (s *MemoryStore) ReplaceBrand(b catalog.Brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Brand, len(s.brands))
	for i, cur := range s.brands {
		if cur.ID == b.ID {
			out[i] = b
		} else {
			out[i] = cur
		}
	}
	s.brands = out
}

// DeleteBrand removes the brand and every vehicle referencing it in one
// transition.
func (s *MemoryStore) DeleteBrand(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Brand, 0, len(s.brands))
	for _, cur := range s.brands {
		if cur.ID != id {
			out = append(out, cur)
		}
	}
	s.brands = out
	s.vehicles = catalog.CascadeOnDelete(catalog.KindBrand, id, s.vehicles)
}

// SetBrandDraft overwrites the brand draft wholesale.
func (s *MemoryStore) SetBrandDraft(b catalog.Brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brandDraft = b
}

// ReplaceAllVehicles overwrites the vehicle collection wholesale.
func (s *MemoryStore) ReplaceAllVehicles(vehicles []catalog.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = append([]catalog.Vehicle(nil), vehicles...)
}

// AppendVehicle adds a vehicle at the end of the collection.
func (s *MemoryStore) AppendVehicle(v catalog.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = append(s.vehicles, v)
}

// ReplaceVehicle replaces the member with the same id, order preserved.
func (s *MemoryStore) ReplaceVehicle(v catalog.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Vehicle, len(s.vehicles))
	for i, cur := range s.vehicles {
		if cur.ID == v.ID {
			out[i] = v
		} else {
			out[i] = cur
		}
	}
	s.vehicles = out
}

// DeleteVehicle removes one vehicle. Filtering by inequality makes it a
// no-op when the id is absent.
func (s *MemoryStore) DeleteVehicle(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Vehicle, 0, len(s.vehicles))
	for _, cur := range s.vehicles {
		if cur.ID != id {
			out = append(out, cur)
		}
	}
	s.vehicles = out
}

// SetVehicleDraft overwrites the vehicle draft wholesale.
func (s *MemoryStore) SetVehicleDraft(v catalog.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicleDraft = v
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
