package catalog

// CascadeOnDelete returns the vehicles that survive the deletion of a parent
// segment or brand: every vehicle whose foreign key matches the deleted id is
// dropped, order otherwise preserved. Deleting a vehicle cascades nothing, so
// KindVehicle (or any unknown kind) returns the input unchanged apart from
// being copied.
//
// Cascades for distinct parent ids filter on disjoint values and therefore
// commute: applying them in any order yields the same collection.
func CascadeOnDelete(kind Kind, id int, vehicles []Vehicle) []Vehicle {
	out := make([]Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if kind == KindSegment && v.Segment == id {
			continue
		}
		if kind == KindBrand && v.Brand == id {
			continue
		}
		out = append(out, v)
	}
	return out
}
