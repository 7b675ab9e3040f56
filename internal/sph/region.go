package sph

// Region is an axis-aligned rectangle. Regions describe lattice fill areas,
// emitter and disposer zones, and the overall domain bounds handed to the
// neighbor search.
type Region struct {
	Min, Max Vec2
}

// Contains reports whether p lies inside the region. The lower bound is
// inclusive, the upper bound exclusive, so adjacent regions tile without
// double-counting particles on shared edges.
func (r Region) Contains(p Vec2) bool {
	return p[0] >= r.Min[0] && p[0] < r.Max[0] &&
		p[1] >= r.Min[1] && p[1] < r.Max[1]
}

// Size returns the edge lengths of the region.
func (r Region) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// Grown returns the region expanded by pad on every side. Domain bounds for
// the neighbor search are usually the fluid extent grown by one kernel cutoff.
func (r Region) Grown(pad float64) Region {
	return Region{
		Min: Vec2{r.Min[0] - pad, r.Min[1] - pad},
		Max: Vec2{r.Max[0] + pad, r.Max[1] + pad},
	}
}
