// Package topology builds and maintains neighbor configurations between
// particle bodies. A relation owns the cell lists and per-particle neighbor
// lists for one body (inner) or one body against others (contact); dynamics
// kernels iterate the lists but never mutate them.
//
// UpdateConfiguration must be called after any particle movement or
// structural change and must not overlap an interaction pass.
package topology

import (
	"math"

	"github.com/san-kum/sphlab/internal/kernel"
	"github.com/san-kum/sphlab/internal/sph"
)

// Neighbor is one precomputed pair entry: the neighbor index plus the kernel
// quantities every interaction needs. E points from the neighbor toward the
// owning particle.
type Neighbor struct {
	J  int
	R  float64
	W  float64
	DW float64
	E  sph.Vec2
}

// Neighborhood is the neighbor list of a single particle.
type Neighborhood []Neighbor

// Relation is the common contract for topology updates. Drivers hold a slice
// of these and refresh them between interaction passes.
type Relation interface {
	// Body is the owning body whose particles index the neighbor lists.
	Body() *sph.Body

	// UpdateConfiguration rebuilds cell lists and neighbor lists from
	// current positions.
	UpdateConfiguration()
}

// The neighbor-list build is chunked per particle; buckets are read-only
// while workers fill disjoint neighborhoods.
const buildMinChunk = 256

// InnerRelation is the topology of a body with itself.
type InnerRelation struct {
	body  *sph.Body
	dom   Domain
	cells *CellList
	hoods []Neighborhood
}

func NewInner(body *sph.Body, dom Domain) *InnerRelation {
	return &InnerRelation{
		body:  body,
		dom:   dom,
		cells: NewCellList(dom, body.Kernel().Cutoff()),
	}
}

func (r *InnerRelation) Body() *sph.Body { return r.body }

// Domain exposes the search domain, mainly so drivers can reuse its
// periodic wrapping.
func (r *InnerRelation) Domain() Domain { return r.dom }

// Hood returns particle i's neighbor list. Valid until the next
// UpdateConfiguration.
func (r *InnerRelation) Hood(i int) Neighborhood { return r.hoods[i] }

func (r *InnerRelation) UpdateConfiguration() {
	pos := r.body.Store().Pos
	r.hoods = resizeHoods(r.hoods, len(pos))
	r.cells.Rebuild(pos)

	k := r.body.Kernel()
	cut2 := k.Cutoff() * k.Cutoff()
	sph.ParallelFor(len(pos), buildMinChunk, func(start, end int) {
		for i := start; i < end; i++ {
			hood := r.hoods[i][:0]
			r.cells.ForNear(pos[i], func(j int) {
				if j == i {
					return
				}
				if nb, ok := makeNeighbor(k, r.dom, pos[i], pos[j], cut2, j); ok {
					hood = append(hood, nb)
				}
			})
			r.hoods[i] = hood
		}
	})
}

// ContactRelation is the topology of a body against one or more target
// bodies, e.g. a fluid against its walls or probes against a fluid.
type ContactRelation struct {
	body    *sph.Body
	targets []*sph.Body
	dom     Domain
	cells   []*CellList
	hoods   [][]Neighborhood
}

func NewContact(body *sph.Body, dom Domain, targets ...*sph.Body) *ContactRelation {
	r := &ContactRelation{
		body:    body,
		targets: targets,
		dom:     dom,
		cells:   make([]*CellList, len(targets)),
		hoods:   make([][]Neighborhood, len(targets)),
	}
	cut := body.Kernel().Cutoff()
	for k := range targets {
		r.cells[k] = NewCellList(dom, cut)
	}
	return r
}

func (r *ContactRelation) Body() *sph.Body { return r.body }

// Targets lists the contact bodies in construction order.
func (r *ContactRelation) Targets() []*sph.Body { return r.targets }

// Hood returns particle i's neighbor list against target t. Neighbor
// indices refer into the target body's store.
func (r *ContactRelation) Hood(t, i int) Neighborhood { return r.hoods[t][i] }

func (r *ContactRelation) UpdateConfiguration() {
	pos := r.body.Store().Pos
	k := r.body.Kernel()
	cut2 := k.Cutoff() * k.Cutoff()

	for t, target := range r.targets {
		tpos := target.Store().Pos
		r.hoods[t] = resizeHoods(r.hoods[t], len(pos))
		r.cells[t].Rebuild(tpos)

		hoods := r.hoods[t]
		cells := r.cells[t]
		sph.ParallelFor(len(pos), buildMinChunk, func(start, end int) {
			for i := start; i < end; i++ {
				hood := hoods[i][:0]
				cells.ForNear(pos[i], func(j int) {
					if nb, ok := makeNeighbor(k, r.dom, pos[i], tpos[j], cut2, j); ok {
						hood = append(hood, nb)
					}
				})
				hoods[i] = hood
			}
		})
	}
}

// ComplexRelation pairs an inner topology with a contact topology so kernels
// that see both (fluid plus walls) take a single collaborator. The inner
// relation may be shared with other dynamics; update it through exactly one
// relation per step.
type ComplexRelation struct {
	Inner   *InnerRelation
	Contact *ContactRelation
}

func NewComplex(inner *InnerRelation, contact *ContactRelation) *ComplexRelation {
	return &ComplexRelation{Inner: inner, Contact: contact}
}

func (r *ComplexRelation) Body() *sph.Body { return r.Inner.Body() }

func (r *ComplexRelation) UpdateConfiguration() {
	r.Inner.UpdateConfiguration()
	r.Contact.UpdateConfiguration()
}

func makeNeighbor(k kernel.Kernel, dom Domain, pi, pj sph.Vec2, cut2 float64, j int) (Neighbor, bool) {
	d := dom.Displacement(pi, pj)
	r2 := d.SqrNorm()
	if r2 >= cut2 {
		return Neighbor{}, false
	}
	dist := math.Sqrt(r2)
	// tiny offset keeps the unit vector finite for coincident particles
	e := d.Scale(1 / (dist + 1e-20))
	return Neighbor{J: j, R: dist, W: k.W(dist), DW: k.GradW(dist), E: e}, true
}

func resizeHoods(h []Neighborhood, n int) []Neighborhood {
	if n <= len(h) {
		return h[:n]
	}
	out := make([]Neighborhood, n)
	copy(out, h)
	return out
}
