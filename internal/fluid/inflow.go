package fluid

import (
	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
)

// Emitter maintains a steady inflow stream through a slab at the domain
// inlet. Particles inside the slab are forced to the prescribed inflow
// state; when one is advected past the downstream face, a clone continues
// into the domain as ordinary fluid and the original is shifted one slab
// width upstream, so the slab never drains.
//
// Injection relies on the slab membership recorded by the previous call.
// When any other operation changed the store structurally in between (the
// revision moved), the recorded indices are discarded and membership is
// rebuilt from geometry, skipping injection for that single call.
//
// Exec mutates particle count; it belongs in the structural phase of a
// step, never inside an interaction pass.
type Emitter struct {
	body    *sph.Body
	slab    sph.Region
	profile func(sph.Vec2) sph.Vec2
	rho0    float64
	width   float64

	rev    uint64
	buffer []int
}

// NewEmitter builds an emitter over the slab region. profile prescribes the
// inflow velocity at a given position, e.g. a parabolic channel profile.
func NewEmitter(body *sph.Body, slab sph.Region, profile func(sph.Vec2) sph.Vec2) *Emitter {
	e := &Emitter{
		body:    body,
		slab:    slab,
		profile: profile,
		rho0:    body.Material().ReferenceDensity(),
		width:   slab.Size()[0],
	}
	e.rescan()
	return e
}

func (e *Emitter) Body() *sph.Body { return e.body }

func (e *Emitter) Exec(_ float64) {
	st := e.body.Store()

	if st.Revision() == e.rev {
		for _, i := range e.buffer {
			if st.Pos[i][0] >= e.slab.Max[0] {
				st.CopyAppend(i)
				st.Pos[i][0] -= e.width
			}
		}
	}

	e.rescan()
}

// rescan rebuilds slab membership and enforces the inflow state on it.
func (e *Emitter) rescan() {
	st := e.body.Store()
	e.buffer = e.buffer[:0]
	for i := 0; i < st.N(); i++ {
		if e.slab.Contains(st.Pos[i]) {
			e.buffer = append(e.buffer, i)
			st.Vel[i] = e.profile(st.Pos[i])
			st.Rho[i] = e.rho0
			st.P[i] = 0
			st.DrhoDt[i] = 0
		}
	}
	e.rev = st.Revision()
}

// InflowCondition pins the velocity profile inside a region. It runs every
// acoustic substep, so the inlet stream stays steady between injections
// while the emitter handles membership and recycling once per advection
// step.
type InflowCondition struct {
	dynamics.Binding
	region  sph.Region
	profile func(sph.Vec2) sph.Vec2

	pos []sph.Vec2
	vel []sph.Vec2
}

func NewInflowCondition(body *sph.Body, region sph.Region, profile func(sph.Vec2) sph.Vec2) *InflowCondition {
	st := body.Store()
	return &InflowCondition{
		Binding: dynamics.Bind(body),
		region:  region,
		profile: profile,
		pos:     st.Pos,
		vel:     st.Vel,
	}
}

func (o *InflowCondition) Rebind() {
	if o.Sync() {
		st := o.Body().Store()
		o.pos = st.Pos
		o.vel = st.Vel
	}
}

func (o *InflowCondition) Update(i int, _ float64) {
	if o.region.Contains(o.pos[i]) {
		o.vel[i] = o.profile(o.pos[i])
	}
}

// Disposer deletes particles that entered the outflow zone. Removal uses
// swap-with-last compaction, so particle indices shift; like the emitter it
// runs in the structural phase, and field bindings resynchronize on their
// next sweep.
type Disposer struct {
	body *sph.Body
	zone sph.Region
}

func NewDisposer(body *sph.Body, zone sph.Region) *Disposer {
	return &Disposer{body: body, zone: zone}
}

func (d *Disposer) Body() *sph.Body { return d.body }

func (d *Disposer) Exec(_ float64) {
	st := d.body.Store()
	for i := 0; i < st.N(); {
		if d.zone.Contains(st.Pos[i]) {
			st.SwapRemove(i)
		} else {
			i++
		}
	}
}
