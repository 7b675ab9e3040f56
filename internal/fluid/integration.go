package fluid

import (
	"math"

	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/topology"
)

// PressureRelaxation is the first half of the position-Verlet acoustic step:
//
//	initialize: rho += 0.5 dt drho/dt;  p = EOS(rho);  pos += 0.5 dt v
//	interact:   acc = -sum_j (p_i + p_j) dW_ij V_j e_ij / rho_i
//	update:     v += (acc + acc_prior + acc_visc) dt
//
// The wall variant mirrors fluid pressure into wall neighbors with a
// hydrostatic correction from the prior acceleration, so a resting column
// stays in equilibrium against its walls.
type PressureRelaxation struct {
	dynamics.FluidBinding
	inner   *topology.InnerRelation
	contact *topology.ContactRelation
	walls   []contactFields

	pos, vel, acc     []sph.Vec2
	accPrior, accVisc []sph.Vec2
	rho, p, drhoDt    []float64
	vol               []float64
}

func NewPressureRelaxation(inner *topology.InnerRelation) (*PressureRelaxation, error) {
	return newPressureRelaxation(inner, nil)
}

func NewPressureRelaxationWithWall(rel *topology.ComplexRelation) (*PressureRelaxation, error) {
	return newPressureRelaxation(rel.Inner, rel.Contact)
}

func newPressureRelaxation(inner *topology.InnerRelation, contact *topology.ContactRelation) (*PressureRelaxation, error) {
	body := inner.Body()
	fb, err := dynamics.BindFluid(body, "pressure relaxation")
	if err != nil {
		return nil, err
	}

	o := &PressureRelaxation{FluidBinding: fb, inner: inner, contact: contact}
	o.resolve()
	if contact != nil {
		o.walls = bindContacts(contact.Targets())
	}
	return o, nil
}

func (o *PressureRelaxation) resolve() {
	st := o.Body().Store()
	o.pos, o.vel, o.acc = st.Pos, st.Vel, st.Acc
	o.accPrior, o.accVisc = st.AccPrior, st.AccVisc
	o.rho, o.p, o.drhoDt = st.Rho, st.P, st.DrhoDt
	o.vol = st.Vol
}

func (o *PressureRelaxation) Rebind() {
	if o.Sync() {
		o.resolve()
	}
	refreshContacts(o.walls)
}

func (o *PressureRelaxation) Initialize(i int, dt float64) {
	o.rho[i] += 0.5 * dt * o.drhoDt[i]
	o.p[i] = o.Fluid.Pressure(o.rho[i])
	o.pos[i] = o.pos[i].Add(o.vel[i].Scale(0.5 * dt))
}

func (o *PressureRelaxation) Interact(i int, _ float64) {
	var acc sph.Vec2

	for _, nb := range o.inner.Hood(i) {
		acc = acc.Sub(nb.E.Scale((o.p[i] + o.p[nb.J]) * nb.DW * o.vol[nb.J]))
	}
	for t := range o.walls {
		w := &o.walls[t]
		for _, nb := range o.contact.Hood(t, i) {
			// Pressure mirrored into the wall, raised by the hydrostatic
			// head along the outward direction.
			prior := o.accPrior[i].Add(o.accVisc[i])
			pWall := o.p[i] + o.rho[i]*nb.R*math.Max(0, -prior.Dot(nb.E))
			acc = acc.Sub(nb.E.Scale((o.p[i] + pWall) * nb.DW * w.vol[nb.J]))
		}
	}

	o.acc[i] = acc.Scale(1 / o.rho[i])
}

func (o *PressureRelaxation) Update(i int, dt float64) {
	total := o.acc[i].Add(o.accPrior[i]).Add(o.accVisc[i])
	o.vel[i] = o.vel[i].Add(total.Scale(dt))
}

// DensityRelaxation is the second half of the acoustic step:
//
//	initialize: pos += 0.5 dt v
//	interact:   drho/dt = rho_i sum_j (v_i - v_j) . e_ij dW_ij V_j
//	update:     rho += 0.5 dt drho/dt
//
// The wall variant reflects the fluid velocity about the wall surface
// (no-slip), doubling the normal velocity difference.
type DensityRelaxation struct {
	dynamics.FluidBinding
	inner   *topology.InnerRelation
	contact *topology.ContactRelation
	walls   []contactFields

	pos, vel    []sph.Vec2
	rho, drhoDt []float64
	vol         []float64
}

func NewDensityRelaxation(inner *topology.InnerRelation) (*DensityRelaxation, error) {
	return newDensityRelaxation(inner, nil)
}

func NewDensityRelaxationWithWall(rel *topology.ComplexRelation) (*DensityRelaxation, error) {
	return newDensityRelaxation(rel.Inner, rel.Contact)
}

func newDensityRelaxation(inner *topology.InnerRelation, contact *topology.ContactRelation) (*DensityRelaxation, error) {
	body := inner.Body()
	fb, err := dynamics.BindFluid(body, "density relaxation")
	if err != nil {
		return nil, err
	}

	o := &DensityRelaxation{FluidBinding: fb, inner: inner, contact: contact}
	o.resolve()
	if contact != nil {
		o.walls = bindContacts(contact.Targets())
	}
	return o, nil
}

func (o *DensityRelaxation) resolve() {
	st := o.Body().Store()
	o.pos, o.vel = st.Pos, st.Vel
	o.rho, o.drhoDt = st.Rho, st.DrhoDt
	o.vol = st.Vol
}

func (o *DensityRelaxation) Rebind() {
	if o.Sync() {
		o.resolve()
	}
	refreshContacts(o.walls)
}

func (o *DensityRelaxation) Initialize(i int, dt float64) {
	o.pos[i] = o.pos[i].Add(o.vel[i].Scale(0.5 * dt))
}

func (o *DensityRelaxation) Interact(i int, _ float64) {
	rate := 0.0

	for _, nb := range o.inner.Hood(i) {
		rate += o.vel[i].Sub(o.vel[nb.J]).Dot(nb.E) * nb.DW * o.vol[nb.J]
	}
	for t := range o.walls {
		w := &o.walls[t]
		for _, nb := range o.contact.Hood(t, i) {
			rate += 2 * o.vel[i].Sub(w.vel[nb.J]).Dot(nb.E) * nb.DW * w.vol[nb.J]
		}
	}

	o.drhoDt[i] = rate * o.rho[i]
}

func (o *DensityRelaxation) Update(i int, dt float64) {
	o.rho[i] += 0.5 * dt * o.drhoDt[i]
}
