package fluid

import (
	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/topology"
)

// ViscousForce computes the laminar shear acceleration
//
//	visc_i = sum_j 2 mu (v_i - v_j) / (r_ij + 0.01 h) * dW_ij V_j / rho_i
//
// and overwrites the viscous acceleration field with it. Overwriting makes
// the sweep idempotent: with topology and velocities unchanged, re-running
// writes the identical array, and a particle without neighbors gets exactly
// zero. The 0.01 h offset keeps near-coincident pairs finite.
type ViscousForce struct {
	dynamics.FluidBinding
	inner   *topology.InnerRelation
	contact *topology.ContactRelation
	walls   []contactFields

	vel     []sph.Vec2
	accVisc []sph.Vec2
	rho     []float64
	vol     []float64

	smoothing float64
}

func NewViscousForce(inner *topology.InnerRelation) (*ViscousForce, error) {
	return newViscousForce(inner, nil)
}

// NewViscousForceWithWall adds wall friction: wall neighbors enter the sum
// with their own (usually zero) velocity, which is what drags channel flow.
func NewViscousForceWithWall(rel *topology.ComplexRelation) (*ViscousForce, error) {
	return newViscousForce(rel.Inner, rel.Contact)
}

func newViscousForce(inner *topology.InnerRelation, contact *topology.ContactRelation) (*ViscousForce, error) {
	body := inner.Body()
	fb, err := dynamics.BindFluid(body, "viscous force")
	if err != nil {
		return nil, err
	}

	st := body.Store()
	o := &ViscousForce{
		FluidBinding: fb,
		inner:        inner,
		contact:      contact,
		vel:          st.Vel,
		accVisc:      st.AccVisc,
		rho:          st.Rho,
		vol:          st.Vol,
		smoothing:    body.Kernel().SmoothingLength(),
	}
	if contact != nil {
		o.walls = bindContacts(contact.Targets())
	}
	return o, nil
}

func (o *ViscousForce) Rebind() {
	if o.Sync() {
		st := o.Body().Store()
		o.vel = st.Vel
		o.accVisc = st.AccVisc
		o.rho = st.Rho
		o.vol = st.Vol
	}
	refreshContacts(o.walls)
}

func (o *ViscousForce) Interact(i int, _ float64) {
	twoMu := 2 * o.Mu
	var acc sph.Vec2

	for _, nb := range o.inner.Hood(i) {
		dv := o.vel[i].Sub(o.vel[nb.J])
		acc = acc.Add(dv.Scale(twoMu * o.vol[nb.J] * nb.DW / (nb.R + 0.01*o.smoothing)))
	}
	for t := range o.walls {
		w := &o.walls[t]
		for _, nb := range o.contact.Hood(t, i) {
			dv := o.vel[i].Sub(w.vel[nb.J])
			acc = acc.Add(dv.Scale(twoMu * w.vol[nb.J] * nb.DW / (nb.R + 0.01*o.smoothing)))
		}
	}

	o.accVisc[i] = acc.Scale(1 / o.rho[i])
}
