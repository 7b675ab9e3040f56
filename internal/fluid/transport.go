package fluid

import (
	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/topology"
)

// transportCoeff scales the position nudge relative to the squared
// smoothing length.
const transportCoeff = 0.2

// TransportVelocityCorrection walks particles down the local
// number-density gradient,
//
//	pos_i += -2 coeff h^2 sum_j dW_ij V_j e_ij
//
// once per advection step, which suppresses the pairing noise of long
// shear runs. It suits confined flows; at a free surface the truncated
// support turns the nudge into an outward push, so open-surface cases
// run uncorrected.
type TransportVelocityCorrection struct {
	dynamics.Binding
	inner   *topology.InnerRelation
	contact *topology.ContactRelation
	walls   []contactFields

	pos []sph.Vec2
	vol []float64

	shift float64
}

func NewTransportVelocityCorrection(inner *topology.InnerRelation) *TransportVelocityCorrection {
	return newTransportVelocityCorrection(inner, nil)
}

func NewTransportVelocityCorrectionWithWall(rel *topology.ComplexRelation) *TransportVelocityCorrection {
	return newTransportVelocityCorrection(rel.Inner, rel.Contact)
}

func newTransportVelocityCorrection(inner *topology.InnerRelation, contact *topology.ContactRelation) *TransportVelocityCorrection {
	body := inner.Body()
	st := body.Store()
	h := body.Kernel().SmoothingLength()
	o := &TransportVelocityCorrection{
		Binding: dynamics.Bind(body),
		inner:   inner,
		contact: contact,
		pos:     st.Pos,
		vol:     st.Vol,
		shift:   transportCoeff * h * h,
	}
	if contact != nil {
		o.walls = bindContacts(contact.Targets())
	}
	return o
}

func (o *TransportVelocityCorrection) Rebind() {
	if o.Sync() {
		st := o.Body().Store()
		o.pos = st.Pos
		o.vol = st.Vol
	}
	refreshContacts(o.walls)
}

func (o *TransportVelocityCorrection) Interact(i int, _ float64) {
	var grad sph.Vec2
	for _, nb := range o.inner.Hood(i) {
		grad = grad.Add(nb.E.Scale(nb.DW * o.vol[nb.J]))
	}
	for t := range o.walls {
		w := &o.walls[t]
		for _, nb := range o.contact.Hood(t, i) {
			grad = grad.Add(nb.E.Scale(nb.DW * w.vol[nb.J]))
		}
	}
	o.pos[i] = o.pos[i].Add(grad.Scale(-2 * o.shift))
}
