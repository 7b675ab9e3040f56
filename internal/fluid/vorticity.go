package fluid

import (
	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/topology"
)

// Vorticity evaluates the out-of-plane curl of the velocity field,
//
//	omega_i = sum_j (v_i - v_j) x e_ij dW_ij V_j
//
// into Values. Wake analysis reads it at output times; nothing in the
// stepping scheme depends on it.
type Vorticity struct {
	dynamics.Binding
	inner *topology.InnerRelation

	vel []sph.Vec2
	vol []float64

	Values []float64
}

func NewVorticity(inner *topology.InnerRelation) *Vorticity {
	body := inner.Body()
	st := body.Store()
	return &Vorticity{
		Binding: dynamics.Bind(body),
		inner:   inner,
		vel:     st.Vel,
		vol:     st.Vol,
		Values:  make([]float64, st.N()),
	}
}

func (o *Vorticity) Rebind() {
	if o.Sync() {
		st := o.Body().Store()
		o.vel = st.Vel
		o.vol = st.Vol
	}
	o.Values = scratchScalar(o.Values, o.Body().N())
}

func (o *Vorticity) Interact(i int, _ float64) {
	omega := 0.0
	for _, nb := range o.inner.Hood(i) {
		omega += o.vel[i].Sub(o.vel[nb.J]).Cross(nb.E) * nb.DW * o.vol[nb.J]
	}
	o.Values[i] = omega
}
