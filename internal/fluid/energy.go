package fluid

import (
	"math"

	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
)

// TotalKineticEnergy folds 0.5 m v^2 over a body. Observers record it as a
// cheap global health indicator: an unstable run shows up as an energy blowup
// long before positions go visibly wrong.
type TotalKineticEnergy struct {
	dynamics.Binding
	vel  []sph.Vec2
	mass []float64
}

func NewTotalKineticEnergy(body *sph.Body) *TotalKineticEnergy {
	st := body.Store()
	return &TotalKineticEnergy{Binding: dynamics.Bind(body), vel: st.Vel, mass: st.Mass}
}

func (o *TotalKineticEnergy) Rebind() {
	if o.Sync() {
		st := o.Body().Store()
		o.vel = st.Vel
		o.mass = st.Mass
	}
}

func (o *TotalKineticEnergy) Identity() float64 { return 0 }

func (o *TotalKineticEnergy) Reduce(i int, _ float64) float64 {
	return 0.5 * o.mass[i] * o.vel[i].SqrNorm()
}

func (o *TotalKineticEnergy) Combine(a, b float64) float64 { return a + b }

func (o *TotalKineticEnergy) Output(reduced float64) float64 { return reduced }

// MaximumSpeed folds the largest velocity norm over a body.
type MaximumSpeed struct {
	dynamics.Binding
	vel []sph.Vec2
}

func NewMaximumSpeed(body *sph.Body) *MaximumSpeed {
	return &MaximumSpeed{Binding: dynamics.Bind(body), vel: body.Store().Vel}
}

func (o *MaximumSpeed) Rebind() {
	if o.Sync() {
		o.vel = o.Body().Store().Vel
	}
}

func (o *MaximumSpeed) Identity() float64 { return 0 }

func (o *MaximumSpeed) Reduce(i int, _ float64) float64 { return o.vel[i].Norm() }

func (o *MaximumSpeed) Combine(a, b float64) float64 { return math.Max(a, b) }

func (o *MaximumSpeed) Output(reduced float64) float64 { return reduced }
