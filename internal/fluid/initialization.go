package fluid

import (
	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
)

// StepInitialization seeds the prior acceleration with body forces at the
// start of every advection step. Force operations then accumulate on top.
type StepInitialization struct {
	dynamics.Binding
	accPrior []sph.Vec2
	gravity  sph.Vec2
}

func NewStepInitialization(body *sph.Body, gravity sph.Vec2) *StepInitialization {
	return &StepInitialization{
		Binding:  dynamics.Bind(body),
		accPrior: body.Store().AccPrior,
		gravity:  gravity,
	}
}

func (o *StepInitialization) Rebind() {
	if o.Sync() {
		o.accPrior = o.Body().Store().AccPrior
	}
}

func (o *StepInitialization) Update(i int, _ float64) {
	o.accPrior[i] = o.gravity
}
