package fluid

import (
	"math"

	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
)

// AdvectionTimeStep bounds the outer (advection) step by the fastest
// particle: Dt = cfl * h / max(|v|, u_floor), where the floor covers the
// reference flow speed, the viscous diffusion speed mu/(rho0 h) and
// acceleration-driven speed-up within one step.
type AdvectionTimeStep struct {
	dynamics.FluidBinding
	vel      []sph.Vec2
	accPrior []sph.Vec2
	accVisc  []sph.Vec2

	h        float64
	cfl      float64
	floorSqr float64
}

func NewAdvectionTimeStep(body *sph.Body, uRef, cfl float64) (*AdvectionTimeStep, error) {
	fb, err := dynamics.BindFluid(body, "advection time step")
	if err != nil {
		return nil, err
	}

	st := body.Store()
	h := body.Kernel().SmoothingLength()
	floor := math.Max(uRef, fb.Mu/(fb.Rho0*h))
	return &AdvectionTimeStep{
		FluidBinding: fb,
		vel:          st.Vel,
		accPrior:     st.AccPrior,
		accVisc:      st.AccVisc,
		h:            h,
		cfl:          cfl,
		floorSqr:     floor * floor,
	}, nil
}

func (o *AdvectionTimeStep) Rebind() {
	if o.Sync() {
		st := o.Body().Store()
		o.vel = st.Vel
		o.accPrior = st.AccPrior
		o.accVisc = st.AccVisc
	}
}

func (o *AdvectionTimeStep) Identity() float64 { return 0 }

func (o *AdvectionTimeStep) Reduce(i int, _ float64) float64 {
	accel := o.accPrior[i].Add(o.accVisc[i]).Norm()
	return math.Max(o.vel[i].SqrNorm(), o.h*accel)
}

func (o *AdvectionTimeStep) Combine(a, b float64) float64 { return math.Max(a, b) }

func (o *AdvectionTimeStep) Output(reduced float64) float64 {
	return o.cfl * o.h / (math.Sqrt(math.Max(reduced, o.floorSqr)) + 1e-15)
}

// AcousticTimeStep bounds the inner (pressure) step by signal speed:
// dt = cfl * h / max_i(c0 + |v_i|).
type AcousticTimeStep struct {
	dynamics.FluidBinding
	vel []sph.Vec2

	h   float64
	cfl float64
	c0  float64
}

func NewAcousticTimeStep(body *sph.Body, cfl float64) (*AcousticTimeStep, error) {
	fb, err := dynamics.BindFluid(body, "acoustic time step")
	if err != nil {
		return nil, err
	}
	return &AcousticTimeStep{
		FluidBinding: fb,
		vel:          body.Store().Vel,
		h:            body.Kernel().SmoothingLength(),
		cfl:          cfl,
		c0:           fb.Fluid.ReferenceSoundSpeed(),
	}, nil
}

func (o *AcousticTimeStep) Rebind() {
	if o.Sync() {
		o.vel = o.Body().Store().Vel
	}
}

// Identity is the bare sound speed, so an empty body still yields a
// finite step.
func (o *AcousticTimeStep) Identity() float64 { return o.c0 }

func (o *AcousticTimeStep) Reduce(i int, _ float64) float64 {
	return o.c0 + o.vel[i].Norm()
}

func (o *AcousticTimeStep) Combine(a, b float64) float64 { return math.Max(a, b) }

func (o *AcousticTimeStep) Output(reduced float64) float64 {
	return o.cfl * o.h / (reduced + 1e-15)
}
