package fluid

import (
	"fmt"
	"math"

	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/topology"
)

// ForceOnSolid evaluates the hydrodynamic load the fluid exerts on a solid
// body, the exact reaction of the wall terms the fluid operations apply:
// mirrored pressure plus no-slip shear. The op sweeps the solid body with a
// single fluid target; Values holds the force per solid particle and Total
// folds them for drag and lift recording.
type ForceOnSolid struct {
	dynamics.Binding
	target  dynamics.FluidBinding
	contact *topology.ContactRelation

	vel []sph.Vec2
	vol []float64

	fvel, fprior, fvisc []sph.Vec2
	fp, frho, fvol      []float64

	smoothing float64

	Values []sph.Vec2
}

func NewForceOnSolid(contact *topology.ContactRelation) (*ForceOnSolid, error) {
	solid := contact.Body()
	if len(contact.Targets()) != 1 {
		return nil, fmt.Errorf("force on solid: body %q: want exactly one fluid target, have %d",
			solid.Name(), len(contact.Targets()))
	}
	target := contact.Targets()[0]
	fb, err := dynamics.BindFluid(target, "force on solid")
	if err != nil {
		return nil, err
	}

	o := &ForceOnSolid{
		Binding:   dynamics.Bind(solid),
		target:    fb,
		contact:   contact,
		smoothing: target.Kernel().SmoothingLength(),
		Values:    make([]sph.Vec2, solid.N()),
	}
	o.resolve()
	return o, nil
}

func (o *ForceOnSolid) resolve() {
	st := o.Body().Store()
	o.vel = st.Vel
	o.vol = st.Vol

	ft := o.target.Body().Store()
	o.fvel, o.fprior, o.fvisc = ft.Vel, ft.AccPrior, ft.AccVisc
	o.fp, o.frho, o.fvol = ft.P, ft.Rho, ft.Vol
}

func (o *ForceOnSolid) Rebind() {
	stale := o.Sync()
	if o.target.Sync() {
		stale = true
	}
	if stale {
		o.resolve()
	}
	o.Values = scratchVec(o.Values, o.Body().N())
}

func (o *ForceOnSolid) Interact(i int, _ float64) {
	twoMu := 2 * o.target.Mu
	var f sph.Vec2

	for _, nb := range o.contact.Hood(0, i) {
		j := nb.J
		// E points from the fluid particle toward this solid particle,
		// so the mirrored hydrostatic head flips sign against the
		// fluid-side wall term.
		prior := o.fprior[j].Add(o.fvisc[j])
		pWall := o.fp[j] + o.frho[j]*nb.R*math.Max(0, prior.Dot(nb.E))
		f = f.Sub(nb.E.Scale((o.fp[j] + pWall) * nb.DW * o.fvol[j]))

		dv := o.vel[i].Sub(o.fvel[j])
		f = f.Add(dv.Scale(twoMu * o.fvol[j] * nb.DW / (nb.R + 0.01*o.smoothing)))
	}

	o.Values[i] = f.Scale(o.vol[i])
}

// Total is the force summed over the body, valid after a sweep.
func (o *ForceOnSolid) Total() sph.Vec2 {
	var t sph.Vec2
	for _, f := range o.Values {
		t = t.Add(f)
	}
	return t
}
