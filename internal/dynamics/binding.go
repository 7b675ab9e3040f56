package dynamics

import (
	"fmt"

	"github.com/san-kum/sphlab/internal/sph"
)

// Binding is the construction-time resolution of an operation against its
// body. Operations embed it, cache the field slices they touch, and get
// Body() for free. The captured store revision detects structural changes;
// operations re-resolve their cached slices in Rebind when Sync reports
// a change.
type Binding struct {
	body *sph.Body
	rev  uint64
}

// Bind captures the body and its current store revision.
func Bind(body *sph.Body) Binding {
	return Binding{body: body, rev: body.Store().Revision()}
}

// Body is the body this operation sweeps.
func (b *Binding) Body() *sph.Body { return b.body }

// Stale reports whether the store changed structurally since resolution.
func (b *Binding) Stale() bool { return b.rev != b.body.Store().Revision() }

// Sync marks the binding current. It returns true exactly when cached field
// views must be resolved again.
func (b *Binding) Sync() bool {
	rev := b.body.Store().Revision()
	if rev == b.rev {
		return false
	}
	b.rev = rev
	return true
}

// FluidBinding is a Binding that additionally requires the fluid capability
// of the body's material. The capability is asserted once, here; the sweep
// code then calls the fluid model without any further checking.
type FluidBinding struct {
	Binding
	Fluid sph.Fluid

	// Rho0 and Mu are resolved eagerly since every fluid operation
	// reads them per pair.
	Rho0 float64
	Mu   float64
}

// BindFluid resolves the fluid capability of body's material. requester
// names the operation asking, so a mismatch error identifies both sides:
//
//	viscous force: body "gate": sph: material lacks required capability (have "solid", need fluid)
func BindFluid(body *sph.Body, requester string) (FluidBinding, error) {
	fl, ok := body.Material().(sph.Fluid)
	if !ok {
		return FluidBinding{}, fmt.Errorf("%s: body %q: %w (have %q, need fluid)",
			requester, body.Name(), sph.ErrMaterialCapability, body.Material().Kind())
	}
	return FluidBinding{
		Binding: Bind(body),
		Fluid:   fl,
		Rho0:    fl.ReferenceDensity(),
		Mu:      fl.ReferenceViscosity(),
	}, nil
}
