package fluid

import (
	"math"

	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/topology"
)

// DensitySummation reinitializes density from kernel-weighted neighbor
// counting, rho_i = rho0 * sigma_i / sigma0, where sigma0 is the weight sum
// of an undisturbed lattice. The summation runs to completion before any
// density is overwritten, so it reads a consistent configuration.
type DensitySummation struct {
	dynamics.FluidBinding
	inner   *topology.InnerRelation
	contact *topology.ContactRelation
	walls   []contactFields

	rho    []float64
	mass   []float64
	vol    []float64
	rhoSum []float64

	w0        float64
	invSigma0 float64
	surface   bool
}

func NewDensitySummation(inner *topology.InnerRelation) (*DensitySummation, error) {
	return newDensitySummation(inner, nil, false)
}

// NewDensitySummationWithWall also counts wall neighbors, so fluid particles
// against a wall are not starved of support. Walls share the fluid lattice
// spacing; their weights enter the sum unscaled.
func NewDensitySummationWithWall(rel *topology.ComplexRelation) (*DensitySummation, error) {
	return newDensitySummation(rel.Inner, rel.Contact, false)
}

// NewDensitySummationFreeSurface clamps the summed density at the rest
// density. Particles at a free surface under-count their support, and the
// equation of state would otherwise read that as tension pulling the
// surface inward.
func NewDensitySummationFreeSurface(inner *topology.InnerRelation) (*DensitySummation, error) {
	return newDensitySummation(inner, nil, true)
}

func NewDensitySummationFreeSurfaceWithWall(rel *topology.ComplexRelation) (*DensitySummation, error) {
	return newDensitySummation(rel.Inner, rel.Contact, true)
}

func newDensitySummation(inner *topology.InnerRelation, contact *topology.ContactRelation, surface bool) (*DensitySummation, error) {
	body := inner.Body()
	fb, err := dynamics.BindFluid(body, "density summation")
	if err != nil {
		return nil, err
	}

	st := body.Store()
	k := body.Kernel()
	o := &DensitySummation{
		FluidBinding: fb,
		inner:        inner,
		contact:      contact,
		rho:          st.Rho,
		mass:         st.Mass,
		vol:          st.Vol,
		rhoSum:       make([]float64, st.N()),
		w0:           k.W0(),
		invSigma0:    1 / body.Adaptation().ReferenceNumberDensity(k),
		surface:      surface,
	}
	if contact != nil {
		o.walls = bindContacts(contact.Targets())
	}
	return o, nil
}

func (o *DensitySummation) Rebind() {
	if o.Sync() {
		st := o.Body().Store()
		o.rho = st.Rho
		o.mass = st.Mass
		o.vol = st.Vol
	}
	o.rhoSum = scratchScalar(o.rhoSum, o.Body().N())
	refreshContacts(o.walls)
}

func (o *DensitySummation) Interact(i int, _ float64) {
	sigma := o.w0
	for _, nb := range o.inner.Hood(i) {
		sigma += nb.W
	}
	for t := range o.walls {
		for _, nb := range o.contact.Hood(t, i) {
			sigma += nb.W
		}
	}
	o.rhoSum[i] = sigma * o.Rho0 * o.invSigma0
}

func (o *DensitySummation) Update(i int, _ float64) {
	rho := o.rhoSum[i]
	if o.surface {
		rho = math.Max(rho, o.Rho0)
	}
	o.rho[i] = rho
	o.vol[i] = o.mass[i] / rho
}
