package sph

import (
	"math"

	"github.com/san-kum/sphlab/internal/kernel"
)

// Body is a named particle collection. It binds together the particle store,
// the material model, the resolution descriptor and the smoothing kernel.
// Dynamics kernels resolve everything they need from the body at
// construction time.
type Body struct {
	name  string
	mat   Material
	adapt *Adaptation
	kern  kernel.Kernel
	store *ParticleStore
}

func NewBody(name string, mat Material, adapt *Adaptation, kern kernel.Kernel) *Body {
	return &Body{
		name:  name,
		mat:   mat,
		adapt: adapt,
		kern:  kern,
		store: NewParticleStore(0),
	}
}

func (b *Body) Name() string { return b.name }

func (b *Body) Material() Material { return b.mat }

func (b *Body) Adaptation() *Adaptation { return b.adapt }

func (b *Body) Kernel() kernel.Kernel { return b.kern }

func (b *Body) Store() *ParticleStore { return b.store }

// N is the current particle count.
func (b *Body) N() int { return b.store.N() }

// GenerateLattice fills r with particles on a regular lattice at the body's
// spacing, offset half a spacing from the region edges. Mass, volume and
// density are set from the material rest density. Repeated calls append, so
// composite shapes are built from multiple rectangles. Returns the number of
// particles added.
func (b *Body) GenerateLattice(r Region) int {
	dp := b.adapt.Spacing()
	size := r.Size()
	nx := int(math.Round(size[0] / dp))
	ny := int(math.Round(size[1] / dp))
	if nx <= 0 || ny <= 0 {
		return 0
	}

	rho0 := b.mat.ReferenceDensity()
	vol := b.adapt.ParticleVolume()
	st := b.store
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			i := st.Append()
			st.Pos[i] = Vec2{
				r.Min[0] + (float64(ix)+0.5)*dp,
				r.Min[1] + (float64(iy)+0.5)*dp,
			}
			st.Rho[i] = rho0
			st.Vol[i] = vol
			st.Mass[i] = rho0 * vol
		}
	}
	return nx * ny
}

// PlaceParticles appends one particle per point. Observation bodies use this
// to pin probes at exact measurement locations.
func (b *Body) PlaceParticles(points ...Vec2) {
	rho0 := b.mat.ReferenceDensity()
	vol := b.adapt.ParticleVolume()
	st := b.store
	for _, p := range points {
		i := st.Append()
		st.Pos[i] = p
		st.Rho[i] = rho0
		st.Vol[i] = vol
		st.Mass[i] = rho0 * vol
	}
}
