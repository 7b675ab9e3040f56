package sph

// Material is the base contract every body carries. Concrete materials add
// capabilities through extension interfaces such as [Fluid]; dynamics kernels
// assert for the capability they need when they bind to a body.
type Material interface {
	// Kind names the material model, e.g. "weakly-compressible-fluid".
	// Capability errors report it so a failed binding names both sides.
	Kind() string

	// ReferenceDensity is the rest density used for lattice mass assignment.
	ReferenceDensity() float64
}

// Fluid is the capability interface for materials that support pressure and
// viscous force models. Fluid dynamics kernels require it at construction.
type Fluid interface {
	Material

	// ReferenceViscosity is the dynamic viscosity mu.
	ReferenceViscosity() float64

	// ReferenceSoundSpeed is the artificial sound speed bounding the
	// acoustic time step.
	ReferenceSoundSpeed() float64

	// Pressure evaluates the equation of state at the given density.
	Pressure(rho float64) float64

	// Density inverts the equation of state.
	Density(p float64) float64
}

// WeaklyCompressibleFluid is a linear equation-of-state fluid,
// p = c0^2 (rho - rho0). The sound speed is chosen artificially high
// (typically 10x the expected flow speed) to keep density variation
// around one percent.
type WeaklyCompressibleFluid struct {
	rho0 float64
	c0   float64
	mu   float64
}

func NewWeaklyCompressibleFluid(rho0, c0, mu float64) *WeaklyCompressibleFluid {
	return &WeaklyCompressibleFluid{rho0: rho0, c0: c0, mu: mu}
}

func (f *WeaklyCompressibleFluid) Kind() string { return "weakly-compressible-fluid" }

func (f *WeaklyCompressibleFluid) ReferenceDensity() float64 { return f.rho0 }

func (f *WeaklyCompressibleFluid) ReferenceViscosity() float64 { return f.mu }

func (f *WeaklyCompressibleFluid) ReferenceSoundSpeed() float64 { return f.c0 }

func (f *WeaklyCompressibleFluid) Pressure(rho float64) float64 {
	return f.c0 * f.c0 * (rho - f.rho0)
}

func (f *WeaklyCompressibleFluid) Density(p float64) float64 {
	return f.rho0 + p/(f.c0*f.c0)
}

// Solid is a rigid material for wall bodies. It carries only a rest density;
// fluid kernels binding to a Solid body fail their capability check.
type Solid struct {
	rho0 float64
}

func NewSolid(rho0 float64) *Solid {
	return &Solid{rho0: rho0}
}

func (s *Solid) Kind() string { return "solid" }

func (s *Solid) ReferenceDensity() float64 { return s.rho0 }

// Inert returns a material for bodies that carry state but exert no forces,
// such as observation probes.
func Inert() Material { return inertMaterial{} }

type inertMaterial struct{}

func (inertMaterial) Kind() string { return "inert" }

func (inertMaterial) ReferenceDensity() float64 { return 0 }
