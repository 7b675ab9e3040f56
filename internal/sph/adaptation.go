package sph

import "github.com/san-kum/sphlab/internal/kernel"

// Adaptation describes the spatial resolution of a body: the lattice spacing
// dp and the ratio of smoothing length to spacing. Every derived geometric
// quantity (smoothing length, particle volume) comes from here so that
// resolution is changed in exactly one place.
type Adaptation struct {
	spacing float64
	hRatio  float64
}

// defaultHRatio matches the usual weakly-compressible setup where the
// kernel support spans roughly 2.6 spacings.
const defaultHRatio = 1.3

func NewAdaptation(spacing, hRatio float64) *Adaptation {
	return &Adaptation{spacing: spacing, hRatio: hRatio}
}

// DefaultAdaptation builds an adaptation with the standard smoothing ratio.
func DefaultAdaptation(spacing float64) *Adaptation {
	return NewAdaptation(spacing, defaultHRatio)
}

// Spacing is the reference inter-particle distance dp.
func (a *Adaptation) Spacing() float64 { return a.spacing }

// SmoothingRatio is h/dp.
func (a *Adaptation) SmoothingRatio() float64 { return a.hRatio }

// SmoothingLength is the kernel smoothing length h.
func (a *Adaptation) SmoothingLength() float64 { return a.hRatio * a.spacing }

// ParticleVolume is the rest volume (area, in 2D) of one lattice particle.
func (a *Adaptation) ParticleVolume() float64 { return a.spacing * a.spacing }

// ReferenceNumberDensity is the kernel weight sum over an undisturbed
// lattice at this spacing. Density summation normalizes by it.
func (a *Adaptation) ReferenceNumberDensity(k kernel.Kernel) float64 {
	return kernel.ReferenceNumberDensity(k, a.spacing)
}
