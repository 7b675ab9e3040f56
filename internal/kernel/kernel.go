// Package kernel provides smoothing kernels for particle interpolation.
//
// A kernel is constructed with a smoothing length h and evaluated by radial
// distance. All kernels here have compact support of two smoothing lengths,
// so the neighbor search cutoff is [Kernel.Cutoff].
package kernel

import "math"

// Kernel is a radially symmetric smoothing function in two dimensions.
type Kernel interface {
	// W evaluates the kernel at distance r. Zero outside the support.
	W(r float64) float64

	// GradW is the radial derivative dW/dr at distance r. It is
	// non-positive inside the support: kernels decay monotonically.
	GradW(r float64) float64

	// W0 is the kernel value at zero distance, W(0).
	W0() float64

	// Cutoff is the support radius beyond which W vanishes.
	Cutoff() float64

	// SmoothingLength is the h the kernel was built with.
	SmoothingLength() float64
}

// ReferenceNumberDensity sums kernel weights over a perfect lattice at the
// given spacing, including the center point. Density summation divides by it
// so that a particle in an undisturbed lattice interior recovers exactly the
// rest density.
func ReferenceNumberDensity(k Kernel, spacing float64) float64 {
	cut := k.Cutoff()
	n := int(math.Ceil(cut/spacing)) + 1
	sigma := 0.0
	for j := -n; j <= n; j++ {
		for i := -n; i <= n; i++ {
			r := math.Hypot(float64(i)*spacing, float64(j)*spacing)
			if r < cut {
				sigma += k.W(r)
			}
		}
	}
	return sigma
}
