package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testKernels(h float64) map[string]Kernel {
	return map[string]Kernel{
		"cubic":    NewCubicSpline(h),
		"wendland": NewWendlandC2(h),
	}
}

func TestKernelBasics(t *testing.T) {
	for name, k := range testKernels(0.13) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, k.W(0), k.W0(), "W0 must equal W at zero distance")
			assert.Equal(t, 0.13, k.SmoothingLength())
			assert.Equal(t, 0.26, k.Cutoff())

			assert.Zero(t, k.W(k.Cutoff()), "kernel must vanish at cutoff")
			assert.Zero(t, k.W(k.Cutoff()*1.5), "kernel must vanish beyond cutoff")
			assert.Zero(t, k.GradW(k.Cutoff()*1.5))
			assert.Greater(t, k.W(k.Cutoff()*0.99), 0.0, "kernel must be positive inside support")
		})
	}
}

func TestKernelGradientNonPositive(t *testing.T) {
	for name, k := range testKernels(1.0) {
		t.Run(name, func(t *testing.T) {
			for q := 0.05; q < 2.0; q += 0.05 {
				assert.LessOrEqual(t, k.GradW(q), 0.0, "q=%v", q)
			}
		})
	}
}

// The kernel must integrate to one over the plane.
func TestKernelNormalization(t *testing.T) {
	for name, k := range testKernels(0.5) {
		t.Run(name, func(t *testing.T) {
			const steps = 4000
			dr := k.Cutoff() / steps
			integral := 0.0
			for i := 0; i < steps; i++ {
				r := (float64(i) + 0.5) * dr
				integral += k.W(r) * 2 * math.Pi * r * dr
			}
			assert.InDelta(t, 1.0, integral, 1e-3)
		})
	}
}

func TestKernelGradientMatchesFiniteDifference(t *testing.T) {
	const eps = 1e-6
	for name, k := range testKernels(1.0) {
		t.Run(name, func(t *testing.T) {
			// Skip the spline knots where the second derivative jumps.
			for _, r := range []float64{0.3, 0.7, 1.2, 1.7} {
				fd := (k.W(r+eps) - k.W(r-eps)) / (2 * eps)
				assert.InDelta(t, fd, k.GradW(r), 1e-5, "r=%v", r)
			}
		})
	}
}

// On a regular lattice the discrete weight sum approximates the continuous
// integral 1/dp^2 closely; density summation relies on this.
func TestReferenceNumberDensity(t *testing.T) {
	const dp = 0.02
	for name, k := range testKernels(1.3 * dp) {
		t.Run(name, func(t *testing.T) {
			sigma := ReferenceNumberDensity(k, dp)
			assert.InEpsilon(t, 1.0/(dp*dp), sigma, 0.05)
			assert.Greater(t, sigma, k.W0(), "lattice sum includes neighbors beyond the center")
		})
	}
}
