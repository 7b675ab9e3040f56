package kernel

import "math"

// CubicSpline is the classic piecewise-cubic B-spline kernel with support 2h.
// It is cheap to evaluate but its gradient peaks away from the origin, which
// can trigger pairing instability at low resolution; prefer [WendlandC2] for
// production runs.
type CubicSpline struct {
	h     float64
	sigma float64
}

func NewCubicSpline(h float64) *CubicSpline {
	return &CubicSpline{
		h:     h,
		sigma: 10.0 / (7.0 * math.Pi * h * h),
	}
}

func (k *CubicSpline) W(r float64) float64 {
	q := r / k.h
	switch {
	case q < 1:
		return k.sigma * (1 - 1.5*q*q + 0.75*q*q*q)
	case q < 2:
		d := 2 - q
		return k.sigma * 0.25 * d * d * d
	default:
		return 0
	}
}

func (k *CubicSpline) GradW(r float64) float64 {
	q := r / k.h
	switch {
	case q < 1:
		return k.sigma / k.h * (-3*q + 2.25*q*q)
	case q < 2:
		d := 2 - q
		return k.sigma / k.h * (-0.75 * d * d)
	default:
		return 0
	}
}

func (k *CubicSpline) W0() float64 { return k.sigma }

func (k *CubicSpline) Cutoff() float64 { return 2 * k.h }

func (k *CubicSpline) SmoothingLength() float64 { return k.h }
