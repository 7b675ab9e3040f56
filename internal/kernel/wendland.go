package kernel

import "math"

// WendlandC2 is the quintic Wendland kernel with support 2h,
// W(q) = alpha (1 - q/2)^4 (2q + 1). Its gradient is steepest near the
// origin, which resists particle pairing under negative pressure.
type WendlandC2 struct {
	h     float64
	alpha float64
}

func NewWendlandC2(h float64) *WendlandC2 {
	return &WendlandC2{
		h:     h,
		alpha: 7.0 / (4.0 * math.Pi * h * h),
	}
}

func (k *WendlandC2) W(r float64) float64 {
	q := r / k.h
	if q >= 2 {
		return 0
	}
	d := 1 - 0.5*q
	d2 := d * d
	return k.alpha * d2 * d2 * (2*q + 1)
}

func (k *WendlandC2) GradW(r float64) float64 {
	q := r / k.h
	if q >= 2 {
		return 0
	}
	d := 1 - 0.5*q
	return -5 * q * k.alpha / k.h * d * d * d
}

func (k *WendlandC2) W0() float64 { return k.alpha }

func (k *WendlandC2) Cutoff() float64 { return 2 * k.h }

func (k *WendlandC2) SmoothingLength() float64 { return k.h }
