package sph

import "math"

// Vec2 is a planar vector. Positions, velocities and accelerations are
// all Vec2 values; the simulation is strictly two-dimensional.
type Vec2 [2]float64

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v[0] + w[0], v[1] + w[1]}
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v[0] - w[0], v[1] - w[1]}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

func (v Vec2) Dot(w Vec2) float64 {
	return v[0]*w[0] + v[1]*w[1]
}

// Cross returns the scalar cross product, the out-of-plane component of
// v x w. Vorticity evaluation is its only consumer.
func (v Vec2) Cross(w Vec2) float64 {
	return v[0]*w[1] - v[1]*w[0]
}

// SqrNorm returns the squared Euclidean norm.
func (v Vec2) SqrNorm() float64 {
	return v[0]*v[0] + v[1]*v[1]
}

func (v Vec2) Norm() float64 {
	return math.Hypot(v[0], v[1])
}
