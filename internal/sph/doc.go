// Package sph provides core primitives for smoothed particle hydrodynamics.
//
// The package defines the fundamental types shared by every other layer:
//
//   - [Vec2]: planar vector used for positions, velocities and forces
//   - [ParticleStore]: struct-of-arrays container for per-particle fields
//   - [Material]: base material contract, with [Fluid] as the capability
//     interface for pressure and viscosity models
//   - [Adaptation]: spatial resolution descriptor (spacing, smoothing length)
//   - [Body]: a named particle collection binding store, material and kernel
//
// # Example
//
//	water := sph.NewWeaklyCompressibleFluid(1000, 10*uMax, 1e-6)
//	adapt := sph.DefaultAdaptation(dp)
//	body := sph.NewBody("water", water, adapt, kernel.NewWendlandC2(adapt.SmoothingLength()))
//	body.GenerateLattice(sph.Region{Max: sph.Vec2{1, 0.5}})
//
// # Thread Safety
//
// ParticleStore is NOT thread-safe for structural changes. Concurrent access
// is limited to disjoint index ranges inside a single interaction pass; any
// resize, append or removal must happen between passes.
package sph
