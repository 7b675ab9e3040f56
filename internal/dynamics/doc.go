// Package dynamics provides the particle-interaction abstraction: local
// operations applied per particle, and the wrappers that sweep them over a
// body serially or in parallel.
//
// A local operation implements some of [Initializer], [Interactor] and
// [Updater] and is composed with a wrapper matching its shape:
//
//   - [Simple]: update sweep only (state resets, velocity constraints)
//   - [Interaction]: interaction sweep only (force accumulation)
//   - [InteractionWithUpdate]: interaction sweep, then update sweep
//   - [OneLevel]: initialize, interact, update (integration half-steps)
//   - [Reduce]: fold a per-particle quantity into one value (time steps,
//     total energies)
//
// Operations resolve everything they need from their body once, at
// construction, through [Binding] and [FluidBinding]; the material
// capability check happens there and fails construction, never a sweep.
// Wrappers re-validate the resolution before each sweep so structural store
// changes between sweeps are picked up automatically.
//
// Within one sweep, workers own disjoint index ranges of the swept body.
// Interactions may read neighbor state of other bodies but write only to
// particle i, so sweeps are race-free; the wrapper returns only after all
// workers join, ordering each sweep before the next.
package dynamics
