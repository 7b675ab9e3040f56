// Package fluid implements weakly-compressible flow dynamics: density
// summation, viscous and pressure forces, the position-Verlet integration
// half-steps, time-step criteria, transport velocity correction,
// inflow/outflow particle management, hydrodynamic loads on solids and
// field probes.
//
// Operations that evaluate the fluid model bind to their body at
// construction and fail there if the body's material lacks the fluid
// capability. Interaction operations come in an inner variant (fluid
// alone) and a WithWall variant that adds wall contact terms from a
// complex relation.
//
// The dual-loop driver in package sim sequences these operations; see
// [sim.Runner] for the step layout.
package fluid
