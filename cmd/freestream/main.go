// Free-stream flow past a circular cylinder at Re 100. An emitter slab
// upstream feeds a steady stream, a disposer deletes particles past the
// outlet, and the inflow velocity ramps up smoothly from rest. Drag, lift,
// peak vorticity and wake velocities are recorded as probe series.
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/san-kum/sphlab/internal/analysis"
	"github.com/san-kum/sphlab/internal/config"
	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/fluid"
	"github.com/san-kum/sphlab/internal/kernel"
	"github.com/san-kum/sphlab/internal/sim"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/storage"
	"github.com/san-kum/sphlab/internal/topology"
)

// Strip geometry in units of the cylinder radius. The emitter slab sits
// upstream of x = 0; Re = rho U (2 R) / mu.
const (
	channelLength  = 15.0
	channelHeight  = 8.0
	cylinderX      = 4.0
	cylinderY      = 4.0
	cylinderR      = 1.0
	streamVelocity = 1.0
	rampTime       = 2.0
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ForCase("freestream")
	if err != nil {
		return err
	}

	dp := cfg.Spacing
	sponge := 20 * dp
	center := sph.Vec2{cylinderX, cylinderY}

	adapt := sph.DefaultAdaptation(dp)
	kern := kernel.NewWendlandC2(adapt.SmoothingLength())

	water := sph.NewBody("water",
		sph.NewWeaklyCompressibleFluid(cfg.Fluid.RestDensity, cfg.Fluid.SoundSpeed, cfg.Fluid.Viscosity),
		adapt, kern)
	water.GenerateLattice(sph.Region{Min: sph.Vec2{-sponge, 0}, Max: sph.Vec2{channelLength, channelHeight}})
	carveDisc(water, center, cylinderR+0.5*dp)

	cylinder := sph.NewBody("cylinder", sph.NewSolid(cfg.Fluid.RestDensity), adapt, kern)
	fillDisc(cylinder, center, cylinderR, dp)

	dom := topology.Domain{
		Bounds: sph.Region{Min: sph.Vec2{-sponge, 0}, Max: sph.Vec2{channelLength + 1, channelHeight}},
	}
	inner := topology.NewInner(water, dom)
	contact := topology.NewContact(water, dom, cylinder)
	rel := topology.NewComplex(inner, contact)

	// The inflow profile follows the run clock; the runner is assigned
	// below, before any stepping evaluates it, and a nil clock reads as
	// the start of the ramp.
	var clock func() float64
	profile := func(sph.Vec2) sph.Vec2 {
		t := 0.0
		if clock != nil {
			t = clock()
		}
		return sph.Vec2{rampVelocity(t), 0}
	}

	slab := sph.Region{Min: sph.Vec2{-sponge, 0}, Max: sph.Vec2{0, channelHeight}}
	emitter := fluid.NewEmitter(water, slab, profile)
	inflow := fluid.NewInflowCondition(water, slab, profile)
	outlet := sph.Region{Min: sph.Vec2{channelLength, -1}, Max: sph.Vec2{channelLength + 1, channelHeight + 1}}
	disposer := fluid.NewDisposer(water, outlet)

	gravity := sph.Vec2{cfg.Fluid.Gravity[0], cfg.Fluid.Gravity[1]}
	stepInit := fluid.NewStepInitialization(water, gravity)
	density, err := fluid.NewDensitySummationFreeSurfaceWithWall(rel)
	if err != nil {
		return err
	}
	viscous, err := fluid.NewViscousForceWithWall(rel)
	if err != nil {
		return err
	}
	pressure, err := fluid.NewPressureRelaxationWithWall(rel)
	if err != nil {
		return err
	}
	densityRelax, err := fluid.NewDensityRelaxationWithWall(rel)
	if err != nil {
		return err
	}
	advDt, err := fluid.NewAdvectionTimeStep(water, streamVelocity, cfg.Run.AdvectionCFL)
	if err != nil {
		return err
	}
	acDt, err := fluid.NewAcousticTimeStep(water, cfg.Run.AcousticCFL)
	if err != nil {
		return err
	}

	scheme := sim.Scheme{
		Relations: []sim.Relation{rel},
		Advance: []sim.Method{
			dynamics.NewSimple(stepInit),
			dynamics.NewInteractionWithUpdate(density),
			dynamics.NewInteraction(viscous),
		},
		AdvectionDt: dynamics.NewReduce(advDt),
		AcousticDt:  dynamics.NewReduce(acDt),
		Substep: []sim.Method{
			dynamics.NewOneLevel(pressure),
			dynamics.NewOneLevel(densityRelax),
			dynamics.NewSimple(inflow),
		},
		Structural: []sim.Structural{emitter, disposer},
	}
	runner := sim.New(scheme)
	clock = runner.Time

	// Output-time evaluations: hydrodynamic load on the cylinder, wake
	// vorticity, and interpolated wake velocities.
	cylContact := topology.NewContact(cylinder, dom, water)
	force, err := fluid.NewForceOnSolid(cylContact)
	if err != nil {
		return err
	}
	forceSweep := dynamics.NewInteraction(force)

	vorticity := fluid.NewVorticity(inner)
	vortSweep := dynamics.NewInteraction(vorticity)

	probes := sph.NewBody("probes", sph.Inert(), adapt, kern)
	probes.PlaceParticles(
		sph.Vec2{cylinderX + 2.5*cylinderR, cylinderY},
		sph.Vec2{cylinderX + 6*cylinderR, cylinderY},
	)
	probeContact := topology.NewContact(probes, dom, water)
	probeVel, err := fluid.NewVelocityProbe(probeContact)
	if err != nil {
		return err
	}
	probeSweep := dynamics.NewInteraction(probeVel)

	rec, err := storage.New(cfg, dom.Bounds, water, cylinder)
	if err != nil {
		return err
	}
	// Lift history for the shedding-frequency estimate, the start-up ramp
	// excluded.
	var liftTimes, lift []float64
	runner.AddObserver(sim.ObserverFunc(func(s sim.Snapshot) error {
		cylContact.UpdateConfiguration()
		forceSweep.Exec(0)
		vortSweep.Exec(0)
		probeContact.UpdateConfiguration()
		probeSweep.Exec(0)
		if s.Time >= rampTime {
			liftTimes = append(liftTimes, s.Time)
			lift = append(lift, force.Total()[1])
		}
		return nil
	}))
	rec.AddSeries("drag", func() float64 { return force.Total()[0] })
	rec.AddSeries("lift", func() float64 { return force.Total()[1] })
	rec.AddSeries("vorticity_max", func() float64 { return maxAbs(vorticity.Values) })
	rec.AddSeries("u_near_wake", func() float64 { return probeVel.Values[0][0] })
	rec.AddSeries("u_far_wake", func() float64 { return probeVel.Values[1][0] })
	runner.AddObserver(rec)

	re := cfg.Fluid.RestDensity * streamVelocity * 2 * cylinderR / cfg.Fluid.Viscosity
	fmt.Printf("freestream: %d fluid + %d cylinder particles, dp = %g, Re = %.0f\n",
		water.N(), cylinder.N(), dp, re)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, runErr := runner.Run(ctx, sim.Config{
		Duration:       cfg.Run.EndTime,
		OutputInterval: cfg.Run.OutputInterval,
		Parallel:       cfg.Run.Parallel,
		Log:            os.Stdout,
	})
	if err := rec.Close(res); err != nil && runErr == nil {
		runErr = err
	}
	if errors.Is(runErr, context.Canceled) {
		fmt.Printf("interrupted at t = %.4f\n", runner.Time())
	} else if runErr != nil {
		return runErr
	} else {
		fmt.Printf("finished: t = %.3f, %d steps (%d substeps) in %s\n",
			res.Time, res.Steps, res.Substeps, res.Elapsed.Round(time.Millisecond))
	}
	if n := len(liftTimes); n >= 4 {
		dt := (liftTimes[n-1] - liftTimes[0]) / float64(n-1)
		if f := analysis.DominantFrequency(lift, dt); f > 0 {
			fmt.Printf("lift spectrum: f = %.4f, St = %.3f\n",
				f, f*2*cylinderR/streamVelocity)
		}
	}
	fmt.Printf("results: %s\n", rec.Dir())
	return nil
}

// rampVelocity eases the stream in over rampTime so the start does not
// shock the cylinder with an acoustic front.
func rampVelocity(t float64) float64 {
	if t >= rampTime {
		return streamVelocity
	}
	return 0.5 * streamVelocity * (1 + math.Sin(math.Pi*(t-0.5*rampTime)/rampTime))
}

// carveDisc removes particles inside the disc so the fluid lattice leaves
// room for the solid.
func carveDisc(body *sph.Body, center sph.Vec2, r float64) {
	st := body.Store()
	for i := 0; i < st.N(); {
		if st.Pos[i].Sub(center).Norm() < r {
			st.SwapRemove(i)
		} else {
			i++
		}
	}
}

// fillDisc lattices the disc's bounding box and keeps the points inside.
func fillDisc(body *sph.Body, center sph.Vec2, r, dp float64) {
	n := int(math.Round(2 * r / dp))
	var points []sph.Vec2
	for iy := 0; iy < n; iy++ {
		for ix := 0; ix < n; ix++ {
			p := sph.Vec2{
				center[0] - r + (float64(ix)+0.5)*dp,
				center[1] - r + (float64(iy)+0.5)*dp,
			}
			if p.Sub(center).Norm() <= r {
				points = append(points, p)
			}
		}
	}
	body.PlaceParticles(points...)
}

func maxAbs(vals []float64) float64 {
	m := 0.0
	for _, v := range vals {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
