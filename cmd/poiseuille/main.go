// Gravity-driven flow between two parallel resting walls, periodic along
// the channel axis. A streamwise body force stands in for the pressure
// gradient, so the flow accelerates from rest toward the parabolic steady
// profile. Headless: progress goes to stdout, results to the run directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/san-kum/sphlab/internal/config"
	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/fluid"
	"github.com/san-kum/sphlab/internal/kernel"
	"github.com/san-kum/sphlab/internal/sim"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/storage"
	"github.com/san-kum/sphlab/internal/topology"
)

// Channel interior. The height doubles as the reference length of the case.
const (
	channelLength = 1.0e-3
	channelHeight = 1.0e-3
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ForCase("poiseuille")
	if err != nil {
		return err
	}

	dp := cfg.Spacing
	bw := 4 * dp // wall thickness, one full kernel support

	adapt := sph.DefaultAdaptation(dp)
	kern := kernel.NewWendlandC2(adapt.SmoothingLength())
	gravity := sph.Vec2{cfg.Fluid.Gravity[0], cfg.Fluid.Gravity[1]}

	water := sph.NewBody("water",
		sph.NewWeaklyCompressibleFluid(cfg.Fluid.RestDensity, cfg.Fluid.SoundSpeed, cfg.Fluid.Viscosity),
		adapt, kern)
	water.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{channelLength, channelHeight}})

	wall := sph.NewBody("wall", sph.NewSolid(cfg.Fluid.RestDensity), adapt, kern)
	wall.GenerateLattice(sph.Region{Min: sph.Vec2{0, -bw}, Max: sph.Vec2{channelLength, 0}})
	wall.GenerateLattice(sph.Region{Min: sph.Vec2{0, channelHeight}, Max: sph.Vec2{channelLength, channelHeight + bw}})

	// Periodic images continue the channel in x; the walls span one period
	// so their images close the gap at the seam.
	dom := topology.Domain{
		Bounds:    sph.Region{Min: sph.Vec2{0, -bw}, Max: sph.Vec2{channelLength, channelHeight + bw}},
		PeriodicX: true,
	}
	inner := topology.NewInner(water, dom)
	contact := topology.NewContact(water, dom, wall)
	rel := topology.NewComplex(inner, contact)

	stepInit := fluid.NewStepInitialization(water, gravity)
	density, err := fluid.NewDensitySummationWithWall(rel)
	if err != nil {
		return err
	}
	transport := fluid.NewTransportVelocityCorrectionWithWall(rel)
	pressure, err := fluid.NewPressureRelaxationWithWall(rel)
	if err != nil {
		return err
	}
	viscous, err := fluid.NewViscousForceWithWall(rel)
	if err != nil {
		return err
	}
	densityRelax, err := fluid.NewDensityRelaxationWithWall(rel)
	if err != nil {
		return err
	}

	uRef := cfg.Fluid.Gravity[0] * channelHeight * channelHeight / cfg.Fluid.Viscosity
	advDt, err := fluid.NewAdvectionTimeStep(water, uRef, cfg.Run.AdvectionCFL)
	if err != nil {
		return err
	}
	acDt, err := fluid.NewAcousticTimeStep(water, cfg.Run.AcousticCFL)
	if err != nil {
		return err
	}

	// Creeping flow: the viscous sweep runs per acoustic substep between
	// the two relaxation halves, so wall friction acts at the same cadence
	// as the pressure forces that balance it.
	scheme := sim.Scheme{
		Relations: []sim.Relation{rel},
		Advance: []sim.Method{
			dynamics.NewSimple(stepInit),
			dynamics.NewInteractionWithUpdate(density),
			dynamics.NewInteraction(transport),
		},
		AdvectionDt: dynamics.NewReduce(advDt),
		AcousticDt:  dynamics.NewReduce(acDt),
		Substep: []sim.Method{
			dynamics.NewOneLevel(pressure),
			dynamics.NewInteraction(viscous),
			dynamics.NewOneLevel(densityRelax),
		},
		Structural: []sim.Structural{sim.NewPeriodicWrap(dom, water)},
	}
	runner := sim.New(scheme)

	// Centerline velocity probe, sampled at output times only.
	probes := sph.NewBody("probes", sph.Inert(), adapt, kern)
	probes.PlaceParticles(sph.Vec2{channelLength / 2, channelHeight / 2})
	probeContact := topology.NewContact(probes, dom, water)
	probeVel, err := fluid.NewVelocityProbe(probeContact)
	if err != nil {
		return err
	}
	probeSweep := dynamics.NewInteraction(probeVel)

	rec, err := storage.New(cfg, dom.Bounds, water, wall)
	if err != nil {
		return err
	}
	runner.AddObserver(sim.ObserverFunc(func(sim.Snapshot) error {
		probeContact.UpdateConfiguration()
		probeSweep.Exec(0)
		return nil
	}))
	rec.AddSeries("u_center", func() float64 { return probeVel.Values[0][0] })
	runner.AddObserver(rec)

	fmt.Printf("poiseuille: %d fluid + %d wall particles, dp = %g, u_ref = %g\n",
		water.N(), wall.N(), dp, uRef)

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
	fmt.Printf("results: %s\n", rec.Dir())
	return nil
}
