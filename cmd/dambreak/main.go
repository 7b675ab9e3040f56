// A water column held against the left wall of an open tank collapses
// under gravity, surges across the floor and runs up the far wall. By
// default the run shows in the live terminal monitor; switching output.live
// off in case.yaml gives the headless progress-line mode.
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
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
	"github.com/san-kum/sphlab/internal/viz"
)

// Tank interior and initial column. The column height is the reference
// length; the surge speed scales with sqrt(2 g H).
const (
	tankWidth    = 4.0
	tankHeight   = 3.0
	columnWidth  = 1.0
	columnHeight = 2.0
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ForCase("dambreak")
	if err != nil {
		return err
	}

	dp := cfg.Spacing
	bw := 4 * dp

	adapt := sph.DefaultAdaptation(dp)
	kern := kernel.NewCubicSpline(adapt.SmoothingLength())
	gravity := sph.Vec2{cfg.Fluid.Gravity[0], cfg.Fluid.Gravity[1]}

	water := sph.NewBody("water",
		sph.NewWeaklyCompressibleFluid(cfg.Fluid.RestDensity, cfg.Fluid.SoundSpeed, cfg.Fluid.Viscosity),
		adapt, kern)
	water.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{columnWidth, columnHeight}})

	// Floor and two side walls; the top stays open.
	wall := sph.NewBody("wall", sph.NewSolid(cfg.Fluid.RestDensity), adapt, kern)
	wall.GenerateLattice(sph.Region{Min: sph.Vec2{-bw, -bw}, Max: sph.Vec2{tankWidth + bw, 0}})
	wall.GenerateLattice(sph.Region{Min: sph.Vec2{-bw, 0}, Max: sph.Vec2{0, tankHeight}})
	wall.GenerateLattice(sph.Region{Min: sph.Vec2{tankWidth, 0}, Max: sph.Vec2{tankWidth + bw, tankHeight}})

	// Search bounds leave headroom above the tank for splashes.
	dom := topology.Domain{
		Bounds: sph.Region{Min: sph.Vec2{-bw, -bw}, Max: sph.Vec2{tankWidth + bw, 2 * tankHeight}},
	}
	inner := topology.NewInner(water, dom)
	contact := topology.NewContact(water, dom, wall)
	rel := topology.NewComplex(inner, contact)

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

	uRef := math.Sqrt(2 * math.Abs(cfg.Fluid.Gravity[1]) * columnHeight)
	advDt, err := fluid.NewAdvectionTimeStep(water, uRef, cfg.Run.AdvectionCFL)
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
		},
	}
	runner := sim.New(scheme)

	drawBounds := sph.Region{Min: sph.Vec2{-bw, -bw}, Max: sph.Vec2{tankWidth + bw, tankHeight}}
	rec, err := storage.New(cfg, drawBounds, water, wall)
	if err != nil {
		return err
	}

	simCfg := sim.Config{
		Duration:       cfg.Run.EndTime,
		OutputInterval: cfg.Run.OutputInterval,
		Parallel:       cfg.Run.Parallel,
	}

	fmt.Printf("dambreak: %d fluid + %d wall particles, dp = %g\n", water.N(), wall.N(), dp)

	if cfg.Output.Live {
		return runLive(runner, rec, simCfg, drawBounds, water, wall)
	}
	simCfg.Log = os.Stdout
	runner.AddObserver(rec)
	return runHeadless(runner, rec, simCfg)
}

// runLive feeds the terminal monitor through a frame channel. The channel
// has capacity one: when the monitor pauses it stops draining, the next
// observer send blocks, and the whole run holds until space or quit.
func runLive(runner *sim.Runner, rec *storage.Recorder, simCfg sim.Config, bounds sph.Region, bodies ...*sph.Body) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	energy := dynamics.NewReduce(fluid.NewTotalKineticEnergy(bodies[0]))
	speed := dynamics.NewReduce(fluid.NewMaximumSpeed(bodies[0]))

	frames := make(chan viz.Frame, 1)
	runner.AddObserver(sim.ObserverFunc(func(s sim.Snapshot) error {
		n := 0
		for _, b := range bodies {
			n += b.N()
		}
		pts := make([]sph.Vec2, 0, n)
		for _, b := range bodies {
			st := b.Store()
			pts = append(pts, st.Pos[:st.N()]...)
		}
		f := viz.Frame{
			Time:     s.Time,
			Step:     s.Step,
			Substeps: s.Substeps,
			Energy:   energy.Exec(0),
			MaxSpeed: speed.Exec(0),
			Points:   pts,
		}
		select {
		case frames <- f:
		case <-ctx.Done():
		}
		return nil
	}))
	runner.AddObserver(rec)

	type outcome struct {
		res *sim.Result
		err error
	}
	outc := make(chan outcome, 1)
	go func() {
		res, err := runner.Run(ctx, simCfg)
		close(frames)
		outc <- outcome{res, err}
	}()

	live := viz.NewLive(frames, bounds, "dam break", cancel)
	uiErr := live.Run()
	cancel()
	out := <-outc

	if err := rec.Close(out.res); err != nil && out.err == nil {
		out.err = err
	}
	if uiErr != nil {
		return uiErr
	}
	if errors.Is(out.err, context.Canceled) {
		fmt.Printf("stopped at t = %.4f\n", runner.Time())
		fmt.Printf("results: %s\n", rec.Dir())
		return nil
	}
	if out.err != nil {
		return out.err
	}
	report(out.res, rec)
	return nil
}

func runHeadless(runner *sim.Runner, rec *storage.Recorder, simCfg sim.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, runErr := runner.Run(ctx, simCfg)
	if err := rec.Close(res); err != nil && runErr == nil {
		runErr = err
	}
	if errors.Is(runErr, context.Canceled) {
		fmt.Printf("interrupted at t = %.4f\n", runner.Time())
		fmt.Printf("results: %s\n", rec.Dir())
		return nil
	}
	if runErr != nil {
		return runErr
	}
	report(res, rec)
	return nil
}

func report(res *sim.Result, rec *storage.Recorder) {
	if res != nil {
		fmt.Printf("finished: t = %.3f, %d steps (%d substeps) in %s\n",
			res.Time, res.Steps, res.Substeps, res.Elapsed.Round(time.Millisecond))
	}
	fmt.Printf("results: %s\n", rec.Dir())
}
