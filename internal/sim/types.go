package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/san-kum/sphlab/internal/sph"
)

// Method is a scheduled dynamics wrapper. The runner picks the serial or
// parallel entry point from its configuration.
type Method interface {
	Exec(dt float64)
	ParallelExec(dt float64)
}

// Reducer folds a particle field down to one number, as the time-step
// criteria do.
type Reducer interface {
	Exec(dt float64) float64
	ParallelExec(dt float64) float64
}

// Structural covers operations that add, remove or relocate particles:
// emitters, disposers, periodic wraps. They run between advection steps,
// when no interaction pass is in flight.
type Structural interface {
	Exec(dt float64)
}

// Relation is the topology surface the runner refreshes after every
// advection step. The relation types in package topology satisfy it.
type Relation interface {
	Body() *sph.Body
	UpdateConfiguration()
}

// Snapshot is the loop state handed to observers at each output interval.
// Field data is read through the bodies an observer was built around.
type Snapshot struct {
	Time        float64
	Step        int // advection steps completed
	Substeps    int // acoustic substeps completed
	AdvectionDt float64
	AcousticDt  float64
}

// Observer receives a snapshot at every output interval. Returning an
// error aborts the run.
type Observer interface {
	OnOutput(s Snapshot) error
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Snapshot) error

func (f ObserverFunc) OnOutput(s Snapshot) error { return f(s) }

// Config controls a run. Duration is the absolute physical end time: the
// runner keeps its clock across calls, so a second Run with a larger
// Duration resumes where the first stopped.
type Config struct {
	Duration       float64
	OutputInterval float64 // observer cadence; <= 0 collapses to one final flush
	MaxSubsteps    int     // acoustic substeps allowed per advection step
	Parallel       bool
	Log            io.Writer // progress lines; nil keeps the run silent
	LogEvery       int       // advection steps between progress lines
}

func DefaultConfig() Config {
	return Config{
		Duration:       1.0,
		OutputInterval: 0.05,
		MaxSubsteps:    1000,
		Parallel:       true,
		LogEvery:       100,
	}
}

// Result reports what one Run call did.
type Result struct {
	Time     float64 // physical time reached
	Steps    int     // advection steps taken
	Substeps int     // acoustic substeps taken
	Outputs  int     // observer flushes, the initial state included
	Elapsed  time.Duration
}

// StepError carries the loop position where a run failed.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
