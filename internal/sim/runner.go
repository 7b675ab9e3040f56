// Package sim drives the weakly-compressible dual loop. Once per advection
// step the force priors, density field and step size are refreshed; then
// pressure and density relaxation sub-step at the acoustic scale until the
// advection step is used up. Structural operations and neighbor rebuilds
// run between steps, never inside one.
package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/sphlab/internal/sph"
)

// Scheme is the ordered operation schedule for one case. Drivers assemble
// it once; the runner owns sequencing and step-size bookkeeping.
type Scheme struct {
	// Relations are refreshed after every advection step, in declared
	// order, so contact relations follow the inner rebuilds they read.
	Relations []Relation

	// Advance runs once per advection step, before the step size is
	// measured: step initialization, density summation, viscous forces,
	// transport correction.
	Advance []Method

	// AdvectionDt and AcousticDt yield the two step sizes.
	AdvectionDt Reducer
	AcousticDt  Reducer

	// Substep runs once per acoustic substep with the acoustic dt: the
	// two relaxation halves, plus any inflow condition that must hold
	// between them.
	Substep []Method

	// Structural runs after the acoustic loop: emitters, disposers,
	// periodic wraps.
	Structural []Structural
}

// Runner executes a scheme. The physical clock lives here and persists
// across Run calls.
type Runner struct {
	scheme    Scheme
	observers []Observer

	time     float64
	lastDt   float64
	lastdt   float64
	parallel bool
	revs     []uint64
}

func New(scheme Scheme) *Runner {
	return &Runner{scheme: scheme}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Time is the physical time reached so far.
func (r *Runner) Time() float64 { return r.time }

// Run steps the scheme until the physical clock reaches cfg.Duration,
// flushing observers at the configured interval. On error the state
// reached so far is kept, so callers can still inspect the bodies.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := r.validate(cfg); err != nil {
		return nil, err
	}
	if cfg.OutputInterval <= 0 {
		cfg.OutputInterval = cfg.Duration
	}
	if cfg.MaxSubsteps <= 0 {
		cfg.MaxSubsteps = DefaultConfig().MaxSubsteps
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = DefaultConfig().LogEvery
	}
	r.parallel = cfg.Parallel

	for _, rel := range r.scheme.Relations {
		rel.UpdateConfiguration()
	}

	start := time.Now()
	res := &Result{}
	defer func() {
		res.Time = r.time
		res.Elapsed = time.Since(start)
	}()

	if err := r.flush(res); err != nil {
		return res, err
	}
	lastOutput := r.time
	nextOutput := r.time + cfg.OutputInterval

	for r.time < cfg.Duration {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		if err := r.advance(cfg, res); err != nil {
			return res, err
		}

		if cfg.Log != nil && res.Steps%cfg.LogEvery == 0 {
			fmt.Fprintf(cfg.Log, "N=%d\tTime = %.6f\tDt = %.4e\tdt = %.4e\n",
				res.Steps, r.time, r.lastDt, r.lastdt)
		}

		if r.time >= nextOutput {
			if err := r.flush(res); err != nil {
				return res, err
			}
			lastOutput = r.time
			for nextOutput <= r.time {
				nextOutput += cfg.OutputInterval
			}
		}
	}

	if r.time > lastOutput {
		if err := r.flush(res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (r *Runner) validate(cfg Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %g", cfg.Duration)
	}
	if r.scheme.AdvectionDt == nil {
		return fmt.Errorf("sim: scheme has no advection time-step criterion")
	}
	if r.scheme.AcousticDt == nil {
		return fmt.Errorf("sim: scheme has no acoustic time-step criterion")
	}
	return nil
}

// advance takes one full advection step: the advance methods, then the
// acoustic loop until the advection step is relaxed away, then structural
// changes and the relation rebuilds they require.
func (r *Runner) advance(cfg Config, res *Result) error {
	r.recordRevisions()

	for _, m := range r.scheme.Advance {
		r.exec(m, 0)
	}

	Dt := r.reduce(r.scheme.AdvectionDt)
	if !stepOK(Dt) {
		return &StepError{Step: res.Steps, Time: r.time,
			Err: fmt.Errorf("advection step size %g is not a positive finite number", Dt)}
	}

	relaxed := 0.0
	n := 0
	for relaxed < Dt {
		if n >= cfg.MaxSubsteps {
			return &StepError{Step: res.Steps, Time: r.time,
				Err: fmt.Errorf("acoustic loop stalled after %d substeps (dt=%g, Dt=%g)", n, r.lastdt, Dt)}
		}
		dt := math.Min(r.reduce(r.scheme.AcousticDt), Dt-relaxed)
		if !stepOK(dt) {
			return &StepError{Step: res.Steps, Time: r.time,
				Err: fmt.Errorf("acoustic step size %g is not a positive finite number", dt)}
		}
		for _, m := range r.scheme.Substep {
			r.exec(m, dt)
		}
		relaxed += dt
		r.time += dt
		r.lastdt = dt
		n++
	}
	r.lastDt = Dt
	res.Steps++
	res.Substeps += n

	if err := r.checkRevisions(); err != nil {
		return &StepError{Step: res.Steps, Time: r.time, Err: err}
	}

	for _, s := range r.scheme.Structural {
		s.Exec(Dt)
	}
	for _, rel := range r.scheme.Relations {
		rel.UpdateConfiguration()
	}
	return nil
}

func (r *Runner) flush(res *Result) error {
	snap := Snapshot{
		Time:        r.time,
		Step:        res.Steps,
		Substeps:    res.Substeps,
		AdvectionDt: r.lastDt,
		AcousticDt:  r.lastdt,
	}
	for _, o := range r.observers {
		if err := o.OnOutput(snap); err != nil {
			return &StepError{Step: res.Steps, Time: r.time, Err: err}
		}
	}
	res.Outputs++
	return nil
}

func (r *Runner) recordRevisions() {
	r.revs = r.revs[:0]
	for _, rel := range r.scheme.Relations {
		r.revs = append(r.revs, rel.Body().Store().Revision())
	}
}

// checkRevisions catches structural edits made while the relaxation loop
// was running. Neighbor lists would silently index the wrong particles
// after one.
func (r *Runner) checkRevisions() error {
	for i, rel := range r.scheme.Relations {
		if rel.Body().Store().Revision() != r.revs[i] {
			return fmt.Errorf("body %q: %w", rel.Body().Name(), sph.ErrStructureChanged)
		}
	}
	return nil
}

func (r *Runner) exec(m Method, dt float64) {
	if r.parallel {
		m.ParallelExec(dt)
		return
	}
	m.Exec(dt)
}

func (r *Runner) reduce(red Reducer) float64 {
	if r.parallel {
		return red.ParallelExec(0)
	}
	return red.Exec(0)
}

func stepOK(dt float64) bool {
	return dt > 0 && !math.IsInf(dt, 1)
}
