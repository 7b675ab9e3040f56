package dynamics

import (
	"github.com/san-kum/sphlab/internal/sph"
)

// Dynamic is implemented by every local operation. The wrapper asks it for
// the swept body, so the sweep range always reflects the current particle
// count.
type Dynamic interface {
	Body() *sph.Body
}

// Rebinder is implemented by operations that cache field views. Wrappers
// call Rebind before every sweep; implementations no-op unless the store
// revision moved.
type Rebinder interface {
	Rebind()
}

// Initializer runs once per particle before the interaction sweep.
type Initializer interface {
	Initialize(i int, dt float64)
}

// Interactor accumulates neighbor contributions for one particle. It must
// write only particle i's slots.
type Interactor interface {
	Interact(i int, dt float64)
}

// Updater runs once per particle after the interaction sweep.
type Updater interface {
	Update(i int, dt float64)
}

// Operation shapes accepted by the wrappers.
type (
	SimpleOp interface {
		Dynamic
		Updater
	}
	InteractionOp interface {
		Dynamic
		Interactor
	}
	InteractionUpdateOp interface {
		Dynamic
		Interactor
		Updater
	}
	OneLevelOp interface {
		Dynamic
		Initializer
		Interactor
		Updater
	}
)

// Sweeps are chunked across workers; bodies below this size run inline.
const execMinChunk = 256

// prepare refreshes stale bindings and returns the sweep range.
func prepare(op Dynamic) int {
	if rb, ok := op.(Rebinder); ok {
		rb.Rebind()
	}
	return op.Body().N()
}

func sweep(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

func parallelSweep(n int, fn func(i int)) {
	sph.ParallelFor(n, execMinChunk, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// Simple sweeps a per-particle update with no neighbor access.
type Simple struct {
	op SimpleOp
}

func NewSimple(op SimpleOp) *Simple { return &Simple{op: op} }

func (d *Simple) Exec(dt float64) {
	n := prepare(d.op)
	sweep(n, func(i int) { d.op.Update(i, dt) })
}

func (d *Simple) ParallelExec(dt float64) {
	n := prepare(d.op)
	parallelSweep(n, func(i int) { d.op.Update(i, dt) })
}

// Interaction sweeps neighbor interactions once.
type Interaction struct {
	op InteractionOp
}

func NewInteraction(op InteractionOp) *Interaction { return &Interaction{op: op} }

func (d *Interaction) Exec(dt float64) {
	n := prepare(d.op)
	sweep(n, func(i int) { d.op.Interact(i, dt) })
}

func (d *Interaction) ParallelExec(dt float64) {
	n := prepare(d.op)
	parallelSweep(n, func(i int) { d.op.Interact(i, dt) })
}

// InteractionWithUpdate runs the interaction sweep to completion, then the
// update sweep. The join between the two is the ordering barrier: updates
// see every particle's accumulated interaction result.
type InteractionWithUpdate struct {
	op InteractionUpdateOp
}

func NewInteractionWithUpdate(op InteractionUpdateOp) *InteractionWithUpdate {
	return &InteractionWithUpdate{op: op}
}

func (d *InteractionWithUpdate) Exec(dt float64) {
	n := prepare(d.op)
	sweep(n, func(i int) { d.op.Interact(i, dt) })
	sweep(n, func(i int) { d.op.Update(i, dt) })
}

func (d *InteractionWithUpdate) ParallelExec(dt float64) {
	n := prepare(d.op)
	parallelSweep(n, func(i int) { d.op.Interact(i, dt) })
	parallelSweep(n, func(i int) { d.op.Update(i, dt) })
}

// OneLevel runs initialize, interact and update sweeps in order. Integration
// half-steps are OneLevel operations.
type OneLevel struct {
	op OneLevelOp
}

func NewOneLevel(op OneLevelOp) *OneLevel { return &OneLevel{op: op} }

func (d *OneLevel) Exec(dt float64) {
	n := prepare(d.op)
	sweep(n, func(i int) { d.op.Initialize(i, dt) })
	sweep(n, func(i int) { d.op.Interact(i, dt) })
	sweep(n, func(i int) { d.op.Update(i, dt) })
}

func (d *OneLevel) ParallelExec(dt float64) {
	n := prepare(d.op)
	parallelSweep(n, func(i int) { d.op.Initialize(i, dt) })
	parallelSweep(n, func(i int) { d.op.Interact(i, dt) })
	parallelSweep(n, func(i int) { d.op.Update(i, dt) })
}
