package dynamics

import (
	"github.com/san-kum/sphlab/internal/sph"
)

// Reducer folds a per-particle quantity into a single value. Combine must be
// associative and commutative with Identity as its neutral element; Output
// post-processes the folded value (e.g. turning a maximum speed into a time
// step).
type Reducer interface {
	Dynamic
	Identity() float64
	Reduce(i int, dt float64) float64
	Combine(a, b float64) float64
	Output(reduced float64) float64
}

// Reduce sweeps a Reducer. Exec and ParallelExec return the reduced value
// instead of mutating particle state.
type Reduce struct {
	op Reducer
}

func NewReduce(op Reducer) *Reduce { return &Reduce{op: op} }

func (d *Reduce) Exec(dt float64) float64 {
	n := prepare(d.op)
	acc := d.op.Identity()
	for i := 0; i < n; i++ {
		acc = d.op.Combine(acc, d.op.Reduce(i, dt))
	}
	return d.op.Output(acc)
}

func (d *Reduce) ParallelExec(dt float64) float64 {
	n := prepare(d.op)
	acc := sph.ParallelReduce(n, execMinChunk, d.op.Identity(), func(start, end int, a float64) float64 {
		for i := start; i < end; i++ {
			a = d.op.Combine(a, d.op.Reduce(i, dt))
		}
		return a
	}, d.op.Combine)
	return d.op.Output(acc)
}
