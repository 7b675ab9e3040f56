package fluid

import (
	"math"
	"testing"

	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/topology"
)

func TestTransportVelocityCorrection(t *testing.T) {
	// On an undisturbed lattice the gradient sum cancels for interior
	// particles; an edge particle sees a one-sided sum and is pushed out
	// of the bulk.
	body := newFluidBody("water", testMu)
	body.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{0.5, 0.5}})
	st := body.Store()

	center, right := 0, 0
	for i := range st.Pos {
		if st.Pos[i].Sub(sph.Vec2{0.25, 0.25}).SqrNorm() < st.Pos[center].Sub(sph.Vec2{0.25, 0.25}).SqrNorm() {
			center = i
		}
		if st.Pos[i][0] > st.Pos[right][0] {
			right = i
		}
	}
	centerBefore := st.Pos[center]
	rightBefore := st.Pos[right]

	inner := topology.NewInner(body, openDomain())
	inner.UpdateConfiguration()
	op := NewTransportVelocityCorrection(inner)
	dynamics.NewInteraction(op).Exec(0)

	if moved := st.Pos[center].Sub(centerBefore).Norm(); moved > 1e-12 {
		t.Errorf("interior particle should stay put, moved %g", moved)
	}
	if st.Pos[right][0] <= rightBefore[0] {
		t.Errorf("right-edge particle should be pushed outward, went %v -> %v",
			rightBefore, st.Pos[right])
	}
}

func TestTransportVelocityCorrectionWallBalancesSupport(t *testing.T) {
	dom := openDomain()
	wall := newWallBody("bed")
	wall.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{1, 0.2}})
	body := newFluidBody("water", testMu)
	body.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0.2}, Max: sph.Vec2{1, 0.5}})
	st := body.Store()

	probe := -1
	for i := range st.Pos {
		if st.Pos[i][1] < 0.2+testDp && math.Abs(st.Pos[i][0]-0.5) < 2*testDp {
			probe = i
			break
		}
	}
	if probe < 0 {
		t.Fatal("no bottom-row particle in fixture")
	}
	before := st.Pos[probe]

	rel := topology.NewComplex(topology.NewInner(body, dom), topology.NewContact(body, dom, wall))
	rel.UpdateConfiguration()
	op := NewTransportVelocityCorrectionWithWall(rel)
	dynamics.NewInteraction(op).Exec(0)

	if moved := st.Pos[probe].Sub(before).Norm(); moved > 1e-9 {
		t.Errorf("wall completes the support, particle should stay put, moved %g", moved)
	}
}
