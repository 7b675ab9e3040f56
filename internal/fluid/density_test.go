package fluid

import (
	"testing"

	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/topology"
)

func TestDensitySummationRecoversRestDensity(t *testing.T) {
	// On an undisturbed lattice the interior weight sum equals the
	// reference number density, so summation reproduces rho0. Edge
	// particles lack support and read low.
	body := newFluidBody("water", testMu)
	body.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{1, 1}})
	st := body.Store()
	for i := range st.Rho {
		st.Rho[i] = 0 // stale values must not leak through
	}

	inner := topology.NewInner(body, openDomain())
	inner.UpdateConfiguration()
	op, err := NewDensitySummation(inner)
	if err != nil {
		t.Fatal(err)
	}
	dynamics.NewInteractionWithUpdate(op).ParallelExec(0)

	cutoff := body.Kernel().Cutoff()
	interior := 0
	for i := range st.Pos {
		p := st.Pos[i]
		if p[0] < cutoff || p[0] > 1-cutoff || p[1] < cutoff || p[1] > 1-cutoff {
			continue
		}
		interior++
		if relErr(st.Rho[i], testRho0) > 1e-9 {
			t.Fatalf("interior particle %d at %v: want rho %g, got %g", i, p, testRho0, st.Rho[i])
		}
		if relErr(st.Vol[i], st.Mass[i]/st.Rho[i]) > 1e-12 {
			t.Fatalf("interior particle %d: volume not mass/rho", i)
		}
	}
	if interior == 0 {
		t.Fatal("no interior particles in fixture")
	}

	corner := 0
	for i := range st.Pos {
		if st.Pos[i][0] < st.Pos[corner][0] && st.Pos[i][1] < st.Pos[corner][1] {
			corner = i
		}
	}
	if st.Rho[corner] >= 0.9*testRho0 {
		t.Errorf("corner particle should read rarefied, got %g", st.Rho[corner])
	}
	if st.Rho[corner] <= 0.3*testRho0 {
		t.Errorf("corner particle still has its own row, got %g", st.Rho[corner])
	}
}

func TestDensitySummationFreeSurfaceClamp(t *testing.T) {
	// The free-surface variant never reads below rest density, so the
	// equation of state cannot put the surface under tension.
	body := newFluidBody("water", testMu)
	body.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{0.5, 0.5}})
	st := body.Store()

	inner := topology.NewInner(body, openDomain())
	inner.UpdateConfiguration()
	op, err := NewDensitySummationFreeSurface(inner)
	if err != nil {
		t.Fatal(err)
	}
	dynamics.NewInteractionWithUpdate(op).Exec(0)

	for i, rho := range st.Rho {
		if rho < testRho0 {
			t.Fatalf("particle %d: clamped density below rest: %g", i, rho)
		}
	}

	corner := 0
	for i := range st.Pos {
		if st.Pos[i][0] < st.Pos[corner][0] && st.Pos[i][1] < st.Pos[corner][1] {
			corner = i
		}
	}
	if st.Rho[corner] != testRho0 {
		t.Errorf("rarefied corner should clamp to rest density, got %g", st.Rho[corner])
	}
}

func TestDensitySummationWallRestoresSupport(t *testing.T) {
	// A fluid row against a wall that continues the lattice must not be
	// read as rarefied: wall neighbors complete the kernel support.
	dom := openDomain()
	wall := newWallBody("bed")
	wall.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{1, 0.2}})
	body := newFluidBody("water", testMu)
	body.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0.2}, Max: sph.Vec2{1, 0.5}})
	st := body.Store()

	// bottom row, away from the x edges
	probe := -1
	for i := range st.Pos {
		if st.Pos[i][1] < 0.2+testDp && st.Pos[i][0] > 0.4 && st.Pos[i][0] < 0.6 {
			probe = i
			break
		}
	}
	if probe < 0 {
		t.Fatal("no bottom-row particle in fixture")
	}

	inner := topology.NewInner(body, dom)
	inner.UpdateConfiguration()
	bare, err := NewDensitySummation(inner)
	if err != nil {
		t.Fatal(err)
	}
	dynamics.NewInteractionWithUpdate(bare).Exec(0)
	without := st.Rho[probe]

	rel := topology.NewComplex(inner, topology.NewContact(body, dom, wall))
	rel.Contact.UpdateConfiguration()
	withWall, err := NewDensitySummationWithWall(rel)
	if err != nil {
		t.Fatal(err)
	}
	dynamics.NewInteractionWithUpdate(withWall).Exec(0)

	if without >= 0.9*testRho0 {
		t.Errorf("without wall the bottom row should read low, got %g", without)
	}
	if relErr(st.Rho[probe], testRho0) > 1e-6 {
		t.Errorf("wall should complete the support: want %g, got %g", testRho0, st.Rho[probe])
	}
}
