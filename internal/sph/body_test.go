package sph

import (
	"math"
	"testing"

	"github.com/san-kum/sphlab/internal/kernel"
)

func testBody(name string, mat Material, dp float64) *Body {
	adapt := DefaultAdaptation(dp)
	return NewBody(name, mat, adapt, kernel.NewWendlandC2(adapt.SmoothingLength()))
}

func TestGenerateLattice(t *testing.T) {
	const dp = 0.1
	b := testBody("water", NewWeaklyCompressibleFluid(1000, 10, 1e-3), dp)

	n := b.GenerateLattice(Region{Max: Vec2{1, 0.5}})
	if n != 50 {
		t.Fatalf("lattice count = %d, want 50", n)
	}
	if b.N() != 50 {
		t.Fatalf("body N = %d, want 50", b.N())
	}

	st := b.Store()
	if st.Pos[0] != (Vec2{dp / 2, dp / 2}) {
		t.Errorf("first particle at %v, want offset half a spacing", st.Pos[0])
	}
	region := Region{Max: Vec2{1, 0.5}}
	for i := 0; i < st.N(); i++ {
		if !region.Contains(st.Pos[i]) {
			t.Fatalf("particle %d at %v outside fill region", i, st.Pos[i])
		}
		if math.Abs(st.Mass[i]-1000*dp*dp) > 1e-12 {
			t.Fatalf("particle %d mass = %v, want rho0*dp^2", i, st.Mass[i])
		}
		if st.Rho[i] != 1000 || st.Vol[i] != dp*dp {
			t.Fatalf("particle %d rho/vol not initialized from material", i)
		}
	}
}

func TestGenerateLatticeComposite(t *testing.T) {
	b := testBody("wall", NewSolid(1000), 0.1)

	// Two strips of a channel wall, filled separately.
	n1 := b.GenerateLattice(Region{Min: Vec2{0, -0.2}, Max: Vec2{1, 0}})
	n2 := b.GenerateLattice(Region{Min: Vec2{0, 0.5}, Max: Vec2{1, 0.7}})
	if n1 != 20 || n2 != 20 {
		t.Fatalf("strip counts = %d, %d, want 20 each", n1, n2)
	}
	if b.N() != 40 {
		t.Errorf("composite body N = %d, want 40", b.N())
	}
}

func TestGenerateLatticeDegenerateRegion(t *testing.T) {
	b := testBody("water", NewWeaklyCompressibleFluid(1000, 10, 1e-3), 0.1)
	if n := b.GenerateLattice(Region{Max: Vec2{0.01, 0.01}}); n != 0 {
		t.Errorf("sub-spacing region produced %d particles, want 0", n)
	}
}

func TestPlaceParticles(t *testing.T) {
	b := testBody("probes", Inert(), 0.1)
	pts := []Vec2{{0.1, 0.2}, {0.5, 0.2}, {0.9, 0.2}}
	b.PlaceParticles(pts...)

	if b.N() != 3 {
		t.Fatalf("N = %d, want 3", b.N())
	}
	for i, p := range pts {
		if b.Store().Pos[i] != p {
			t.Errorf("probe %d at %v, want %v", i, b.Store().Pos[i], p)
		}
	}
}

func TestAdaptationDerivedQuantities(t *testing.T) {
	a := DefaultAdaptation(0.02)
	if math.Abs(a.SmoothingLength()-0.026) > 1e-15 {
		t.Errorf("smoothing length = %v, want 0.026", a.SmoothingLength())
	}
	if a.ParticleVolume() != 0.02*0.02 {
		t.Errorf("particle volume = %v, want dp^2", a.ParticleVolume())
	}
	if NewAdaptation(0.02, 1.0).SmoothingLength() != 0.02 {
		t.Error("custom smoothing ratio ignored")
	}
}
