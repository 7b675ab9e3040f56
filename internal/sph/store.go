package sph

// Canonical field names, used by the registry and by output writers.
const (
	FieldPosition      = "position"
	FieldVelocity      = "velocity"
	FieldAcceleration  = "acceleration"
	FieldPriorAccel    = "prior_acceleration"
	FieldViscousAccel  = "viscous_acceleration"
	FieldDensity       = "density"
	FieldPressure      = "pressure"
	FieldDensityChange = "density_change_rate"
	FieldMass          = "mass"
	FieldVolume        = "volume"
)

// ParticleStore holds per-particle state as parallel arrays, one slice per
// field. All slices always have equal length. Dynamics kernels cache the
// slices they need at binding time; the revision counter tells them when a
// structural change (resize, append, removal) made those views stale.
//
// Structural changes are only legal between interaction passes. Within a
// pass, workers touch disjoint index ranges of fixed-size slices.
type ParticleStore struct {
	n        int
	revision uint64

	Pos      []Vec2
	Vel      []Vec2
	Acc      []Vec2
	AccPrior []Vec2
	AccVisc  []Vec2

	Rho    []float64
	P      []float64
	DrhoDt []float64
	Mass   []float64
	Vol    []float64

	vectors     map[string]*[]Vec2
	scalars     map[string]*[]float64
	vectorNames []string
	scalarNames []string
}

func NewParticleStore(n int) *ParticleStore {
	s := &ParticleStore{
		n:        n,
		Pos:      make([]Vec2, n),
		Vel:      make([]Vec2, n),
		Acc:      make([]Vec2, n),
		AccPrior: make([]Vec2, n),
		AccVisc:  make([]Vec2, n),
		Rho:      make([]float64, n),
		P:        make([]float64, n),
		DrhoDt:   make([]float64, n),
		Mass:     make([]float64, n),
		Vol:      make([]float64, n),
	}
	s.vectors = map[string]*[]Vec2{
		FieldPosition:     &s.Pos,
		FieldVelocity:     &s.Vel,
		FieldAcceleration: &s.Acc,
		FieldPriorAccel:   &s.AccPrior,
		FieldViscousAccel: &s.AccVisc,
	}
	s.scalars = map[string]*[]float64{
		FieldDensity:       &s.Rho,
		FieldPressure:      &s.P,
		FieldDensityChange: &s.DrhoDt,
		FieldMass:          &s.Mass,
		FieldVolume:        &s.Vol,
	}
	s.vectorNames = []string{FieldPosition, FieldVelocity, FieldAcceleration, FieldPriorAccel, FieldViscousAccel}
	s.scalarNames = []string{FieldDensity, FieldPressure, FieldDensityChange, FieldMass, FieldVolume}
	return s
}

// N is the current particle count.
func (s *ParticleStore) N() int { return s.n }

// Revision increments on every structural change. Bindings compare it
// against the value captured at resolution time to detect stale views.
func (s *ParticleStore) Revision() uint64 { return s.revision }

// Vector resolves a vector field by name, or nil if unknown. The returned
// slice is the live field; it is valid until the next structural change.
func (s *ParticleStore) Vector(name string) []Vec2 {
	if p, ok := s.vectors[name]; ok {
		return *p
	}
	return nil
}

// Scalar resolves a scalar field by name, or nil if unknown.
func (s *ParticleStore) Scalar(name string) []float64 {
	if p, ok := s.scalars[name]; ok {
		return *p
	}
	return nil
}

// VectorFields lists vector field names in registration order.
func (s *ParticleStore) VectorFields() []string { return s.vectorNames }

// ScalarFields lists scalar field names in registration order.
func (s *ParticleStore) ScalarFields() []string { return s.scalarNames }

// Resize grows or shrinks every field to n particles, preserving the common
// prefix. New slots are zero-valued.
func (s *ParticleStore) Resize(n int) {
	if n == s.n {
		return
	}
	s.Pos = resizeVec(s.Pos, n)
	s.Vel = resizeVec(s.Vel, n)
	s.Acc = resizeVec(s.Acc, n)
	s.AccPrior = resizeVec(s.AccPrior, n)
	s.AccVisc = resizeVec(s.AccVisc, n)
	s.Rho = resizeScalar(s.Rho, n)
	s.P = resizeScalar(s.P, n)
	s.DrhoDt = resizeScalar(s.DrhoDt, n)
	s.Mass = resizeScalar(s.Mass, n)
	s.Vol = resizeScalar(s.Vol, n)
	s.n = n
	s.revision++
}

// Append adds one zero-valued particle and returns its index.
func (s *ParticleStore) Append() int {
	s.Pos = append(s.Pos, Vec2{})
	s.Vel = append(s.Vel, Vec2{})
	s.Acc = append(s.Acc, Vec2{})
	s.AccPrior = append(s.AccPrior, Vec2{})
	s.AccVisc = append(s.AccVisc, Vec2{})
	s.Rho = append(s.Rho, 0)
	s.P = append(s.P, 0)
	s.DrhoDt = append(s.DrhoDt, 0)
	s.Mass = append(s.Mass, 0)
	s.Vol = append(s.Vol, 0)
	s.n++
	s.revision++
	return s.n - 1
}

// CopyAppend duplicates particle i and returns the new index. Emitters use
// it to clone a particle that crossed the injection boundary.
func (s *ParticleStore) CopyAppend(i int) int {
	s.Pos = append(s.Pos, s.Pos[i])
	s.Vel = append(s.Vel, s.Vel[i])
	s.Acc = append(s.Acc, s.Acc[i])
	s.AccPrior = append(s.AccPrior, s.AccPrior[i])
	s.AccVisc = append(s.AccVisc, s.AccVisc[i])
	s.Rho = append(s.Rho, s.Rho[i])
	s.P = append(s.P, s.P[i])
	s.DrhoDt = append(s.DrhoDt, s.DrhoDt[i])
	s.Mass = append(s.Mass, s.Mass[i])
	s.Vol = append(s.Vol, s.Vol[i])
	s.n++
	s.revision++
	return s.n - 1
}

// SwapRemove deletes particle i by moving the last particle into its slot
// and truncating. Indices held by callers are invalidated.
func (s *ParticleStore) SwapRemove(i int) {
	last := s.n - 1
	s.Pos[i] = s.Pos[last]
	s.Vel[i] = s.Vel[last]
	s.Acc[i] = s.Acc[last]
	s.AccPrior[i] = s.AccPrior[last]
	s.AccVisc[i] = s.AccVisc[last]
	s.Rho[i] = s.Rho[last]
	s.P[i] = s.P[last]
	s.DrhoDt[i] = s.DrhoDt[last]
	s.Mass[i] = s.Mass[last]
	s.Vol[i] = s.Vol[last]
	s.Pos = s.Pos[:last]
	s.Vel = s.Vel[:last]
	s.Acc = s.Acc[:last]
	s.AccPrior = s.AccPrior[:last]
	s.AccVisc = s.AccVisc[:last]
	s.Rho = s.Rho[:last]
	s.P = s.P[:last]
	s.DrhoDt = s.DrhoDt[:last]
	s.Mass = s.Mass[:last]
	s.Vol = s.Vol[:last]
	s.n = last
	s.revision++
}

func resizeVec(v []Vec2, n int) []Vec2 {
	if n <= len(v) {
		return v[:n]
	}
	out := make([]Vec2, n)
	copy(out, v)
	return out
}

func resizeScalar(v []float64, n int) []float64 {
	if n <= len(v) {
		return v[:n]
	}
	out := make([]float64, n)
	copy(out, v)
	return out
}
