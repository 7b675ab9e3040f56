package fluid

import (
	"github.com/san-kum/sphlab/internal/sph"
)

// contactFields caches the neighbor-body field views a WithWall operation
// reads. Each target tracks its own store revision, so a structural change
// in any contact body re-resolves just that body's views.
type contactFields struct {
	store *sph.ParticleStore
	rev   uint64
	vel   []sph.Vec2
	vol   []float64
}

func bindContacts(targets []*sph.Body) []contactFields {
	cs := make([]contactFields, len(targets))
	for i, t := range targets {
		st := t.Store()
		cs[i] = contactFields{store: st, rev: st.Revision(), vel: st.Vel, vol: st.Vol}
	}
	return cs
}

func refreshContacts(cs []contactFields) {
	for i := range cs {
		st := cs[i].store
		if st.Revision() == cs[i].rev {
			continue
		}
		cs[i].rev = st.Revision()
		cs[i].vel = st.Vel
		cs[i].vol = st.Vol
	}
}

// scratchScalar returns a length-n scratch slice, reusing capacity. Contents
// are unspecified; callers overwrite every slot each sweep.
func scratchScalar(v []float64, n int) []float64 {
	if n <= cap(v) {
		return v[:n]
	}
	return make([]float64, n)
}

func scratchVec(v []sph.Vec2, n int) []sph.Vec2 {
	if n <= cap(v) {
		return v[:n]
	}
	return make([]sph.Vec2, n)
}
