package fluid

import (
	"fmt"

	"github.com/san-kum/sphlab/internal/dynamics"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/topology"
)

// VelocityProbe interpolates the target body's velocity at fixed probe
// points with Shepard-normalized kernel weights. Probe points are the
// particles of an observation body; the contact relation supplies their
// neighborhoods in the target. A probe with no neighbors in support reads
// zero.
type VelocityProbe struct {
	dynamics.Binding
	contact *topology.ContactRelation
	target  []contactFields

	// Values holds the interpolated velocity per probe point after a sweep.
	Values []sph.Vec2
}

func NewVelocityProbe(contact *topology.ContactRelation) (*VelocityProbe, error) {
	probes := contact.Body()
	if probes.N() == 0 {
		return nil, fmt.Errorf("velocity probe: body %q: %w", probes.Name(), sph.ErrEmptyBody)
	}
	if len(contact.Targets()) != 1 {
		return nil, fmt.Errorf("velocity probe: body %q: want exactly one target, have %d",
			probes.Name(), len(contact.Targets()))
	}
	return &VelocityProbe{
		Binding: dynamics.Bind(probes),
		contact: contact,
		target:  bindContacts(contact.Targets()),
		Values:  make([]sph.Vec2, probes.N()),
	}, nil
}

func (o *VelocityProbe) Rebind() {
	o.Sync()
	o.Values = scratchVec(o.Values, o.Body().N())
	refreshContacts(o.target)
}

func (o *VelocityProbe) Interact(i int, _ float64) {
	t := &o.target[0]
	var num sph.Vec2
	den := 0.0
	for _, nb := range o.contact.Hood(0, i) {
		w := nb.W * t.vol[nb.J]
		num = num.Add(t.vel[nb.J].Scale(w))
		den += w
	}
	if den > 0 {
		o.Values[i] = num.Scale(1 / den)
	} else {
		o.Values[i] = sph.Vec2{}
	}
}

// ScalarProbe interpolates any registered scalar field of the target body,
// resolved by name through the store registry.
type ScalarProbe struct {
	dynamics.Binding
	contact *topology.ContactRelation
	field   string

	store *sph.ParticleStore
	rev   uint64
	vals  []float64
	vol   []float64

	Values []float64
}

func NewScalarProbe(contact *topology.ContactRelation, field string) (*ScalarProbe, error) {
	probes := contact.Body()
	if probes.N() == 0 {
		return nil, fmt.Errorf("scalar probe: body %q: %w", probes.Name(), sph.ErrEmptyBody)
	}
	if len(contact.Targets()) != 1 {
		return nil, fmt.Errorf("scalar probe: body %q: want exactly one target, have %d",
			probes.Name(), len(contact.Targets()))
	}

	target := contact.Targets()[0]
	st := target.Store()
	vals := st.Scalar(field)
	if vals == nil {
		return nil, fmt.Errorf("scalar probe: target %q has no scalar field %q", target.Name(), field)
	}
	return &ScalarProbe{
		Binding: dynamics.Bind(probes),
		contact: contact,
		field:   field,
		store:   st,
		rev:     st.Revision(),
		vals:    vals,
		vol:     st.Vol,
		Values:  make([]float64, probes.N()),
	}, nil
}

func (o *ScalarProbe) Rebind() {
	o.Sync()
	o.Values = scratchScalar(o.Values, o.Body().N())
	if o.store.Revision() != o.rev {
		o.rev = o.store.Revision()
		o.vals = o.store.Scalar(o.field)
		o.vol = o.store.Vol
	}
}

func (o *ScalarProbe) Interact(i int, _ float64) {
	num, den := 0.0, 0.0
	for _, nb := range o.contact.Hood(0, i) {
		w := nb.W * o.vol[nb.J]
		num += o.vals[nb.J] * w
		den += w
	}
	if den > 0 {
		o.Values[i] = num / den
	} else {
		o.Values[i] = 0
	}
}
