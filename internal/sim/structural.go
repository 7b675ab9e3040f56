package sim

import (
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/topology"
)

// PeriodicWrap maps positions back into the domain on periodic axes.
// Wrapped coordinates jump by a whole domain length, so it is scheduled
// as a structural operation and never runs while neighbor lists are live.
type PeriodicWrap struct {
	dom  topology.Domain
	body *sph.Body
}

func NewPeriodicWrap(dom topology.Domain, body *sph.Body) *PeriodicWrap {
	return &PeriodicWrap{dom: dom, body: body}
}

func (p *PeriodicWrap) Exec(_ float64) {
	st := p.body.Store()
	p.dom.WrapPositions(st.Pos[:st.N()])
}
