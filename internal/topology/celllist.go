package topology

import (
	"github.com/san-kum/sphlab/internal/sph"
)

// Domain is the search space handed to cell lists and relations. Bounds must
// enclose every particle position; axes may be marked periodic, in which case
// displacements use the minimum-image convention and positions can be wrapped
// back after advection.
type Domain struct {
	Bounds    sph.Region
	PeriodicX bool
	PeriodicY bool
}

// Displacement returns a-b, shifted by whole domain lengths on periodic axes
// so that the shortest image is used.
func (d Domain) Displacement(a, b sph.Vec2) sph.Vec2 {
	r := a.Sub(b)
	size := d.Bounds.Size()
	if d.PeriodicX {
		r[0] = minimumImage(r[0], size[0])
	}
	if d.PeriodicY {
		r[1] = minimumImage(r[1], size[1])
	}
	return r
}

// Wrap maps p back into the bounds on periodic axes. Non-periodic axes are
// left untouched.
func (d Domain) Wrap(p sph.Vec2) sph.Vec2 {
	size := d.Bounds.Size()
	if d.PeriodicX {
		p[0] = wrapCoord(p[0], d.Bounds.Min[0], size[0])
	}
	if d.PeriodicY {
		p[1] = wrapCoord(p[1], d.Bounds.Min[1], size[1])
	}
	return p
}

// WrapPositions applies Wrap to every position in place. Drivers call it
// after the advection half-steps, before the neighbor lists are rebuilt.
func (d Domain) WrapPositions(pos []sph.Vec2) {
	if !d.PeriodicX && !d.PeriodicY {
		return
	}
	for i := range pos {
		pos[i] = d.Wrap(pos[i])
	}
}

func minimumImage(x, l float64) float64 {
	for x > l/2 {
		x -= l
	}
	for x < -l/2 {
		x += l
	}
	return x
}

func wrapCoord(x, min, l float64) float64 {
	for x >= min+l {
		x -= l
	}
	for x < min {
		x += l
	}
	return x
}

// CellList is a uniform background grid for neighbor search. Cell edges are
// at least one kernel cutoff, so scanning the 3x3 block around a point covers
// every candidate within the cutoff. Cell slices are reused across rebuilds
// to avoid churn.
type CellList struct {
	dom          Domain
	cols, rows   int
	cellW, cellH float64
	cells        [][]int
}

func NewCellList(dom Domain, cutoff float64) *CellList {
	size := dom.Bounds.Size()
	cols := int(size[0] / cutoff)
	if cols < 1 {
		cols = 1
	}
	rows := int(size[1] / cutoff)
	if rows < 1 {
		rows = 1
	}
	return &CellList{
		dom:   dom,
		cols:  cols,
		rows:  rows,
		cellW: size[0] / float64(cols),
		cellH: size[1] / float64(rows),
		cells: make([][]int, cols*rows),
	}
}

// Rebuild re-buckets all positions. Indices refer into the pos slice.
func (c *CellList) Rebuild(pos []sph.Vec2) {
	for i := range c.cells {
		c.cells[i] = c.cells[i][:0]
	}
	for i, p := range pos {
		ix, iy := c.locate(p)
		idx := iy*c.cols + ix
		c.cells[idx] = append(c.cells[idx], i)
	}
}

// ForNear visits every index bucketed in the 3x3 cell block around p.
// Callers filter by actual distance; the block is a superset of the cutoff
// neighborhood.
func (c *CellList) ForNear(p sph.Vec2, fn func(j int)) {
	ix, iy := c.locate(p)
	var colBuf, rowBuf [3]int
	cols := adjacentIndices(ix, c.cols, c.dom.PeriodicX, &colBuf)
	rows := adjacentIndices(iy, c.rows, c.dom.PeriodicY, &rowBuf)
	for _, r := range rows {
		base := r * c.cols
		for _, cl := range cols {
			for _, j := range c.cells[base+cl] {
				fn(j)
			}
		}
	}
}

func (c *CellList) locate(p sph.Vec2) (int, int) {
	ix := int((p[0] - c.dom.Bounds.Min[0]) / c.cellW)
	iy := int((p[1] - c.dom.Bounds.Min[1]) / c.cellH)
	if ix < 0 {
		ix = 0
	} else if ix >= c.cols {
		ix = c.cols - 1
	}
	if iy < 0 {
		iy = 0
	} else if iy >= c.rows {
		iy = c.rows - 1
	}
	return ix, iy
}

// adjacentIndices collects {i-1, i, i+1} clamped or wrapped to [0, n).
// Wrapping can alias on grids narrower than three cells; duplicates are
// dropped so no bucket is visited twice.
func adjacentIndices(i, n int, periodic bool, buf *[3]int) []int {
	out := buf[:0]
	for d := -1; d <= 1; d++ {
		k := i + d
		if periodic {
			k = (k + n) % n
		} else if k < 0 || k >= n {
			continue
		}
		dup := false
		for _, e := range out {
			if e == k {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, k)
		}
	}
	return out
}
