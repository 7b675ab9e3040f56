package viz

import (
	"strings"

	"github.com/san-kum/sphlab/internal/sph"
)

// Braille patterns: 2x4 dots per character cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid. A w x h character canvas addresses
// (w*2) x (h*4) sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are
// dropped, so callers can plot without clipping first.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Lit reports whether the sub-pixel at (x, y) is set. Exporters walk the
// sub-pixel grid through it instead of decoding braille cells themselves.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return false
	}

	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// Scatter plots particle positions, mapping bounds onto the full grid.
// The y axis points up, matching the physical convention, and points
// outside the bounds are clipped.
func (c *Canvas) Scatter(points []sph.Vec2, bounds sph.Region) {
	size := bounds.Size()
	if size[0] <= 0 || size[1] <= 0 {
		return
	}
	maxX := float64(c.Width*2 - 1)
	maxY := float64(c.Height*4 - 1)
	for _, p := range points {
		x := int((p[0]-bounds.Min[0])/size[0]*maxX + 0.5)
		y := int((p[1]-bounds.Min[1])/size[1]*maxY + 0.5)
		c.Set(x, c.Height*4-1-y)
	}
}

// Border outlines the full canvas.
func (c *Canvas) Border() {
	w, h := c.Width*2-1, c.Height*4-1
	c.DrawLine(0, 0, w, 0)
	c.DrawLine(w, 0, w, h)
	c.DrawLine(w, h, 0, h)
	c.DrawLine(0, h, 0, 0)
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
