package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/sphlab/internal/sph"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("top-left dot: got %U, want U+2801", c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0] != 0x2801|0x80 {
		t.Errorf("second dot in same cell: got %U", c.Grid[0][0])
	}

	// Out-of-range coordinates are dropped silently.
	c.Set(-1, 0)
	c.Set(0, -3)
	c.Set(99, 0)
	c.Set(0, 99)
}

func TestCanvasLit(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(3, 5)

	if !c.Lit(3, 5) {
		t.Error("set sub-pixel should read back lit")
	}
	if c.Lit(2, 5) || c.Lit(3, 4) {
		t.Error("neighboring sub-pixels should stay dark")
	}
	if c.Lit(-1, 0) || c.Lit(0, 99) {
		t.Error("out-of-range queries should report dark")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(1, 1)
	c.Clear()

	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) not cleared: %U", i, j, c.Grid[i][j])
			}
		}
	}
}

func TestCanvasScatter(t *testing.T) {
	c := NewCanvas(4, 4)
	bounds := sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{1, 1}}

	// Bottom-left and top-right corners of the physical domain.
	c.Scatter([]sph.Vec2{{0, 0}, {1, 1}}, bounds)

	if c.Grid[3][0] == 0x2800 {
		t.Error("physical origin should land in the bottom-left cell")
	}
	if c.Grid[0][3] == 0x2800 {
		t.Error("physical max should land in the top-right cell")
	}
	if c.Grid[1][1] != 0x2800 {
		t.Error("interior cells should stay empty")
	}
}

func TestCanvasScatterClips(t *testing.T) {
	c := NewCanvas(4, 4)
	bounds := sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{1, 1}}

	c.Scatter([]sph.Vec2{{2, 0.5}, {-1, 0.5}, {0.5, 3}}, bounds)

	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("out-of-bounds point lit cell (%d,%d)", i, j)
			}
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()

	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Errorf("expected 3 runes per line, got %d", len([]rune(line)))
		}
	}
}

func TestCanvasBorder(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Border()

	corners := [][2]int{{0, 0}, {0, 3}, {3, 0}, {3, 3}}
	for _, rc := range corners {
		if c.Grid[rc[0]][rc[1]] == 0x2800 {
			t.Errorf("border corner cell (%d,%d) not lit", rc[0], rc[1])
		}
	}
}
