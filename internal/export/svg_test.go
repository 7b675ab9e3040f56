package export

import (
	"strings"
	"testing"

	"github.com/san-kum/sphlab/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 4) != "" {
		t.Error("nil canvas should render to an empty string")
	}

	c := viz.NewCanvas(10, 5)
	empty := CanvasToSVG(c, 4)
	if !strings.Contains(empty, `width="80" height="80"`) {
		t.Errorf("canvas dimensions not carried into the document: %q", empty)
	}
	if strings.Contains(empty, "<circle") {
		t.Error("blank canvas should hold no dots")
	}
	if !strings.HasSuffix(empty, "</svg>") {
		t.Error("document not closed")
	}

	c.Set(3, 5)
	c.Set(0, 0)
	svg := CanvasToSVG(c, 4)
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Fatalf("want one dot per lit sub-pixel, got %d", got)
	}
	// sub-pixel (3, 5) sits at the center of its scale-sized cell
	if !strings.Contains(svg, `cx="14.0" cy="22.0"`) {
		t.Errorf("dot not centered on its sub-pixel:\n%s", svg)
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, []float64{2}, 100, 100, "#fff") != "" {
		t.Error("a single sample is not a series")
	}

	// A flat series renders as a mid-height line, padded into view.
	times := []float64{0, 1, 2, 3, 4}
	flat := []float64{5, 5, 5, 5, 5}
	svg := SeriesToSVG(times, flat, 120, 100, "#00ccff")

	if !strings.Contains(svg, `stroke="#00ccff"`) {
		t.Error("stroke color not applied")
	}
	if !strings.Contains(svg, "M10.0,50.0") {
		t.Errorf("first sample misplaced:\n%s", svg)
	}
	if !strings.Contains(svg, " L60.0,50.0") || !strings.Contains(svg, " L110.0,50.0") {
		t.Errorf("flat series should stay at mid height:\n%s", svg)
	}
	if got := strings.Count(svg, " L"); got != len(times)-1 {
		t.Errorf("want %d segments, got %d", len(times)-1, got)
	}
}

func TestSeriesToSVGLengthMismatch(t *testing.T) {
	// The shorter slice bounds the series.
	svg := SeriesToSVG([]float64{0, 1, 2}, []float64{1, 2}, 100, 100, "#fff")
	if svg == "" {
		t.Fatal("two matched samples should render")
	}
	if got := strings.Count(svg, " L"); got != 1 {
		t.Errorf("want a single segment, got %d", got)
	}
}
