package storage

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/sphlab/internal/config"
	"github.com/san-kum/sphlab/internal/kernel"
	"github.com/san-kum/sphlab/internal/sim"
	"github.com/san-kum/sphlab/internal/sph"
)

func testBody(name string) *sph.Body {
	adapt := sph.DefaultAdaptation(0.05)
	mat := sph.NewWeaklyCompressibleFluid(1000, 10, 0.1)
	body := sph.NewBody(name, mat, adapt, kernel.NewWendlandC2(adapt.SmoothingLength()))
	body.GenerateLattice(sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{0.2, 0.2}})
	return body
}

func testConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Output.Dir = dir
	cfg.Output.Fields = true
	cfg.Output.SVG = true
	return cfg
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestRecorderFileLayout(t *testing.T) {
	tmp := t.TempDir()
	body := testBody("water")

	rec, err := New(testConfig(tmp), sph.Region{Min: sph.Vec2{0, 0}, Max: sph.Vec2{0.2, 0.2}}, body)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(rec.Dir()), "box_") {
		t.Errorf("run dir %q should be named case_unixtime", rec.Dir())
	}

	if err := rec.OnOutput(sim.Snapshot{Time: 0}); err != nil {
		t.Fatalf("first flush: %v", err)
	}
	if err := rec.OnOutput(sim.Snapshot{Time: 0.05, Step: 3, Substeps: 9}); err != nil {
		t.Fatalf("second flush: %v", err)
	}

	res := &sim.Result{Time: 0.05, Steps: 3, Substeps: 9, Outputs: 2, Elapsed: time.Second}
	if err := rec.Close(res); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, name := range []string{
		"energy.csv",
		"fields_0000.csv",
		"fields_0001.csv",
		"scatter_0000.svg",
		"scatter_0001.svg",
		"energy.svg",
		"metadata.json",
	} {
		if _, err := os.Stat(filepath.Join(rec.Dir(), name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}

	// No probes registered, so no probes.csv.
	if _, err := os.Stat(filepath.Join(rec.Dir(), "probes.csv")); !os.IsNotExist(err) {
		t.Error("probes.csv should not exist without registered probes")
	}
}

func TestRecorderMetadata(t *testing.T) {
	tmp := t.TempDir()
	body := testBody("water")
	cfg := testConfig(tmp)
	cfg.Spacing = 0.05

	rec, err := New(cfg, sph.Region{Max: sph.Vec2{0.2, 0.2}}, body)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	if err := rec.Close(&sim.Result{Time: 1.0, Steps: 42, Substeps: 126, Outputs: 5}); err != nil {
		t.Fatalf("close: %v", err)
	}

	meta, err := ReadMetadata(rec.Dir())
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}

	if meta.Case != "box" {
		t.Errorf("expected case 'box', got %q", meta.Case)
	}
	if meta.Steps != 42 {
		t.Errorf("expected 42 steps, got %d", meta.Steps)
	}
	if meta.Bodies["water"] != body.N() {
		t.Errorf("expected %d water particles, got %d", body.N(), meta.Bodies["water"])
	}
	if meta.Config == nil || meta.Config.Spacing != 0.05 {
		t.Error("metadata should echo the config")
	}
}

func TestRecorderEnergySeries(t *testing.T) {
	tmp := t.TempDir()
	body := testBody("water")
	cfg := testConfig(tmp)
	cfg.Output.Fields = false
	cfg.Output.SVG = false

	rec, err := New(cfg, sph.Region{Max: sph.Vec2{0.2, 0.2}}, body)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	// At rest the kinetic energy is exactly zero.
	if err := rec.OnOutput(sim.Snapshot{Time: 0}); err != nil {
		t.Fatalf("flush: %v", err)
	}

	st := body.Store()
	st.Vel[0] = sph.Vec2{0.5, 0}
	if err := rec.OnOutput(sim.Snapshot{Time: 0.1}); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := rec.Close(nil); err != nil {
		t.Fatalf("close: %v", err)
	}

	records := readCSV(t, filepath.Join(rec.Dir(), "energy.csv"))
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "time" || records[0][1] != "kinetic_energy" {
		t.Errorf("unexpected header %v", records[0])
	}

	e0, _ := strconv.ParseFloat(records[1][1], 64)
	if e0 != 0 {
		t.Errorf("resting energy should be 0, got %v", e0)
	}

	wantE := 0.5 * st.Mass[0] * 0.25
	e1, _ := strconv.ParseFloat(records[2][1], 64)
	if math.Abs(e1-wantE) > 1e-12*wantE {
		t.Errorf("expected energy %v, got %v", wantE, e1)
	}
	v1, _ := strconv.ParseFloat(records[2][2], 64)
	if math.Abs(v1-0.5) > 1e-12 {
		t.Errorf("expected max speed 0.5, got %v", v1)
	}
}

func TestRecorderProbes(t *testing.T) {
	tmp := t.TempDir()
	body := testBody("water")
	cfg := testConfig(tmp)
	cfg.Output.Fields = false
	cfg.Output.SVG = false

	rec, err := New(cfg, sph.Region{Max: sph.Vec2{0.2, 0.2}}, body)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	sample := 1.5
	rec.AddSeries("u_center", func() float64 { return sample })

	if err := rec.OnOutput(sim.Snapshot{Time: 0}); err != nil {
		t.Fatalf("flush: %v", err)
	}
	sample = 2.5
	if err := rec.OnOutput(sim.Snapshot{Time: 0.1}); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := rec.Close(nil); err != nil {
		t.Fatalf("close: %v", err)
	}

	records := readCSV(t, filepath.Join(rec.Dir(), "probes.csv"))
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][1] != "u_center" {
		t.Errorf("expected probe column 'u_center', got %q", records[0][1])
	}
	if records[1][1] != "1.5" || records[2][1] != "2.5" {
		t.Errorf("probe values not sampled per flush: %v %v", records[1], records[2])
	}
}

func TestRecorderFieldDump(t *testing.T) {
	tmp := t.TempDir()
	body := testBody("water")
	cfg := testConfig(tmp)
	cfg.Output.SVG = false

	rec, err := New(cfg, sph.Region{Max: sph.Vec2{0.2, 0.2}}, body)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	if err := rec.OnOutput(sim.Snapshot{Time: 0}); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := rec.Close(nil); err != nil {
		t.Fatalf("close: %v", err)
	}

	records := readCSV(t, filepath.Join(rec.Dir(), "fields_0000.csv"))
	if len(records) != body.N()+1 {
		t.Fatalf("expected %d rows, got %d", body.N()+1, len(records))
	}

	header := strings.Join(records[0], ",")
	for _, col := range []string{"body", "id", "position_x", "position_y", "velocity_x", "density", "pressure", "mass"} {
		if !strings.Contains(header, col) {
			t.Errorf("header missing column %q", col)
		}
	}

	if records[1][0] != "water" {
		t.Errorf("expected body column 'water', got %q", records[1][0])
	}

	// Densities are initialized to the rest density.
	di := -1
	for i, col := range records[0] {
		if col == "density" {
			di = i
		}
	}
	if di < 0 {
		t.Fatal("no density column")
	}
	rho, _ := strconv.ParseFloat(records[1][di], 64)
	if rho != 1000 {
		t.Errorf("expected rest density 1000, got %v", rho)
	}
}

func TestRecorderRequiresBody(t *testing.T) {
	if _, err := New(testConfig(t.TempDir()), sph.Region{}); err == nil {
		t.Fatal("expected error for recorder without bodies")
	}
}
