// Package storage persists finished and in-flight run data. Every run gets
// its own directory under the configured output root, named case_unixtime,
// holding CSV time series, per-output field dumps, SVG snapshots and a
// final metadata.json.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/sphlab/internal/config"
	"github.com/san-kum/sphlab/internal/export"
	"github.com/san-kum/sphlab/internal/sim"
	"github.com/san-kum/sphlab/internal/sph"
	"github.com/san-kum/sphlab/internal/viz"
)

// Snapshot canvas resolution. Finer than the terminal monitor so the SVG
// scatter resolves individual particles at typical case sizes.
const (
	scatterWidth  = 120
	scatterHeight = 48
	scatterScale  = 4.0
)

type probe struct {
	name string
	fn   func() float64
}

// Recorder captures one run. It implements sim.Observer: every output
// flush appends to energy.csv (and probes.csv when probes are registered),
// and optionally dumps particle fields and an SVG scatter. Close finalizes
// the directory with metadata.json.
type Recorder struct {
	cfg    *config.Config
	bounds sph.Region
	bodies []*sph.Body

	runID string
	dir   string
	seq   int

	energyFile *os.File
	energyW    *csv.Writer

	probes     []probe
	probesFile *os.File
	probesW    *csv.Writer

	times  []float64
	energy []float64

	canvas *viz.Canvas
}

// New creates the run directory and opens the energy series. The bounds
// frame the SVG scatter snapshots.
func New(cfg *config.Config, bounds sph.Region, bodies ...*sph.Body) (*Recorder, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("storage: at least one body required")
	}

	runID := fmt.Sprintf("%s_%d", cfg.Case, time.Now().Unix())
	dir := filepath.Join(cfg.Output.Dir, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("storage: create run dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "energy.csv"))
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "kinetic_energy", "max_speed"}); err != nil {
		f.Close()
		return nil, err
	}

	r := &Recorder{
		cfg:        cfg,
		bounds:     bounds,
		bodies:     bodies,
		runID:      runID,
		dir:        dir,
		energyFile: f,
		energyW:    w,
	}
	if cfg.Output.SVG {
		r.canvas = viz.NewCanvas(scatterWidth, scatterHeight)
	}
	return r, nil
}

// Dir is the run directory created by New.
func (r *Recorder) Dir() string { return r.dir }

// AddSeries registers a named probe sampled at every output flush.
// Register all probes before the run starts; the probes.csv header is
// written on the first flush.
func (r *Recorder) AddSeries(name string, fn func() float64) {
	r.probes = append(r.probes, probe{name: name, fn: fn})
}

// OnOutput implements sim.Observer.
func (r *Recorder) OnOutput(s sim.Snapshot) error {
	ekin, vmax := r.kinetic()
	r.times = append(r.times, s.Time)
	r.energy = append(r.energy, ekin)

	row := []string{formatFloat(s.Time), formatFloat(ekin), formatFloat(vmax)}
	if err := r.energyW.Write(row); err != nil {
		return err
	}
	r.energyW.Flush()
	if err := r.energyW.Error(); err != nil {
		return err
	}

	if len(r.probes) > 0 {
		if err := r.writeProbes(s.Time); err != nil {
			return err
		}
	}
	if r.cfg.Output.Fields {
		if err := r.writeFields(); err != nil {
			return err
		}
	}
	if r.cfg.Output.SVG {
		if err := r.writeScatter(); err != nil {
			return err
		}
	}
	r.seq++
	return nil
}

func (r *Recorder) writeProbes(t float64) error {
	if r.probesW == nil {
		f, err := os.Create(filepath.Join(r.dir, "probes.csv"))
		if err != nil {
			return err
		}
		r.probesFile = f
		r.probesW = csv.NewWriter(f)

		header := make([]string, 0, len(r.probes)+1)
		header = append(header, "time")
		for _, p := range r.probes {
			header = append(header, p.name)
		}
		if err := r.probesW.Write(header); err != nil {
			return err
		}
	}

	row := make([]string, 0, len(r.probes)+1)
	row = append(row, formatFloat(t))
	for _, p := range r.probes {
		row = append(row, formatFloat(p.fn()))
	}
	if err := r.probesW.Write(row); err != nil {
		return err
	}
	r.probesW.Flush()
	return r.probesW.Error()
}

// writeFields dumps every registered field of every body. Bodies share the
// same field registry, so the header comes from the first one.
func (r *Recorder) writeFields() error {
	f, err := os.Create(filepath.Join(r.dir, fmt.Sprintf("fields_%04d.csv", r.seq)))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	st := r.bodies[0].Store()

	header := []string{"body", "id"}
	for _, name := range st.VectorFields() {
		header = append(header, name+"_x", name+"_y")
	}
	header = append(header, st.ScalarFields()...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, b := range r.bodies {
		st := b.Store()
		for i := 0; i < st.N(); i++ {
			row := make([]string, 0, len(header))
			row = append(row, b.Name(), strconv.Itoa(i))
			for _, name := range st.VectorFields() {
				v := st.Vector(name)[i]
				row = append(row, formatFloat(v[0]), formatFloat(v[1]))
			}
			for _, name := range st.ScalarFields() {
				row = append(row, formatFloat(st.Scalar(name)[i]))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func (r *Recorder) writeScatter() error {
	r.canvas.Clear()
	for _, b := range r.bodies {
		st := b.Store()
		r.canvas.Scatter(st.Pos[:st.N()], r.bounds)
	}
	name := fmt.Sprintf("scatter_%04d.svg", r.seq)
	svg := export.CanvasToSVG(r.canvas, scatterScale)
	return os.WriteFile(filepath.Join(r.dir, name), []byte(svg), 0644)
}

func (r *Recorder) kinetic() (ekin, vmax float64) {
	for _, b := range r.bodies {
		st := b.Store()
		for i := 0; i < st.N(); i++ {
			v2 := st.Vel[i].SqrNorm()
			ekin += 0.5 * st.Mass[i] * v2
			if v2 > vmax {
				vmax = v2
			}
		}
	}
	return ekin, math.Sqrt(vmax)
}

// RunMetadata is the metadata.json schema.
type RunMetadata struct {
	ID        string         `json:"id"`
	Case      string         `json:"case"`
	Timestamp time.Time      `json:"timestamp"`
	Spacing   float64        `json:"spacing"`
	Bodies    map[string]int `json:"bodies"`
	Time      float64        `json:"time"`
	Steps     int            `json:"steps"`
	Substeps  int            `json:"substeps"`
	Outputs   int            `json:"outputs"`
	Elapsed   float64        `json:"elapsed_seconds"`
	Config    *config.Config `json:"config"`
}

// Close flushes and closes the series files, writes metadata.json with the
// final counters and a config echo, and renders the energy chart when SVG
// output is on. The Recorder must not be used afterwards. A nil result is
// allowed for aborted runs; the counters stay zero.
func (r *Recorder) Close(res *sim.Result) error {
	r.energyW.Flush()
	err := r.energyW.Error()
	if cerr := r.energyFile.Close(); err == nil {
		err = cerr
	}
	if r.probesFile != nil {
		r.probesW.Flush()
		if perr := r.probesW.Error(); err == nil {
			err = perr
		}
		if cerr := r.probesFile.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}

	counts := make(map[string]int, len(r.bodies))
	for _, b := range r.bodies {
		counts[b.Name()] = b.N()
	}
	meta := RunMetadata{
		ID:        r.runID,
		Case:      r.cfg.Case,
		Timestamp: time.Now(),
		Spacing:   r.cfg.Spacing,
		Bodies:    counts,
		Config:    r.cfg,
	}
	if res != nil {
		meta.Time = res.Time
		meta.Steps = res.Steps
		meta.Substeps = res.Substeps
		meta.Outputs = res.Outputs
		meta.Elapsed = res.Elapsed.Seconds()
	}

	f, err := os.Create(filepath.Join(r.dir, "metadata.json"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if r.cfg.Output.SVG && len(r.times) >= 2 {
		svg := export.SeriesToSVG(r.times, r.energy, 640, 320, "#00ccff")
		return os.WriteFile(filepath.Join(r.dir, "energy.svg"), []byte(svg), 0644)
	}
	return nil
}

// ReadMetadata loads the metadata of a finished run directory.
func ReadMetadata(dir string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
