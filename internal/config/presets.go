package config

// Presets holds the named variants of each case. The standard variants
// reproduce the published setups; the coarse and fine ones only change
// resolution so convergence can be eyeballed quickly.
var Presets = map[string]map[string]*Config{
	"poiseuille": {
		// Gravity-driven channel flow at vanishing Reynolds number. The
		// body force along x stands in for the pressure gradient and the
		// plate velocity scale is U = g*H*H/nu.
		"standard": {
			Case:    "poiseuille",
			Spacing: 5.0e-5,
			Fluid: FluidConfig{
				RestDensity: 1000.0,
				Viscosity:   1.0e-6,
				SoundSpeed:  1.0e-3,
				Gravity:     [2]float64{1.0e-4, 0},
			},
			Run: RunConfig{
				EndTime:        20.0,
				OutputInterval: 0.1,
				AdvectionCFL:   DefaultAdvectionCFL,
				AcousticCFL:    DefaultAcousticCFL,
				Parallel:       true,
			},
			Output: OutputConfig{Dir: "output", Fields: true, SVG: true},
		},
		"fine": {
			Case:    "poiseuille",
			Spacing: 2.5e-5,
			Fluid: FluidConfig{
				RestDensity: 1000.0,
				Viscosity:   1.0e-6,
				SoundSpeed:  1.0e-3,
				Gravity:     [2]float64{1.0e-4, 0},
			},
			Run: RunConfig{
				EndTime:        20.0,
				OutputInterval: 0.1,
				AdvectionCFL:   DefaultAdvectionCFL,
				AcousticCFL:    DefaultAcousticCFL,
				Parallel:       true,
			},
			Output: OutputConfig{Dir: "output", Fields: true, SVG: true},
		},
	},
	"dambreak": {
		// Collapsing water column in a closed tank. The sound speed is
		// ten times the dam-toe velocity scale 2*sqrt(g*H) for H = 2.
		"standard": {
			Case:    "dambreak",
			Spacing: 0.05,
			Fluid: FluidConfig{
				RestDensity: 1000.0,
				Viscosity:   1.0e-3,
				SoundSpeed:  88.6,
				Gravity:     [2]float64{0, -9.81},
			},
			Run: RunConfig{
				EndTime:        1.5,
				OutputInterval: 0.02,
				AdvectionCFL:   DefaultAdvectionCFL,
				AcousticCFL:    DefaultAcousticCFL,
				Parallel:       true,
			},
			Output: OutputConfig{Dir: "output", SVG: true, Live: true},
		},
		"coarse": {
			Case:    "dambreak",
			Spacing: 0.1,
			Fluid: FluidConfig{
				RestDensity: 1000.0,
				Viscosity:   1.0e-3,
				SoundSpeed:  88.6,
				Gravity:     [2]float64{0, -9.81},
			},
			Run: RunConfig{
				EndTime:        1.5,
				OutputInterval: 0.02,
				AdvectionCFL:   DefaultAdvectionCFL,
				AcousticCFL:    DefaultAcousticCFL,
				Parallel:       true,
			},
			Output: OutputConfig{Dir: "output", SVG: true, Live: true},
		},
	},
	"freestream": {
		// Uniform stream past a circular cylinder at Re = 100 in
		// normalized units (U = 1, D = 2).
		"standard": {
			Case:    "freestream",
			Spacing: 0.125,
			Fluid: FluidConfig{
				RestDensity: 1.0,
				Viscosity:   0.02,
				SoundSpeed:  10.0,
			},
			Run: RunConfig{
				EndTime:        20.0,
				OutputInterval: 0.5,
				AdvectionCFL:   DefaultAdvectionCFL,
				AcousticCFL:    DefaultAcousticCFL,
				Parallel:       true,
			},
			Output: OutputConfig{Dir: "output", Fields: true, SVG: true},
		},
		"coarse": {
			Case:    "freestream",
			Spacing: 0.25,
			Fluid: FluidConfig{
				RestDensity: 1.0,
				Viscosity:   0.02,
				SoundSpeed:  10.0,
			},
			Run: RunConfig{
				EndTime:        20.0,
				OutputInterval: 0.5,
				AdvectionCFL:   DefaultAdvectionCFL,
				AcousticCFL:    DefaultAcousticCFL,
				Parallel:       true,
			},
			Output: OutputConfig{Dir: "output", Fields: true, SVG: true},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil when either name
// is unknown. Copies keep callers from editing the shared table.
func GetPreset(caseName, preset string) *Config {
	variants, ok := Presets[caseName]
	if !ok {
		return nil
	}
	cfg, ok := variants[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(caseName string) []string {
	variants, ok := Presets[caseName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	return names
}
