package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSpacing      = 0.05
	DefaultRestDensity  = 1000.0
	DefaultViscosity    = 1.0e-3
	DefaultSoundSpeed   = 20.0
	DefaultEndTime      = 1.0
	DefaultOutputEvery  = 0.05
	DefaultAdvectionCFL = 0.25
	DefaultAcousticCFL  = 0.6
)

// Config carries the tunable numbers of a case. Geometry is fixed by the
// case driver itself; the config only scales resolution, material and run
// control around it.
type Config struct {
	Case    string       `yaml:"case" json:"case"`
	Spacing float64      `yaml:"spacing" json:"spacing"`
	Fluid   FluidConfig  `yaml:"fluid" json:"fluid"`
	Run     RunConfig    `yaml:"run" json:"run"`
	Output  OutputConfig `yaml:"output" json:"output"`
}

type FluidConfig struct {
	RestDensity float64    `yaml:"rest_density" json:"rest_density"`
	Viscosity   float64    `yaml:"viscosity" json:"viscosity"`
	SoundSpeed  float64    `yaml:"sound_speed" json:"sound_speed"`
	Gravity     [2]float64 `yaml:"gravity" json:"gravity"`
}

type RunConfig struct {
	EndTime        float64 `yaml:"end_time" json:"end_time"`
	OutputInterval float64 `yaml:"output_interval" json:"output_interval"`
	AdvectionCFL   float64 `yaml:"advection_cfl" json:"advection_cfl"`
	AcousticCFL    float64 `yaml:"acoustic_cfl" json:"acoustic_cfl"`
	Parallel       bool    `yaml:"parallel" json:"parallel"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir" json:"dir"`
	Fields bool   `yaml:"fields" json:"fields"`
	SVG    bool   `yaml:"svg" json:"svg"`
	Live   bool   `yaml:"live" json:"live"`
}

func DefaultConfig() *Config {
	return &Config{
		Case:    "box",
		Spacing: DefaultSpacing,
		Fluid: FluidConfig{
			RestDensity: DefaultRestDensity,
			Viscosity:   DefaultViscosity,
			SoundSpeed:  DefaultSoundSpeed,
			Gravity:     [2]float64{0, -9.81},
		},
		Run: RunConfig{
			EndTime:        DefaultEndTime,
			OutputInterval: DefaultOutputEvery,
			AdvectionCFL:   DefaultAdvectionCFL,
			AcousticCFL:    DefaultAcousticCFL,
			Parallel:       true,
		},
		Output: OutputConfig{Dir: "output", Fields: true},
	}
}

// Load reads a config file over the defaults, so partial files only
// override what they name.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ForCase returns the standard preset for a case, overlaid with an
// optional case.yaml from the working directory. Unknown cases start from
// the defaults.
func ForCase(name string) (*Config, error) {
	cfg := GetPreset(name, "standard")
	if cfg == nil {
		cfg = DefaultConfig()
		cfg.Case = name
	}

	data, err := os.ReadFile("case.yaml")
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse case.yaml: %w", err)
	}
	return cfg, nil
}
