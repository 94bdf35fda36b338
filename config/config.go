// Package config provides configuration loading and access for the sketch.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/helix/field"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sketch configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Animation AnimationConfig `yaml:"animation"`
	Settings  SettingsConfig  `yaml:"settings"`
	Camera    CameraConfig    `yaml:"camera"`
	Palette   PaletteConfig   `yaml:"palette"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	MSAA      bool `yaml:"msaa"`
}

// FieldConfig holds particle field generation parameters.
// The step fields are optional: nil keeps the preset value, zero is a real value.
type FieldConfig struct {
	Count           int      `yaml:"count"`     // Flat position floats, 3 per particle
	RowWidth        int      `yaml:"row_width"` // Particles per rung
	Preset          string   `yaml:"preset"`    // Named step preset
	ColumnAngleStep *float64 `yaml:"column_angle_step,omitempty"`
	RadiusStep      *float64 `yaml:"radius_step,omitempty"`
	HeightStep      *float64 `yaml:"height_step,omitempty"`
	VerticalOffset  *float64 `yaml:"vertical_offset,omitempty"`
}

// Params resolves the preset and applies the explicit step overrides.
func (f FieldConfig) Params() (field.Params, error) {
	p, err := field.PresetByName(f.Preset)
	if err != nil {
		return field.Params{}, err
	}
	return p.WithOverrides(f.ColumnAngleStep, f.RadiusStep, f.HeightStep, f.VerticalOffset), nil
}

// AnimationConfig holds per-frame smoothing parameters.
type AnimationConfig struct {
	PointerSmoothing float64 `yaml:"pointer_smoothing"`
	SpeedSmoothing   float64 `yaml:"speed_smoothing"`
	SpeedDecay       float64 `yaml:"speed_decay"`
	RotationPeriod   float64 `yaml:"rotation_period"`
}

// SettingsConfig holds the initial values of the tunable panel parameters.
type SettingsConfig struct {
	Progress             float64 `yaml:"progress"`
	BloomThreshold       float64 `yaml:"bloom_threshold"`
	BloomStrength        float64 `yaml:"bloom_strength"`
	BloomRadius          float64 `yaml:"bloom_radius"`
	AberrationMaxDistort float64 `yaml:"aberration_max_distort"`
}

// CameraConfig holds perspective camera parameters.
type CameraConfig struct {
	Fov      float64 `yaml:"fov"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Distance float64 `yaml:"distance"`
}

// PaletteConfig holds the three base particle colors as hex strings.
type PaletteConfig struct {
	Color1    string  `yaml:"color1"`
	Color2    string  `yaml:"color2"`
	Color3    string  `yaml:"color3"`
	PointSize float64 `yaml:"point_size"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"`
	TraceEvery int `yaml:"trace_every"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ParticleCount int           // Field.Count / 3
	ScreenW32     float32       // Screen.Width as float32
	ScreenH32     float32       // Screen.Height as float32
	Colors        [3][3]float32 // Palette colors as normalized RGB
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.ParticleCount = c.Field.Count / 3
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	for i, hex := range []string{c.Palette.Color1, c.Palette.Color2, c.Palette.Color3} {
		rgb, err := ParseHexColor(hex)
		if err != nil {
			return fmt.Errorf("palette color%d: %w", i+1, err)
		}
		c.Derived.Colors[i] = rgb
	}

	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
	if c.Telemetry.TraceEvery < 1 {
		c.Telemetry.TraceEvery = 1
	}
	return nil
}

// ParseHexColor converts "#rrggbb" (or "rrggbb") into normalized RGB.
func ParseHexColor(s string) ([3]float32, error) {
	var rgb [3]float32
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return rgb, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	rgb[0] = float32((v>>16)&0xff) / 255.0
	rgb[1] = float32((v>>8)&0xff) / 255.0
	rgb[2] = float32(v&0xff) / 255.0
	return rgb, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
