// Package sketch wires the field, the animation pipeline and the frame
// driver to either the raylib window or a headless runner.
package sketch

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/pthm-cable/helix/animation"
	"github.com/pthm-cable/helix/camera"
	"github.com/pthm-cable/helix/config"
	"github.com/pthm-cable/helix/field"
	"github.com/pthm-cable/helix/input"
	"github.com/pthm-cable/helix/loop"
	"github.com/pthm-cable/helix/renderer"
	"github.com/pthm-cable/helix/scene"
	"github.com/pthm-cable/helix/settings"
	"github.com/pthm-cable/helix/telemetry"
	"github.com/pthm-cable/helix/ui"
)

// Headless runs use a fixed frame step and a pointer circling the center.
const (
	HeadlessStep        = 1.0 / 60.0
	headlessOrbitRadius = 0.2
	headlessOrbitPeriod = 240 // frames per revolution
)

// Options configures a sketch.
type Options struct {
	Config      *config.Config // nil = config.Cfg()
	Seed        int64
	Headless    bool
	OutputDir   string // empty disables CSV output
	ExportField bool   // also write field.csv to OutputDir
	LogStats    bool
}

// Sketch holds the complete runtime state.
type Sketch struct {
	cfg *config.Config

	cam    *camera.Camera
	scene  *scene.Scene
	store  *settings.Store
	driver *loop.Driver
	buffer *field.Buffer

	// Graphics, nil when headless
	renderer *renderer.Renderer
	panel    *ui.SettingsPanel
	hud      *ui.HUD

	// Telemetry
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	headless bool
	frame    int64
	width    int
	height   int
}

// New builds a sketch and generates its field. In graphical mode the raylib
// window must already exist.
func New(opts Options) (*Sketch, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	params, err := cfg.Field.Params()
	if err != nil {
		return nil, err
	}
	pipeline, err := animation.NewPipeline(pipelineConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("animation config: %w", err)
	}

	s := &Sketch{
		cfg:       cfg,
		cam:       camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, float32(cfg.Camera.Fov), float32(cfg.Camera.Near), float32(cfg.Camera.Far), float32(cfg.Camera.Distance)),
		scene:     scene.New(),
		store:     settings.NewStore(initialSettings(cfg)),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.PerfWindow),
		logStats:  opts.LogStats,
		headless:  opts.Headless,
		width:     cfg.Screen.Width,
		height:    cfg.Screen.Height,
	}
	s.perf.SetBudget(cfg.Screen.TargetFPS)

	driverOpts := loop.Options{
		Pipeline: pipeline,
		Params:   params,
		Rng:      rand.New(rand.NewSource(opts.Seed)),
	}
	if opts.Headless {
		driverOpts.Renderer = &sceneRenderer{scene: s.scene}
		driverOpts.Pointer = input.NewOrbit(headlessOrbitRadius, 2*math.Pi/headlessOrbitPeriod)
		driverOpts.Settings = s.store
		driverOpts.Clock = loop.NewStepClock(HeadlessStep)
	} else {
		if err := s.initGraphics(); err != nil {
			return nil, err
		}
		driverOpts.Renderer = s.renderer
		driverOpts.Pointer = input.NewMouse(s.cam, s.panel.Contains)
		driverOpts.Settings = s.panel
		driverOpts.Clock = loop.NewSystemClock()
	}

	s.driver, err = loop.NewDriver(driverOpts)
	if err != nil {
		s.Unload()
		return nil, err
	}
	s.buffer, err = s.driver.Initialize(cfg.Field.Count, cfg.Field.RowWidth)
	if err != nil {
		s.Unload()
		return nil, err
	}
	slog.Info("field generated", "seed", opts.Seed, "preset", cfg.Field.Preset, "summary", field.Summarize(s.buffer))

	s.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.Unload()
		return nil, err
	}
	if err := s.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	if opts.ExportField {
		if err := s.output.WriteField(s.buffer); err != nil {
			slog.Error("failed to write field", "error", err)
		}
	}

	return s, nil
}

func pipelineConfig(cfg *config.Config) animation.Config {
	return animation.Config{
		PointerSmoothing: cfg.Animation.PointerSmoothing,
		SpeedSmoothing:   cfg.Animation.SpeedSmoothing,
		SpeedDecay:       cfg.Animation.SpeedDecay,
		RotationPeriod:   cfg.Animation.RotationPeriod,
	}
}

func initialSettings(cfg *config.Config) settings.Settings {
	return settings.Settings{
		Progress:             cfg.Settings.Progress,
		BloomThreshold:       cfg.Settings.BloomThreshold,
		BloomStrength:        cfg.Settings.BloomStrength,
		BloomRadius:          cfg.Settings.BloomRadius,
		AberrationMaxDistort: cfg.Settings.AberrationMaxDistort,
	}
}

// Frame returns the number of frame callbacks processed.
func (s *Sketch) Frame() int64 {
	return s.frame
}

// Driver exposes the frame driver.
func (s *Sketch) Driver() *loop.Driver {
	return s.driver
}

// Scene exposes the scene holding the point cloud.
func (s *Sketch) Scene() *scene.Scene {
	return s.scene
}

// Settings exposes the live settings store.
func (s *Sketch) Settings() *settings.Store {
	return s.store
}

// TogglePause switches between running and paused.
func (s *Sketch) TogglePause() bool {
	running := s.driver.Toggle()
	slog.Info("animation toggled", "running", running, "frame", s.frame)
	return running
}

// record accounts for one frame in the trace and the motion window.
func (s *Sketch) record(outcome loop.Outcome) {
	s.frame++
	u := s.driver.Uniforms()
	s.collector.Record(outcome, u)

	if outcome == loop.Updated && s.frame%int64(s.cfg.Telemetry.TraceEvery) == 0 {
		if err := s.output.WriteTrace(telemetry.NewFrameRecord(s.frame, u)); err != nil {
			slog.Error("failed to write trace", "error", err)
		}
	}

	s.flushTelemetry()
}

// flushTelemetry emits the motion and perf windows when one is complete.
func (s *Sketch) flushTelemetry() {
	if !s.collector.ShouldFlush(s.frame) {
		return
	}

	stats := s.collector.Flush(s.frame)
	perfStats := s.perf.Stats()

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Unload frees resources and closes output files.
func (s *Sketch) Unload() {
	if s.renderer != nil {
		s.renderer.Unload()
	}
	if err := s.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if s.driver != nil {
		frames, updates, rejected := s.driver.Stats()
		slog.Info("sketch stopped", "frames", frames, "updates", updates, "rejected", rejected)
	}
}
