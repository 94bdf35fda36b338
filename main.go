package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/helix/config"
	"github.com/pthm-cable/helix/sketch"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output motion and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	exportField := flag.Bool("export-field", false, "Write the generated field to field.csv in the output directory")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := sketch.Options{
		Config:      cfg,
		Seed:        rngSeed,
		Headless:    *headless,
		OutputDir:   *outputDir,
		ExportField: *exportField,
		LogStats:    *logStats,
	}

	if *headless {
		s, err := sketch.New(opts)
		if err != nil {
			slog.Error("failed to start sketch", "error", err)
			os.Exit(1)
		}
		defer s.Unload()

		slog.Info("starting headless run", "seed", rngSeed, "max_frames", *maxFrames)
		s.Run(*maxFrames)
		slog.Info("max frames reached", "frame", s.Frame())
		return
	}

	// Graphical mode
	flags := uint32(rl.FlagWindowResizable)
	if cfg.Screen.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Helix")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s, err := sketch.New(opts)
	if err != nil {
		slog.Error("failed to start sketch", "error", err)
		os.Exit(1)
	}
	defer s.Unload()

	for !rl.WindowShouldClose() {
		s.Update()
		s.Draw()

		if *maxFrames > 0 && s.Frame() >= *maxFrames {
			break
		}
	}
}
