// Shader debug tool - renders one frame of the helix through the post chain
// to a PNG file for inspection, or compiles every embedded shader.
//
// Usage:
//
//	go run ./cmd/shaderdebug -time 12 -progress 0.5 -out debug.png
//	go run ./cmd/shaderdebug -check
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/helix/animation"
	"github.com/pthm-cable/helix/camera"
	"github.com/pthm-cable/helix/config"
	"github.com/pthm-cable/helix/field"
	"github.com/pthm-cable/helix/renderer"
	"github.com/pthm-cable/helix/scene"
	"github.com/pthm-cable/helix/settings"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 1280, "Render width")
	height := flag.Int("height", 720, "Render height")
	seed := flag.Int64("seed", 1, "Field RNG seed")
	elapsed := flag.Float64("time", 10, "Elapsed seconds to render")
	progress := flag.Float64("progress", -1, "Progress override (negative = use config)")
	mouseX := flag.Float64("mouse-x", 0.5, "Normalized pointer x")
	mouseY := flag.Float64("mouse-y", 0.5, "Normalized pointer y")
	check := flag.Bool("check", false, "Compile every embedded shader and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	if *check {
		os.Exit(checkShaders())
	}

	params, err := cfg.Field.Params()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	buf, err := field.Generate(cfg.Field.Count, cfg.Field.RowWidth, params, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate field: %v\n", err)
		os.Exit(1)
	}

	set := settings.Settings{
		Progress:             cfg.Settings.Progress,
		BloomThreshold:       cfg.Settings.BloomThreshold,
		BloomStrength:        cfg.Settings.BloomStrength,
		BloomRadius:          cfg.Settings.BloomRadius,
		AberrationMaxDistort: cfg.Settings.AberrationMaxDistort,
	}
	if *progress >= 0 {
		set.Progress = *progress
	}

	// A single update from a settled pointer: no velocity, follow already at target.
	mouse := mgl64.Vec2{*mouseX, *mouseY}
	pipeline, err := animation.NewPipeline(animation.Config{
		PointerSmoothing: cfg.Animation.PointerSmoothing,
		SpeedSmoothing:   cfg.Animation.SpeedSmoothing,
		SpeedDecay:       cfg.Animation.SpeedDecay,
		RotationPeriod:   cfg.Animation.RotationPeriod,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	u, _, err := pipeline.Update(animation.State{Follow: mouse, Prev: mouse}, *elapsed, mouse, settings.Clamp(set))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid frame input: %v\n", err)
		os.Exit(1)
	}

	cam := camera.New(float32(*width), float32(*height), float32(cfg.Camera.Fov), float32(cfg.Camera.Near), float32(cfg.Camera.Far), float32(cfg.Camera.Distance))
	sc := scene.New()
	r := renderer.New(cam, sc, cfg.Derived.Colors, float32(cfg.Palette.PointSize))
	if err := r.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init renderer: %v\n", err)
		os.Exit(1)
	}
	defer r.Unload()

	r.Upload(buf)
	r.Apply(u)

	// Render the frame and read it back before the buffers swap
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	r.Draw()
	rl.DrawRenderBatchActive()
	img := rl.LoadImageFromScreen()
	rl.EndDrawing()

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Frame rendered to: %s (%dx%d, t=%.2f, progress=%.2f)\n", *outPath, *width, *height, u.Time, u.Progress)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}

// checkShaders compiles each embedded program and returns the exit code.
func checkShaders() int {
	code := 0
	for _, name := range renderer.ShaderNames {
		vs, fs, err := renderer.ShaderSource(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			code = 1
			continue
		}
		shader := rl.LoadShaderFromMemory(vs, fs)
		if !rl.IsShaderValid(shader) {
			fmt.Fprintf(os.Stderr, "%s: compile failed\n", name)
			code = 1
			continue
		}
		rl.UnloadShader(shader)
		fmt.Printf("%s: ok\n", name)
	}
	return code
}
