// Helix field preview tool - interactive field shape tuning with sliders.
//
// Usage: go run ./cmd/helixpreview
package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/helix/config"
	"github.com/pthm-cable/helix/field"
)

const (
	windowWidth  = 1100
	windowHeight = 760
	previewSize  = 340
	gridSize     = 256
	panelWidth   = windowWidth - previewSize*2 - 40

	previewCount = 60000 // 20000 particles keep regeneration interactive
	viewExtent   = 3.0
)

// PreviewParams holds the tunable field shape.
type PreviewParams struct {
	Preset   string
	Params   field.Params
	RowWidth int
	Seed     int64
}

func defaultPreview() PreviewParams {
	return PreviewParams{
		Preset:   field.PresetDNA,
		Params:   field.DefaultParams(),
		RowWidth: field.DefaultRowWidth,
		Seed:     12345,
	}
}

// slider describes one float parameter row of the panel.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(p *PreviewParams) *float64
}

var sliders = []slider{
	{"Column angle step (turns)", 0.0005, 0.2, "%.4f", func(p *PreviewParams) *float64 { return &p.Params.ColumnAngleStep }},
	{"Radius step", 0.005, 0.4, "%.3f", func(p *PreviewParams) *float64 { return &p.Params.RadiusStep }},
	{"Height step", 0.001, 0.05, "%.3f", func(p *PreviewParams) *float64 { return &p.Params.HeightStep }},
	{"Vertical offset", 0, 5, "%.2f", func(p *PreviewParams) *float64 { return &p.Params.VerticalOffset }},
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	rl.InitWindow(windowWidth, windowHeight, "Helix Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultPreview()

	views := []View{SideView, TopView}
	grids := make([][]float32, len(views))
	textures := make([]rl.Texture2D, len(views))
	for i := range views {
		grids[i] = make([]float32, gridSize*gridSize)
		img := rl.GenImageColor(gridSize, gridSize, rl.Black)
		textures[i] = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		defer rl.UnloadTexture(textures[i])
	}

	var buf *field.Buffer
	var summary field.Summary
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			var err error
			buf, err = field.Generate(previewCount, params.RowWidth, params.Params, rand.New(rand.NewSource(params.Seed)))
			if err != nil {
				slog.Error("generating preview field", "error", err)
				os.Exit(1)
			}
			summary = field.Summarize(buf)
			for i, v := range views {
				Rasterize(grids[i], gridSize, buf, v, viewExtent)
				Normalize(grids[i])
				updateTexture(textures[i], grids[i], gridSize)
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Previews
		for i, v := range views {
			x := float32(10 + i*(previewSize+10))
			rl.DrawTexturePro(
				textures[i],
				rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
				rl.Rectangle{X: x, Y: 10, Width: previewSize, Height: previewSize},
				rl.Vector2{X: 0, Y: 0},
				0,
				rl.White,
			)
			rl.DrawRectangleLines(int32(x), 10, previewSize, previewSize, rl.DarkGray)
			rl.DrawText(v.Name, int32(x), previewSize+16, 16, rl.DarkGray)
		}

		// Stats
		statsY := int32(previewSize + 45)
		rl.DrawText(fmt.Sprintf("Particles: %d  Columns: %d", summary.Particles, summary.Columns), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("X: %.2f..%.2f  Y: %.2f..%.2f  Z: %.2f..%.2f",
			summary.Bounds.Min[0], summary.Bounds.Max[0],
			summary.Bounds.Min[1], summary.Bounds.Max[1],
			summary.Bounds.Min[2], summary.Bounds.Max[2]), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize*2 + 30)
		panelY := float32(10)

		rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Presets
		rl.DrawText("Preset", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		for i, name := range field.PresetNames() {
			bx := panelX + float32(i%2)*(float32(panelWidth-20)/2)
			by := panelY + float32(i/2)*34
			label := name
			if name == params.Preset {
				label = "> " + name
			}
			if gui.Button(rl.Rectangle{X: bx, Y: by, Width: float32(panelWidth-30) / 2, Height: 28}, label) {
				p, err := field.PresetByName(name)
				if err == nil {
					params.Preset = name
					params.Params = p
					needsRegen = true
				}
			}
		}
		panelY += float32((len(field.PresetNames())+1)/2)*34 + 10

		for _, s := range sliders {
			value := s.value(&params)
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*value), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != float32(*value) {
				*value = float64(next)
				params.Preset = ""
				needsRegen = true
			}
			panelY += 35
		}

		// Row width slider
		rl.DrawText("Row width (particles per rung)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRow := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", "",
			float32(params.RowWidth), 2, 400,
		)
		rl.DrawText(fmt.Sprintf("%d", params.RowWidth), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newRow) != params.RowWidth {
			params.RowWidth = int(newRow)
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultPreview()
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		out, err := fieldYAML(params)
		if err != nil {
			slog.Error("marshaling field section", "error", err)
		}
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) && err == nil {
			rl.SetClipboardText(out)
		}

		rl.EndDrawing()
	}
}

// fieldYAML renders the field section of config.yaml for the current params.
// A named preset is written as-is; tuned values become explicit overrides.
func fieldYAML(p PreviewParams) (string, error) {
	steps := p.Params
	section := config.FieldConfig{
		Count:          field.DefaultCount,
		RowWidth:       p.RowWidth,
		Preset:         p.Preset,
		HeightStep:     &steps.HeightStep,
		VerticalOffset: &steps.VerticalOffset,
	}
	if p.Preset == "" {
		section.Preset = field.PresetDNA
		section.ColumnAngleStep = &steps.ColumnAngleStep
		section.RadiusStep = &steps.RadiusStep
	}
	data, err := yaml.Marshal(map[string]config.FieldConfig{"field": section})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// updateTexture updates the GPU texture from the grid values
func updateTexture(texture rl.Texture2D, grid []float32, size int) {
	pixels := make([]color.RGBA, size*size)
	for i, v := range grid {
		pixels[i] = densityColor(v)
	}
	rl.UpdateTexture(texture, pixels)
}
