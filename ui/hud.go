package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Particles    int
	Frame        int64
	Elapsed      float64
	FPS          int32
	Paused       bool
	Skipped      int64
	Velocity     float64
	RotationY    float64
	MouseX       float64
	MouseY       float64
	Palette      [3]rl.Color
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	sections []SectionDescriptor[HUDData]
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		sections: HUDSections(),
		x:        10,
		y:        40,
		width:    230,
	}
}

// HUDSections describes the motion panel shown under the title.
func HUDSections() []SectionDescriptor[HUDData] {
	return []SectionDescriptor[HUDData]{
		{
			ID:    "frame",
			Title: "Frame",
			Fields: []FieldDescriptor[HUDData]{
				{ID: "elapsed", Label: "Time", Widget: WidgetText, Format: "%.2fs",
					Getter: func(d HUDData) float32 { return float32(d.Elapsed) }},
				{ID: "frame", Label: "Frame", Widget: WidgetText,
					TextGetter: func(d HUDData) string { return fmt.Sprintf("%d", d.Frame) }},
				{ID: "skipped", Label: "Skipped", Widget: WidgetText,
					TextGetter: func(d HUDData) string { return fmt.Sprintf("%d", d.Skipped) },
					Visible:    func(d HUDData) bool { return d.Skipped > 0 }},
			},
		},
		{
			ID:    "motion",
			Title: "Motion",
			Fields: []FieldDescriptor[HUDData]{
				{ID: "velocity", Label: "Velocity", Widget: WidgetBar, Range: DefaultRange(),
					// Typical pointer speeds are well under 0.05 per frame
					Getter: func(d HUDData) float32 { return float32(d.Velocity * 20) }},
				{ID: "mouse_x", Label: "Follow X", Widget: WidgetCenteredBar, Range: CenteredRange(),
					Getter: func(d HUDData) float32 { return float32(d.MouseX*2 - 1) }},
				{ID: "mouse_y", Label: "Follow Y", Widget: WidgetCenteredBar, Range: CenteredRange(),
					Getter: func(d HUDData) float32 { return float32(d.MouseY*2 - 1) }},
				{ID: "rotation", Label: "Rotation", Widget: WidgetText, Format: "%.3f rad",
					Getter: func(d HUDData) float32 { return float32(d.RotationY) }},
			},
		},
		{
			ID:    "palette",
			Title: "Palette",
			Fields: []FieldDescriptor[HUDData]{
				{ID: "color1", Label: "Color 1", Widget: WidgetColorSwatch,
					ColorGetter: func(d HUDData) rl.Color { return d.Palette[0] }},
				{ID: "color2", Label: "Color 2", Widget: WidgetColorSwatch,
					ColorGetter: func(d HUDData) rl.Color { return d.Palette[1] }},
				{ID: "color3", Label: "Color 3", Widget: WidgetColorSwatch,
					ColorGetter: func(d HUDData) rl.Color { return d.Palette[2] }},
			},
		},
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	// Status
	statusText := fmt.Sprintf("%d particles | FPS: %d", data.Particles, data.FPS)
	if data.Paused {
		statusText += " | PAUSED"
	}
	rl.DrawText(statusText, 10+rl.MeasureText(data.Title, 20)+12, 14, 14, rl.LightGray)

	r := h.renderer
	height := SectionsHeight(r.Theme, h.sections, data)
	r.DrawPanel(h.x, h.y, h.width, height+r.Theme.Padding*2)

	y := h.y + r.Theme.Padding
	for _, sd := range h.sections {
		y = DrawSection(r, h.x+r.Theme.Padding, y, sd, data, h.width-r.Theme.Padding*2)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// SectionsHeight returns the height DrawSection would use for the sections.
func SectionsHeight[T any](theme Theme, sections []SectionDescriptor[T], data T) int32 {
	var height int32
	for _, sd := range sections {
		if sd.Visible != nil && !sd.Visible(data) {
			continue
		}
		if sd.Title != "" {
			height += theme.LineHeight
		}
		for _, fd := range sd.Fields {
			if fd.Visible != nil && !fd.Visible(data) {
				continue
			}
			height += fieldHeight(theme, fd.Widget)
		}
		height += 4
	}
	return height
}

func fieldHeight(theme Theme, w WidgetType) int32 {
	switch w {
	case WidgetBar, WidgetCenteredBar:
		return theme.LineHeight + 2
	case WidgetSpacer:
		return 6
	default:
		return theme.LineHeight
	}
}
