package ui

import (
	"fmt"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/helix/settings"
)

// SettingsPanel renders one raygui slider per tunable parameter and the
// stop/play button. It is the settings source of the frame driver.
type SettingsPanel struct {
	renderer *Renderer
	store    *settings.Store
	x, y     int32
	width    int32
	visible  bool
}

// NewSettingsPanel creates a settings panel over a store.
func NewSettingsPanel(store *settings.Store, x, y, width int32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		store:    store,
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// Settings returns the current parameter values.
func (p *SettingsPanel) Settings() settings.Settings {
	return p.store.Settings()
}

// SetPosition moves the panel, e.g. after a window resize.
func (p *SettingsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// SetVisible shows or hides the panel.
func (p *SettingsPanel) SetVisible(visible bool) {
	p.visible = visible
}

// IsVisible returns whether the panel is shown.
func (p *SettingsPanel) IsVisible() bool {
	return p.visible
}

// Toggle switches panel visibility.
func (p *SettingsPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Height returns the panel height for its current content.
func (p *SettingsPanel) Height() int32 {
	t := p.renderer.Theme
	rows := int32(len(settings.Descriptors()))
	// title + (label + slider) per parameter + button row
	return t.Padding*2 + t.LineHeight + 4 + rows*(t.LineHeight+t.SliderHeight+6) + t.SliderHeight + 8
}

// Contains reports whether a screen point lies over the visible panel.
func (p *SettingsPanel) Contains(x, y float32) bool {
	if !p.visible {
		return false
	}
	return x >= float32(p.x) && x < float32(p.x+p.width) &&
		y >= float32(p.y) && y < float32(p.y+p.Height())
}

// Draw renders the panel and applies slider changes to the store.
// It returns true when the stop/play button was pressed this frame.
func (p *SettingsPanel) Draw(running bool) bool {
	if !p.visible {
		return false
	}

	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	sliderW := float32(p.width - padding*2)

	r.DrawPanel(p.x, p.y, p.width, p.Height())

	y := p.y + padding
	rl.DrawText("Settings", p.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	current := p.store.Settings()
	for _, d := range settings.Descriptors() {
		value, _ := current.Get(d.Name)
		y = r.DrawLabelValue(p.x+padding, y, d.Label, formatValue(d, value), p.width-padding*2)

		raw := gui.SliderBar(
			rl.Rectangle{X: float32(p.x + padding), Y: float32(y), Width: sliderW, Height: float32(r.Theme.SliderHeight)},
			"", "",
			float32(value), float32(d.Min), float32(d.Max),
		)
		if raw != float32(value) {
			p.apply(d, float64(raw))
		}
		y += r.Theme.SliderHeight + 6
	}

	half := (sliderW - float32(padding)) / 2
	label := "Stop"
	if !running {
		label = "Play"
	}
	pressed := gui.Button(rl.Rectangle{X: float32(p.x + padding), Y: float32(y), Width: half, Height: float32(r.Theme.SliderHeight)}, label)
	if gui.Button(rl.Rectangle{X: float32(p.x+padding) + half + float32(padding), Y: float32(y), Width: half, Height: float32(r.Theme.SliderHeight)}, "Reset") {
		p.store.Reset()
		slog.Info("settings reset", "settings", p.store.Settings().Map())
	}

	return pressed
}

// apply snaps a slider value to its step and stores it.
func (p *SettingsPanel) apply(d settings.Descriptor, raw float64) {
	if err := p.store.Set(d.Name, d.Snap(raw)); err != nil {
		slog.Warn("setting rejected", "name", d.Name, "error", err)
	}
}

// formatValue prints a value with as many decimals as its slider step.
func formatValue(d settings.Descriptor, v float64) string {
	switch {
	case d.Step >= 1:
		return fmt.Sprintf("%.0f", v)
	case d.Step >= 0.1:
		return fmt.Sprintf("%.1f", v)
	case d.Step >= 0.01:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
