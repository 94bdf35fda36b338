package sketch

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/helix/loop"
	"github.com/pthm-cable/helix/renderer"
	"github.com/pthm-cable/helix/telemetry"
	"github.com/pthm-cable/helix/ui"
)

const (
	windowTitle = "Helix"
	controls    = "SPACE: stop/play | H: settings panel | F11: fullscreen"
	panelWidth  = 260
	panelMargin = 10
)

// initGraphics creates the renderer and the overlay UI. The window must exist.
func (s *Sketch) initGraphics() error {
	cfg := s.cfg
	s.renderer = renderer.New(s.cam, s.scene, cfg.Derived.Colors, float32(cfg.Palette.PointSize))
	if err := s.renderer.Init(); err != nil {
		return fmt.Errorf("renderer init: %w", err)
	}
	s.renderer.OnPhase = s.perf.StartPhase

	s.panel = ui.NewSettingsPanel(s.store, int32(s.width-panelWidth-panelMargin), panelMargin, panelWidth)
	s.hud = ui.NewHUD()
	return nil
}

// Update handles keyboard input and window changes. Call once per frame
// before Draw.
func (s *Sketch) Update() {
	s.perf.StartFrame()
	s.perf.StartPhase(telemetry.PhaseInput)

	s.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		s.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		s.panel.Toggle()
	}
}

// handleResize forwards a window size change to the driver and moves the panel.
func (s *Sketch) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	s.driver.Resize(w, h)
	s.panel.SetPosition(int32(w-panelWidth-panelMargin), panelMargin)
	slog.Info("window resized", "width", w, "height", h)
}

// Draw runs one frame: the driver updates and renders the scene, then the
// overlays are drawn on top.
func (s *Sketch) Draw() {
	s.perf.StartPhase(telemetry.PhaseRender)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	s.perf.StartPhase(telemetry.PhaseUpdate)
	outcome := s.driver.Frame()
	if outcome != loop.Updated {
		// hold the last image while paused or after a rejected frame
		s.renderer.Draw()
	}

	s.perf.StartPhase(telemetry.PhaseUI)
	s.drawOverlays()

	s.perf.StartPhase(telemetry.PhaseTrace)
	s.record(outcome)

	rl.EndDrawing()
	s.perf.EndFrame()
	s.perf.RecordPresent()
}

func (s *Sketch) drawOverlays() {
	_, _, rejected := s.driver.Stats()
	u := s.driver.Uniforms()

	s.hud.Draw(ui.HUDData{
		Title:        windowTitle,
		Particles:    s.buffer.Len(),
		Frame:        s.frame,
		Elapsed:      u.Time,
		FPS:          rl.GetFPS(),
		Paused:       !s.driver.Running(),
		Skipped:      rejected,
		Velocity:     u.Velocity,
		RotationY:    u.RotationY,
		MouseX:       u.Mouse.X(),
		MouseY:       u.Mouse.Y(),
		Palette:      s.palette(),
		ScreenWidth:  int32(s.width),
		ScreenHeight: int32(s.height),
	})
	s.hud.DrawControls(int32(s.width), int32(s.height), controls)

	if s.panel.Draw(s.driver.Running()) {
		s.TogglePause()
	}
}

func (s *Sketch) palette() [3]rl.Color {
	var out [3]rl.Color
	for i, c := range s.cfg.Derived.Colors {
		out[i] = rl.NewColor(uint8(c[0]*255), uint8(c[1]*255), uint8(c[2]*255), 255)
	}
	return out
}
