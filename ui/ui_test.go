package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/helix/settings"
)

func TestSettingsPanelApplySnapsAndClamps(t *testing.T) {
	store := settings.NewStore(settings.Defaults())
	p := NewSettingsPanel(store, 0, 0, 260)

	d, ok := settings.Lookup(settings.Progress)
	if !ok {
		t.Fatal("progress descriptor missing")
	}

	p.apply(d, 0.4213)
	if got := p.Settings().Progress; got < 0.419 || got > 0.421 {
		t.Errorf("expected progress snapped to 0.42, got %v", got)
	}

	p.apply(d, 7)
	if got := p.Settings().Progress; got != 1 {
		t.Errorf("expected progress clamped to 1, got %v", got)
	}
}

func TestSettingsPanelContains(t *testing.T) {
	p := NewSettingsPanel(settings.NewStore(settings.Defaults()), 100, 50, 200)

	if !p.Contains(150, 60) {
		t.Error("expected point inside panel")
	}
	if p.Contains(99, 60) || p.Contains(150, 49) || p.Contains(300, 60) {
		t.Error("expected points outside panel")
	}
	if p.Contains(150, float32(50+p.Height())) {
		t.Error("expected bottom edge to be exclusive")
	}

	p.SetVisible(false)
	if p.Contains(150, 60) {
		t.Error("hidden panel should not contain points")
	}
	if !p.Toggle() || !p.IsVisible() {
		t.Error("expected toggle to show the panel")
	}
}

func TestSettingsPanelHeightGrowsWithParameters(t *testing.T) {
	p := NewSettingsPanel(settings.NewStore(settings.Defaults()), 0, 0, 200)
	theme := DefaultTheme()
	rows := int32(len(settings.Descriptors()))
	if p.Height() <= rows*(theme.LineHeight+theme.SliderHeight) {
		t.Errorf("panel height %d too small for %d parameters", p.Height(), rows)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		step float64
		v    float64
		want string
	}{
		{1, 3.4, "3"},
		{0.1, 0.25, "0.2"},
		{0.01, 1.4, "1.40"},
		{0.001, 0.1, "0.100"},
	}
	for _, tt := range tests {
		got := formatValue(settings.Descriptor{Step: tt.step}, tt.v)
		if got != tt.want {
			t.Errorf("formatValue(step=%v, %v) = %q, want %q", tt.step, tt.v, got, tt.want)
		}
	}
}

func TestHUDSectionsReadData(t *testing.T) {
	data := HUDData{
		Elapsed:   1.5,
		Velocity:  0.01,
		MouseX:    0.75,
		MouseY:    0.25,
		RotationY: 1.5 / 35,
		Palette:   [3]rl.Color{rl.Red, rl.Green, rl.Blue},
	}

	fields := map[string]FieldDescriptor[HUDData]{}
	for _, sd := range HUDSections() {
		for _, fd := range sd.Fields {
			fields[fd.ID] = fd
		}
	}

	if got := fields["elapsed"].Getter(data); got != 1.5 {
		t.Errorf("elapsed = %v, want 1.5", got)
	}
	if got := fields["mouse_x"].Getter(data); got != 0.5 {
		t.Errorf("follow x = %v, want 0.5", got)
	}
	if got := fields["mouse_y"].Getter(data); got != -0.5 {
		t.Errorf("follow y = %v, want -0.5", got)
	}
	if got := fields["frame"].TextGetter(HUDData{Frame: 42}); got != "42" {
		t.Errorf("frame = %q, want 42", got)
	}
	if got := fields["color3"].ColorGetter(data); got != rl.Blue {
		t.Errorf("color3 = %v, want blue", got)
	}
	if fields["skipped"].Visible(data) {
		t.Error("skipped line should be hidden with no skipped frames")
	}
}

func TestSectionsHeightSkipsHiddenFields(t *testing.T) {
	theme := DefaultTheme()
	sections := HUDSections()

	base := SectionsHeight(theme, sections, HUDData{})
	withSkipped := SectionsHeight(theme, sections, HUDData{Skipped: 2})

	if withSkipped-base != theme.LineHeight {
		t.Errorf("expected one extra line for skipped frames, got %d", withSkipped-base)
	}
}

func TestCenteredFraction(t *testing.T) {
	tests := []struct {
		value, min, max float32
		want            float32
	}{
		{0, -1, 1, 0.5},
		{1, -1, 1, 1},
		{-1, -1, 1, 0},
		{0.5, -1, 1, 0.75},
		{3, -1, 1, 1},
		{-3, -1, 1, 0},
		{5, 0, 10, 0.5},
		{1, 1, 1, 0.5},
	}
	for _, tt := range tests {
		if got := centeredFraction(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("centeredFraction(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}
