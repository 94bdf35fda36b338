// Package ui provides the settings panel and a descriptor-driven HUD.
// Instead of hard-coding field names and layouts, HUD lines are defined
// through metadata kept next to the data they read.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText WidgetType = iota // Plain text with format string
	WidgetBar                    // Progress bar [0, 1]
	WidgetCenteredBar            // Centered bar [-1, +1] or custom range
	WidgetColorSwatch            // Color preview square
	WidgetSection                // Section header
	WidgetSpacer                 // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// CenteredRange returns a [-1, +1] range.
func CenteredRange() FieldRange {
	return FieldRange{Min: -1, Max: 1}
}

// FieldDescriptor defines how to display a single value read from T.
type FieldDescriptor[T any] struct {
	ID          string           // Unique identifier for the field
	Label       string           // Display label
	Widget      WidgetType       // How to render
	Format      string           // Printf format for text (e.g., "%.2f")
	Range       FieldRange       // Value range for bars
	Color       rl.Color         // Optional color override
	Visible     func(T) bool     // Optional visibility check (nil = always visible)
	Getter      func(T) float32  // Value extractor (for numeric fields)
	TextGetter  func(T) string   // Value extractor (for text fields)
	ColorGetter func(T) rl.Color // Color extractor (for color swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor[T any] struct {
	ID      string               // Unique identifier
	Title   string               // Section header text
	Fields  []FieldDescriptor[T] // Fields in this section
	Visible func(T) bool         // Optional visibility check for entire section
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	SliderHeight    int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 12, G: 14, B: 24, A: 220},
		PanelBorder:     rl.Color{R: 41, G: 53, B: 131, A: 255},
		SectionHeader:   rl.Color{R: 25, G: 84, B: 236, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 40, G: 40, B: 48, A: 255},
		BarFill:         rl.Color{R: 97, G: 37, B: 116, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 150, B: 220, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      90,
		BarHeight:       12,
		SliderHeight:    16,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
