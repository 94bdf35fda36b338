package main

import (
	"image/color"
	"math"

	"github.com/pthm-cable/helix/field"
)

// View selects the two position axes projected onto the preview.
type View struct {
	Name string
	U, V int // position component for the horizontal and vertical image axis
}

var (
	SideView = View{Name: "side (x/y)", U: 0, V: 1}
	TopView  = View{Name: "top (x/z)", U: 0, V: 2}
)

// Rasterize counts particles per cell of a size x size grid covering
// [-extent, extent] on both axes. Particles outside the square are dropped.
// The vertical image axis grows downwards, so V is flipped.
func Rasterize(grid []float32, size int, buf *field.Buffer, view View, extent float32) {
	for i := range grid {
		grid[i] = 0
	}
	scale := float32(size) / (2 * extent)
	for i := 0; i < buf.Len(); i++ {
		u := buf.Positions[i*3+view.U]
		v := buf.Positions[i*3+view.V]
		x := int((u + extent) * scale)
		y := int((extent - v) * scale)
		if x < 0 || x >= size || y < 0 || y >= size {
			continue
		}
		grid[y*size+x]++
	}
}

// Normalize maps cell counts to [0,1] on a log scale and returns the peak count.
func Normalize(grid []float32) float32 {
	var peak float32
	for _, v := range grid {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return 0
	}
	denom := float32(math.Log1p(float64(peak)))
	for i, v := range grid {
		grid[i] = float32(math.Log1p(float64(v))) / denom
	}
	return peak
}

// gradient stops: black, then the three palette colors
var gradient = [4][3]float32{
	{0, 0, 0},
	{0x61, 0x25, 0x74},
	{0x29, 0x35, 0x83},
	{0x19, 0x54, 0xec},
}

// densityColor maps a normalized density to the preview gradient.
func densityColor(v float32) color.RGBA {
	if v <= 0 {
		return color.RGBA{A: 255}
	}
	if v >= 1 {
		last := gradient[len(gradient)-1]
		return color.RGBA{R: uint8(last[0]), G: uint8(last[1]), B: uint8(last[2]), A: 255}
	}
	seg := v * float32(len(gradient)-1)
	i := int(seg)
	t := seg - float32(i)
	a, b := gradient[i], gradient[i+1]
	return color.RGBA{R: lerp8(a[0], b[0], t), G: lerp8(a[1], b[1], t), B: lerp8(a[2], b[2], t), A: 255}
}

func lerp8(a, b, t float32) uint8 {
	return uint8(a + (b-a)*t + 0.5)
}
