package bmpfilter

import (
	"image/color"
	"math"
)

// Color is one RGB sample with channels nominally in [0,1].
// Values are not clamped on construction.
type Color struct {
	R, G, B float32
}

var _ color.Color = Color{}

var (
	// Black is (0,0,0).
	Black = Color{}
	// White is (1,1,1).
	White = Color{R: 1, G: 1, B: 1}
)

// RGB returns a Color from its three channels.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// NRGBA returns the 8-bit form of c with channels clamped to [0,1] and rounded.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: clampByte(c.R), G: clampByte(c.G), B: clampByte(c.B), A: 0xff}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// colorFromStd converts any color.Color into normalized channels, ignoring alpha.
func colorFromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: byteToChannel(n.R), G: byteToChannel(n.G), B: byteToChannel(n.B)}
}

func clampByte(v float32) uint8 {
	switch {
	case v <= 0 || math.IsNaN(float64(v)):
		return 0
	case v >= 1:
		return 0xff
	default:
		return uint8(v*255 + 0.5)
	}
}
