package bmpfilter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// newTestImage builds a w x h image whose pixels come from fn.
func newTestImage(t testing.TB, w, h int, fn func(x, y int) Color) *Image {
	t.Helper()

	img, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d,%d): %v", w, h, err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if err := img.SetPixel(x, y, fn(x, y)); err != nil {
				t.Fatalf("SetPixel(%d,%d): %v", x, y, err)
			}
		}
	}

	return img
}

func uniform(c Color) func(x, y int) Color {
	return func(int, int) Color { return c }
}

// gradient is a deterministic pattern with every channel in [0,1].
func gradient(x, y int) Color {
	return Color{
		R: float32((x*37+y*11)%256) / 255,
		G: float32((x*13+y*29)%256) / 255,
		B: float32((x^y)%256) / 255,
	}
}

// assertPixels fails when got and want differ by more than margin per channel.
func assertPixels(t *testing.T, got, want *Image, margin float64) {
	t.Helper()

	if got.Width() != want.Width() || got.Height() != want.Height() {
		t.Fatalf("size = %dx%d, want %dx%d", got.Width(), got.Height(), want.Width(), want.Height())
	}
	if diff := cmp.Diff(want.Pixels(), got.Pixels(), cmpopts.EquateApprox(0, margin)); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func mustPixel(t *testing.T, img *Image, x, y int) Color {
	t.Helper()

	c, err := img.Pixel(x, y)
	if err != nil {
		t.Fatalf("Pixel(%d,%d): %v", x, y, err)
	}

	return c
}
