package bmpfilter

import (
	"fmt"
	"image"
)

// Image is a width x height raster of Color stored row-major with the origin
// at the top-left corner. Filters never modify their input; they build a new Image.
type Image struct {
	width  int
	height int
	pix    []Color
}

// New allocates a black image of the given size.
func New(width, height int) (*Image, error) {
	n, err := pixelCount(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %dx%d: %w", ErrInvalidParameter, width, height, err)
	}

	return &Image{width: width, height: height, pix: make([]Color, n)}, nil
}

// Width returns the number of columns.
func (m *Image) Width() int { return m.width }

// Height returns the number of rows.
func (m *Image) Height() int { return m.height }

// Bounds returns the image rectangle anchored at (0,0).
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

// Pixel returns the color at (x, y).
func (m *Image) Pixel(x, y int) (Color, error) {
	if !m.inBounds(x, y) {
		return Color{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfBounds, x, y, m.width, m.height)
	}

	return m.at(x, y), nil
}

// SetPixel stores c at (x, y).
func (m *Image) SetPixel(x, y int, c Color) error {
	if !m.inBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfBounds, x, y, m.width, m.height)
	}

	m.set(x, y, c)
	return nil
}

// Pixels returns a copy of the row-major pixel data.
func (m *Image) Pixels() []Color {
	out := make([]Color, len(m.pix))
	copy(out, m.pix)
	return out
}

// Clone returns a deep copy with independent storage.
func (m *Image) Clone() *Image {
	return &Image{width: m.width, height: m.height, pix: m.Pixels()}
}

// NRGBA converts the image into an opaque 8-bit stdlib image.
func (m *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(m.Bounds())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			out.SetNRGBA(x, y, m.at(x, y).NRGBA())
		}
	}

	return out
}

// FromImage copies any stdlib image into a new Image. Alpha is discarded.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	out, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := 0; y < out.height; y++ {
			row := nrgba.Pix[y*nrgba.Stride:]
			for x := 0; x < out.width; x++ {
				p := row[x*4 : x*4+3]
				out.set(x, y, Color{R: byteToChannel(p[0]), G: byteToChannel(p[1]), B: byteToChannel(p[2])})
			}
		}
		return out, nil
	}

	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			out.set(x, y, colorFromStd(src.At(b.Min.X+x, b.Min.Y+y)))
		}
	}

	return out, nil
}

// sameSize allocates an image with m's dimensions. m was already validated.
func (m *Image) sameSize() *Image {
	return &Image{width: m.width, height: m.height, pix: make([]Color, len(m.pix))}
}

func (m *Image) inBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *Image) at(x, y int) Color {
	return m.pix[y*m.width+x]
}

func (m *Image) set(x, y int, c Color) {
	m.pix[y*m.width+x] = c
}
