package bmpfilter

import "fmt"

// Crop keeps the top-left Width x Height rectangle. Sizes larger than the
// source are clamped to it; the image is never enlarged.
type Crop struct {
	Width  int
	Height int
}

// NewCrop returns a crop filter. Both sizes must be positive.
func NewCrop(width, height int) (*Crop, error) {
	f := &Crop{Width: width, Height: height}
	if err := f.validate(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f Crop) validate() error {
	if f.Width < 1 || f.Height < 1 {
		return fmt.Errorf("%w: crop size %dx%d", ErrInvalidParameter, f.Width, f.Height)
	}

	return nil
}

// Apply implements Filter.
func (f Crop) Apply(src *Image) (*Image, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	w := min(f.Width, src.width)
	h := min(f.Height, src.height)
	out := &Image{width: w, height: h, pix: make([]Color, w*h)}
	for y := 0; y < h; y++ {
		copy(out.pix[y*w:(y+1)*w], src.pix[y*src.width:y*src.width+w])
	}

	return out, nil
}

func (f Crop) String() string { return fmt.Sprintf("crop(%dx%d)", f.Width, f.Height) }

// Grayscale replaces every pixel by its luma 0.299R + 0.587G + 0.114B.
type Grayscale struct{}

const (
	grayRed   float32 = 0.299
	grayGreen float32 = 0.587
	grayBlue  float32 = 0.114
)

// NewGrayscale returns a grayscale filter.
func NewGrayscale() *Grayscale { return &Grayscale{} }

// Apply implements Filter.
func (Grayscale) Apply(src *Image) (*Image, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	out := src.sameSize()
	eachRow(src.height, func(y int) {
		for x := 0; x < src.width; x++ {
			g := luma(src.at(x, y))
			out.set(x, y, Color{R: g, G: g, B: g})
		}
	})

	return out, nil
}

func (Grayscale) String() string { return "grayscale" }

func luma(c Color) float32 {
	r := float32(grayRed * c.R)
	g := float32(grayGreen * c.G)
	b := float32(grayBlue * c.B)
	return r + g + b
}

// Negative inverts every channel: v -> 1 - v.
type Negative struct{}

// NewNegative returns a negative filter.
func NewNegative() *Negative { return &Negative{} }

// Apply implements Filter.
func (Negative) Apply(src *Image) (*Image, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	out := src.sameSize()
	eachRow(src.height, func(y int) {
		for x := 0; x < src.width; x++ {
			c := src.at(x, y)
			out.set(x, y, Color{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B})
		}
	})

	return out, nil
}

func (Negative) String() string { return "negative" }
