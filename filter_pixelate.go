package bmpfilter

import "fmt"

// Pixelate replaces each BlockSize x BlockSize block, anchored at the
// top-left corner, by the mean of its pixels. Blocks on the right and bottom
// edges may be smaller and are averaged over the pixels they actually cover.
type Pixelate struct {
	BlockSize int
}

// NewPixelate returns a pixelation filter. The block size must be positive.
func NewPixelate(blockSize int) (*Pixelate, error) {
	f := &Pixelate{BlockSize: blockSize}
	if err := f.validate(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f Pixelate) validate() error {
	if f.BlockSize < 1 {
		return fmt.Errorf("%w: block size %d", ErrInvalidParameter, f.BlockSize)
	}

	return nil
}

// Apply implements Filter.
func (f Pixelate) Apply(src *Image) (*Image, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	n := f.BlockSize
	out := src.sameSize()
	blockRows := src.height / n
	if src.height%n != 0 {
		blockRows++
	}

	// each block row writes a disjoint band of out
	eachRow(blockRows, func(by int) {
		y0 := by * n
		y1 := min(y0+n, src.height)
		for x0 := 0; x0 < src.width; x0 += n {
			x1 := min(x0+n, src.width)

			var avg Color
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					c := src.at(x, y)
					avg.R += c.R
					avg.G += c.G
					avg.B += c.B
				}
			}

			count := float32((y1 - y0) * (x1 - x0))
			avg.R /= count
			avg.G /= count
			avg.B /= count

			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					out.set(x, y, avg)
				}
			}
		}
	})

	return out, nil
}

func (f Pixelate) String() string { return fmt.Sprintf("pixelate(%d)", f.BlockSize) }
