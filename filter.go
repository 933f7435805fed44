package bmpfilter

import (
	"fmt"
	"strings"

	"github.com/woozymasta/bmpfilter/internal/parallel"
)

// Filter transforms an image into a new image. Apply never modifies src and
// the result never shares storage with it.
type Filter interface {
	Apply(src *Image) (*Image, error)
	String() string
}

// Pipeline applies filters in order, each one consuming the previous output.
// A Pipeline is itself a Filter.
type Pipeline []Filter

// Apply runs every stage. The first failing stage aborts the run.
func (p Pipeline) Apply(src *Image) (*Image, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return src.Clone(), nil
	}

	cur := src
	for i, f := range p {
		next, err := f.Apply(cur)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, f, err)
		}
		cur = next
	}

	return cur, nil
}

func (p Pipeline) String() string {
	names := make([]string, len(p))
	for i, f := range p {
		names[i] = f.String()
	}

	return strings.Join(names, " | ")
}

func checkSource(src *Image) error {
	if src == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidParameter)
	}

	return nil
}

// eachRow runs fn for every row of an image of the given height using the
// configured worker count.
func eachRow(height int, fn func(y int)) {
	_ = parallel.Rows(height, Workers(), func(y int) error {
		fn(y)
		return nil
	})
}

// kernel3 is a 3x3 convolution kernel indexed [row][column].
type kernel3 [3][3]float32

// convolve3 sums the 3x3 neighborhood of (x, y) weighted by k. Taps that fall
// outside the image use the center pixel instead.
func convolve3(src *Image, x, y int, k *kernel3) Color {
	center := src.at(x, y)

	var sum Color
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			c := center
			if nx, ny := x+kx, y+ky; src.inBounds(nx, ny) {
				c = src.at(nx, ny)
			}

			w := k[ky+1][kx+1]
			sum.R += float32(w * c.R)
			sum.G += float32(w * c.G)
			sum.B += float32(w * c.B)
		}
	}

	return sum
}
