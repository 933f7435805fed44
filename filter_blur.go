package bmpfilter

import (
	"fmt"
	"math"
)

// maxBlurSigma bounds the kernel to a few million taps.
const maxBlurSigma = 1 << 18

// GaussianBlur is a separable Gaussian blur.
//
// The kernel has int(6*Sigma+1) nominal taps spanning offsets -size/2..size/2.
// Taps that fall outside the image are dropped without renormalizing the
// remaining weights, so borders darken slightly. The vertical pass only uses
// kernel indices below the nominal size, which for an even size skips the
// last tap.
type GaussianBlur struct {
	Sigma float32
}

// NewGaussianBlur returns a blur filter. Sigma must be positive and finite.
func NewGaussianBlur(sigma float32) (*GaussianBlur, error) {
	f := &GaussianBlur{Sigma: sigma}
	if err := f.validate(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f GaussianBlur) validate() error {
	s := float64(f.Sigma)
	if math.IsNaN(s) || s <= 0 || s > maxBlurSigma {
		return fmt.Errorf("%w: blur sigma %v", ErrInvalidParameter, f.Sigma)
	}

	return nil
}

// Apply implements Filter.
func (f GaussianBlur) Apply(src *Image) (*Image, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	kernel, size := gaussianKernel(f.Sigma)
	half := size / 2
	w, h := src.width, src.height

	// horizontal pass: src -> tmp
	tmp := src.sameSize()
	eachRow(h, func(y int) {
		for x := 0; x < w; x++ {
			var acc Color
			for kx := -half; kx <= half; kx++ {
				nx := x + kx
				if nx < 0 || nx >= w {
					continue
				}
				c := src.at(nx, y)
				k := kernel[kx+half]
				acc.R += float32(k * c.R)
				acc.G += float32(k * c.G)
				acc.B += float32(k * c.B)
			}
			tmp.set(x, y, acc)
		}
	})

	// vertical pass: tmp -> out
	out := src.sameSize()
	eachRow(h, func(y int) {
		for x := 0; x < w; x++ {
			var acc Color
			for ky := -half; ky <= half; ky++ {
				ny := y + ky
				if ny < 0 || ny >= h {
					continue
				}
				c := tmp.at(x, ny)
				var k float32
				if i := ky + half; i < size {
					k = kernel[i]
				}
				acc.R += float32(k * c.R)
				acc.G += float32(k * c.G)
				acc.B += float32(k * c.B)
			}
			out.set(x, y, acc)
		}
	})

	return out, nil
}

func (f GaussianBlur) String() string { return fmt.Sprintf("blur(%g)", f.Sigma) }

// gaussianKernel returns the normalized weights for offsets -size/2..size/2
// together with the nominal size int(6*sigma+1). The weight slice has
// 2*(size/2)+1 entries, one more than size when size is even.
func gaussianKernel(sigma float32) ([]float32, int) {
	size := int(float32(6*sigma) + 1)
	half := size / 2

	twoSigmaSq := 2 * sigma * sigma
	norm := math.Sqrt(2*math.Pi) * float64(sigma)

	kernel := make([]float32, 0, 2*half+1)
	var sum float32
	for x := -half; x <= half; x++ {
		e := float32(math.Exp(float64(float32(-(x * x)) / twoSigmaSq)))
		v := float32(float64(e) / norm)
		kernel = append(kernel, v)
		sum += v
	}

	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel, size
}
