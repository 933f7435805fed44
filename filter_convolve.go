package bmpfilter

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

var (
	sharpenKernel = kernel3{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}
	edgeKernel = kernel3{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	}
)

// Sharpen convolves with the 5-center Laplacian sharpening kernel and clamps
// the result to [0,1]. Neighbors outside the image are replaced by the center pixel.
type Sharpen struct{}

// NewSharpen returns a sharpening filter.
func NewSharpen() *Sharpen { return &Sharpen{} }

// Apply implements Filter.
func (Sharpen) Apply(src *Image) (*Image, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	out := src.sameSize()
	eachRow(src.height, func(y int) {
		for x := 0; x < src.width; x++ {
			sum := convolve3(src, x, y, &sharpenKernel)
			out.set(x, y, Color{
				R: lo.Clamp(sum.R, 0, 1),
				G: lo.Clamp(sum.G, 0, 1),
				B: lo.Clamp(sum.B, 0, 1),
			})
		}
	})

	return out, nil
}

func (Sharpen) String() string { return "sharpen" }

// EdgeDetection converts to grayscale, applies a Laplacian kernel and
// thresholds the response: white where it exceeds Threshold, black elsewhere.
type EdgeDetection struct {
	Threshold float32
}

// NewEdgeDetection returns an edge detector. The threshold must be finite.
func NewEdgeDetection(threshold float32) (*EdgeDetection, error) {
	f := &EdgeDetection{Threshold: threshold}
	if err := f.validate(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f EdgeDetection) validate() error {
	t := float64(f.Threshold)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: edge threshold %v", ErrInvalidParameter, f.Threshold)
	}

	return nil
}

// Apply implements Filter.
func (f EdgeDetection) Apply(src *Image) (*Image, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	gray, err := Grayscale{}.Apply(src)
	if err != nil {
		return nil, err
	}

	out := gray.sameSize()
	eachRow(gray.height, func(y int) {
		for x := 0; x < gray.width; x++ {
			// all channels are equal after grayscale; red carries the response
			if convolve3(gray, x, y, &edgeKernel).R > f.Threshold {
				out.set(x, y, White)
			} else {
				out.set(x, y, Black)
			}
		}
	})

	return out, nil
}

func (f EdgeDetection) String() string { return fmt.Sprintf("edge(%g)", f.Threshold) }
