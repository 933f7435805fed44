// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bmpfilter

package bmpfilter

import "math"

const (
	maxInt32  = int(^uint32(0) >> 1)
	maxUint32 = uint64(^uint32(0))
)

// i32FromInt converts an int to an int32.
func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, ErrSizeOverflow
	}

	return int32(n), nil
}

// u32FromInt converts an int to a uint32.
func u32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > maxUint32 {
		return 0, ErrSizeOverflow
	}

	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}

// pixelCount returns width*height, failing when the product does not fit an int32.
func pixelCount(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, ErrInvalidDimensions
	}
	if width != 0 && height > maxInt32/width {
		return 0, ErrSizeOverflow
	}

	return width * height, nil
}

// channelToByte scales a normalized channel by 255, truncates toward zero and
// keeps the low 8 bits. Nothing is clamped, so out-of-range values wrap.
func channelToByte(v float32) byte {
	scaled := v * 255
	if math.IsNaN(float64(scaled)) {
		return 0
	}

	// #nosec G115 -- wrapping is the intended narrowing.
	return byte(int64(scaled))
}

// byteToChannel maps a stored byte back into [0,1].
func byteToChannel(b byte) float32 {
	return float32(b) / 255
}
