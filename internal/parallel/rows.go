// Package parallel splits per-row image work across goroutines.
//
// Every row is processed by exactly one call of the row function, so results
// are identical to a sequential top-to-bottom loop as long as the row function
// only writes to its own row of the destination.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minRowsPerBand keeps small images on the calling goroutine.
const minRowsPerBand = 16

// Rows calls fn(y) for every y in [0, height) using up to workers goroutines.
// workers <= 0 means runtime.GOMAXPROCS(0). The first error stops scheduling
// of further bands and is returned.
func Rows(height, workers int, fn func(y int) error) error {
	if height <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	bands := Bands(height, workers)
	if len(bands) == 1 {
		return runBand(bands[0], fn)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, b := range bands {
		g.Go(func() error { return runBand(b, fn) })
	}

	return g.Wait()
}

// Band is a half-open range of rows [Start, End).
type Band struct {
	Start, End int
}

// Bands partitions height rows into at most workers contiguous bands of
// at least minRowsPerBand rows each (the last band may be shorter).
func Bands(height, workers int) []Band {
	if height <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	size := (height + workers - 1) / workers
	if size < minRowsPerBand {
		size = minRowsPerBand
	}

	bands := make([]Band, 0, (height+size-1)/size)
	for start := 0; start < height; start += size {
		bands = append(bands, Band{Start: start, End: min(start+size, height)})
	}

	return bands
}

func runBand(b Band, fn func(y int) error) error {
	for y := b.Start; y < b.End; y++ {
		if err := fn(y); err != nil {
			return err
		}
	}

	return nil
}
