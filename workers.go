package bmpfilter

import "sync/atomic"

// workers holds the filter parallelism; 0 means one worker per CPU.
var workers atomic.Int32

// SetWorkers sets how many goroutines filters may use for their row loops.
// n <= 0 restores the default of runtime.GOMAXPROCS(0). Output does not depend
// on the setting: every pixel is computed with the same summation order.
//
// SetWorkers is safe for concurrent use.
func SetWorkers(n int) {
	if n < 0 {
		n = 0
	}
	if n > maxInt32 {
		n = maxInt32
	}
	workers.Store(int32(n))
}

// Workers returns the value set by SetWorkers.
func Workers() int {
	return int(workers.Load())
}
