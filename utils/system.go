package utils

import (
	"fmt"
	"math"
	"runtime"

	"github.com/james-bowman/sparse"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

// IsFinite is false if any stored entry of A is NaN or infinite
func IsFinite(A *sparse.CSR) (finite bool) {
	finite = true
	A.DoNonZero(func(i, j int, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			finite = false
		}
	})
	return
}

func (z DecoupledZSparse) IsFinite() bool {
	return IsFinite(z.Real) && IsFinite(z.Imag)
}
