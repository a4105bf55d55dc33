// Package resolution describes the truncation of a plane layer: NZ
// Chebyshev modes in the wall-normal direction and NX x NY Fourier modes in
// the two periodic directions. Each pair of horizontal modes is one "matrix
// index", at which the 1-D operators of the wall-normal direction are built.
package resolution

import (
	"fmt"
)

type Space uint8

const (
	Spectral Space = iota
	Physical
)

func (s Space) String() string {
	if s == Spectral {
		return "spectral"
	}
	return "physical"
}

// Resolution gives the retained mode counts per direction, the wall-normal
// direction first.
type Resolution interface {
	Dimensions(space Space, matIdx int) []int
}

// Coupling enumerates the matrix indices of a system and their horizontal
// wavenumbers.
type Coupling interface {
	NMat() int
	Eigs(matIdx int) []float64
}

type Box struct {
	NZ, NX, NY     int
	Scale1, Scale2 float64
}

func NewBox(nz, nx, ny int, scale1, scale2 float64) (b *Box) {
	if nz < 1 || nx < 1 || ny < 1 {
		panic(fmt.Errorf("invalid resolution %d x %d x %d", nz, nx, ny))
	}
	if scale1 <= 0 || scale2 <= 0 {
		panic(fmt.Errorf("invalid box scales %g, %g", scale1, scale2))
	}
	b = &Box{
		NZ:     nz,
		NX:     nx,
		NY:     ny,
		Scale1: scale1,
		Scale2: scale2,
	}
	return
}

func (b *Box) NMat() int { return b.NX * b.NY }

// Index splits a matrix index into its horizontal mode pair, the first
// direction varying slowest.
func (b *Box) Index(matIdx int) (i, j int) {
	if matIdx < 0 || matIdx >= b.NMat() {
		panic(fmt.Errorf("matrix index %d out of range [0,%d)", matIdx, b.NMat()))
	}
	return matIdx / b.NY, matIdx % b.NY
}

func (b *Box) MatIndex(i, j int) int { return i*b.NY + j }

// Mode is the signed wavenumber index of position j in a complex transform
// of length n: 0, 1, ..., n/2, then the negative modes.
func Mode(j, n int) int {
	if j > (n-1)/2 {
		return j - n
	}
	return j
}

// Eigs returns the horizontal wavenumbers (k1, k2) of a matrix index. The
// first direction is a real transform and has no negative modes.
func (b *Box) Eigs(matIdx int) []float64 {
	i, j := b.Index(matIdx)
	return []float64{
		b.Scale1 * float64(i),
		b.Scale2 * float64(Mode(j, b.NY)),
	}
}

// Dimensions is independent of the matrix index. Physical grids follow the
// 3/2 dealiasing rule.
func (b *Box) Dimensions(space Space, matIdx int) []int {
	switch space {
	case Spectral:
		return []int{b.NZ, b.NX, b.NY}
	case Physical:
		return []int{dealias(b.NZ), dealias(2 * b.NX), dealias(b.NY)}
	}
	panic(fmt.Errorf("unknown space %v", space))
}

func dealias(n int) int { return (3*n + 1) / 2 }

func (b *Box) String() string {
	return fmt.Sprintf("%d x %d x %d (scales %g, %g)", b.NZ, b.NX, b.NY, b.Scale1, b.Scale2)
}
