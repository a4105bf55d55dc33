package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

// DecoupledZSparse stores a complex sparse matrix as separate real and
// imaginary parts of identical shape.
type DecoupledZSparse struct {
	Real, Imag *sparse.CSR
}

func NewDecoupledZSparse(nr, nc int) DecoupledZSparse {
	return DecoupledZSparse{
		Real: NewCSR(nr, nc),
		Imag: NewCSR(nr, nc),
	}
}

// RealZ wraps a real operator, the imaginary part is empty
func RealZ(A *sparse.CSR) DecoupledZSparse {
	nr, nc := A.Dims()
	return DecoupledZSparse{
		Real: A,
		Imag: NewCSR(nr, nc),
	}
}

func (z DecoupledZSparse) Dims() (nr, nc int) { return z.Real.Dims() }

func (z DecoupledZSparse) NNZ() int {
	return z.Real.NNZ() + z.Imag.NNZ()
}

func (z DecoupledZSparse) Equal(o DecoupledZSparse) bool {
	return Equal(z.Real, o.Real) && Equal(z.Imag, o.Imag)
}

func (z DecoupledZSparse) String() string {
	nr, nc := z.Dims()
	return fmt.Sprintf("%d x %d (nnz real %d, imag %d)", nr, nc, z.Real.NNZ(), z.Imag.NNZ())
}

// ZBlockBuilder places complex blocks into a larger complex matrix
type ZBlockBuilder struct {
	re, im *Triplets
}

func NewZBlockBuilder(nr, nc int) *ZBlockBuilder {
	return &ZBlockBuilder{
		re: NewTriplets(nr, nc),
		im: NewTriplets(nr, nc),
	}
}

func (b *ZBlockBuilder) Place(z DecoupledZSparse, r0, c0 int) {
	b.re.AddMatrix(z.Real, r0, c0, 1)
	b.im.AddMatrix(z.Imag, r0, c0, 1)
}

func (b *ZBlockBuilder) Build() DecoupledZSparse {
	return DecoupledZSparse{
		Real: b.re.ToCSR(),
		Imag: b.im.ToCSR(),
	}
}
