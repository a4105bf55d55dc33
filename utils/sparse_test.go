package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTriplets(t *testing.T) {
	{ // Repeated entries are summed, zeros dropped
		T := NewTriplets(3, 4)
		T.Add(2, 3, 1)
		T.Add(0, 1, 2)
		T.Add(2, 3, 1.5)
		T.Add(1, 1, 0)
		T.Add(1, 2, 1)
		T.Add(1, 2, -1)
		A := T.ToCSR()
		nr, nc := A.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 4, nc)
		assert.Equal(t, 2, A.NNZ())
		assert.Equal(t, 2.5, A.At(2, 3))
		assert.Equal(t, 2., A.At(0, 1))
		assert.Equal(t, []int{0, 2}, NonZeroRows(A))
	}
	{ // Bounds
		T := NewTriplets(2, 2)
		assert.Panics(t, func() { T.Add(2, 0, 1) })
		assert.Panics(t, func() { T.Add(0, -1, 1) })
		assert.Panics(t, func() { NewTriplets(-1, 2) })
		B := NewTriplets(3, 3)
		B.Add(2, 2, 1)
		assert.Panics(t, func() { T.AddMatrix(B.ToCSR(), 0, 0, 1) })
	}
	{ // Block placement
		B := NewTriplets(2, 2)
		B.Add(0, 0, 1)
		B.Add(1, 1, 2)
		T := NewTriplets(4, 5)
		T.AddMatrix(B.ToCSR(), 2, 3, -2)
		A := T.ToCSR()
		assert.Equal(t, -2., A.At(2, 3))
		assert.Equal(t, -4., A.At(3, 4))
		assert.Equal(t, 2, A.NNZ())
	}
}

func TestSparseAlgebra(t *testing.T) {
	var (
		A, B *Triplets
	)
	A = NewTriplets(2, 3)
	A.Add(0, 0, 1)
	A.Add(0, 2, 2)
	A.Add(1, 1, 3)
	B = NewTriplets(3, 2)
	B.Add(0, 1, 1)
	B.Add(2, 0, 4)
	B.Add(1, 1, -1)
	{ // Product
		C := Mul(A.ToCSR(), B.ToCSR())
		D := ToDense(C)
		assert.Equal(t, []float64{8, 1, 0, -3}, D.RawMatrix().Data)
		assert.Panics(t, func() { Mul(A.ToCSR(), A.ToCSR()) })
	}
	{ // Sums
		S := LinComb(Term{2, A.ToCSR()}, Term{-1, A.ToCSR()})
		assert.True(t, Equal(A.ToCSR(), S))
		assert.Equal(t, 0, Add(A.ToCSR(), Scale(-1, A.ToCSR())).NNZ())
		assert.Panics(t, func() { Add(A.ToCSR(), B.ToCSR()) })
		assert.Panics(t, func() { LinComb() })
	}
	{ // Sums and products agree with dense arithmetic
		var (
			Ad, Bd = ToDense(A.ToCSR()), ToDense(B.ToCSR())
			P, Q   mat.Dense
		)
		S := LinComb(Term{3, A.ToCSR()}, Term{-0.5, Mul(A.ToCSR(), Mul(B.ToCSR(), A.ToCSR()))})
		Q.Product(Ad, Bd, Ad)
		P.Scale(-0.5, &Q)
		Q.Scale(3, Ad)
		P.Add(&P, &Q)
		assert.True(t, mat.EqualApprox(&P, ToDense(S), 1.e-14))
		assert.Equal(t, 0, Scale(0, A.ToCSR()).NNZ())
		// Empty matrices
		nr, nc := ToDense(NewCSR(0, 3)).Dims()
		assert.Equal(t, 0, nr+nc)
	}
	{ // Comparison
		C := Scale(1+1.e-12, A.ToCSR())
		assert.False(t, Equal(A.ToCSR(), C))
		assert.True(t, EqualApprox(A.ToCSR(), C, 1.e-10))
		assert.False(t, EqualApprox(A.ToCSR(), B.ToCSR(), 1))
	}
	{ // Slicing and rows
		S := Slice(A.ToCSR(), 0, 2, 1, 3)
		assert.Equal(t, []float64{0, 2, 3, 0}, ToDense(S).RawMatrix().Data)
		Z := ZeroLeadingRows(A.ToCSR(), 1)
		assert.Equal(t, []int{1}, NonZeroRows(Z))
		assert.Equal(t, []float64{1, 0, 2}, Row(A.ToCSR(), 0))
		assert.Equal(t, []float64{1, 3}, Diagonal(A.ToCSR()))
		assert.Equal(t, 0, NewCSR(3, 3).NNZ())
	}
}

func TestDecoupledZSparse(t *testing.T) {
	T := NewTriplets(2, 2)
	T.Add(0, 1, 1)
	z := RealZ(T.ToCSR())
	nr, nc := z.Dims()
	assert.Equal(t, 2, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 1, z.NNZ())
	assert.Equal(t, "2 x 2 (nnz real 1, imag 0)", z.String())
	assert.True(t, z.Equal(RealZ(T.ToCSR())))
	assert.False(t, z.Equal(NewDecoupledZSparse(2, 2)))
	{ // Blocks are placed at their offsets
		zb := NewZBlockBuilder(4, 4)
		zb.Place(z, 0, 0)
		zb.Place(z, 2, 2)
		R := zb.Build()
		require.Equal(t, 2, R.NNZ())
		assert.Equal(t, 1., R.Real.At(0, 1))
		assert.Equal(t, 1., R.Real.At(2, 3))
		assert.Equal(t, 0, R.Imag.NNZ())
	}
}

func TestIsFinite(t *testing.T) {
	T := NewTriplets(3, 3)
	T.Add(0, 0, 1)
	T.Add(2, 1, -4)
	A := T.ToCSR()
	assert.True(t, IsFinite(A))
	assert.True(t, RealZ(A).IsFinite())
	T.Add(1, 2, math.NaN())
	assert.False(t, IsFinite(T.ToCSR()))
	z := DecoupledZSparse{Real: A, Imag: Scale(math.Inf(1), A)}
	assert.False(t, z.IsFinite())
	assert.NotEmpty(t, GetMemUsage())
}
