package utils

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Triplets accumulates (i, j, value) entries in a sparse.DOK and emits a CSR
// matrix. Repeated entries are summed, entries summing to zero are dropped.
type Triplets struct {
	M *sparse.DOK
}

func NewTriplets(nr, nc int) (T *Triplets) {
	if nr < 0 || nc < 0 {
		panic(fmt.Errorf("invalid sparse dimensions: %d x %d", nr, nc))
	}
	T = &Triplets{M: sparse.NewDOK(nr, nc)}
	return
}

func (T *Triplets) Dims() (nr, nc int) { return T.M.Dims() }

func (T *Triplets) Add(i, j int, val float64) {
	nr, nc := T.M.Dims()
	if i < 0 || i >= nr || j < 0 || j >= nc {
		panic(fmt.Errorf("index (%d,%d) out of bounds for %d x %d sparse matrix", i, j, nr, nc))
	}
	if val == 0 {
		return
	}
	T.M.Set(i, j, T.M.At(i, j)+val)
}

// AddMatrix adds alpha*A with its upper left corner placed at (r0, c0)
func (T *Triplets) AddMatrix(A *sparse.CSR, r0, c0 int, alpha float64) {
	var (
		nr, nc   = A.Dims()
		tnr, tnc = T.M.Dims()
	)
	if r0+nr > tnr || c0+nc > tnc {
		panic(fmt.Errorf("block %d x %d at (%d,%d) does not fit in %d x %d",
			nr, nc, r0, c0, tnr, tnc))
	}
	A.DoNonZero(func(i, j int, v float64) {
		T.Add(r0+i, c0+j, alpha*v)
	})
}

func (T *Triplets) ToCSR() *sparse.CSR {
	return dropZeros(T.M.ToCSR())
}

// dropZeros removes entries stored as exact zeros after cancellation
func dropZeros(A *sparse.CSR) *sparse.CSR {
	var (
		zeros  bool
		nr, nc = A.Dims()
	)
	A.DoNonZero(func(i, j int, v float64) {
		if v == 0 {
			zeros = true
		}
	})
	if !zeros {
		return A
	}
	dok := sparse.NewDOK(nr, nc)
	A.DoNonZero(func(i, j int, v float64) {
		if v != 0 {
			dok.Set(i, j, v)
		}
	})
	return dok.ToCSR()
}

// NewCSR returns an all zero nr x nc matrix with valid (empty) storage
func NewCSR(nr, nc int) *sparse.CSR {
	return NewTriplets(nr, nc).ToCSR()
}

func Mul(A, B *sparse.CSR) *sparse.CSR {
	var (
		_, ac = A.Dims()
		br, _ = B.Dims()
		C     sparse.CSR
	)
	if ac != br {
		panic(fmt.Errorf("dimension mismatch in sparse product: %d columns vs %d rows", ac, br))
	}
	C.Mul(A, B)
	return dropZeros(&C)
}

type Term struct {
	Alpha float64
	M     *sparse.CSR
}

// LinComb returns sum(alpha_k * M_k), all terms must have the same shape
func LinComb(terms ...Term) (R *sparse.CSR) {
	if len(terms) == 0 {
		panic("LinComb needs at least one term")
	}
	R = Scale(terms[0].Alpha, terms[0].M)
	for _, term := range terms[1:] {
		R = Add(R, Scale(term.Alpha, term.M))
	}
	return
}

func Add(A, B *sparse.CSR) *sparse.CSR {
	var (
		ar, ac = A.Dims()
		br, bc = B.Dims()
		C      sparse.CSR
	)
	if ar != br || ac != bc {
		panic(fmt.Errorf("dimension mismatch in sparse sum: %d x %d vs %d x %d", ar, ac, br, bc))
	}
	C.Add(A, B)
	return dropZeros(&C)
}

// Scale returns alpha*A with the sparsity pattern of A
func Scale(alpha float64, A *sparse.CSR) *sparse.CSR {
	var (
		nr, nc = A.Dims()
		raw    = A.RawMatrix()
		data   = make([]float64, len(raw.Data))
	)
	for k, v := range raw.Data {
		data[k] = alpha * v
	}
	return dropZeros(sparse.NewCSR(nr, nc,
		append([]int(nil), raw.Indptr...), append([]int(nil), raw.Ind...), data))
}

// Slice returns the block of A in rows [r0,r1) and columns [c0,c1)
func Slice(A *sparse.CSR, r0, r1, c0, c1 int) *sparse.CSR {
	var (
		T = NewTriplets(r1-r0, c1-c0)
	)
	A.DoNonZero(func(i, j int, v float64) {
		if i >= r0 && i < r1 && j >= c0 && j < c1 {
			T.Add(i-r0, j-c0, v)
		}
	})
	return T.ToCSR()
}

// ZeroLeadingRows returns a copy of A with its first n rows cleared
func ZeroLeadingRows(A *sparse.CSR, n int) *sparse.CSR {
	var (
		nr, nc = A.Dims()
		T      = NewTriplets(nr, nc)
	)
	A.DoNonZero(func(i, j int, v float64) {
		if i >= n {
			T.Add(i, j, v)
		}
	})
	return T.ToCSR()
}

// Equal is true when A and B have the same shape and bit identical entries
func Equal(A, B *sparse.CSR) bool {
	return EqualApprox(A, B, 0)
}

func EqualApprox(A, B *sparse.CSR, tol float64) bool {
	var (
		ar, ac = A.Dims()
		br, bc = B.Dims()
		diff   = true
	)
	if ar != br || ac != bc {
		return false
	}
	D := LinComb(Term{1, A}, Term{-1, B})
	D.DoNonZero(func(i, j int, v float64) {
		if math.Abs(v) > tol {
			diff = false
		}
	})
	return diff
}

// NonZeroRows returns the sorted indices of rows holding at least one entry
func NonZeroRows(A *sparse.CSR) (rows []int) {
	var (
		nr, _ = A.Dims()
		seen  = make([]bool, nr)
	)
	A.DoNonZero(func(i, j int, v float64) {
		if v != 0 {
			seen[i] = true
		}
	})
	for i, s := range seen {
		if s {
			rows = append(rows, i)
		}
	}
	return
}

func Row(A *sparse.CSR, i int) (row []float64) {
	var (
		_, nc = A.Dims()
	)
	row = make([]float64, nc)
	A.DoRowNonZero(i, func(_, j int, v float64) {
		row[j] = v
	})
	return
}

func Diagonal(A *sparse.CSR) (diag []float64) {
	var (
		nr, nc = A.Dims()
	)
	diag = make([]float64, min(nr, nc))
	A.DoNonZero(func(i, j int, v float64) {
		if i == j {
			diag[i] = v
		}
	})
	return
}

func ToDense(A *sparse.CSR) (R *mat.Dense) {
	var (
		nr, nc = A.Dims()
	)
	if nr == 0 || nc == 0 {
		return &mat.Dense{}
	}
	return A.ToDense()
}
