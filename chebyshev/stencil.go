package chebyshev

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/planerbc/utils"
	"gonum.org/v1/gonum/mat"
)

// stencilConditions lists the homogeneous conditions, imposed at both walls,
// that every column of a stencil satisfies.
var stencilConditions = map[Kind][]Condition{
	KindStencilValue:   {CondValue},
	KindStencilD1:      {CondD1},
	KindStencilValueD1: {CondValue, CondD1},
	KindStencilValueD2: {CondValue, CondD2},
}

// stencilCoefficients returns the weights c_q such that
// T_j + sum_q c_q T_{j+2(q+1)} satisfies conds at x = 1. Since the modes of a
// column share parity, the conditions then also hold at x = -1.
func stencilCoefficients(conds []Condition, j int) []float64 {
	var (
		nc = len(conds)
		A  = mat.NewDense(nc, nc, nil)
		b  = mat.NewVecDense(nc, nil)
		x  mat.VecDense
	)
	for r, c := range conds {
		for q := 0; q < nc; q++ {
			A.Set(r, q, topValue(c, j+2*(q+1)))
		}
		b.SetVec(r, -topValue(c, j))
	}
	if err := x.SolveVec(A, b); err != nil {
		panic(fmt.Errorf("singular stencil system for mode %d: %v", j, err))
	}
	return x.RawVector().Data
}

// Stencil maps cols Galerkin coefficients onto rows Chebyshev coefficients.
// Each Galerkin basis function satisfies the stencil's conditions at both
// walls, so a stencil built with cols = rows - deficit is exact.
func (lm LinearMap) Stencil(kind Kind, rows, cols int) *sparse.CSR {
	var (
		conds, ok = stencilConditions[kind]
		T         = utils.NewTriplets(rows, cols)
	)
	if !ok {
		panic(fmt.Errorf("%v is not a stencil operator", kind))
	}
	for j := 0; j < cols && j < rows; j++ {
		T.Add(j, j, 1)
		for q, c := range stencilCoefficients(conds, j) {
			if r := j + 2*(q+1); r < rows {
				T.Add(r, j, c)
			}
		}
	}
	return T.ToCSR()
}
