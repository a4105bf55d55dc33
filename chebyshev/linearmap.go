// Package chebyshev builds sparse spectral operators for a Chebyshev
// expansion on an interval [Lower, Upper] mapped linearly onto [-1, 1].
//
// All operators act on coefficient vectors: column j of an operator holds the
// coefficients of the operator applied to T_j. Quasi-inverse operators (I2,
// I4) are the banded integration operators whose leading rows are left empty
// so that boundary rows can be placed there by the tau method.
package chebyshev

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"github.com/notargets/planerbc/utils"
)

// LinearMap builds Chebyshev operators on the physical interval [Lower, Upper]
type LinearMap struct {
	Lower, Upper float64
	// TruncateQI builds quasi-inverse products from the truncated factors,
	// which changes the last rows of I2 and I4. Otherwise the products are
	// formed at an extended size and then truncated, giving the exact
	// banded operator.
	TruncateQI bool
}

func NewLinearMap(lower, upper float64, truncateQI bool) (lm LinearMap) {
	if !(upper > lower) {
		panic(fmt.Errorf("invalid interval [%g, %g]", lower, upper))
	}
	lm = LinearMap{
		Lower:      lower,
		Upper:      upper,
		TruncateQI: truncateQI,
	}
	return
}

// Jacobian is dx/dz for x in [-1,1] and z in [Lower,Upper]
func (lm LinearMap) Jacobian() float64 {
	return 2. / (lm.Upper - lm.Lower)
}

// Id is the rows x cols identity with entries at (i, i+shift). Used to
// truncate an operator to its leading rows, or, with shift > 0, to drop the
// leading rows.
func (lm LinearMap) Id(rows, cols, shift int) *sparse.CSR {
	var (
		T = utils.NewTriplets(rows, cols)
	)
	for i := 0; i < rows; i++ {
		if j := i + shift; j >= 0 && j < cols {
			T.Add(i, j, 1)
		}
	}
	return T.ToCSR()
}

// IdQ is the n x n identity with the first q rows zeroed
func (lm LinearMap) IdQ(n, q int) *sparse.CSR {
	var (
		T = utils.NewTriplets(n, n)
	)
	for i := q; i < n; i++ {
		T.Add(i, i, 1)
	}
	return T.ToCSR()
}

func (lm LinearMap) D1(n int) *sparse.CSR {
	var (
		T = utils.NewTriplets(n, n)
		J = lm.Jacobian()
	)
	for k := 0; k < n; k++ {
		for p := k + 1; p < n; p += 2 {
			v := 2. * float64(p)
			if k == 0 {
				v = float64(p)
			}
			T.Add(k, p, J*v)
		}
	}
	return T.ToCSR()
}

// D2 is exact at any truncation since D1 is strictly upper triangular
func (lm LinearMap) D2(n int) *sparse.CSR {
	D := lm.D1(n)
	return utils.Mul(D, D)
}

// integral is the unscaled first integration operator on [-1,1] with an
// empty first row (the integration constant).
func integral(m int) *sparse.CSR {
	var (
		T = utils.NewTriplets(m, m)
	)
	for k := 1; k < m; k++ {
		kk := float64(k)
		if k == 1 {
			T.Add(k, k-1, 1.)
		} else {
			T.Add(k, k-1, 1./(2.*kk))
		}
		if k+1 < m {
			T.Add(k, k+1, -1./(2.*kk))
		}
	}
	return T.ToCSR()
}

func (lm LinearMap) quasiInverse(n, order int) *sparse.CSR {
	var (
		m     = n
		scale = math.Pow(lm.Jacobian(), -float64(order))
	)
	if !lm.TruncateQI {
		m = n + order
	}
	I1 := integral(m)
	P := I1
	for k := 1; k < order; k++ {
		P = utils.Mul(P, I1)
	}
	P = utils.Slice(P, 0, n, 0, n)
	return utils.Scale(scale, utils.ZeroLeadingRows(P, order))
}

func (lm LinearMap) I2(n int) *sparse.CSR { return lm.quasiInverse(n, 2) }

func (lm LinearMap) I4(n int) *sparse.CSR { return lm.quasiInverse(n, 4) }

func (lm LinearMap) I2D2(n int) *sparse.CSR { return lm.IdQ(n, 2) }

func (lm LinearMap) I4D4(n int) *sparse.CSR { return lm.IdQ(n, 4) }

// I4D2 is I2 with two more leading rows removed
func (lm LinearMap) I4D2(n int) *sparse.CSR {
	return utils.ZeroLeadingRows(lm.I2(n), 4)
}

// I2Lapl is I2 (D^2 - k^2)
func (lm LinearMap) I2Lapl(n int, k2 float64) *sparse.CSR {
	return utils.LinComb(
		utils.Term{Alpha: 1, M: lm.I2D2(n)},
		utils.Term{Alpha: -k2, M: lm.I2(n)},
	)
}

// I4Lapl is I4 (D^2 - k^2)
func (lm LinearMap) I4Lapl(n int, k2 float64) *sparse.CSR {
	return utils.LinComb(
		utils.Term{Alpha: 1, M: lm.I4D2(n)},
		utils.Term{Alpha: -k2, M: lm.I4(n)},
	)
}

// I4Lapl2 is I4 (D^2 - k^2)^2
func (lm LinearMap) I4Lapl2(n int, k2 float64) *sparse.CSR {
	return utils.LinComb(
		utils.Term{Alpha: 1, M: lm.I4D4(n)},
		utils.Term{Alpha: -2. * k2, M: lm.I4D2(n)},
		utils.Term{Alpha: k2 * k2, M: lm.I4(n)},
	)
}
