package chebyshev

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/planerbc/types"
	"github.com/notargets/planerbc/utils"
)

type Kind uint8

const (
	KindId Kind = iota
	KindD1
	KindD2
	KindI2
	KindI4
	KindStencilValue
	KindStencilD1
	KindStencilValueD1
	KindStencilValueD2
)

var kindNames = []string{
	"Id",
	"D1",
	"D2",
	"I2",
	"I4",
	"Stencil::Value",
	"Stencil::D1",
	"Stencil::ValueD1",
	"Stencil::ValueD2",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) IsStencil() bool {
	_, ok := stencilConditions[k]
	return ok
}

// Deficit is the number of columns a stencil has fewer than rows: one
// condition per wall for each listed condition.
func (k Kind) Deficit() int {
	return 2 * len(stencilConditions[k])
}

// Operator is the generic entry point of the factory. Square operators are
// built at max(rows, cols) and truncated to rows x cols.
func (lm LinearMap) Operator(kind Kind, rows, cols int) (M *sparse.CSR, err error) {
	var (
		n = max(rows, cols)
	)
	switch kind {
	case KindId:
		M = lm.Id(rows, cols, 0)
		return
	case KindStencilValue, KindStencilD1, KindStencilValueD1, KindStencilValueD2:
		M = lm.Stencil(kind, rows, cols)
		return
	case KindD1:
		M = lm.D1(n)
	case KindD2:
		M = lm.D2(n)
	case KindI2:
		M = lm.I2(n)
	case KindI4:
		M = lm.I4(n)
	default:
		err = &types.ConfigError{Op: kind.String(), Err: types.ErrUnknownOperator}
		return
	}
	if rows != n || cols != n {
		M = utils.Slice(M, 0, rows, 0, cols)
	}
	return
}
