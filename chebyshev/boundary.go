package chebyshev

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/planerbc/utils"
)

type Position uint8

const (
	Top Position = iota // x = 1, z = Upper
	Bottom              // x = -1, z = Lower
)

func (p Position) String() string {
	if p == Top {
		return "TOP"
	}
	return "BOTTOM"
}

// Condition is the quantity a boundary row evaluates
type Condition uint8

const (
	CondValue Condition = iota
	CondD1
	CondD2
)

func (c Condition) String() string {
	switch c {
	case CondValue:
		return "Value"
	case CondD1:
		return "D1"
	case CondD2:
		return "D2"
	}
	return fmt.Sprintf("Condition(%d)", uint8(c))
}

func (c Condition) order() int { return int(c) }

// topValue is the condition applied to T_m at x = 1, in x units
func topValue(c Condition, m int) float64 {
	mm := float64(m * m)
	switch c {
	case CondValue:
		return 1
	case CondD1:
		return mm
	case CondD2:
		return mm * (mm - 1) / 3.
	}
	panic(fmt.Errorf("unknown boundary condition %v", c))
}

// BoundaryValue is the condition applied to T_m at position p, in z units
func (lm LinearMap) BoundaryValue(c Condition, p Position, m int) (v float64) {
	v = topValue(c, m)
	for k := 0; k < c.order(); k++ {
		v *= lm.Jacobian()
	}
	if p == Bottom && (m+c.order())%2 == 1 {
		v = -v
	}
	return
}

type RowSpec struct {
	Cond Condition
	Pos  Position
}

func (rs RowSpec) String() string {
	return rs.Cond.String() + "@" + rs.Pos.String()
}

// BoundaryOperator collects boundary rows, placed in the leading rows of a
// rows x cols matrix in the order they are added.
type BoundaryOperator struct {
	rows, cols int
	lm         LinearMap
	specs      []RowSpec
}

func (lm LinearMap) NewBoundaryOperator(rows, cols int) *BoundaryOperator {
	return &BoundaryOperator{
		rows: rows,
		cols: cols,
		lm:   lm,
	}
}

func (bo *BoundaryOperator) AddRow(c Condition, p Position) {
	if len(bo.specs) >= bo.rows {
		panic(fmt.Errorf("boundary operator with %d rows is full", bo.rows))
	}
	bo.specs = append(bo.specs, RowSpec{c, p})
}

func (bo *BoundaryOperator) Rows() []RowSpec { return bo.specs }

func (bo *BoundaryOperator) Mat() *sparse.CSR {
	var (
		T = utils.NewTriplets(bo.rows, bo.cols)
	)
	for i, rs := range bo.specs {
		for m := 0; m < bo.cols; m++ {
			T.Add(i, m, bo.lm.BoundaryValue(rs.Cond, rs.Pos, m))
		}
	}
	return T.ToCSR()
}
