package types

import (
	"fmt"
	"strings"
)

// OperatorKind selects which model matrix is requested from a backend
type OperatorKind uint8

const (
	OpImplicitLinear OperatorKind = iota
	OpTime
	OpBoundary
	OpExplicitLinear
	OpExplicitNonlinear
	OpExplicitNextstep
	OpStencil
	OpSplitImplicitLinear
	OpSplitBoundary
	OpSplitBoundaryValue
)

var operatorNames = []string{
	"implicit_linear",
	"time",
	"boundary",
	"explicit_linear",
	"explicit_nonlinear",
	"explicit_nextstep",
	"stencil",
	"split_implicit_linear",
	"split_boundary",
	"split_boundary_value",
}

func (op OperatorKind) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return fmt.Sprintf("OperatorKind(%d)", uint8(op))
}

func (op OperatorKind) IsExplicit() bool {
	return op == OpExplicitLinear || op == OpExplicitNonlinear || op == OpExplicitNextstep
}

func ParseOperatorKind(name string) (op OperatorKind, err error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range operatorNames {
		if n == lower {
			op = OperatorKind(i)
			return
		}
	}
	err = &ConfigError{Op: name, Err: ErrUnknownOperator}
	return
}

// BCScheme selects how boundary conditions are enforced
type BCScheme uint8

const (
	Tau BCScheme = iota
	Galerkin
)

func (s BCScheme) String() string {
	switch s {
	case Tau:
		return "tau"
	case Galerkin:
		return "galerkin"
	}
	return fmt.Sprintf("BCScheme(%d)", uint8(s))
}

func ParseBCScheme(name string) (s BCScheme, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tau", "":
		s = Tau
	case "galerkin":
		s = Galerkin
	default:
		err = fmt.Errorf("unknown boundary condition scheme: \"%s\"", name)
	}
	return
}

// IndexMode describes how matrix indexes map onto the separable directions
type IndexMode uint8

const (
	IndexSlowestSingleRHS IndexMode = iota
	IndexSlowestMultiRHS
	IndexPerMode
	IndexSingle
)

func (im IndexMode) String() string {
	switch im {
	case IndexSlowestSingleRHS:
		return "slowest_single_rhs"
	case IndexSlowestMultiRHS:
		return "slowest_multi_rhs"
	case IndexPerMode:
		return "mode"
	case IndexSingle:
		return "single"
	}
	return "unknown"
}
