package types

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownBoundaryCondition is returned for a field/boundary condition
	// combination the model does not implement.
	ErrUnknownBoundaryCondition = errors.New("boundary condition not implemented")

	// ErrUnknownOperator is returned for an operator kind a backend does not build
	ErrUnknownOperator = errors.New("operator not implemented")

	ErrMissingParameter         = errors.New("missing nondimensional parameter")
	ErrInvalidParameter         = errors.New("invalid nondimensional parameter")
	ErrMissingBoundaryCondition = errors.New("missing boundary condition")

	// ErrUncoupledBlock is returned when a block is requested for two fields
	// the model does not couple through the requested operator.
	ErrUncoupledBlock = errors.New("fields are not coupled")

	// ErrNonFinite is returned when an assembled matrix holds NaN or Inf entries
	ErrNonFinite = errors.New("non-finite matrix entry")
)

// ConfigError names the offending field, boundary condition, parameter or
// operator of an assembly request that cannot be satisfied.
type ConfigError struct {
	Field string
	BC    string
	Param string
	Op    string
	Err   error
}

func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	sep := " ("
	add := func(key, val string) {
		if val == "" {
			return
		}
		sb.WriteString(sep + key + "=" + val)
		sep = ", "
	}
	add("field", e.Field)
	add("bc", e.BC)
	add("param", e.Param)
	add("op", e.Op)
	if sep == ", " {
		sb.WriteString(")")
	}
	return sb.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }
