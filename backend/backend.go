// Package backend assembles the model matrices of Boussinesq Rayleigh-Benard
// convection in a plane layer, in toroidal/poloidal form.
//
// A Backend declares the fields of the model and how they couple, sizes the
// per mode blocks implied by the boundary conditions, and builds the sparse
// operators a time stepper or eigen solver needs. Boundary conditions are
// enforced either by the tau method, where boundary rows are added to the
// leading (empty) rows of quasi-inverse operators, or by the Galerkin method,
// where the unknowns are expanded in a basis that satisfies the conditions and
// the leading rows are dropped.
package backend

import (
	"github.com/james-bowman/sparse"
	"github.com/notargets/planerbc/resolution"
	"github.com/notargets/planerbc/types"
	"github.com/notargets/planerbc/utils"
)

// EquationInfo describes the linear system of one equation
type EquationInfo struct {
	IsComplex bool
	HasQI     bool
	HasSource bool
	IndexMode types.IndexMode
	// BlockSize is the tau size of the coupled implicit system
	BlockSize int
}

// BlockSize is the sizing of a field at one matrix index. It is derived on
// demand and carries no state.
type BlockSize struct {
	TauN  int
	GalN  int
	Shift [3]int
	RHS   int
}

// Size returns the block dimension used by scheme
func (bs BlockSize) Size(scheme types.BCScheme) int {
	if scheme == types.Galerkin {
		return bs.GalN
	}
	return bs.TauN
}

// OperatorInfo is the sizing of one equation at one matrix index
type OperatorInfo struct {
	MatIdx int
	BlockSize
	// TauRows is the number of boundary rows the tau method adds
	TauRows int
}

// Backend is the interface the equation framework drives. Implementations
// are safe for concurrent use: calls only read their arguments and return
// freshly allocated matrices.
type Backend interface {
	FieldNames() []types.PhysicalName
	ParamNames() []types.NonDimensional
	IsPeriodicBox() []bool
	AutomaticParameters(cfg types.NdMap) types.NdMap

	ImplicitFields(f types.FieldID) []types.FieldID
	ExplicitFields(op types.OperatorKind, f types.FieldID) ([]types.FieldID, error)

	EquationInfo(f types.FieldID, res resolution.Resolution) EquationInfo
	OperatorInfo(f types.FieldID, res resolution.Resolution, cpl resolution.Coupling,
		bcs types.BcMap) ([]OperatorInfo, error)

	ModelMatrix(op types.OperatorKind, fields []types.FieldID, matIdx int, scheme types.BCScheme,
		res resolution.Resolution, eigs []float64, bcs types.BcMap, nds types.NdMap) (utils.DecoupledZSparse, error)
	GalerkinStencil(f types.FieldID, matIdx int, res resolution.Resolution, eigs []float64,
		makeSquare bool, bcs types.BcMap, nds types.NdMap) (*sparse.CSR, error)
	ExplicitBlock(row types.FieldID, op types.OperatorKind, col types.FieldID, matIdx int,
		res resolution.Resolution, eigs []float64, bcs types.BcMap, nds types.NdMap) (utils.DecoupledZSparse, error)
}

var _ Backend = (*ModelBackend)(nil)

// isMeanMode is true for the horizontally uniform mode
func isMeanMode(eigs []float64) bool {
	for _, k := range eigs {
		if k != 0 {
			return false
		}
	}
	return true
}

// wavenumber2 is the squared horizontal wavenumber k1^2 + k2^2
func wavenumber2(eigs []float64) (k2 float64) {
	for _, k := range eigs {
		k2 += k * k
	}
	return
}

func contains(fields []types.FieldID, f types.FieldID) bool {
	for _, ff := range fields {
		if ff == f {
			return true
		}
	}
	return false
}
