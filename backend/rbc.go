package backend

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/planerbc/chebyshev"
	"github.com/notargets/planerbc/resolution"
	"github.com/notargets/planerbc/types"
	"github.com/notargets/planerbc/utils"
	"github.com/sirupsen/logrus"
)

// Fields lists the spectral fields of the model in equation order
var Fields = []types.FieldID{
	types.VelocityTor,
	types.VelocityPol,
	types.TemperatureScalar,
}

// Options selects the formulation of the model operators
type Options struct {
	// TruncateQI forms quasi-inverse products from truncated factors
	TruncateQI bool
	// SplitEquation solves the fourth order poloidal equation as two
	// second order operators
	SplitEquation bool
	Logger        *logrus.Logger
}

// rbc holds the parts of the model shared by all of its backends: field
// declarations, block sizing and boundary condition enforcement.
type rbc struct {
	opts  Options
	table *BCTable
	log   *logrus.Logger
}

func newRBC(opts Options) (r rbc, err error) {
	r = rbc{
		opts:  opts,
		table: NewBCTable(),
		log:   opts.Logger,
	}
	if r.log == nil {
		r.log = logrus.StandardLogger()
	}
	if err = r.table.Validate(Fields, opts.SplitEquation); err != nil {
		err = fmt.Errorf("boundary condition table: %w", err)
	}
	return
}

func (r rbc) FieldNames() []types.PhysicalName {
	return []types.PhysicalName{types.Velocity, types.Temperature}
}

func (r rbc) ParamNames() []types.NonDimensional {
	return []types.NonDimensional{types.Prandtl, types.Rayleigh}
}

// IsPeriodicBox is false for the wall-normal direction
func (r rbc) IsPeriodicBox() []bool {
	return []bool{false, true, true}
}

// AutomaticParameters fixes the layer to [0, 1] whatever the configuration
func (r rbc) AutomaticParameters(cfg types.NdMap) types.NdMap {
	return types.NdMap{
		types.Lower1d: 0,
		types.Upper1d: 1,
	}
}

// nBc is the number of boundary conditions of a field, 0 for fields the
// model does not declare.
func nBc(f types.FieldID) int {
	switch f {
	case types.VelocityTor, types.TemperatureScalar:
		return 2
	case types.VelocityPol:
		return 4
	}
	return 0
}

func (r rbc) NBc(f types.FieldID) int { return nBc(f) }

func (r rbc) formulation(f types.FieldID, isSplitOperator bool) Formulation {
	switch {
	case f != types.VelocityPol || !r.opts.SplitEquation:
		return Standard
	case isSplitOperator:
		return SplitSecondary
	}
	return SplitPrimary
}

// BlockSize sizes field f at matIdx. Sizing an undeclared field is a
// programming error and panics.
func (r rbc) BlockSize(f types.FieldID, res resolution.Resolution, matIdx int) (bs BlockSize) {
	if !contains(Fields, f) {
		panic(fmt.Errorf("block size requested for undeclared field %v", f))
	}
	var (
		s = nBc(f)
	)
	bs = BlockSize{
		TauN:  res.Dimensions(resolution.Spectral, matIdx)[0],
		Shift: [3]int{s, 0, 0},
		RHS:   1,
	}
	bs.GalN = bs.TauN - s
	if f == types.VelocityPol && r.opts.SplitEquation {
		bs.RHS = 2
	}
	if bs.GalN < 0 {
		panic(fmt.Errorf("resolution %d is too small for the %d boundary conditions of %v",
			bs.TauN, s, f))
	}
	return
}

// linearMap maps the layer bounds of nds onto the Chebyshev interval
func (r rbc) linearMap(nds types.NdMap) (lm chebyshev.LinearMap, err error) {
	var zi, zo float64
	if zi, err = nds.Lookup(types.Lower1d); err != nil {
		return
	}
	if zo, err = nds.Lookup(types.Upper1d); err != nil {
		return
	}
	if !(zo > zi) {
		err = &types.ConfigError{Param: fmt.Sprintf("[%g,%g]", zi, zo), Err: types.ErrInvalidParameter}
		return
	}
	lm = chebyshev.NewLinearMap(zi, zo, r.opts.TruncateQI)
	return
}

func (r rbc) tauRows(f types.FieldID, eigs []float64, bcs types.BcMap, isSplitOperator bool) ([]chebyshev.RowSpec, error) {
	bc, err := bcs.Lookup(f.Name)
	if err != nil {
		return nil, err
	}
	return r.table.TauRows(f, bc, r.formulation(f, isSplitOperator), eigs)
}

// applyTau adds the boundary rows of the row field to the leading rows of a
// square diagonal block. Off diagonal blocks and undeclared fields carry no
// boundary rows and are returned unchanged.
func (r rbc) applyTau(mat *sparse.CSR, row, col types.FieldID, matIdx int, eigs []float64,
	res resolution.Resolution, bcs types.BcMap, nds types.NdMap, isSplitOperator bool) (*sparse.CSR, error) {
	if row != col || !contains(Fields, row) {
		return mat, nil
	}
	specs, err := r.tauRows(row, eigs, bcs, isSplitOperator)
	if err != nil {
		return nil, err
	}
	lm, err := r.linearMap(nds)
	if err != nil {
		return nil, err
	}
	nN := res.Dimensions(resolution.Spectral, matIdx)[0]
	bo := lm.NewBoundaryOperator(nN, nN)
	for _, rs := range specs {
		bo.AddRow(rs.Cond, rs.Pos)
	}
	r.log.WithFields(logrus.Fields{
		"field": row,
		"rows":  specs,
		"eigs":  eigs,
	}).Debug("tau boundary rows")
	return utils.Add(mat, bo.Mat()), nil
}

// stencil builds the TauN x GalN basis change of field f. With makeSquare
// the stencil is truncated to its leading GalN rows.
func (r rbc) stencil(f types.FieldID, matIdx int, res resolution.Resolution, makeSquare bool,
	bcs types.BcMap, nds types.NdMap) (S *sparse.CSR, err error) {
	var (
		bc   types.BCKind
		kind chebyshev.Kind
		lm   chebyshev.LinearMap
	)
	if bc, err = bcs.Lookup(f.Name); err != nil {
		return
	}
	if kind, err = r.table.Stencil(f, bc); err != nil {
		return
	}
	if lm, err = r.linearMap(nds); err != nil {
		return
	}
	bs := r.BlockSize(f, res, matIdx)
	S = lm.Stencil(kind, bs.TauN, bs.GalN)
	if makeSquare {
		S = utils.Mul(lm.Id(bs.GalN, bs.TauN, 0), S)
	}
	return
}

// applyGalerkinStencil moves a block into Galerkin coordinates: the columns
// through the stencil of the column field, the rows by dropping the leading
// nBc(row) rows.
func (r rbc) applyGalerkinStencil(mat *sparse.CSR, row, col types.FieldID, matIdx int,
	res resolution.Resolution, bcs types.BcMap, nds types.NdMap) (*sparse.CSR, error) {
	S, err := r.stencil(col, matIdx, res, false, bcs, nds)
	if err != nil {
		return nil, err
	}
	return r.truncateRows(utils.Mul(mat, S), row, matIdx, res, nds)
}

// truncateRows drops the leading nBc(row) rows of a block
func (r rbc) truncateRows(mat *sparse.CSR, row types.FieldID, matIdx int,
	res resolution.Resolution, nds types.NdMap) (*sparse.CSR, error) {
	lm, err := r.linearMap(nds)
	if err != nil {
		return nil, err
	}
	bs := r.BlockSize(row, res, matIdx)
	return utils.Mul(lm.Id(bs.GalN, bs.TauN, bs.Shift[0]), mat), nil
}
