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

// ModelBackend treats buoyancy and the background temperature gradient
// explicitly, so that every implicit operator is diagonal in the fields.
type ModelBackend struct {
	rbc
}

// NewModelBackend returns the Rayleigh-Benard backend configured by opts
func NewModelBackend(opts Options) (mb *ModelBackend, err error) {
	var r rbc
	if r, err = newRBC(opts); err != nil {
		return
	}
	mb = &ModelBackend{rbc: r}
	return
}

func (mb *ModelBackend) ImplicitFields(f types.FieldID) []types.FieldID {
	return []types.FieldID{f}
}

// ExplicitFields lists the fields entering the equation of f through the
// explicit operator op. Nonlinear terms are formed in physical space and
// projected back onto the equation they belong to, so each field lists only
// itself: advection u.grad(theta) enters the temperature equation as the
// Temperature nonlinear term.
func (mb *ModelBackend) ExplicitFields(op types.OperatorKind, f types.FieldID) ([]types.FieldID, error) {
	switch op {
	case types.OpExplicitLinear:
		switch f {
		case types.VelocityPol:
			return []types.FieldID{types.TemperatureScalar}, nil
		case types.TemperatureScalar:
			return []types.FieldID{types.VelocityPol}, nil
		}
		return nil, nil
	case types.OpExplicitNonlinear:
		if contains(Fields, f) {
			return []types.FieldID{f}, nil
		}
		return nil, nil
	case types.OpExplicitNextstep:
		return nil, nil
	}
	return nil, &types.ConfigError{Field: f.String(), Op: op.String(), Err: types.ErrUnknownOperator}
}

func (mb *ModelBackend) EquationInfo(f types.FieldID, res resolution.Resolution) (info EquationInfo) {
	info = EquationInfo{
		IsComplex: true,
		HasQI:     true,
		HasSource: false,
		IndexMode: types.IndexPerMode,
	}
	for _, g := range mb.ImplicitFields(f) {
		info.BlockSize += mb.BlockSize(g, res, 0).TauN
	}
	return
}

func (mb *ModelBackend) OperatorInfo(f types.FieldID, res resolution.Resolution, cpl resolution.Coupling,
	bcs types.BcMap) (infos []OperatorInfo, err error) {
	infos = make([]OperatorInfo, cpl.NMat())
	for matIdx := range infos {
		var specs []chebyshev.RowSpec
		if specs, err = mb.tauRows(f, cpl.Eigs(matIdx), bcs, false); err != nil {
			return nil, err
		}
		infos[matIdx] = OperatorInfo{
			MatIdx:    matIdx,
			BlockSize: mb.BlockSize(f, res, matIdx),
			TauRows:   len(specs),
		}
	}
	return
}

func (mb *ModelBackend) uncoupled(row, col types.FieldID, op types.OperatorKind) error {
	return &types.ConfigError{
		Field: fmt.Sprintf("%v<-%v", row, col),
		Op:    op.String(),
		Err:   types.ErrUncoupledBlock,
	}
}

func (mb *ModelBackend) isSplitPol(f types.FieldID) bool {
	return f == types.VelocityPol && mb.opts.SplitEquation
}

// isFourthOrder is true when the equation of f is the fourth order poloidal
// equation, which has two boundary rows fewer at the mean mode.
func (mb *ModelBackend) isFourthOrder(f types.FieldID, eigs []float64) bool {
	return f == types.VelocityPol && !mb.opts.SplitEquation && !isMeanMode(eigs)
}

func (mb *ModelBackend) prandtl(nds types.NdMap) (Pr float64, err error) {
	if Pr, err = nds.Lookup(types.Prandtl); err == nil && Pr == 0 {
		err = &types.ConfigError{Param: types.Prandtl.Tag(), Err: types.ErrInvalidParameter}
	}
	return
}

// implicitBlock is the raw (tau basis) implicit operator of row <- col
func (mb *ModelBackend) implicitBlock(row, col types.FieldID, matIdx int, res resolution.Resolution,
	eigs []float64, nds types.NdMap, isSplitOperator bool) (M *sparse.CSR, err error) {
	var (
		lm chebyshev.LinearMap
		Pr float64
		k2 = wavenumber2(eigs)
	)
	if row != col {
		return nil, mb.uncoupled(row, col, types.OpImplicitLinear)
	}
	if isSplitOperator && !mb.isSplitPol(row) {
		return nil, &types.ConfigError{Field: row.String(), Op: types.OpSplitImplicitLinear.String(),
			Err: types.ErrUnknownOperator}
	}
	if lm, err = mb.linearMap(nds); err != nil {
		return
	}
	nN := mb.BlockSize(row, res, matIdx).TauN
	switch row {
	case types.VelocityTor:
		M = lm.I2Lapl(nN, k2)
	case types.VelocityPol:
		switch {
		case isMeanMode(eigs):
			// The mean poloidal potential carries no velocity, it relaxes to zero
			M = utils.Scale(-1, lm.I2(nN))
		case mb.opts.SplitEquation:
			M = lm.I2Lapl(nN, k2)
		default:
			M = lm.I4Lapl2(nN, k2)
		}
	case types.TemperatureScalar:
		if Pr, err = mb.prandtl(nds); err != nil {
			return
		}
		M = utils.Scale(1./Pr, lm.I2Lapl(nN, k2))
	}
	return
}

// timeBlock is the raw mass operator of field f
func (mb *ModelBackend) timeBlock(row, col types.FieldID, matIdx int, res resolution.Resolution,
	eigs []float64, nds types.NdMap) (M *sparse.CSR, err error) {
	var (
		lm chebyshev.LinearMap
	)
	if row != col {
		return nil, mb.uncoupled(row, col, types.OpTime)
	}
	if lm, err = mb.linearMap(nds); err != nil {
		return
	}
	nN := mb.BlockSize(row, res, matIdx).TauN
	switch {
	case mb.isFourthOrder(row, eigs):
		M = lm.I4Lapl(nN, wavenumber2(eigs))
	default:
		M = lm.I2(nN)
	}
	return
}

// explicitBlock is the tau basis operator applied to the explicit term of
// col in the equation of row.
func (mb *ModelBackend) explicitBlock(row types.FieldID, op types.OperatorKind, col types.FieldID, matIdx int,
	res resolution.Resolution, eigs []float64, nds types.NdMap) (M *sparse.CSR, err error) {
	var (
		lm     chebyshev.LinearMap
		fields []types.FieldID
		Ra, Pr float64
	)
	if fields, err = mb.ExplicitFields(op, row); err != nil {
		return
	}
	if !contains(fields, col) {
		return nil, mb.uncoupled(row, col, op)
	}
	if lm, err = mb.linearMap(nds); err != nil {
		return
	}
	var (
		nN = mb.BlockSize(row, res, matIdx).TauN
		// quasi-inverse of the row equation
		qi = lm.I2(nN)
	)
	if mb.isFourthOrder(row, eigs) {
		qi = lm.I4(nN)
	}
	switch op {
	case types.OpExplicitNonlinear:
		M = qi
	case types.OpExplicitLinear:
		switch row {
		case types.VelocityPol:
			if Ra, err = nds.Lookup(types.Rayleigh); err != nil {
				return
			}
			if Pr, err = mb.prandtl(nds); err != nil {
				return
			}
			if isMeanMode(eigs) {
				// mean buoyancy is balanced by the mean pressure
				M = utils.NewCSR(nN, nN)
				return
			}
			M = utils.Scale(-Ra/Pr, qi)
		case types.TemperatureScalar:
			M = utils.Scale(wavenumber2(eigs), qi)
		}
	}
	if M == nil {
		return nil, mb.uncoupled(row, col, op)
	}
	return
}

// splitBoundaryValueBlock carries the boundary value the secondary operator
// of the split poloidal equation receives from the primary solution.
func (mb *ModelBackend) splitBoundaryValueBlock(row, col types.FieldID, matIdx int,
	res resolution.Resolution, nds types.NdMap) (M *sparse.CSR, err error) {
	var (
		lm chebyshev.LinearMap
	)
	if !mb.isSplitPol(row) || row != col {
		return nil, &types.ConfigError{Field: row.String(), Op: types.OpSplitBoundaryValue.String(),
			Err: types.ErrUnknownOperator}
	}
	if lm, err = mb.linearMap(nds); err != nil {
		return
	}
	nN := mb.BlockSize(row, res, matIdx).TauN
	bo := lm.NewBoundaryOperator(nN, nN)
	bo.AddRow(chebyshev.CondValue, chebyshev.Top)
	bo.AddRow(chebyshev.CondValue, chebyshev.Bottom)
	M = bo.Mat()
	return
}

// ExplicitBlock returns the explicit operator of col in the equation of row
// in the tau basis.
func (mb *ModelBackend) ExplicitBlock(row types.FieldID, op types.OperatorKind, col types.FieldID, matIdx int,
	res resolution.Resolution, eigs []float64, bcs types.BcMap, nds types.NdMap) (z utils.DecoupledZSparse, err error) {
	if !op.IsExplicit() {
		err = &types.ConfigError{Field: row.String(), Op: op.String(), Err: types.ErrUnknownOperator}
		return
	}
	var M *sparse.CSR
	if M, err = mb.explicitBlock(row, op, col, matIdx, res, eigs, nds); err != nil {
		return
	}
	z = utils.RealZ(M)
	return
}

// GalerkinStencil returns the stencil of field f
func (mb *ModelBackend) GalerkinStencil(f types.FieldID, matIdx int, res resolution.Resolution, eigs []float64,
	makeSquare bool, bcs types.BcMap, nds types.NdMap) (*sparse.CSR, error) {
	return mb.stencil(f, matIdx, res, makeSquare, bcs, nds)
}

// ModelMatrix builds operator op for the coupled fields at matIdx. Blocks are
// placed at offsets given by the field sizes of the scheme, explicit operators
// keep tau sized columns.
func (mb *ModelBackend) ModelMatrix(op types.OperatorKind, fields []types.FieldID, matIdx int, scheme types.BCScheme,
	res resolution.Resolution, eigs []float64, bcs types.BcMap, nds types.NdMap) (z utils.DecoupledZSparse, err error) {
	var (
		rowOff, colOff = mb.offsets(fields, res, matIdx, scheme, op)
		nr, nc         = rowOff[len(fields)], colOff[len(fields)]
		zb             = utils.NewZBlockBuilder(nr, nc)
	)
	for i, row := range fields {
		for j, col := range fields {
			var (
				coupled bool
				M       *sparse.CSR
			)
			if coupled, err = mb.isCoupled(op, row, col); err != nil {
				return
			}
			if !coupled {
				continue
			}
			if M, err = mb.block(op, row, col, matIdx, scheme, res, eigs, bcs, nds); err != nil {
				return
			}
			mb.log.WithFields(logrus.Fields{
				"op":     op,
				"row":    row,
				"col":    col,
				"matIdx": matIdx,
				"scheme": scheme,
				"nnz":    M.NNZ(),
			}).Debug("model block")
			zb.Place(utils.RealZ(M), rowOff[i], colOff[j])
		}
	}
	z = zb.Build()
	return
}

func (mb *ModelBackend) offsets(fields []types.FieldID, res resolution.Resolution, matIdx int,
	scheme types.BCScheme, op types.OperatorKind) (rowOff, colOff []int) {
	rowOff = make([]int, len(fields)+1)
	colOff = make([]int, len(fields)+1)
	for i, f := range fields {
		bs := mb.BlockSize(f, res, matIdx)
		rowOff[i+1] = rowOff[i] + bs.Size(scheme)
		switch {
		case op.IsExplicit():
			colOff[i+1] = colOff[i] + bs.TauN
		case op == types.OpStencil:
			colOff[i+1] = colOff[i] + bs.GalN
			rowOff[i+1] = rowOff[i] + bs.TauN
		default:
			colOff[i+1] = colOff[i] + bs.Size(scheme)
		}
	}
	return
}

func (mb *ModelBackend) isCoupled(op types.OperatorKind, row, col types.FieldID) (bool, error) {
	if op.IsExplicit() {
		fields, err := mb.ExplicitFields(op, row)
		return contains(fields, col), err
	}
	return contains(mb.ImplicitFields(row), col), nil
}

// block builds one coupled block of op in the coordinates of scheme
func (mb *ModelBackend) block(op types.OperatorKind, row, col types.FieldID, matIdx int, scheme types.BCScheme,
	res resolution.Resolution, eigs []float64, bcs types.BcMap, nds types.NdMap) (M *sparse.CSR, err error) {
	var (
		addRows, isSplitOperator bool
	)
	switch op {
	case types.OpImplicitLinear:
		M, err = mb.implicitBlock(row, col, matIdx, res, eigs, nds, false)
		addRows = true
	case types.OpSplitImplicitLinear:
		M, err = mb.implicitBlock(row, col, matIdx, res, eigs, nds, true)
		addRows, isSplitOperator = true, true
	case types.OpTime:
		M, err = mb.timeBlock(row, col, matIdx, res, eigs, nds)
	case types.OpBoundary, types.OpSplitBoundary:
		if op == types.OpSplitBoundary && !mb.isSplitPol(row) {
			return nil, &types.ConfigError{Field: row.String(), Op: op.String(), Err: types.ErrUnknownOperator}
		}
		if scheme == types.Galerkin {
			bs := mb.BlockSize(row, res, matIdx)
			return utils.NewCSR(bs.GalN, mb.BlockSize(col, res, matIdx).GalN), nil
		}
		nr, nc := mb.BlockSize(row, res, matIdx).TauN, mb.BlockSize(col, res, matIdx).TauN
		return mb.applyTau(utils.NewCSR(nr, nc), row, col, matIdx, eigs, res, bcs, nds,
			op == types.OpSplitBoundary)
	case types.OpSplitBoundaryValue:
		M, err = mb.splitBoundaryValueBlock(row, col, matIdx, res, nds)
	case types.OpStencil:
		if row != col {
			return nil, mb.uncoupled(row, col, op)
		}
		return mb.stencil(row, matIdx, res, false, bcs, nds)
	case types.OpExplicitLinear, types.OpExplicitNonlinear, types.OpExplicitNextstep:
		if M, err = mb.explicitBlock(row, op, col, matIdx, res, eigs, nds); err != nil {
			return
		}
		if scheme == types.Galerkin {
			return mb.truncateRows(M, row, matIdx, res, nds)
		}
		return
	default:
		return nil, &types.ConfigError{Field: row.String(), Op: op.String(), Err: types.ErrUnknownOperator}
	}
	if err != nil {
		return
	}
	switch {
	case scheme == types.Galerkin:
		M, err = mb.applyGalerkinStencil(M, row, col, matIdx, res, bcs, nds)
	case addRows:
		M, err = mb.applyTau(M, row, col, matIdx, eigs, res, bcs, nds, isSplitOperator)
	}
	return
}
