package backend

import (
	"fmt"

	"github.com/notargets/planerbc/chebyshev"
	"github.com/notargets/planerbc/types"
)

// Formulation selects which operator of the poloidal equation a boundary
// row belongs to.
type Formulation uint8

const (
	Standard       Formulation = iota // fourth order poloidal equation
	SplitPrimary                      // first second order operator of the split equation
	SplitSecondary                    // second (split) operator of the split equation
)

func (f Formulation) String() string {
	switch f {
	case Standard:
		return "standard"
	case SplitPrimary:
		return "split_primary"
	case SplitSecondary:
		return "split_secondary"
	}
	return fmt.Sprintf("Formulation(%d)", uint8(f))
}

type ModeClass uint8

const (
	AnyMode ModeClass = iota
	MeanMode
	GeneralMode
)

func (mc ModeClass) String() string {
	switch mc {
	case AnyMode:
		return "any"
	case MeanMode:
		return "mean"
	case GeneralMode:
		return "general"
	}
	return fmt.Sprintf("ModeClass(%d)", uint8(mc))
}

type tauKey struct {
	Field types.FieldID
	BC    types.BCKind
	Form  Formulation
	Mode  ModeClass
}

type stencilKey struct {
	Field types.FieldID
	BC    types.BCKind
}

// BCTable maps a field, its boundary condition and the formulation onto the
// tau rows and Galerkin stencil that enforce it.
type BCTable struct {
	tau     map[tauKey][]chebyshev.RowSpec
	stencil map[stencilKey]chebyshev.Kind
}

// Admissible lists the boundary conditions each physical field accepts
var Admissible = map[types.PhysicalName][]types.BCKind{
	types.Velocity:    {types.BCNoSlip, types.BCStressFree},
	types.Temperature: {types.BCFixedTemperature, types.BCFixedFlux},
}

func pair(c chebyshev.Condition) []chebyshev.RowSpec {
	return []chebyshev.RowSpec{{Cond: c, Pos: chebyshev.Top}, {Cond: c, Pos: chebyshev.Bottom}}
}

func pairs(cs ...chebyshev.Condition) (rows []chebyshev.RowSpec) {
	for _, c := range cs {
		rows = append(rows, pair(c)...)
	}
	return
}

// NewBCTable returns the boundary condition table of the plane layer model
func NewBCTable() (t *BCTable) {
	var (
		tor, pol, temp = types.VelocityTor, types.VelocityPol, types.TemperatureScalar
		value, d1, d2  = chebyshev.CondValue, chebyshev.CondD1, chebyshev.CondD2
	)
	t = &BCTable{
		tau: map[tauKey][]chebyshev.RowSpec{
			{tor, types.BCNoSlip, Standard, AnyMode}:     pairs(value),
			{tor, types.BCStressFree, Standard, AnyMode}: pairs(d1),

			{pol, types.BCNoSlip, SplitPrimary, AnyMode}:       pairs(d1),
			{pol, types.BCStressFree, SplitPrimary, AnyMode}:   pairs(d2),
			{pol, types.BCNoSlip, SplitSecondary, AnyMode}:     pairs(value),
			{pol, types.BCStressFree, SplitSecondary, AnyMode}: pairs(value),

			// The mean poloidal mode is degenerate and takes its own rows
			{pol, types.BCNoSlip, Standard, MeanMode}:        pairs(value),
			{pol, types.BCNoSlip, Standard, GeneralMode}:     pairs(value, d1),
			{pol, types.BCStressFree, Standard, MeanMode}:    pairs(d1),
			{pol, types.BCStressFree, Standard, GeneralMode}: pairs(value, d2),

			{temp, types.BCFixedTemperature, Standard, AnyMode}: pairs(value),
			{temp, types.BCFixedFlux, Standard, AnyMode}:        pairs(d1),
		},
		stencil: map[stencilKey]chebyshev.Kind{
			{tor, types.BCNoSlip}:            chebyshev.KindStencilValue,
			{tor, types.BCStressFree}:        chebyshev.KindStencilD1,
			{pol, types.BCNoSlip}:            chebyshev.KindStencilValueD1,
			{pol, types.BCStressFree}:        chebyshev.KindStencilValueD2,
			{temp, types.BCFixedTemperature}: chebyshev.KindStencilValue,
			{temp, types.BCFixedFlux}:        chebyshev.KindStencilD1,
		},
	}
	return
}

// formulations lists the formulations under which f carries boundary rows
func formulations(f types.FieldID, split bool) []Formulation {
	if f == types.VelocityPol && split {
		return []Formulation{SplitPrimary, SplitSecondary}
	}
	return []Formulation{Standard}
}

// Validate checks that every admissible boundary condition of every field
// has tau rows for all mode classes and a stencil removing exactly
// nBc(field) columns.
func (t *BCTable) Validate(fields []types.FieldID, split bool) (err error) {
	for _, f := range fields {
		nbc := nBc(f)
		for _, bc := range Admissible[f.Name] {
			for _, form := range formulations(f, split) {
				for _, mc := range []ModeClass{MeanMode, GeneralMode} {
					rows, ok := t.tauRows(f, bc, form, mc)
					if !ok || len(rows) == 0 {
						return fmt.Errorf("no %s %s tau rows for %v with %v",
							form, mc, f, bc)
					}
					if len(rows) > nbc {
						return fmt.Errorf("%d tau rows for %v with %v exceed its %d boundary conditions",
							len(rows), f, bc, nbc)
					}
				}
			}
			kind, ok := t.stencil[stencilKey{f, bc}]
			if !ok {
				return fmt.Errorf("no Galerkin stencil for %v with %v", f, bc)
			}
			if kind.Deficit() != nbc {
				return fmt.Errorf("stencil %v for %v removes %d columns, need %d",
					kind, f, kind.Deficit(), nbc)
			}
		}
	}
	return
}

func (t *BCTable) tauRows(f types.FieldID, bc types.BCKind, form Formulation, mc ModeClass) (rows []chebyshev.RowSpec, ok bool) {
	if rows, ok = t.tau[tauKey{f, bc, form, AnyMode}]; ok {
		return
	}
	rows, ok = t.tau[tauKey{f, bc, form, mc}]
	return
}

// TauRows returns the boundary rows of f for the given mode
func (t *BCTable) TauRows(f types.FieldID, bc types.BCKind, form Formulation, eigs []float64) ([]chebyshev.RowSpec, error) {
	mc := GeneralMode
	if isMeanMode(eigs) {
		mc = MeanMode
	}
	rows, ok := t.tauRows(f, bc, form, mc)
	if !ok {
		return nil, &types.ConfigError{Field: f.String(), BC: bc.String(), Err: types.ErrUnknownBoundaryCondition}
	}
	return rows, nil
}

// Stencil returns the Galerkin stencil kind of f under bc
func (t *BCTable) Stencil(f types.FieldID, bc types.BCKind) (chebyshev.Kind, error) {
	kind, ok := t.stencil[stencilKey{f, bc}]
	if !ok {
		return 0, &types.ConfigError{Field: f.String(), BC: bc.String(), Err: types.ErrUnknownBoundaryCondition}
	}
	return kind, nil
}
