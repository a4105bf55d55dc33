package types

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	{ // Boundary condition names are case insensitive with aliases
		tokens := []string{"No_Slip", "wall", "STRESS_FREE", "isothermal", " Neumann ", "fixed_flux"}
		kinds := []BCKind{BCNoSlip, BCNoSlip, BCStressFree, BCFixedTemperature, BCFixedFlux, BCFixedFlux}
		for i, token := range tokens {
			bc, err := ParseBCKind(token)
			require.NoError(t, err)
			assert.Equal(t, kinds[i], bc)
		}
		_, err := ParseBCKind("periodic")
		assert.Error(t, err)
		assert.Equal(t, "stress_free", BCStressFree.String())
		assert.Equal(t, "BCKind(9)", BCKind(9).String())
	}
	{ // Physical names and nondimensional parameters
		pn, err := ParsePhysicalName("Temperature")
		require.NoError(t, err)
		assert.Equal(t, Temperature, pn)
		_, err = ParsePhysicalName("pressure")
		assert.Error(t, err)
		nd, err := ParseNonDimensional("RAYLEIGH")
		require.NoError(t, err)
		assert.Equal(t, Rayleigh, nd)
		assert.Equal(t, "upper1d", Upper1d.String())
		_, err = ParseNonDimensional("reynolds")
		assert.Error(t, err)
	}
	{ // Operators and schemes
		op, err := ParseOperatorKind("split_boundary_value")
		require.NoError(t, err)
		assert.Equal(t, OpSplitBoundaryValue, op)
		assert.True(t, OpExplicitNextstep.IsExplicit())
		assert.False(t, OpTime.IsExplicit())
		_, err = ParseOperatorKind("curl")
		assert.True(t, errors.Is(err, ErrUnknownOperator))
		assert.Equal(t, "OperatorKind(42)", OperatorKind(42).String())
		s, err := ParseBCScheme("Galerkin")
		require.NoError(t, err)
		assert.Equal(t, Galerkin, s)
		s, err = ParseBCScheme("")
		require.NoError(t, err)
		assert.Equal(t, Tau, s)
		assert.Equal(t, "mode", IndexPerMode.String())
	}
}

func TestFieldID(t *testing.T) {
	fields := []FieldID{TemperatureScalar, VelocityPol, VelocityTor}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Less(fields[j]) })
	assert.Equal(t, []FieldID{VelocityTor, VelocityPol, TemperatureScalar}, fields)
	assert.Equal(t, "(velocity,tor)", VelocityTor.String())
	assert.Equal(t, "(temperature,scalar)", TemperatureScalar.String())
	m := map[FieldID]int{VelocityPol: 1}
	assert.Equal(t, 1, m[FieldID{Velocity, Poloidal}])
}

func TestMaps(t *testing.T) {
	{
		bcs := BcMap{Temperature: BCFixedFlux, Velocity: BCNoSlip}
		assert.Equal(t, "{velocity=no_slip, temperature=fixed_flux}", bcs.String())
		bc, err := bcs.Lookup(Temperature)
		require.NoError(t, err)
		assert.Equal(t, BCFixedFlux, bc)
		_, err = BcMap{}.Lookup(Velocity)
		assert.True(t, errors.Is(err, ErrMissingBoundaryCondition))
		assert.Equal(t, "missing boundary condition (field=velocity)", err.Error())
	}
	{
		nds := NdMap{Prandtl: 7, Rayleigh: 1.e4}
		merged := nds.Merge(NdMap{Lower1d: 0, Upper1d: 1, Prandtl: 1})
		assert.Len(t, nds, 2)
		assert.Equal(t, 7., nds[Prandtl])
		assert.Equal(t, 1., merged[Prandtl])
		assert.Len(t, merged, 4)
		_, err := nds.Lookup(Scale1d)
		var ce *ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "scale1d", ce.Param)
		assert.True(t, errors.Is(err, ErrMissingParameter))
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "(velocity,pol)", BC: "fixed_flux", Err: ErrUnknownBoundaryCondition}
	assert.Equal(t, "boundary condition not implemented (field=(velocity,pol), bc=fixed_flux)", err.Error())
	assert.Equal(t, ErrUnknownBoundaryCondition, errors.Unwrap(err))
	bare := &ConfigError{Err: ErrUncoupledBlock}
	assert.Equal(t, "fields are not coupled", bare.Error())
}
