package types

import (
	"fmt"
	"sort"
	"strings"
)

// BCKind is the closed set of wall boundary conditions of the plane layer
type BCKind uint8

const (
	BCNoSlip BCKind = iota
	BCStressFree
	BCFixedTemperature
	BCFixedFlux
)

func (bc BCKind) String() string {
	names := map[BCKind]string{
		BCNoSlip:           "no_slip",
		BCStressFree:       "stress_free",
		BCFixedTemperature: "fixed_temperature",
		BCFixedFlux:        "fixed_flux",
	}
	if name, ok := names[bc]; ok {
		return name
	}
	return fmt.Sprintf("BCKind(%d)", uint8(bc))
}

// BCKindNames maps lowercase names found in input files to a BCKind
var BCKindNames = map[string]BCKind{
	"no_slip":           BCNoSlip,
	"noslip":            BCNoSlip,
	"wall":              BCNoSlip,
	"stress_free":       BCStressFree,
	"stressfree":        BCStressFree,
	"slip":              BCStressFree,
	"fixed_temperature": BCFixedTemperature,
	"fixedtemperature":  BCFixedTemperature,
	"isothermal":        BCFixedTemperature,
	"dirichlet":         BCFixedTemperature,
	"fixed_flux":        BCFixedFlux,
	"fixedflux":         BCFixedFlux,
	"heat_flux":         BCFixedFlux,
	"neumann":           BCFixedFlux,
}

// ParseBCKind is case insensitive. Unlike mesh tags there is no fallback
// kind, an unknown name is an error.
func ParseBCKind(name string) (bc BCKind, err error) {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	var ok bool
	if bc, ok = BCKindNames[lowerName]; !ok {
		err = fmt.Errorf("unknown boundary condition name: \"%s\"", name)
	}
	return
}

// BcMap selects the boundary condition of each physical field
type BcMap map[PhysicalName]BCKind

func (bcs BcMap) Lookup(pn PhysicalName) (bc BCKind, err error) {
	var ok bool
	if bc, ok = bcs[pn]; !ok {
		err = &ConfigError{Field: pn.Tag(), Err: ErrMissingBoundaryCondition}
	}
	return
}

func (bcs BcMap) String() string {
	keys := make([]int, 0, len(bcs))
	for k := range bcs {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", PhysicalName(k).Tag(), bcs[PhysicalName(k)])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
