package types

import (
	"fmt"
	"strings"
)

type NonDimensional uint8

const (
	Prandtl NonDimensional = iota
	Rayleigh
	Lower1d
	Upper1d
	Scale1d
	Scale2d
)

var nondimensionalTags = []string{
	"prandtl",
	"rayleigh",
	"lower1d",
	"upper1d",
	"scale1d",
	"scale2d",
}

func (nd NonDimensional) Tag() string {
	if int(nd) < len(nondimensionalTags) {
		return nondimensionalTags[nd]
	}
	return "unknown"
}

func (nd NonDimensional) String() string { return nd.Tag() }

func ParseNonDimensional(tag string) (nd NonDimensional, err error) {
	lower := strings.ToLower(strings.TrimSpace(tag))
	for i, t := range nondimensionalTags {
		if t == lower {
			nd = NonDimensional(i)
			return
		}
	}
	err = fmt.Errorf("unknown nondimensional parameter: \"%s\"", tag)
	return
}

// NdMap holds the nondimensional parameters of a run. It is read only
// once handed to a backend.
type NdMap map[NonDimensional]float64

func (nds NdMap) Lookup(nd NonDimensional) (val float64, err error) {
	var ok bool
	if val, ok = nds[nd]; !ok {
		err = &ConfigError{Param: nd.Tag(), Err: ErrMissingParameter}
	}
	return
}

// Merge returns a new map holding nds overlaid with other
func (nds NdMap) Merge(other NdMap) (merged NdMap) {
	merged = make(NdMap, len(nds)+len(other))
	for k, v := range nds {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return
}
