package types

import (
	"fmt"
	"strings"
)

type PhysicalName uint8

const (
	Velocity PhysicalName = iota
	Temperature
)

var physicalTags = []string{
	"velocity",
	"temperature",
}

func (pn PhysicalName) Tag() string {
	if int(pn) < len(physicalTags) {
		return physicalTags[pn]
	}
	return "unknown"
}

func (pn PhysicalName) String() string { return pn.Tag() }

func ParsePhysicalName(tag string) (pn PhysicalName, err error) {
	lower := strings.ToLower(strings.TrimSpace(tag))
	for i, t := range physicalTags {
		if t == lower {
			pn = PhysicalName(i)
			return
		}
	}
	err = fmt.Errorf("unknown physical field name: \"%s\"", tag)
	return
}

// SpectralComponent identifies the spectral part of a field: the scalar
// itself or one of the two potentials of a toroidal/poloidal decomposition.
type SpectralComponent uint8

const (
	Scalar SpectralComponent = iota
	Toroidal
	Poloidal
)

func (sc SpectralComponent) String() string {
	switch sc {
	case Scalar:
		return "scalar"
	case Toroidal:
		return "tor"
	case Poloidal:
		return "pol"
	}
	return "unknown"
}

// FieldID is comparable and is used directly as a map key
type FieldID struct {
	Name PhysicalName
	Comp SpectralComponent
}

var (
	VelocityTor       = FieldID{Velocity, Toroidal}
	VelocityPol       = FieldID{Velocity, Poloidal}
	TemperatureScalar = FieldID{Temperature, Scalar}
)

func (f FieldID) String() string {
	return fmt.Sprintf("(%s,%s)", f.Name.Tag(), f.Comp.String())
}

// Less orders field ids by physical name, then by component
func (f FieldID) Less(o FieldID) bool {
	if f.Name != o.Name {
		return f.Name < o.Name
	}
	return f.Comp < o.Comp
}
