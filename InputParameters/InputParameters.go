package InputParameters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/notargets/planerbc/resolution"
	"github.com/notargets/planerbc/types"
	"gopkg.in/ini.v1"
)

// Parameters obtained from the YAML (or INI) input file
type RBCParameters struct {
	Title         string            `json:"Title"`
	NZ            int               `json:"NZ"` // Chebyshev modes across the layer
	NX            int               `json:"NX"`
	NY            int               `json:"NY"`
	Prandtl       float64           `json:"Prandtl"`
	Rayleigh      float64           `json:"Rayleigh"`
	Scale1d       float64           `json:"Scale1d"` // Horizontal box scales, wavenumber of mode 1
	Scale2d       float64           `json:"Scale2d"`
	BCs           map[string]string `json:"BCs"` // Key is the physical field name, value the BC name
	Scheme        string            `json:"Scheme"`
	SplitEquation bool              `json:"SplitEquation"`
	TruncateQI    bool              `json:"TruncateQI"`
}

func (ip *RBCParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// ParseINI reads the legacy format: Title in the default section and the
// sections [resolution], [physics], [boundary] and [scheme].
func (ip *RBCParameters) ParseINI(data []byte) (err error) {
	var file *ini.File
	if file, err = ini.Load(data); err != nil {
		return
	}
	var (
		res     = file.Section("resolution")
		physics = file.Section("physics")
		scheme  = file.Section("scheme")
	)
	ip.Title = file.Section("").Key("Title").String()
	ip.NZ = res.Key("NZ").MustInt(0)
	ip.NX = res.Key("NX").MustInt(1)
	ip.NY = res.Key("NY").MustInt(1)
	ip.Prandtl = physics.Key("Prandtl").MustFloat64(0)
	ip.Rayleigh = physics.Key("Rayleigh").MustFloat64(0)
	ip.Scale1d = physics.Key("Scale1d").MustFloat64(1)
	ip.Scale2d = physics.Key("Scale2d").MustFloat64(1)
	ip.BCs = make(map[string]string)
	for _, key := range file.Section("boundary").Keys() {
		ip.BCs[key.Name()] = key.String()
	}
	ip.Scheme = scheme.Key("Scheme").MustString("tau")
	ip.SplitEquation = scheme.Key("SplitEquation").MustBool(false)
	ip.TruncateQI = scheme.Key("TruncateQI").MustBool(false)
	return
}

// Load reads an input file, choosing the format by extension
func Load(path string) (ip *RBCParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	ip = &RBCParameters{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".cfg":
		err = ip.ParseINI(data)
	default:
		err = ip.Parse(data)
	}
	if err != nil {
		err = fmt.Errorf("reading %s: %w", path, err)
		return nil, err
	}
	return
}

func (ip *RBCParameters) Print() { ip.Fprint(os.Stdout) }

func (ip *RBCParameters) Fprint(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%d x %d x %d]\t\t= Resolution\n", ip.NZ, ip.NX, ip.NY)
	fmt.Fprintf(w, "%8.5g\t\t= Prandtl\n", ip.Prandtl)
	fmt.Fprintf(w, "%8.5g\t\t= Rayleigh\n", ip.Rayleigh)
	fmt.Fprintf(w, "[%s]\t\t\t= Scheme\n", ip.Scheme)
	fmt.Fprintf(w, "[%v]\t\t\t= Split Equation\n", ip.SplitEquation)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "BCs[%s] = %v\n", key, ip.BCs[key])
	}
}

func (ip *RBCParameters) NdMap() types.NdMap {
	return types.NdMap{
		types.Prandtl:  ip.Prandtl,
		types.Rayleigh: ip.Rayleigh,
		types.Scale1d:  orOne(ip.Scale1d),
		types.Scale2d:  orOne(ip.Scale2d),
	}
}

func (ip *RBCParameters) BcMap() (bcs types.BcMap, err error) {
	bcs = make(types.BcMap, len(ip.BCs))
	for name, bcName := range ip.BCs {
		var (
			pn types.PhysicalName
			bc types.BCKind
		)
		if pn, err = types.ParsePhysicalName(name); err != nil {
			return nil, err
		}
		if bc, err = types.ParseBCKind(bcName); err != nil {
			return nil, &types.ConfigError{Field: name, BC: bcName, Err: types.ErrUnknownBoundaryCondition}
		}
		bcs[pn] = bc
	}
	return
}

func (ip *RBCParameters) BCScheme() (types.BCScheme, error) {
	return types.ParseBCScheme(ip.Scheme)
}

func (ip *RBCParameters) Box() (b *resolution.Box, err error) {
	if ip.NZ < 1 || ip.NX < 1 || ip.NY < 1 {
		err = fmt.Errorf("invalid resolution %d x %d x %d", ip.NZ, ip.NX, ip.NY)
		return
	}
	b = resolution.NewBox(ip.NZ, ip.NX, ip.NY, orOne(ip.Scale1d), orOne(ip.Scale2d))
	return
}

func orOne(x float64) float64 {
	if x <= 0 {
		return 1
	}
	return x
}
