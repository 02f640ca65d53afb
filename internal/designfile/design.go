// Package designfile loads simulated design descriptions from YAML or CUE
// files and turns them into in-memory automation ports.
//
// A design file lists the ports, setups and modeler objects of one design.
// Both formats are checked against the embedded CUE schema before use.
package designfile

import (
	"fmt"

	"github.com/roach88/aedtkit/internal/automation"
)

// Design kinds.
const (
	KindCircuit = "circuit"
	KindQ3D     = "q3d"
	KindQ2D     = "q2d"
)

// Design describes one simulated design.
type Design struct {
	Name               string      `json:"name" yaml:"name"`
	Kind               string      `json:"kind" yaml:"kind"`
	SolutionType       string      `json:"solution_type,omitempty" yaml:"solution_type,omitempty"`
	Ports              []string    `json:"ports,omitempty" yaml:"ports,omitempty"`
	Setups             []SetupDef  `json:"setups,omitempty" yaml:"setups,omitempty"`
	Objects            []ObjectDef `json:"objects,omitempty" yaml:"objects,omitempty"`
	SymmetryMultiplier int         `json:"symmetry_multiplier,omitempty" yaml:"symmetry_multiplier,omitempty"`
	GeometryMode       string      `json:"geometry_mode,omitempty" yaml:"geometry_mode,omitempty"`
}

// SetupDef is a setup present in the design before any call is made.
type SetupDef struct {
	Name  string         `json:"name" yaml:"name"`
	Type  string         `json:"type,omitempty" yaml:"type,omitempty"`
	Props map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

// ObjectDef is a modeler object. Faces maps an axis ("-X" ... "+Z") to the
// face id at that extreme.
type ObjectDef struct {
	Name  string         `json:"name" yaml:"name"`
	ID    int            `json:"id" yaml:"id"`
	Faces map[string]int `json:"faces,omitempty" yaml:"faces,omitempty"`
}

// ParseAxis converts "-X", "+Y", ... to an automation.Axis.
func ParseAxis(s string) (automation.Axis, error) {
	for a := automation.AxisXNeg; a <= automation.AxisZPos; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// Build creates an in-memory port holding the design's state.
func (d *Design) Build() (*automation.SimPort, error) {
	cfg := automation.SimConfig{
		Ports:              d.Ports,
		Setups:             make(map[string]automation.SimSetup, len(d.Setups)),
		Objects:            make(map[string]automation.SimObject, len(d.Objects)),
		SymmetryMultiplier: d.SymmetryMultiplier,
		GeometryMode:       d.GeometryMode,
	}
	for _, s := range d.Setups {
		if _, dup := cfg.Setups[s.Name]; dup {
			return nil, fmt.Errorf("design %q: duplicate setup %q", d.Name, s.Name)
		}
		cfg.Setups[s.Name] = automation.SimSetup{Type: s.Type, Props: s.Props}
		cfg.SetupOrder = append(cfg.SetupOrder, s.Name)
	}
	for _, o := range d.Objects {
		if _, dup := cfg.Objects[o.Name]; dup {
			return nil, fmt.Errorf("design %q: duplicate object %q", d.Name, o.Name)
		}
		faces := make(map[automation.Axis]int, len(o.Faces))
		for k, id := range o.Faces {
			axis, err := ParseAxis(k)
			if err != nil {
				return nil, fmt.Errorf("design %q: object %q: %w", d.Name, o.Name, err)
			}
			faces[axis] = id
		}
		cfg.Objects[o.Name] = automation.SimObject{ID: o.ID, Faces: faces}
	}
	return automation.NewSimPort(cfg), nil
}
