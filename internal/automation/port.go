package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNotFound is returned when a named setup, object or sheet does not exist
// in the design.
var ErrNotFound = errors.New("not found")

// Axis selects the face of an object by its extreme along a coordinate axis.
type Axis int

const (
	AxisXNeg Axis = iota
	AxisYNeg
	AxisZNeg
	AxisXPos
	AxisYPos
	AxisZPos
)

var axisNames = [...]string{"-X", "-Y", "-Z", "+X", "+Y", "+Z"}

// Valid reports whether a is one of the six axis directions.
func (a Axis) Valid() bool {
	return a >= AxisXNeg && a <= AxisZPos
}

func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// BoundaryKind names a boundary type understood by the boundary manager.
type BoundaryKind string

const (
	BoundarySource BoundaryKind = "Source"
	BoundarySink   BoundaryKind = "Sink"
)

// ExcitationSource lists the raw port identifiers of the active design.
type ExcitationSource interface {
	Ports(ctx context.Context) ([]string, error)
}

// SetupModule is the design's "SimSetup" module.
type SetupModule interface {
	SolutionSetups(ctx context.Context) ([]string, error)
	InsertSetup(ctx context.Context, setupType string, args Args) error
	EditSetup(ctx context.Context, name string, args Args) error
	SetupProps(ctx context.Context, name string) (map[string]any, error)
	InsertFrequencySweep(ctx context.Context, setup string, args Args) error
}

// BoundaryModule is the design's boundary manager.
type BoundaryModule interface {
	AssignBoundary(ctx context.Context, kind BoundaryKind, args Args) error
	AutoIdentifyNets(ctx context.Context) error
}

// Modeler exposes the geometry queries aedtkit needs.
type Modeler interface {
	// FaceOnAxis returns the face id of object at its extreme along axis,
	// or 0 if the object has no such face.
	FaceOnAxis(ctx context.Context, object string, axis Axis) (int, error)
	ObjectIDs(ctx context.Context, names []string) ([]int, error)
	SymmetryMultiplier(ctx context.Context) (int, error)
	GeometryMode(ctx context.Context) (string, error)
}

// DesignPort is the full capability set of one design.
type DesignPort interface {
	ExcitationSource
	SetupModule
	BoundaryModule
	Modeler
}

// ExcitationName converts a raw editor port id such as "IPort@DIE_1;3" to
// its excitation name "DIE_1". The result is NFC-normalised so names coming
// from different bindings compare equal.
func ExcitationName(raw string) string {
	name := strings.ReplaceAll(raw, "IPort@", "")
	if i := strings.IndexByte(name, ';'); i >= 0 {
		name = name[:i]
	}
	return norm.NFC.String(name)
}

// Excitations lists the excitation names of src in port order.
func Excitations(ctx context.Context, src ExcitationSource) ([]string, error) {
	raw, err := src.Ports(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}
	names := make([]string, len(raw))
	for i, p := range raw {
		names[i] = ExcitationName(p)
	}
	return names, nil
}
