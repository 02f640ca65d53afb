package analysis

import (
	"context"
	"fmt"

	"github.com/roach88/aedtkit/internal/automation"
)

// Boundary is a source or sink assigned to the design.
type Boundary struct {
	Kind automation.BoundaryKind
	Name string
	Args automation.Args
}

// FaceTerminal places a terminal on the face of Object at its extreme along
// Axis. Name and Net default to a generated name and the object name.
type FaceTerminal struct {
	Object string          `validate:"required"`
	Axis   automation.Axis `validate:"gte=0,lte=5"`
	Name   string
	Net    string
}

// SheetTerminal places a terminal on a sheet whose parent is Parent.
type SheetTerminal struct {
	Sheets []string `validate:"required,min=1,dive,required"`
	Parent string   `validate:"required"`
	Name   string
	Net    string
}

// AssignSourceToObjectFace creates a constant-voltage source on a face.
func (e *Extractor) AssignSourceToObjectFace(ctx context.Context, t FaceTerminal) (*Boundary, error) {
	return e.assignFace(ctx, automation.BoundarySource, t)
}

// AssignSinkToObjectFace creates a constant-voltage sink on a face.
func (e *Extractor) AssignSinkToObjectFace(ctx context.Context, t FaceTerminal) (*Boundary, error) {
	return e.assignFace(ctx, automation.BoundarySink, t)
}

// AssignSourceToObject creates a source on the faces of the given sheets,
// addressed by object id.
func (e *Extractor) AssignSourceToObject(ctx context.Context, t SheetTerminal) (*Boundary, error) {
	if err := e.require(Backend3D{}); err != nil {
		return nil, err
	}
	if err := validateRequest(t); err != nil {
		return nil, err
	}
	ids, err := e.port.ObjectIDs(ctx, t.Sheets)
	if err != nil {
		return nil, fmt.Errorf("resolve sheets: %w", err)
	}
	name, net := e.terminalNames(automation.BoundarySource, t.Name, t.Net, t.Parent)
	args := automation.NewArgs(name).Props(
		"Faces", ids,
		"ParentBndID", t.Parent,
		"Net", net,
	)
	return e.assign(ctx, automation.BoundarySource, name, args)
}

// AssignSinkToSheet creates a sink on a sheet, addressed by name.
// Only the first sheet is used.
func (e *Extractor) AssignSinkToSheet(ctx context.Context, t SheetTerminal) (*Boundary, error) {
	if err := e.require(Backend3D{}); err != nil {
		return nil, err
	}
	if err := validateRequest(t); err != nil {
		return nil, err
	}
	name, net := e.terminalNames(automation.BoundarySink, t.Name, t.Net, t.Parent)
	args := automation.NewArgs(name).Props(
		"Objects", []string{t.Sheets[0]},
		"ParentBndID", t.Parent,
		"Net", net,
	)
	return e.assign(ctx, automation.BoundarySink, name, args)
}

func (e *Extractor) assignFace(ctx context.Context, kind automation.BoundaryKind, t FaceTerminal) (*Boundary, error) {
	if err := e.require(Backend3D{}); err != nil {
		return nil, err
	}
	if err := validateRequest(t); err != nil {
		return nil, err
	}
	face, err := e.port.FaceOnAxis(ctx, t.Object, t.Axis)
	if err != nil {
		return nil, fmt.Errorf("face of %q on %s: %w", t.Object, t.Axis, err)
	}
	if face == 0 {
		return nil, fmt.Errorf("%w: %q %s", ErrNoFace, t.Object, t.Axis)
	}
	name, net := e.terminalNames(kind, t.Name, t.Net, t.Object)
	args := automation.NewArgs(name).Props(
		"Faces", []int{face},
		"ParentBndID", t.Object,
		"TerminalType", "ConstantVoltage",
		"Net", net,
	)
	return e.assign(ctx, kind, name, args)
}

func (e *Extractor) terminalNames(kind automation.BoundaryKind, name, net, parent string) (string, string) {
	if name == "" {
		name = UniqueName(string(kind), e.suffixer)
	}
	if net == "" {
		net = parent
	}
	return name, net
}

func (e *Extractor) assign(ctx context.Context, kind automation.BoundaryKind, name string, args automation.Args) (*Boundary, error) {
	if err := e.port.AssignBoundary(ctx, kind, args); err != nil {
		return nil, fmt.Errorf("assign %s %q: %w", kind, name, err)
	}
	e.logger.Info("boundary assigned", "kind", kind, "name", name)
	return &Boundary{Kind: kind, Name: name, Args: args}, nil
}
