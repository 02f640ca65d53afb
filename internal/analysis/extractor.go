package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/roach88/aedtkit/internal/automation"
)

// Backend is the field solver behind an Extractor.
type Backend interface {
	// Name is the application's design type, e.g. "Q3D Extractor".
	Name() string
	// Dimension is "3D" or "2D".
	Dimension() string
}

// Backend3D is the Q3D Extractor solver.
type Backend3D struct{}

func (Backend3D) Name() string      { return "Q3D Extractor" }
func (Backend3D) Dimension() string { return "3D" }

// Backend2D is the 2D Extractor solver.
type Backend2D struct{}

func (Backend2D) Name() string      { return "2D Extractor" }
func (Backend2D) Dimension() string { return "2D" }

// DesignFileName is the per-design data file kept in the working directory.
const DesignFileName = "design_data.json"

// Extractor is a Q3D or 2D Extractor design.
type Extractor struct {
	port    automation.DesignPort
	backend Backend

	logger   *slog.Logger
	suffixer Suffixer
}

// NewExtractor binds an extractor with the given backend to port.
func NewExtractor(port automation.DesignPort, backend Backend, opts ...Option) *Extractor {
	o := buildOptions(opts)
	return &Extractor{
		port:     port,
		backend:  backend,
		logger:   o.logger.With("design_type", backend.Name()),
		suffixer: o.suffixer,
	}
}

// NewQ3D binds a Q3D Extractor design.
func NewQ3D(port automation.DesignPort, opts ...Option) *Extractor {
	return NewExtractor(port, Backend3D{}, opts...)
}

// NewQ2D binds a 2D Extractor design.
func NewQ2D(port automation.DesignPort, opts ...Option) *Extractor {
	return NewExtractor(port, Backend2D{}, opts...)
}

// Backend returns the solver backend.
func (e *Extractor) Backend() Backend {
	return e.backend
}

// Dimension returns the backend's dimension, "3D" or "2D".
func (e *Extractor) Dimension() string {
	return e.backend.Dimension()
}

// SymmetryMultiplier returns the model's symmetry multiplier.
func (e *Extractor) SymmetryMultiplier(ctx context.Context) (int, error) {
	m, err := e.port.SymmetryMultiplier(ctx)
	if err != nil {
		return 0, fmt.Errorf("symmetry multiplier: %w", err)
	}
	return m, nil
}

// DesignFile returns the path of the design data file under workdir.
func (e *Extractor) DesignFile(workdir string) string {
	return filepath.Join(workdir, DesignFileName)
}

// GeometryMode returns "XY" or "RZ". Only 2D designs have one.
func (e *Extractor) GeometryMode(ctx context.Context) (string, error) {
	if err := e.require(Backend2D{}); err != nil {
		return "", err
	}
	mode, err := e.port.GeometryMode(ctx)
	if err != nil {
		return "", fmt.Errorf("geometry mode: %w", err)
	}
	return mode, nil
}

// AutoIdentifyNets asks the boundary manager to detect nets.
func (e *Extractor) AutoIdentifyNets(ctx context.Context) error {
	if err := e.require(Backend3D{}); err != nil {
		return err
	}
	if err := e.port.AutoIdentifyNets(ctx); err != nil {
		return fmt.Errorf("auto identify nets: %w", err)
	}
	return nil
}

func (e *Extractor) require(b Backend) error {
	if e.backend.Dimension() != b.Dimension() {
		return fmt.Errorf("%w: requires %s, design is %s", ErrUnsupported, b.Name(), e.backend.Name())
	}
	return nil
}
