package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/aedtkit/internal/automation"
	"github.com/roach88/aedtkit/internal/sparam"
)

// Circuit is a Nexxim circuit analysis bound to one design.
type Circuit struct {
	port         automation.DesignPort
	solutionType string
	activeSetup  string
	setups       []*Setup

	logger   *slog.Logger
	suffixer Suffixer
}

// NewCircuit binds a circuit analysis to port. An empty solutionType selects
// DefaultSolutionType.
func NewCircuit(port automation.DesignPort, solutionType string, opts ...Option) (*Circuit, error) {
	if solutionType == "" {
		solutionType = DefaultSolutionType
	}
	if _, ok := defaultSetupTypes[solutionType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSolutionType, solutionType)
	}
	o := buildOptions(opts)
	return &Circuit{
		port:         port,
		solutionType: solutionType,
		logger:       o.logger,
		suffixer:     o.suffixer,
	}, nil
}

// SolutionType returns the design's solution type.
func (c *Circuit) SolutionType() string {
	return c.solutionType
}

// ActiveSetup returns the name of the setup most recently created or loaded.
func (c *Circuit) ActiveSetup() string {
	return c.activeSetup
}

// SetupNames returns the names of the design's solution setups in the
// order the design reports them.
func (c *Circuit) SetupNames(ctx context.Context) ([]string, error) {
	names, err := c.port.SolutionSetups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list setups: %w", err)
	}
	return names, nil
}

// ExistingSetups lists every setup defined in the design, never nil.
func (c *Circuit) ExistingSetups(ctx context.Context) ([]string, error) {
	names, err := c.SetupNames(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// NominalSweep returns the first existing setup, or "" if there is none.
func (c *Circuit) NominalSweep(ctx context.Context) (string, error) {
	setups, err := c.ExistingSetups(ctx)
	if err != nil {
		return "", err
	}
	if len(setups) == 0 {
		return "", nil
	}
	return setups[0], nil
}

// Excitations lists the design's excitation names in port order.
func (c *Circuit) Excitations(ctx context.Context) ([]string, error) {
	return automation.Excitations(ctx, c.port)
}

// orExcitations returns names, or the design's excitations filtered by
// prefix when names is empty.
func (c *Circuit) orExcitations(ctx context.Context, names []string, prefix string) ([]string, error) {
	if len(names) > 0 {
		return names, nil
	}
	all, err := c.Excitations(ctx)
	if err != nil {
		return nil, err
	}
	return sparam.Filter(all, prefix), nil
}

// SParameters returns every S-parameter label among names, or among all
// excitations when names is empty.
func (c *Circuit) SParameters(ctx context.Context, names []string) ([]string, error) {
	names, err := c.orExcitations(ctx, names, "")
	if err != nil {
		return nil, err
	}
	return sparam.AllPairs(names), nil
}

// ReturnLosses returns the return-loss labels for names, or for all
// excitations when names is empty, keeping those that contain prefix
// regardless of case.
func (c *Circuit) ReturnLosses(ctx context.Context, names []string, prefix string) ([]string, error) {
	names, err := c.orExcitations(ctx, names, "")
	if err != nil {
		return nil, err
	}
	return sparam.ReturnLoss(names, prefix), nil
}

// InsertionLosses pairs drivers with receivers by position. Empty lists are
// derived from the excitations by txPrefix and rxPrefix.
func (c *Circuit) InsertionLosses(ctx context.Context, tx, rx []string, txPrefix, rxPrefix string) ([]string, error) {
	tx, err := c.orExcitations(ctx, tx, txPrefix)
	if err != nil {
		return nil, err
	}
	rx, err = c.orExcitations(ctx, rx, rxPrefix)
	if err != nil {
		return nil, err
	}
	labels, err := sparam.InsertionLoss(tx, rx)
	if err != nil {
		c.logger.Error("TX and RX should be same length lists", "tx", len(tx), "rx", len(rx))
		return nil, err
	}
	return labels, nil
}

// NextCrosstalk returns the near-end crosstalk labels among tx, derived
// from the excitations by txPrefix when empty.
func (c *Circuit) NextCrosstalk(ctx context.Context, tx []string, txPrefix string) ([]string, error) {
	tx, err := c.orExcitations(ctx, tx, txPrefix)
	if err != nil {
		return nil, err
	}
	return sparam.NearEndCrosstalk(tx), nil
}

// FextCrosstalk returns the far-end crosstalk labels between tx and rx.
// With skipSameIndex the pairs at equal positions are left out.
func (c *Circuit) FextCrosstalk(ctx context.Context, tx, rx []string, txPrefix, rxPrefix string, skipSameIndex bool) ([]string, error) {
	tx, err := c.orExcitations(ctx, tx, txPrefix)
	if err != nil {
		return nil, err
	}
	rx, err = c.orExcitations(ctx, rx, rxPrefix)
	if err != nil {
		return nil, err
	}
	return sparam.FarEndCrosstalk(tx, rx, skipSameIndex), nil
}

// Setup loads an existing setup. It becomes the active setup when the design
// has properties for it.
func (c *Circuit) Setup(ctx context.Context, name string) (*Setup, error) {
	s := &Setup{Name: name, Type: defaultSetupTypes[c.solutionType], port: c.port}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	if s.Exists() {
		c.activeSetup = name
	}
	return s, nil
}

// CreateSetup inserts a new setup. An empty name becomes "MySetupAuto" and
// an empty setupType uses the solution type's default. A name already in
// the design gets a unique suffix. props are applied after creation.
func (c *Circuit) CreateSetup(ctx context.Context, name, setupType string, props map[string]any) (*Setup, error) {
	if name == "" {
		name = "MySetupAuto"
	}
	if setupType == "" {
		setupType = defaultSetupTypes[c.solutionType]
	}

	existing, err := c.ExistingSetups(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(existing, name) {
		name = UniqueName(name, c.suffixer)
	}

	s := &Setup{Name: name, Type: setupType, Props: map[string]any{}, port: c.port}
	if err := s.create(ctx); err != nil {
		return nil, err
	}
	for k, v := range props {
		s.Props[k] = v
	}
	if err := s.Update(ctx); err != nil {
		return nil, err
	}

	c.activeSetup = name
	c.setups = append(c.setups, s)
	c.logger.Info("setup created", "name", name, "type", setupType)
	return s, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, automation.ErrNotFound)
}
