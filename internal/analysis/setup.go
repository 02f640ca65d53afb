package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/roach88/aedtkit/internal/automation"
)

// Circuit solution types and the setup type each one creates by default.
var defaultSetupTypes = map[string]string{
	"NexximLNA":       "NexximLNA",
	"NexximDC":        "NexximDC",
	"NexximTransient": "NexximTransient",
	"NexximQuickEye":  "NexximQuickEye",
	"NexximVerifEye":  "NexximVerifEye",
	"NexximAMI":       "NexximAMI",
}

// DefaultSolutionType is used when no solution type is given.
const DefaultSolutionType = "NexximLNA"

// SolutionTypes lists the accepted circuit solution types in name order.
func SolutionTypes() []string {
	out := make([]string, 0, len(defaultSetupTypes))
	for k := range defaultSetupTypes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Setup is an analysis setup in the design's SimSetup module.
type Setup struct {
	Name  string
	Type  string
	Props map[string]any

	port automation.SetupModule
}

// Exists reports whether the setup has properties in the design.
func (s *Setup) Exists() bool {
	return len(s.Props) > 0
}

func (s *Setup) args() automation.Args {
	args := automation.NewArgs(s.Name)
	keys := make([]string, 0, len(s.Props))
	for k := range s.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = args.Prop(k, s.Props[k])
	}
	return args
}

// create inserts the setup into the design.
func (s *Setup) create(ctx context.Context) error {
	if err := s.port.InsertSetup(ctx, s.Type, s.args()); err != nil {
		return fmt.Errorf("create setup %q: %w", s.Name, err)
	}
	return nil
}

// Update pushes the current props to the design.
func (s *Setup) Update(ctx context.Context) error {
	if err := s.port.EditSetup(ctx, s.Name, s.args()); err != nil {
		return fmt.Errorf("update setup %q: %w", s.Name, err)
	}
	return nil
}

// load reads the setup's props from the design. A missing setup leaves
// Props empty.
func (s *Setup) load(ctx context.Context) error {
	props, err := s.port.SetupProps(ctx, s.Name)
	if err != nil {
		if isNotFound(err) {
			s.Props = map[string]any{}
			return nil
		}
		return fmt.Errorf("load setup %q: %w", s.Name, err)
	}
	s.Props = props
	return nil
}
