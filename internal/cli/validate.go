package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aedtkit/internal/designfile"
)

// ValidationResult summarises a valid design file.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Ports   int    `json:"ports"`
	Setups  int    `json:"setups"`
	Objects int    `json:"objects"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [design-file]",
		Short: "Validate a design file against the schema",
		Long: `Validate a YAML or CUE design file against the design schema and check
that it builds into a simulated design. The file defaults to --design.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.Design
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	if path == "" {
		return f.fail(ExitCommandError, designfile.ErrCodeNotFound, "no design file given", nil)
	}

	d, err := designfile.Load(path)
	if err != nil {
		var le *designfile.LoadError
		if errors.As(err, &le) {
			return f.fail(ExitFailure, le.Code, le.Message, loadErrorDetails(le))
		}
		return f.fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	if _, err := d.Build(); err != nil {
		return f.fail(ExitFailure, designfile.ErrCodeSchema, err.Error(), nil)
	}

	result := ValidationResult{
		Valid:   true,
		Name:    d.Name,
		Kind:    d.Kind,
		Ports:   len(d.Ports),
		Setups:  len(d.Setups),
		Objects: len(d.Objects),
	}
	if f.Format == "json" {
		return f.Success(result)
	}
	fmt.Fprintf(f.Writer, "✓ design valid: %s (%s)\n", result.Name, result.Kind)
	fmt.Fprintf(f.Writer, "  %d port(s), %d setup(s), %d object(s)\n", result.Ports, result.Setups, result.Objects)
	return nil
}

func loadErrorDetails(le *designfile.LoadError) map[string]any {
	if !le.Pos.IsValid() {
		return nil
	}
	return map[string]any{
		"file":   le.Pos.Filename(),
		"line":   le.Pos.Line(),
		"column": le.Pos.Column(),
	}
}
