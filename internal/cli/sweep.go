package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aedtkit/internal/analysis"
	"github.com/roach88/aedtkit/internal/automation"
)

// SweepResult is the payload of the sweep subcommands.
type SweepResult struct {
	Setup   string          `json:"setup"`
	Args    automation.Args `json:"args"`
	Session string          `json:"session,omitempty"`
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Add frequency sweeps to a Q3D setup",
	}
	cmd.AddCommand(newLinearSweepCommand(rootOpts))
	cmd.AddCommand(newDiscreteSweepCommand(rootOpts))
	return cmd
}

func newLinearSweepCommand(rootOpts *RootOptions) *cobra.Command {
	var req analysis.FrequencySweep
	cmd := &cobra.Command{
		Use:   "linear",
		Short: "Add a linear-count sweep (fast or interpolating)",
		Long: `Add a linear-count frequency sweep to a Q3D setup.

Example:
  aedtkit sweep linear -d package.cue --setup Setup1 --unit GHz --start 0.1 --stop 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, rootOpts, req.Setup, req.Args(), func(e *analysis.Extractor) error {
				_, err := e.CreateFrequencySweep(cmd.Context(), req)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&req.Setup, "setup", "", "setup to attach the sweep to")
	cmd.Flags().StringVar(&req.Unit, "unit", "GHz", "frequency unit (Hz|kHz|MHz|GHz|THz)")
	cmd.Flags().Float64Var(&req.Start, "start", 0, "start frequency")
	cmd.Flags().Float64Var(&req.Stop, "stop", 0, "stop frequency")
	cmd.Flags().BoolVar(&req.Fast, "fast", false, "fast sweep instead of interpolating")
	return cmd
}

func newDiscreteSweepCommand(rootOpts *RootOptions) *cobra.Command {
	var req analysis.DiscreteSweep
	cmd := &cobra.Command{
		Use:           "discrete",
		Short:         "Add a single-frequency sweep",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, rootOpts, req.Setup, req.Args(), func(e *analysis.Extractor) error {
				return e.CreateDiscreteSweep(cmd.Context(), req)
			})
		},
	}
	cmd.Flags().StringVar(&req.Setup, "setup", "", "setup to attach the sweep to")
	cmd.Flags().StringVar(&req.Name, "name", "Discrete", "sweep name")
	cmd.Flags().StringVar(&req.Frequency, "freq", "", "frequency with unit, e.g. 2.5GHz")
	return cmd
}

func runSweep(cmd *cobra.Command, rootOpts *RootOptions, setup string, args automation.Args, create func(*analysis.Extractor) error) error {
	f := newFormatter(rootOpts, cmd)
	s, err := openSession(rootOpts, f, true)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.extractor(f)
	if err != nil {
		return err
	}
	if err := create(e); err != nil {
		return operationError(f, err)
	}

	result := SweepResult{Setup: setup, Args: args, Session: s.SessionID()}
	if f.Format == "json" {
		return f.Success(result)
	}
	f.Heading(fmt.Sprintf("sweep %s added to %s", args.Name(), setup))
	fmt.Fprintln(f.Writer, args.String())
	if result.Session != "" {
		fmt.Fprintf(f.Writer, "session: %s\n", result.Session)
	}
	return nil
}
