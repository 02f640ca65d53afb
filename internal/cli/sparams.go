package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aedtkit/internal/analysis"
)

// SParamsOptions holds flags for the sparams subcommands.
type SParamsOptions struct {
	*RootOptions
	Names         []string
	Prefix        string
	TX            []string
	RX            []string
	TXPrefix      string
	RXPrefix      string
	KeepSameIndex bool
}

// SParamsResult is the payload of every sparams subcommand.
type SParamsResult struct {
	Kind   string   `json:"kind"`
	Count  int      `json:"count"`
	Labels []string `json:"labels"`
}

type sparamsFunc func(ctx context.Context, c *analysis.Circuit, opts *SParamsOptions) ([]string, error)

// NewSParamsCommand creates the sparams command.
func NewSParamsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sparams",
		Short: "List S-parameter labels for a circuit design",
		Long: `List S-parameter labels built from the design's excitations.

Explicit lists (--names, --tx, --rx) take precedence. Otherwise names come
from the design's ports, optionally filtered by --tx-prefix / --rx-prefix.
Without --design only explicit lists can be used.

Example:
  aedtkit sparams insertion -d channel.yaml --tx-prefix DIE --rx-prefix BGA
  aedtkit sparams next --tx 1 --tx 2 --tx 3`,
	}

	cmd.AddCommand(newSParamsSubcommand(rootOpts, "all", "All S-parameters (i <= j)",
		func(ctx context.Context, c *analysis.Circuit, o *SParamsOptions) ([]string, error) {
			return c.SParameters(ctx, o.Names)
		},
		func(cmd *cobra.Command, o *SParamsOptions) {
			cmd.Flags().StringArrayVar(&o.Names, "names", nil, "excitation name (repeatable)")
		}))

	cmd.AddCommand(newSParamsSubcommand(rootOpts, "return", "Return losses S(e,e)",
		func(ctx context.Context, c *analysis.Circuit, o *SParamsOptions) ([]string, error) {
			return c.ReturnLosses(ctx, o.Names, o.Prefix)
		},
		func(cmd *cobra.Command, o *SParamsOptions) {
			cmd.Flags().StringArrayVar(&o.Names, "names", nil, "excitation name (repeatable)")
			cmd.Flags().StringVar(&o.Prefix, "prefix", "", "keep names containing this text (any case)")
		}))

	cmd.AddCommand(newSParamsSubcommand(rootOpts, "insertion", "Insertion losses paired by position",
		func(ctx context.Context, c *analysis.Circuit, o *SParamsOptions) ([]string, error) {
			return c.InsertionLosses(ctx, o.TX, o.RX, o.TXPrefix, o.RXPrefix)
		},
		txRxFlags))

	cmd.AddCommand(newSParamsSubcommand(rootOpts, "next", "Near-end crosstalk among drivers",
		func(ctx context.Context, c *analysis.Circuit, o *SParamsOptions) ([]string, error) {
			return c.NextCrosstalk(ctx, o.TX, o.TXPrefix)
		},
		func(cmd *cobra.Command, o *SParamsOptions) {
			cmd.Flags().StringArrayVar(&o.TX, "tx", nil, "driver name (repeatable)")
			cmd.Flags().StringVar(&o.TXPrefix, "tx-prefix", "", "derive drivers from ports containing this text")
		}))

	cmd.AddCommand(newSParamsSubcommand(rootOpts, "fext", "Far-end crosstalk between drivers and receivers",
		func(ctx context.Context, c *analysis.Circuit, o *SParamsOptions) ([]string, error) {
			return c.FextCrosstalk(ctx, o.TX, o.RX, o.TXPrefix, o.RXPrefix, !o.KeepSameIndex)
		},
		func(cmd *cobra.Command, o *SParamsOptions) {
			txRxFlags(cmd, o)
			cmd.Flags().BoolVar(&o.KeepSameIndex, "keep-same-index", false, "include driver/receiver pairs at the same position")
		}))

	return cmd
}

func txRxFlags(cmd *cobra.Command, o *SParamsOptions) {
	cmd.Flags().StringArrayVar(&o.TX, "tx", nil, "driver name (repeatable)")
	cmd.Flags().StringArrayVar(&o.RX, "rx", nil, "receiver name (repeatable)")
	cmd.Flags().StringVar(&o.TXPrefix, "tx-prefix", "", "derive drivers from ports containing this text")
	cmd.Flags().StringVar(&o.RXPrefix, "rx-prefix", "", "derive receivers from ports containing this text")
}

func newSParamsSubcommand(rootOpts *RootOptions, kind, short string, run sparamsFunc, flags func(*cobra.Command, *SParamsOptions)) *cobra.Command {
	opts := &SParamsOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:           kind,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSParams(cmd, opts, kind, run)
		},
	}
	flags(cmd, opts)
	return cmd
}

func runSParams(cmd *cobra.Command, opts *SParamsOptions, kind string, run sparamsFunc) error {
	f := newFormatter(opts.RootOptions, cmd)

	s, err := openSession(opts.RootOptions, f, false)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.circuit(f)
	if err != nil {
		return err
	}

	labels, err := run(cmd.Context(), c, opts)
	if err != nil {
		return operationError(f, err)
	}

	result := SParamsResult{Kind: kind, Count: len(labels), Labels: labels}
	if f.Format == "json" {
		return f.Success(result)
	}

	f.Heading(fmt.Sprintf("%s (%d)", kind, len(labels)))
	for _, l := range labels {
		fmt.Fprintln(f.Writer, l)
	}
	return nil
}
