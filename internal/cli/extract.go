package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aedtkit/internal/analysis"
	"github.com/roach88/aedtkit/internal/automation"
	"github.com/roach88/aedtkit/internal/designfile"
)

// ExtractInfoResult is the payload of extract info.
type ExtractInfoResult struct {
	Design             string `json:"design"`
	Solver             string `json:"solver"`
	Dimension          string `json:"dimension"`
	SymmetryMultiplier int    `json:"symmetry_multiplier"`
	GeometryMode       string `json:"geometry_mode,omitempty"`
	DesignFile         string `json:"design_file"`
}

// BoundaryResult is the payload of extract source and extract sink.
type BoundaryResult struct {
	Kind    string          `json:"kind"`
	Name    string          `json:"name"`
	Args    automation.Args `json:"args"`
	Session string          `json:"session,omitempty"`
}

// TerminalOptions holds flags for extract source and extract sink.
type TerminalOptions struct {
	*RootOptions
	Object string
	Axis   string
	Sheets []string
	Parent string
	Name   string
	Net    string
}

// NewExtractCommand creates the extract command.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Q3D and 2D Extractor operations",
	}
	cmd.AddCommand(newExtractInfoCommand(rootOpts))
	cmd.AddCommand(newExtractNetsCommand(rootOpts))
	cmd.AddCommand(newTerminalCommand(rootOpts, automation.BoundarySource))
	cmd.AddCommand(newTerminalCommand(rootOpts, automation.BoundarySink))
	return cmd
}

func newExtractInfoCommand(rootOpts *RootOptions) *cobra.Command {
	var workdir string
	cmd := &cobra.Command{
		Use:           "info",
		Short:         "Show solver, symmetry and geometry of an extractor design",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			result, err := extractInfo(cmd.Context(), s.design, e, workdir)
			if err != nil {
				return operationError(f, err)
			}

			if f.Format == "json" {
				return f.Success(result)
			}
			f.Heading(result.Design)
			fmt.Fprintf(f.Writer, "solver: %s (%s)\n", result.Solver, result.Dimension)
			fmt.Fprintf(f.Writer, "symmetry multiplier: %d\n", result.SymmetryMultiplier)
			if result.GeometryMode != "" {
				fmt.Fprintf(f.Writer, "geometry mode: %s\n", result.GeometryMode)
			}
			fmt.Fprintf(f.Writer, "design file: %s\n", result.DesignFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&workdir, "workdir", ".", "working directory holding the design data file")
	return cmd
}

func extractInfo(ctx context.Context, d *designfile.Design, e *analysis.Extractor, workdir string) (ExtractInfoResult, error) {
	sym, err := e.SymmetryMultiplier(ctx)
	if err != nil {
		return ExtractInfoResult{}, err
	}
	result := ExtractInfoResult{
		Design:             d.Name,
		Solver:             e.Backend().Name(),
		Dimension:          e.Dimension(),
		SymmetryMultiplier: sym,
		DesignFile:         e.DesignFile(workdir),
	}
	if d.Kind == designfile.KindQ2D {
		mode, err := e.GeometryMode(ctx)
		if err != nil {
			return ExtractInfoResult{}, err
		}
		result.GeometryMode = mode
	}
	return result, nil
}

func newExtractNetsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "nets",
		Short:         "Automatically identify nets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if err := e.AutoIdentifyNets(cmd.Context()); err != nil {
				return operationError(f, err)
			}
			if f.Format == "json" {
				return f.Success(map[string]any{"identified": true, "session": s.SessionID()})
			}
			fmt.Fprintln(f.Writer, "nets identified")
			return nil
		},
	}
}

func newTerminalCommand(rootOpts *RootOptions, kind automation.BoundaryKind) *cobra.Command {
	opts := &TerminalOptions{RootOptions: rootOpts}
	use := "source"
	if kind == automation.BoundarySink {
		use = "sink"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Assign a %s to an object face or a sheet", use),
		Long: fmt.Sprintf(`Assign a %[1]s on a Q3D design.

With --object the %[1]s goes on the face at the object's extreme along --axis
(-X, -Y, -Z, +X, +Y, +Z). With --sheet it goes on the named sheet(s) whose
parent is --parent. The net defaults to the object or parent name.`, use),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal(cmd, opts, kind)
		},
	}
	cmd.Flags().StringVar(&opts.Object, "object", "", "object whose face receives the terminal")
	cmd.Flags().StringVar(&opts.Axis, "axis", "-X", "face axis for --object")
	cmd.Flags().StringArrayVar(&opts.Sheets, "sheet", nil, "sheet name (repeatable)")
	cmd.Flags().StringVar(&opts.Parent, "parent", "", "parent object for --sheet")
	cmd.Flags().StringVar(&opts.Name, "name", "", "terminal name (generated when empty)")
	cmd.Flags().StringVar(&opts.Net, "net", "", "net name")
	cmd.MarkFlagsMutuallyExclusive("object", "sheet")
	cmd.MarkFlagsOneRequired("object", "sheet")
	return cmd
}

func runTerminal(cmd *cobra.Command, opts *TerminalOptions, kind automation.BoundaryKind) error {
	f := newFormatter(opts.RootOptions, cmd)
	s, err := openSession(opts.RootOptions, f, true)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.extractor(f)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var b *analysis.Boundary
	if len(opts.Sheets) > 0 {
		t := analysis.SheetTerminal{Sheets: opts.Sheets, Parent: opts.Parent, Name: opts.Name, Net: opts.Net}
		if kind == automation.BoundarySource {
			b, err = e.AssignSourceToObject(ctx, t)
		} else {
			b, err = e.AssignSinkToSheet(ctx, t)
		}
	} else {
		axis, perr := designfile.ParseAxis(opts.Axis)
		if perr != nil {
			return f.fail(ExitCommandError, ErrCodeInvalidRequest, perr.Error(), nil)
		}
		t := analysis.FaceTerminal{Object: opts.Object, Axis: axis, Name: opts.Name, Net: opts.Net}
		if kind == automation.BoundarySource {
			b, err = e.AssignSourceToObjectFace(ctx, t)
		} else {
			b, err = e.AssignSinkToObjectFace(ctx, t)
		}
	}
	if err != nil {
		return operationError(f, err)
	}

	result := BoundaryResult{Kind: string(b.Kind), Name: b.Name, Args: b.Args, Session: s.SessionID()}
	if f.Format == "json" {
		return f.Success(result)
	}
	f.Heading(fmt.Sprintf("%s %s assigned", result.Kind, result.Name))
	fmt.Fprintln(f.Writer, b.Args.String())
	if result.Session != "" {
		fmt.Fprintf(f.Writer, "session: %s\n", result.Session)
	}
	return nil
}
