package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// SetupListResult is the payload of setup list.
type SetupListResult struct {
	Setups  []string `json:"setups"`
	Nominal string   `json:"nominal"`
}

// SetupCreateResult is the payload of setup create.
type SetupCreateResult struct {
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Props   map[string]any `json:"props,omitempty"`
	Session string         `json:"session,omitempty"`
}

// SetupShowResult is the payload of setup show.
type SetupShowResult struct {
	Name   string         `json:"name"`
	Active string         `json:"active"`
	Props  map[string]any `json:"props"`
}

// SetupCreateOptions holds flags for setup create.
type SetupCreateOptions struct {
	*RootOptions
	Name  string
	Type  string
	Props map[string]string
}

// NewSetupCommand creates the setup command.
func NewSetupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "List or create circuit analysis setups",
	}
	cmd.AddCommand(newSetupListCommand(rootOpts))
	cmd.AddCommand(newSetupShowCommand(rootOpts))
	cmd.AddCommand(newSetupCreateCommand(rootOpts))
	return cmd
}

func newSetupListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the design's analysis setups",
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

			c, err := s.circuit(f)
			if err != nil {
				return err
			}
			setups, err := c.SetupNames(cmd.Context())
			if err != nil {
				return operationError(f, err)
			}
			if setups == nil {
				setups = []string{}
			}
			nominal, err := c.NominalSweep(cmd.Context())
			if err != nil {
				return operationError(f, err)
			}

			if f.Format == "json" {
				return f.Success(SetupListResult{Setups: setups, Nominal: nominal})
			}
			f.Heading(fmt.Sprintf("setups (%d)", len(setups)))
			for _, name := range setups {
				marker := ""
				if name == nominal {
					marker = " (nominal)"
				}
				fmt.Fprintf(f.Writer, "%s%s\n", name, marker)
			}
			return nil
		},
	}
}

func newSetupShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <name>",
		Short:         "Show the properties of an analysis setup",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			s, err := openSession(rootOpts, f, true)
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := s.circuit(f)
			if err != nil {
				return err
			}
			setup, err := c.Setup(cmd.Context(), args[0])
			if err != nil {
				return operationError(f, err)
			}
			if !setup.Exists() {
				return f.fail(ExitFailure, ErrCodeCallFailed, fmt.Sprintf("setup %q not found", setup.Name), nil)
			}

			result := SetupShowResult{Name: setup.Name, Active: c.ActiveSetup(), Props: setup.Props}
			if f.Format == "json" {
				return f.Success(result)
			}
			f.Heading(fmt.Sprintf("setup %s", result.Name))
			writeProps(f, result.Props)
			return nil
		},
	}
}

func writeProps(f *OutputFormatter, props map[string]any) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(f.Writer, "  %s = %v\n", k, props[k])
	}
}

func newSetupCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetupCreateOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an analysis setup",
		Long: `Create an analysis setup in a circuit design.

A name already used in the design gets a unique suffix. Without --type the
solution type's default setup type is used.

Example:
  aedtkit setup create -d channel.yaml --name LNA --prop SweepDefinition="LIN 1GHz 10GHz 101"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetupCreate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "MySetupAuto", "setup name")
	cmd.Flags().StringVar(&opts.Type, "type", "", "setup type (defaults from the solution type)")
	cmd.Flags().StringToStringVar(&opts.Props, "prop", nil, "setup property key=value (repeatable)")
	return cmd
}

func runSetupCreate(cmd *cobra.Command, opts *SetupCreateOptions) error {
	f := newFormatter(opts.RootOptions, cmd)
	s, err := openSession(opts.RootOptions, f, true)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := s.circuit(f)
	if err != nil {
		return err
	}

	props := make(map[string]any, len(opts.Props))
	for k, v := range opts.Props {
		props[k] = v
	}
	setup, err := c.CreateSetup(cmd.Context(), opts.Name, opts.Type, props)
	if err != nil {
		return operationError(f, err)
	}

	result := SetupCreateResult{Name: setup.Name, Type: setup.Type, Props: setup.Props, Session: s.SessionID()}
	if f.Format == "json" {
		return f.Success(result)
	}
	f.Heading("setup created")
	fmt.Fprintf(f.Writer, "name: %s\ntype: %s\n", result.Name, result.Type)
	writeProps(f, result.Props)
	if result.Session != "" {
		fmt.Fprintf(f.Writer, "session: %s\n", result.Session)
	}
	return nil
}
