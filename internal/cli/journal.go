package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/aedtkit/internal/store"
)

// JournalOptions holds flags for journal show.
type JournalOptions struct {
	*RootOptions
	Session string
}

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the journal of mutating calls",
	}
	cmd.AddCommand(newJournalShowCommand(rootOpts))
	return cmd
}

func newJournalShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List journal sessions, or the calls of one session",
		Long: `List the sessions recorded in the journal database, or with --session
the calls made in one session in the order they were made.

Example:
  aedtkit journal show --db journal.db
  aedtkit journal show --db journal.db --session 0190f4c2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalShow(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Session, "session", "", "session id to show")
	return cmd
}

func runJournalShow(cmd *cobra.Command, opts *JournalOptions) error {
	f := newFormatter(opts.RootOptions, cmd)
	if opts.Database == "" {
		return f.fail(ExitCommandError, ErrCodeJournal, "--db is required", nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeJournal, fmt.Sprintf("open journal: %v", err), nil)
	}
	defer st.Close()

	ctx := cmd.Context()
	if opts.Session == "" {
		sessions, err := st.Sessions(ctx)
		if err != nil {
			return f.fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
		}
		if f.Format == "json" {
			return f.Success(sessions)
		}
		f.Heading(fmt.Sprintf("sessions (%d)", len(sessions)))
		for _, ss := range sessions {
			fmt.Fprintf(f.Writer, "%s  %d call(s)\n", ss.Session, ss.Calls)
		}
		return nil
	}

	records, err := st.ReadSession(ctx, opts.Session)
	if err != nil {
		return f.fail(ExitCommandError, ErrCodeJournal, err.Error(), nil)
	}
	if f.Format == "json" {
		return f.Success(records)
	}
	f.Heading(fmt.Sprintf("session %s (%d)", opts.Session, len(records)))
	for _, r := range records {
		target := ""
		if r.Target != "" {
			target = " " + r.Target
		}
		fmt.Fprintf(f.Writer, "%d %s%s %v\n", r.Seq, r.Method, target, r.Args)
	}
	return nil
}
