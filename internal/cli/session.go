package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/aedtkit/internal/analysis"
	"github.com/roach88/aedtkit/internal/automation"
	"github.com/roach88/aedtkit/internal/designfile"
	"github.com/roach88/aedtkit/internal/sparam"
	"github.com/roach88/aedtkit/internal/store"
)

// session is the design a command operates on, plus the journal when --db
// is set.
type session struct {
	design   *designfile.Design
	port     automation.DesignPort
	recorder *automation.Recorder
	store    *store.Store
}

// Close releases the journal database.
func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// SessionID returns the journal session id, or "" when not journaling.
func (s *session) SessionID() string {
	if s.recorder == nil {
		return ""
	}
	return s.recorder.Session()
}

// Overridden in tests for predictable output.
var (
	sessionGenerator automation.SessionGenerator = automation.UUIDv7Generator{}
	nameSuffixer     analysis.Suffixer           = analysis.UUIDSuffixer{}
)

func analysisOptions() []analysis.Option {
	return []analysis.Option{
		analysis.WithLogger(slog.Default()),
		analysis.WithSuffixer(nameSuffixer),
	}
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openSession loads the design named by --design and opens the journal
// named by --db. Without --design an empty circuit design is used unless
// requireDesign is set.
func openSession(opts *RootOptions, f *OutputFormatter, requireDesign bool) (*session, error) {
	var d *designfile.Design
	if opts.Design == "" {
		if requireDesign {
			return nil, f.fail(ExitCommandError, designfile.ErrCodeNotFound, "--design is required for this command", nil)
		}
		d = &designfile.Design{Name: "adhoc", Kind: designfile.KindCircuit}
	} else {
		loaded, err := designfile.Load(opts.Design)
		if err != nil {
			var le *designfile.LoadError
			if errors.As(err, &le) {
				return nil, f.fail(ExitCommandError, le.Code, le.Error(), nil)
			}
			return nil, f.fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		d = loaded
		f.VerboseLog("Loaded design %s (%s) from %s", d.Name, d.Kind, opts.Design)
	}

	sim, err := d.Build()
	if err != nil {
		return nil, f.fail(ExitCommandError, designfile.ErrCodeSchema, err.Error(), nil)
	}

	s := &session{design: d, port: sim}
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return nil, f.fail(ExitCommandError, ErrCodeJournal, fmt.Sprintf("open journal: %v", err), nil)
		}
		s.store = st
		s.recorder = automation.NewRecorder(sim, st,
			automation.WithSessionGenerator(sessionGenerator),
			automation.WithLogger(slog.Default()),
		)
		s.port = s.recorder
		f.VerboseLog("Journaling to %s (session %s)", opts.Database, s.recorder.Session())
	}
	return s, nil
}

// requireKind fails unless the session's design is one of kinds.
func (s *session) requireKind(f *OutputFormatter, kinds ...string) error {
	if slices.Contains(kinds, s.design.Kind) {
		return nil
	}
	return f.fail(ExitCommandError, ErrCodeWrongKind,
		fmt.Sprintf("design %q is %s, command needs %v", s.design.Name, s.design.Kind, kinds), nil)
}

// circuit binds a circuit analysis to the session.
func (s *session) circuit(f *OutputFormatter) (*analysis.Circuit, error) {
	if err := s.requireKind(f, designfile.KindCircuit); err != nil {
		return nil, err
	}
	c, err := analysis.NewCircuit(s.port, s.design.SolutionType, analysisOptions()...)
	if err != nil {
		return nil, f.fail(ExitCommandError, ErrCodeInvalidRequest, err.Error(),
			map[string][]string{"solution_types": analysis.SolutionTypes()})
	}
	return c, nil
}

// extractor binds a Q3D or 2D extractor to the session.
func (s *session) extractor(f *OutputFormatter) (*analysis.Extractor, error) {
	if err := s.requireKind(f, designfile.KindQ3D, designfile.KindQ2D); err != nil {
		return nil, err
	}
	if s.design.Kind == designfile.KindQ2D {
		return analysis.NewQ2D(s.port, analysisOptions()...), nil
	}
	return analysis.NewQ3D(s.port, analysisOptions()...), nil
}

// operationError reports an error returned by an analysis operation.
func operationError(f *OutputFormatter, err error) error {
	var lm *sparam.LengthMismatchError
	switch {
	case errors.As(err, &lm):
		return f.fail(ExitFailure, ErrCodeLengthMismatch, "TX and RX should be same length lists",
			map[string]int{"tx": lm.Drivers, "rx": lm.Receivers})
	case errors.Is(err, analysis.ErrInvalidRequest):
		return f.fail(ExitFailure, ErrCodeInvalidRequest, err.Error(), nil)
	case errors.Is(err, analysis.ErrUnsupported):
		return f.fail(ExitFailure, ErrCodeUnsupported, err.Error(), nil)
	default:
		return f.fail(ExitFailure, ErrCodeCallFailed, err.Error(), nil)
	}
}
