package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Entry is one mutating automation call as written to a Journal.
type Entry struct {
	Session string
	Method  string
	Target  string
	Args    Args
}

// Journal persists recorded calls.
type Journal interface {
	Append(ctx context.Context, e Entry) error
}

// SessionGenerator produces journal session ids.
type SessionGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session ids, so sessions
// list in creation order.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Recorder is a DesignPort that forwards to an inner port and journals every
// successful mutating call under a single session id. Read-only calls are
// forwarded untouched.
type Recorder struct {
	DesignPort

	journal Journal
	session string
	logger  *slog.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithSession fixes the session id instead of generating one.
func WithSession(id string) RecorderOption {
	return func(r *Recorder) { r.session = id }
}

// WithSessionGenerator sets the generator used for the session id.
func WithSessionGenerator(g SessionGenerator) RecorderOption {
	return func(r *Recorder) { r.session = g.Generate() }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) RecorderOption {
	return func(r *Recorder) { r.logger = l }
}

// NewRecorder wraps inner so that mutations are appended to journal.
func NewRecorder(inner DesignPort, journal Journal, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		DesignPort: inner,
		journal:    journal,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.session == "" {
		r.session = UUIDv7Generator{}.Generate()
	}
	return r
}

// Session returns the journal session id.
func (r *Recorder) Session() string {
	return r.session
}

func (r *Recorder) append(ctx context.Context, method, target string, args Args) error {
	e := Entry{Session: r.session, Method: method, Target: target, Args: args}
	if err := r.journal.Append(ctx, e); err != nil {
		r.logger.Error("journal append failed", "method", method, "target", target, "error", err)
		return fmt.Errorf("journal %s: %w", method, err)
	}
	r.logger.Debug("call journaled", "session", r.session, "method", method, "target", target)
	return nil
}

func (r *Recorder) InsertSetup(ctx context.Context, setupType string, args Args) error {
	if err := r.DesignPort.InsertSetup(ctx, setupType, args); err != nil {
		return err
	}
	return r.append(ctx, "InsertSetup", setupType, args)
}

func (r *Recorder) EditSetup(ctx context.Context, name string, args Args) error {
	if err := r.DesignPort.EditSetup(ctx, name, args); err != nil {
		return err
	}
	return r.append(ctx, "EditSetup", name, args)
}

func (r *Recorder) InsertFrequencySweep(ctx context.Context, setup string, args Args) error {
	if err := r.DesignPort.InsertFrequencySweep(ctx, setup, args); err != nil {
		return err
	}
	return r.append(ctx, "InsertFrequencySweep", setup, args)
}

func (r *Recorder) AssignBoundary(ctx context.Context, kind BoundaryKind, args Args) error {
	if err := r.DesignPort.AssignBoundary(ctx, kind, args); err != nil {
		return err
	}
	return r.append(ctx, "AssignBoundary", string(kind), args)
}

func (r *Recorder) AutoIdentifyNets(ctx context.Context) error {
	if err := r.DesignPort.AutoIdentifyNets(ctx); err != nil {
		return err
	}
	return r.append(ctx, "AutoIdentifyNets", "", nil)
}
