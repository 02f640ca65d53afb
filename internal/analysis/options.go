package analysis

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Suffixer produces the suffix appended to a base name to make it unique.
type Suffixer interface {
	Suffix() string
}

// UUIDSuffixer takes the first six hex digits of a random UUID.
type UUIDSuffixer struct{}

// Suffix implements Suffixer.
func (UUIDSuffixer) Suffix() string {
	return strings.ToUpper(uuid.NewString()[:6])
}

// UniqueName returns base followed by an underscore and a fresh suffix.
func UniqueName(base string, s Suffixer) string {
	return base + "_" + s.Suffix()
}

type options struct {
	logger   *slog.Logger
	suffixer Suffixer
}

// Option configures a Circuit or an Extractor.
type Option func(*options)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSuffixer sets how unique names are generated.
func WithSuffixer(s Suffixer) Option {
	return func(o *options) { o.suffixer = s }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		suffixer: UUIDSuffixer{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
