package designfile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Error codes for design file loading.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeFormat      = "E002" // Unsupported file extension
	ErrCodeParseFailed = "E004" // YAML or CUE syntax error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeSchema      = "E006" // Schema validation failed
)

// LoadError represents an error that occurred while loading a design file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads a design from a .yaml, .yml or .cue file.
func Load(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("design file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("reading design file: %v", err)}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(path, data)
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Message: fmt.Sprintf("unsupported design file extension %q (want .yaml, .yml or .cue)", filepath.Ext(path))}
	}
}

// ParseYAML decodes a YAML design and validates it against the schema.
func ParseYAML(data []byte) (*Design, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing YAML: %v", err)}
	}
	if raw == nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: "empty design file"}
	}
	ctx := cuecontext.New()
	return decode(ctx, ctx.Encode(raw))
}

// ParseCUE compiles a CUE design and validates it against the schema.
// filename is only used in error positions.
func ParseCUE(filename string, data []byte) (*Design, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, cueLoadError(ErrCodeParseFailed, "compiling CUE", err)
	}
	return decode(ctx, v)
}

func decode(ctx *cue.Context, v cue.Value) (*Design, error) {
	if err := v.Err(); err != nil {
		return nil, cueLoadError(ErrCodeParseFailed, "encoding design", err)
	}
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, cueLoadError(ErrCodeGeneric, "compiling schema", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Design")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(ErrCodeSchema, "invalid design", err)
	}

	var d Design
	if err := unified.Decode(&d); err != nil {
		return nil, cueLoadError(ErrCodeGeneric, "decoding design", err)
	}
	return &d, nil
}

// cueLoadError converts a CUE error to a LoadError carrying the position of
// the first reported problem.
func cueLoadError(code, context string, err error) *LoadError {
	le := &LoadError{Code: code, Message: fmt.Sprintf("%s: %v", context, err)}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		le.Pos = errs[0].Position()
		le.Message = fmt.Sprintf("%s: %v", context, errs[0])
	}
	return le
}
