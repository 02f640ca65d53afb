package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/aedtkit/internal/testutil"
)

// execute runs the root command with args and returns what it wrote to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// deterministicNames makes generated names and journal sessions predictable
// for the duration of the test.
func deterministicNames(t *testing.T) {
	t.Helper()
	prevSession, prevSuffixer := sessionGenerator, nameSuffixer
	sessionGenerator = testutil.NewFixedSession("")
	nameSuffixer = testutil.NewSequenceSuffixer()
	t.Cleanup(func() {
		sessionGenerator, nameSuffixer = prevSession, prevSuffixer
	})
}

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(got))
}

func TestSParamsGolden(t *testing.T) {
	tests := []struct {
		golden string
		args   []string
	}{
		{"sparams_next", []string{"sparams", "next", "--tx", "1", "--tx", "2", "--tx", "3"}},
		{"sparams_fext", []string{"sparams", "fext", "--tx", "1", "--tx", "2", "--rx", "3", "--rx", "4"}},
		{"sparams_insertion_design", []string{"sparams", "insertion", "-d", "testdata/channel.yaml", "--tx-prefix", "TX", "--rx-prefix", "RX"}},
		{"sparams_return_json", []string{"--format", "json", "sparams", "return", "--names", "Die1", "--names", "Pkg1", "--names", "die2", "--prefix", "DIE"}},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assertGolden(t, tt.golden, out)
		})
	}
}

func TestSParamsInsertionMismatch(t *testing.T) {
	out, err := execute(t, "sparams", "insertion", "--tx", "A", "--rx", "X", "--rx", "Y")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assertGolden(t, "sparams_insertion_mismatch", out)
}

func TestSParamsInsertionMismatchJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "sparams", "insertion", "--tx", "A", "--rx", "X", "--rx", "Y")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeLengthMismatch, resp.Error.Code)
	assert.Equal(t, map[string]any{"tx": float64(1), "rx": float64(2)}, resp.Error.Details)
}

func TestSParamsAllFromDesign(t *testing.T) {
	out, err := execute(t, "--format", "json", "sparams", "all", "-d", "testdata/channel.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   SParamsResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 10, resp.Data.Count)
	assert.Equal(t, "S(DIE_TX0,DIE_TX0)", resp.Data.Labels[0])
	assert.Equal(t, "S(BGA_RX1,BGA_RX1)", resp.Data.Labels[9])
}

func TestSParamsNamesWithCommas(t *testing.T) {
	out, err := execute(t, "--format", "json", "sparams", "insertion",
		"--tx", "U1,A", "--tx", "U1,B", "--rx", "U2,A", "--rx", "U2,B")
	require.NoError(t, err)

	var resp struct {
		Data SParamsResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []string{"S(U1,A,U2,A)", "S(U1,B,U2,B)"}, resp.Data.Labels)
}

func TestSParamsUnknownSolutionType(t *testing.T) {
	out, err := execute(t, "--format", "json", "sparams", "all", "-d", "testdata/bad_solution.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidRequest, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details["solution_types"], "NexximLNA")
}

func TestSParamsRejectsExtractorDesign(t *testing.T) {
	out, err := execute(t, "sparams", "all", "-d", "testdata/package.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E205]")
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "sparams", "next", "--tx", "1", "--tx", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSetupList(t *testing.T) {
	out, err := execute(t, "setup", "list", "-d", "testdata/channel.yaml")
	require.NoError(t, err)
	assert.Equal(t, "setups (1)\nLinearFrequency (nominal)\n", out)
}

func TestSetupShow(t *testing.T) {
	out, err := execute(t, "setup", "show", "LinearFrequency", "-d", "testdata/channel.yaml")
	require.NoError(t, err)
	assert.Equal(t, "setup LinearFrequency\n  SweepDefinition = LINC 0GHz 20GHz 2001\n", out)

	out, err = execute(t, "--format", "json", "setup", "show", "LinearFrequency", "-d", "testdata/channel.yaml")
	require.NoError(t, err)
	var resp struct {
		Data SetupShowResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "LinearFrequency", resp.Data.Active)
	assert.Equal(t, "LINC 0GHz 20GHz 2001", resp.Data.Props["SweepDefinition"])
}

func TestSetupShowMissing(t *testing.T) {
	out, err := execute(t, "setup", "show", "Nope", "-d", "testdata/channel.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `setup "Nope" not found`)
}

func TestSetupListRequiresDesign(t *testing.T) {
	_, err := execute(t, "setup", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSetupCreateCollision(t *testing.T) {
	deterministicNames(t)

	out, err := execute(t, "--format", "json", "setup", "create", "-d", "testdata/channel.yaml", "--name", "LinearFrequency")
	require.NoError(t, err)

	var resp struct {
		Data SetupCreateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "LinearFrequency_000001", resp.Data.Name)
	assert.Equal(t, "NexximLNA", resp.Data.Type)
	assert.Empty(t, resp.Data.Session)
}

func TestJournalFlow(t *testing.T) {
	deterministicNames(t)
	db := filepath.Join(t.TempDir(), "journal.db")

	out, err := execute(t, "setup", "create", "-d", "testdata/channel.yaml", "--db", db,
		"--name", "LNA", "--prop", "SweepDefinition=LIN 1GHz 10GHz 10")
	require.NoError(t, err)
	assert.Contains(t, out, "name: LNA")
	assert.Contains(t, out, "session: test-session-default")

	out, err = execute(t, "journal", "show", "--db", db)
	require.NoError(t, err)
	assertGolden(t, "journal_sessions", out)

	out, err = execute(t, "--format", "json", "journal", "show", "--db", db, "--session", "test-session-default")
	require.NoError(t, err)

	var resp struct {
		Data []struct {
			Seq    int64  `json:"seq"`
			Method string `json:"method"`
			Target string `json:"target"`
			Args   []any  `json:"args"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "InsertSetup", resp.Data[0].Method)
	assert.Equal(t, "NexximLNA", resp.Data[0].Target)
	assert.Equal(t, "EditSetup", resp.Data[1].Method)
	assert.Equal(t, "LNA", resp.Data[1].Target)
	assert.Contains(t, resp.Data[1].Args, "LIN 1GHz 10GHz 10")
	assert.Less(t, resp.Data[0].Seq, resp.Data[1].Seq)
}

func TestJournalShowRequiresDB(t *testing.T) {
	out, err := execute(t, "journal", "show")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E301]")
}

func TestJournalShowUnknownSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	out, err := execute(t, "journal", "show", "--db", db, "--session", "missing")
	require.NoError(t, err)
	assert.Equal(t, "session missing (0)\n", out)
}

func TestSweepLinear(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	deterministicNames(t)

	out, err := execute(t, "sweep", "linear", "-d", "testdata/package.yaml", "--db", db,
		"--setup", "Setup1", "--start", "1", "--stop", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "added to Setup1")

	out, err = execute(t, "journal", "show", "--db", db, "--session", "test-session-default")
	require.NoError(t, err)
	assert.Contains(t, out, "InsertFrequencySweep Setup1")
}

func TestSweepLinearInvalidRange(t *testing.T) {
	out, err := execute(t, "sweep", "linear", "-d", "testdata/package.yaml",
		"--setup", "Setup1", "--start", "10", "--stop", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E202]")
}

func TestSweepOnCircuitDesign(t *testing.T) {
	out, err := execute(t, "sweep", "linear", "-d", "testdata/channel.yaml",
		"--setup", "LinearFrequency", "--start", "1", "--stop", "10")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E205]")
}

func TestSweepOn2DDesignUnsupported(t *testing.T) {
	out, err := execute(t, "sweep", "discrete", "-d", "testdata/stripline.yaml",
		"--setup", "Setup1", "--freq", "1GHz")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E203]")
}

func TestExtractInfo(t *testing.T) {
	out, err := execute(t, "extract", "info", "-d", "testdata/stripline.yaml")
	require.NoError(t, err)
	assertGolden(t, "extract_info_q2d", out)
}

func TestExtractInfoQ3DJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "extract", "info", "-d", "testdata/package.yaml", "--workdir", "/tmp/run")
	require.NoError(t, err)

	var resp struct {
		Data ExtractInfoResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Q3D Extractor", resp.Data.Solver)
	assert.Equal(t, 2, resp.Data.SymmetryMultiplier)
	assert.Empty(t, resp.Data.GeometryMode)
	assert.Equal(t, "/tmp/run/design_data.json", resp.Data.DesignFile)
}

func TestExtractNets(t *testing.T) {
	out, err := execute(t, "extract", "nets", "-d", "testdata/package.yaml")
	require.NoError(t, err)
	assert.Equal(t, "nets identified\n", out)

	out, err = execute(t, "extract", "nets", "-d", "testdata/stripline.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E203]")
}

func TestExtractSourceOnFace(t *testing.T) {
	deterministicNames(t)

	out, err := execute(t, "--format", "json", "extract", "source", "-d", "testdata/package.yaml",
		"--object", "Trace1", "--axis", "+X")
	require.NoError(t, err)

	var resp struct {
		Data BoundaryResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Source", resp.Data.Kind)
	assert.Equal(t, "Source_000001", resp.Data.Name)
	assert.Contains(t, resp.Data.Args, "ConstantVoltage")
	assert.Contains(t, resp.Data.Args, "Trace1")
}

func TestExtractSinkOnSheet(t *testing.T) {
	deterministicNames(t)

	out, err := execute(t, "extract", "sink", "-d", "testdata/package.yaml",
		"--sheet", "Pad", "--parent", "Trace1", "--name", "Out")
	require.NoError(t, err)
	assert.Contains(t, out, "Sink Out assigned")
}

func TestExtractSinkMissingFace(t *testing.T) {
	out, err := execute(t, "extract", "sink", "-d", "testdata/package.yaml",
		"--object", "Trace1", "--axis", "-Y")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E204]")
}

func TestExtractSourceBadAxis(t *testing.T) {
	out, err := execute(t, "extract", "source", "-d", "testdata/package.yaml",
		"--object", "Trace1", "--axis", "up")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, `unknown axis "up"`)
}

func TestExtractSourceNeedsTarget(t *testing.T) {
	_, err := execute(t, "extract", "source", "-d", "testdata/package.yaml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "testdata/channel.yaml")
	require.NoError(t, err)
	assertGolden(t, "validate_channel", out)
}

func TestValidateFromDesignFlag(t *testing.T) {
	out, err := execute(t, "--format", "json", "validate", "-d", "testdata/package.yaml")
	require.NoError(t, err)

	var resp struct {
		Data ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, "q3d", resp.Data.Kind)
	assert.Equal(t, 2, resp.Data.Objects)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"no file", []string{"validate"}, "E005"},
		{"missing file", []string{"validate", "testdata/nope.yaml"}, "E005"},
		{"bad extension", []string{"validate", "testdata/golden/sparams_next.golden"}, "E002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}
