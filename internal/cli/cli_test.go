package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd(&out, &errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestSetVersion(t *testing.T) {
	defer SetVersion("v0.1.0-dev", "", "")

	SetVersion("1.0.0", "abc123", "2026-01-01")
	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2026-01-01", date)

	// Empty version keeps the previous one.
	SetVersion("", "", "")
	assert.Equal(t, "1.0.0", version)
	assert.Empty(t, commit)
}

func TestEvalCommand(t *testing.T) {
	out, _, err := execute(t, "eval", "mul(add(x, x), x)", "--set", "x=3")
	require.NoError(t, err)

	assert.Contains(t, out, "output  mul(add(x, x), x) = 18")
	assert.Contains(t, out, "INPUT  VALUE  FORWARD  REVERSE")
	assert.Contains(t, out, "x      3      12       12")
}

func TestEvalCommandModes(t *testing.T) {
	out, _, err := execute(t, "eval", "x * y", "-s", "x=2", "-s", "y=5", "--mode", "reverse")
	require.NoError(t, err)
	assert.Contains(t, out, "x      2      -        5")
	assert.Contains(t, out, "y      5      -        2")

	out, _, err = execute(t, "eval", "x * y", "-s", "x=2", "-s", "y=5", "--mode", "forward", "--wrt", "y")
	require.NoError(t, err)
	assert.Contains(t, out, "x      2      -        -")
	assert.Contains(t, out, "y      5      2        -")
}

func TestEvalCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing value", []string{"eval", "x + y", "--set", "x=1"}, "no value for y"},
		{"bad assignment", []string{"eval", "x", "--set", "x"}, "want name=value"},
		{"bad number", []string{"eval", "x", "--set", "x=abc"}, "invalid syntax"},
		{"bad mode", []string{"eval", "x", "--set", "x=1", "--mode", "sideways"}, "unknown mode"},
		{"unknown wrt", []string{"eval", "x", "--set", "x=1", "--wrt", "z"}, "z"},
		{"domain", []string{"eval", "log(x)", "--set", "x=0"}, "operand must be positive"},
		{"syntax", []string{"eval", "x +", "--set", "x=1"}, "parse output"},
		{"dashed subtraction", []string{"eval", "x1-x2", "-s", "x1=1", "-s", "x2=2"}, `write "x1 - x2" to subtract`},
		{"no expression", []string{"eval"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEvalCommandTrace(t *testing.T) {
	out, errOut, err := execute(t, "eval", "mul(add(x, x), x)", "--set", "x=3", "--trace", "--mode", "reverse")
	require.NoError(t, err)

	assert.Contains(t, out, "= 18")
	assert.Contains(t, errOut, "v1 = add(x1, x1) = 6")
	assert.Contains(t, errOut, "v2 = mul(v1, x1) = 18")
	assert.Contains(t, errOut, "kind=reverse")
	assert.NotContains(t, errOut, "kind=forward")
}

func TestVerboseLogging(t *testing.T) {
	_, errOut, err := execute(t, "eval", "x", "--set", "x=1")
	require.NoError(t, err)
	assert.Empty(t, errOut)

	_, errOut, err = execute(t, "-v", "eval", "x", "--set", "x=1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "solving")
	assert.Contains(t, errOut, "solved")
}

func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.toml")
	src := strings.Join([]string{
		`output = "log(x1) + x1 * x2 - sin(x2)"`,
		`mode = "reverse"`,
		``,
		`[inputs]`,
		`x1 = 2.0`,
		`x2 = 5.0`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	out, errOut, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "output  log(x1) + x1 * x2 - sin(x2) = 11.65207146")
	assert.Contains(t, out, "x1     2      -        5.5")

	_, errOut, err = execute(t, "run", path, "--trace")
	require.NoError(t, err)
	assert.Contains(t, errOut, "kind=construct")
}

func TestRunCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestOpsCommand(t *testing.T) {
	out, _, err := execute(t, "ops")
	require.NoError(t, err)

	for _, line := range []string{"NAME  ARITY", "add   2", "log   1", "sin   1"} {
		assert.Contains(t, out, line)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "gradgraph "))
}
