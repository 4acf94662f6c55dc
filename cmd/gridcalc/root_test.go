package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogtb/go-spreadsheet/internal/script"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "gridcalc", cmd.Use)
	assert.True(t, cmd.SilenceUsage)

	found := map[string]bool{}
	for _, sub := range cmd.Commands() {
		found[sub.Name()] = true
	}
	for _, name := range []string{"run", "eval", "version"} {
		assert.True(t, found[name], "missing subcommand %s", name)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gridcalc version "+version+"\n", out)

	out, err = runCLI(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "gridcalc version "+version+"\n", out)
}

func TestEvalCommand(t *testing.T) {
	out, err := runCLI(t, "eval", "A1=5", "B1==A1*2", "A2=hi")
	require.NoError(t, err)
	assert.Equal(t, "5\t10\nhi\t\n", out)

	out, err = runCLI(t, "eval", "--mode", "texts", "B1==(A1)*2")
	require.NoError(t, err)
	assert.Equal(t, "\t=A1*2\n", out)

	out, err = runCLI(t, "eval", "--format", "table", "A1==1/0")
	require.NoError(t, err)
	assert.Contains(t, out, "#ARITHM!")
}

func TestEvalCommandErrors(t *testing.T) {
	_, err := runCLI(t, "eval", "A1")
	assert.Error(t, err)

	_, err = runCLI(t, "eval", "A1==A1")
	assert.True(t, errors.Is(err, spreadsheet.ErrCircularDependency))

	_, err = runCLI(t, "eval", "--format", "csv", "A1=1")
	assert.Error(t, err)

	_, err = runCLI(t, "eval", "--log-level", "loud", "A1=1")
	assert.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
steps:
  - set: A1
    content: "2"
  - set: A2
    content: "=A1*A1"
  - expect: A2
    value: "4"
  - print: values
`), 0o644))

	out, err := runCLI(t, "run", path)
	require.NoError(t, err)
	assert.Equal(t, "2\n4\n", out)

	failing := filepath.Join(dir, "fail.hcl")
	require.NoError(t, os.WriteFile(failing, []byte(`
set "A1" { content = 2 }
expect "A1" { value = 3 }
`), 0o644))

	_, err = runCLI(t, "run", failing)
	var expErr *script.ExpectationError
	require.True(t, errors.As(err, &expErr))
	assert.Equal(t, ExitCodeExpectationFailed, getExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCodeError, getExitCode(errors.New("boom")))
	assert.Equal(t, ExitCodeExpectationFailed, getExitCode(&script.ExpectationError{}))
}
