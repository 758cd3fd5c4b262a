package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	puzzlesPath, checkStrict, playDay = "", false, 0
	t.Setenv("PUZZLES_FILE", "")
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckDefaultRotation(t *testing.T) {
	out, err := runCmd(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "GRAPH/SICOLE 6 solutions")
	assert.Contains(t, out, "TRACT/SONIED 23 solutions")
	assert.Contains(t, out, "PORT: AIRPOT")
	assert.Contains(t, out, "PORT: IMPORT")
	assert.Contains(t, out, "PORT: EXPORT")
	assert.Contains(t, out, "3 problem(s)")
}

func TestCheckStrict(t *testing.T) {
	_, err := runCmd(t, "check", "--strict")
	assert.ErrorIs(t, err, errProblems)
}

func TestCheckCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[puzzle]]
root = "GRAPH"
extras = "SICOLE"
solutions = ["GRAPHS", "GRAPHIC"]
`), 0o644))

	out, err := runCmd(t, "check", "--strict", "--puzzles", path)
	require.NoError(t, err)
	assert.Contains(t, out, "* 0 GRAPH/SICOLE 2 solutions")
	assert.Contains(t, out, "0 problem(s)")
}

func TestCheckMissingFile(t *testing.T) {
	_, err := runCmd(t, "check", "--puzzles", filepath.Join(t.TempDir(), "none.toml"))
	assert.ErrorContains(t, err, "load puzzles")
}
