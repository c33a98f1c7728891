package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		tuningFile = ""
		runJSON = false
		tuningInitForce = false
	})
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestRunTable(t *testing.T) {
	out := execute(t, "run", "B")
	assert.Contains(t, out, "== B:")
	assert.Contains(t, out, "contest_detected")
	assert.Contains(t, out, "support_needed")
}

func TestRunJSON(t *testing.T) {
	out := execute(t, "run", "--json", "dispatch")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	var step struct {
		State   string `json:"state"`
		Support int    `json:"support_player"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &step))
	assert.Equal(t, "support_dispatched", step.State)
	assert.Equal(t, 3, step.Support)
}

func TestList(t *testing.T) {
	out := execute(t, "list")
	for _, name := range []string{"A", "B", "C", "D", "converge", "dispatch"} {
		assert.Contains(t, out, name)
	}
}

func TestTuningInitAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	execute(t, "tuning", "init", path)
	_, err := os.Stat(path)
	require.NoError(t, err)

	out := execute(t, "tuning", "check", path)
	assert.Contains(t, out, "detector: distance_band")

	out = execute(t, "run", "--tuning", path, "A")
	assert.Contains(t, out, "contest_detected")
}
