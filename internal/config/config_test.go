package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/DoyleJ11/ball-contest-support/internal/contest"
	"github.com/DoyleJ11/ball-contest-support/internal/risk"
)

func TestDefaultTuningYAMLMatchesCodeDefaults(t *testing.T) {
	parsed, err := ParseTuning([]byte(DefaultTuningYAML))
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), parsed)
}

func TestLoadTuningMissingFileUsesDefaults(t *testing.T) {
	got, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), got)

	got, err = LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), got)
}

func TestLoadTuningOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	doc := strings.TrimSpace(`
engine:
  detector: proximity
  min_contest_duration: 1500ms
  risk:
    zone: half_field
    target_ratio: 0.4
role:
  max_support_distance: 1800
`)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, contest.StrategyProximity, got.Engine.Strategy)
	assert.Equal(t, 1500*time.Millisecond, got.Engine.MinContestDuration)
	assert.Equal(t, risk.ZoneHalfField, got.Engine.Risk.Zone)
	assert.Equal(t, 1800.0, got.Role.MaxSupportDistance)
	// untouched keys keep their defaults
	assert.Equal(t, 0.7, got.Engine.MaxDefensiveRisk)
	assert.Equal(t, 9000.0, got.Field.Length)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	tu := DefaultTuning()
	tu.Engine.Strategy = "coin_flip"
	tu.Engine.MaxDefensiveRisk = 1.5
	tu.Role.Risk.Zone = "midfield"

	err := tu.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTuning))
	assert.Len(t, multierr.Errors(err), 3)
}

func TestParseTuningRejectsBadYAML(t *testing.T) {
	_, err := ParseTuning([]byte("engine: [unclosed"))
	assert.Error(t, err)
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	data, err := DefaultTuning().Marshal()
	require.NoError(t, err)
	back, err := ParseTuning(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), back)
}

func TestLoadServerConfigDefaults(t *testing.T) {
	for _, k := range []string{"CONTEST_ADDR", "CONTEST_CONTROL_CYCLE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := LoadServerConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 33*time.Millisecond, cfg.ControlCycle)
}

func TestLoadServerConfigFromEnvFile(t *testing.T) {
	// registered so the variables are restored after the test
	t.Setenv("CONTEST_ADDR", "")
	t.Setenv("CONTEST_CONTROL_CYCLE", "")
	os.Unsetenv("CONTEST_ADDR")
	os.Unsetenv("CONTEST_CONTROL_CYCLE")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONTEST_ADDR=:9999\nCONTEST_CONTROL_CYCLE=20ms\n"), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 20*time.Millisecond, cfg.ControlCycle)
}

func TestLoadServerConfigRejectsZeroCycle(t *testing.T) {
	t.Setenv("CONTEST_CONTROL_CYCLE", "0s")
	_, err := LoadServerConfig("")
	assert.Error(t, err)
}
