// Package config loads the two kinds of configuration the service needs: the
// tuning document (contest thresholds, role parameters, field geometry) and
// the process environment (listen address, cycle period, database).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/DoyleJ11/ball-contest-support/internal/contest"
	"github.com/DoyleJ11/ball-contest-support/internal/engine"
	"github.com/DoyleJ11/ball-contest-support/internal/field"
	"github.com/DoyleJ11/ball-contest-support/internal/risk"
	"github.com/DoyleJ11/ball-contest-support/internal/role"
)

var ErrInvalidTuning = errors.New("invalid tuning")

// DefaultTuningYAML documents every knob with its default value.
const DefaultTuningYAML = `# ball contest support tuning
# lengths in millimetres, durations as Go durations ("2s", "1500ms")

engine:
  enabled: true
  detector: distance_band        # or: proximity
  contest_distance: 500
  detection_radius: 500
  stationary_speed: 100          # mm/s, proximity detector only
  min_contest_duration: 2s
  max_defensive_risk: 0.7
  support_distance: 1000
  risk:
    zone: own_goal               # or: half_field
    target_ratio: 0.6
    zone_depth: 2000
  selector:
    detection_radius: 500
    max_range: 2000
    forward_threshold: -1000
    forward_score: 1
    back_score: 0.5
    distance_weight: 0.7
    position_weight: 0.3

role:
  support_distance: 800
  max_support_distance: 1500
  max_defensive_risk: 0.6
  detection_radius: 500
  min_contest_duration: 2s
  risk:
    zone: half_field
    target_ratio: 0.4
    min_defenders: 1

field:
  length: 9000
  width: 6000
  boundary_margin: 500
`

type Tuning struct {
	Engine engine.Params  `yaml:"engine" json:"engine"`
	Role   role.Params    `yaml:"role" json:"role"`
	Field  field.Geometry `yaml:"field" json:"field"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Engine: engine.DefaultParams(),
		Role:   role.DefaultParams(),
		Field:  field.Default(),
	}
}

// ParseTuning overlays data on the defaults and validates the result.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// LoadTuning reads a tuning file. An empty path or a missing file yields the
// defaults.
func LoadTuning(path string) (Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultTuning(), nil
	}
	if err != nil {
		return Tuning{}, fmt.Errorf("load tuning: %w", err)
	}
	return ParseTuning(data)
}

// Marshal renders t as YAML.
func (t Tuning) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}

// Validate reports every problem at once.
func (t Tuning) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalidTuning}, args...)...))
		}
	}

	e := t.Engine
	_, detErr := contest.NewDetector(e.Strategy, e.ContestDistance, e.DetectionRadius, e.StationarySpeed)
	check(detErr == nil, "engine.detector %q", e.Strategy)
	check(e.ContestDistance > 0, "engine.contest_distance must be positive")
	check(e.DetectionRadius > 0, "engine.detection_radius must be positive")
	check(e.MinContestDuration >= 0, "engine.min_contest_duration must not be negative")
	check(inUnit(e.MaxDefensiveRisk), "engine.max_defensive_risk must be in [0,1]")
	check(e.SupportDistance > 0, "engine.support_distance must be positive")
	err = multierr.Append(err, validateRisk("engine.risk", e.Risk))
	check(e.Selector.MaxRange > 0, "engine.selector.max_range must be positive")
	check(e.Selector.DetectionRadius < e.Selector.MaxRange, "engine.selector.detection_radius must be below max_range")

	r := t.Role
	check(r.SupportDistance > 0, "role.support_distance must be positive")
	check(r.MaxSupportDistance > 0, "role.max_support_distance must be positive")
	check(inUnit(r.MaxDefensiveRisk), "role.max_defensive_risk must be in [0,1]")
	check(r.DetectionRadius > 0, "role.detection_radius must be positive")
	check(r.MinContestDuration >= 0, "role.min_contest_duration must not be negative")
	err = multierr.Append(err, validateRisk("role.risk", r.Risk))

	check(t.Field.Length > 2*t.Field.BoundaryMargin, "field.length must exceed twice the boundary margin")
	check(t.Field.Width > 2*t.Field.BoundaryMargin, "field.width must exceed twice the boundary margin")
	return err
}

func validateRisk(prefix string, e risk.Evaluator) error {
	var err error
	switch e.Zone {
	case risk.ZoneHalfField, risk.ZoneOwnGoal:
	default:
		err = multierr.Append(err, fmt.Errorf("%w: %s.zone %q", ErrInvalidTuning, prefix, e.Zone))
	}
	if !inUnit(e.TargetRatio) {
		err = multierr.Append(err, fmt.Errorf("%w: %s.target_ratio must be in [0,1]", ErrInvalidTuning, prefix))
	}
	if e.Zone == risk.ZoneOwnGoal && e.ZoneDepth <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %s.zone_depth must be positive", ErrInvalidTuning, prefix))
	}
	return err
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }
