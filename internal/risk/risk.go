// Package risk scores how exposed the team's defence is. Every agent and the
// central provider compute it independently, so Evaluate must stay a pure
// function of its inputs.
package risk

import (
	"math"

	"github.com/DoyleJ11/ball-contest-support/internal/field"
	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

type Zone string

const (
	// ZoneHalfField counts every player in our half as a defender.
	ZoneHalfField Zone = "half_field"
	// ZoneOwnGoal counts players within ZoneDepth of our goal line.
	ZoneOwnGoal Zone = "own_goal"
)

type Evaluator struct {
	Zone        Zone    `yaml:"zone" json:"zone"`
	TargetRatio float64 `yaml:"target_ratio" json:"target_ratio"`
	ZoneDepth   float64 `yaml:"zone_depth" json:"zone_depth"`
	// MinDefenders floors the required defender count; 0 disables the floor.
	MinDefenders float64 `yaml:"min_defenders" json:"min_defenders"`
}

// HalfField is the evaluator the central provider runs over field players.
func HalfField() Evaluator {
	return Evaluator{Zone: ZoneHalfField, TargetRatio: 0.4}
}

// OwnGoal is the evaluator the contest status uses over field players.
func OwnGoal() Evaluator {
	return Evaluator{Zone: ZoneOwnGoal, TargetRatio: 0.6, ZoneDepth: 2000}
}

// IsDefending reports whether p counts as a defensive position.
func (e Evaluator) IsDefending(p geom.Vec2, g field.Geometry) bool {
	switch e.Zone {
	case ZoneOwnGoal:
		return p.X < g.OwnGoal().X+e.ZoneDepth
	default:
		return g.InOwnHalf(p)
	}
}

// Evaluate returns a risk in [0,1]: 0 when at least the target share of
// players defends, rising linearly to 1 when nobody does.
func (e Evaluator) Evaluate(positions []geom.Vec2, g field.Geometry) float64 {
	return e.score(e.defenders(positions, g), len(positions))
}

// EvaluateLeaving is the risk once one more field player, not listed in
// others, walks away from the defence. It still counts towards the team
// size but never as a defender.
func (e Evaluator) EvaluateLeaving(others []geom.Vec2, g field.Geometry) float64 {
	return e.score(e.defenders(others, g), len(others)+1)
}

func (e Evaluator) defenders(positions []geom.Vec2, g field.Geometry) int {
	n := 0
	for _, p := range positions {
		if e.IsDefending(p, g) {
			n++
		}
	}
	return n
}

func (e Evaluator) score(defenders, total int) float64 {
	if total == 0 {
		return 0
	}
	need := math.Max(e.MinDefenders, e.TargetRatio*float64(total))
	if need <= 0 {
		return 0
	}
	r := (need - float64(defenders)) / need
	return math.Min(1, math.Max(0, r))
}

// FieldPositions collects the positions of non-goalkeepers, skipping the
// agent numbered exclude (pass world.NoPlayer to keep everyone). Skipping an
// agent answers "what remains if this one leaves".
func FieldPositions(agents []world.Agent, exclude int) []geom.Vec2 {
	out := make([]geom.Vec2, 0, len(agents))
	for _, a := range world.ByNumber(agents) {
		if a.IsGoalkeeper || a.Number == exclude {
			continue
		}
		out = append(out, a.Position)
	}
	return out
}
