// Package contest holds the per-cycle contest record and the detectors that
// drive it. A Status is a plain value: Update takes one and returns the next,
// the way the provider recomputes it every control cycle.
package contest

import (
	"time"

	"github.com/DoyleJ11/ball-contest-support/internal/field"
	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/risk"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

type State string

const (
	StateNoContest         State = "no_contest"
	StateContestDetected   State = "contest_detected"
	StateSupportNeeded     State = "support_needed"
	StateSupportDispatched State = "support_dispatched"
)

// Rank orders states along the escalation path. Transitions only ever move
// up one rank at a time or fall back to StateNoContest.
func (s State) Rank() int {
	switch s {
	case StateContestDetected:
		return 1
	case StateSupportNeeded:
		return 2
	case StateSupportDispatched:
		return 3
	default:
		return 0
	}
}

// Info describes the contest currently being tracked.
type Info struct {
	OurPlayer      int           `json:"our_player"`
	OpponentPlayer int           `json:"opponent_player"`
	Position       geom.Vec2     `json:"position"`
	StartTime      time.Duration `json:"start_time"`
	Intensity      float64       `json:"intensity"`
	NeedsSupport   bool          `json:"needs_support"`
}

func NewInfo() Info {
	return Info{OurPlayer: world.NoPlayer, OpponentPlayer: world.NoPlayer}
}

type Status struct {
	State         State         `json:"state"`
	Contest       Info          `json:"contest"`
	SupportPlayer int           `json:"support_player"`
	SupportTarget geom.Vec2     `json:"support_target"`
	DefensiveRisk float64       `json:"defensive_risk"`
	LastUpdate    time.Duration `json:"last_update"`
}

func NewStatus() Status {
	return Status{
		State:         StateNoContest,
		Contest:       NewInfo(),
		SupportPlayer: world.NoPlayer,
	}
}

// Reset drops everything but the update timestamp.
func (s Status) Reset() Status {
	n := NewStatus()
	n.LastUpdate = s.LastUpdate
	return n
}

func (s Status) ShouldSendSupport() bool {
	return s.State == StateSupportNeeded && s.Contest.NeedsSupport
}

// HasSupporter reports whether a player is currently assigned.
func (s Status) HasSupporter() bool { return s.SupportPlayer != world.NoPlayer }

// SupportPosition is the point standoff behind the contest, on the line from
// the contest to the opponent goal. Zero while there is no contest.
func (s Status) SupportPosition(g field.Geometry, standoff float64) geom.Vec2 {
	if s.State == StateNoContest {
		return geom.Vec2{}
	}
	dir := g.OpponentGoal().Sub(s.Contest.Position).Normalized()
	return s.Contest.Position.Sub(dir.Scale(standoff))
}

func (s Status) EvaluateDefensiveRisk(positions []geom.Vec2, e risk.Evaluator, g field.Geometry) float64 {
	return e.Evaluate(positions, g)
}
