// Package role is the ball-contest support role every agent runs on its own.
// No agent tells another what to do: each one rederives the contest, the risk
// and the best supporter from its own view and only moves if it concludes it
// is the one. Identical views give identical answers on every robot.
package role

import (
	"math"
	"time"

	"github.com/DoyleJ11/ball-contest-support/internal/field"
	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/risk"
	"github.com/DoyleJ11/ball-contest-support/internal/support"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

type Params struct {
	SupportDistance    float64        `yaml:"support_distance" json:"support_distance"`
	MaxSupportDistance float64        `yaml:"max_support_distance" json:"max_support_distance"`
	MaxDefensiveRisk   float64        `yaml:"max_defensive_risk" json:"max_defensive_risk"`
	DetectionRadius    float64        `yaml:"detection_radius" json:"detection_radius"`
	MinContestDuration time.Duration  `yaml:"min_contest_duration" json:"min_contest_duration"`
	Risk               risk.Evaluator `yaml:"risk" json:"risk"`
}

func DefaultParams() Params {
	return Params{
		SupportDistance:    800,
		MaxSupportDistance: 1500,
		MaxDefensiveRisk:   0.6,
		DetectionRadius:    500,
		MinContestDuration: 2 * time.Second,
		Risk: risk.Evaluator{
			Zone:         risk.ZoneHalfField,
			TargetRatio:  0.4,
			MinDefenders: 1,
		},
	}
}

type Kind string

const (
	KindSupport  Kind = "support"
	KindBaseline Kind = "baseline"
)

// Reason says why a request came out the way it did.
type Reason string

const (
	ReasonGoalkeeper Reason = "goalkeeper"
	ReasonNoContest  Reason = "no_contest"
	ReasonWaiting    Reason = "waiting"
	ReasonRisk       Reason = "defensive_risk"
	ReasonInContest  Reason = "in_contest"
	ReasonOutOfRange Reason = "out_of_range"
	ReasonNotClosest Reason = "not_closest"
	ReasonSelected   Reason = "selected"
)

// Request is what the behavior layer turns into a walk command.
type Request struct {
	Kind   Kind      `json:"kind"`
	Pose   geom.Pose `json:"pose"`
	Reason Reason    `json:"reason"`
}

// Session is the little bit of memory one agent keeps between cycles.
type Session struct {
	InContest    bool          `json:"in_contest"`
	ContestStart time.Duration `json:"contest_start"`
	Supporting   bool          `json:"supporting"`
	LastTarget   geom.Vec2     `json:"last_target"`
}

func baseline(self world.Agent, why Reason) Request {
	return Request{Kind: KindBaseline, Pose: self.BasePose, Reason: why}
}

// Decide runs one cycle of the role for self. team is every agent self knows
// about; self may or may not be in it.
func Decide(self world.Agent, team []world.Agent, sess Session, now time.Duration, p Params, g field.Geometry) (Request, Session) {
	sess.Supporting = false
	if self.IsGoalkeeper {
		return baseline(self, ReasonGoalkeeper), Session{}
	}

	contestant, ok := Contestant(self, team, p.DetectionRadius)
	if !ok {
		return baseline(self, ReasonNoContest), Session{}
	}
	if !sess.InContest {
		sess.InContest = true
		sess.ContestStart = now
	}
	if now-sess.ContestStart <= p.MinContestDuration {
		return baseline(self, ReasonWaiting), sess
	}

	if DefensiveRisk(self, team, p.Risk, g) > p.MaxDefensiveRisk {
		return baseline(self, ReasonRisk), sess
	}

	at := contestant.BallPosition
	if why, chosen := bestCandidate(self, team, at, p); !chosen {
		return baseline(self, why), sess
	}

	target := support.Target(at, p.SupportDistance, g)
	sess.Supporting = true
	sess.LastTarget = target
	return Request{Kind: KindSupport, Pose: geom.Facing(target, at), Reason: ReasonSelected}, sess
}

// Contestant finds the teammate other than self that is nearest its own ball
// estimate and within radius. Ties go to the lower number.
func Contestant(self world.Agent, team []world.Agent, radius float64) (world.Agent, bool) {
	best := math.Inf(1)
	var found world.Agent
	for _, a := range world.ByNumber(team) {
		if a.Number == self.Number {
			continue
		}
		if d := a.BallDistance(); d < radius && d < best {
			best = d
			found = a
		}
	}
	return found, !math.IsInf(best, 1)
}

// DefensiveRisk is the risk left behind if self walks off to support: self
// stays in the team size but no longer counts as a defender.
func DefensiveRisk(self world.Agent, team []world.Agent, e risk.Evaluator, g field.Geometry) float64 {
	return e.EvaluateLeaving(risk.FieldPositions(team, self.Number), g)
}

// bestCandidate checks that self may support and that no other eligible
// field player is closer to the contest. Equal distances go to the lower
// number so two robots never both step up.
func bestCandidate(self world.Agent, team []world.Agent, contest geom.Vec2, p Params) (Reason, bool) {
	own := self.Position.Dist(contest)
	if own < p.DetectionRadius {
		return ReasonInContest, false
	}
	if own > p.MaxSupportDistance {
		return ReasonOutOfRange, false
	}
	for _, a := range team {
		if a.Number == self.Number || a.IsGoalkeeper {
			continue
		}
		d := a.Position.Dist(contest)
		if d < p.DetectionRadius {
			continue
		}
		if d < own || (d == own && a.Number < self.Number) {
			return ReasonNotClosest, false
		}
	}
	return ReasonSelected, true
}
