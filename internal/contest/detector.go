package contest

import (
	"fmt"
	"math"

	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

// Detection is one detector's verdict for a single cycle.
type Detection struct {
	Exists         bool
	OurPlayer      int
	OpponentPlayer int
	Position       geom.Vec2
	Intensity      float64
	TeammateDist   float64
	OpponentDist   float64
}

// Detector decides from one observation whether the ball is being contested.
type Detector interface {
	Detect(obs world.Observation) Detection
}

// Strategy names a Detector in configuration.
type Strategy string

const (
	StrategyDistanceBand Strategy = "distance_band"
	StrategyProximity    Strategy = "proximity"
)

// DistanceBand requires a teammate and an opponent both near the ball and at
// similar distances from it, i.e. actually fighting over it.
type DistanceBand struct {
	ContestDistance float64
}

func (d DistanceBand) Detect(obs world.Observation) Detection {
	det := Detection{OurPlayer: world.NoPlayer, OpponentPlayer: world.NoPlayer, Position: obs.Ball}
	var teammate world.Agent
	teammate, det.TeammateDist = closestTeammate(obs.Ball, obs.Teammates)
	if !math.IsInf(det.TeammateDist, 1) {
		det.OurPlayer = teammate.Number
	}
	opp, oppDist := closestOpponent(obs.Ball, obs.Opponents)
	det.OpponentDist = oppDist
	if opp.Number > 0 {
		det.OpponentPlayer = opp.Number
	}

	diff := math.Abs(det.TeammateDist - det.OpponentDist)
	det.Exists = det.TeammateDist < d.ContestDistance &&
		det.OpponentDist < d.ContestDistance &&
		diff < 0.5*d.ContestDistance
	if det.Exists {
		det.Intensity = clamp01(1 - diff/d.ContestDistance)
	}
	return det
}

// Proximity is the looser team-ball heuristic: a teammate sits on a ball
// that has stopped moving. Opponents are not looked at.
type Proximity struct {
	DetectionRadius float64
	StationarySpeed float64
}

func (p Proximity) Detect(obs world.Observation) Detection {
	det := Detection{OurPlayer: world.NoPlayer, OpponentPlayer: world.NoPlayer, Position: obs.Ball, OpponentDist: math.Inf(1)}
	var teammate world.Agent
	teammate, det.TeammateDist = closestTeammate(obs.Ball, obs.Teammates)
	if !math.IsInf(det.TeammateDist, 1) {
		det.OurPlayer = teammate.Number
	}
	det.Exists = det.TeammateDist < p.DetectionRadius && obs.BallVelocity.Norm() < p.StationarySpeed
	if det.Exists {
		det.Intensity = clamp01(1 - det.TeammateDist/p.DetectionRadius)
	}
	return det
}

// NewDetector builds the detector a strategy name refers to.
func NewDetector(s Strategy, contestDistance, detectionRadius, stationarySpeed float64) (Detector, error) {
	switch s {
	case StrategyDistanceBand, "":
		return DistanceBand{ContestDistance: contestDistance}, nil
	case StrategyProximity:
		return Proximity{DetectionRadius: detectionRadius, StationarySpeed: stationarySpeed}, nil
	default:
		return nil, fmt.Errorf("unknown detector strategy %q", s)
	}
}

// closestTeammate returns the teammate nearest to ball, lower number first on
// ties. Distance is +Inf for an empty list.
func closestTeammate(ball geom.Vec2, agents []world.Agent) (world.Agent, float64) {
	best := math.Inf(1)
	var found world.Agent
	for _, a := range world.ByNumber(agents) {
		if d := a.Position.Dist(ball); d < best {
			best = d
			found = a
		}
	}
	return found, best
}

func closestOpponent(ball geom.Vec2, opponents []world.Opponent) (world.Opponent, float64) {
	best := math.Inf(1)
	var found world.Opponent
	for _, o := range opponents {
		if d := o.Position.Dist(ball); d < best {
			best = d
			found = o
		}
	}
	return found, best
}

func clamp01(v float64) float64 { return math.Min(1, math.Max(0, v)) }
