// Package world is the read-only snapshot the coordination pipeline consumes
// each control cycle. Perception and team communication fill it in.
package world

import (
	"sort"
	"time"

	"github.com/DoyleJ11/ball-contest-support/internal/geom"
)

// NoPlayer marks an unknown or unassigned player number.
const NoPlayer = -1

type Agent struct {
	Number       int       `json:"number"`
	Position     geom.Vec2 `json:"position"`
	BallPosition geom.Vec2 `json:"ball_position"`
	IsGoalkeeper bool      `json:"is_goalkeeper"`
	BasePose     geom.Pose `json:"base_pose"`
}

// BallDistance is the agent's distance to its own ball estimate.
func (a Agent) BallDistance() float64 { return a.Position.Dist(a.BallPosition) }

type Opponent struct {
	Number   int       `json:"number,omitempty"` // 0 when the tracker could not tell
	Position geom.Vec2 `json:"position"`
}

// Observation is everything one agent knows at the start of a cycle.
type Observation struct {
	Ball         geom.Vec2     `json:"ball"`
	BallVelocity geom.Vec2     `json:"ball_velocity"`
	Teammates    []Agent       `json:"teammates"`
	Opponents    []Opponent    `json:"opponents"`
	Now          time.Duration `json:"now"`
}

// ByNumber returns a copy of agents sorted by player number, so that callers
// iterating it see the same order whatever order the data arrived in.
func ByNumber(agents []Agent) []Agent {
	out := make([]Agent, len(agents))
	copy(out, agents)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Find returns the agent with the given number.
func Find(agents []Agent, number int) (Agent, bool) {
	for _, a := range agents {
		if a.Number == number {
			return a, true
		}
	}
	return Agent{}, false
}
