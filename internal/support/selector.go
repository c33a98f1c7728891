// Package support picks the teammate that should back up a ball contest and
// the spot it should run to. Both the central provider and every agent's
// local role call into it, so all functions here are pure.
package support

import (
	"sort"

	"github.com/DoyleJ11/ball-contest-support/internal/field"
	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

type Selector struct {
	// DetectionRadius: agents this close to the contest are already in it.
	DetectionRadius float64 `yaml:"detection_radius" json:"detection_radius"`
	MaxRange        float64 `yaml:"max_range" json:"max_range"`
	// ForwardThreshold splits the field for the forward-position bonus.
	ForwardThreshold float64 `yaml:"forward_threshold" json:"forward_threshold"`
	ForwardScore     float64 `yaml:"forward_score" json:"forward_score"`
	BackScore        float64 `yaml:"back_score" json:"back_score"`
	DistanceWeight   float64 `yaml:"distance_weight" json:"distance_weight"`
	PositionWeight   float64 `yaml:"position_weight" json:"position_weight"`
}

func DefaultSelector() Selector {
	return Selector{
		DetectionRadius:  500,
		MaxRange:         2000,
		ForwardThreshold: -1000,
		ForwardScore:     1,
		BackScore:        0.5,
		DistanceWeight:   0.7,
		PositionWeight:   0.3,
	}
}

// Candidate is one eligible agent and how it scored.
type Candidate struct {
	Number        int     `json:"number"`
	Distance      float64 `json:"distance"`
	DistanceScore float64 `json:"distance_score"`
	PositionScore float64 `json:"position_score"`
	Total         float64 `json:"total"`
}

// Assignment is the outcome of a successful selection.
type Assignment struct {
	Number int
	Score  float64
}

// Eligible reports whether a can be considered for support at all.
func (s Selector) Eligible(a world.Agent, contest geom.Vec2) bool {
	if a.IsGoalkeeper {
		return false
	}
	d := a.Position.Dist(contest)
	return d >= s.DetectionRadius && d <= s.MaxRange
}

// Scores ranks every eligible agent, best first. Equal totals are ordered by
// agent number so that every caller sees the same ranking.
func (s Selector) Scores(contest geom.Vec2, agents []world.Agent) []Candidate {
	var out []Candidate
	for _, a := range agents {
		if !s.Eligible(a, contest) {
			continue
		}
		d := a.Position.Dist(contest)
		c := Candidate{
			Number:        a.Number,
			Distance:      d,
			DistanceScore: 1 - d/s.MaxRange,
			PositionScore: s.BackScore,
		}
		if a.Position.X > s.ForwardThreshold {
			c.PositionScore = s.ForwardScore
		}
		c.Total = s.DistanceWeight*c.DistanceScore + s.PositionWeight*c.PositionScore
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// Select returns the single best candidate, or false when nobody is eligible.
func (s Selector) Select(contest geom.Vec2, agents []world.Agent) (Assignment, bool) {
	ranked := s.Scores(contest, agents)
	if len(ranked) == 0 {
		return Assignment{Number: world.NoPlayer}, false
	}
	return Assignment{Number: ranked[0].Number, Score: ranked[0].Total}, true
}

// Target places the supporter standoff behind the contest (away from the
// opponent goal) and half a standoff to the side, opening a passing angle.
// The side flips with the field half so the supporter covers the centre.
func Target(contest geom.Vec2, standoff float64, g field.Geometry) geom.Vec2 {
	dir := g.OpponentGoal().Sub(contest).Normalized()
	base := contest.Sub(dir.Scale(standoff))
	lateral := dir.Perp().Scale(standoff * 0.5)
	if contest.Y > 0 {
		lateral = lateral.Scale(-1)
	}
	return g.Clamp(base.Add(lateral))
}
