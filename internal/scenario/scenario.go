// Package scenario holds canned match situations that can be replayed
// headless through the full pipeline, for the CLI and for regression tests.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/match"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// Step is one control cycle. Enabled, when set, toggles the subsystem before
// the cycle runs.
type Step struct {
	Obs     world.Observation
	Views   map[int][]world.Agent
	Enabled *bool
	Note    string
}

type Scenario struct {
	Name        string
	Description string
	Steps       []Step
}

type Result struct {
	Step  Step
	Frame match.Frame
}

// Run replays s on a fresh pipeline.
func Run(s Scenario, t config.Tuning) []Result {
	p := match.NewPipeline(t)
	out := make([]Result, 0, len(s.Steps))
	for _, st := range s.Steps {
		if st.Enabled != nil {
			p.SetEnabled(*st.Enabled)
		}
		out = append(out, Result{Step: st, Frame: p.Cycle(st.Obs, st.Views)})
	}
	return out
}

var ball = geom.V(1000, 500)

func mate(n int, x, y float64) world.Agent {
	return world.Agent{
		Number:       n,
		Position:     geom.V(x, y),
		BallPosition: ball,
		BasePose:     geom.Pose{Position: geom.V(-3000+600*float64(n), 0)},
	}
}

func keeper(n int, x, y float64) world.Agent {
	a := mate(n, x, y)
	a.IsGoalkeeper = true
	return a
}

func at(ms int, team []world.Agent, opponents ...world.Opponent) world.Observation {
	return world.Observation{
		Ball:      ball,
		Teammates: team,
		Opponents: opponents,
		Now:       time.Duration(ms) * time.Millisecond,
	}
}

var rival = world.Opponent{Number: 7, Position: geom.V(1100, 500)}

func contestTeam() []world.Agent {
	return []world.Agent{
		mate(1, 1050, 450),
		mate(2, 800, 600),
		mate(3, -2000, 0),
		mate(4, -3000, 0),
	}
}

// fullTeam has a keeper at home and a free midfielder near the contest.
func fullTeam() []world.Agent {
	return []world.Agent{
		keeper(1, -4300, 0),
		mate(2, 1000, 480),
		mate(3, 0, 0),
		mate(4, -500, -800),
		mate(5, -3000, 0),
	}
}

func without(team []world.Agent, number int) []world.Agent {
	var out []world.Agent
	for _, a := range team {
		if a.Number != number {
			out = append(out, a)
		}
	}
	return out
}

func flag(v bool) *bool { return &v }

var all = map[string]Scenario{
	"A": {
		Name:        "A",
		Description: "contest appears, support must wait",
		Steps:       []Step{{Obs: at(1000, contestTeam(), rival), Note: "contest starts"}},
	},
	"B": {
		Name:        "B",
		Description: "contest lasts past the minimum duration with acceptable risk",
		Steps: []Step{
			{Obs: at(1000, contestTeam(), rival), Note: "contest starts"},
			{Obs: at(3200, contestTeam(), rival), Note: "2.2s later"},
		},
	},
	"C": {
		Name:        "C",
		Description: "subsystem switched off mid contest",
		Steps: []Step{
			{Obs: at(1000, fullTeam(), rival)},
			{Obs: at(3200, fullTeam(), rival), Note: "supporter dispatched"},
			{Obs: at(3233, fullTeam(), rival), Enabled: flag(false), Note: "switched off"},
			{Obs: at(5000, fullTeam(), rival), Note: "still off"},
		},
	},
	"D": {
		Name:        "D",
		Description: "teammate on the ball with no opponent near",
		Steps: []Step{
			{Obs: at(1000, contestTeam(), world.Opponent{Number: 7, Position: geom.V(3000, -2000)})},
			{Obs: at(3200, contestTeam(), world.Opponent{Number: 7, Position: geom.V(3000, -2000)})},
		},
	},
	"dispatch": {
		Name:        "dispatch",
		Description: "free midfielder sent in, then the contest ends",
		Steps: []Step{
			{Obs: at(1000, fullTeam(), rival), Note: "contest starts"},
			{Obs: at(3200, fullTeam(), rival), Note: "supporter dispatched"},
			{Obs: at(3500, fullTeam()), Note: "opponent gone"},
		},
	},
	"converge": {
		Name:        "converge",
		Description: "two agents with different views both step up, then agree",
		Steps: []Step{
			{Obs: at(1000, append(fullTeam(), mate(6, 2000, 1200)), rival)},
			{
				Obs:   at(3200, append(fullTeam(), mate(6, 2000, 1200)), rival),
				Views: map[int][]world.Agent{6: without(append(fullTeam(), mate(6, 2000, 1200)), 3)},
				Note:  "#6 has not heard from #3",
			},
			{Obs: at(3300, append(fullTeam(), mate(6, 2000, 1200)), rival), Note: "views synchronised"},
		},
	},
}

func Get(name string) (Scenario, error) {
	s, ok := all[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return s, nil
}

func Names() []string {
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
