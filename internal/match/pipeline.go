package match

import (
	"github.com/DoyleJ11/ball-contest-support/internal/config"
	"github.com/DoyleJ11/ball-contest-support/internal/contest"
	"github.com/DoyleJ11/ball-contest-support/internal/engine"
	"github.com/DoyleJ11/ball-contest-support/internal/role"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

// Frame is the outcome of one control cycle.
type Frame struct {
	Status   contest.Status
	Events   []engine.Event
	Requests map[int]role.Request
	// Supporters lists every agent whose own role concluded it should support.
	Supporters []int
}

// Pipeline carries the state that survives between cycles: the provider's
// status and each agent's role session. It is not safe for concurrent use;
// the Match actor owns one.
type Pipeline struct {
	tuning   config.Tuning
	enabled  bool
	status   contest.Status
	sessions map[int]role.Session
}

func NewPipeline(t config.Tuning) *Pipeline {
	return &Pipeline{
		tuning:   t,
		enabled:  t.Engine.Enabled,
		status:   contest.NewStatus(),
		sessions: make(map[int]role.Session),
	}
}

func (p *Pipeline) Enabled() bool { return p.enabled }

func (p *Pipeline) SetEnabled(on bool) { p.enabled = on }

func (p *Pipeline) Status() contest.Status { return p.status }

// Cycle runs the provider first, then every agent's role against the same
// observation. views optionally replaces the team list an agent sees, keyed
// by agent number; agents without an entry see obs.Teammates.
func (p *Pipeline) Cycle(obs world.Observation, views map[int][]world.Agent) Frame {
	params := p.tuning.Engine
	params.Enabled = p.enabled
	events, next := engine.Step(p.status, obs, params, p.tuning.Field)
	p.status = next

	frame := Frame{Status: next, Events: events, Requests: make(map[int]role.Request)}
	if !p.enabled {
		clear(p.sessions)
		return frame
	}

	seen := make(map[int]bool, len(obs.Teammates))
	for _, a := range world.ByNumber(obs.Teammates) {
		seen[a.Number] = true
		self, team := a, obs.Teammates
		if view, ok := views[a.Number]; ok {
			team = view
			if own, ok := world.Find(view, a.Number); ok {
				self = own
			}
		}
		req, sess := role.Decide(self, team, p.sessions[a.Number], obs.Now, p.tuning.Role, p.tuning.Field)
		p.sessions[a.Number] = sess
		frame.Requests[a.Number] = req
		if req.Kind == role.KindSupport {
			frame.Supporters = append(frame.Supporters, a.Number)
		}
	}
	for n := range p.sessions {
		if !seen[n] {
			delete(p.sessions, n)
		}
	}
	return frame
}
