package engine

import (
	"github.com/DoyleJ11/ball-contest-support/internal/contest"
	"github.com/DoyleJ11/ball-contest-support/internal/field"
	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/support"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

type EventType string

const (
	EvtContestDetected   EventType = "ContestDetected"
	EvtSupportNeeded     EventType = "SupportNeeded"
	EvtSupportDispatched EventType = "SupportDispatched"
	EvtSupportReassigned EventType = "SupportReassigned"
	EvtSupportWithdrawn  EventType = "SupportWithdrawn"
	EvtContestEnded      EventType = "ContestEnded"
	EvtSubsystemDisabled EventType = "SubsystemDisabled"
)

/*
	detector:  no contest -> contest   EvtContestDetected
	           duration + risk ok      EvtSupportNeeded
	           contest gone            EvtContestEnded
	selector:  candidate found         EvtSupportDispatched (first) / EvtSupportReassigned (changed player)
	           candidate lost          EvtSupportWithdrawn  (back to support_needed)
	flag off:  active contest dropped  EvtSubsystemDisabled
*/

type Event struct {
	Type   EventType     `json:"type"`
	Player int           `json:"player"`
	State  contest.State `json:"state"`
}

// Step is one control cycle of the central provider. It never fails: a
// disabled subsystem, missing data or a lack of candidates all come out as
// plain states.
func Step(s contest.Status, obs world.Observation, p Params, g field.Geometry) ([]Event, contest.Status) {
	if !p.Enabled {
		next := s.Reset()
		next.LastUpdate = obs.Now
		if s.State != contest.StateNoContest {
			return []Event{{Type: EvtSubsystemDisabled, Player: world.NoPlayer, State: next.State}}, next
		}
		return nil, next
	}

	up := contest.UpdateParams{
		MinContestDuration: p.MinContestDuration,
		MaxDefensiveRisk:   p.MaxDefensiveRisk,
		Risk:               p.Risk,
		Field:              g,
	}
	next := s.Update(obs, p.Detector(), up)

	var events []Event
	switch {
	case s.State != contest.StateNoContest && next.State == contest.StateNoContest:
		return []Event{{Type: EvtContestEnded, Player: world.NoPlayer, State: next.State}}, next
	case s.State == contest.StateNoContest && next.State == contest.StateContestDetected:
		events = append(events, Event{Type: EvtContestDetected, Player: next.Contest.OurPlayer, State: next.State})
	case s.State == contest.StateContestDetected && next.State == contest.StateSupportNeeded:
		events = append(events, Event{Type: EvtSupportNeeded, Player: next.Contest.OurPlayer, State: next.State})
	}

	if next.State != contest.StateSupportNeeded && next.State != contest.StateSupportDispatched {
		return events, next
	}

	assigned, ok := p.Selector.Select(next.Contest.Position, obs.Teammates)
	if !ok {
		if next.State == contest.StateSupportDispatched {
			events = append(events, Event{Type: EvtSupportWithdrawn, Player: next.SupportPlayer, State: contest.StateSupportNeeded})
		}
		next.State = contest.StateSupportNeeded
		next.SupportPlayer = world.NoPlayer
		next.SupportTarget = geom.Vec2{}
		return events, next
	}

	prev := next.SupportPlayer
	wasDispatched := next.State == contest.StateSupportDispatched
	next.State = contest.StateSupportDispatched
	next.SupportPlayer = assigned.Number
	next.SupportTarget = support.Target(next.Contest.Position, p.SupportDistance, g)

	switch {
	case !wasDispatched:
		events = append(events, Event{Type: EvtSupportDispatched, Player: assigned.Number, State: next.State})
	case prev != assigned.Number:
		events = append(events, Event{Type: EvtSupportReassigned, Player: assigned.Number, State: next.State})
	}
	return events, next
}
