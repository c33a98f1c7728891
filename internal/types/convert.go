package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/match"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
	wire "github.com/DoyleJ11/ball-contest-support/pkg/types"
)

var ErrBadObservation = errors.New("bad observation")

func vec(v wire.Vec2) geom.Vec2 { return geom.V(v.X, v.Y) }

func toWireVec(v geom.Vec2) wire.Vec2 { return wire.Vec2{X: v.X, Y: v.Y} }

func ms(d time.Duration) int64 { return d.Milliseconds() }

func agents(in []wire.Agent) ([]world.Agent, error) {
	seen := make(map[int]bool, len(in))
	out := make([]world.Agent, 0, len(in))
	for _, a := range in {
		if a.Number <= 0 {
			return nil, fmt.Errorf("%w: agent number %d", ErrBadObservation, a.Number)
		}
		if seen[a.Number] {
			return nil, fmt.Errorf("%w: duplicate agent %d", ErrBadObservation, a.Number)
		}
		seen[a.Number] = true
		out = append(out, world.Agent{
			Number:       a.Number,
			Position:     vec(a.Position),
			BallPosition: vec(a.Ball),
			IsGoalkeeper: a.IsGoalkeeper,
			BasePose:     geom.Pose{Position: geom.V(a.BasePose.X, a.BasePose.Y), Rotation: a.BasePose.Rotation},
		})
	}
	return out, nil
}

// ToObserve validates a pushed observation and turns it into a match message.
func ToObserve(o wire.Observation) (match.Observe, error) {
	if o.NowMS < 0 {
		return match.Observe{}, fmt.Errorf("%w: negative timestamp", ErrBadObservation)
	}
	team, err := agents(o.Teammates)
	if err != nil {
		return match.Observe{}, err
	}
	obs := world.Observation{
		Ball:         vec(o.Ball),
		BallVelocity: vec(o.BallVelocity),
		Teammates:    team,
		Now:          time.Duration(o.NowMS) * time.Millisecond,
	}
	for _, op := range o.Opponents {
		obs.Opponents = append(obs.Opponents, world.Opponent{Number: op.Number, Position: vec(op.Position)})
	}

	var views map[int][]world.Agent
	if len(o.Views) > 0 {
		views = make(map[int][]world.Agent, len(o.Views))
		for n, v := range o.Views {
			view, err := agents(v)
			if err != nil {
				return match.Observe{}, fmt.Errorf("view of %d: %w", n, err)
			}
			views[n] = view
		}
	}
	return match.Observe{Obs: obs, Views: views}, nil
}

func ToSnapshot(s match.Snapshot) wire.Snapshot {
	st := s.Status
	out := wire.Snapshot{
		Code:    s.Code,
		Cycle:   s.Cycle,
		Enabled: s.Enabled,
		State:   string(st.State),
		Contest: wire.Contest{
			OurPlayer:      st.Contest.OurPlayer,
			OpponentPlayer: st.Contest.OpponentPlayer,
			Position:       toWireVec(st.Contest.Position),
			StartMS:        ms(st.Contest.StartTime),
			Intensity:      st.Contest.Intensity,
			NeedsSupport:   st.Contest.NeedsSupport,
		},
		SupportPlayer: st.SupportPlayer,
		SupportTarget: toWireVec(st.SupportTarget),
		DefensiveRisk: st.DefensiveRisk,
		UpdatedMS:     ms(st.LastUpdate),
		Supporters:    append([]int{}, s.Supporters...),
	}
	for _, ev := range s.Events {
		out.Events = append(out.Events, wire.Event{Type: string(ev.Type), Player: ev.Player, State: string(ev.State)})
	}
	if len(s.Requests) > 0 {
		out.Requests = make(map[int]wire.Request, len(s.Requests))
		for n, r := range s.Requests {
			out.Requests[n] = wire.Request{
				Kind:   string(r.Kind),
				Pose:   wire.Pose{X: r.Pose.Position.X, Y: r.Pose.Position.Y, Rotation: r.Pose.Rotation},
				Reason: string(r.Reason),
			}
		}
	}
	return out
}

func SnapshotMessage(s match.Snapshot) ServerMessage {
	snap := ToSnapshot(s)
	return ServerMessage{Type: "Snapshot", Snapshot: &snap}
}
