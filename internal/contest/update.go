package contest

import (
	"time"

	"github.com/DoyleJ11/ball-contest-support/internal/field"
	"github.com/DoyleJ11/ball-contest-support/internal/risk"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

// UpdateParams are the thresholds the state machine escalates on.
type UpdateParams struct {
	MinContestDuration time.Duration
	MaxDefensiveRisk   float64
	Risk               risk.Evaluator
	Field              field.Geometry
}

func DefaultUpdateParams() UpdateParams {
	return UpdateParams{
		MinContestDuration: 2 * time.Second,
		MaxDefensiveRisk:   0.7,
		Risk:               risk.OwnGoal(),
		Field:              field.Default(),
	}
}

// Update advances the state machine by one cycle. Only Contest.StartTime
// survives from the previous value; everything else is rederived from obs.
//
//	no_contest -> contest_detected -> support_needed   (escalation)
//	any        -> no_contest                           (contest gone)
//
// support_dispatched is entered by the provider when it assigns a player;
// Update leaves it alone while the contest lasts.
func (s Status) Update(obs world.Observation, det Detector, p UpdateParams) Status {
	next := s
	next.LastUpdate = obs.Now

	d := det.Detect(obs)
	if !d.Exists {
		return next.Reset()
	}

	next.DefensiveRisk = s.EvaluateDefensiveRisk(risk.FieldPositions(obs.Teammates, world.NoPlayer), p.Risk, p.Field)

	if s.State == StateNoContest {
		next.State = StateContestDetected
		next.Contest = Info{
			OurPlayer:      d.OurPlayer,
			OpponentPlayer: d.OpponentPlayer,
			Position:       d.Position,
			StartTime:      obs.Now,
			Intensity:      d.Intensity,
		}
		return next
	}

	next.Contest.OurPlayer = d.OurPlayer
	next.Contest.OpponentPlayer = d.OpponentPlayer
	next.Contest.Position = d.Position
	next.Contest.Intensity = d.Intensity

	if next.State == StateContestDetected &&
		obs.Now-next.Contest.StartTime > p.MinContestDuration &&
		next.DefensiveRisk < p.MaxDefensiveRisk {
		next.State = StateSupportNeeded
		next.Contest.NeedsSupport = true
	}
	return next
}
