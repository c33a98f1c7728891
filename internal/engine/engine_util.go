package engine

import (
	"time"

	"github.com/DoyleJ11/ball-contest-support/internal/contest"
	"github.com/DoyleJ11/ball-contest-support/internal/risk"
	"github.com/DoyleJ11/ball-contest-support/internal/support"
)

// Params mirror the provider's loadable parameters.
type Params struct {
	Enabled            bool             `yaml:"enabled" json:"enabled"`
	Strategy           contest.Strategy `yaml:"detector" json:"detector"`
	ContestDistance    float64          `yaml:"contest_distance" json:"contest_distance"`
	DetectionRadius    float64          `yaml:"detection_radius" json:"detection_radius"`
	StationarySpeed    float64          `yaml:"stationary_speed" json:"stationary_speed"`
	MinContestDuration time.Duration    `yaml:"min_contest_duration" json:"min_contest_duration"`
	MaxDefensiveRisk   float64          `yaml:"max_defensive_risk" json:"max_defensive_risk"`
	// SupportDistance is the standoff used for the assigned player's target.
	SupportDistance float64          `yaml:"support_distance" json:"support_distance"`
	Risk            risk.Evaluator   `yaml:"risk" json:"risk"`
	Selector        support.Selector `yaml:"selector" json:"selector"`
}

func DefaultParams() Params {
	return Params{
		Enabled:            true,
		Strategy:           contest.StrategyDistanceBand,
		ContestDistance:    500,
		DetectionRadius:    500,
		StationarySpeed:    100,
		MinContestDuration: 2 * time.Second,
		MaxDefensiveRisk:   0.7,
		SupportDistance:    1000,
		Risk:               risk.OwnGoal(),
		Selector:           support.DefaultSelector(),
	}
}

// Detector resolves the configured strategy. Unknown names fall back to the
// distance band detector; config validation rejects them before they get here.
func (p Params) Detector() contest.Detector {
	d, err := contest.NewDetector(p.Strategy, p.ContestDistance, p.DetectionRadius, p.StationarySpeed)
	if err != nil {
		return contest.DistanceBand{ContestDistance: p.ContestDistance}
	}
	return d
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
