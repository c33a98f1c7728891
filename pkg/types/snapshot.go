// Package types is the JSON shape of everything the service sends and
// accepts, for clients that do not want to import the internal packages.
// Lengths are millimetres, angles radians, times milliseconds since the
// start of the match clock.
package types

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Pose struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

type Contest struct {
	OurPlayer      int     `json:"our_player"`
	OpponentPlayer int     `json:"opponent_player"`
	Position       Vec2    `json:"position"`
	StartMS        int64   `json:"start_ms"`
	Intensity      float64 `json:"intensity"`
	NeedsSupport   bool    `json:"needs_support"`
}

type Event struct {
	Type   string `json:"type"`
	Player int    `json:"player"`
	State  string `json:"state"`
}

// Request is one agent's own decision for the cycle.
type Request struct {
	Kind   string `json:"kind"` // "support" | "baseline"
	Pose   Pose   `json:"pose"`
	Reason string `json:"reason"`
}

// Snapshot:
//
//	state: "no_contest" | "contest_detected" | "support_needed" | "support_dispatched"
//	support_player: -1 when nobody is assigned
//	requests: keyed by agent number
//	supporters: agents that decided to support this cycle, normally zero or one
type Snapshot struct {
	Code          string          `json:"code"`
	Cycle         int             `json:"cycle"`
	Enabled       bool            `json:"enabled"`
	State         string          `json:"state"`
	Contest       Contest         `json:"contest"`
	SupportPlayer int             `json:"support_player"`
	SupportTarget Vec2            `json:"support_target"`
	DefensiveRisk float64         `json:"defensive_risk"`
	UpdatedMS     int64           `json:"updated_ms"`
	Events        []Event         `json:"events,omitempty"`
	Requests      map[int]Request `json:"requests,omitempty"`
	Supporters    []int           `json:"supporters"`
}
