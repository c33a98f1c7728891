package types

type Agent struct {
	Number       int  `json:"number"`
	Position     Vec2 `json:"position"`
	Ball         Vec2 `json:"ball"` // this agent's own ball estimate
	IsGoalkeeper bool `json:"is_goalkeeper,omitempty"`
	BasePose     Pose `json:"base_pose"`
}

type Opponent struct {
	Number   int  `json:"number,omitempty"`
	Position Vec2 `json:"position"`
}

// Observation is a world model pushed by a client. Views, when present,
// replaces the team an individual agent sees, keyed by its number.
type Observation struct {
	Ball         Vec2            `json:"ball"`
	BallVelocity Vec2            `json:"ball_velocity"`
	Teammates    []Agent         `json:"teammates"`
	Opponents    []Opponent      `json:"opponents,omitempty"`
	NowMS        int64           `json:"now_ms"`
	Views        map[int][]Agent `json:"views,omitempty"`
}
