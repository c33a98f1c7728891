package match

import "github.com/DoyleJ11/ball-contest-support/internal/world"

type Msg interface{ isMatchMsg() }

// Observe replaces the latest observation. It is consumed on the next cycle;
// several observations inside one cycle collapse to the last.
type Observe struct {
	Obs   world.Observation
	Views map[int][]world.Agent
}

func (Observe) isMatchMsg() {}

type SetEnabled struct{ Enabled bool }

func (SetEnabled) isMatchMsg() {}

// Tick runs a cycle right away instead of waiting for the ticker.
type Tick struct{}

func (Tick) isMatchMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot
}

func (Join) isMatchMsg() {}

type Leave struct{ ClientID string }

func (Leave) isMatchMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isMatchMsg() {}

type Shutdown struct{}

func (Shutdown) isMatchMsg() {}
