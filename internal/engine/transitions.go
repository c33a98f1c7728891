package engine

import "github.com/DoyleJ11/ball-contest-support/internal/contest"

// Transitions lists every state change Step can produce in a single cycle.
// Step does not consult it; tests check every Step result against it.
// Escalation passes through support_needed even when detection, escalation
// and dispatch all happen within the same cycle.
var Transitions = map[contest.State][]contest.State{
	contest.StateNoContest: {
		contest.StateContestDetected,
	},
	contest.StateContestDetected: {
		contest.StateSupportNeeded,
		contest.StateSupportDispatched,
		contest.StateNoContest,
	},
	contest.StateSupportNeeded: {
		contest.StateSupportDispatched,
		contest.StateNoContest,
	},
	contest.StateSupportDispatched: {
		contest.StateSupportNeeded,
		contest.StateNoContest,
	},
}

// Allowed reports whether from -> to is a legal cycle transition. Staying put
// is always allowed.
func Allowed(from, to contest.State) bool {
	if from == to {
		return true
	}
	for _, s := range Transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
