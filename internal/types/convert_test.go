package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/ball-contest-support/internal/contest"
	"github.com/DoyleJ11/ball-contest-support/internal/engine"
	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/match"
	"github.com/DoyleJ11/ball-contest-support/internal/role"
	wire "github.com/DoyleJ11/ball-contest-support/pkg/types"
)

func TestToObserve(t *testing.T) {
	raw := `{
		"ball": {"x": 1000, "y": 500},
		"teammates": [
			{"number": 1, "position": {"x": -4300, "y": 0}, "is_goalkeeper": true},
			{"number": 2, "position": {"x": 1000, "y": 480}, "ball": {"x": 1000, "y": 500}}
		],
		"opponents": [{"number": 7, "position": {"x": 1100, "y": 500}}],
		"now_ms": 3200,
		"views": {"2": [{"number": 2, "position": {"x": 990, "y": 480}}]}
	}`
	var o wire.Observation
	require.NoError(t, json.Unmarshal([]byte(raw), &o))

	msg, err := ToObserve(o)
	require.NoError(t, err)
	assert.Equal(t, 3200*time.Millisecond, msg.Obs.Now)
	require.Len(t, msg.Obs.Teammates, 2)
	assert.True(t, msg.Obs.Teammates[0].IsGoalkeeper)
	assert.Equal(t, geom.V(1000, 500), msg.Obs.Teammates[1].BallPosition)
	assert.Equal(t, 7, msg.Obs.Opponents[0].Number)
	assert.Equal(t, 990.0, msg.Views[2][0].Position.X)
}

func TestToObserveRejects(t *testing.T) {
	cases := map[string]wire.Observation{
		"duplicate": {Teammates: []wire.Agent{{Number: 2}, {Number: 2}}},
		"zero":      {Teammates: []wire.Agent{{Number: 0}}},
		"negative":  {NowMS: -1},
		"view":      {Views: map[int][]wire.Agent{3: {{Number: -4}}}},
	}
	for name, o := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ToObserve(o)
			assert.ErrorIs(t, err, ErrBadObservation)
		})
	}
}

func TestSnapshotMessage(t *testing.T) {
	st := contest.NewStatus()
	st.State = contest.StateSupportDispatched
	st.SupportPlayer = 3
	st.Contest.StartTime = time.Second
	st.LastUpdate = 3200 * time.Millisecond

	msg := SnapshotMessage(match.Snapshot{
		Code:    "ABC123",
		Cycle:   4,
		Enabled: true,
		Frame: match.Frame{
			Status:     st,
			Events:     []engine.Event{{Type: engine.EvtSupportDispatched, Player: 3, State: st.State}},
			Requests:   map[int]role.Request{3: {Kind: role.KindSupport, Reason: role.ReasonSelected}},
			Supporters: []int{3},
		},
	})
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var back ServerMessage
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "Snapshot", back.Type)
	assert.Equal(t, "support_dispatched", back.Snapshot.State)
	assert.Equal(t, int64(1000), back.Snapshot.Contest.StartMS)
	assert.Equal(t, int64(3200), back.Snapshot.UpdatedMS)
	assert.Equal(t, "SupportDispatched", back.Snapshot.Events[0].Type)
	assert.Equal(t, "selected", back.Snapshot.Requests[3].Reason)
	assert.Equal(t, []int{3}, back.Snapshot.Supporters)
}
