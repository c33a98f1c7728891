package support

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/ball-contest-support/internal/field"
	"github.com/DoyleJ11/ball-contest-support/internal/geom"
	"github.com/DoyleJ11/ball-contest-support/internal/world"
)

func scenarioTeam() []world.Agent {
	return []world.Agent{
		{Number: 1, Position: geom.V(-4300, 0), IsGoalkeeper: true},
		{Number: 2, Position: geom.V(1050, 450)},
		{Number: 3, Position: geom.V(800, 600)},
		{Number: 4, Position: geom.V(-2000, 0)},
		{Number: 5, Position: geom.V(-3000, 0)},
	}
}

func TestSelectScenarioTeamHasNoCandidate(t *testing.T) {
	s := DefaultSelector()
	contest := geom.V(1000, 500)

	// #2 and #3 are inside the contest radius, #4 and #5 are beyond MaxRange
	// and #1 is the goalkeeper.
	got, ok := s.Select(contest, scenarioTeam())
	assert.False(t, ok)
	assert.Equal(t, world.NoPlayer, got.Number)

	wider := s
	wider.MaxRange = 3500
	got, ok = wider.Select(contest, scenarioTeam())
	require.True(t, ok)
	assert.Equal(t, 4, got.Number)
}

func TestSelectPrefersCloseForwardPlayer(t *testing.T) {
	s := DefaultSelector()
	contest := geom.V(1000, 500)
	agents := []world.Agent{
		{Number: 2, Position: geom.V(1050, 450)},  // contestant
		{Number: 3, Position: geom.V(0, 0)},       // ~1118mm, forward
		{Number: 4, Position: geom.V(-1200, 500)}, // 2200mm, out of range
		{Number: 5, Position: geom.V(2000, 1500)}, // ~1414mm, forward
	}
	got, ok := s.Select(contest, agents)
	require.True(t, ok)
	assert.Equal(t, 3, got.Number)

	want := 0.7*(1-math.Hypot(1000, 500)/2000) + 0.3*1
	assert.InDelta(t, want, got.Score, 1e-9)
}

func TestSelectNoEligibleCandidate(t *testing.T) {
	s := DefaultSelector()
	agents := []world.Agent{
		{Number: 1, Position: geom.V(0, 0), IsGoalkeeper: true},
		{Number: 2, Position: geom.V(100, 0)},
	}
	got, ok := s.Select(geom.V(0, 0), agents)
	assert.False(t, ok)
	assert.Equal(t, world.NoPlayer, got.Number)
}

func TestSelectTieBreaksOnLowestNumber(t *testing.T) {
	s := DefaultSelector()
	contest := geom.V(0, 0)
	// mirror images: identical distance and position score
	agents := []world.Agent{
		{Number: 7, Position: geom.V(0, 1000)},
		{Number: 4, Position: geom.V(0, -1000)},
	}
	got, ok := s.Select(contest, agents)
	require.True(t, ok)
	assert.Equal(t, 4, got.Number)

	reversed := []world.Agent{agents[1], agents[0]}
	got2, _ := s.Select(contest, reversed)
	assert.Equal(t, got, got2, "selection must not depend on input order")
}

func TestSelectBackScoreForDeepPlayers(t *testing.T) {
	s := DefaultSelector()
	contest := geom.V(-2000, 0)
	agents := []world.Agent{
		{Number: 3, Position: geom.V(-3000, 0)}, // 1000mm, behind threshold
		{Number: 4, Position: geom.V(-900, 0)},  // 1100mm, forward of threshold
	}
	ranked := s.Scores(contest, agents)
	require.Len(t, ranked, 2)
	// 0.7*0.5+0.3*0.5=0.5 vs 0.7*0.45+0.3*1=0.615
	assert.Equal(t, 4, ranked[0].Number)
	assert.Equal(t, 0.5, ranked[1].PositionScore)
}

func TestAtMostOneSupporter(t *testing.T) {
	s := DefaultSelector()
	contest := geom.V(500, -300)
	var agents []world.Agent
	for i := 0; i < 7; i++ {
		agents = append(agents, world.Agent{Number: i + 1, Position: geom.V(float64(i*400-1200), float64(i*150))})
	}
	first, ok := s.Select(contest, agents)
	require.True(t, ok)
	for i := 0; i < 20; i++ {
		again, _ := s.Select(contest, agents)
		require.Equal(t, first, again)
	}
}

func TestTarget(t *testing.T) {
	g := field.Default()
	contest := geom.V(1000, 500)
	got := Target(contest, 1000, g)

	dir := geom.V(3500, -500).Normalized()
	base := contest.Sub(dir.Scale(1000))
	// contest in the +Y half: lateral offset is mirrored
	want := base.Sub(dir.Perp().Scale(500))
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
	assert.InDelta(t, math.Hypot(1000, 500), got.Dist(contest), 1e-6)
}

func TestTargetClampedToField(t *testing.T) {
	g := field.Default()
	got := Target(geom.V(-4400, -2900), 1000, g)
	assert.GreaterOrEqual(t, got.X, -4000.0)
	assert.GreaterOrEqual(t, got.Y, -2500.0)
	assert.LessOrEqual(t, got.Y, 2500.0)
}
