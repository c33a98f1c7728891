package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
	"github.com/DoyleJ11/ball-contest-support/internal/contest"
)

func TestMemoryStore_SaveGetListDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	aggressive := config.DefaultTuning()
	aggressive.Engine.MaxDefensiveRisk = 0.9
	require.NoError(t, s.Save(ctx, Profile{Name: "aggressive", Tuning: aggressive}))
	require.NoError(t, s.Save(ctx, Profile{Name: "default", Tuning: config.DefaultTuning()}))

	got, err := s.Get(ctx, "aggressive")
	require.NoError(t, err)
	assert.Equal(t, 0.9, got.Tuning.Engine.MaxDefensiveRisk)
	assert.Equal(t, 2026, got.UpdatedAt.Year())

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "aggressive", all[0].Name)

	require.NoError(t, s.Delete(ctx, "aggressive"))
	_, err = s.Get(ctx, "aggressive")
	assert.True(t, errors.Is(err, ErrProfileNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, "aggressive"), ErrProfileNotFound))
}

func TestMemoryStore_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Save(ctx, Profile{Tuning: config.DefaultTuning()}), ErrEmptyName)

	bad := config.DefaultTuning()
	bad.Engine.Strategy = "guess"
	assert.ErrorIs(t, s.Save(ctx, Profile{Name: "bad", Tuning: bad}), config.ErrInvalidTuning)
}

func TestRowRoundTrip(t *testing.T) {
	tu := config.DefaultTuning()
	tu.Engine.Strategy = contest.StrategyProximity
	p := Profile{Name: "team-ball", Tuning: tu, UpdatedAt: time.Unix(1700000000, 0).UTC()}

	row, err := toRow(p)
	require.NoError(t, err)
	assert.Contains(t, row.Document, "detector: proximity")

	back, err := fromRow(row)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}
