package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
	"github.com/DoyleJ11/ball-contest-support/internal/match"
)

func newHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, 0, nil)
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()

	m1, err := h.Create(ctx, "ZED123", config.DefaultTuning())
	require.NoError(t, err)

	m2, err := h.Get(ctx, "ZED123")
	require.NoError(t, err)
	if m1 == nil || m1 != m2 {
		t.Fatalf("expected same match pointer")
	}
	assert.Equal(t, "ZED123", m2.Code())
}

func TestHub_CreateTwiceFails(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()

	_, err := h.Create(ctx, "A", config.DefaultTuning())
	require.NoError(t, err)
	_, err = h.Create(ctx, "A", config.DefaultTuning())
	assert.ErrorIs(t, err, ErrMatchExists)
}

func TestHub_EnsureMatch(t *testing.T) {
	h := newHub(t)
	reply := make(chan *match.Match, 1)

	h.Inbox() <- EnsureMatch{Code: "B", Tuning: config.DefaultTuning(), Reply: reply}
	m1 := <-reply
	h.Inbox() <- EnsureMatch{Code: "B", Tuning: config.DefaultTuning(), Reply: reply}
	m2 := <-reply
	assert.Same(t, m1, m2)
}

func TestHub_EnsureCreatesOnce(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()

	m1, err := h.Ensure(ctx, "E", config.DefaultTuning())
	require.NoError(t, err)
	m2, err := h.Ensure(ctx, "E", config.DefaultTuning())
	require.NoError(t, err)
	assert.Same(t, m1, m2)

	codes, err := h.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"E"}, codes)
}

func TestHub_GetMissing(t *testing.T) {
	h := newHub(t)
	_, err := h.Get(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestHub_RemoveStopsMatch(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()

	m, err := h.Create(ctx, "C", config.DefaultTuning())
	require.NoError(t, err)
	require.NoError(t, h.Remove(ctx, "C"))

	select {
	case <-m.Done():
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("removed match still running")
	}
	codes, err := h.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestHub_ListSorted(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()
	for _, code := range []string{"Q", "B", "K"} {
		_, err := h.Create(ctx, code, config.DefaultTuning())
		require.NoError(t, err)
	}
	codes, err := h.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "K", "Q"}, codes)
}

func TestHub_Shutdown(t *testing.T) {
	h := newHub(t)
	ctx := context.Background()
	m, err := h.Create(ctx, "D", config.DefaultTuning())
	require.NoError(t, err)

	h.Inbox() <- ShutdownHub{}
	<-h.Done()
	<-m.Done()

	_, err = h.Get(ctx, "D")
	assert.ErrorIs(t, err, ErrHubClosed)
}
