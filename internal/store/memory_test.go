package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/rooted/internal/game"
	"github.com/robalobadob/rooted/internal/puzzle"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.Start([]puzzle.Puzzle{{
		Root:      "GRAPH",
		Extras:    "SICOLE",
		Solutions: []string{"GRAPHS", "GRAPHIC", "HOLOGRAPH"},
	}}, 0)
	require.NoError(t, err)
	return s
}

func TestMemorySaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)

	_, err := st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save(ctx, s))
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(ctx, s.ID))
	require.NoError(t, st.Delete(ctx, "unknown"))
	assert.Equal(t, 0, st.Len())
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)
	require.NoError(t, st.Save(ctx, s))

	var res game.Result
	err := st.Update(ctx, s.ID, func(sess *game.Session) error {
		res = sess.Submit("graphs")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, res.Accepted())

	boom := errors.New("boom")
	assert.ErrorIs(t, st.Update(ctx, s.ID, func(*game.Session) error { return boom }), boom)
	assert.ErrorIs(t, st.Update(ctx, "nope", func(*game.Session) error { return nil }), ErrNotFound)
}

func TestMemoryUpdateSerializesSubmissions(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)
	require.NoError(t, st.Save(ctx, s))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Update(ctx, s.ID, func(sess *game.Session) error {
				if sess.Submit("GRAPHIC").Accepted() {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, s.Summary().FoundCount)
}

func TestMemoryPrune(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	keep := newSession(t)
	drop := newSession(t)
	drop.Day = 41
	require.NoError(t, st.Save(ctx, keep))
	require.NoError(t, st.Save(ctx, drop))

	n := st.Prune(ctx, func(s *game.Session) bool { return s.Day == keep.Day })
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, st.Len())

	_, err := st.Get(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
