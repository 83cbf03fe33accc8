// Package daotest holds the behavior checks every dao.Store implementation
// must pass.
package daotest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracon/scopecmd/internal/sim"
	"github.com/tracon/scopecmd/server/dao"
)

func testSession(t *testing.T) dao.Session {
	state, err := sim.New("KBOS", sim.Aircraft{
		Callsign: "AA777",
		Heading:  10,
		Altitude: 5000,
		Speed:    210,
		Squawk:   "1200",
		Route:    []string{"MERIT", "HFD"},
		Phase:    sim.PhaseAirborne,
	})
	require.NoError(t, err)

	return dao.Session{Scenario: "Boston", State: state}
}

// RunStoreTests exercises both repositories of the store newStore returns.
// newStore is called once per subtest.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) dao.Store) {
	ctx := context.Background()

	t.Run("create then get session", func(t *testing.T) {
		assert := assert.New(t)
		store := newStore(t)

		created, err := store.Sessions().Create(ctx, testSession(t))
		require.NoError(t, err)
		assert.NotEqual(uuid.Nil, created.ID)
		assert.False(created.Created.IsZero())

		got, err := store.Sessions().GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal("Boston", got.Scenario)
		assert.Equal(testSession(t).State, got.State)
	})

	t.Run("get missing session", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Sessions().GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, dao.ErrNotFound)
	})

	t.Run("update replaces state", func(t *testing.T) {
		assert := assert.New(t)
		store := newStore(t)

		created, err := store.Sessions().Create(ctx, testSession(t))
		require.NoError(t, err)

		created.State.Aircraft["AA777"].AssignedHeading = 270
		created.State.Paused = true
		_, err = store.Sessions().Update(ctx, created.ID, created)
		require.NoError(t, err)

		got, err := store.Sessions().GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(got.State.Paused)
		assert.Equal(270, got.State.Aircraft["AA777"].AssignedHeading)
	})

	t.Run("returned state is not shared with the store", func(t *testing.T) {
		store := newStore(t)

		created, err := store.Sessions().Create(ctx, testSession(t))
		require.NoError(t, err)
		created.State.Aircraft["AA777"].Heading = 180

		got, err := store.Sessions().GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.State.Aircraft["AA777"].Heading)
	})

	t.Run("update missing session", func(t *testing.T) {
		store := newStore(t)
		id := uuid.New()

		_, err := store.Sessions().Update(ctx, id, dao.Session{ID: id})
		assert.ErrorIs(t, err, dao.ErrNotFound)
	})

	t.Run("delete session", func(t *testing.T) {
		store := newStore(t)

		created, err := store.Sessions().Create(ctx, testSession(t))
		require.NoError(t, err)

		deleted, err := store.Sessions().Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, deleted.ID)

		_, err = store.Sessions().GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, dao.ErrNotFound)

		_, err = store.Sessions().Delete(ctx, created.ID)
		assert.ErrorIs(t, err, dao.ErrNotFound)
	})

	t.Run("get all sessions", func(t *testing.T) {
		store := newStore(t)

		for i := 0; i < 3; i++ {
			_, err := store.Sessions().Create(ctx, testSession(t))
			require.NoError(t, err)
		}

		all, err := store.Sessions().GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("commands kept in order per session", func(t *testing.T) {
		assert := assert.New(t)
		store := newStore(t)

		sesh, err := store.Sessions().Create(ctx, testSession(t))
		require.NoError(t, err)
		other, err := store.Sessions().Create(ctx, testSession(t))
		require.NoError(t, err)

		lines := []dao.Command{
			{SessionID: sesh.ID, Line: "AA777 FH 270", Readback: []string{"AA777, fly heading 270"}},
			{SessionID: other.ID, Line: "PAUSE", Readback: []string{"Simulation paused"}},
			{SessionID: sesh.ID, Line: "CLEAR", Readback: []string{""}},
			{SessionID: sesh.ID, Line: "AIRAC", Readback: []string{"AIRAC cycle 2310"}},
		}
		for _, c := range lines {
			created, err := store.Commands().Create(ctx, c)
			require.NoError(t, err)
			assert.NotEqual(uuid.Nil, created.ID)
		}

		got, err := store.Commands().GetAllBySession(ctx, sesh.ID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal("AA777 FH 270", got[0].Line)
		assert.Equal([]string{"AA777, fly heading 270"}, got[0].Readback)
		assert.Equal("CLEAR", got[1].Line)
		assert.Equal([]string{""}, got[1].Readback)
		assert.Equal("AIRAC", got[2].Line)

		n, err := store.Commands().DeleteBySession(ctx, sesh.ID)
		require.NoError(t, err)
		assert.Equal(3, n)

		got, err = store.Commands().GetAllBySession(ctx, sesh.ID)
		require.NoError(t, err)
		assert.Empty(got)

		got, err = store.Commands().GetAllBySession(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(got, 1)
	})
}
