package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/manor/internal/game/engine"
	"github.com/cory-johannsen/manor/internal/game/entity"
)

// mustSucceed returns a check that fails the test unless the action it
// receives succeeded.
func mustSucceed(t *testing.T) func(engine.ActionResult, error) {
	return func(res engine.ActionResult, err error) {
		t.Helper()
		require.NoError(t, err)
		require.True(t, res.Success, res.Message)
	}
}

func TestAttack_EndToEnd(t *testing.T) {
	w := startedWorld(t, manorDescription(), []string{"P0"})

	// Three turns bring the target back around to Hall.
	mustSucceed(t)(w.PickUp("P0", "Revolver"))
	mustSucceed(t)(w.PickUp("P0", "Candlestick"))
	mustSucceed(t)(w.LookAround("P0"))
	require.Equal(t, 0, w.Target().Room)

	res, err := w.Attack("P0", "Revolver")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.TurnConsumed)
	assert.Equal(t, "P0 attacked Doctor Lucky with Revolver for 3 damage. Target health remaining: 7", res.Message)
	assert.Equal(t, 7, w.Target().Health)

	revolver := w.Items()[0]
	assert.True(t, revolver.Discarded)
	assert.False(t, revolver.OnFloor())
	assert.False(t, revolver.Held())

	_, err = w.AddPlayer("P1", 1, 3, false)
	require.NoError(t, err)
	mustSucceed(t)(w.LookAround("P0"))
	mustSucceed(t)(w.LookAround("P1"))
	require.Equal(t, 0, w.Target().Room)

	res, err = w.Attack("P0", "Candlestick")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, res.TurnConsumed)
	assert.Equal(t, "Attack failed: you were seen by another player.", res.Message)
	assert.Equal(t, 7, w.Target().Health)

	p0, err := w.Player("P0")
	require.NoError(t, err)
	assert.Len(t, p0.Inventory, 1)
}

func TestAttack_Poke(t *testing.T) {
	w := startedWorld(t, manorDescription(), []string{"P0"})

	res, err := w.Attack("P0", "")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "P0 attacked Doctor Lucky with a poke in the eye for 1 damage. Target health remaining: 9", res.Message)
	assert.Equal(t, 9, w.Target().Health)

	p0, err := w.Player("P0")
	require.NoError(t, err)
	assert.Empty(t, p0.Inventory)
	assert.Len(t, w.ItemsIn(0), 2)
}

func TestAttack_WinningBlowEndsGame(t *testing.T) {
	desc := manorDescription()
	desc.Target.Health = 1
	w := startedWorld(t, desc, []string{"P0"})

	res, err := w.Attack("P0", "")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "P0 wins! P0 killed Doctor Lucky with a poke in the eye for 1 damage.", res.Message)
	assert.Equal(t, engine.Outcome{Over: true, Winner: "P0", Reason: engine.ReasonTargetEliminated}, w.Outcome())
	assert.Equal(t, 0, w.Target().Health)
	assert.Equal(t, 0, w.Target().Room, "the target does not move after the winning blow")
	assert.Equal(t, 2, w.Pet().Room)
	assert.Equal(t, 1, w.Turn())

	_, err = w.Attack("P0", "")
	assert.ErrorIs(t, err, engine.ErrGameOver)

	status, err := w.CanAttack("P0", "")
	require.NoError(t, err)
	assert.Equal(t, engine.AttackTargetAlreadyDead, status)
}

func TestAttack_DamageFloorsAtZero(t *testing.T) {
	desc := manorDescription()
	desc.Target.Health = 2
	w := startedWorld(t, desc, []string{"P0"})

	mustSucceed(t)(w.PickUp("P0", "Revolver"))
	mustSucceed(t)(w.LookAround("P0"))
	mustSucceed(t)(w.LookAround("P0"))

	res, err := w.Attack("P0", "Revolver")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 0, w.Target().Health)
	assert.Equal(t, "P0", w.Outcome().Winner)
}

func TestAttack_Failures(t *testing.T) {
	t.Run("not in the target's room", func(t *testing.T) {
		desc := manorDescription()
		desc.Target.Start = 1
		w := startedWorld(t, desc, []string{"P0"})

		res, err := w.Attack("P0", "")
		require.NoError(t, err)
		assert.False(t, res.TurnConsumed)
		assert.Equal(t, "Attack failed: you must be in the same room as the target.", res.Message)
		assert.Equal(t, 10, w.Target().Health)
	})

	t.Run("item not held", func(t *testing.T) {
		w := startedWorld(t, manorDescription(), []string{"P0"})

		res, err := w.Attack("P0", "Rope")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Attack failed: you don't have that item: Rope", res.Message)
		assert.Equal(t, 0, w.Turn())
	})

	t.Run("target already dead", func(t *testing.T) {
		desc := manorDescription()
		desc.Target.Health = 0
		w := startedWorld(t, desc, []string{"P0"})

		res, err := w.Attack("P0", "")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Attack failed: Doctor Lucky is already dead.", res.Message)
	})
}

func TestCanAttack_StatusOrder(t *testing.T) {
	desc := manorDescription()
	desc.Target.Start = 1
	w := startedWorld(t, desc, []string{"P0"})

	// Not sharing a room outranks a missing item.
	status, err := w.CanAttack("P0", "Rope")
	require.NoError(t, err)
	assert.Equal(t, engine.AttackNotSameRoom, status)

	_, err = w.CanAttack("ghost", "")
	assert.ErrorIs(t, err, engine.ErrPlayerNotFound)
}

func TestCanAttack_WitnessChecksBothDirections(t *testing.T) {
	desc := manorDescription()
	desc.Pet.Start = 1
	w := newWorld(t, desc)
	_, err := w.AddPlayer("P0", 0, 3, false)
	require.NoError(t, err)
	_, err = w.AddPlayer("P1", 1, 3, false)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	// The pet hides Library from Hall, but Hall is still visible from Library.
	assert.NotContains(t, w.VisibleFrom(0), 1)
	assert.Contains(t, w.VisibleFrom(1), 0)

	status, err := w.CanAttack("P0", "")
	require.NoError(t, err)
	assert.Equal(t, engine.AttackSeenByOthers, status)
}

func TestCanAttack_SameRoomPlayerIsNotAWitness(t *testing.T) {
	w := startedWorld(t, manorDescription(), []string{"P0", "P1"})

	status, err := w.CanAttack("P0", "")
	require.NoError(t, err)
	assert.Equal(t, engine.AttackSuccess, status)
}

func TestCanAttack_HeldItem(t *testing.T) {
	w := startedWorld(t, manorDescription(), []string{"P0"})
	mustSucceed(t)(w.PickUp("P0", "Revolver"))
	mustSucceed(t)(w.LookAround("P0"))
	mustSucceed(t)(w.LookAround("P0"))

	status, err := w.CanAttack("P0", "revolver")
	require.NoError(t, err)
	assert.Equal(t, engine.AttackSuccess, status)

	status, err = w.CanAttack("P0", "Candlestick")
	require.NoError(t, err)
	assert.Equal(t, engine.AttackNoSuchItem, status)

	// Asking changes nothing.
	p0, err := w.Player("P0")
	require.NoError(t, err)
	assert.Len(t, p0.Inventory, 1)
	assert.Equal(t, entity.NoHolder, w.Items()[1].Holder)
}
