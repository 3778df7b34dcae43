package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_StartsInInitialState(t *testing.T) {
	t.Parallel()

	table := newDoorTable(t)
	container := NewContainer(table, doorData{cycles: 3})

	assert.Equal(t, "Closed", container.State())
	assert.Equal(t, doorData{cycles: 3}, container.Snapshot())
	assert.False(t, container.Spent())
}

func TestNewContainer_OwnsAPrivateCopy(t *testing.T) {
	t.Parallel()

	table := newDoorTable(t)
	data := doorData{cycles: 1}
	container := NewContainer(table, data)

	data.cycles = 99

	assert.Equal(t, doorData{cycles: 1}, container.Snapshot())
}

func TestApply_AcceptedTransition(t *testing.T) {
	t.Parallel()

	table := newDoorTable(t)
	container := NewContainer(table, doorData{})

	next, rsp, err := Apply(table, container, pressCmd{})
	require.NoError(t, err)

	assert.Equal(t, Status{State: "Open"}, rsp)
	assert.Equal(t, "Open", next.State())
	assert.Equal(t, doorData{cycles: 1}, next.Snapshot())
	assert.True(t, container.Spent())
	assert.False(t, next.Spent())
}

func TestApply_RejectedTransitionLeavesDataUnchanged(t *testing.T) {
	t.Parallel()

	table := newDoorTable(t)
	container := NewContainer(table, doorData{cycles: 7})

	// Lock is only declared for Closed; move to Open first.
	open, rsp, err := Apply(table, container, pressCmd{})
	require.NoError(t, err)
	require.Equal(t, Status{State: "Open"}, rsp)

	next, rsp, err := Apply(table, open, lockCmd{})
	require.NoError(t, err)

	assert.Equal(t, InvalidTransition{
		CurrentState:     "Open",
		AttemptedCommand: "Lock",
	}, rsp)
	assert.Equal(t, "Open", next.State())
	assert.Equal(t, doorData{cycles: 8}, next.Snapshot())
	assert.True(t, open.Spent())
	assert.False(t, next.Spent())
}

func TestApply_NilCommandIsRejected(t *testing.T) {
	t.Parallel()

	table := newDoorTable(t)
	container := NewContainer(table, doorData{})

	next, rsp, err := Apply(table, container, nil)
	require.NoError(t, err)

	assert.Equal(t, InvalidTransition{
		CurrentState:     "Closed",
		AttemptedCommand: "<nil>",
	}, rsp)
	assert.Equal(t, "Closed", next.State())
}

func TestApply_SpentContainerCannotBeReused(t *testing.T) {
	t.Parallel()

	table := newDoorTable(t)
	container := NewContainer(table, doorData{})

	_, _, err := Apply(table, container, pressCmd{})
	require.NoError(t, err)

	next, rsp, err := Apply(table, container, pressCmd{})
	require.ErrorIs(t, err, ErrContainerSpent)
	assert.Nil(t, next)
	assert.Nil(t, rsp)
}

func TestApply_RejectionAlsoConsumesTheContainer(t *testing.T) {
	t.Parallel()

	table := newDoorTable(t)
	container := NewContainer(table, doorData{})

	_, _, err := Apply(table, container, tripCmd{})
	require.NoError(t, err)

	_, _, err = Apply(table, container, pressCmd{})
	require.ErrorIs(t, err, ErrContainerSpent)
}
