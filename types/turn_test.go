package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnInitialState(t *testing.T) {
	turn := NewTurn("t1")
	assert.Equal(t, StatusGatheringContext, turn.Status)
	assert.False(t, turn.Terminated())
}

func TestTurnForwardTransitions(t *testing.T) {
	turn := NewTurn("t1")
	require.NoError(t, turn.AdvanceTo(StatusProposingSolution))
	require.NoError(t, turn.AdvanceTo(StatusAwaitingExpert))
	require.NoError(t, turn.AdvanceTo(StatusTerminated))
	assert.True(t, turn.Terminated())
}

func TestTurnReworkIsOnlyBackwardEdge(t *testing.T) {
	turn := NewTurn("t1")
	require.NoError(t, turn.AdvanceTo(StatusProposingSolution))
	require.NoError(t, turn.AdvanceTo(StatusAwaitingExpert))

	// Rework transition is allowed.
	require.NoError(t, turn.AdvanceTo(StatusProposingSolution))

	// Returning to GATHERING_CONTEXT is not.
	err := turn.AdvanceTo(StatusGatheringContext)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidTransition, GetErrorCode(err))
}

func TestTurnTerminatedIsAbsorbing(t *testing.T) {
	turn := NewTurn("t1")
	require.NoError(t, turn.AdvanceTo(StatusTerminated))

	for _, status := range []TurnStatus{
		StatusGatheringContext, StatusProposingSolution, StatusAwaitingExpert,
	} {
		err := turn.AdvanceTo(status)
		require.Error(t, err, "TERMINATED -> %s must be rejected", status)
		assert.Equal(t, ErrInvalidTransition, GetErrorCode(err))
	}
}

func TestTurnTerminatedFromAnyState(t *testing.T) {
	for _, status := range []TurnStatus{
		StatusGatheringContext, StatusProposingSolution, StatusAwaitingExpert,
	} {
		turn := NewTurn("t1")
		turn.Status = status
		require.NoError(t, turn.AdvanceTo(StatusTerminated))
	}
}

func TestTurnSelfTransitionIsNoop(t *testing.T) {
	turn := NewTurn("t1")
	require.NoError(t, turn.AdvanceTo(StatusGatheringContext))
	assert.Equal(t, StatusGatheringContext, turn.Status)
}

func TestTurnRecordOrdering(t *testing.T) {
	turn := NewTurn("t1")
	turn.Record(NewUserMessage("first"))
	turn.Record(NewAgentMessage("ec2_researcher", "second"))

	require.Len(t, turn.Messages, 2)
	assert.Equal(t, "first", turn.Messages[0].Content)
	assert.Equal(t, "second", turn.Messages[1].Content)

	last, ok := turn.LastMessage()
	require.True(t, ok)
	assert.Equal(t, KindAgent, last.Kind)
	assert.True(t, turn.HasMessageKind(KindUser))
	assert.False(t, turn.HasMessageKind(KindExpert))
}
