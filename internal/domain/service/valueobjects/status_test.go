package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, ServiceStatus("waiting").IsValid())
	assert.False(t, ServiceStatus("").IsValid())
}

func TestServiceStatus_Terminal(t *testing.T) {
	terminal := []ServiceStatus{StatusDelivered, StatusCancelled, StatusCustomerRefusedRepair, StatusRepairFailed}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), s)
		assert.True(t, s.IsClosedForWork(), s)
		assert.Empty(t, s.AllowedTargets(), "terminal status %s must have no manual targets", s)
	}

	assert.False(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCompleted.IsClosedForWork())
	assert.False(t, StatusWaitingParts.IsClosedForWork())
}

func TestServiceStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to ServiceStatus
		want     bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusInProgress, false},
		{StatusAssigned, StatusInProgress, true},
		{StatusAssigned, StatusClientNotHome, true},
		{StatusInProgress, StatusRepairFailed, true},
		{StatusInProgress, StatusWaitingParts, false},
		{StatusInProgress, StatusCompleted, false},
		{StatusWaitingParts, StatusInProgress, false},
		{StatusWaitingParts, StatusCancelled, true},
		{StatusClientNotAnswering, StatusAssigned, true},
		{StatusCompleted, StatusDelivered, true},
		{StatusDelivered, StatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewServiceStatus(t *testing.T) {
	s, err := NewServiceStatus("waiting_parts")
	require.NoError(t, err)
	assert.Equal(t, StatusWaitingParts, s)

	_, err = NewServiceStatus("WAITING_PARTS")
	assert.Error(t, err)
}
