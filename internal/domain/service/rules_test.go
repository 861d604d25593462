package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
)

func float64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool          { return &v }

func validCompletion() *Completion {
	return &Completion{Cost: float64Ptr(4500), TechnicianNotes: "zamenjen kompresor", IsCompletelyFixed: boolPtr(true)}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		current vo.ServiceStatus
		event   Event
		want    vo.ServiceStatus
		wantErr error
	}{
		{"order on in_progress waits", vo.StatusInProgress, Event{Kind: EventPartOrdered}, vo.StatusWaitingParts, nil},
		{"order on assigned waits", vo.StatusAssigned, Event{Kind: EventPartOrdered}, vo.StatusWaitingParts, nil},
		{"second order does not stack", vo.StatusWaitingParts, Event{Kind: EventPartOrdered}, vo.StatusWaitingParts, nil},
		{"order on pending keeps pending", vo.StatusPending, Event{Kind: EventPartOrdered}, vo.StatusPending, nil},
		{"order on parts removed keeps status", vo.StatusDevicePartsRemoved, Event{Kind: EventPartOrdered}, vo.StatusDevicePartsRemoved, nil},
		{"order on completed rejected", vo.StatusCompleted, Event{Kind: EventPartOrdered}, "", ErrServiceClosed},
		{"order on cancelled rejected", vo.StatusCancelled, Event{Kind: EventPartOrdered}, "", ErrServiceClosed},

		{"last order resolved returns to work", vo.StatusWaitingParts, Event{Kind: EventPartsResolved}, vo.StatusInProgress, nil},
		{"resolved with open orders keeps waiting", vo.StatusWaitingParts, Event{Kind: EventPartsResolved, OpenOrders: 1}, vo.StatusWaitingParts, nil},
		{"resolved outside waiting is a no-op", vo.StatusCancelled, Event{Kind: EventPartsResolved}, vo.StatusCancelled, nil},

		{"explicit return", vo.StatusWaitingParts, Event{Kind: EventReturnFromWaiting}, vo.StatusInProgress, nil},
		{"explicit return already in progress", vo.StatusInProgress, Event{Kind: EventReturnFromWaiting}, vo.StatusInProgress, nil},
		{"explicit return with open orders rejected", vo.StatusWaitingParts, Event{Kind: EventReturnFromWaiting, OpenOrders: 2}, "", ErrOpenOrders},
		{"forced return with open orders", vo.StatusWaitingParts, Event{Kind: EventReturnFromWaiting, OpenOrders: 2, Force: true}, vo.StatusInProgress, nil},
		{"explicit return from pending rejected", vo.StatusPending, Event{Kind: EventReturnFromWaiting}, "", ErrInvalidTransition},

		{"removal from in_progress", vo.StatusInProgress, Event{Kind: EventPartRemoved}, vo.StatusDevicePartsRemoved, nil},
		{"removal from waiting_parts", vo.StatusWaitingParts, Event{Kind: EventPartRemoved}, vo.StatusDevicePartsRemoved, nil},
		{"removal is idempotent", vo.StatusDevicePartsRemoved, Event{Kind: EventPartRemoved}, vo.StatusDevicePartsRemoved, nil},
		{"removal on delivered rejected", vo.StatusDelivered, Event{Kind: EventPartRemoved}, "", ErrServiceClosed},

		{"last part returned", vo.StatusDevicePartsRemoved, Event{Kind: EventPartReturned}, vo.StatusInProgress, nil},
		{"part returned while others out", vo.StatusDevicePartsRemoved, Event{Kind: EventPartReturned, PartsOut: 1}, vo.StatusDevicePartsRemoved, nil},
		{"last part returned with open orders", vo.StatusDevicePartsRemoved, Event{Kind: EventPartReturned, OpenOrders: 1}, vo.StatusWaitingParts, nil},
		{"part returned while others out ignores orders", vo.StatusDevicePartsRemoved, Event{Kind: EventPartReturned, PartsOut: 1, OpenOrders: 2}, vo.StatusDevicePartsRemoved, nil},
		{"part returned elsewhere is a no-op", vo.StatusWaitingParts, Event{Kind: EventPartReturned}, vo.StatusWaitingParts, nil},

		{"complete from in_progress", vo.StatusInProgress, Event{Kind: EventCompleted, Completion: validCompletion()}, vo.StatusCompleted, nil},
		{"complete from waiting_parts", vo.StatusWaitingParts, Event{Kind: EventCompleted, Completion: validCompletion()}, vo.StatusCompleted, nil},
		{"complete without data", vo.StatusInProgress, Event{Kind: EventCompleted}, "", ErrInvalidCompletion},
		{"complete without cost", vo.StatusInProgress, Event{Kind: EventCompleted, Completion: &Completion{TechnicianNotes: "x", IsCompletelyFixed: boolPtr(true)}}, "", ErrInvalidCompletion},
		{"complete with negative cost", vo.StatusInProgress, Event{Kind: EventCompleted, Completion: &Completion{Cost: float64Ptr(-1), TechnicianNotes: "x", IsCompletelyFixed: boolPtr(true)}}, "", ErrInvalidCompletion},
		{"complete without notes", vo.StatusInProgress, Event{Kind: EventCompleted, Completion: &Completion{Cost: float64Ptr(0), IsCompletelyFixed: boolPtr(false)}}, "", ErrInvalidCompletion},
		{"complete without fixed flag", vo.StatusInProgress, Event{Kind: EventCompleted, Completion: &Completion{Cost: float64Ptr(0), TechnicianNotes: "x"}}, "", ErrInvalidCompletion},
		{"complete twice rejected", vo.StatusCompleted, Event{Kind: EventCompleted, Completion: validCompletion()}, "", ErrInvalidTransition},
		{"complete terminal rejected", vo.StatusRepairFailed, Event{Kind: EventCompleted, Completion: validCompletion()}, "", ErrServiceClosed},

		{"deliver completed", vo.StatusCompleted, Event{Kind: EventDelivered}, vo.StatusDelivered, nil},
		{"deliver in_progress rejected", vo.StatusInProgress, Event{Kind: EventDelivered}, "", ErrInvalidTransition},

		{"assign pending", vo.StatusPending, Event{Kind: EventAssigned, TechnicianID: 7}, vo.StatusAssigned, nil},
		{"reassign", vo.StatusAssigned, Event{Kind: EventAssigned, TechnicianID: 8}, vo.StatusAssigned, nil},
		{"assign without technician", vo.StatusPending, Event{Kind: EventAssigned}, "", ErrInvalidTransition},
		{"assign in_progress rejected", vo.StatusInProgress, Event{Kind: EventAssigned, TechnicianID: 7}, "", ErrInvalidTransition},

		{"manual start", vo.StatusAssigned, Event{Kind: EventStatusSet, Target: vo.StatusInProgress}, vo.StatusInProgress, nil},
		{"manual same status", vo.StatusAssigned, Event{Kind: EventStatusSet, Target: vo.StatusAssigned}, vo.StatusAssigned, nil},
		{"manual cannot enter waiting_parts", vo.StatusInProgress, Event{Kind: EventStatusSet, Target: vo.StatusWaitingParts}, "", ErrInvalidTransition},
		{"manual cannot leave waiting_parts", vo.StatusWaitingParts, Event{Kind: EventStatusSet, Target: vo.StatusInProgress}, "", ErrInvalidTransition},
		{"manual unknown target", vo.StatusAssigned, Event{Kind: EventStatusSet, Target: "done"}, "", ErrInvalidTransition},

		{"reminder keeps status", vo.StatusAssigned, Event{Kind: EventAppointmentReminder}, vo.StatusAssigned, nil},
		{"reminder for completed rejected", vo.StatusCompleted, Event{Kind: EventAppointmentReminder}, "", ErrServiceClosed},

		{"unknown event", vo.StatusPending, Event{Kind: "teleport"}, "", ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decide(tt.current, tt.event)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.current, got.From)
			assert.Equal(t, tt.want, got.To)
			assert.Equal(t, tt.current != tt.want, got.Changed())
		})
	}
}

func TestDecide_EveryStatusHandlesEveryEvent(t *testing.T) {
	kinds := []EventKind{
		EventPartOrdered, EventPartsResolved, EventReturnFromWaiting, EventPartRemoved,
		EventPartReturned, EventCompleted, EventDelivered, EventAssigned, EventStatusSet,
		EventAppointmentReminder,
	}
	for _, status := range vo.AllStatuses() {
		for _, kind := range kinds {
			d, err := Decide(status, Event{Kind: kind, TechnicianID: 1, Target: vo.StatusCancelled, Completion: validCompletion()})
			if err != nil {
				continue
			}
			assert.True(t, d.To.IsValid(), "%s + %s produced %q", status, kind, d.To)
			if status.IsTerminal() {
				assert.False(t, d.Changed(), "terminal %s moved on %s", status, kind)
			}
		}
	}
}
