package service

import (
	"fmt"
	"time"

	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/shared/events"
)

// EventKind is the closed set of lifecycle events that may move a service.
type EventKind string

const (
	EventPartOrdered         EventKind = "part_ordered"
	EventPartsResolved       EventKind = "parts_resolved"
	EventReturnFromWaiting   EventKind = "return_from_waiting"
	EventPartRemoved         EventKind = "part_removed"
	EventPartReturned        EventKind = "part_returned"
	EventCompleted           EventKind = "completed"
	EventDelivered           EventKind = "delivered"
	EventAssigned            EventKind = "assigned"
	EventStatusSet           EventKind = "status_set"
	EventAppointmentReminder EventKind = "appointment_reminder"
)

func (k EventKind) String() string {
	return string(k)
}

// Completion carries the data the complete action must supply.
type Completion struct {
	Cost              *float64
	TechnicianNotes   string
	IsCompletelyFixed *bool
}

func (c *Completion) validate() error {
	if c == nil {
		return fmt.Errorf("%w: completion data is required", ErrInvalidCompletion)
	}
	if c.Cost == nil {
		return fmt.Errorf("%w: cost is required", ErrInvalidCompletion)
	}
	if *c.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrInvalidCompletion)
	}
	if c.TechnicianNotes == "" {
		return fmt.Errorf("%w: technician notes are required", ErrInvalidCompletion)
	}
	if c.IsCompletelyFixed == nil {
		return fmt.Errorf("%w: is_completely_fixed is required", ErrInvalidCompletion)
	}
	return nil
}

// Event is the input to Decide. Only the fields relevant to Kind are read.
type Event struct {
	Kind EventKind
	// Target is the requested status for EventStatusSet.
	Target vo.ServiceStatus
	// OpenOrders counts the service's spare part orders still pending or ordered.
	// Read by parts_resolved, return_from_waiting and part_returned.
	OpenOrders int
	// PartsOut counts removed parts not yet returned, excluding the one being returned.
	PartsOut     int
	Force        bool
	TechnicianID uint
	Completion   *Completion
}

// StatusChangedEvent is the domain event published after a transition commits.
type StatusChangedEvent struct {
	events.BaseEvent
	ServiceID uint             `json:"service_id"`
	Kind      EventKind        `json:"kind"`
	OldStatus vo.ServiceStatus `json:"old_status"`
	NewStatus vo.ServiceStatus `json:"new_status"`
	ActorID   uint             `json:"actor_id"`
	ActorRole string           `json:"actor_role"`
	Note      string           `json:"note,omitempty"`
}

const StatusChangedEventType = "service.status_changed"

func NewStatusChangedEvent(
	serviceID uint,
	kind EventKind,
	oldStatus, newStatus vo.ServiceStatus,
	actorID uint,
	actorRole string,
	note string,
	occurredAt time.Time,
) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: fmt.Sprintf("%d", serviceID),
			EventType:   StatusChangedEventType,
			OccurredAt:  occurredAt,
			Version:     1,
		},
		ServiceID: serviceID,
		Kind:      kind,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ActorID:   actorID,
		ActorRole: actorRole,
		Note:      note,
	}
}
