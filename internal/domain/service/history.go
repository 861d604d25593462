package service

import (
	"time"

	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
)

// StatusHistory is one audit trail row written alongside every applied event.
type StatusHistory struct {
	id        uint
	serviceID uint
	oldStatus vo.ServiceStatus
	newStatus vo.ServiceStatus
	event     EventKind
	actorID   uint
	note      string
	details   map[string]any
	createdAt time.Time
}

func NewStatusHistory(serviceID uint, d Decision, event EventKind, actorID uint, note string, at time.Time) *StatusHistory {
	return &StatusHistory{
		serviceID: serviceID,
		oldStatus: d.From,
		newStatus: d.To,
		event:     event,
		actorID:   actorID,
		note:      note,
		createdAt: at,
	}
}

func ReconstructStatusHistory(
	id, serviceID uint,
	oldStatus, newStatus vo.ServiceStatus,
	event EventKind,
	actorID uint,
	note string,
	createdAt time.Time,
) *StatusHistory {
	return &StatusHistory{
		id:        id,
		serviceID: serviceID,
		oldStatus: oldStatus,
		newStatus: newStatus,
		event:     event,
		actorID:   actorID,
		note:      note,
		createdAt: createdAt,
	}
}

func (h *StatusHistory) ID() uint                    { return h.id }
func (h *StatusHistory) ServiceID() uint             { return h.serviceID }
func (h *StatusHistory) OldStatus() vo.ServiceStatus { return h.oldStatus }
func (h *StatusHistory) NewStatus() vo.ServiceStatus { return h.newStatus }
func (h *StatusHistory) Event() EventKind            { return h.event }
func (h *StatusHistory) ActorID() uint               { return h.actorID }
func (h *StatusHistory) Note() string                { return h.note }
func (h *StatusHistory) CreatedAt() time.Time        { return h.createdAt }
func (h *StatusHistory) Details() map[string]any     { return h.details }

// WithDetails attaches event context such as counts and the triggering entity.
func (h *StatusHistory) WithDetails(details map[string]any) *StatusHistory {
	if len(details) > 0 {
		h.details = details
	}
	return h
}

func (h *StatusHistory) SetID(id uint) {
	h.id = id
}
