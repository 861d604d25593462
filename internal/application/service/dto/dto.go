package dto

import (
	"time"

	"github.com/frigoservis/servis/internal/domain/service"
)

type ServiceDTO struct {
	ID                uint       `json:"id"`
	ClientID          uint       `json:"client_id"`
	ApplianceID       uint       `json:"appliance_id"`
	TechnicianID      *uint      `json:"technician_id"`
	BusinessPartnerID *uint      `json:"business_partner_id,omitempty"`
	Status            string     `json:"status"`
	Description       string     `json:"description"`
	TechnicianNotes   string     `json:"technician_notes,omitempty"`
	Cost              *float64   `json:"cost,omitempty"`
	CompletedDate     *time.Time `json:"completed_date,omitempty"`
	IsCompletelyFixed bool       `json:"is_completely_fixed"`
	Version           int        `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	ClientName     string `json:"client_name,omitempty"`
	ApplianceLabel string `json:"appliance_label,omitempty"`
}

type StatusHistoryDTO struct {
	ID        uint           `json:"id"`
	OldStatus string         `json:"old_status"`
	NewStatus string         `json:"new_status"`
	Event     string         `json:"event"`
	ActorID   uint           `json:"actor_id"`
	Note      string         `json:"note,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func ToServiceDTO(s *service.Service) *ServiceDTO {
	if s == nil {
		return nil
	}
	return &ServiceDTO{
		ID:                s.ID(),
		ClientID:          s.ClientID(),
		ApplianceID:       s.ApplianceID(),
		TechnicianID:      s.TechnicianID(),
		BusinessPartnerID: s.BusinessPartnerID(),
		Status:            s.Status().String(),
		Description:       s.Description(),
		TechnicianNotes:   s.TechnicianNotes(),
		Cost:              s.Cost(),
		CompletedDate:     s.CompletedDate(),
		IsCompletelyFixed: s.IsCompletelyFixed(),
		Version:           s.Version(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
	}
}

func ToServiceDTOs(services []*service.Service) []*ServiceDTO {
	out := make([]*ServiceDTO, 0, len(services))
	for _, s := range services {
		out = append(out, ToServiceDTO(s))
	}
	return out
}

func ToStatusHistoryDTO(h *service.StatusHistory) *StatusHistoryDTO {
	return &StatusHistoryDTO{
		ID:        h.ID(),
		OldStatus: h.OldStatus().String(),
		NewStatus: h.NewStatus().String(),
		Event:     h.Event().String(),
		ActorID:   h.ActorID(),
		Note:      h.Note(),
		Details:   h.Details(),
		CreatedAt: h.CreatedAt(),
	}
}
