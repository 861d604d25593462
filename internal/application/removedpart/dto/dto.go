package dto

import (
	"time"

	"github.com/frigoservis/servis/internal/domain/removedpart"
)

type RemovedPartDTO struct {
	ID                 uint       `json:"id"`
	ServiceID          uint       `json:"service_id"`
	PartName           string     `json:"part_name"`
	RemovalDate        time.Time  `json:"removal_date"`
	RemovalReason      string     `json:"removal_reason"`
	CurrentLocation    string     `json:"current_location"`
	ExpectedReturnDate *time.Time `json:"expected_return_date,omitempty"`
	ActualReturnDate   *time.Time `json:"actual_return_date,omitempty"`
	PartStatus         string     `json:"part_status"`
	TechnicianNotes    string     `json:"technician_notes,omitempty"`
	IsReturned         bool       `json:"is_returned"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func ToRemovedPartDTO(p *removedpart.RemovedPart) *RemovedPartDTO {
	if p == nil {
		return nil
	}
	return &RemovedPartDTO{
		ID:                 p.ID(),
		ServiceID:          p.ServiceID(),
		PartName:           p.PartName(),
		RemovalDate:        p.RemovalDate(),
		RemovalReason:      p.RemovalReason(),
		CurrentLocation:    p.CurrentLocation().String(),
		ExpectedReturnDate: p.ExpectedReturnDate(),
		ActualReturnDate:   p.ActualReturnDate(),
		PartStatus:         p.PartStatus(),
		TechnicianNotes:    p.TechnicianNotes(),
		IsReturned:         !p.IsOut(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

func ToRemovedPartDTOs(parts []*removedpart.RemovedPart) []*RemovedPartDTO {
	out := make([]*RemovedPartDTO, 0, len(parts))
	for _, p := range parts {
		out = append(out, ToRemovedPartDTO(p))
	}
	return out
}
