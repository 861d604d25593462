package removedpart

import (
	"github.com/frigoservis/servis/internal/application/removedpart/dto"
	"github.com/frigoservis/servis/internal/application/removedpart/usecases"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/common"
)

type CreateRemovedPartRequest struct {
	ServiceID       uint   `json:"service_id" validate:"required" example:"42"`
	PartName        string `json:"part_name" validate:"required,max=200" example:"Elektronska ploča"`
	RemovalReason   string `json:"removal_reason" validate:"required,max=1000" example:"Popravka u radionici"`
	CurrentLocation string `json:"current_location" validate:"omitempty,oneof=workshop external_repair" example:"workshop"`
	PartStatus      string `json:"part_status" validate:"omitempty,oneof=removed in_repair repaired" example:"removed"`
	TechnicianNotes string `json:"technician_notes" validate:"max=2000"`
	// RemovalDate and ExpectedReturnDate are YYYY-MM-DD or RFC 3339.
	RemovalDate        *string `json:"removal_date"`
	ExpectedReturnDate *string `json:"expected_return_date"`
}

func (r *CreateRemovedPartRequest) ToCommand() (usecases.CreateRemovedPartCommand, error) {
	removal, err := common.ParseTime("removal_date", r.RemovalDate)
	if err != nil {
		return usecases.CreateRemovedPartCommand{}, err
	}
	expected, err := common.ParseTime("expected_return_date", r.ExpectedReturnDate)
	if err != nil {
		return usecases.CreateRemovedPartCommand{}, err
	}
	return usecases.CreateRemovedPartCommand{
		ServiceID:          r.ServiceID,
		PartName:           r.PartName,
		RemovalDate:        removal,
		RemovalReason:      r.RemovalReason,
		CurrentLocation:    r.CurrentLocation,
		ExpectedReturnDate: expected,
		PartStatus:         r.PartStatus,
		TechnicianNotes:    r.TechnicianNotes,
	}, nil
}

type ReturnRemovedPartRequest struct {
	ReturnedAt *string `json:"returned_at"`
	Notes      string  `json:"notes" validate:"max=2000"`
}

type MarkPartsRemovedRequest struct {
	Note string `json:"note" validate:"max=1000"`
}

// PartResponse is returned by create and return.
type PartResponse struct {
	Part          *dto.RemovedPartDTO `json:"part"`
	ServiceStatus string              `json:"service_status"`
	Warnings      []string            `json:"warnings"`
}

type MarkPartsRemovedResponse struct {
	RemovedPartID *uint    `json:"removed_part_id,omitempty"`
	ServiceStatus string   `json:"service_status"`
	Warnings      []string `json:"warnings"`
}
