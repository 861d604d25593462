package service

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/application/service/dto"
	"github.com/frigoservis/servis/internal/application/service/usecases"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/common"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type CreateServiceRequest struct {
	ClientID    uint   `json:"client_id" validate:"required" example:"12"`
	ApplianceID uint   `json:"appliance_id" validate:"required" example:"31"`
	Description string `json:"description" validate:"required,max=2000" example:"Frižider ne hladi"`
}

type AssignTechnicianRequest struct {
	TechnicianID uint `json:"technician_id" validate:"required" example:"4"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required" example:"client_not_home"`
	Note   string `json:"note" validate:"max=1000"`
}

type CompleteServiceRequest struct {
	Cost              *float64 `json:"cost" validate:"omitempty,gte=0" example:"4500"`
	TechnicianNotes   string   `json:"technician_notes" validate:"max=2000"`
	IsCompletelyFixed *bool    `json:"is_completely_fixed"`
}

type ReturnFromWaitingRequest struct {
	// Force returns the service even while spare-part orders are still open.
	Force bool   `json:"force"`
	Note  string `json:"note" validate:"max=1000"`
}

// NoteRequest is the optional body of deliver and remind.
type NoteRequest struct {
	Note string `json:"note" validate:"max=1000"`
}

// ActionResponse is returned by every status-changing action.
type ActionResponse struct {
	Service   *dto.ServiceDTO `json:"service"`
	OldStatus string          `json:"old_status"`
	Changed   bool            `json:"changed"`
	Warnings  []string        `json:"warnings"`
}

func toActionResponse(r *usecases.ServiceActionResult) ActionResponse {
	return ActionResponse{
		Service:   r.Service,
		OldStatus: r.OldStatus,
		Changed:   r.Changed,
		Warnings:  common.Warnings(r.Warnings),
	}
}

func parseListQuery(c *gin.Context) (usecases.ListServicesQuery, error) {
	technicianID, err := common.OptionalUintQuery(c, "technician_id")
	if err != nil {
		return usecases.ListServicesQuery{}, err
	}
	clientID, err := common.OptionalUintQuery(c, "client_id")
	if err != nil {
		return usecases.ListServicesQuery{}, err
	}
	pagination := utils.ParsePagination(c)
	return usecases.ListServicesQuery{
		Status:       c.Query("status"),
		TechnicianID: technicianID,
		ClientID:     clientID,
		DateFrom:     c.Query("date_from"),
		DateTo:       c.Query("date_to"),
		Page:         pagination.Page,
		PageSize:     pagination.PageSize,
	}, nil
}

// bindOptionalJSON accepts an empty body for actions whose fields are all optional.
func bindOptionalJSON(c *gin.Context, req interface{}) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return utils.BindJSON(c, req)
}
