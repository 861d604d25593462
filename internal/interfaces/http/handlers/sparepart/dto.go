package sparepart

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/application/sparepart/dto"
	"github.com/frigoservis/servis/internal/application/sparepart/usecases"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/common"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type CreateSparePartOrderRequest struct {
	ServiceID      *uint  `json:"service_id" example:"42"`
	PartName       string `json:"part_name" validate:"required,max=200" example:"Pumpa za vodu"`
	PartNumber     string `json:"part_number" validate:"max=100"`
	Quantity       int    `json:"quantity" validate:"omitempty,gte=1,lte=1000" example:"1"`
	Urgency        string `json:"urgency" validate:"omitempty,oneof=low normal high urgent" example:"normal"`
	WarrantyStatus string `json:"warranty_status" validate:"required" example:"van garancije"`
	Description    string `json:"description" validate:"max=2000"`
}

func (r *CreateSparePartOrderRequest) ToCommand() usecases.CreateSparePartOrderCommand {
	return usecases.CreateSparePartOrderCommand{
		ServiceID:      r.ServiceID,
		PartName:       r.PartName,
		PartNumber:     r.PartNumber,
		Quantity:       r.Quantity,
		Urgency:        r.Urgency,
		WarrantyStatus: r.WarrantyStatus,
		Description:    r.Description,
	}
}

type UpdateSparePartOrderRequest struct {
	Status        *string  `json:"status" validate:"omitempty,oneof=pending ordered delivered cancelled"`
	Notes         *string  `json:"notes" validate:"omitempty,max=2000"`
	SupplierName  *string  `json:"supplier_name" validate:"omitempty,max=200"`
	EstimatedCost *float64 `json:"estimated_cost" validate:"omitempty,gte=0"`
	// EstimatedDelivery is YYYY-MM-DD or RFC 3339.
	EstimatedDelivery *string `json:"estimated_delivery"`
}

func (r *UpdateSparePartOrderRequest) ToCommand(orderID uint) (usecases.UpdateSparePartOrderCommand, error) {
	delivery, err := common.ParseTime("estimated_delivery", r.EstimatedDelivery)
	if err != nil {
		return usecases.UpdateSparePartOrderCommand{}, err
	}
	return usecases.UpdateSparePartOrderCommand{
		OrderID:           orderID,
		Status:            r.Status,
		Notes:             r.Notes,
		SupplierName:      r.SupplierName,
		EstimatedCost:     r.EstimatedCost,
		EstimatedDelivery: delivery,
	}, nil
}

// OrderResponse is returned by intake and update. ServiceStatus is empty for
// orders not tied to a service.
type OrderResponse struct {
	Order         *dto.SparePartOrderDTO `json:"order"`
	ServiceStatus string                 `json:"service_status,omitempty"`
	Warnings      []string               `json:"warnings"`
}

func parseListQuery(c *gin.Context) (usecases.ListSparePartOrdersQuery, error) {
	serviceID, err := common.OptionalUintQuery(c, "service_id")
	if err != nil {
		return usecases.ListSparePartOrdersQuery{}, err
	}
	pagination := utils.ParsePagination(c)
	return usecases.ListSparePartOrdersQuery{
		Status:    c.Query("status"),
		Urgency:   c.Query("urgency"),
		ServiceID: serviceID,
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	}, nil
}
