package dto

import (
	"time"

	"github.com/frigoservis/servis/internal/domain/sparepart"
)

type SparePartOrderDTO struct {
	ID                uint       `json:"id"`
	ServiceID         *uint      `json:"service_id"`
	PartName          string     `json:"part_name"`
	PartNumber        string     `json:"part_number,omitempty"`
	Quantity          int        `json:"quantity"`
	Urgency           string     `json:"urgency"`
	WarrantyStatus    string     `json:"warranty_status"`
	Status            string     `json:"status"`
	Description       string     `json:"description,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	SupplierName      string     `json:"supplier_name,omitempty"`
	EstimatedCost     *float64   `json:"estimated_cost,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	RequestedBy       uint       `json:"requested_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func ToSparePartOrderDTO(o *sparepart.SparePartOrder) *SparePartOrderDTO {
	if o == nil {
		return nil
	}
	return &SparePartOrderDTO{
		ID:                o.ID(),
		ServiceID:         o.ServiceID(),
		PartName:          o.PartName(),
		PartNumber:        o.PartNumber(),
		Quantity:          o.Quantity(),
		Urgency:           o.Urgency().String(),
		WarrantyStatus:    o.WarrantyStatus().String(),
		Status:            o.Status().String(),
		Description:       o.Description(),
		Notes:             o.Notes(),
		SupplierName:      o.SupplierName(),
		EstimatedCost:     o.EstimatedCost(),
		EstimatedDelivery: o.EstimatedDelivery(),
		RequestedBy:       o.RequestedBy(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
}

func ToSparePartOrderDTOs(orders []*sparepart.SparePartOrder) []*SparePartOrderDTO {
	out := make([]*SparePartOrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToSparePartOrderDTO(o))
	}
	return out
}
