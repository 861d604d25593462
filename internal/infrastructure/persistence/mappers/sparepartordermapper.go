package mappers

import (
	"fmt"

	"github.com/frigoservis/servis/internal/domain/sparepart"
	vo "github.com/frigoservis/servis/internal/domain/sparepart/valueobjects"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/mapper"
)

type SparePartOrderMapper interface {
	ToEntity(model *models.SparePartOrderModel) (*sparepart.SparePartOrder, error)
	ToModel(entity *sparepart.SparePartOrder) *models.SparePartOrderModel
	ToEntities(models []*models.SparePartOrderModel) ([]*sparepart.SparePartOrder, error)
}

type SparePartOrderMapperImpl struct{}

func NewSparePartOrderMapper() SparePartOrderMapper {
	return &SparePartOrderMapperImpl{}
}

func (m *SparePartOrderMapperImpl) ToEntity(model *models.SparePartOrderModel) (*sparepart.SparePartOrder, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := sparepart.ReconstructSparePartOrder(
		model.ID,
		model.ServiceID,
		model.PartName,
		model.PartNumber,
		model.Quantity,
		vo.Urgency(model.Urgency),
		vo.WarrantyStatus(model.WarrantyStatus),
		vo.OrderStatus(model.Status),
		model.Description,
		model.Notes,
		model.SupplierName,
		model.EstimatedCost,
		model.EstimatedDelivery,
		model.RequestedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct spare part order entity: %w", err)
	}
	return entity, nil
}

func (m *SparePartOrderMapperImpl) ToModel(entity *sparepart.SparePartOrder) *models.SparePartOrderModel {
	if entity == nil {
		return nil
	}
	return &models.SparePartOrderModel{
		ID:                entity.ID(),
		ServiceID:         entity.ServiceID(),
		PartName:          entity.PartName(),
		PartNumber:        entity.PartNumber(),
		Quantity:          entity.Quantity(),
		Urgency:           entity.Urgency().String(),
		WarrantyStatus:    entity.WarrantyStatus().String(),
		Status:            entity.Status().String(),
		Description:       entity.Description(),
		Notes:             entity.Notes(),
		SupplierName:      entity.SupplierName(),
		EstimatedCost:     entity.EstimatedCost(),
		EstimatedDelivery: entity.EstimatedDelivery(),
		RequestedBy:       entity.RequestedBy(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}
}

func (m *SparePartOrderMapperImpl) ToEntities(items []*models.SparePartOrderModel) ([]*sparepart.SparePartOrder, error) {
	return mapper.MapSliceWithError(items, m.ToEntity)
}
