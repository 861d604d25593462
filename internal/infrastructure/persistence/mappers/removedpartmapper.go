package mappers

import (
	"fmt"

	"github.com/frigoservis/servis/internal/domain/removedpart"
	vo "github.com/frigoservis/servis/internal/domain/removedpart/valueobjects"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/mapper"
)

type RemovedPartMapper interface {
	ToEntity(model *models.RemovedPartModel) (*removedpart.RemovedPart, error)
	ToModel(entity *removedpart.RemovedPart) *models.RemovedPartModel
	ToEntities(models []*models.RemovedPartModel) ([]*removedpart.RemovedPart, error)
}

type RemovedPartMapperImpl struct{}

func NewRemovedPartMapper() RemovedPartMapper {
	return &RemovedPartMapperImpl{}
}

func (m *RemovedPartMapperImpl) ToEntity(model *models.RemovedPartModel) (*removedpart.RemovedPart, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := removedpart.ReconstructRemovedPart(
		model.ID,
		model.ServiceID,
		model.PartName,
		model.RemovalDate,
		model.RemovalReason,
		vo.PartLocation(model.CurrentLocation),
		model.ExpectedReturnDate,
		model.ActualReturnDate,
		model.PartStatus,
		model.TechnicianNotes,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct removed part entity: %w", err)
	}
	return entity, nil
}

func (m *RemovedPartMapperImpl) ToModel(entity *removedpart.RemovedPart) *models.RemovedPartModel {
	if entity == nil {
		return nil
	}
	return &models.RemovedPartModel{
		ID:                 entity.ID(),
		ServiceID:          entity.ServiceID(),
		PartName:           entity.PartName(),
		RemovalDate:        entity.RemovalDate(),
		RemovalReason:      entity.RemovalReason(),
		CurrentLocation:    entity.CurrentLocation().String(),
		ExpectedReturnDate: entity.ExpectedReturnDate(),
		ActualReturnDate:   entity.ActualReturnDate(),
		PartStatus:         entity.PartStatus(),
		TechnicianNotes:    entity.TechnicianNotes(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

func (m *RemovedPartMapperImpl) ToEntities(items []*models.RemovedPartModel) ([]*removedpart.RemovedPart, error) {
	return mapper.MapSliceWithError(items, m.ToEntity)
}
