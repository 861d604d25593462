package mappers

import (
	"fmt"

	"github.com/frigoservis/servis/internal/domain/service"
	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/mapper"
)

type ServiceMapper interface {
	ToEntity(model *models.ServiceModel) (*service.Service, error)
	ToModel(entity *service.Service) *models.ServiceModel
	ToEntities(models []*models.ServiceModel) ([]*service.Service, error)
	HistoryToEntity(model *models.StatusHistoryModel) *service.StatusHistory
	HistoryToModel(entity *service.StatusHistory) *models.StatusHistoryModel
}

type ServiceMapperImpl struct{}

func NewServiceMapper() ServiceMapper {
	return &ServiceMapperImpl{}
}

func (m *ServiceMapperImpl) ToEntity(model *models.ServiceModel) (*service.Service, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := service.ReconstructService(
		model.ID,
		model.ClientID,
		model.ApplianceID,
		model.TechnicianID,
		model.BusinessPartnerID,
		vo.ServiceStatus(model.Status),
		model.Description,
		model.TechnicianNotes,
		model.Cost,
		model.CompletedDate,
		model.IsCompletelyFixed,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct service entity: %w", err)
	}
	return entity, nil
}

func (m *ServiceMapperImpl) ToModel(entity *service.Service) *models.ServiceModel {
	if entity == nil {
		return nil
	}
	return &models.ServiceModel{
		ID:                entity.ID(),
		ClientID:          entity.ClientID(),
		ApplianceID:       entity.ApplianceID(),
		TechnicianID:      entity.TechnicianID(),
		BusinessPartnerID: entity.BusinessPartnerID(),
		Status:            entity.Status().String(),
		Description:       entity.Description(),
		TechnicianNotes:   entity.TechnicianNotes(),
		Cost:              entity.Cost(),
		CompletedDate:     entity.CompletedDate(),
		IsCompletelyFixed: entity.IsCompletelyFixed(),
		Version:           entity.Version(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}
}

func (m *ServiceMapperImpl) ToEntities(items []*models.ServiceModel) ([]*service.Service, error) {
	return mapper.MapSliceWithError(items, m.ToEntity)
}

func (m *ServiceMapperImpl) HistoryToEntity(model *models.StatusHistoryModel) *service.StatusHistory {
	if model == nil {
		return nil
	}
	return service.ReconstructStatusHistory(
		model.ID,
		model.ServiceID,
		vo.ServiceStatus(model.OldStatus),
		vo.ServiceStatus(model.NewStatus),
		service.EventKind(model.Event),
		model.ActorID,
		model.Note,
		model.CreatedAt,
	).WithDetails(model.Details)
}

func (m *ServiceMapperImpl) HistoryToModel(entity *service.StatusHistory) *models.StatusHistoryModel {
	if entity == nil {
		return nil
	}
	return &models.StatusHistoryModel{
		ID:        entity.ID(),
		ServiceID: entity.ServiceID(),
		OldStatus: entity.OldStatus().String(),
		NewStatus: entity.NewStatus().String(),
		Event:     entity.Event().String(),
		ActorID:   entity.ActorID(),
		Note:      entity.Note(),
		Details:   entity.Details(),
		CreatedAt: entity.CreatedAt(),
	}
}
