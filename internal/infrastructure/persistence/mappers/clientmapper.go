package mappers

import (
	"fmt"

	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/mapper"
)

type ClientMapper interface {
	ToEntity(model *models.ClientModel) (*client.Client, error)
	ToModel(entity *client.Client) *models.ClientModel
	ToEntities(models []*models.ClientModel) ([]*client.Client, error)
	ApplianceToEntity(model *models.ApplianceModel) (*client.Appliance, error)
	ApplianceToModel(entity *client.Appliance) *models.ApplianceModel
	AppliancesToEntities(models []*models.ApplianceModel) ([]*client.Appliance, error)
}

type ClientMapperImpl struct{}

func NewClientMapper() ClientMapper {
	return &ClientMapperImpl{}
}

func (m *ClientMapperImpl) ToEntity(model *models.ClientModel) (*client.Client, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := client.ReconstructClient(model.ID, model.FullName, model.Phone, model.Email, model.Address, model.City, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct client entity: %w", err)
	}
	return entity, nil
}

func (m *ClientMapperImpl) ToModel(entity *client.Client) *models.ClientModel {
	if entity == nil {
		return nil
	}
	return &models.ClientModel{
		ID:        entity.ID(),
		FullName:  entity.FullName(),
		Phone:     entity.Phone(),
		Email:     entity.Email(),
		Address:   entity.Address(),
		City:      entity.City(),
		CreatedAt: entity.CreatedAt(),
	}
}

func (m *ClientMapperImpl) ToEntities(items []*models.ClientModel) ([]*client.Client, error) {
	return mapper.MapSliceWithError(items, m.ToEntity)
}

func (m *ClientMapperImpl) ApplianceToEntity(model *models.ApplianceModel) (*client.Appliance, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := client.ReconstructAppliance(model.ID, model.ClientID, model.DeviceType, model.Manufacturer, model.Model, model.SerialNumber, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct appliance entity: %w", err)
	}
	return entity, nil
}

func (m *ClientMapperImpl) ApplianceToModel(entity *client.Appliance) *models.ApplianceModel {
	if entity == nil {
		return nil
	}
	return &models.ApplianceModel{
		ID:           entity.ID(),
		ClientID:     entity.ClientID(),
		DeviceType:   entity.DeviceType(),
		Manufacturer: entity.Manufacturer(),
		Model:        entity.Model(),
		SerialNumber: entity.SerialNumber(),
		CreatedAt:    entity.CreatedAt(),
	}
}

func (m *ClientMapperImpl) AppliancesToEntities(items []*models.ApplianceModel) ([]*client.Appliance, error) {
	return mapper.MapSliceWithError(items, m.ApplianceToEntity)
}
