package mappers

import (
	"fmt"

	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/mapper"
)

type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := user.ReconstructUser(
		model.ID,
		model.Username,
		model.FullName,
		authorization.UserRole(model.Role),
		model.Phone,
		model.Email,
		model.PasswordHash,
		model.ClientID,
		model.Active,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return entity, nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:           entity.ID(),
		Username:     entity.Username(),
		FullName:     entity.FullName(),
		Role:         entity.Role().String(),
		Phone:        entity.Phone(),
		Email:        entity.Email(),
		PasswordHash: entity.PasswordHash(),
		ClientID:     entity.ClientID(),
		Active:       entity.IsActive(),
		CreatedAt:    entity.CreatedAt(),
	}
}

func (m *UserMapperImpl) ToEntities(items []*models.UserModel) ([]*user.User, error) {
	return mapper.MapSliceWithError(items, m.ToEntity)
}
