package mappers

import (
	"fmt"

	"github.com/frigoservis/servis/internal/domain/notification"
	vo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/mapper"
)

type NotificationMapper interface {
	ToEntity(model *models.NotificationModel) (*notification.Notification, error)
	ToModel(entity *notification.Notification) *models.NotificationModel
	ToEntities(models []*models.NotificationModel) ([]*notification.Notification, error)
	OutboundToEntity(model *models.OutboundMessageModel) (*notification.OutboundMessage, error)
	OutboundToModel(entity *notification.OutboundMessage) *models.OutboundMessageModel
	OutboundToEntities(models []*models.OutboundMessageModel) ([]*notification.OutboundMessage, error)
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (m *NotificationMapperImpl) ToEntity(model *models.NotificationModel) (*notification.Notification, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := notification.ReconstructNotification(
		model.ID,
		model.RecipientID,
		vo.NotificationType(model.Type),
		model.Title,
		model.Message,
		model.RelatedServiceID,
		model.IsRead,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct notification entity: %w", err)
	}
	return entity, nil
}

func (m *NotificationMapperImpl) ToModel(entity *notification.Notification) *models.NotificationModel {
	if entity == nil {
		return nil
	}
	return &models.NotificationModel{
		ID:               entity.ID(),
		RecipientID:      entity.RecipientID(),
		Type:             entity.Type().String(),
		Title:            entity.Title(),
		Message:          entity.Message(),
		RelatedServiceID: entity.RelatedServiceID(),
		IsRead:           entity.IsRead(),
		CreatedAt:        entity.CreatedAt(),
	}
}

func (m *NotificationMapperImpl) ToEntities(items []*models.NotificationModel) ([]*notification.Notification, error) {
	return mapper.MapSliceWithError(items, m.ToEntity)
}

func (m *NotificationMapperImpl) OutboundToEntity(model *models.OutboundMessageModel) (*notification.OutboundMessage, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := notification.ReconstructOutboundMessage(
		model.ID,
		model.MessageID,
		vo.Channel(model.Channel),
		model.Recipient,
		model.Subject,
		model.Body,
		model.RelatedServiceID,
		vo.DeliveryStatus(model.Status),
		model.ErrorMessage,
		model.ProviderID,
		model.AttemptedAt,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct outbound message entity: %w", err)
	}
	return entity, nil
}

func (m *NotificationMapperImpl) OutboundToModel(entity *notification.OutboundMessage) *models.OutboundMessageModel {
	if entity == nil {
		return nil
	}
	return &models.OutboundMessageModel{
		ID:               entity.ID(),
		MessageID:        entity.MessageID(),
		Channel:          entity.Channel().String(),
		Recipient:        entity.Recipient(),
		Subject:          entity.Subject(),
		Body:             entity.Body(),
		RelatedServiceID: entity.RelatedServiceID(),
		Status:           entity.Status().String(),
		ErrorMessage:     entity.ErrorMessage(),
		ProviderID:       entity.ProviderID(),
		AttemptedAt:      entity.AttemptedAt(),
		CreatedAt:        entity.CreatedAt(),
	}
}

func (m *NotificationMapperImpl) OutboundToEntities(items []*models.OutboundMessageModel) ([]*notification.OutboundMessage, error) {
	return mapper.MapSliceWithError(items, m.OutboundToEntity)
}
