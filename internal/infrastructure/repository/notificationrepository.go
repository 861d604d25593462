package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/domain/notification"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/mappers"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/db"
)

type NotificationRepository struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		mapper: mappers.NewNotificationMapper(),
	}
}

func (r *NotificationRepository) BulkCreate(ctx context.Context, items []*notification.Notification) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]*models.NotificationModel, len(items))
	for i, n := range items {
		rows[i] = r.mapper.ToModel(n)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	for i, n := range items {
		if err := n.SetID(rows[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	var model models.NotificationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*notification.Notification, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.NotificationModel{}).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var items []*models.NotificationModel
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications, err := r.mapper.ToEntities(items)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var n int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.NotificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.NotificationModel{}).Where("id = ?", id).Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.NotificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type OutboundMessageRepository struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
}

func NewOutboundMessageRepository(db *gorm.DB) *OutboundMessageRepository {
	return &OutboundMessageRepository{
		db:     db,
		mapper: mappers.NewNotificationMapper(),
	}
}

func (r *OutboundMessageRepository) BulkCreate(ctx context.Context, messages []*notification.OutboundMessage) error {
	if len(messages) == 0 {
		return nil
	}
	rows := make([]*models.OutboundMessageModel, len(messages))
	for i, m := range messages {
		rows[i] = r.mapper.OutboundToModel(m)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to queue outbound messages: %w", err)
	}
	for i, m := range messages {
		if err := m.SetID(rows[i].ID); err != nil {
			return err
		}
	}
	return nil
}

// ClaimForDelivery is a compare-and-set on attempted_at: only the first caller
// for a row sees one affected row.
func (r *OutboundMessageRepository) ClaimForDelivery(ctx context.Context, id uint, at time.Time) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.OutboundMessageModel{}).
		Where("id = ? AND attempted_at IS NULL", id).
		Update("attempted_at", at)
	if result.Error != nil {
		return false, fmt.Errorf("failed to claim outbound message: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *OutboundMessageRepository) UpdateResult(ctx context.Context, message *notification.OutboundMessage) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.OutboundMessageModel{}).
		Where("id = ?", message.ID()).
		Updates(map[string]any{
			"status":        message.Status().String(),
			"error_message": message.ErrorMessage(),
			"provider_id":   message.ProviderID(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update outbound message: %w", err)
	}
	return nil
}

func (r *OutboundMessageRepository) ListByServiceID(ctx context.Context, serviceID uint) ([]*notification.OutboundMessage, error) {
	var items []*models.OutboundMessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("related_service_id = ?", serviceID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list outbound messages: %w", err)
	}
	return r.mapper.OutboundToEntities(items)
}
