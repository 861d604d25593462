package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/domain/sparepart"
	vo "github.com/frigoservis/servis/internal/domain/sparepart/valueobjects"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/mappers"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/db"
)

type SparePartOrderRepository struct {
	db     *gorm.DB
	mapper mappers.SparePartOrderMapper
}

func NewSparePartOrderRepository(db *gorm.DB) *SparePartOrderRepository {
	return &SparePartOrderRepository{
		db:     db,
		mapper: mappers.NewSparePartOrderMapper(),
	}
}

func (r *SparePartOrderRepository) Create(ctx context.Context, order *sparepart.SparePartOrder) error {
	model := r.mapper.ToModel(order)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create spare part order: %w", err)
	}
	return order.SetID(model.ID)
}

func (r *SparePartOrderRepository) Update(ctx context.Context, order *sparepart.SparePartOrder) error {
	model := r.mapper.ToModel(order)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.SparePartOrderModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"status":             model.Status,
			"notes":              model.Notes,
			"supplier_name":      model.SupplierName,
			"estimated_cost":     model.EstimatedCost,
			"estimated_delivery": model.EstimatedDelivery,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update spare part order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("spare part order %d not found", model.ID)
	}
	return nil
}

func (r *SparePartOrderRepository) GetByID(ctx context.Context, id uint) (*sparepart.SparePartOrder, error) {
	var model models.SparePartOrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get spare part order: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SparePartOrderRepository) List(ctx context.Context, filter sparepart.OrderFilter) ([]*sparepart.SparePartOrder, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SparePartOrderModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Urgency != nil {
		query = query.Where("urgency = ?", filter.Urgency.String())
	}
	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count spare part orders: %w", err)
	}

	var items []*models.SparePartOrderModel
	if err := query.Order("created_at DESC, id DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list spare part orders: %w", err)
	}

	orders, err := r.mapper.ToEntities(items)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *SparePartOrderRepository) ListByServiceID(ctx context.Context, serviceID uint) ([]*sparepart.SparePartOrder, error) {
	orders, _, err := r.List(ctx, sparepart.OrderFilter{ServiceID: &serviceID})
	return orders, err
}

func (r *SparePartOrderRepository) CountOpenByServiceID(ctx context.Context, serviceID uint) (int, error) {
	var n int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.SparePartOrderModel{}).
		Where("service_id = ? AND status IN ?", serviceID, []string{vo.OrderStatusPending.String(), vo.OrderStatusOrdered.String()}).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count open spare part orders: %w", err)
	}
	return int(n), nil
}
