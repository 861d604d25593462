package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/domain/removedpart"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/mappers"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/db"
)

type RemovedPartRepository struct {
	db     *gorm.DB
	mapper mappers.RemovedPartMapper
}

func NewRemovedPartRepository(db *gorm.DB) *RemovedPartRepository {
	return &RemovedPartRepository{
		db:     db,
		mapper: mappers.NewRemovedPartMapper(),
	}
}

func (r *RemovedPartRepository) Create(ctx context.Context, part *removedpart.RemovedPart) error {
	model := r.mapper.ToModel(part)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create removed part: %w", err)
	}
	return part.SetID(model.ID)
}

func (r *RemovedPartRepository) Update(ctx context.Context, part *removedpart.RemovedPart) error {
	model := r.mapper.ToModel(part)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.RemovedPartModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"current_location":   model.CurrentLocation,
			"actual_return_date": model.ActualReturnDate,
			"part_status":        model.PartStatus,
			"technician_notes":   model.TechnicianNotes,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update removed part: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("removed part %d not found", model.ID)
	}
	return nil
}

func (r *RemovedPartRepository) GetByID(ctx context.Context, id uint) (*removedpart.RemovedPart, error) {
	var model models.RemovedPartModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get removed part: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *RemovedPartRepository) ListByServiceID(ctx context.Context, serviceID uint) ([]*removedpart.RemovedPart, error) {
	var items []*models.RemovedPartModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("service_id = ?", serviceID).Order("removal_date ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list removed parts: %w", err)
	}
	return r.mapper.ToEntities(items)
}

func (r *RemovedPartRepository) CountOutByServiceID(ctx context.Context, serviceID uint) (int, error) {
	var n int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.RemovedPartModel{}).
		Where("service_id = ? AND actual_return_date IS NULL", serviceID).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count removed parts: %w", err)
	}
	return int(n), nil
}
