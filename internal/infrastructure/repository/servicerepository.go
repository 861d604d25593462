package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/domain/service"
	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/mappers"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/db"
)

type ServiceRepository struct {
	db     *gorm.DB
	mapper mappers.ServiceMapper
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{
		db:     db,
		mapper: mappers.NewServiceMapper(),
	}
}

func (r *ServiceRepository) Create(ctx context.Context, svc *service.Service) error {
	model := r.mapper.ToModel(svc)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	if svc.ID() != 0 {
		return nil
	}
	return svc.SetID(model.ID)
}

// Update writes every mutable column in one statement guarded by the version
// the aggregate was loaded with.
func (r *ServiceRepository) Update(ctx context.Context, svc *service.Service) error {
	model := r.mapper.ToModel(svc)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ServiceModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]any{
			"technician_id":       model.TechnicianID,
			"status":              model.Status,
			"technician_notes":    model.TechnicianNotes,
			"cost":                model.Cost,
			"completed_date":      model.CompletedDate,
			"is_completely_fixed": model.IsCompletelyFixed,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return service.ErrVersionConflict
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.ServiceModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uint) (*service.Service, error) {
	var model models.ServiceModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ServiceRepository) List(ctx context.Context, filter service.ServiceFilter) ([]*service.Service, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ServiceModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.TechnicianID != nil {
		query = query.Where("technician_id = ?", *filter.TechnicianID)
	}
	if filter.BusinessPartnerID != nil {
		query = query.Where("business_partner_id = ?", *filter.BusinessPartnerID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", *filter.CreatedTo)
	}
	if filter.CompletedFrom != nil {
		query = query.Where("completed_date >= ?", *filter.CompletedFrom)
	}
	if filter.CompletedTo != nil {
		query = query.Where("completed_date < ?", *filter.CompletedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	var items []*models.ServiceModel
	if err := query.Order("created_at DESC, id DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}

	services, err := r.mapper.ToEntities(items)
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *ServiceRepository) CountByStatus(ctx context.Context, status vo.ServiceStatus) (int64, error) {
	var n int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.ServiceModel{}).Where("status = ?", status.String()).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return n, nil
}

type StatusHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.ServiceMapper
}

func NewStatusHistoryRepository(db *gorm.DB) *StatusHistoryRepository {
	return &StatusHistoryRepository{
		db:     db,
		mapper: mappers.NewServiceMapper(),
	}
}

func (r *StatusHistoryRepository) Create(ctx context.Context, entry *service.StatusHistory) error {
	model := r.mapper.HistoryToModel(entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create status history: %w", err)
	}
	entry.SetID(model.ID)
	return nil
}

func (r *StatusHistoryRepository) ListByServiceID(ctx context.Context, serviceID uint) ([]*service.StatusHistory, error) {
	var items []*models.StatusHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("service_id = ?", serviceID).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	out := make([]*service.StatusHistory, 0, len(items))
	for _, m := range items {
		out = append(out, r.mapper.HistoryToEntity(m))
	}
	return out, nil
}
