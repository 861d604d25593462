package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/mappers"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/db"
)

type ClientRepository struct {
	db     *gorm.DB
	mapper mappers.ClientMapper
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{
		db:     db,
		mapper: mappers.NewClientMapper(),
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	var model models.ClientModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// List matches search against name and phone. A non-positive limit returns all rows.
func (r *ClientRepository) List(ctx context.Context, search string, limit, offset int) ([]*client.Client, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ClientModel{})

	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query = query.Order("full_name ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	var items []*models.ClientModel
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	clients, err := r.mapper.ToEntities(items)
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

type ApplianceRepository struct {
	db     *gorm.DB
	mapper mappers.ClientMapper
}

func NewApplianceRepository(db *gorm.DB) *ApplianceRepository {
	return &ApplianceRepository{
		db:     db,
		mapper: mappers.NewClientMapper(),
	}
}

func (r *ApplianceRepository) Create(ctx context.Context, a *client.Appliance) error {
	model := r.mapper.ApplianceToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create appliance: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *ApplianceRepository) GetByID(ctx context.Context, id uint) (*client.Appliance, error) {
	var model models.ApplianceModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appliance: %w", err)
	}
	return r.mapper.ApplianceToEntity(&model)
}

func (r *ApplianceRepository) ListByClientID(ctx context.Context, clientID uint) ([]*client.Appliance, error) {
	var items []*models.ApplianceModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("client_id = ?", clientID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list appliances: %w", err)
	}
	return r.mapper.AppliancesToEntities(items)
}
