package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// GormAutoMigrateStrategy derives the schema from the GORM models. It is used
// in development and by the sqlite test databases; it never drops columns.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("running gorm auto-migrate", "models_count", len(all))
	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) MigrateDown(*gorm.DB, int) error {
	return fmt.Errorf("gorm auto-migrate does not support down migrations")
}

// Version is always zero; auto-migrate keeps no version table.
func (s *GormAutoMigrateStrategy) Version(*gorm.DB) (int64, error) {
	return 0, nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
