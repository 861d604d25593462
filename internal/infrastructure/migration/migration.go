package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/shared/constants"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy from the environment and database driver:
// development and sqlite use auto-migrate, everything else the goose scripts.
func NewManager(environment, driver string) *Manager {
	var strategy Strategy
	switch {
	case driver == "sqlite":
		strategy = NewGormAutoMigrateStrategy()
	case strings.ToLower(environment) == constants.EnvDevelopment:
		strategy = NewGormAutoMigrateStrategy()
	default:
		strategy = NewGooseStrategy("mysql")
	}
	return NewManagerWithStrategy(strategy)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

// StrategyByName resolves the --strategy flag of the migrate command.
func StrategyByName(name, driver string) (Strategy, error) {
	switch name {
	case "goose", "":
		dialect := "mysql"
		if driver == "sqlite" {
			dialect = "sqlite3"
		}
		return NewGooseStrategy(dialect), nil
	case "golang-migrate", "golang_migrate":
		if driver == "sqlite" {
			return nil, fmt.Errorf("golang-migrate strategy requires mysql")
		}
		return NewGolangMigrateStrategy(), nil
	case "auto", "gorm":
		return NewGormAutoMigrateStrategy(), nil
	}
	return nil, fmt.Errorf("unknown migration strategy %q", name)
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Rollback(db *gorm.DB, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	return m.strategy.MigrateDown(db, steps)
}

func (m *Manager) Version(db *gorm.DB) (int64, error) {
	return m.strategy.Version(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
