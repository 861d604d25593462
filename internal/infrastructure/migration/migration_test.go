package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frigoservis/servis/internal/shared/constants"
)

func TestEmbeddedScriptsArePaired(t *testing.T) {
	gooseFiles, err := fs.Glob(Scripts(), gooseDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, gooseFiles)

	ups, err := fs.Glob(Scripts(), migrateDir+"/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(Scripts(), migrateDir+"/*.down.sql")
	require.NoError(t, err)
	assert.Len(t, downs, len(ups))

	content, err := fs.ReadFile(Scripts(), gooseFiles[0])
	require.NoError(t, err)
	for _, table := range []string{constants.TableServices, constants.TableOutboundMessages, constants.TableServiceStatusHistory} {
		assert.Contains(t, string(content), "CREATE TABLE "+table+" ")
	}
}

func TestNewManager_PicksStrategy(t *testing.T) {
	assert.Equal(t, "gorm_auto_migrate", NewManager(constants.EnvProduction, "sqlite").GetStrategy().GetName())
	assert.Equal(t, "gorm_auto_migrate", NewManager(constants.EnvDevelopment, "mysql").GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager(constants.EnvProduction, "mysql").GetStrategy().GetName())
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("golang-migrate", "mysql")
	require.NoError(t, err)
	assert.Equal(t, "golang_migrate", s.GetName())

	_, err = StrategyByName("golang-migrate", "sqlite")
	assert.Error(t, err)

	_, err = StrategyByName("flyway", "mysql")
	assert.Error(t, err)
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	m := NewManagerWithStrategy(NewGormAutoMigrateStrategy())
	require.NoError(t, m.Migrate(db))

	for _, table := range []string{constants.TableServices, constants.TableSparePartOrders, constants.TableOutboundMessages} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.Error(t, m.Rollback(db, 1))
}

func TestGenerator_CreateMigration(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)
	g.now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }

	paths, err := g.CreateMigration("add_service_priority")
	require.NoError(t, err)
	require.Len(t, paths, 3)

	goosePath := filepath.Join(dir, "goose", "20260504100000_add_service_priority.sql")
	content, err := os.ReadFile(goosePath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "-- +goose Up"))
	assert.FileExists(t, filepath.Join(dir, "migrate", "20260504100000_add_service_priority.down.sql"))

	_, err = g.CreateMigration("Bad Name")
	assert.Error(t, err)
}
