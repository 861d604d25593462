// Package bootstrap prepares config, logging, business time and the database
// for the CLI commands.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/frigoservis/servis/internal/infrastructure/config"
	"github.com/frigoservis/servis/internal/infrastructure/database"
	"github.com/frigoservis/servis/internal/shared/biztime"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// Options are the persistent flags every command shares.
type Options struct {
	Env     string
	Verbose bool
}

// Env is the initialized process environment.
type Env struct {
	Config *config.Config
	Logger logger.Interface
	withDB bool
}

// Init loads the configuration for opts.Env (the ENV variable wins), sets up
// logging and the business timezone, and connects to the database when withDB is set.
func Init(opts Options, withDB bool) (*Env, error) {
	env := opts.Env
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, opts.Verbose); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Report.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if withDB {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return &Env{Config: cfg, Logger: logger.NewLogger(), withDB: withDB}, nil
}

// Close releases the database connection opened by Init.
func (e *Env) Close() {
	if !e.withDB {
		return
	}
	if err := database.Close(); err != nil {
		e.Logger.Errorw("failed to close database", "error", err)
	}
}
