package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/frigoservis/servis/internal/infrastructure/database"
	"github.com/frigoservis/servis/internal/infrastructure/migration"
	"github.com/frigoservis/servis/internal/interfaces/cli/bootstrap"
	"github.com/frigoservis/servis/internal/shared/logger"
)

var (
	strategyName string
	name         string
	steps        int
	scriptsDir   string
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&strategyName, "strategy", "s", "goose", "Migration strategy (goose, golang-migrate, auto)")

	cmd.AddCommand(
		newUpCommand(opts),
		newDownCommand(opts),
		newStatusCommand(opts),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(*opts)
		},
	}
}

func newDownCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDown(*opts)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(*opts)
		},
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a goose script and a golang-migrate up/down pair with the specified name.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration in snake_case (required)")
	cmd.Flags().StringVar(&scriptsDir, "scripts", "./internal/infrastructure/migration/scripts", "Directory holding the goose and migrate script folders")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initEnv(opts bootstrap.Options) (*bootstrap.Env, migration.Strategy, error) {
	env, err := bootstrap.Init(opts, true)
	if err != nil {
		return nil, nil, err
	}

	strategy, err := migration.StrategyByName(strategyName, env.Config.Database.Driver)
	if err != nil {
		env.Close()
		return nil, nil, err
	}
	return env, strategy, nil
}

func runUp(opts bootstrap.Options) error {
	env, strategy, err := initEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	env.Logger.Infow("running up migrations", "environment", opts.Env, "strategy", strategy.GetName())

	if err := migration.NewManagerWithStrategy(strategy).Migrate(database.Get()); err != nil {
		return err
	}

	env.Logger.Infow("migrations completed successfully")
	return nil
}

func runDown(opts bootstrap.Options) error {
	env, strategy, err := initEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	env.Logger.Infow("running down migrations", "environment", opts.Env, "strategy", strategy.GetName(), "steps", steps)

	if err := migration.NewManagerWithStrategy(strategy).Rollback(database.Get(), steps); err != nil {
		env.Logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	env.Logger.Infow("down migration completed successfully")
	return nil
}

func runStatus(opts bootstrap.Options) error {
	env, strategy, err := initEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	version, err := strategy.Version(database.Get())
	if err != nil {
		env.Logger.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", opts.Env)
	fmt.Printf("  Strategy:        %s\n", strategy.GetName())
	fmt.Printf("  Current Version: %d\n", version)

	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		if err := gooseStrategy.Status(database.Get()); err != nil {
			env.Logger.Errorw("failed to get detailed status", "error", err)
			return fmt.Errorf("failed to get detailed status: %w", err)
		}
	}

	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("migrate.create")

	scriptsPath, err := filepath.Abs(scriptsDir)
	if err != nil {
		return fmt.Errorf("failed to get scripts path: %w", err)
	}

	log.Infow("creating new migration", "name", name, "scripts", scriptsPath)

	paths, err := migration.NewGenerator(scriptsPath).CreateMigration(name)
	if err != nil {
		log.Errorw("failed to create migration", "error", err)
		return fmt.Errorf("failed to create migration: %w", err)
	}

	for _, p := range paths {
		fmt.Printf("created %s\n", p)
	}
	return nil
}
