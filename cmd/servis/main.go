package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/frigoservis/servis/internal/interfaces/cli/bootstrap"
	"github.com/frigoservis/servis/internal/interfaces/cli/migrate"
	"github.com/frigoservis/servis/internal/interfaces/cli/report"
	"github.com/frigoservis/servis/internal/interfaces/cli/server"
	"github.com/frigoservis/servis/internal/interfaces/cli/token"
	"github.com/frigoservis/servis/internal/interfaces/cli/user"
)

func main() {
	opts := &bootstrap.Options{}

	rootCmd := &cobra.Command{
		Use:          "servis",
		Short:        "Servis - appliance repair field service backend",
		Long:         `Servis tracks repair tickets, spare-part orders and removed parts, and notifies clients and staff about status changes.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		server.NewCommand(opts),
		migrate.NewCommand(opts),
		user.NewCommand(opts),
		token.NewCommand(opts),
		report.NewCommand(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
