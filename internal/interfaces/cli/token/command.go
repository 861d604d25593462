package token

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	userUsecases "github.com/frigoservis/servis/internal/application/user/usecases"
	"github.com/frigoservis/servis/internal/infrastructure/auth"
	"github.com/frigoservis/servis/internal/infrastructure/database"
	"github.com/frigoservis/servis/internal/infrastructure/repository"
	"github.com/frigoservis/servis/internal/interfaces/cli/bootstrap"
)

var username string

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Access token tools",
	}

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue an access token for an existing account",
		Long:  `Mint a bearer token for an active account without its password. Intended for operators and integrations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssue(cmd.Context(), *opts)
		},
	}
	issue.Flags().StringVarP(&username, "username", "u", "", "Login name of the account (required)")
	_ = issue.MarkFlagRequired("username")

	cmd.AddCommand(issue)

	return cmd
}

func runIssue(ctx context.Context, opts bootstrap.Options) error {
	env, err := bootstrap.Init(opts, true)
	if err != nil {
		return err
	}
	defer env.Close()

	uc := userUsecases.NewIssueTokenUseCase(
		repository.NewUserRepository(database.Get()),
		auth.NewJWTService(env.Config.Auth.JWT),
		env.Logger,
	)

	result, err := uc.Execute(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Printf("%s %s\n", result.TokenType, result.AccessToken)
	fmt.Printf("expires at %s\n", result.ExpiresAt.Format(time.RFC3339))
	return nil
}
