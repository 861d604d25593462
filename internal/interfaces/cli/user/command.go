package user

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	userUsecases "github.com/frigoservis/servis/internal/application/user/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/infrastructure/auth"
	"github.com/frigoservis/servis/internal/infrastructure/database"
	"github.com/frigoservis/servis/internal/infrastructure/repository"
	"github.com/frigoservis/servis/internal/interfaces/cli/bootstrap"
)

var (
	username string
	password string
	fullName string
	role     string
	phone    string
	email    string
	clientID uint
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User account management",
	}

	cmd.AddCommand(newCreateCommand(opts))

	return cmd
}

func newCreateCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Long:  `Create an account for an administrator, technician, supplier or client. The password is prompted for when --password is omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), *opts)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Login name (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when empty)")
	cmd.Flags().StringVar(&fullName, "full-name", "", "Display name")
	cmd.Flags().StringVarP(&role, "role", "r", "admin", "Role (admin, technician, supplier, client)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number used for SMS and WhatsApp")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().UintVar(&clientID, "client-id", 0, "Client record linked to a client account")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func runCreate(ctx context.Context, opts bootstrap.Options) error {
	env, err := bootstrap.Init(opts, true)
	if err != nil {
		return err
	}
	defer env.Close()

	if password == "" {
		password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	db := database.Get()
	uc := userUsecases.NewCreateUserUseCase(
		repository.NewUserRepository(db),
		repository.NewClientRepository(db),
		auth.NewBcryptPasswordHasher(env.Config.Auth.Password.BcryptCost),
		env.Logger,
	)

	cmd := userUsecases.CreateUserCommand{
		Username: username,
		Password: password,
		FullName: fullName,
		Role:     role,
		Phone:    phone,
		Email:    email,
	}
	if clientID != 0 {
		id := clientID
		cmd.ClientID = &id
	}

	created, err := uc.Execute(ctx, shared.SystemPrincipal(), cmd)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("created user %q (id %d, role %s)\n", created.Username, created.ID, created.Role)
	return nil
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--password is required when stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return strings.TrimRight(string(first), "\r\n"), nil
}
