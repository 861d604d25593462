package usecases

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/application/testutil"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/authorization"
	apperrors "github.com/frigoservis/servis/internal/shared/errors"
)

func createUser(t *testing.T, fx *testutil.Fixture, cmd CreateUserCommand) {
	t.Helper()
	uc := NewCreateUserUseCase(fx.Users, fx.Clients, &plainHasher{}, fx.Logger)
	_, err := uc.Execute(t.Context(), shared.SystemPrincipal(), cmd)
	require.NoError(t, err)
}

func TestCreateUser(t *testing.T) {
	t.Run("admin creates a technician", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		uc := NewCreateUserUseCase(fx.Users, fx.Clients, &plainHasher{}, fx.Logger)

		out, err := uc.Execute(t.Context(), fx.AdminPrincipal(), CreateUserCommand{
			Username: "Petar.P",
			Password: "tajna1234",
			FullName: "Petar Petrovic",
			Role:     "technician",
		})

		require.NoError(t, err)
		assert.NotZero(t, out.ID)
		assert.Equal(t, "petar.p", out.Username)
		assert.Equal(t, "technician", out.Role)
		assert.True(t, out.Active)

		stored, err := fx.Users.GetByUsername(t.Context(), "petar.p")
		require.NoError(t, err)
		assert.Equal(t, "hashed:tajna1234", stored.PasswordHash())
	})

	t.Run("customer must reference an existing client", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		uc := NewCreateUserUseCase(fx.Users, fx.Clients, &plainHasher{}, fx.Logger)
		missing := uint(404)

		_, err := uc.Execute(t.Context(), fx.AdminPrincipal(), CreateUserCommand{
			Username: "kupac",
			Password: "tajna1234",
			Role:     "customer",
			ClientID: &missing,
		})
		assert.True(t, apperrors.IsValidationError(err))

		clientID := fx.Client.ID()
		out, err := uc.Execute(t.Context(), fx.AdminPrincipal(), CreateUserCommand{
			Username: "kupac",
			Password: "tajna1234",
			Role:     "customer",
			ClientID: &clientID,
		})
		require.NoError(t, err)
		require.NotNil(t, out.ClientID)
		assert.Equal(t, clientID, *out.ClientID)
	})

	tests := []struct {
		name  string
		cmd   CreateUserCommand
		check func(error) bool
	}{
		{"unknown role", CreateUserCommand{Username: "novi", Password: "tajna1234", Role: "boss"}, apperrors.IsValidationError},
		{"short password", CreateUserCommand{Username: "novi", Password: "kratko", Role: "admin"}, apperrors.IsValidationError},
		{"bad username", CreateUserCommand{Username: "a b", Password: "tajna1234", Role: "admin"}, apperrors.IsValidationError},
		{"customer without client", CreateUserCommand{Username: "novi", Password: "tajna1234", Role: "customer"}, apperrors.IsValidationError},
		{"taken username", CreateUserCommand{Username: "ADMIN", Password: "tajna1234", Role: "admin"}, apperrors.IsConflictError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := testutil.NewFixture(t)
			uc := NewCreateUserUseCase(fx.Users, fx.Clients, &plainHasher{}, fx.Logger)

			_, err := uc.Execute(t.Context(), fx.AdminPrincipal(), tt.cmd)

			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}

	t.Run("only admins", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		uc := NewCreateUserUseCase(fx.Users, fx.Clients, &plainHasher{}, fx.Logger)

		_, err := uc.Execute(t.Context(), fx.TechnicianPrincipal(), CreateUserCommand{Username: "novi", Password: "tajna1234", Role: "admin"})
		assert.True(t, apperrors.IsForbiddenError(err))
	})
}

func TestLogin(t *testing.T) {
	fx := testutil.NewFixture(t)
	createUser(t, fx, CreateUserCommand{Username: "serviser", Password: "tajna1234", Role: "technician"})
	issuer := &mockTokenIssuer{}
	uc := NewLoginUseCase(fx.Users, &plainHasher{}, issuer, fx.Logger)

	result, err := uc.Execute(t.Context(), LoginCommand{Username: " Serviser ", Password: "tajna1234"})
	require.NoError(t, err)
	assert.Equal(t, "token", result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "serviser", result.User.Username)
	require.Len(t, issuer.Issued, 1)
	assert.Equal(t, authorization.RoleTechnician, issuer.Issued[0].Role)
	assert.Equal(t, result.User.ID, issuer.Issued[0].UserID)

	_, err = uc.Execute(t.Context(), LoginCommand{Username: "serviser", Password: "pogresna"})
	assert.True(t, apperrors.IsUnauthorizedError(err))

	_, err = uc.Execute(t.Context(), LoginCommand{Username: "nepoznat", Password: "tajna1234"})
	assert.True(t, apperrors.IsUnauthorizedError(err))
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	fx := testutil.NewFixture(t)
	createUser(t, fx, CreateUserCommand{Username: "bivsi", Password: "tajna1234", Role: "technician"})
	u, err := fx.Users.GetByUsername(t.Context(), "bivsi")
	require.NoError(t, err)
	u.Deactivate()

	_, err = NewLoginUseCase(fx.Users, &plainHasher{}, &mockTokenIssuer{}, fx.Logger).
		Execute(t.Context(), LoginCommand{Username: "bivsi", Password: "tajna1234"})
	assert.True(t, apperrors.IsUnauthorizedError(err))

	_, err = NewIssueTokenUseCase(fx.Users, &mockTokenIssuer{}, fx.Logger).Execute(t.Context(), "bivsi")
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestIssueToken(t *testing.T) {
	fx := testutil.NewFixture(t)
	expires := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	issuer := &mockTokenIssuer{IssueFunc: func(p shared.Principal) (string, time.Time, error) {
		return "cli-token", expires, nil
	}}
	uc := NewIssueTokenUseCase(fx.Users, issuer, fx.Logger)

	result, err := uc.Execute(t.Context(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "cli-token", result.AccessToken)
	assert.Equal(t, expires, result.ExpiresAt)

	_, err = uc.Execute(t.Context(), "niko")
	assert.True(t, apperrors.IsNotFoundError(err))

	failing := NewIssueTokenUseCase(fx.Users, &mockTokenIssuer{IssueFunc: func(shared.Principal) (string, time.Time, error) {
		return "", time.Time{}, errors.New("no secret")
	}}, fx.Logger)
	_, err = failing.Execute(t.Context(), "admin")
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFoundError(err))
}
