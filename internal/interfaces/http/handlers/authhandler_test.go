package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/application/user/dto"
	"github.com/frigoservis/servis/internal/application/user/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/testutil"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockLoginUC struct {
	cmd    usecases.LoginCommand
	result *usecases.LoginResult
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockCreateUserUC struct {
	called bool
	cmd    usecases.CreateUserCommand
	result *dto.UserDTO
	err    error
}

func (m *mockCreateUserUC) Execute(_ context.Context, _ shared.Principal, cmd usecases.CreateUserCommand) (*dto.UserDTO, error) {
	m.called, m.cmd = true, cmd
	return m.result, m.err
}

var fixedNow = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

func newTestAuthHandler(uc *mockLoginUC) *AuthHandler {
	h := NewAuthHandler(uc, logger.NewNop())
	h.now = func() time.Time { return fixedNow }
	return h
}

// =====================================================================
// Login
// =====================================================================

func TestAuthHandler_Login_Success(t *testing.T) {
	uc := &mockLoginUC{result: &usecases.LoginResult{
		User: &dto.UserDTO{ID: 1, Username: "admin", Role: "admin", Active: true},
		TokenResult: &usecases.TokenResult{
			AccessToken: "signed.jwt.token",
			TokenType:   "Bearer",
			ExpiresAt:   fixedNow.Add(12 * time.Hour),
		},
	}}
	h := newTestAuthHandler(uc)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]any{
		"username": " admin ", "password": "tajna-lozinka",
	})

	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", uc.cmd.Username)
	assert.Equal(t, "tajna-lozinka", uc.cmd.Password)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "signed.jwt.token", data.AccessToken)
	assert.Equal(t, "Bearer", data.TokenType)
	assert.Equal(t, int64(12*3600), data.ExpiresIn)
	assert.Equal(t, "admin", data.User.Username)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := newTestAuthHandler(&mockLoginUC{err: errors.NewUnauthorizedError("invalid username or password")})
	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]any{
		"username": "admin", "password": "pogresno",
	})

	h.Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid username or password")
}

func TestAuthHandler_Login_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"malformed json", `{"username":`},
		{"missing password", `{"username":"admin"}`},
		{"wrong type", `{"username":42,"password":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockLoginUC{}
			h := newTestAuthHandler(uc)
			c, w := testutil.NewRawTestContext(http.MethodPost, "/auth/login", tt.body)

			h.Login(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, uc.cmd.Username)
		})
	}
}

// =====================================================================
// CreateUser
// =====================================================================

func TestUserHandler_CreateUser(t *testing.T) {
	uc := &mockCreateUserUC{result: &dto.UserDTO{ID: 9, Username: "kupac.ana", Role: "customer"}}
	h := NewUserHandler(uc, logger.NewNop())
	c, w := testutil.NewTestContext(http.MethodPost, "/admin/users", map[string]any{
		"username":  "kupac.ana",
		"password":  "dovoljno-duga",
		"full_name": "Ana Anić",
		"role":      "customer",
		"client_id": 3,
	})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	h.CreateUser(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.cmd.ClientID)
	assert.Equal(t, uint(3), *uc.cmd.ClientID)
	assert.Equal(t, "customer", uc.cmd.Role)
}

func TestUserHandler_CreateUser_UnknownRole(t *testing.T) {
	uc := &mockCreateUserUC{}
	h := NewUserHandler(uc, logger.NewNop())
	c, w := testutil.NewTestContext(http.MethodPost, "/admin/users", map[string]any{
		"username": "root", "password": "dovoljno-duga", "full_name": "Root", "role": "superuser",
	})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	h.CreateUser(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, uc.called)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "role", resp.Error.Field)
}

func TestUserHandler_CreateUser_DuplicateUsername(t *testing.T) {
	uc := &mockCreateUserUC{err: errors.NewConflictError("username already exists")}
	h := NewUserHandler(uc, logger.NewNop())
	c, w := testutil.NewTestContext(http.MethodPost, "/admin/users", map[string]any{
		"username": "admin", "password": "dovoljno-duga", "full_name": "Admin", "role": "admin",
	})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	h.CreateUser(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
