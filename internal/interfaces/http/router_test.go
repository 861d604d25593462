package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/infrastructure/auth"
	"github.com/frigoservis/servis/internal/infrastructure/config"
	"github.com/frigoservis/servis/internal/infrastructure/persistence/models"
	"github.com/frigoservis/servis/internal/infrastructure/repository"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/testutil"
	"github.com/frigoservis/servis/internal/shared/authorization"
	sharedConfig "github.com/frigoservis/servis/internal/shared/config"
	"github.com/frigoservis/servis/internal/shared/logger"
)

const testPassword = "lozinka-123"

type flowEnv struct {
	t      *testing.T
	router *Router
	db     *gorm.DB
}

func newFlowEnv(t *testing.T) *flowEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{Mode: gin.TestMode, LoginRateLimit: 100},
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{BcryptCost: 4},
			JWT:      sharedConfig.JWTConfig{Secret: "flow-test-secret", Issuer: "servis", AccessExpMinutes: 60},
		},
		Notification: sharedConfig.NotificationConfig{CompanyName: "Frigo Servis"},
	}

	router, err := NewRouter(db, redisClient, cfg, logger.NewNop())
	require.NoError(t, err)
	router.SetupRoutes()
	t.Cleanup(router.Shutdown)

	return &flowEnv{t: t, router: router, db: db}
}

func (e *flowEnv) seedUser(username string, role authorization.UserRole) uint {
	e.t.Helper()
	hash, err := auth.NewBcryptPasswordHasher(4).Hash(testPassword)
	require.NoError(e.t, err)
	u, err := user.NewUser(username, "Test "+username, role, "", "", hash, nil)
	require.NoError(e.t, err)
	require.NoError(e.t, repository.NewUserRepository(e.db).Create(context.Background(), u))
	return u.ID()
}

func (e *flowEnv) login(username string) string {
	e.t.Helper()
	resp := e.do(http.MethodPost, "/auth/login", "", map[string]string{"username": username, "password": testPassword})
	require.Equal(e.t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
	}
	e.decode(resp, &body)
	require.NotEmpty(e.t, body.AccessToken)
	return body.AccessToken
}

func (e *flowEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.GetEngine().ServeHTTP(w, req)
	return w
}

func (e *flowEnv) decode(w *httptest.ResponseRecorder, target any) {
	e.t.Helper()
	var resp testutil.APIResponse
	require.NoError(e.t, testutil.ParseResponse(w, &resp))
	require.True(e.t, resp.Success, w.Body.String())
	require.NoError(e.t, json.Unmarshal(resp.Data, target))
}

type idResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

type actionResponse struct {
	Service  idResponse `json:"service"`
	Changed  bool       `json:"changed"`
	Warnings []string   `json:"warnings"`
}

type orderResponse struct {
	Order         idResponse `json:"order"`
	ServiceStatus string     `json:"service_status"`
	Warnings      []string   `json:"warnings"`
}

// seedAssignedService creates a client, an appliance and a service assigned
// to the technician, and moves it to in_progress.
func (e *flowEnv) seedAssignedService(adminToken, techToken string, techID uint) uint {
	e.t.Helper()

	resp := e.do(http.MethodPost, "/admin/clients", adminToken, map[string]string{
		"full_name": "Petar Petrović",
		"phone":     "+381641234567",
		"city":      "Beograd",
	})
	require.Equal(e.t, http.StatusCreated, resp.Code, resp.Body.String())
	var cl idResponse
	e.decode(resp, &cl)

	resp = e.do(http.MethodPost, fmt.Sprintf("/admin/clients/%d/appliances", cl.ID), adminToken, map[string]string{
		"device_type":  "Frižider",
		"manufacturer": "Gorenje",
	})
	require.Equal(e.t, http.StatusCreated, resp.Code, resp.Body.String())
	var appliance idResponse
	e.decode(resp, &appliance)

	resp = e.do(http.MethodPost, "/services", adminToken, map[string]any{
		"client_id":    cl.ID,
		"appliance_id": appliance.ID,
		"description":  "Ne hladi",
	})
	require.Equal(e.t, http.StatusCreated, resp.Code, resp.Body.String())
	var svc idResponse
	e.decode(resp, &svc)
	assert.Equal(e.t, "pending", svc.Status)

	resp = e.do(http.MethodPost, fmt.Sprintf("/admin/services/%d/assign", svc.ID), adminToken, map[string]any{"technician_id": techID})
	require.Equal(e.t, http.StatusOK, resp.Code, resp.Body.String())

	resp = e.do(http.MethodPatch, fmt.Sprintf("/services/%d/status", svc.ID), techToken, map[string]string{"status": "in_progress"})
	require.Equal(e.t, http.StatusOK, resp.Code, resp.Body.String())
	var action actionResponse
	e.decode(resp, &action)
	require.Equal(e.t, "in_progress", action.Service.Status)

	return svc.ID
}

func TestFlow_SparePartOrderDrivesServiceStatus(t *testing.T) {
	env := newFlowEnv(t)
	env.seedUser("admin", authorization.RoleAdmin)
	techID := env.seedUser("tehnicar", authorization.RoleTechnician)
	env.seedUser("dobavljac", authorization.RoleSupplier)

	adminToken := env.login("admin")
	techToken := env.login("tehnicar")
	supplierToken := env.login("dobavljac")

	serviceID := env.seedAssignedService(adminToken, techToken, techID)

	// Technician orders a part: the service waits for it.
	resp := env.do(http.MethodPost, "/spare-parts", techToken, map[string]any{
		"service_id":      serviceID,
		"part_name":       "Kompresor",
		"warranty_status": "van garancije",
		"urgency":         "high",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var first orderResponse
	env.decode(resp, &first)
	assert.Equal(t, "pending", first.Order.Status)
	assert.Equal(t, "waiting_parts", first.ServiceStatus)
	assert.NotNil(t, first.Warnings)

	// A second order does not stack.
	resp = env.do(http.MethodPost, "/spare-parts", techToken, map[string]any{
		"service_id":      serviceID,
		"part_name":       "Termostat",
		"warranty_status": "u garanciji",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var second orderResponse
	env.decode(resp, &second)
	assert.Equal(t, "waiting_parts", second.ServiceStatus)

	// Returning while an order is open is rejected unless forced.
	resp = env.do(http.MethodPost, fmt.Sprintf("/admin/services/%d/return-from-waiting", serviceID), adminToken, map[string]any{})
	assert.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())

	// Suppliers are not admins.
	resp = env.do(http.MethodPost, fmt.Sprintf("/admin/services/%d/return-from-waiting", serviceID), supplierToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	// Delivering one order keeps the service waiting for the other.
	resp = env.do(http.MethodPut, fmt.Sprintf("/admin/spare-parts/%d", first.Order.ID), supplierToken, map[string]string{"status": "delivered"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var delivered orderResponse
	env.decode(resp, &delivered)
	assert.Equal(t, "delivered", delivered.Order.Status)
	assert.Equal(t, "waiting_parts", delivered.ServiceStatus)

	// Cancelling the last open order returns the service to work.
	resp = env.do(http.MethodPut, fmt.Sprintf("/admin/spare-parts/%d", second.Order.ID), adminToken, map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var cancelled orderResponse
	env.decode(resp, &cancelled)
	assert.Equal(t, "in_progress", cancelled.ServiceStatus)

	// Terminal orders are frozen.
	resp = env.do(http.MethodPut, fmt.Sprintf("/admin/spare-parts/%d", first.Order.ID), adminToken, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	// Every transition is on the audit trail.
	resp = env.do(http.MethodGet, fmt.Sprintf("/services/%d/history", serviceID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var history []struct {
		NewStatus string `json:"new_status"`
	}
	env.decode(resp, &history)
	var statuses []string
	for _, h := range history {
		statuses = append(statuses, h.NewStatus)
	}
	assert.Contains(t, statuses, "waiting_parts")
	assert.Contains(t, statuses, "in_progress")

	// Admins are notified on the dashboard.
	resp = env.do(http.MethodGet, "/notifications?unread_only=true", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var notices struct {
		Total  int64 `json:"total"`
		Unread int64 `json:"unread"`
	}
	env.decode(resp, &notices)
	assert.Positive(t, notices.Total)
	assert.Equal(t, notices.Total, notices.Unread)
}

func TestFlow_RemovedPartRoundTrip(t *testing.T) {
	env := newFlowEnv(t)
	env.seedUser("admin", authorization.RoleAdmin)
	techID := env.seedUser("tehnicar", authorization.RoleTechnician)

	adminToken := env.login("admin")
	techToken := env.login("tehnicar")
	serviceID := env.seedAssignedService(adminToken, techToken, techID)

	resp := env.do(http.MethodPost, "/removed-parts", techToken, map[string]any{
		"service_id":     serviceID,
		"part_name":      "Elektronska ploča",
		"removal_reason": "Popravka u radionici",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created struct {
		Part          idResponse `json:"part"`
		ServiceStatus string     `json:"service_status"`
	}
	env.decode(resp, &created)
	assert.Equal(t, "device_parts_removed", created.ServiceStatus)

	resp = env.do(http.MethodPatch, fmt.Sprintf("/removed-parts/%d/return", created.Part.ID), techToken, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var returned struct {
		ServiceStatus string `json:"service_status"`
	}
	env.decode(resp, &returned)
	assert.Equal(t, "in_progress", returned.ServiceStatus)

	// The deprecated alias still works and flags itself.
	resp = env.do(http.MethodPatch, fmt.Sprintf("/services/%d/parts-removed", serviceID), techToken, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "true", resp.Header().Get("Deprecation"))
	var marked struct {
		RemovedPartID *uint  `json:"removed_part_id"`
		ServiceStatus string `json:"service_status"`
	}
	env.decode(resp, &marked)
	assert.Equal(t, "device_parts_removed", marked.ServiceStatus)
	require.NotNil(t, marked.RemovedPartID)

	// The placeholder part is the way back to work.
	resp = env.do(http.MethodPatch, fmt.Sprintf("/removed-parts/%d/return", *marked.RemovedPartID), techToken, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	env.decode(resp, &returned)
	assert.Equal(t, "in_progress", returned.ServiceStatus)
}

func TestFlow_AuthAndPermissions(t *testing.T) {
	env := newFlowEnv(t)
	env.seedUser("admin", authorization.RoleAdmin)
	env.seedUser("dobavljac", authorization.RoleSupplier)

	resp := env.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "admin", "password": "pogresna"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = env.do(http.MethodGet, "/services", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	supplierToken := env.login("dobavljac")
	resp = env.do(http.MethodPost, "/admin/clients", supplierToken, map[string]string{"full_name": "Neko"})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = env.do(http.MethodGet, "/admin/spare-parts", supplierToken, nil)
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	adminToken := env.login("admin")
	resp = env.do(http.MethodPost, "/admin/users", adminToken, map[string]string{
		"username":  "novi.tehnicar",
		"password":  "tajna-lozinka",
		"full_name": "Novi Tehničar",
		"role":      "technician",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	env.login("novi.tehnicar")
}
