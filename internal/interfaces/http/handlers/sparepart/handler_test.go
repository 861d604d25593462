package sparepart

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/application/sparepart/dto"
	"github.com/frigoservis/servis/internal/application/sparepart/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/testutil"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/constants"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateUC struct {
	fn func(ctx context.Context, p shared.Principal, cmd usecases.CreateSparePartOrderCommand) (*usecases.CreateSparePartOrderResult, error)
}

func (m *mockCreateUC) Execute(ctx context.Context, p shared.Principal, cmd usecases.CreateSparePartOrderCommand) (*usecases.CreateSparePartOrderResult, error) {
	return m.fn(ctx, p, cmd)
}

type mockGetUC struct {
	result *dto.SparePartOrderDTO
	err    error
}

func (m *mockGetUC) Execute(context.Context, shared.Principal, uint) (*dto.SparePartOrderDTO, error) {
	return m.result, m.err
}

type mockListUC struct {
	query  usecases.ListSparePartOrdersQuery
	result *usecases.ListSparePartOrdersResult
	err    error
}

func (m *mockListUC) Execute(_ context.Context, _ shared.Principal, query usecases.ListSparePartOrdersQuery) (*usecases.ListSparePartOrdersResult, error) {
	m.query = query
	return m.result, m.err
}

type mockListServiceUC struct {
	result []*dto.SparePartOrderDTO
	err    error
}

func (m *mockListServiceUC) Execute(context.Context, shared.Principal, uint) ([]*dto.SparePartOrderDTO, error) {
	return m.result, m.err
}

type mockUpdateUC struct {
	cmd    usecases.UpdateSparePartOrderCommand
	result *usecases.UpdateSparePartOrderResult
	err    error
}

func (m *mockUpdateUC) Execute(_ context.Context, _ shared.Principal, cmd usecases.UpdateSparePartOrderCommand) (*usecases.UpdateSparePartOrderResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockExportUC struct {
	result *usecases.ExportSparePartOrdersResult
	err    error
}

func (m *mockExportUC) Execute(context.Context, shared.Principal, usecases.ListSparePartOrdersQuery) (*usecases.ExportSparePartOrdersResult, error) {
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	create      *mockCreateUC
	get         *mockGetUC
	list        *mockListUC
	listService *mockListServiceUC
	update      *mockUpdateUC
	export      *mockExportUC
}

func newTestHandler(d testDeps) *Handler {
	if d.create == nil {
		d.create = &mockCreateUC{}
	}
	if d.get == nil {
		d.get = &mockGetUC{}
	}
	if d.list == nil {
		d.list = &mockListUC{}
	}
	if d.listService == nil {
		d.listService = &mockListServiceUC{}
	}
	if d.update == nil {
		d.update = &mockUpdateUC{}
	}
	if d.export == nil {
		d.export = &mockExportUC{}
	}
	return NewHandler(d.create, d.get, d.list, d.listService, d.update, d.export, logger.NewNop())
}

func uintPtr(v uint) *uint { return &v }

// =====================================================================
// CreateOrder
// =====================================================================

func TestCreateOrder_Success(t *testing.T) {
	var got usecases.CreateSparePartOrderCommand
	var gotPrincipal shared.Principal
	h := newTestHandler(testDeps{create: &mockCreateUC{fn: func(_ context.Context, p shared.Principal, cmd usecases.CreateSparePartOrderCommand) (*usecases.CreateSparePartOrderResult, error) {
		got, gotPrincipal = cmd, p
		return &usecases.CreateSparePartOrderResult{
			Order:         &dto.SparePartOrderDTO{ID: 7, ServiceID: cmd.ServiceID, PartName: cmd.PartName, Status: "pending"},
			ServiceStatus: "waiting_parts",
		}, nil
	}}})

	c, w := testutil.NewTestContext(http.MethodPost, "/spare-parts", map[string]any{
		"service_id":      42,
		"part_name":       "Pumpa za vodu",
		"warranty_status": "van garancije",
		"quantity":        1,
		"urgency":         "normal",
	})
	testutil.SetAuthContext(c, 5, authorization.RoleTechnician)

	h.CreateOrder(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uintPtr(42), got.ServiceID)
	assert.Equal(t, "Pumpa za vodu", got.PartName)
	assert.Equal(t, uint(5), gotPrincipal.UserID)
	assert.True(t, gotPrincipal.IsTechnician())

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data OrderResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, uint(7), data.Order.ID)
	assert.Equal(t, "waiting_parts", data.ServiceStatus)
	assert.NotNil(t, data.Warnings)
	assert.Empty(t, data.Warnings)
}

func TestCreateOrder_WarningsAreReturned(t *testing.T) {
	h := newTestHandler(testDeps{create: &mockCreateUC{fn: func(context.Context, shared.Principal, usecases.CreateSparePartOrderCommand) (*usecases.CreateSparePartOrderResult, error) {
		return &usecases.CreateSparePartOrderResult{
			Order:    &dto.SparePartOrderDTO{ID: 1},
			Warnings: []string{"sms to ***567 failed: gateway timeout"},
		}, nil
	}}})

	c, w := testutil.NewTestContext(http.MethodPost, "/spare-parts", map[string]any{
		"part_name": "Grejač", "warranty_status": "u garanciji",
	})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	h.CreateOrder(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "gateway timeout")
}

func TestCreateOrder_FieldValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing part name", map[string]any{"warranty_status": "u garanciji"}, "part_name"},
		{"missing warranty", map[string]any{"part_name": "Grejač"}, "warranty_status"},
		{"bad quantity", map[string]any{"part_name": "Grejač", "warranty_status": "u garanciji", "quantity": 0.5}, "quantity"},
		{"bad urgency", map[string]any{"part_name": "Grejač", "warranty_status": "u garanciji", "urgency": "asap"}, "urgency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(testDeps{})
			c, w := testutil.NewTestContext(http.MethodPost, "/spare-parts", tt.body)
			testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

			h.CreateOrder(c)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
			assert.Equal(t, tt.field, resp.Error.Field)
		})
	}
}

func TestCreateOrder_Unauthenticated(t *testing.T) {
	h := newTestHandler(testDeps{})
	c, w := testutil.NewTestContext(http.MethodPost, "/spare-parts", map[string]any{"part_name": "x"})

	h.CreateOrder(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrder_UseCaseError(t *testing.T) {
	h := newTestHandler(testDeps{create: &mockCreateUC{fn: func(context.Context, shared.Principal, usecases.CreateSparePartOrderCommand) (*usecases.CreateSparePartOrderResult, error) {
		return nil, errors.NewNotFoundError("service 42 not found")
	}}})
	c, w := testutil.NewTestContext(http.MethodPost, "/spare-parts", map[string]any{
		"service_id": 42, "part_name": "Grejač", "warranty_status": "u garanciji",
	})
	testutil.SetAuthContext(c, 1, authorization.RoleTechnician)

	h.CreateOrder(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// Get / List
// =====================================================================

func TestGetOrder(t *testing.T) {
	h := newTestHandler(testDeps{get: &mockGetUC{result: &dto.SparePartOrderDTO{ID: 3, PartName: "Motor"}}})
	c, w := testutil.NewTestContext(http.MethodGet, "/spare-parts/3", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleSupplier)
	testutil.SetURLParam(c, "id", "3")

	h.GetOrder(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"part_name":"Motor"`)
}

func TestGetOrder_InvalidID(t *testing.T) {
	h := newTestHandler(testDeps{})
	c, w := testutil.NewTestContext(http.MethodGet, "/spare-parts/abc", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "abc")

	h.GetOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrders_PassesFilters(t *testing.T) {
	list := &mockListUC{result: &usecases.ListSparePartOrdersResult{
		Orders: []*dto.SparePartOrderDTO{{ID: 1}, {ID: 2}}, Total: 12, Page: 2, PageSize: 10,
	}}
	h := newTestHandler(testDeps{list: list})
	c, w := testutil.NewTestContext(http.MethodGet, "/admin/spare-parts", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetQueryParams(c, map[string]string{
		"status": "pending", "service_id": "42", "page": "2", "page_size": "10", "date_from": "2026-10-01",
	})

	h.ListOrders(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", list.query.Status)
	assert.Equal(t, uintPtr(42), list.query.ServiceID)
	assert.Equal(t, 2, list.query.Page)
	assert.Equal(t, 10, list.query.PageSize)
	assert.Equal(t, "2026-10-01", list.query.DateFrom)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(12), data.Total)
	assert.Equal(t, 2, data.TotalPages)
}

func TestListOrders_InvalidServiceID(t *testing.T) {
	h := newTestHandler(testDeps{})
	c, w := testutil.NewTestContext(http.MethodGet, "/admin/spare-parts", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetQueryParams(c, map[string]string{"service_id": "-1"})

	h.ListOrders(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListServiceOrders(t *testing.T) {
	h := newTestHandler(testDeps{listService: &mockListServiceUC{result: []*dto.SparePartOrderDTO{{ID: 9}}}})
	c, w := testutil.NewTestContext(http.MethodGet, "/services/4/spare-parts", nil)
	testutil.SetCustomerContext(c, 8, 2)
	testutil.SetURLParam(c, "id", "4")

	h.ListServiceOrders(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":9`)
}

// =====================================================================
// Update
// =====================================================================

func TestUpdateOrder_Delivered(t *testing.T) {
	update := &mockUpdateUC{result: &usecases.UpdateSparePartOrderResult{
		Order:         &dto.SparePartOrderDTO{ID: 3, Status: "delivered"},
		ServiceStatus: "in_progress",
	}}
	h := newTestHandler(testDeps{update: update})
	c, w := testutil.NewTestContext(http.MethodPut, "/admin/spare-parts/3", map[string]any{
		"status":             "delivered",
		"estimated_cost":     2500.0,
		"estimated_delivery": "2026-10-20",
	})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "3")

	h.UpdateOrder(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), update.cmd.OrderID)
	require.NotNil(t, update.cmd.Status)
	assert.Equal(t, "delivered", *update.cmd.Status)
	require.NotNil(t, update.cmd.EstimatedDelivery)
	assert.False(t, update.cmd.EstimatedDelivery.IsZero())
	assert.Nil(t, update.cmd.Notes)
	assert.Contains(t, w.Body.String(), `"service_status":"in_progress"`)
}

func TestUpdateOrder_BadDeliveryDate(t *testing.T) {
	h := newTestHandler(testDeps{})
	c, w := testutil.NewTestContext(http.MethodPut, "/admin/spare-parts/3", map[string]any{"estimated_delivery": "20.10.2026"})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "3")

	h.UpdateOrder(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "estimated_delivery")
}

func TestUpdateOrder_UnknownStatus(t *testing.T) {
	h := newTestHandler(testDeps{})
	c, w := testutil.NewTestContext(http.MethodPut, "/admin/spare-parts/3", map[string]any{"status": "lost"})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "3")

	h.UpdateOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrder_Conflict(t *testing.T) {
	h := newTestHandler(testDeps{update: &mockUpdateUC{err: errors.NewConflictError("service was modified concurrently")}})
	c, w := testutil.NewTestContext(http.MethodPut, "/admin/spare-parts/3", map[string]any{"status": "cancelled"})
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "3")

	h.UpdateOrder(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// =====================================================================
// Export
// =====================================================================

func TestExportOrders(t *testing.T) {
	h := newTestHandler(testDeps{export: &mockExportUC{result: &usecases.ExportSparePartOrdersResult{
		FileName: "rezervni-delovi-" + time.Now().Format("20060102") + ".xlsx",
		Content:  []byte("PK"),
		Rows:     1,
	}}})
	c, w := testutil.NewTestContext(http.MethodGet, "/admin/spare-parts/export", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)

	h.ExportOrders(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "rezervni-delovi-")
	assert.Equal(t, "PK", w.Body.String())
}
