package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/application/notification/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/testutil"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// =====================================================================
// Mock notification use cases
// =====================================================================

type mockListNotifications struct {
	fn func(ctx context.Context, p shared.Principal, query usecases.ListNotificationsQuery) (*usecases.ListNotificationsResult, error)
}

func (m *mockListNotifications) Execute(ctx context.Context, p shared.Principal, query usecases.ListNotificationsQuery) (*usecases.ListNotificationsResult, error) {
	if m.fn != nil {
		return m.fn(ctx, p, query)
	}
	return &usecases.ListNotificationsResult{Page: 1, PageSize: 20}, nil
}

type mockMarkRead struct {
	fn func(ctx context.Context, p shared.Principal, notificationID uint) error
}

func (m *mockMarkRead) Execute(ctx context.Context, p shared.Principal, notificationID uint) error {
	if m.fn != nil {
		return m.fn(ctx, p, notificationID)
	}
	return nil
}

type mockMarkAllRead struct {
	fn func(ctx context.Context, p shared.Principal) (int64, error)
}

func (m *mockMarkAllRead) Execute(ctx context.Context, p shared.Principal) (int64, error) {
	if m.fn != nil {
		return m.fn(ctx, p)
	}
	return 0, nil
}

func newTestNotificationHandler(list *mockListNotifications, mark *mockMarkRead, markAll *mockMarkAllRead) *NotificationHandler {
	if list == nil {
		list = &mockListNotifications{}
	}
	if mark == nil {
		mark = &mockMarkRead{}
	}
	if markAll == nil {
		markAll = &mockMarkAllRead{}
	}
	return NewNotificationHandler(list, mark, markAll, logger.NewNop())
}

// =====================================================================
// ListNotifications
// =====================================================================

func TestNotificationHandler_ListNotifications_Success(t *testing.T) {
	var captured usecases.ListNotificationsQuery
	var principal shared.Principal
	list := &mockListNotifications{fn: func(_ context.Context, p shared.Principal, q usecases.ListNotificationsQuery) (*usecases.ListNotificationsResult, error) {
		captured, principal = q, p
		serviceID := uint(42)
		return &usecases.ListNotificationsResult{
			Notifications: []*usecases.NotificationDTO{
				{ID: 1, Type: "spare_part_ordered", Title: "Poručen rezervni deo", RelatedServiceID: &serviceID},
			},
			Total:    21,
			Unread:   4,
			Page:     q.Page,
			PageSize: q.PageSize,
		}, nil
	}}
	h := newTestNotificationHandler(list, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleAdmin)
	testutil.SetQueryParams(c, map[string]string{"unread_only": "true", "page_size": "10"})

	h.ListNotifications(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, captured.UnreadOnly)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 10, captured.PageSize)
	assert.Equal(t, uint(7), principal.UserID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data NotificationListResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Len(t, data.Items, 1)
	assert.Equal(t, int64(4), data.Unread)
	assert.Equal(t, 3, data.TotalPages)
}

func TestNotificationHandler_ListNotifications_EmptyIsArray(t *testing.T) {
	h := newTestNotificationHandler(nil, nil, nil)
	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleTechnician)

	h.ListNotifications(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestNotificationHandler_ListNotifications_Unauthorized(t *testing.T) {
	h := newTestNotificationHandler(nil, nil, nil)
	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)

	h.ListNotifications(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotificationHandler_ListNotifications_InternalError(t *testing.T) {
	list := &mockListNotifications{fn: func(context.Context, shared.Principal, usecases.ListNotificationsQuery) (*usecases.ListNotificationsResult, error) {
		return nil, stderrors.New("database is gone")
	}}
	h := newTestNotificationHandler(list, nil, nil)
	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleAdmin)

	h.ListNotifications(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database is gone")
}

// =====================================================================
// MarkAsRead / MarkAllAsRead
// =====================================================================

func TestNotificationHandler_MarkAsRead(t *testing.T) {
	var gotID uint
	mark := &mockMarkRead{fn: func(_ context.Context, _ shared.Principal, id uint) error {
		gotID = id
		return nil
	}}
	h := newTestNotificationHandler(nil, mark, nil)
	c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/15/read", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "15")

	h.MarkAsRead(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(15), gotID)
}

func TestNotificationHandler_MarkAsRead_OtherUsersNotification(t *testing.T) {
	mark := &mockMarkRead{fn: func(context.Context, shared.Principal, uint) error {
		return errors.NewNotFoundError("notification not found")
	}}
	h := newTestNotificationHandler(nil, mark, nil)
	c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/15/read", nil)
	testutil.SetAuthContext(c, 8, authorization.RoleTechnician)
	testutil.SetURLParam(c, "id", "15")

	h.MarkAsRead(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationHandler_MarkAsRead_InvalidID(t *testing.T) {
	h := newTestNotificationHandler(nil, nil, nil)
	c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/x/read", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "x")

	h.MarkAsRead(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_MarkAllAsRead(t *testing.T) {
	markAll := &mockMarkAllRead{fn: func(_ context.Context, p shared.Principal) (int64, error) {
		assert.Equal(t, uint(7), p.UserID)
		return 5, nil
	}}
	h := newTestNotificationHandler(nil, nil, markAll)
	c, w := testutil.NewTestContext(http.MethodPost, "/notifications/read-all", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleSupplier)

	h.MarkAllAsRead(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":5`)
}
