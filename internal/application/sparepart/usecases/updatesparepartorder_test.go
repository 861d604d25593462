package usecases

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/application/testutil"
	notificationvo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/authorization"
	apperrors "github.com/frigoservis/servis/internal/shared/errors"
)

func orderFor(t *testing.T, fx *testutil.Fixture, serviceID uint, part string) uint {
	t.Helper()
	result, err := newCreateUseCase(fx).Execute(t.Context(), fx.TechnicianPrincipal(), CreateSparePartOrderCommand{
		ServiceID: ptr(serviceID), PartName: part, WarrantyStatus: "van garancije",
	})
	require.NoError(t, err)
	return result.Order.ID
}

func TestUpdateSparePartOrder_DeliveredReturnsServiceToInProgress(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)
	orderID := orderFor(t, fx, svc.ID(), "Pumpa za vodu")
	require.Equal(t, vo.StatusWaitingParts, fx.Status(t, svc.ID()))

	delivery := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	result, err := newUpdateUseCase(fx).Execute(t.Context(), fx.AdminPrincipal(), UpdateSparePartOrderCommand{
		OrderID:           orderID,
		Status:            ptr("delivered"),
		SupplierName:      ptr("Frigo Delovi"),
		EstimatedCost:     ptr(3200.0),
		EstimatedDelivery: &delivery,
	})

	require.NoError(t, err)
	assert.Equal(t, "delivered", result.Order.Status)
	assert.Equal(t, "Frigo Delovi", result.Order.SupplierName)
	assert.Equal(t, "in_progress", result.ServiceStatus)
	assert.Equal(t, vo.StatusInProgress, fx.Status(t, svc.ID()))

	// Delivered parts are client facing.
	require.Len(t, fx.Sender.Sent, 1)
	assert.Contains(t, fx.Sender.Sent[0], fx.Client.Phone())
	tech := fx.Notifications.ForRecipient(fx.Technician.ID())
	require.NotEmpty(t, tech)
	assert.Equal(t, notificationvo.TypeSparePartDelivered, tech[len(tech)-1].Type())
}

func TestUpdateSparePartOrder_OtherOpenOrderKeepsWaiting(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)
	first := orderFor(t, fx, svc.ID(), "Pumpa")
	second := orderFor(t, fx, svc.ID(), "Grejac")
	uc := newUpdateUseCase(fx)

	result, err := uc.Execute(t.Context(), fx.AdminPrincipal(), UpdateSparePartOrderCommand{OrderID: first, Status: ptr("delivered")})
	require.NoError(t, err)
	assert.Equal(t, "waiting_parts", result.ServiceStatus)

	result, err = uc.Execute(t.Context(), fx.AdminPrincipal(), UpdateSparePartOrderCommand{OrderID: second, Status: ptr("cancelled")})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", result.ServiceStatus)
	assert.Equal(t, vo.StatusInProgress, fx.Status(t, svc.ID()))
}

func TestUpdateSparePartOrder_OrderedDoesNotTouchService(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)
	orderID := orderFor(t, fx, svc.ID(), "Pumpa")
	historyBefore := len(fx.History.Entries)

	supplier := shared.NewPrincipal(60, authorization.RoleSupplier, nil)
	result, err := newUpdateUseCase(fx).Execute(t.Context(), supplier, UpdateSparePartOrderCommand{
		OrderID: orderID, Status: ptr("ordered"), Notes: ptr("stize u petak"),
	})

	require.NoError(t, err)
	assert.Equal(t, "ordered", result.Order.Status)
	assert.Equal(t, "stize u petak", result.Order.Notes)
	assert.Empty(t, result.ServiceStatus)
	assert.Len(t, fx.History.Entries, historyBefore)
	assert.Equal(t, vo.StatusWaitingParts, fx.Status(t, svc.ID()))
}

func TestUpdateSparePartOrder_Rejections(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)
	orderID := orderFor(t, fx, svc.ID(), "Pumpa")
	uc := newUpdateUseCase(fx)

	_, err := uc.Execute(t.Context(), fx.TechnicianPrincipal(), UpdateSparePartOrderCommand{OrderID: orderID, Status: ptr("delivered")})
	assert.True(t, apperrors.IsForbiddenError(err))

	_, err = uc.Execute(t.Context(), fx.AdminPrincipal(), UpdateSparePartOrderCommand{OrderID: 999, Status: ptr("delivered")})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = uc.Execute(t.Context(), fx.AdminPrincipal(), UpdateSparePartOrderCommand{OrderID: orderID, Status: ptr("lost")})
	require.Error(t, err)
	assert.Equal(t, "status", apperrors.GetAppError(err).Field)

	_, err = uc.Execute(t.Context(), fx.AdminPrincipal(), UpdateSparePartOrderCommand{OrderID: orderID, EstimatedCost: ptr(-1.0)})
	require.Error(t, err)
	assert.Equal(t, "estimated_cost", apperrors.GetAppError(err).Field)

	_, err = uc.Execute(t.Context(), fx.AdminPrincipal(), UpdateSparePartOrderCommand{OrderID: orderID, Status: ptr("cancelled")})
	require.NoError(t, err)
	_, err = uc.Execute(t.Context(), fx.AdminPrincipal(), UpdateSparePartOrderCommand{OrderID: orderID, Status: ptr("pending")})
	require.Error(t, err)
	assert.Equal(t, "status", apperrors.GetAppError(err).Field)
}

func TestUpdateSparePartOrder_TransportFailureIsWarning(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)
	orderID := orderFor(t, fx, svc.ID(), "Pumpa")
	fx.Sender.Err = errors.New("sms gateway timeout")

	result, err := newUpdateUseCase(fx).Execute(t.Context(), fx.AdminPrincipal(), UpdateSparePartOrderCommand{
		OrderID: orderID, Status: ptr("delivered"),
	})

	require.NoError(t, err)
	assert.Equal(t, "delivered", result.Order.Status)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "sms gateway timeout")
	assert.Equal(t, vo.StatusInProgress, fx.Status(t, svc.ID()))
}
