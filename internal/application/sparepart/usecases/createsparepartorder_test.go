package usecases

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/application/testutil"
	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/authorization"
	apperrors "github.com/frigoservis/servis/internal/shared/errors"
)

func TestCreateSparePartOrder_MovesServiceToWaitingParts(t *testing.T) {
	for _, status := range []vo.ServiceStatus{vo.StatusAssigned, vo.StatusInProgress} {
		t.Run(string(status), func(t *testing.T) {
			fx := testutil.NewFixture(t)
			svc := fx.SeedService(t, status)

			result, err := newCreateUseCase(fx).Execute(t.Context(), fx.TechnicianPrincipal(), CreateSparePartOrderCommand{
				ServiceID:      ptr(svc.ID()),
				PartName:       "Pumpa za vodu",
				WarrantyStatus: "van garancije",
				Quantity:       1,
				Urgency:        "normal",
			})

			require.NoError(t, err)
			assert.NotZero(t, result.Order.ID)
			assert.Equal(t, "pending", result.Order.Status)
			assert.Equal(t, "waiting_parts", result.ServiceStatus)
			assert.Empty(t, result.Warnings)
			assert.Equal(t, vo.StatusWaitingParts, fx.Status(t, svc.ID()))
			assert.Equal(t, 1, fx.Tx.Calls)
		})
	}
}

func TestCreateSparePartOrder_Defaults(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)

	result, err := newCreateUseCase(fx).Execute(t.Context(), fx.TechnicianPrincipal(), CreateSparePartOrderCommand{
		ServiceID:      ptr(svc.ID()),
		PartName:       "  Termostat ",
		WarrantyStatus: "u garanciji",
	})

	require.NoError(t, err)
	assert.Equal(t, "Termostat", result.Order.PartName)
	assert.Equal(t, 1, result.Order.Quantity)
	assert.Equal(t, "normal", result.Order.Urgency)
	assert.Equal(t, fx.Technician.ID(), result.Order.RequestedBy)
}

func TestCreateSparePartOrder_ValidationRejectsWithoutSideEffects(t *testing.T) {
	tests := []struct {
		name  string
		cmd   CreateSparePartOrderCommand
		field string
	}{
		{"empty part name", CreateSparePartOrderCommand{PartName: "   ", WarrantyStatus: "van garancije"}, "part_name"},
		{"missing warranty", CreateSparePartOrderCommand{PartName: "Pumpa"}, "warranty_status"},
		{"unknown warranty", CreateSparePartOrderCommand{PartName: "Pumpa", WarrantyStatus: "mozda"}, "warranty_status"},
		{"negative quantity", CreateSparePartOrderCommand{PartName: "Pumpa", WarrantyStatus: "u garanciji", Quantity: -2}, "quantity"},
		{"unknown urgency", CreateSparePartOrderCommand{PartName: "Pumpa", WarrantyStatus: "u garanciji", Urgency: "asap"}, "urgency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := testutil.NewFixture(t)
			svc := fx.SeedService(t, vo.StatusInProgress)
			tt.cmd.ServiceID = ptr(svc.ID())

			_, err := newCreateUseCase(fx).Execute(t.Context(), fx.TechnicianPrincipal(), tt.cmd)

			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Zero(t, fx.Orders.Count())
			assert.Equal(t, vo.StatusInProgress, fx.Status(t, svc.ID()))
			assert.Empty(t, fx.History.Entries)
			assert.Zero(t, fx.Tx.Calls)
		})
	}
}

func TestCreateSparePartOrder_ServiceIDRules(t *testing.T) {
	t.Run("required for technician", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		_, err := newCreateUseCase(fx).Execute(t.Context(), fx.TechnicianPrincipal(), CreateSparePartOrderCommand{
			PartName: "Pumpa", WarrantyStatus: "u garanciji",
		})
		require.Error(t, err)
		assert.Equal(t, "service_id", apperrors.GetAppError(err).Field)
	})

	t.Run("required for business partner", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		_, err := newCreateUseCase(fx).Execute(t.Context(), fx.PartnerPrincipal(), CreateSparePartOrderCommand{
			PartName: "Pumpa", WarrantyStatus: "u garanciji",
		})
		require.Error(t, err)
		assert.Equal(t, "service_id", apperrors.GetAppError(err).Field)
	})

	t.Run("optional for admin", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		result, err := newCreateUseCase(fx).Execute(t.Context(), fx.AdminPrincipal(), CreateSparePartOrderCommand{
			PartName: "Filter za vodu", WarrantyStatus: "van garancije", Quantity: 10,
		})
		require.NoError(t, err)
		assert.Nil(t, result.Order.ServiceID)
		assert.Empty(t, result.ServiceStatus)
		assert.Empty(t, fx.History.Entries)
	})
}

func TestCreateSparePartOrder_ServiceChecks(t *testing.T) {
	t.Run("missing service", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		_, err := newCreateUseCase(fx).Execute(t.Context(), fx.AdminPrincipal(), CreateSparePartOrderCommand{
			ServiceID: ptr(uint(404)), PartName: "Pumpa", WarrantyStatus: "u garanciji",
		})
		assert.True(t, apperrors.IsNotFoundError(err))
		assert.Zero(t, fx.Orders.Count())
	})

	t.Run("closed service", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		svc := fx.SeedService(t, vo.StatusCompleted)
		_, err := newCreateUseCase(fx).Execute(t.Context(), fx.AdminPrincipal(), CreateSparePartOrderCommand{
			ServiceID: ptr(svc.ID()), PartName: "Pumpa", WarrantyStatus: "u garanciji",
		})
		assert.True(t, apperrors.IsValidationError(err))
		assert.Zero(t, fx.Orders.Count())
	})

	t.Run("technician not assigned", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		svc := fx.SeedService(t, vo.StatusInProgress)
		stranger := shared.NewPrincipal(99, authorization.RoleTechnician, nil)
		_, err := newCreateUseCase(fx).Execute(t.Context(), stranger, CreateSparePartOrderCommand{
			ServiceID: ptr(svc.ID()), PartName: "Pumpa", WarrantyStatus: "u garanciji",
		})
		assert.True(t, apperrors.IsForbiddenError(err))
	})

	t.Run("supplier may not request", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		supplier := shared.NewPrincipal(50, authorization.RoleSupplier, nil)
		_, err := newCreateUseCase(fx).Execute(t.Context(), supplier, CreateSparePartOrderCommand{
			PartName: "Pumpa", WarrantyStatus: "u garanciji",
		})
		assert.True(t, apperrors.IsForbiddenError(err))
	})
}

func TestCreateSparePartOrder_StoreFailureAborts(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)
	fx.Orders.CreateErr = errors.New("disk full")

	_, err := newCreateUseCase(fx).Execute(t.Context(), fx.TechnicianPrincipal(), CreateSparePartOrderCommand{
		ServiceID: ptr(svc.ID()), PartName: "Pumpa", WarrantyStatus: "u garanciji",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetAppError(err).Type)
	assert.Equal(t, vo.StatusInProgress, fx.Status(t, svc.ID()))
}

func TestCreateSparePartOrder_SecondOrderKeepsWaiting(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)
	uc := newCreateUseCase(fx)

	for _, part := range []string{"Pumpa", "Grejac"} {
		_, err := uc.Execute(t.Context(), fx.TechnicianPrincipal(), CreateSparePartOrderCommand{
			ServiceID: ptr(svc.ID()), PartName: part, WarrantyStatus: "u garanciji",
		})
		require.NoError(t, err)
	}

	assert.Equal(t, vo.StatusWaitingParts, fx.Status(t, svc.ID()))
	assert.Equal(t, 2, fx.Orders.Count())
	require.Len(t, fx.History.Entries, 2)
	assert.Equal(t, vo.StatusWaitingParts, fx.History.Entries[1].OldStatus())
	assert.Equal(t, vo.StatusWaitingParts, fx.History.Entries[1].NewStatus())
}
