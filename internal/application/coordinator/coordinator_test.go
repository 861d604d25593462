package coordinator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/application/testutil"
	notificationvo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	"github.com/frigoservis/servis/internal/domain/service"
	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	sparepartvo "github.com/frigoservis/servis/internal/domain/sparepart/valueobjects"
	apperrors "github.com/frigoservis/servis/internal/shared/errors"
)

func newCoordinator(fx *testutil.Fixture) *Coordinator {
	return New(Deps{
		TxManager:        fx.Tx,
		ServiceRepo:      fx.Services,
		HistoryRepo:      fx.History,
		OrderRepo:        fx.Orders,
		RemovedPartRepo:  fx.RemovedParts,
		ClientRepo:       fx.Clients,
		ApplianceRepo:    fx.Appliances,
		UserRepo:         fx.Users,
		NotificationRepo: fx.Notifications,
		OutboxRepo:       fx.Outbox,
		Planner:          fx.Planner,
		Dispatcher:       fx.Dispatcher,
		Logger:           fx.Logger,
	})
}

func TestCoordinator_Run_PartOrderedMovesToWaitingParts(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)
	c := newCoordinator(fx)

	out, warnings, err := c.Run(t.Context(), fx.TechnicianPrincipal(), svc.ID(),
		service.Event{Kind: service.EventPartOrdered}, Trigger{PartName: "Kompresor"})

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, vo.StatusInProgress, out.Decision.From)
	assert.Equal(t, vo.StatusWaitingParts, out.Decision.To)
	assert.Equal(t, vo.StatusWaitingParts, fx.Status(t, svc.ID()))
	assert.Equal(t, 1, fx.Tx.Calls)

	require.Len(t, fx.History.Entries, 1)
	entry := fx.History.Entries[0]
	assert.Equal(t, service.EventPartOrdered, entry.Event())
	assert.Equal(t, "Kompresor", entry.Note())
	assert.Equal(t, fx.Technician.ID(), entry.ActorID())

	// The technician initiated the order, so only the admin is told.
	admin := fx.Notifications.ForRecipient(fx.Admin.ID())
	require.Len(t, admin, 1)
	assert.Equal(t, notificationvo.TypeSparePartRequested, admin[0].Type())
	assert.Empty(t, fx.Notifications.ForRecipient(fx.Technician.ID()))

	// Spare part requests are not client facing.
	assert.Empty(t, fx.Outbox.Messages)
}

func TestCoordinator_Run_PartOrderedKeepsOtherStatuses(t *testing.T) {
	for _, status := range []vo.ServiceStatus{vo.StatusPending, vo.StatusWaitingParts, vo.StatusDevicePartsRemoved} {
		t.Run(string(status), func(t *testing.T) {
			fx := testutil.NewFixture(t)
			svc := fx.SeedService(t, status)
			c := newCoordinator(fx)

			out, _, err := c.Run(t.Context(), fx.AdminPrincipal(), svc.ID(),
				service.Event{Kind: service.EventPartOrdered}, Trigger{})

			require.NoError(t, err)
			assert.False(t, out.Decision.Changed())
			assert.Equal(t, status, fx.Status(t, svc.ID()))
			assert.Zero(t, fx.Services.Updates)
			assert.Len(t, fx.History.Entries, 1)
		})
	}
}

func TestCoordinator_Run_ClosedServiceRejectsPartOrder(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusCompleted)
	c := newCoordinator(fx)

	_, _, err := c.Run(t.Context(), fx.AdminPrincipal(), svc.ID(),
		service.Event{Kind: service.EventPartOrdered}, Trigger{})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Empty(t, fx.History.Entries)
	assert.Empty(t, fx.Notifications.Items)
}

func TestCoordinator_Run_UnknownService(t *testing.T) {
	fx := testutil.NewFixture(t)
	c := newCoordinator(fx)

	_, _, err := c.Run(t.Context(), fx.AdminPrincipal(), 999,
		service.Event{Kind: service.EventPartOrdered}, Trigger{})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCoordinator_Run_PartsResolvedWaitsForLastOpenOrder(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusWaitingParts)
	c := newCoordinator(fx)
	serviceID := svc.ID()

	open, err := sparepart.NewSparePartOrder(sparepart.NewOrderParams{
		ServiceID: &serviceID, PartName: "Termostat", WarrantyStatus: "van garancije", RequestedBy: fx.Technician.ID(),
	})
	require.NoError(t, err)
	require.NoError(t, fx.Orders.Create(t.Context(), open))

	out, _, err := c.Run(t.Context(), fx.AdminPrincipal(), serviceID,
		service.Event{Kind: service.EventPartsResolved}, Trigger{OrderStatus: "delivered", PartName: "Kompresor"})
	require.NoError(t, err)
	assert.False(t, out.Decision.Changed())
	assert.Equal(t, vo.StatusWaitingParts, fx.Status(t, serviceID))
	assert.Equal(t, 1, fx.History.Entries[0].Details()["open_orders"])

	cancelled := sparepartvo.OrderStatusCancelled
	resolved, err := open.Apply(sparepart.OrderUpdate{Status: &cancelled}, out.Service.UpdatedAt())
	require.NoError(t, err)
	require.True(t, resolved)

	out, _, err = c.Run(t.Context(), fx.AdminPrincipal(), serviceID,
		service.Event{Kind: service.EventPartsResolved}, Trigger{OrderStatus: cancelled.String(), PartName: "Termostat"})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, out.Decision.To)
	assert.Equal(t, vo.StatusInProgress, fx.Status(t, serviceID))
}

func TestCoordinator_Run_DeliveredPartNotifiesClient(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusWaitingParts)
	c := newCoordinator(fx)

	_, warnings, err := c.Run(t.Context(), fx.AdminPrincipal(), svc.ID(),
		service.Event{Kind: service.EventPartsResolved}, Trigger{OrderStatus: "delivered", PartName: "Kompresor"})

	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, fx.Outbox.Messages, 1)
	msg := fx.Outbox.Messages[0]
	assert.Equal(t, notificationvo.ChannelSMS, msg.Channel())
	assert.Equal(t, notificationvo.DeliverySent, msg.Status())
	require.Len(t, fx.Sender.Sent, 1)
	assert.Contains(t, fx.Sender.Sent[0], "+381601234567")

	tech := fx.Notifications.ForRecipient(fx.Technician.ID())
	require.Len(t, tech, 1)
	assert.Equal(t, notificationvo.TypeSparePartDelivered, tech[0].Type())
}

func TestCoordinator_Run_SendFailureBecomesWarning(t *testing.T) {
	fx := testutil.NewFixture(t)
	fx.Sender.Err = errors.New("gateway timeout")
	svc := fx.SeedService(t, vo.StatusWaitingParts)
	c := newCoordinator(fx)

	out, warnings, err := c.Run(t.Context(), fx.AdminPrincipal(), svc.ID(),
		service.Event{Kind: service.EventPartsResolved}, Trigger{OrderStatus: "delivered"})

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "gateway timeout")
	assert.Equal(t, vo.StatusInProgress, out.Decision.To)
	assert.Equal(t, vo.StatusInProgress, fx.Status(t, svc.ID()))
	assert.Equal(t, notificationvo.DeliveryFailed, fx.Outbox.Messages[0].Status())
}

func TestCoordinator_Run_ReturnFromWaiting(t *testing.T) {
	t.Run("open orders conflict", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		svc := fx.SeedService(t, vo.StatusWaitingParts)
		serviceID := svc.ID()
		order, err := sparepart.NewSparePartOrder(sparepart.NewOrderParams{
			ServiceID: &serviceID, PartName: "Ventil", WarrantyStatus: "u garanciji", RequestedBy: fx.Admin.ID(),
		})
		require.NoError(t, err)
		require.NoError(t, fx.Orders.Create(t.Context(), order))

		_, _, err = newCoordinator(fx).Run(t.Context(), fx.AdminPrincipal(), serviceID,
			service.Event{Kind: service.EventReturnFromWaiting}, Trigger{})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
		assert.Equal(t, vo.StatusWaitingParts, fx.Status(t, serviceID))

		out, _, err := newCoordinator(fx).Run(t.Context(), fx.AdminPrincipal(), serviceID,
			service.Event{Kind: service.EventReturnFromWaiting, Force: true}, Trigger{Note: "dogovoreno sa klijentom"})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusInProgress, out.Decision.To)
		last := fx.History.Entries[len(fx.History.Entries)-1]
		assert.Equal(t, true, last.Details()["force"])
		assert.Equal(t, "dogovoreno sa klijentom", last.Note())
	})

	t.Run("already in progress is a no-op", func(t *testing.T) {
		fx := testutil.NewFixture(t)
		svc := fx.SeedService(t, vo.StatusInProgress)

		out, _, err := newCoordinator(fx).Run(t.Context(), fx.AdminPrincipal(), svc.ID(),
			service.Event{Kind: service.EventReturnFromWaiting}, Trigger{})
		require.NoError(t, err)
		assert.False(t, out.Decision.Changed())
		assert.Zero(t, fx.Services.Updates)
	})
}

func TestCoordinator_Run_VersionConflict(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusAssigned)
	fx.Services.UpdateErr = service.ErrVersionConflict

	_, _, err := newCoordinator(fx).Run(t.Context(), fx.TechnicianPrincipal(), svc.ID(),
		service.Event{Kind: service.EventPartOrdered}, Trigger{})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
	assert.Empty(t, fx.History.Entries)
}

func TestCoordinator_Run_CompletedNotifiesClientAndAdmins(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)
	cost := 4500.0
	fixed := true

	out, _, err := newCoordinator(fx).Run(t.Context(), fx.TechnicianPrincipal(), svc.ID(),
		service.Event{Kind: service.EventCompleted, Completion: &service.Completion{
			Cost: &cost, TechnicianNotes: "Zamenjen termostat", IsCompletelyFixed: &fixed,
		}}, Trigger{})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusCompleted, out.Service.Status())
	assert.Equal(t, 4500.0, *out.Service.Cost())
	require.Len(t, fx.Outbox.Messages, 1)
	assert.Len(t, fx.Notifications.ForRecipient(fx.Admin.ID()), 1)
}

func TestCoordinator_Run_InvalidCompletion(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, vo.StatusInProgress)

	_, _, err := newCoordinator(fx).Run(t.Context(), fx.TechnicianPrincipal(), svc.ID(),
		service.Event{Kind: service.EventCompleted, Completion: &service.Completion{}}, Trigger{})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Equal(t, vo.StatusInProgress, fx.Status(t, svc.ID()))
}

func TestCoordinator_Finish_NilOutcome(t *testing.T) {
	fx := testutil.NewFixture(t)
	assert.Nil(t, newCoordinator(fx).Finish(t.Context(), nil))
}

func TestNotificationTypeFor(t *testing.T) {
	tests := []struct {
		kind    service.EventKind
		trigger Trigger
		want    notificationvo.NotificationType
	}{
		{service.EventPartOrdered, Trigger{}, notificationvo.TypeSparePartRequested},
		{service.EventPartsResolved, Trigger{OrderStatus: "delivered"}, notificationvo.TypeSparePartDelivered},
		{service.EventPartsResolved, Trigger{OrderStatus: "cancelled"}, notificationvo.TypeSparePartUpdated},
		{service.EventPartRemoved, Trigger{}, notificationvo.TypePartsRemoved},
		{service.EventPartReturned, Trigger{}, notificationvo.TypePartsReturned},
		{service.EventCompleted, Trigger{}, notificationvo.TypeServiceCompleted},
		{service.EventAppointmentReminder, Trigger{}, notificationvo.TypeAppointmentReminder},
		{service.EventStatusSet, Trigger{}, notificationvo.TypeServiceStatusChanged},
		{service.EventDelivered, Trigger{}, notificationvo.TypeServiceStatusChanged},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.trigger.OrderStatus, func(t *testing.T) {
			assert.Equal(t, tt.want, notificationTypeFor(tt.kind, tt.trigger))
		})
	}
}
