package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	notificationApp "github.com/frigoservis/servis/internal/application/notification"
	"github.com/frigoservis/servis/internal/domain/client"
	notificationvo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	"github.com/frigoservis/servis/internal/domain/service"
	servicevo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// Fixture wires every in-memory repository and seeds one admin, one technician,
// one business partner, a client with a phone number and one appliance.
type Fixture struct {
	Tx            *MockTxRunner
	Services      *MockServiceRepository
	History       *MockStatusHistoryRepository
	Orders        *MockSparePartOrderRepository
	RemovedParts  *MockRemovedPartRepository
	Clients       *MockClientRepository
	Appliances    *MockApplianceRepository
	Users         *MockUserRepository
	Notifications *MockNotificationRepository
	Outbox        *MockOutboundMessageRepository
	Sender        *RecordingSender
	Planner       *notificationApp.Planner
	Dispatcher    *notificationApp.Dispatcher
	Logger        logger.Interface

	Admin      *user.User
	Technician *user.User
	Partner    *user.User
	Client     *client.Client
	Appliance  *client.Appliance
}

func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	ctx := t.Context()

	fx := &Fixture{
		Tx:            &MockTxRunner{},
		Services:      NewMockServiceRepository(),
		History:       &MockStatusHistoryRepository{},
		Orders:        NewMockSparePartOrderRepository(),
		RemovedParts:  NewMockRemovedPartRepository(),
		Clients:       NewMockClientRepository(),
		Appliances:    NewMockApplianceRepository(),
		Users:         NewMockUserRepository(),
		Notifications: &MockNotificationRepository{},
		Outbox:        &MockOutboundMessageRepository{},
		Sender:        &RecordingSender{},
		Logger:        logger.NewNop(),
	}
	fx.Planner = notificationApp.NewPlanner(StaticTemplates{}, notificationApp.ChannelPolicy{
		SMS:         true,
		CompanyName: "Frigo Servis",
	})
	fx.Dispatcher = notificationApp.NewDispatcher(fx.Outbox, AllowAllGuard{}, time.Minute, fx.Logger)
	fx.Dispatcher.Register(notificationvo.ChannelSMS, fx.Sender)

	var err error
	fx.Admin, err = user.NewUser("admin", "Ana Admin", authorization.RoleAdmin, "", "admin@example.com", "hash", nil)
	require.NoError(t, err)
	require.NoError(t, fx.Users.Create(ctx, fx.Admin))

	fx.Technician, err = user.NewUser("tehnicar", "Marko Markovic", authorization.RoleTechnician, "+381641111111", "", "hash", nil)
	require.NoError(t, err)
	require.NoError(t, fx.Users.Create(ctx, fx.Technician))

	fx.Partner, err = user.NewUser("partner", "Partner Doo", authorization.RoleBusinessPartner, "", "", "hash", nil)
	require.NoError(t, err)
	require.NoError(t, fx.Users.Create(ctx, fx.Partner))

	fx.Client, err = client.NewClient("jovan jovanovic", "+381601234567", "jovan@example.com", "Bulevar 1", "Beograd")
	require.NoError(t, err)
	require.NoError(t, fx.Clients.Create(ctx, fx.Client))

	fx.Appliance, err = client.NewAppliance(fx.Client.ID(), "Frizider", "Gorenje", "RK6192", "SN-1")
	require.NoError(t, err)
	require.NoError(t, fx.Appliances.Create(ctx, fx.Appliance))

	return fx
}

// SeedService stores a service in status with the fixture technician assigned
// unless status is pending.
func (fx *Fixture) SeedService(t *testing.T, status servicevo.ServiceStatus) *service.Service {
	t.Helper()
	var techID *uint
	if status != servicevo.StatusPending {
		id := fx.Technician.ID()
		techID = &id
	}
	fx.Services.nextID++
	now := time.Now().UTC()
	svc, err := service.ReconstructService(
		fx.Services.nextID, fx.Client.ID(), fx.Appliance.ID(), techID, nil,
		status, "Ne hladi", "", nil, nil, false, 1, now, now,
	)
	require.NoError(t, err)
	require.NoError(t, fx.Services.Create(t.Context(), svc))
	return svc
}

// SeedOrder stores a pending order for serviceID without touching the
// service status.
func (fx *Fixture) SeedOrder(t *testing.T, serviceID uint, partName string) *sparepart.SparePartOrder {
	t.Helper()
	order, err := sparepart.NewSparePartOrder(sparepart.NewOrderParams{
		ServiceID:      &serviceID,
		PartName:       partName,
		WarrantyStatus: "van garancije",
		RequestedBy:    fx.Technician.ID(),
	})
	require.NoError(t, err)
	require.NoError(t, fx.Orders.Create(t.Context(), order))
	return order
}

func (fx *Fixture) AdminPrincipal() shared.Principal {
	return shared.NewPrincipal(fx.Admin.ID(), authorization.RoleAdmin, nil)
}

func (fx *Fixture) TechnicianPrincipal() shared.Principal {
	return shared.NewPrincipal(fx.Technician.ID(), authorization.RoleTechnician, nil)
}

func (fx *Fixture) PartnerPrincipal() shared.Principal {
	return shared.NewPrincipal(fx.Partner.ID(), authorization.RoleBusinessPartner, nil)
}

// Status reloads the stored status of a service.
func (fx *Fixture) Status(t *testing.T, serviceID uint) servicevo.ServiceStatus {
	t.Helper()
	svc, err := fx.Services.GetByID(t.Context(), serviceID)
	require.NoError(t, err)
	require.NotNil(t, svc)
	return svc.Status()
}
