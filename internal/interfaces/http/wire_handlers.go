package http

import (
	"github.com/frigoservis/servis/internal/interfaces/http/handlers"
	clientHandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/client"
	removedPartHandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/removedpart"
	serviceHandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/service"
	sparePartHandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/sparepart"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// User & Auth
	authHandler *handlers.AuthHandler
	userHandler *handlers.UserHandler

	// Service tickets and parts
	serviceHandler     *serviceHandlers.Handler
	sparePartHandler   *sparePartHandlers.Handler
	removedPartHandler *removedPartHandlers.Handler

	// Registries
	clientHandler *clientHandlers.Handler

	// Notifications
	notificationHandler *handlers.NotificationHandler
}

// ============================================================
// Section 4: Handlers
// ============================================================

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(u.loginUC, log),
		userHandler: handlers.NewUserHandler(u.createUserUC, log),

		serviceHandler: serviceHandlers.NewHandler(serviceHandlers.UseCases{
			Create:            u.createServiceUC,
			Get:               u.getServiceUC,
			List:              u.listServicesUC,
			History:           u.serviceHistoryUC,
			Delete:            u.deleteServiceUC,
			Export:            u.exportServicesUC,
			Assign:            u.assignTechnicianUC,
			ChangeStatus:      u.changeStatusUC,
			Complete:          u.completeServiceUC,
			Deliver:           u.deliverServiceUC,
			ReturnFromWaiting: u.returnFromWaitingUC,
			Remind:            u.sendReminderUC,
		}, log),
		sparePartHandler: sparePartHandlers.NewHandler(
			u.createOrderUC,
			u.getOrderUC,
			u.listOrdersUC,
			u.listServiceOrdersUC,
			u.updateOrderUC,
			u.exportOrdersUC,
			log,
		),
		removedPartHandler: removedPartHandlers.NewHandler(
			u.createRemovedPartUC,
			u.returnRemovedPartUC,
			u.markPartsRemovedUC,
			u.listRemovedPartsUC,
			log,
		),

		clientHandler: clientHandlers.NewHandler(
			u.createClientUC,
			u.getClientUC,
			u.listClientsUC,
			u.addApplianceUC,
			u.listAppliancesUC,
			log,
		),

		notificationHandler: handlers.NewNotificationHandler(
			u.listNotificationsUC,
			u.markNotificationUC,
			u.markAllNotificationUC,
			log,
		),
	}
}
