package http

import (
	clientUsecases "github.com/frigoservis/servis/internal/application/client/usecases"
	notificationUsecases "github.com/frigoservis/servis/internal/application/notification/usecases"
	removedPartUsecases "github.com/frigoservis/servis/internal/application/removedpart/usecases"
	reportUsecases "github.com/frigoservis/servis/internal/application/report/usecases"
	serviceUsecases "github.com/frigoservis/servis/internal/application/service/usecases"
	sparePartUsecases "github.com/frigoservis/servis/internal/application/sparepart/usecases"
	userUsecases "github.com/frigoservis/servis/internal/application/user/usecases"
	"github.com/frigoservis/servis/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the HTTP handlers.
type allUseCases struct {
	// Spare parts
	createOrderUC       *sparePartUsecases.CreateSparePartOrderUseCase
	getOrderUC          *sparePartUsecases.GetSparePartOrderUseCase
	listOrdersUC        *sparePartUsecases.ListSparePartOrdersUseCase
	listServiceOrdersUC *sparePartUsecases.ListServiceSparePartOrdersUseCase
	updateOrderUC       *sparePartUsecases.UpdateSparePartOrderUseCase
	exportOrdersUC      *sparePartUsecases.ExportSparePartOrdersUseCase

	// Removed parts
	createRemovedPartUC *removedPartUsecases.CreateRemovedPartUseCase
	returnRemovedPartUC *removedPartUsecases.ReturnRemovedPartUseCase
	markPartsRemovedUC  *removedPartUsecases.MarkPartsRemovedUseCase
	listRemovedPartsUC  *removedPartUsecases.ListRemovedPartsUseCase

	// Services
	createServiceUC     *serviceUsecases.CreateServiceUseCase
	getServiceUC        *serviceUsecases.GetServiceUseCase
	listServicesUC      *serviceUsecases.ListServicesUseCase
	serviceHistoryUC    *serviceUsecases.GetServiceHistoryUseCase
	deleteServiceUC     *serviceUsecases.DeleteServiceUseCase
	exportServicesUC    *serviceUsecases.ExportServicesUseCase
	assignTechnicianUC  *serviceUsecases.AssignTechnicianUseCase
	changeStatusUC      *serviceUsecases.ChangeServiceStatusUseCase
	completeServiceUC   *serviceUsecases.CompleteServiceUseCase
	deliverServiceUC    *serviceUsecases.DeliverServiceUseCase
	returnFromWaitingUC *serviceUsecases.ReturnFromWaitingUseCase
	sendReminderUC      *serviceUsecases.SendReminderUseCase

	// Clients
	createClientUC   *clientUsecases.CreateClientUseCase
	getClientUC      *clientUsecases.GetClientUseCase
	listClientsUC    *clientUsecases.ListClientsUseCase
	addApplianceUC   *clientUsecases.AddApplianceUseCase
	listAppliancesUC *clientUsecases.ListAppliancesUseCase

	// Users
	loginUC      *userUsecases.LoginUseCase
	createUserUC *userUsecases.CreateUserUseCase

	// Notifications
	listNotificationsUC   *notificationUsecases.ListNotificationsUseCase
	markNotificationUC    *notificationUsecases.MarkNotificationReadUseCase
	markAllNotificationUC *notificationUsecases.MarkAllNotificationsReadUseCase

	// Reports
	dailyReportUC *reportUsecases.SendDailyReportUseCase
}

// ============================================================
// Section 3: Use cases
// ============================================================

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log
	coord := c.coordinator

	c.ucs = &allUseCases{
		createOrderUC:       sparePartUsecases.NewCreateSparePartOrderUseCase(c.txMgr, r.orderRepo, r.serviceRepo, coord, log),
		getOrderUC:          sparePartUsecases.NewGetSparePartOrderUseCase(r.orderRepo, r.serviceRepo, log),
		listOrdersUC:        sparePartUsecases.NewListSparePartOrdersUseCase(r.orderRepo, log),
		listServiceOrdersUC: sparePartUsecases.NewListServiceSparePartOrdersUseCase(r.orderRepo, r.serviceRepo, log),
		updateOrderUC:       sparePartUsecases.NewUpdateSparePartOrderUseCase(c.txMgr, r.orderRepo, coord, log),
		exportOrdersUC:      sparePartUsecases.NewExportSparePartOrdersUseCase(r.orderRepo, c.sheetWriter, log),

		createRemovedPartUC: removedPartUsecases.NewCreateRemovedPartUseCase(c.txMgr, r.removedPartRepo, r.serviceRepo, coord, log),
		returnRemovedPartUC: removedPartUsecases.NewReturnRemovedPartUseCase(c.txMgr, r.removedPartRepo, r.serviceRepo, coord, log),
		markPartsRemovedUC:  removedPartUsecases.NewMarkPartsRemovedUseCase(c.txMgr, r.removedPartRepo, r.serviceRepo, coord, log),
		listRemovedPartsUC:  removedPartUsecases.NewListRemovedPartsUseCase(r.removedPartRepo, r.serviceRepo, log),

		createServiceUC:     serviceUsecases.NewCreateServiceUseCase(r.serviceRepo, r.clientRepo, r.applianceRepo, log),
		getServiceUC:        serviceUsecases.NewGetServiceUseCase(r.serviceRepo, r.clientRepo, r.applianceRepo, log),
		listServicesUC:      serviceUsecases.NewListServicesUseCase(r.serviceRepo, log),
		serviceHistoryUC:    serviceUsecases.NewGetServiceHistoryUseCase(r.serviceRepo, r.historyRepo, log),
		deleteServiceUC:     serviceUsecases.NewDeleteServiceUseCase(c.txMgr, r.serviceRepo, r.orderRepo, r.removedPartRepo, log),
		exportServicesUC:    serviceUsecases.NewExportServicesUseCase(r.serviceRepo, r.clientRepo, r.applianceRepo, c.sheetWriter, log),
		assignTechnicianUC:  serviceUsecases.NewAssignTechnicianUseCase(r.serviceRepo, r.userRepo, coord, log),
		changeStatusUC:      serviceUsecases.NewChangeServiceStatusUseCase(r.serviceRepo, coord, log),
		completeServiceUC:   serviceUsecases.NewCompleteServiceUseCase(r.serviceRepo, coord, log),
		deliverServiceUC:    serviceUsecases.NewDeliverServiceUseCase(r.serviceRepo, coord, log),
		returnFromWaitingUC: serviceUsecases.NewReturnFromWaitingUseCase(r.serviceRepo, coord, log),
		sendReminderUC:      serviceUsecases.NewSendReminderUseCase(r.serviceRepo, coord, log),

		createClientUC:   clientUsecases.NewCreateClientUseCase(r.clientRepo, log),
		getClientUC:      clientUsecases.NewGetClientUseCase(r.clientRepo, log),
		listClientsUC:    clientUsecases.NewListClientsUseCase(r.clientRepo, log),
		addApplianceUC:   clientUsecases.NewAddApplianceUseCase(r.clientRepo, r.applianceRepo, log),
		listAppliancesUC: clientUsecases.NewListAppliancesUseCase(r.clientRepo, r.applianceRepo, log),

		loginUC:      userUsecases.NewLoginUseCase(r.userRepo, c.hasher, c.jwtSvc, log),
		createUserUC: userUsecases.NewCreateUserUseCase(r.userRepo, r.clientRepo, c.hasher, log),

		listNotificationsUC:   notificationUsecases.NewListNotificationsUseCase(r.notificationRepo, log),
		markNotificationUC:    notificationUsecases.NewMarkNotificationReadUseCase(r.notificationRepo, log),
		markAllNotificationUC: notificationUsecases.NewMarkAllNotificationsReadUseCase(r.notificationRepo, log),

		dailyReportUC: reportUsecases.NewSendDailyReportUseCase(
			r.serviceRepo, r.orderRepo, markdown.NewMarkdownService(), c.mailer, c.cfg.Report.Recipients, log),
	}
}
