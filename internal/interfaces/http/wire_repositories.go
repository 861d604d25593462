package http

import (
	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/notification"
	"github.com/frigoservis/servis/internal/domain/removedpart"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo         user.UserRepository
	clientRepo       client.ClientRepository
	applianceRepo    client.ApplianceRepository
	serviceRepo      service.ServiceRepository
	historyRepo      service.StatusHistoryRepository
	orderRepo        sparepart.SparePartOrderRepository
	removedPartRepo  removedpart.RemovedPartRepository
	notificationRepo notification.NotificationRepository
	outboxRepo       notification.OutboundMessageRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db),
		clientRepo:       repository.NewClientRepository(db),
		applianceRepo:    repository.NewApplianceRepository(db),
		serviceRepo:      repository.NewServiceRepository(db),
		historyRepo:      repository.NewStatusHistoryRepository(db),
		orderRepo:        repository.NewSparePartOrderRepository(db),
		removedPartRepo:  repository.NewRemovedPartRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		outboxRepo:       repository.NewOutboundMessageRepository(db),
	}
}
