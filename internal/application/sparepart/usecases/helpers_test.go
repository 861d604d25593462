package usecases

import (
	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/application/testutil"
)

func newCoordinator(fx *testutil.Fixture) *coordinator.Coordinator {
	return coordinator.New(coordinator.Deps{
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

func newCreateUseCase(fx *testutil.Fixture) *CreateSparePartOrderUseCase {
	return NewCreateSparePartOrderUseCase(fx.Tx, fx.Orders, fx.Services, newCoordinator(fx), fx.Logger)
}

func newUpdateUseCase(fx *testutil.Fixture) *UpdateSparePartOrderUseCase {
	return NewUpdateSparePartOrderUseCase(fx.Tx, fx.Orders, newCoordinator(fx), fx.Logger)
}

func ptr[T any](v T) *T {
	return &v
}
