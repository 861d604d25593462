// Package coordinator applies spare-part and removed-part lifecycle events to
// service tickets. A transition, its audit row and its notification fan-out
// are written in one transaction; delivery to external transports happens
// after commit and can never undo it.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	notificationApp "github.com/frigoservis/servis/internal/application/notification"
	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/notification"
	vo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	"github.com/frigoservis/servis/internal/domain/removedpart"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/shared/events"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/db"
	apperrors "github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// Trigger describes the entity that caused an event. It only feeds message text
// and the choice of notification type.
type Trigger struct {
	OrderID       *uint
	OrderStatus   string
	RemovedPartID *uint
	PartName      string
	Note          string
}

// Outcome is the committed result of Apply.
type Outcome struct {
	ServiceID uint
	Event     service.EventKind
	Decision  service.Decision
	Service   *service.Service

	messages []*notification.OutboundMessage
	event    service.StatusChangedEvent
}

// Dispatcher delivers outbox rows after commit.
type Dispatcher interface {
	Dispatch(ctx context.Context, msgs []*notification.OutboundMessage) []string
}

// Planner builds the notification fan-out of a transition.
type Planner interface {
	Plan(tr notificationApp.Transition) (*notificationApp.Plan, error)
}

type Coordinator struct {
	txMgr            db.TxRunner
	serviceRepo      service.ServiceRepository
	historyRepo      service.StatusHistoryRepository
	orderRepo        sparepart.SparePartOrderRepository
	removedPartRepo  removedpart.RemovedPartRepository
	clientRepo       client.ClientRepository
	applianceRepo    client.ApplianceRepository
	userRepo         user.UserRepository
	notificationRepo notification.NotificationRepository
	outboxRepo       notification.OutboundMessageRepository
	planner          Planner
	dispatcher       Dispatcher
	publisher        events.EventPublisher
	logger           logger.Interface
	now              func() time.Time
}

type Deps struct {
	TxManager        db.TxRunner
	ServiceRepo      service.ServiceRepository
	HistoryRepo      service.StatusHistoryRepository
	OrderRepo        sparepart.SparePartOrderRepository
	RemovedPartRepo  removedpart.RemovedPartRepository
	ClientRepo       client.ClientRepository
	ApplianceRepo    client.ApplianceRepository
	UserRepo         user.UserRepository
	NotificationRepo notification.NotificationRepository
	OutboxRepo       notification.OutboundMessageRepository
	Planner          Planner
	Dispatcher       Dispatcher
	Publisher        events.EventPublisher
	Logger           logger.Interface
}

func New(d Deps) *Coordinator {
	publisher := d.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Coordinator{
		txMgr:            d.TxManager,
		serviceRepo:      d.ServiceRepo,
		historyRepo:      d.HistoryRepo,
		orderRepo:        d.OrderRepo,
		removedPartRepo:  d.RemovedPartRepo,
		clientRepo:       d.ClientRepo,
		applianceRepo:    d.ApplianceRepo,
		userRepo:         d.UserRepo,
		notificationRepo: d.NotificationRepo,
		outboxRepo:       d.OutboxRepo,
		planner:          d.Planner,
		dispatcher:       d.Dispatcher,
		publisher:        publisher,
		logger:           d.Logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Apply decides and persists ev for the service. It must run inside the
// caller's transaction so the triggering write and the transition commit together.
func (c *Coordinator) Apply(ctx context.Context, p shared.Principal, serviceID uint, ev service.Event, trigger Trigger) (*Outcome, error) {
	svc, err := c.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		c.logger.Errorw("failed to load service", "service_id", serviceID, "error", err)
		return nil, apperrors.NewInternalError("failed to load service")
	}
	if svc == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service %d not found", serviceID))
	}

	if err := c.fillCounts(ctx, serviceID, &ev); err != nil {
		return nil, err
	}

	before := svc.Version()
	now := c.now()
	decision, err := svc.Transition(ev, now)
	if err != nil {
		c.logger.Warnw("service transition rejected",
			"service_id", serviceID,
			"event", ev.Kind,
			"status", svc.Status(),
			"error", err)
		return nil, mapTransitionError(err)
	}

	if svc.Version() != before {
		if err := c.serviceRepo.Update(ctx, svc); err != nil {
			if errors.Is(err, service.ErrVersionConflict) {
				return nil, apperrors.NewConflictError("service was modified by another request, reload and retry")
			}
			c.logger.Errorw("failed to update service status", "service_id", serviceID, "error", err)
			return nil, apperrors.NewInternalError("failed to update service")
		}
	}

	note := trigger.Note
	if note == "" {
		note = trigger.PartName
	}
	entry := service.NewStatusHistory(serviceID, decision, ev.Kind, p.UserID, note, now).
		WithDetails(historyDetails(ev, trigger))
	if err := c.historyRepo.Create(ctx, entry); err != nil {
		c.logger.Errorw("failed to write status history", "service_id", serviceID, "error", err)
		return nil, apperrors.NewInternalError("failed to record status history")
	}

	plan, err := c.plan(ctx, p, svc, ev, decision, trigger)
	if err != nil {
		return nil, err
	}
	if len(plan.Notifications) > 0 {
		if err := c.notificationRepo.BulkCreate(ctx, plan.Notifications); err != nil {
			c.logger.Errorw("failed to store notifications", "service_id", serviceID, "error", err)
			return nil, apperrors.NewInternalError("failed to store notifications")
		}
	}
	if len(plan.Messages) > 0 {
		if err := c.outboxRepo.BulkCreate(ctx, plan.Messages); err != nil {
			c.logger.Errorw("failed to queue outbound messages", "service_id", serviceID, "error", err)
			return nil, apperrors.NewInternalError("failed to queue outbound messages")
		}
	}

	c.logger.Infow("service event applied",
		"service_id", serviceID,
		"event", ev.Kind,
		"old_status", decision.From,
		"new_status", decision.To,
		"actor_id", p.UserID,
		"notifications", len(plan.Notifications),
		"outbound_messages", len(plan.Messages))

	return &Outcome{
		ServiceID: serviceID,
		Event:     ev.Kind,
		Decision:  decision,
		Service:   svc,
		messages:  plan.Messages,
		event: service.NewStatusChangedEvent(
			serviceID, ev.Kind, decision.From, decision.To,
			p.UserID, p.Role.String(), note, now,
		),
	}, nil
}

// Finish runs the post-commit side effects of out and returns the delivery
// warnings to show the caller. It never fails.
func (c *Coordinator) Finish(ctx context.Context, out *Outcome) []string {
	if out == nil {
		return nil
	}
	var warnings []string
	if len(out.messages) > 0 && c.dispatcher != nil {
		warnings = c.dispatcher.Dispatch(ctx, out.messages)
	}
	if err := c.publisher.Publish(ctx, out.event); err != nil {
		c.logger.Warnw("failed to publish status change", "service_id", out.ServiceID, "error", err)
	}
	return warnings
}

// Run applies a standalone event in its own transaction and finishes it.
func (c *Coordinator) Run(ctx context.Context, p shared.Principal, serviceID uint, ev service.Event, trigger Trigger) (*Outcome, []string, error) {
	var out *Outcome
	err := c.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		out, err = c.Apply(txCtx, p, serviceID, ev, trigger)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return out, c.Finish(ctx, out), nil
}

func (c *Coordinator) fillCounts(ctx context.Context, serviceID uint, ev *service.Event) error {
	switch ev.Kind {
	case service.EventPartsResolved, service.EventReturnFromWaiting:
		open, err := c.orderRepo.CountOpenByServiceID(ctx, serviceID)
		if err != nil {
			c.logger.Errorw("failed to count open orders", "service_id", serviceID, "error", err)
			return apperrors.NewInternalError("failed to count open spare part orders")
		}
		ev.OpenOrders = open
	case service.EventPartReturned:
		out, err := c.removedPartRepo.CountOutByServiceID(ctx, serviceID)
		if err != nil {
			c.logger.Errorw("failed to count removed parts", "service_id", serviceID, "error", err)
			return apperrors.NewInternalError("failed to count removed parts")
		}
		ev.PartsOut = out
		if out > 0 {
			return nil
		}
		open, err := c.orderRepo.CountOpenByServiceID(ctx, serviceID)
		if err != nil {
			c.logger.Errorw("failed to count open orders", "service_id", serviceID, "error", err)
			return apperrors.NewInternalError("failed to count open spare part orders")
		}
		ev.OpenOrders = open
	}
	return nil
}

func (c *Coordinator) plan(
	ctx context.Context,
	p shared.Principal,
	svc *service.Service,
	ev service.Event,
	d service.Decision,
	trigger Trigger,
) (*notificationApp.Plan, error) {
	tr := notificationApp.Transition{
		Type:         notificationTypeFor(ev.Kind, trigger),
		ServiceID:    svc.ID(),
		OldStatus:    d.From.String(),
		NewStatus:    d.To.String(),
		TechnicianID: svc.TechnicianID(),
		PartName:     trigger.PartName,
		Cost:         svc.Cost(),
		InitiatorID:  p.UserID,
	}

	admins, err := c.userRepo.ListActiveByRole(ctx, authorization.RoleAdmin)
	if err != nil {
		c.logger.Errorw("failed to list administrators", "error", err)
		return nil, apperrors.NewInternalError("failed to resolve notification recipients")
	}
	for _, a := range admins {
		tr.AdminIDs = append(tr.AdminIDs, a.ID())
	}

	if cl, err := c.clientRepo.GetByID(ctx, svc.ClientID()); err != nil {
		return nil, apperrors.NewInternalError("failed to load client")
	} else if cl != nil {
		tr.ClientName = cl.FullName()
		tr.ClientPhone = cl.Phone()
		tr.ClientEmail = cl.Email()
	}

	if ap, err := c.applianceRepo.GetByID(ctx, svc.ApplianceID()); err != nil {
		return nil, apperrors.NewInternalError("failed to load appliance")
	} else if ap != nil {
		tr.DeviceType = ap.Label()
	}

	if techID := svc.TechnicianID(); techID != nil {
		tech, err := c.userRepo.GetByID(ctx, *techID)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to load technician")
		}
		if tech != nil {
			tr.TechnicianName = tech.FullName()
		}
	}

	plan, err := c.planner.Plan(tr)
	if err != nil {
		c.logger.Errorw("failed to plan notifications", "service_id", svc.ID(), "type", tr.Type, "error", err)
		return nil, apperrors.NewInternalError("failed to plan notifications")
	}
	return plan, nil
}

func notificationTypeFor(kind service.EventKind, trigger Trigger) vo.NotificationType {
	switch kind {
	case service.EventPartOrdered:
		return vo.TypeSparePartRequested
	case service.EventPartsResolved:
		if trigger.OrderStatus == "delivered" {
			return vo.TypeSparePartDelivered
		}
		return vo.TypeSparePartUpdated
	case service.EventPartRemoved:
		return vo.TypePartsRemoved
	case service.EventPartReturned:
		return vo.TypePartsReturned
	case service.EventCompleted:
		return vo.TypeServiceCompleted
	case service.EventAppointmentReminder:
		return vo.TypeAppointmentReminder
	default:
		return vo.TypeServiceStatusChanged
	}
}

func historyDetails(ev service.Event, trigger Trigger) map[string]any {
	details := map[string]any{}
	switch ev.Kind {
	case service.EventPartsResolved, service.EventReturnFromWaiting:
		details["open_orders"] = ev.OpenOrders
	case service.EventPartReturned:
		details["parts_out"] = ev.PartsOut
		if ev.PartsOut == 0 {
			details["open_orders"] = ev.OpenOrders
		}
	case service.EventAssigned:
		details["technician_id"] = ev.TechnicianID
	}
	if ev.Force {
		details["force"] = true
	}
	if trigger.OrderID != nil {
		details["order_id"] = *trigger.OrderID
	}
	if trigger.OrderStatus != "" {
		details["order_status"] = trigger.OrderStatus
	}
	if trigger.RemovedPartID != nil {
		details["removed_part_id"] = *trigger.RemovedPartID
	}
	return details
}

func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, service.ErrOpenOrders):
		return apperrors.NewConflictError("service still has open spare part orders", err.Error())
	case errors.Is(err, service.ErrServiceClosed):
		return apperrors.NewValidationError("service is closed for work", err.Error())
	case errors.Is(err, service.ErrInvalidCompletion):
		return apperrors.NewValidationError("invalid completion data", err.Error())
	default:
		return apperrors.NewValidationError("invalid status transition", err.Error())
	}
}
