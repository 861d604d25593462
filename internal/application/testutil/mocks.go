// Package testutil provides in-memory repositories for testing the application layer.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	notificationApp "github.com/frigoservis/servis/internal/application/notification"
	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/notification"
	notificationvo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	"github.com/frigoservis/servis/internal/domain/removedpart"
	"github.com/frigoservis/servis/internal/domain/service"
	servicevo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/shared/authorization"
)

// MockTxRunner runs fn directly and counts calls. A non-nil Err is returned
// instead of running fn.
type MockTxRunner struct {
	Calls int
	Err   error
}

func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

// MockServiceRepository keeps services in memory and enforces the version guard.
type MockServiceRepository struct {
	mu       sync.Mutex
	services map[uint]*service.Service
	versions map[uint]int
	nextID   uint

	GetErr    error
	UpdateErr error
	Updates   int
}

func NewMockServiceRepository() *MockServiceRepository {
	return &MockServiceRepository{
		services: make(map[uint]*service.Service),
		versions: make(map[uint]int),
	}
}

func (m *MockServiceRepository) Create(ctx context.Context, svc *service.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if svc.ID() == 0 {
		m.nextID++
		if err := svc.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.services[svc.ID()] = svc
	m.versions[svc.ID()] = svc.Version()
	return nil
}

func (m *MockServiceRepository) Update(ctx context.Context, svc *service.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	stored, ok := m.versions[svc.ID()]
	if !ok || stored != svc.Version()-1 {
		return service.ErrVersionConflict
	}
	m.services[svc.ID()] = svc
	m.versions[svc.ID()] = svc.Version()
	m.Updates++
	return nil
}

func (m *MockServiceRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.services, id)
	delete(m.versions, id)
	return nil
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id uint) (*service.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.services[id], nil
}

func (m *MockServiceRepository) List(ctx context.Context, filter service.ServiceFilter) ([]*service.Service, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*service.Service
	for _, svc := range m.services {
		if filter.Status != nil && svc.Status() != *filter.Status {
			continue
		}
		if filter.TechnicianID != nil && !svc.IsAssignedTo(*filter.TechnicianID) {
			continue
		}
		if filter.BusinessPartnerID != nil && !svc.IsPartnerService(*filter.BusinessPartnerID) {
			continue
		}
		if filter.ClientID != nil && svc.ClientID() != *filter.ClientID {
			continue
		}
		if !inRange(svc.CreatedAt(), filter.CreatedFrom, filter.CreatedTo) {
			continue
		}
		if filter.CompletedFrom != nil || filter.CompletedTo != nil {
			if svc.CompletedDate() == nil || !inRange(*svc.CompletedDate(), filter.CompletedFrom, filter.CompletedTo) {
				continue
			}
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, int64(len(out)), nil
}

func (m *MockServiceRepository) CountByStatus(ctx context.Context, status servicevo.ServiceStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, svc := range m.services {
		if svc.Status() == status {
			n++
		}
	}
	return n, nil
}

// MockStatusHistoryRepository records history rows in insertion order.
type MockStatusHistoryRepository struct {
	mu      sync.Mutex
	Entries []*service.StatusHistory
}

func (m *MockStatusHistoryRepository) Create(ctx context.Context, entry *service.StatusHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.SetID(uint(len(m.Entries) + 1))
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *MockStatusHistoryRepository) ListByServiceID(ctx context.Context, serviceID uint) ([]*service.StatusHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*service.StatusHistory
	for _, e := range m.Entries {
		if e.ServiceID() == serviceID {
			out = append(out, e)
		}
	}
	return out, nil
}

// MockSparePartOrderRepository keeps orders in memory.
type MockSparePartOrderRepository struct {
	mu     sync.Mutex
	orders map[uint]*sparepart.SparePartOrder
	nextID uint

	CreateErr error
}

func NewMockSparePartOrderRepository() *MockSparePartOrderRepository {
	return &MockSparePartOrderRepository{orders: make(map[uint]*sparepart.SparePartOrder)}
}

func (m *MockSparePartOrderRepository) Create(ctx context.Context, order *sparepart.SparePartOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.nextID++
	if err := order.SetID(m.nextID); err != nil {
		return err
	}
	m.orders[order.ID()] = order
	return nil
}

func (m *MockSparePartOrderRepository) Update(ctx context.Context, order *sparepart.SparePartOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID()] = order
	return nil
}

func (m *MockSparePartOrderRepository) GetByID(ctx context.Context, id uint) (*sparepart.SparePartOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id], nil
}

func (m *MockSparePartOrderRepository) List(ctx context.Context, filter sparepart.OrderFilter) ([]*sparepart.SparePartOrder, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*sparepart.SparePartOrder
	for _, o := range m.orders {
		if filter.Status != nil && o.Status() != *filter.Status {
			continue
		}
		if filter.Urgency != nil && o.Urgency() != *filter.Urgency {
			continue
		}
		if filter.ServiceID != nil && (o.ServiceID() == nil || *o.ServiceID() != *filter.ServiceID) {
			continue
		}
		if !inRange(o.CreatedAt(), filter.CreatedFrom, filter.CreatedTo) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() > out[j].ID() })
	return out, int64(len(out)), nil
}

func (m *MockSparePartOrderRepository) ListByServiceID(ctx context.Context, serviceID uint) ([]*sparepart.SparePartOrder, error) {
	orders, _, err := m.List(ctx, sparepart.OrderFilter{ServiceID: &serviceID})
	return orders, err
}

func (m *MockSparePartOrderRepository) CountOpenByServiceID(ctx context.Context, serviceID uint) (int, error) {
	orders, err := m.ListByServiceID(ctx, serviceID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, o := range orders {
		if o.Status().IsOpen() {
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored orders.
func (m *MockSparePartOrderRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

// MockRemovedPartRepository keeps removed parts in memory.
type MockRemovedPartRepository struct {
	mu     sync.Mutex
	parts  map[uint]*removedpart.RemovedPart
	nextID uint
}

func NewMockRemovedPartRepository() *MockRemovedPartRepository {
	return &MockRemovedPartRepository{parts: make(map[uint]*removedpart.RemovedPart)}
}

func (m *MockRemovedPartRepository) Create(ctx context.Context, part *removedpart.RemovedPart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := part.SetID(m.nextID); err != nil {
		return err
	}
	m.parts[part.ID()] = part
	return nil
}

func (m *MockRemovedPartRepository) Update(ctx context.Context, part *removedpart.RemovedPart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parts[part.ID()] = part
	return nil
}

func (m *MockRemovedPartRepository) GetByID(ctx context.Context, id uint) (*removedpart.RemovedPart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.parts[id], nil
}

func (m *MockRemovedPartRepository) ListByServiceID(ctx context.Context, serviceID uint) ([]*removedpart.RemovedPart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*removedpart.RemovedPart
	for _, p := range m.parts {
		if p.ServiceID() == serviceID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *MockRemovedPartRepository) CountOutByServiceID(ctx context.Context, serviceID uint) (int, error) {
	parts, _ := m.ListByServiceID(ctx, serviceID)
	n := 0
	for _, p := range parts {
		if p.IsOut() {
			n++
		}
	}
	return n, nil
}

// MockClientRepository keeps clients in memory.
type MockClientRepository struct {
	mu      sync.Mutex
	clients map[uint]*client.Client
	nextID  uint
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{clients: make(map[uint]*client.Client)}
}

func (m *MockClientRepository) Create(ctx context.Context, c *client.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.clients[c.ID()] = c
	return nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uint) (*client.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clients[id], nil
}

func (m *MockClientRepository) List(ctx context.Context, search string, limit, offset int) ([]*client.Client, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*client.Client
	for _, c := range m.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, int64(len(out)), nil
}

// MockApplianceRepository keeps appliances in memory.
type MockApplianceRepository struct {
	mu         sync.Mutex
	appliances map[uint]*client.Appliance
	nextID     uint
}

func NewMockApplianceRepository() *MockApplianceRepository {
	return &MockApplianceRepository{appliances: make(map[uint]*client.Appliance)}
}

func (m *MockApplianceRepository) Create(ctx context.Context, a *client.Appliance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := a.SetID(m.nextID); err != nil {
		return err
	}
	m.appliances[a.ID()] = a
	return nil
}

func (m *MockApplianceRepository) GetByID(ctx context.Context, id uint) (*client.Appliance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appliances[id], nil
}

func (m *MockApplianceRepository) ListByClientID(ctx context.Context, clientID uint) ([]*client.Appliance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*client.Appliance
	for _, a := range m.appliances {
		if a.ClientID() == clientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// MockUserRepository keeps users in memory.
type MockUserRepository struct {
	mu     sync.Mutex
	users  map[uint]*user.User
	nextID uint
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uint]*user.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) ListActiveByRole(ctx context.Context, role authorization.UserRole) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*user.User
	for _, u := range m.users {
		if u.Role() == role && u.IsActive() {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// MockNotificationRepository keeps dashboard notifications in memory.
type MockNotificationRepository struct {
	mu    sync.Mutex
	Items []*notification.Notification
}

func (m *MockNotificationRepository) BulkCreate(ctx context.Context, items []*notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range items {
		if err := n.SetID(uint(len(m.Items) + 1)); err != nil {
			return err
		}
		m.Items = append(m.Items, n)
	}
	return nil
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.Items {
		if n.ID() == id {
			return n, nil
		}
	}
	return nil, nil
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*notification.Notification, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*notification.Notification
	for _, n := range m.Items {
		if n.RecipientID() != recipientID || (unreadOnly && n.IsRead()) {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	_, total, err := m.ListByRecipient(ctx, recipientID, true, 0, 0)
	return total, err
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, id uint) error {
	n, _ := m.GetByID(ctx, id)
	if n != nil {
		n.MarkAsRead()
	}
	return nil
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	unread, _, _ := m.ListByRecipient(ctx, recipientID, true, 0, 0)
	for _, n := range unread {
		n.MarkAsRead()
	}
	return int64(len(unread)), nil
}

// ForRecipient returns the stored notifications addressed to recipientID.
func (m *MockNotificationRepository) ForRecipient(recipientID uint) []*notification.Notification {
	items, _, _ := m.ListByRecipient(context.Background(), recipientID, false, 0, 0)
	return items
}

// MockOutboundMessageRepository is an in-memory outbox with claim semantics.
type MockOutboundMessageRepository struct {
	mu       sync.Mutex
	Messages []*notification.OutboundMessage
}

func (m *MockOutboundMessageRepository) BulkCreate(ctx context.Context, msgs []*notification.OutboundMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range msgs {
		if err := msg.SetID(uint(len(m.Messages) + 1)); err != nil {
			return err
		}
		m.Messages = append(m.Messages, msg)
	}
	return nil
}

func (m *MockOutboundMessageRepository) ClaimForDelivery(ctx context.Context, id uint, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.Messages {
		if msg.ID() == id {
			if msg.AttemptedAt() != nil {
				return false, nil
			}
			msg.MarkAttempted(at)
			return true, nil
		}
	}
	return false, nil
}

func (m *MockOutboundMessageRepository) UpdateResult(ctx context.Context, msg *notification.OutboundMessage) error {
	return nil
}

func (m *MockOutboundMessageRepository) ListByServiceID(ctx context.Context, serviceID uint) ([]*notification.OutboundMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*notification.OutboundMessage
	for _, msg := range m.Messages {
		if msg.RelatedServiceID() != nil && *msg.RelatedServiceID() == serviceID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// StaticTemplates serves one fixed template per type, naming the type in the title.
type StaticTemplates struct{}

func (StaticTemplates) Template(t notificationvo.NotificationType) (notificationApp.Template, bool) {
	if !t.IsValid() {
		return notificationApp.Template{}, false
	}
	return notificationApp.Template{
		Title:   string(t) + " #{serviceId}",
		Message: "{clientName} {deviceType} {oldStatus}->{status} {partName}",
		SMS:     "{companyName}: {clientName} {status}",
	}, true
}

// RecordingSender records every message it is asked to deliver.
type RecordingSender struct {
	mu   sync.Mutex
	Err  error
	Sent []string
}

func (s *RecordingSender) Send(ctx context.Context, to, subject, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.Sent = append(s.Sent, to+"|"+body)
	return "provider-" + to, nil
}

// AllowAllGuard never reports a duplicate.
type AllowAllGuard struct{}

func (AllowAllGuard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return true, nil
}

func (AllowAllGuard) Release(ctx context.Context, key string) error {
	return nil
}

// inRange matches the repositories' [from, to) window; nil bounds are open.
func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}
