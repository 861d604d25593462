package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/domain/notification"
	vo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

func storedNotification(t *testing.T, id, recipientID uint, read bool) *notification.Notification {
	t.Helper()
	n, err := notification.ReconstructNotification(id, recipientID, vo.TypePartsRemoved, "Skinut deo", "Servis #42", nil, read, time.Now())
	require.NoError(t, err)
	return n
}

func TestListNotifications_ScopedToCaller(t *testing.T) {
	repo := &mockNotificationRepository{
		ListByRecipientFunc: func(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*notification.Notification, int64, error) {
			assert.Equal(t, uint(7), recipientID)
			assert.True(t, unreadOnly)
			assert.Equal(t, 20, limit)
			assert.Equal(t, 0, offset)
			return []*notification.Notification{storedNotification(t, 1, 7, false)}, 1, nil
		},
		CountUnreadFunc: func(ctx context.Context, recipientID uint) (int64, error) { return 1, nil },
	}

	uc := NewListNotificationsUseCase(repo, logger.NewNop())
	result, err := uc.Execute(context.Background(), shared.NewPrincipal(7, authorization.RoleTechnician, nil), ListNotificationsQuery{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, int64(1), result.Unread)
	assert.Equal(t, "parts_removed", result.Notifications[0].Type)
}

func TestMarkNotificationRead_OtherUsersNotificationIsNotFound(t *testing.T) {
	marked := false
	repo := &mockNotificationRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*notification.Notification, error) {
			return storedNotification(t, id, 99, false), nil
		},
		MarkAsReadFunc: func(ctx context.Context, id uint) error {
			marked = true
			return nil
		},
	}

	uc := NewMarkNotificationReadUseCase(repo, logger.NewNop())
	err := uc.Execute(context.Background(), shared.NewPrincipal(7, authorization.RoleAdmin, nil), 3)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.False(t, marked)
}

func TestMarkNotificationRead(t *testing.T) {
	var markedID uint
	repo := &mockNotificationRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*notification.Notification, error) {
			return storedNotification(t, id, 7, false), nil
		},
		MarkAsReadFunc: func(ctx context.Context, id uint) error {
			markedID = id
			return nil
		},
	}

	uc := NewMarkNotificationReadUseCase(repo, logger.NewNop())
	require.NoError(t, uc.Execute(context.Background(), shared.NewPrincipal(7, authorization.RoleAdmin, nil), 3))
	assert.Equal(t, uint(3), markedID)
}

func TestMarkNotificationRead_AlreadyReadIsNoop(t *testing.T) {
	repo := &mockNotificationRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*notification.Notification, error) {
			return storedNotification(t, id, 7, true), nil
		},
		MarkAsReadFunc: func(ctx context.Context, id uint) error {
			t.Fatal("must not write an already read notification")
			return nil
		},
	}

	uc := NewMarkNotificationReadUseCase(repo, logger.NewNop())
	require.NoError(t, uc.Execute(context.Background(), shared.NewPrincipal(7, authorization.RoleAdmin, nil), 3))
}
