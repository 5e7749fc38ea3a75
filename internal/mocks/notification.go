package mocks

import (
	"context"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/stretchr/testify/mock"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	return m.Called(ctx, ns).Error(0)
}

func (m *NotificationRepository) ListByRecipient(ctx context.Context, companyID, recipientID string, limit int, unreadOnly bool) ([]*notification.Notification, error) {
	args := m.Called(ctx, companyID, recipientID, limit, unreadOnly)
	ns, _ := args.Get(0).([]*notification.Notification)
	return ns, args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, companyID, recipientID string) (int, error) {
	args := m.Called(ctx, companyID, recipientID)
	return args.Int(0), args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, companyID, recipientID string, ids []string) (int64, error) {
	args := m.Called(ctx, companyID, recipientID, ids)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

// NotificationService records queued notifications. Services under test only
// fire and forget, so QueueNotification never needs expectations.
type NotificationService struct {
	mock.Mock
	Queued []notification.CreateNotificationRequest
}

func (m *NotificationService) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	m.Queued = append(m.Queued, req)
	return nil
}

func (m *NotificationService) List(ctx context.Context, companyID, recipientID string, req notification.ListNotificationsRequest) (notification.NotificationListResponse, error) {
	args := m.Called(ctx, companyID, recipientID, req)
	res, _ := args.Get(0).(notification.NotificationListResponse)
	return res, args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, companyID, recipientID string, req notification.MarkAsReadRequest) error {
	return m.Called(ctx, companyID, recipientID, req).Error(0)
}

func (m *NotificationService) Subscribe(ctx context.Context, companyID, recipientID string) (<-chan notification.SSEEvent, func()) {
	args := m.Called(ctx, companyID, recipientID)
	ch, _ := args.Get(0).(<-chan notification.SSEEvent)
	return ch, func() {}
}

func (m *NotificationService) Stop() {}
