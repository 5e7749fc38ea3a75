package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// QueueNotification hands the notification to background workers and
	// never blocks the caller on persistence.
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error

	List(ctx context.Context, companyID, recipientID string, req ListNotificationsRequest) (NotificationListResponse, error)
	MarkAsRead(ctx context.Context, companyID, recipientID string, req MarkAsReadRequest) error

	// Subscribe streams notifications for one recipient of one company until
	// ctx ends or the returned cleanup runs.
	Subscribe(ctx context.Context, companyID, recipientID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
