package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/notification"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/sse"
)

const eventName = "notification"

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, hub *sse.Hub, cfg Config) notification.Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

// worker drains the queue, persisting in batches of BatchSize or every
// FlushInterval, whichever comes first.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.persist(id, batch)
		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *service) persist(worker int, batch []notification.CreateNotificationRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	notifications := make([]*notification.Notification, len(batch))
	for i, req := range batch {
		n := req.ToEntity()
		n.ID = uuid.New().String()
		n.CreatedAt = now
		notifications[i] = n
	}

	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		slog.Error("failed to persist notifications", "worker", worker, "count", len(notifications), "error", err)
		return
	}
	slog.Debug("notifications persisted", "worker", worker, "count", len(notifications))

	for _, n := range notifications {
		s.publish(n)
	}
}

func (s *service) publish(n *notification.Notification) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(sse.Key{CompanyID: n.CompanyID, UserID: n.RecipientID}, sse.Event{
		Event: eventName,
		Data:  notification.ToNotificationResponse(n),
	})
}

// QueueNotification implements notification.Service. A full queue drops the
// notification with a warning instead of blocking the producer.
func (s *service) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if s.stopped.Load() {
		return notification.ErrServiceStopped
	}
	if req.RecipientID == "" {
		return nil
	}

	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		slog.Warn("notification queue full, dropping",
			"company_id", req.CompanyID, "recipient_id", req.RecipientID, "type", string(req.Type))
		return notification.ErrQueueFull
	}
}

// List implements notification.Service.
func (s *service) List(ctx context.Context, companyID, recipientID string, req notification.ListNotificationsRequest) (notification.NotificationListResponse, error) {
	req.Normalize()

	items, err := s.repo.ListByRecipient(ctx, companyID, recipientID, req.Limit, req.Unread)
	if err != nil {
		return notification.NotificationListResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.repo.CountUnread(ctx, companyID, recipientID)
	if err != nil {
		return notification.NotificationListResponse{}, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(items))
	for i, n := range items {
		responses[i] = notification.ToNotificationResponse(n)
	}

	return notification.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

// MarkAsRead implements notification.Service. It fails only when none of
// the ids belong to the recipient.
func (s *service) MarkAsRead(ctx context.Context, companyID, recipientID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	n, err := s.repo.MarkAsRead(ctx, companyID, recipientID, req.NotificationIDs)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	if n == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// Subscribe implements notification.Service.
func (s *service) Subscribe(ctx context.Context, companyID, recipientID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(sse.Key{CompanyID: companyID, UserID: recipientID})

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop flushes queued notifications and waits for the workers to exit.
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
