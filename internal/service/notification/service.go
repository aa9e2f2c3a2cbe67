package notification

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/notification"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/sse"
)

// Config holds notification worker tuning.
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.NotificationRepository
	hub    *sse.Hub
	logger *slog.Logger
	config Config

	queue  chan notification.Payload
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService starts the background delivery workers.
func NewNotificationService(repo notification.NotificationRepository, hub *sse.Hub, logger *slog.Logger, cfg Config) notification.NotificationService {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		logger: logger,
		config: cfg,
		queue:  make(chan notification.Payload, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	logger.Info("notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

// worker drains the queue, batching inserts and pushing live events to
// subscribers that are online.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.Notification, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			s.logger.Error("notification batch insert failed", "worker", id, "error", err)
		} else {
			for _, n := range batch {
				s.hub.Publish(n.UserID, sse.Event{
					Event: "new_notification",
					Data:  toNotificationResponse(n),
				})
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case payload := <-s.queue:
			batch = append(batch, expandPayload(payload)...)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain remaining queue entries before the final flush.
			for {
				select {
				case payload := <-s.queue:
					batch = append(batch, expandPayload(payload)...)
				default:
					flush()
					return
				}
			}
		}
	}
}

// expandPayload fans one payload out into a row per recipient.
func expandPayload(p notification.Payload) []notification.Notification {
	now := time.Now().UTC()
	rows := make([]notification.Notification, 0, len(p.UserIDs))
	for _, userID := range p.UserIDs {
		rows = append(rows, notification.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Type:      p.Type,
			Title:     p.Title,
			Body:      p.Body,
			Link:      p.Link,
			IsRead:    false,
			CreatedAt: now,
		})
	}
	return rows
}

func toNotificationResponse(n notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Body:      n.Body,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// Queue implements notification.NotificationService.
func (s *service) Queue(payload notification.Payload) {
	if len(payload.UserIDs) == 0 {
		return
	}

	select {
	case s.queue <- payload:
	default:
		s.logger.Warn("notification queue full, dropping payload", "type", payload.Type)
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// ListMy implements notification.NotificationService.
func (s *service) ListMy(ctx context.Context, filter notification.Filter) (notification.ListNotificationResponse, error) {
	if err := filter.Validate(); err != nil {
		return notification.ListNotificationResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return notification.ListNotificationResponse{}, err
	}

	notifications, total, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return notification.ListNotificationResponse{}, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return notification.ListNotificationResponse{}, err
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, toNotificationResponse(n))
	}

	return notification.ListNotificationResponse{
		TotalCount:    total,
		UnreadCount:   unread,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    int(math.Ceil(float64(total) / float64(filter.Limit))),
		Notifications: responses,
	}, nil
}

// UnreadCount implements notification.NotificationService.
func (s *service) UnreadCount(ctx context.Context) (int64, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead implements notification.NotificationService.
func (s *service) MarkRead(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead implements notification.NotificationService.
func (s *service) MarkAllRead(ctx context.Context) (int64, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.MarkAllRead(ctx, userID)
}

// Delete implements notification.NotificationService.
func (s *service) Delete(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, userID)
}

// Stop implements notification.NotificationService.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("notification service stopped")
}
