package notification

import "context"

// Payload describes a notification to be delivered to one or more users.
type Payload struct {
	UserIDs []string
	Type    Type
	Title   string
	Body    string
	Link    *string
}

type NotificationService interface {
	// Queue hands the payload to a background worker. It never blocks the
	// caller; delivery persists the rows and pushes new_notification events
	// to users who are online.
	Queue(payload Payload)

	ListMy(ctx context.Context, filter Filter) (ListNotificationResponse, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error

	// Stop drains the queue and shuts the workers down.
	Stop()
}
