package announcement

import "context"

type AnnouncementService interface {
	// Create publishes an announcement, broadcasts it over the event stream
	// and queues a notification for every user in the audience.
	Create(ctx context.Context, req CreateAnnouncementRequest) (AnnouncementResponse, error)

	GetByID(ctx context.Context, id string) (AnnouncementResponse, error)
	Update(ctx context.Context, req UpdateAnnouncementRequest) (AnnouncementResponse, error)
	Delete(ctx context.Context, id string) error

	// List returns announcements visible to the caller's role.
	List(ctx context.Context, filter Filter) (ListAnnouncementResponse, error)

	// SweepExpired deactivates announcements past their expiry. Run from cron.
	SweepExpired(ctx context.Context) (int64, error)
}
