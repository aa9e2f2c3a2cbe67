package announcement

import "context"

type AnnouncementRepository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)
	GetByID(ctx context.Context, id string) (Announcement, error)
	Update(ctx context.Context, a Announcement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Announcement, int64, error)

	// DeactivateExpired flips is_active off for announcements whose expiry
	// has passed. Returns how many rows were touched.
	DeactivateExpired(ctx context.Context) (int64, error)
}
