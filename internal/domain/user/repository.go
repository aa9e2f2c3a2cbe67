package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	SetActive(ctx context.Context, id string, active bool) error

	// GetStaffIDs returns the user ids of all active admin and hr users,
	// used for notification fan-out on leave requests.
	GetStaffIDs(ctx context.Context) ([]string, error)

	// GetIDsByRole returns active user ids for an audience selector:
	// "all" or a concrete role.
	GetIDsByRole(ctx context.Context, audience string) ([]string, error)
}
