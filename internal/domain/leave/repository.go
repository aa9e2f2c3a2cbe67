package leave

import "context"

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	Update(ctx context.Context, l Leave) error
	List(ctx context.Context, filter Filter) ([]Leave, int64, error)
	CountPending(ctx context.Context) (int64, error)
}
