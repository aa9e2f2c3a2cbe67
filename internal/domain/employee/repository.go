package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	Update(ctx context.Context, e Employee) error
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	SetAvatarURL(ctx context.Context, userID string, avatarURL string) error
}
