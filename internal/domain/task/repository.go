package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	Update(ctx context.Context, t Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Task, int64, error)

	// AppendComment pushes a comment onto the task's jsonb comment array.
	AppendComment(ctx context.Context, taskID string, c Comment) error

	// CountOpenByAssignee counts not-yet-completed tasks for one employee.
	CountOpenByAssignee(ctx context.Context, employeeID string) (int64, error)
}
