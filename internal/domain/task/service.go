package task

import "context"

type TaskService interface {
	// Create assigns a task to an employee and notifies them.
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)

	GetByID(ctx context.Context, id string) (TaskResponse, error)
	Update(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, id string) error

	// UpdateStatus is the one write an assignee may perform on a task
	// they do not manage.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (TaskResponse, error)

	AddComment(ctx context.Context, req AddCommentRequest) (TaskResponse, error)

	ListMy(ctx context.Context, filter Filter) (ListTaskResponse, error)
	List(ctx context.Context, filter Filter) (ListTaskResponse, error)
}
