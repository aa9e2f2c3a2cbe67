package task

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/employee"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/notification"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/task"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
)

type TaskServiceImpl struct {
	db *database.DB
	task.TaskRepository
	employee.EmployeeRepository
	notificationService notification.NotificationService
}

func NewTaskService(db *database.DB, taskRepository task.TaskRepository, employeeRepository employee.EmployeeRepository, notificationService notification.NotificationService) task.TaskService {
	return &TaskServiceImpl{
		db:                  db,
		TaskRepository:      taskRepository,
		EmployeeRepository:  employeeRepository,
		notificationService: notificationService,
	}
}

type callerIdentity struct {
	UserID     string
	EmployeeID string
	Role       string
}

func callerFromContext(ctx context.Context) (callerIdentity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return callerIdentity{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	var c callerIdentity
	c.UserID, _ = claims["user_id"].(string)
	c.EmployeeID, _ = claims["employee_id"].(string)
	c.Role, _ = claims["role"].(string)
	return c, nil
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}

func toTaskResponse(t task.Task) task.TaskResponse {
	comments := t.Comments
	if comments == nil {
		comments = []task.Comment{}
	}
	return task.TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		AssignedTo:   t.AssignedTo,
		AssigneeName: t.AssigneeName,
		AssignedBy:   t.AssignedBy,
		AssignerName: t.AssignerName,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		DueDate:      datePtrToString(t.DueDate),
		Comments:     comments,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// Create implements task.TaskService.
func (s *TaskServiceImpl) Create(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	caller, err := callerFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err == nil {
			dueDate = &parsed
		}
	}

	created, err := s.TaskRepository.Create(ctx, task.Task{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  caller.EmployeeID,
		Status:      task.StatusTodo,
		Priority:    task.Priority(req.Priority),
		DueDate:     dueDate,
	})
	if err != nil {
		return task.TaskResponse{}, err
	}

	s.notifyAssignee(ctx, created, notification.TypeTaskAssigned, "New task assigned",
		fmt.Sprintf("You have been assigned: %s", created.Title))

	// Reload for joined names.
	full, err := s.TaskRepository.GetByID(ctx, created.ID)
	if err != nil {
		return toTaskResponse(created), nil
	}
	return toTaskResponse(full), nil
}

func (s *TaskServiceImpl) notifyAssignee(ctx context.Context, t task.Task, notifType notification.Type, title, body string) {
	emp, err := s.EmployeeRepository.GetByID(ctx, t.AssignedTo)
	if err != nil {
		return
	}

	link := "/tasks/" + t.ID
	s.notificationService.Queue(notification.Payload{
		UserIDs: []string{emp.UserID},
		Type:    notifType,
		Title:   title,
		Body:    body,
		Link:    &link,
	})
}

// GetByID implements task.TaskService.
func (s *TaskServiceImpl) GetByID(ctx context.Context, id string) (task.TaskResponse, error) {
	found, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return toTaskResponse(found), nil
}

// Update implements task.TaskService.
func (s *TaskServiceImpl) Update(ctx context.Context, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	current, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	reassigned := false
	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.Description != nil {
		current.Description = req.Description
	}
	if req.AssignedTo != nil && *req.AssignedTo != current.AssignedTo {
		current.AssignedTo = *req.AssignedTo
		reassigned = true
	}
	if req.Priority != nil {
		current.Priority = task.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.DueDate); err == nil {
			current.DueDate = &parsed
		}
	}

	if err := s.TaskRepository.Update(ctx, current); err != nil {
		return task.TaskResponse{}, err
	}

	if reassigned {
		s.notifyAssignee(ctx, current, notification.TypeTaskAssigned, "New task assigned",
			fmt.Sprintf("You have been assigned: %s", current.Title))
	} else {
		s.notifyAssignee(ctx, current, notification.TypeTaskUpdated, "Task updated",
			fmt.Sprintf("Task updated: %s", current.Title))
	}

	full, err := s.TaskRepository.GetByID(ctx, current.ID)
	if err != nil {
		return toTaskResponse(current), nil
	}
	return toTaskResponse(full), nil
}

// Delete implements task.TaskService.
func (s *TaskServiceImpl) Delete(ctx context.Context, id string) error {
	return s.TaskRepository.Delete(ctx, id)
}

// UpdateStatus implements task.TaskService.
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, req task.UpdateStatusRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	caller, err := callerFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	current, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if caller.Role == "employee" && !current.IsAssignee(caller.EmployeeID) {
		return task.TaskResponse{}, task.ErrNotTaskOwner
	}

	current.Status = task.Status(req.Status)
	if err := s.TaskRepository.Update(ctx, current); err != nil {
		return task.TaskResponse{}, err
	}

	return toTaskResponse(current), nil
}

// AddComment implements task.TaskService.
func (s *TaskServiceImpl) AddComment(ctx context.Context, req task.AddCommentRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	caller, err := callerFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	current, err := s.TaskRepository.GetByID(ctx, req.TaskID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if caller.Role == "employee" && !current.IsAssignee(caller.EmployeeID) && current.AssignedBy != caller.EmployeeID {
		return task.TaskResponse{}, task.ErrNotTaskOwner
	}

	authorName := ""
	if author, err := s.EmployeeRepository.GetByID(ctx, caller.EmployeeID); err == nil {
		authorName = author.FullName()
	}

	comment := task.Comment{
		ID:         uuid.New().String(),
		AuthorID:   caller.EmployeeID,
		AuthorName: authorName,
		Body:       req.Body,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.TaskRepository.AppendComment(ctx, req.TaskID, comment); err != nil {
		return task.TaskResponse{}, err
	}

	if caller.EmployeeID != current.AssignedTo {
		s.notifyAssignee(ctx, current, notification.TypeTaskCommented, "New comment",
			fmt.Sprintf("New comment on task: %s", current.Title))
	}

	full, err := s.TaskRepository.GetByID(ctx, req.TaskID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return toTaskResponse(full), nil
}

// ListMy implements task.TaskService.
func (s *TaskServiceImpl) ListMy(ctx context.Context, filter task.Filter) (task.ListTaskResponse, error) {
	caller, err := callerFromContext(ctx)
	if err != nil {
		return task.ListTaskResponse{}, err
	}
	if caller.EmployeeID == "" {
		return task.ListTaskResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	filter.AssignedTo = &caller.EmployeeID
	return s.List(ctx, filter)
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context, filter task.Filter) (task.ListTaskResponse, error) {
	if err := filter.Validate(); err != nil {
		return task.ListTaskResponse{}, err
	}

	tasks, total, err := s.TaskRepository.List(ctx, filter)
	if err != nil {
		return task.ListTaskResponse{}, err
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, toTaskResponse(t))
	}

	return task.ListTaskResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Tasks:      responses,
	}, nil
}
