package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/task"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskSelect = `
	SELECT t.id, t.title, t.description, t.assigned_to, t.assigned_by,
		   t.status, t.priority, t.due_date, t.comments, t.created_at, t.updated_at,
		   ae.first_name || ' ' || ae.last_name,
		   be.first_name || ' ' || be.last_name
	FROM tasks t
	JOIN employees ae ON ae.id = t.assigned_to
	JOIN employees be ON be.id = t.assigned_by
`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var commentsJSON []byte

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.AssignedTo,
		&t.AssignedBy,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&commentsJSON,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.AssigneeName,
		&t.AssignerName,
	)
	if err != nil {
		return task.Task{}, err
	}

	if commentsJSON != nil {
		if err := json.Unmarshal(commentsJSON, &t.Comments); err != nil {
			return task.Task{}, fmt.Errorf("failed to unmarshal task comments: %w", err)
		}
	}

	return t, nil
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	commentsJSON, err := json.Marshal([]task.Comment{})
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to marshal task comments: %w", err)
	}

	query := `
		INSERT INTO tasks (id, title, description, assigned_to, assigned_by, status, priority, due_date, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.AssignedTo,
		t.AssignedBy,
		t.Status,
		t.Priority,
		t.DueDate,
		commentsJSON,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return task.Task{}, task.ErrAssigneeGone
		}
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	t.Comments = []task.Comment{}
	return t, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := taskSelect + ` WHERE t.id = $1`

	found, err := scanTask(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return found, nil
}

// Update implements task.TaskRepository.
func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, assigned_to = $3, status = $4,
			priority = $5, due_date = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := q.Exec(ctx, query,
		t.Title,
		t.Description,
		t.AssignedTo,
		t.Status,
		t.Priority,
		t.DueDate,
		t.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return task.ErrAssigneeGone
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// Delete implements task.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// List implements task.TaskRepository.
func (r *taskRepositoryImpl) List(ctx context.Context, filter task.Filter) ([]task.Task, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := `WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.AssignedTo != nil {
		whereClause += fmt.Sprintf(" AND t.assigned_to = $%d", argIndex)
		args = append(args, *filter.AssignedTo)
		argIndex++
	}
	if filter.AssignedBy != nil {
		whereClause += fmt.Sprintf(" AND t.assigned_by = $%d", argIndex)
		args = append(args, *filter.AssignedBy)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND t.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Priority != nil {
		whereClause += fmt.Sprintf(" AND t.priority = $%d", argIndex)
		args = append(args, *filter.Priority)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tasks t %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d`,
		taskSelect, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, total, rows.Err()
}

// AppendComment implements task.TaskRepository.
func (r *taskRepositoryImpl) AppendComment(ctx context.Context, taskID string, c task.Comment) error {
	q := GetQuerier(ctx, r.db)

	commentJSON, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	query := `
		UPDATE tasks
		SET comments = COALESCE(comments, '[]'::jsonb) || $1::jsonb, updated_at = NOW()
		WHERE id = $2
	`

	result, err := q.Exec(ctx, query, commentJSON, taskID)
	if err != nil {
		return fmt.Errorf("failed to append comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// CountOpenByAssignee implements task.TaskRepository.
func (r *taskRepositoryImpl) CountOpenByAssignee(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM tasks WHERE assigned_to = $1 AND status NOT IN ('completed')`

	var count int64
	if err := q.QueryRow(ctx, query, employeeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count open tasks: %w", err)
	}

	return count, nil
}
