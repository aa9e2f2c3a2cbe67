package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/leave"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveSelect = `
	SELECT l.id, l.employee_id, l.type, l.start_date, l.end_date, l.days,
		   l.reason, l.status, l.approved_by, l.approved_at, l.created_at, l.updated_at,
		   e.first_name || ' ' || e.last_name
	FROM leaves l
	JOIN employees e ON e.id = l.employee_id
`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID,
		&l.EmployeeID,
		&l.Type,
		&l.StartDate,
		&l.EndDate,
		&l.Days,
		&l.Reason,
		&l.Status,
		&l.ApprovedBy,
		&l.ApprovedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.EmployeeName,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	if l.ID == "" {
		l.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leaves (id, employee_id, type, start_date, end_date, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.ID,
		l.EmployeeID,
		l.Type,
		l.StartDate,
		l.EndDate,
		l.Days,
		l.Reason,
		l.Status,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return l, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveSelect + ` WHERE l.id = $1`

	found, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}

	return found, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Update(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := q.Exec(ctx, query, l.Status, l.ApprovedBy, l.ApprovedAt, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave: %w", err)
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.Leave, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := `WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND l.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND l.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Type != nil {
		whereClause += fmt.Sprintf(" AND l.type = $%d", argIndex)
		args = append(args, *filter.Type)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM leaves l %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leaves: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d`,
		leaveSelect, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}

	return leaves, total, rows.Err()
}

// CountPending implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM leaves WHERE status = 'pending'`

	var count int64
	if err := q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending leaves: %w", err)
	}

	return count, nil
}
