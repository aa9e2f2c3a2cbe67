package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/employee"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.user_id, e.first_name, e.last_name, e.phone, e.address,
		   e.date_of_birth, e.join_date, e.designation, e.department,
		   e.bank_account_name, e.bank_account_number, e.bank_name, e.bank_ifsc,
		   e.emergency_contact_name, e.emergency_contact_phone,
		   e.status, e.created_at, e.updated_at,
		   u.email, u.role, u.avatar_url
	FROM employees e
	JOIN users u ON u.id = e.user_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.FirstName,
		&e.LastName,
		&e.Phone,
		&e.Address,
		&e.DateOfBirth,
		&e.JoinDate,
		&e.Designation,
		&e.Department,
		&e.BankAccountName,
		&e.BankAccountNumber,
		&e.BankName,
		&e.BankIFSC,
		&e.EmergencyContactName,
		&e.EmergencyContactPhone,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.Email,
		&e.Role,
		&e.AvatarURL,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = "active"
	}

	query := `
		INSERT INTO employees (
			id, user_id, first_name, last_name, phone, address, date_of_birth,
			join_date, designation, department, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID,
		e.UserID,
		e.FirstName,
		e.LastName,
		e.Phone,
		e.Address,
		e.DateOfBirth,
		e.JoinDate,
		e.Designation,
		e.Department,
		e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmployeeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + ` WHERE e.id = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return found, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + ` WHERE e.user_id = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return found, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, phone = $3, address = $4,
			date_of_birth = $5, join_date = $6, designation = $7, department = $8,
			bank_account_name = $9, bank_account_number = $10, bank_name = $11, bank_ifsc = $12,
			emergency_contact_name = $13, emergency_contact_phone = $14,
			status = $15, updated_at = NOW()
		WHERE id = $16
	`

	result, err := q.Exec(ctx, query,
		e.FirstName,
		e.LastName,
		e.Phone,
		e.Address,
		e.DateOfBirth,
		e.JoinDate,
		e.Designation,
		e.Department,
		e.BankAccountName,
		e.BankAccountNumber,
		e.BankName,
		e.BankIFSC,
		e.EmergencyContactName,
		e.EmergencyContactPhone,
		e.Status,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := `WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.Department != nil {
		whereClause += fmt.Sprintf(" AND e.department = $%d", argIndex)
		args = append(args, *filter.Department)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND e.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Search != nil {
		whereClause += fmt.Sprintf(" AND (e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR u.email ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees e JOIN users u ON u.id = e.user_id %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY e.first_name, e.last_name LIMIT $%d OFFSET $%d`,
		employeeSelect, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, total, rows.Err()
}

// SetAvatarURL implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetAvatarURL(ctx context.Context, userID string, avatarURL string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET avatar_url = $1, updated_at = NOW() WHERE id = $2`

	result, err := q.Exec(ctx, query, avatarURL, userID)
	if err != nil {
		return fmt.Errorf("failed to set avatar url: %w", err)
	}
	if result.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
