package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/payroll"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollSelect = `
	SELECT p.id, p.employee_id, p.period_month, p.period_year, p.basic_salary,
		   p.allowances, p.deductions, p.total_allowances, p.total_deductions,
		   p.gross_salary, p.net_salary, p.status, p.paid_at, p.paid_by,
		   p.created_at, p.updated_at,
		   e.first_name || ' ' || e.last_name, u.email
	FROM payrolls p
	JOIN employees e ON e.id = p.employee_id
	JOIN users u ON u.id = e.user_id
`

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var allowancesJSON, deductionsJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.PeriodMonth,
		&rec.PeriodYear,
		&rec.BasicSalary,
		&allowancesJSON,
		&deductionsJSON,
		&rec.TotalAllowances,
		&rec.TotalDeductions,
		&rec.GrossSalary,
		&rec.NetSalary,
		&rec.Status,
		&rec.PaidAt,
		&rec.PaidBy,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.EmployeeName,
		&rec.EmployeeEmail,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	if allowancesJSON != nil {
		if err := json.Unmarshal(allowancesJSON, &rec.AllowancesDetail); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal allowances: %w", err)
		}
	}
	if deductionsJSON != nil {
		if err := json.Unmarshal(deductionsJSON, &rec.DeductionsDetail); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal deductions: %w", err)
		}
	}

	return rec, nil
}

func marshalComponents(components map[string]decimal.Decimal) ([]byte, error) {
	if components == nil {
		components = map[string]decimal.Decimal{}
	}
	return json.Marshal(components)
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Create(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	allowancesJSON, err := marshalComponents(rec.AllowancesDetail)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to marshal allowances: %w", err)
	}
	deductionsJSON, err := marshalComponents(rec.DeductionsDetail)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to marshal deductions: %w", err)
	}

	query := `
		INSERT INTO payrolls (
			id, employee_id, period_month, period_year, basic_salary,
			allowances, deductions, total_allowances, total_deductions,
			gross_salary, net_salary, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.PeriodMonth,
		rec.PeriodYear,
		rec.BasicSalary,
		allowancesJSON,
		deductionsJSON,
		rec.TotalAllowances,
		rec.TotalDeductions,
		rec.GrossSalary,
		rec.NetSalary,
		rec.Status,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayrollRecord{}, payroll.ErrPayrollAlreadyGenerated
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return rec, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + ` WHERE p.id = $1`

	found, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return found, nil
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Update(ctx context.Context, rec payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	allowancesJSON, err := marshalComponents(rec.AllowancesDetail)
	if err != nil {
		return fmt.Errorf("failed to marshal allowances: %w", err)
	}
	deductionsJSON, err := marshalComponents(rec.DeductionsDetail)
	if err != nil {
		return fmt.Errorf("failed to marshal deductions: %w", err)
	}

	query := `
		UPDATE payrolls
		SET basic_salary = $1, allowances = $2, deductions = $3,
			total_allowances = $4, total_deductions = $5,
			gross_salary = $6, net_salary = $7, status = $8,
			paid_at = $9, paid_by = $10, updated_at = NOW()
		WHERE id = $11
	`

	result, err := q.Exec(ctx, query,
		rec.BasicSalary,
		allowancesJSON,
		deductionsJSON,
		rec.TotalAllowances,
		rec.TotalDeductions,
		rec.GrossSalary,
		rec.NetSalary,
		rec.Status,
		rec.PaidAt,
		rec.PaidBy,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll: %w", err)
	}
	if result.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.Filter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := `WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND p.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.PeriodMonth != nil {
		whereClause += fmt.Sprintf(" AND p.period_month = $%d", argIndex)
		args = append(args, *filter.PeriodMonth)
		argIndex++
	}
	if filter.PeriodYear != nil {
		whereClause += fmt.Sprintf(" AND p.period_year = $%d", argIndex)
		args = append(args, *filter.PeriodYear)
		argIndex++
	}
	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND p.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM payrolls p %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY p.period_year DESC, p.period_month DESC LIMIT $%d OFFSET $%d`,
		payrollSelect, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payrolls: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}
