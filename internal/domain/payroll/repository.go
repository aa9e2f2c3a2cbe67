package payroll

import "context"

type PayrollRepository interface {
	// Create inserts a payroll record. The table carries a unique index on
	// (employee_id, period_month, period_year); a violation surfaces as
	// ErrPayrollAlreadyGenerated.
	Create(ctx context.Context, rec PayrollRecord) (PayrollRecord, error)

	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	Update(ctx context.Context, rec PayrollRecord) error
	List(ctx context.Context, filter Filter) ([]PayrollRecord, int64, error)
}
