package payroll

import "context"

type PayrollService interface {
	// Generate creates a payroll record for one employee and period.
	// Gross and net are derived, never accepted from the caller.
	Generate(ctx context.Context, req GenerateRequest) (PayrollResponse, error)

	// Update replaces amounts on a non-paid record and recomputes totals.
	Update(ctx context.Context, req UpdateRequest) (PayrollResponse, error)

	// UpdateStatus advances the record lifecycle; backwards or skipping
	// transitions fail with ErrInvalidStatusTransition.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (PayrollResponse, error)

	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	ListMy(ctx context.Context, filter Filter) (ListPayrollResponse, error)
	List(ctx context.Context, filter Filter) (ListPayrollResponse, error)

	// Payslip renders the record as a PDF document.
	Payslip(ctx context.Context, id string) ([]byte, string, error)
}
