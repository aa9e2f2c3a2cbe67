package dashboard

import "context"

type DashboardService interface {
	// AdminSummary is staff-only; the counts are gathered concurrently.
	AdminSummary(ctx context.Context) (AdminSummary, error)

	// EmployeeSummary builds the caller's personal dashboard.
	EmployeeSummary(ctx context.Context) (EmployeeSummary, error)
}
