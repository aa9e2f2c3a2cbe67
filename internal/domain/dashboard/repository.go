package dashboard

import "context"

// DashboardRepository exposes the count queries the summaries are built from.
// Each method is a single aggregate query so the service can fan them out
// concurrently.
type DashboardRepository interface {
	CountEmployees(ctx context.Context) (total, active int64, err error)
	CountActiveAnnouncements(ctx context.Context) (int64, error)
	CountOpenTasks(ctx context.Context) (int64, error)
	LatestNetSalary(ctx context.Context, employeeID string) (*string, error)
}
