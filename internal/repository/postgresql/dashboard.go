package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/greythr-lite/hrms-backend-go/internal/domain/dashboard"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context) (int64, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active') FROM employees`

	var total, active int64
	if err := q.QueryRow(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return total, active, nil
}

// CountActiveAnnouncements implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveAnnouncements(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM announcements WHERE is_active = true`

	var count int64
	if err := q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active announcements: %w", err)
	}

	return count, nil
}

// CountOpenTasks implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountOpenTasks(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM tasks WHERE status NOT IN ('completed')`

	var count int64
	if err := q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count open tasks: %w", err)
	}

	return count, nil
}

// LatestNetSalary implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) LatestNetSalary(ctx context.Context, employeeID string) (*string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT net_salary::text
		FROM payrolls
		WHERE employee_id = $1
		ORDER BY period_year DESC, period_month DESC
		LIMIT 1
	`

	var net string
	err := q.QueryRow(ctx, query, employeeID).Scan(&net)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest net salary: %w", err)
	}

	return &net, nil
}
