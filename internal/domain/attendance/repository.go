package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// The attendances table carries a unique index on (employee_id, date), so at
// most one record per employee per work day can ever exist.
type AttendanceRepository interface {
	// Create inserts a new attendance record for a work day.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns the record for a work day, or nil when
	// none exists. Used for idempotent clock-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record.
	Update(ctx context.Context, att Attendance) error

	// List retrieves attendance records with filters and pagination.
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)

	// GetOpenSessions returns records with punch_in set and punch_out
	// still null, older than the given number of hours. Used by the
	// auto-close cron job.
	GetOpenSessions(ctx context.Context, olderThanHours int) ([]Attendance, error)

	// CountPresentOn counts records with status present for a work day.
	CountPresentOn(ctx context.Context, date time.Time) (int64, error)
}
