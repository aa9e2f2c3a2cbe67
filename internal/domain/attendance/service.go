package attendance

import "context"

type AttendanceService interface {
	// ClockIn opens today's attendance record for the calling user. A
	// repeated clock-in on the same day returns the existing record
	// unchanged.
	ClockIn(ctx context.Context) (AttendanceResponse, error)

	// ClockOut closes today's record. Fails with ErrNotClockedIn when no
	// clock-in exists and ErrAlreadyClockedOut when already closed.
	ClockOut(ctx context.Context) (AttendanceResponse, error)

	// ListMy lists the calling user's attendance records.
	ListMy(ctx context.Context, filter Filter) (ListAttendanceResponse, error)

	// List lists attendance records across employees (admin/hr).
	List(ctx context.Context, filter Filter) (ListAttendanceResponse, error)

	// AutoCloseOpenSessions closes sessions whose clock-in is older than the
	// given number of hours, crediting a standard working day. Returns how
	// many records were closed. Run by the scheduler.
	AutoCloseOpenSessions(ctx context.Context, olderThanHours int) (int, error)
}
