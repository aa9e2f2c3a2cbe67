package attendance

import "time"

type Attendance struct {
	ID           string
	EmployeeID   string
	Date         time.Time // work day, truncated to midnight
	PunchIn      *time.Time
	PunchOut     *time.Time
	BreakMinutes int
	WorkMinutes  *int
	Status       string // present, absent, auto_closed
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName *string
}

// TotalWorkMinutes derives worked minutes from the punch pair minus break
// time. Returns nil while the session is still open.
func (a *Attendance) TotalWorkMinutes() *int {
	if a.PunchIn == nil || a.PunchOut == nil {
		return nil
	}
	minutes := int(a.PunchOut.Sub(*a.PunchIn).Minutes()) - a.BreakMinutes
	if minutes < 0 {
		minutes = 0
	}
	return &minutes
}
