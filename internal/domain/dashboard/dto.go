package dashboard

import "time"

// AdminSummary aggregates the headline numbers for the admin and HR view.
type AdminSummary struct {
	TotalEmployees  int64 `json:"total_employees"`
	ActiveEmployees int64 `json:"active_employees"`
	PresentToday    int64 `json:"present_today"`
	PendingLeaves   int64 `json:"pending_leaves"`
	OpenTasks       int64 `json:"open_tasks"`
	OnlineUsers     int   `json:"online_users"`
}

// EmployeeSummary is the personal view for a single employee.
type EmployeeSummary struct {
	ClockedIn           bool       `json:"clocked_in"`
	ClockInAt           *time.Time `json:"clock_in_at,omitempty"`
	PendingLeaves       int64      `json:"pending_leaves"`
	OpenTasks           int64      `json:"open_tasks"`
	UnreadNotifs        int64      `json:"unread_notifications"`
	LatestPayrollNet    *string    `json:"latest_payroll_net,omitempty"`
	ActiveAnnouncements int64      `json:"active_announcements"`
}
