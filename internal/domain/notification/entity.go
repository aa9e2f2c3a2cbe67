package notification

import "time"

type Type string

const (
	TypeLeaveRequested   Type = "leave_requested"
	TypeLeaveDecided     Type = "leave_decided"
	TypePayrollGenerated Type = "payroll_generated"
	TypePayrollPaid      Type = "payroll_paid"
	TypeTaskAssigned     Type = "task_assigned"
	TypeTaskUpdated      Type = "task_updated"
	TypeTaskCommented    Type = "task_commented"
	TypeAnnouncementMade Type = "announcement"
)

type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Title     string
	Body      string
	Link      *string
	IsRead    bool
	CreatedAt time.Time
}
