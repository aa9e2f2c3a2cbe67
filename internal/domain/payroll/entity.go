package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. Transitions are monotonic: draft → processed → paid.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
)

// rank orders statuses for the monotonic transition check.
func (s Status) rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusProcessed:
		return 1
	case StatusPaid:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether moving to next advances the lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	return next.rank() == s.rank()+1
}

// PayrollRecord - one generated payroll per employee per period
type PayrollRecord struct {
	ID               string
	EmployeeID       string
	PeriodMonth      int
	PeriodYear       int
	BasicSalary      decimal.Decimal
	AllowancesDetail map[string]decimal.Decimal // {"Transport": 500}
	DeductionsDetail map[string]decimal.Decimal // {"PF": 200}
	TotalAllowances  decimal.Decimal
	TotalDeductions  decimal.Decimal
	GrossSalary      decimal.Decimal
	NetSalary        decimal.Decimal
	Status           Status
	PaidAt           *time.Time
	PaidBy           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
}
