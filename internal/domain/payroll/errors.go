package payroll

import "errors"

var (
	ErrPayrollNotFound         = errors.New("payroll record not found")
	ErrPayrollAlreadyGenerated = errors.New("payroll already generated for this employee and period")
	ErrInvalidStatusTransition = errors.New("payroll status can only advance draft -> processed -> paid")
	ErrPaidRecordImmutable     = errors.New("a paid payroll record cannot be modified")
)
