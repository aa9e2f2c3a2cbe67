package payroll

import (
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateRequest struct {
	EmployeeID  string                     `json:"employee_id"`
	PeriodMonth int                        `json:"period_month"`
	PeriodYear  int                        `json:"period_year"`
	BasicSalary decimal.Decimal            `json:"basic_salary"`
	Allowances  map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions  map[string]decimal.Decimal `json:"deductions,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}

	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "period_year",
			Message: "period_year must be a four digit year",
		})
	}

	if r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must not be negative",
		})
	}

	for name, amount := range r.Allowances {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "allowances." + name,
				Message: "allowance amounts must not be negative",
			})
		}
	}

	for name, amount := range r.Deductions {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "deductions." + name,
				Message: "deduction amounts must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRequest struct {
	ID          string                      `json:"-"`
	BasicSalary *decimal.Decimal            `json:"basic_salary,omitempty"`
	Allowances  *map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions  *map[string]decimal.Decimal `json:"deductions,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"` // processed, paid
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{"processed", "paid"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: processed, paid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayrollResponse struct {
	ID              string                     `json:"id"`
	EmployeeID      string                     `json:"employee_id"`
	EmployeeName    *string                    `json:"employee_name,omitempty"`
	PeriodMonth     int                        `json:"period_month"`
	PeriodYear      int                        `json:"period_year"`
	BasicSalary     decimal.Decimal            `json:"basic_salary"`
	Allowances      map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions      map[string]decimal.Decimal `json:"deductions,omitempty"`
	TotalAllowances decimal.Decimal            `json:"total_allowances"`
	TotalDeductions decimal.Decimal            `json:"total_deductions"`
	GrossSalary     decimal.Decimal            `json:"gross_salary"`
	NetSalary       decimal.Decimal            `json:"net_salary"`
	Status          string                     `json:"status"`
	PaidAt          *string                    `json:"paid_at,omitempty"`
	CreatedAt       string                     `json:"created_at"`
}

type Filter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{"draft", "processed", "paid"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: draft, processed, paid",
		})
	}

	if f.PeriodMonth != nil && (*f.PeriodMonth < 1 || *f.PeriodMonth > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListPayrollResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Payrolls   []PayrollResponse `json:"payrolls"`
}
