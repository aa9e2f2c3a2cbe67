package payroll

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/employee"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/notification"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/payroll"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/pdf"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrollRepository
	employee.EmployeeRepository
	notificationService notification.NotificationService
}

func NewPayrollService(db *database.DB, payrollRepository payroll.PayrollRepository, employeeRepository employee.EmployeeRepository, notificationService notification.NotificationService) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                  db,
		PayrollRepository:   payrollRepository,
		EmployeeRepository:  employeeRepository,
		notificationService: notificationService,
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func toPayrollResponse(rec payroll.PayrollRecord) payroll.PayrollResponse {
	return payroll.PayrollResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		EmployeeName:    rec.EmployeeName,
		PeriodMonth:     rec.PeriodMonth,
		PeriodYear:      rec.PeriodYear,
		BasicSalary:     rec.BasicSalary,
		Allowances:      rec.AllowancesDetail,
		Deductions:      rec.DeductionsDetail,
		TotalAllowances: rec.TotalAllowances,
		TotalDeductions: rec.TotalDeductions,
		GrossSalary:     rec.GrossSalary,
		NetSalary:       rec.NetSalary,
		Status:          string(rec.Status),
		PaidAt:          timePtrToString(rec.PaidAt),
		CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
	}
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	rec := payroll.PayrollRecord{
		EmployeeID:       req.EmployeeID,
		PeriodMonth:      req.PeriodMonth,
		PeriodYear:       req.PeriodYear,
		BasicSalary:      req.BasicSalary,
		AllowancesDetail: req.Allowances,
		DeductionsDetail: req.Deductions,
		Status:           payroll.StatusDraft,
	}
	rec.Recompute()

	created, err := s.PayrollRepository.Create(ctx, rec)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	s.notifyEmployee(ctx, created, notification.TypePayrollGenerated, "Payroll generated",
		fmt.Sprintf("Your payroll for %d/%d has been generated", created.PeriodMonth, created.PeriodYear))

	return toPayrollResponse(created), nil
}

func (s *PayrollServiceImpl) notifyEmployee(ctx context.Context, rec payroll.PayrollRecord, notifType notification.Type, title, body string) {
	emp, err := s.EmployeeRepository.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return
	}

	link := "/payroll/" + rec.ID
	s.notificationService.Queue(notification.Payload{
		UserIDs: []string{emp.UserID},
		Type:    notifType,
		Title:   title,
		Body:    body,
		Link:    &link,
	})
}

// Update implements payroll.PayrollService.
func (s *PayrollServiceImpl) Update(ctx context.Context, req payroll.UpdateRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	current, err := s.PayrollRepository.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if current.Status == payroll.StatusPaid {
		return payroll.PayrollResponse{}, payroll.ErrPaidRecordImmutable
	}

	if req.BasicSalary != nil {
		current.BasicSalary = *req.BasicSalary
	}
	if req.Allowances != nil {
		current.AllowancesDetail = *req.Allowances
	}
	if req.Deductions != nil {
		current.DeductionsDetail = *req.Deductions
	}
	current.Recompute()

	if err := s.PayrollRepository.Update(ctx, current); err != nil {
		return payroll.PayrollResponse{}, err
	}

	return toPayrollResponse(current), nil
}

// UpdateStatus implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateStatus(ctx context.Context, req payroll.UpdateStatusRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	current, err := s.PayrollRepository.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	next := payroll.Status(req.Status)
	if !current.Status.CanTransitionTo(next) {
		return payroll.PayrollResponse{}, payroll.ErrInvalidStatusTransition
	}

	current.Status = next
	if next == payroll.StatusPaid {
		_, claims, err := jwtauth.FromContext(ctx)
		if err != nil {
			return payroll.PayrollResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
		}
		payerID, _ := claims["user_id"].(string)

		now := time.Now().UTC()
		current.PaidAt = &now
		current.PaidBy = &payerID
	}

	if err := s.PayrollRepository.Update(ctx, current); err != nil {
		return payroll.PayrollResponse{}, err
	}

	if next == payroll.StatusPaid {
		s.notifyEmployee(ctx, current, notification.TypePayrollPaid, "Salary paid",
			fmt.Sprintf("Your salary for %d/%d has been paid", current.PeriodMonth, current.PeriodYear))
	}

	return toPayrollResponse(current), nil
}

// GetByID implements payroll.PayrollService. Employees can only read their
// own records; other records come back as not found.
func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	rec, err := s.getOwned(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return toPayrollResponse(rec), nil
}

func (s *PayrollServiceImpl) getOwned(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	rec, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	role, _ := claims["role"].(string)
	employeeID, _ := claims["employee_id"].(string)

	if role == "employee" && rec.EmployeeID != employeeID {
		return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
	}

	return rec, nil
}

// ListMy implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMy(ctx context.Context, filter payroll.Filter) (payroll.ListPayrollResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return payroll.ListPayrollResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	filter.EmployeeID = &employeeID
	return s.List(ctx, filter)
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.Filter) (payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	records, total, err := s.PayrollRepository.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toPayrollResponse(rec))
	}

	return payroll.ListPayrollResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Payrolls:   responses,
	}, nil
}

// Payslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, id string) ([]byte, string, error) {
	rec, err := s.getOwned(ctx, id)
	if err != nil {
		return nil, "", err
	}

	document, err := pdf.GeneratePayslip(rec)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payslip-%d-%02d.pdf", rec.PeriodYear, rec.PeriodMonth)
	return document, filename, nil
}
