package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/employee"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/leave"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/notification"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/user"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRepository
	employee.EmployeeRepository
	user.UserRepository
	notificationService notification.NotificationService
}

func NewLeaveService(db *database.DB, leaveRepository leave.LeaveRepository, employeeRepository employee.EmployeeRepository, userRepository user.UserRepository, notificationService notification.NotificationService) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                  db,
		LeaveRepository:     leaveRepository,
		EmployeeRepository:  employeeRepository,
		UserRepository:      userRepository,
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

func toLeaveResponse(l leave.Leave) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		Type:         l.Type,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		Days:         l.Days,
		Reason:       l.Reason,
		Status:       string(l.Status),
		ApprovedBy:   l.ApprovedBy,
		ApprovedAt:   timePtrToString(l.ApprovedAt),
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}

// Request implements leave.LeaveService.
func (s *LeaveServiceImpl) Request(ctx context.Context, req leave.RequestLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return leave.LeaveResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.LeaveRepository.Create(ctx, leave.Leave{
		EmployeeID: employeeID,
		Type:       req.Type,
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       leave.DaySpan(startDate, endDate),
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyStaff(ctx, created)

	return toLeaveResponse(created), nil
}

// notifyStaff fans a new-request notification out to every admin and hr user.
func (s *LeaveServiceImpl) notifyStaff(ctx context.Context, l leave.Leave) {
	staffIDs, err := s.UserRepository.GetStaffIDs(ctx)
	if err != nil || len(staffIDs) == 0 {
		return
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, l.EmployeeID)
	if err != nil {
		return
	}

	link := "/leaves/" + l.ID
	s.notificationService.Queue(notification.Payload{
		UserIDs: staffIDs,
		Type:    notification.TypeLeaveRequested,
		Title:   "New leave request",
		Body:    fmt.Sprintf("%s requested %d day(s) of %s leave", emp.FullName(), l.Days, l.Type),
		Link:    &link,
	})
}

// UpdateStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateStatus(ctx context.Context, req leave.UpdateStatusRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	approverID, ok := claims["user_id"].(string)
	if !ok || approverID == "" {
		return leave.LeaveResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	current, err := s.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	now := time.Now().UTC()
	current.Status = leave.Status(req.Status)
	current.ApprovedBy = &approverID
	current.ApprovedAt = &now

	if err := s.LeaveRepository.Update(ctx, current); err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyDecision(ctx, current)

	return toLeaveResponse(current), nil
}

func (s *LeaveServiceImpl) notifyDecision(ctx context.Context, l leave.Leave) {
	emp, err := s.EmployeeRepository.GetByID(ctx, l.EmployeeID)
	if err != nil {
		return
	}

	link := "/leaves/" + l.ID
	s.notificationService.Queue(notification.Payload{
		UserIDs: []string{emp.UserID},
		Type:    notification.TypeLeaveDecided,
		Title:   "Leave request " + string(l.Status),
		Body:    fmt.Sprintf("Your %s leave from %s to %s was %s", l.Type, l.StartDate.Format("2006-01-02"), l.EndDate.Format("2006-01-02"), l.Status),
		Link:    &link,
	})
}

// ListMy implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMy(ctx context.Context, filter leave.Filter) (leave.ListLeaveResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return leave.ListLeaveResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	filter.EmployeeID = &employeeID
	return s.List(ctx, filter)
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.Filter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	leaves, total, err := s.LeaveRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, toLeaveResponse(l))
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Leaves:     responses,
	}, nil
}
