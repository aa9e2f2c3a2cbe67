package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/attendance"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
}

func NewAttendanceService(db *database.DB, attendanceRepository attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
	}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func toAttendanceResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		PunchIn:      timePtrToString(a.PunchIn),
		PunchOut:     timePtrToString(a.PunchOut),
		BreakMinutes: a.BreakMinutes,
		WorkMinutes:  a.WorkMinutes,
		Status:       a.Status,
	}
}

// workDay truncates a timestamp to its UTC calendar day.
func workDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().UTC()
	today := workDay(now)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing != nil {
		// Second clock-in on the same day is a no-op.
		return toAttendanceResponse(*existing), nil
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		PunchIn:    &now,
		Status:     "present",
	})
	if errors.Is(err, attendance.ErrDuplicateDay) {
		// A concurrent clock-in won the insert; return its record.
		existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if existing == nil {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return toAttendanceResponse(*existing), nil
	}
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().UTC()
	today := workDay(now)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if existing == nil || existing.PunchIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	}
	if existing.PunchOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}

	existing.PunchOut = &now
	existing.WorkMinutes = existing.TotalWorkMinutes()

	if err := s.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(*existing), nil
}

// AutoCloseOpenSessions implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AutoCloseOpenSessions(ctx context.Context, olderThanHours int) (int, error) {
	sessions, err := s.AttendanceRepository.GetOpenSessions(ctx, olderThanHours)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, session := range sessions {
		if session.PunchIn == nil {
			continue
		}

		// Credit a standard eight hour day when the punch-out was missed.
		punchOut := session.PunchIn.Add(8 * time.Hour)
		session.PunchOut = &punchOut
		session.WorkMinutes = session.TotalWorkMinutes()
		session.Status = "auto_closed"

		if err := s.AttendanceRepository.Update(ctx, session); err != nil {
			return closed, fmt.Errorf("failed to auto-close attendance %s: %w", session.ID, err)
		}
		closed++
	}

	return closed, nil
}

// ListMy implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMy(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter.EmployeeID = &employeeID
	return s.List(ctx, filter)
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, toAttendanceResponse(a))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}
