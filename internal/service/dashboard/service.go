package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/attendance"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/dashboard"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/leave"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/notification"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/task"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/sse"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboardRepository    dashboard.DashboardRepository
	attendanceRepository   attendance.AttendanceRepository
	leaveRepository        leave.LeaveRepository
	taskRepository         task.TaskRepository
	notificationRepository notification.NotificationRepository
	hub                    *sse.Hub
}

func NewDashboardService(
	dashboardRepository dashboard.DashboardRepository,
	attendanceRepository attendance.AttendanceRepository,
	leaveRepository leave.LeaveRepository,
	taskRepository task.TaskRepository,
	notificationRepository notification.NotificationRepository,
	hub *sse.Hub,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		dashboardRepository:    dashboardRepository,
		attendanceRepository:   attendanceRepository,
		leaveRepository:        leaveRepository,
		taskRepository:         taskRepository,
		notificationRepository: notificationRepository,
		hub:                    hub,
	}
}

func workDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AdminSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AdminSummary(ctx context.Context) (dashboard.AdminSummary, error) {
	var summary dashboard.AdminSummary
	today := workDay(time.Now())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, active, err := s.dashboardRepository.CountEmployees(gctx)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		summary.TotalEmployees = total
		summary.ActiveEmployees = active
		return nil
	})

	g.Go(func() error {
		present, err := s.attendanceRepository.CountPresentOn(gctx, today)
		if err != nil {
			return fmt.Errorf("failed to count present employees: %w", err)
		}
		summary.PresentToday = present
		return nil
	})

	g.Go(func() error {
		pending, err := s.leaveRepository.CountPending(gctx)
		if err != nil {
			return fmt.Errorf("failed to count pending leaves: %w", err)
		}
		summary.PendingLeaves = pending
		return nil
	})

	g.Go(func() error {
		open, err := s.dashboardRepository.CountOpenTasks(gctx)
		if err != nil {
			return fmt.Errorf("failed to count open tasks: %w", err)
		}
		summary.OpenTasks = open
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminSummary{}, err
	}

	summary.OnlineUsers = s.hub.TotalSubscribers()

	return summary, nil
}

// EmployeeSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) EmployeeSummary(ctx context.Context) (dashboard.EmployeeSummary, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return dashboard.EmployeeSummary{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, _ := claims["user_id"].(string)
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return dashboard.EmployeeSummary{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	var summary dashboard.EmployeeSummary
	today := workDay(time.Now())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		record, err := s.attendanceRepository.GetByEmployeeAndDate(gctx, employeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if record != nil && record.PunchIn != nil && record.PunchOut == nil {
			summary.ClockedIn = true
			summary.ClockInAt = record.PunchIn
		}
		return nil
	})

	g.Go(func() error {
		status := string(leave.StatusPending)
		_, total, err := s.leaveRepository.List(gctx, leave.Filter{
			EmployeeID: &employeeID,
			Status:     &status,
			Page:       1,
			Limit:      1,
		})
		if err != nil {
			return fmt.Errorf("failed to count pending leaves: %w", err)
		}
		summary.PendingLeaves = total
		return nil
	})

	g.Go(func() error {
		open, err := s.taskRepository.CountOpenByAssignee(gctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to count open tasks: %w", err)
		}
		summary.OpenTasks = open
		return nil
	})

	g.Go(func() error {
		unread, err := s.notificationRepository.CountUnread(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to count unread notifications: %w", err)
		}
		summary.UnreadNotifs = unread
		return nil
	})

	g.Go(func() error {
		net, err := s.dashboardRepository.LatestNetSalary(gctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get latest net salary: %w", err)
		}
		summary.LatestPayrollNet = net
		return nil
	})

	g.Go(func() error {
		active, err := s.dashboardRepository.CountActiveAnnouncements(gctx)
		if err != nil {
			return fmt.Errorf("failed to count active announcements: %w", err)
		}
		summary.ActiveAnnouncements = active
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.EmployeeSummary{}, err
	}

	return summary, nil
}
