package employee

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/employee"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/greythr-lite/hrms-backend-go/internal/service/file"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	fileService file.FileService
}

func NewEmployeeService(db *database.DB, employeeRepository employee.EmployeeRepository, fileService file.FileService) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepository,
		fileService:        fileService,
	}
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		FullName:    e.FullName(),
		Email:       e.Email,
		Role:        e.Role,
		Phone:       e.Phone,
		Address:     e.Address,
		DateOfBirth: datePtrToString(e.DateOfBirth),
		JoinDate:    datePtrToString(e.JoinDate),
		Designation: e.Designation,
		Department:  e.Department,
		AvatarURL:   e.AvatarURL,

		BankAccountName:   e.BankAccountName,
		BankAccountNumber: e.BankAccountNumber,
		BankName:          e.BankName,
		BankIFSC:          e.BankIFSC,

		EmergencyContactName:  e.EmergencyContactName,
		EmergencyContactPhone: e.EmergencyContactPhone,

		Status: e.Status,
	}
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	found, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(found), nil
}

// GetByUserID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByUserID(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	found, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(found), nil
}

// Update implements employee.EmployeeService. Staff can update any profile;
// employees can only update their own.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	role, _ := claims["role"].(string)
	callerEmployeeID, _ := claims["employee_id"].(string)

	if role == "employee" && callerEmployeeID != req.ID {
		return employee.EmployeeResponse{}, employee.ErrNotOwnProfile
	}

	current, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	applyEmployeeUpdate(&current, req, role)

	if err := s.EmployeeRepository.Update(ctx, current); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(updated), nil
}

// applyEmployeeUpdate copies the provided fields onto the record. Designation,
// department and status stay staff-only.
func applyEmployeeUpdate(e *employee.Employee, req employee.UpdateEmployeeRequest, role string) {
	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.Phone != nil {
		e.Phone = req.Phone
	}
	if req.Address != nil {
		e.Address = req.Address
	}
	if req.DateOfBirth != nil {
		if parsed, err := time.Parse("2006-01-02", *req.DateOfBirth); err == nil {
			e.DateOfBirth = &parsed
		}
	}
	if req.BankAccountName != nil {
		e.BankAccountName = req.BankAccountName
	}
	if req.BankAccountNumber != nil {
		e.BankAccountNumber = req.BankAccountNumber
	}
	if req.BankName != nil {
		e.BankName = req.BankName
	}
	if req.BankIFSC != nil {
		e.BankIFSC = req.BankIFSC
	}
	if req.EmergencyContactName != nil {
		e.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		e.EmergencyContactPhone = req.EmergencyContactPhone
	}

	if role == "employee" {
		return
	}

	if req.JoinDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.JoinDate); err == nil {
			e.JoinDate = &parsed
		}
	}
	if req.Designation != nil {
		e.Designation = req.Designation
	}
	if req.Department != nil {
		e.Department = req.Department
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// UploadAvatar implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, employeeID string, fileReader io.Reader, filename string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	role, _ := claims["role"].(string)
	callerEmployeeID, _ := claims["employee_id"].(string)

	if role == "employee" && callerEmployeeID != employeeID {
		return "", employee.ErrNotOwnProfile
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return "", err
	}

	path, err := s.fileService.UploadAvatar(ctx, employeeID, fileReader, filename)
	if err != nil {
		return "", err
	}

	if err := s.EmployeeRepository.SetAvatarURL(ctx, emp.UserID, path); err != nil {
		return "", err
	}

	return path, nil
}
