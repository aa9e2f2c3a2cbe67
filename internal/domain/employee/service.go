package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetByUserID(ctx context.Context, userID string) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, filter ListFilter) (ListEmployeeResponse, error)
	UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)
}
