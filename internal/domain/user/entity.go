package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access
	RoleHR       Role = "hr"       // Can manage employees, approve leave, run payroll
	RoleEmployee Role = "employee" // Regular employee
)

// ValidRoles returns the assignable roles.
func ValidRoles() []string {
	return []string{string(RoleAdmin), string(RoleHR), string(RoleEmployee)}
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         Role
	Department   *string
	AvatarURL    *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsStaff checks if user is admin or HR
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}

// CanApprove checks if user can approve leave and manage payroll
func (u *User) CanApprove() bool {
	return u.IsStaff()
}
