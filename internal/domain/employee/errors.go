package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee already exists for this user")
	ErrNotOwnProfile    = errors.New("cannot modify another employee's profile")
)
