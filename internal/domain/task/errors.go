package task

import "errors"

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotTaskOwner = errors.New("task is assigned to another employee")
	ErrAssigneeGone = errors.New("assigned employee not found")
)
