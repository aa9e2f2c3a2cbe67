package task

import "time"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

func ValidStatuses() []string {
	return []string{
		string(StatusTodo),
		string(StatusInProgress),
		string(StatusReview),
		string(StatusCompleted),
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ValidPriorities() []string {
	return []string{
		string(PriorityLow),
		string(PriorityMedium),
		string(PriorityHigh),
	}
}

// Comment is stored inline on the task row as a jsonb array element.
type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type Task struct {
	ID          string
	Title       string
	Description *string
	AssignedTo  string
	AssignedBy  string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	Comments    []Comment
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined from employees for list views.
	AssigneeName *string
	AssignerName *string
}

// IsAssignee reports whether the given employee owns the task.
func (t *Task) IsAssignee(employeeID string) bool {
	return t.AssignedTo == employeeID
}
