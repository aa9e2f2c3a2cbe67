package announcement

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func ValidPriorities() []string {
	return []string{
		string(PriorityLow),
		string(PriorityNormal),
		string(PriorityHigh),
		string(PriorityUrgent),
	}
}

// Audience selects which roles an announcement is delivered to.
type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceEmployees Audience = "employees"
	AudienceStaff     Audience = "staff"
)

func ValidAudiences() []string {
	return []string{
		string(AudienceAll),
		string(AudienceEmployees),
		string(AudienceStaff),
	}
}

type Announcement struct {
	ID        string
	Title     string
	Body      string
	Priority  Priority
	Audience  Audience
	IsActive  bool
	ExpiresAt *time.Time
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	AuthorName *string
}

// Expired reports whether the announcement has passed its expiry time.
func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && a.ExpiresAt.Before(now)
}
