package announcement

import (
	"time"

	"github.com/greythr-lite/hrms-backend-go/internal/pkg/validator"
)

type CreateAnnouncementRequest struct {
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	Priority  string  `json:"priority,omitempty"`
	Audience  string  `json:"audience,omitempty"`
	ExpiresAt *string `json:"expires_at,omitempty"` // RFC 3339
}

func (r *CreateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}

	if r.Priority == "" {
		r.Priority = string(PriorityNormal)
	}
	if !validator.IsInSlice(r.Priority, ValidPriorities()) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, normal, high, urgent",
		})
	}

	if r.Audience == "" {
		r.Audience = string(AudienceAll)
	}
	if !validator.IsInSlice(r.Audience, ValidAudiences()) {
		errs = append(errs, validator.ValidationError{
			Field:   "audience",
			Message: "audience must be one of: all, employees, staff",
		})
	}

	if r.ExpiresAt != nil {
		if _, valid := validator.IsValidDateTime(*r.ExpiresAt); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be an RFC 3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAnnouncementRequest struct {
	ID        string  `json:"-"`
	Title     *string `json:"title,omitempty"`
	Body      *string `json:"body,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	Audience  *string `json:"audience,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

func (r *UpdateAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}

	if r.Body != nil && validator.IsEmpty(*r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body must not be empty",
		})
	}

	if r.Priority != nil && !validator.IsInSlice(*r.Priority, ValidPriorities()) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, normal, high, urgent",
		})
	}

	if r.Audience != nil && !validator.IsInSlice(*r.Audience, ValidAudiences()) {
		errs = append(errs, validator.ValidationError{
			Field:   "audience",
			Message: "audience must be one of: all, employees, staff",
		})
	}

	if r.ExpiresAt != nil {
		if _, valid := validator.IsValidDateTime(*r.ExpiresAt); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be an RFC 3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AnnouncementResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Priority   string     `json:"priority"`
	Audience   string     `json:"audience"`
	IsActive   bool       `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedBy  string     `json:"created_by"`
	AuthorName *string    `json:"author_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Filter struct {
	Priority   *string `json:"priority,omitempty"`
	ActiveOnly bool    `json:"active_only"`

	// Audiences limits results to the given audience selectors. The service
	// fills it from the caller's role so employees never see staff-only posts.
	Audiences []Audience `json:"-"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Priority != nil && !validator.IsInSlice(*f.Priority, ValidPriorities()) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, normal, high, urgent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAnnouncementResponse struct {
	TotalCount    int64                  `json:"total_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	TotalPages    int                    `json:"total_pages"`
	Announcements []AnnouncementResponse `json:"announcements"`
}
