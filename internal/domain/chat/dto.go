package chat

import (
	"time"

	"github.com/greythr-lite/hrms-backend-go/internal/pkg/validator"
)

type CreateChatRequest struct {
	Type         string   `json:"type"`
	Name         *string  `json:"name,omitempty"`
	Participants []string `json:"participants"`
}

func (r *CreateChatRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, ValidTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: direct, group",
		})
	}

	if len(r.Participants) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "participants",
			Message: "participants is required",
		})
	}

	if r.Type == string(TypeDirect) && len(r.Participants) != 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "participants",
			Message: "a direct chat takes exactly one other participant",
		})
	}

	if r.Type == string(TypeGroup) && (r.Name == nil || validator.IsEmpty(*r.Name)) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required for group chats",
		})
	}

	for _, p := range r.Participants {
		if !validator.IsValidUUID(p) {
			errs = append(errs, validator.ValidationError{
				Field:   "participants",
				Message: "participants must be valid user ids",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SendMessageRequest struct {
	ChatID  string  `json:"-"`
	Type    string  `json:"type,omitempty"` // defaults to text
	Body    string  `json:"body"`
	FileURL *string `json:"file_url,omitempty"`
}

func (r *SendMessageRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type == "" {
		r.Type = string(MessageText)
	}
	if !validator.IsInSlice(r.Type, ValidMessageTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: text, file, image",
		})
	}

	if r.Type == string(MessageText) && validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required for text messages",
		})
	}

	if r.Type != string(MessageText) && (r.FileURL == nil || validator.IsEmpty(*r.FileURL)) {
		errs = append(errs, validator.ValidationError{
			Field:   "file_url",
			Message: "file_url is required for file and image messages",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *HistoryFilter) Validate() error {
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
		f.Limit = 50
	}
	if f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MessageResponse struct {
	ID         string    `json:"id"`
	ChatID     string    `json:"chat_id"`
	SenderID   string    `json:"sender_id"`
	SenderName *string   `json:"sender_name,omitempty"`
	Type       string    `json:"type"`
	Body       string    `json:"body"`
	FileURL    *string   `json:"file_url,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChatResponse struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Name         *string    `json:"name,omitempty"`
	Participants []string   `json:"participants"`
	CreatedBy    string     `json:"created_by"`
	UnreadCount  int64      `json:"unread_count"`
	LastMessage  *string    `json:"last_message,omitempty"`
	LastSender   *string    `json:"last_sender,omitempty"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type HistoryResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Messages   []MessageResponse `json:"messages"`
}
