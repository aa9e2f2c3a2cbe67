package announcement

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/announcement"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/notification"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/user"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/sse"
)

type AnnouncementServiceImpl struct {
	db *database.DB
	announcement.AnnouncementRepository
	user.UserRepository
	hub                 *sse.Hub
	notificationService notification.NotificationService
}

func NewAnnouncementService(db *database.DB, announcementRepository announcement.AnnouncementRepository, userRepository user.UserRepository, hub *sse.Hub, notificationService notification.NotificationService) announcement.AnnouncementService {
	return &AnnouncementServiceImpl{
		db:                     db,
		AnnouncementRepository: announcementRepository,
		UserRepository:         userRepository,
		hub:                    hub,
		notificationService:    notificationService,
	}
}

func toAnnouncementResponse(a announcement.Announcement) announcement.AnnouncementResponse {
	return announcement.AnnouncementResponse{
		ID:         a.ID,
		Title:      a.Title,
		Body:       a.Body,
		Priority:   string(a.Priority),
		Audience:   string(a.Audience),
		IsActive:   a.IsActive,
		ExpiresAt:  a.ExpiresAt,
		CreatedBy:  a.CreatedBy,
		AuthorName: a.AuthorName,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// Create implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Create(ctx context.Context, req announcement.CreateAnnouncementRequest) (announcement.AnnouncementResponse, error) {
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return announcement.AnnouncementResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	creatorID, ok := claims["user_id"].(string)
	if !ok || creatorID == "" {
		return announcement.AnnouncementResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.ExpiresAt); err == nil {
			expiresAt = &parsed
		}
	}

	created, err := s.AnnouncementRepository.Create(ctx, announcement.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		Priority:  announcement.Priority(req.Priority),
		Audience:  announcement.Audience(req.Audience),
		IsActive:  true,
		ExpiresAt: expiresAt,
		CreatedBy: creatorID,
	})
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	s.deliver(ctx, created, creatorID)

	return toAnnouncementResponse(created), nil
}

// deliver pushes the announcement to live streams and queues a notification
// for every user in the audience, excluding the author.
func (s *AnnouncementServiceImpl) deliver(ctx context.Context, a announcement.Announcement, authorID string) {
	event := sse.Event{
		Event: "new_announcement",
		Data:  toAnnouncementResponse(a),
	}

	userIDs, err := s.UserRepository.GetIDsByRole(ctx, string(a.Audience))
	if err != nil {
		return
	}

	recipients := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id == authorID {
			continue
		}
		recipients = append(recipients, id)
	}

	s.hub.PublishToMany(recipients, event)

	link := "/announcements/" + a.ID
	s.notificationService.Queue(notification.Payload{
		UserIDs: recipients,
		Type:    notification.TypeAnnouncementMade,
		Title:   a.Title,
		Body:    a.Body,
		Link:    &link,
	})
}

// GetByID implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) GetByID(ctx context.Context, id string) (announcement.AnnouncementResponse, error) {
	found, err := s.AnnouncementRepository.GetByID(ctx, id)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}
	return toAnnouncementResponse(found), nil
}

// Update implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Update(ctx context.Context, req announcement.UpdateAnnouncementRequest) (announcement.AnnouncementResponse, error) {
	if err := req.Validate(); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	current, err := s.AnnouncementRepository.GetByID(ctx, req.ID)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.Body != nil {
		current.Body = *req.Body
	}
	if req.Priority != nil {
		current.Priority = announcement.Priority(*req.Priority)
	}
	if req.Audience != nil {
		current.Audience = announcement.Audience(*req.Audience)
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.ExpiresAt); err == nil {
			current.ExpiresAt = &parsed
		}
	}

	if err := s.AnnouncementRepository.Update(ctx, current); err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	return toAnnouncementResponse(current), nil
}

// Delete implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) Delete(ctx context.Context, id string) error {
	return s.AnnouncementRepository.Delete(ctx, id)
}

// List implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) List(ctx context.Context, filter announcement.Filter) (announcement.ListAnnouncementResponse, error) {
	if err := filter.Validate(); err != nil {
		return announcement.ListAnnouncementResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return announcement.ListAnnouncementResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	role, _ := claims["role"].(string)

	// Employees only see posts addressed to everyone or to employees.
	if role == "employee" {
		filter.Audiences = []announcement.Audience{announcement.AudienceAll, announcement.AudienceEmployees}
	}

	announcements, total, err := s.AnnouncementRepository.List(ctx, filter)
	if err != nil {
		return announcement.ListAnnouncementResponse{}, err
	}

	responses := make([]announcement.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		responses = append(responses, toAnnouncementResponse(a))
	}

	return announcement.ListAnnouncementResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		TotalPages:    int(math.Ceil(float64(total) / float64(filter.Limit))),
		Announcements: responses,
	}, nil
}

// SweepExpired implements announcement.AnnouncementService.
func (s *AnnouncementServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	return s.AnnouncementRepository.DeactivateExpired(ctx)
}
