package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/announcement"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.AnnouncementRepository {
	return &announcementRepositoryImpl{db: db}
}

const announcementSelect = `
	SELECT a.id, a.title, a.body, a.priority, a.audience, a.is_active,
		   a.expires_at, a.created_by, a.created_at, a.updated_at, u.name
	FROM announcements a
	JOIN users u ON u.id = a.created_by
`

func scanAnnouncement(row pgx.Row) (announcement.Announcement, error) {
	var a announcement.Announcement
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Body,
		&a.Priority,
		&a.Audience,
		&a.IsActive,
		&a.ExpiresAt,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.AuthorName,
	)
	return a, err
}

// Create implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
		INSERT INTO announcements (id, title, body, priority, audience, is_active, expires_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID,
		a.Title,
		a.Body,
		a.Priority,
		a.Audience,
		a.IsActive,
		a.ExpiresAt,
		a.CreatedBy,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("failed to create announcement: %w", err)
	}

	return a, nil
}

// GetByID implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) GetByID(ctx context.Context, id string) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := announcementSelect + ` WHERE a.id = $1`

	found, err := scanAnnouncement(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.Announcement{}, fmt.Errorf("failed to get announcement: %w", err)
	}

	return found, nil
}

// Update implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Update(ctx context.Context, a announcement.Announcement) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE announcements
		SET title = $1, body = $2, priority = $3, audience = $4, is_active = $5,
			expires_at = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := q.Exec(ctx, query,
		a.Title,
		a.Body,
		a.Priority,
		a.Audience,
		a.IsActive,
		a.ExpiresAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}

	return nil
}

// Delete implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if result.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}

	return nil
}

// List implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) List(ctx context.Context, filter announcement.Filter) ([]announcement.Announcement, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := `WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.ActiveOnly {
		whereClause += " AND a.is_active = true"
	}
	if filter.Priority != nil {
		whereClause += fmt.Sprintf(" AND a.priority = $%d", argIndex)
		args = append(args, *filter.Priority)
		argIndex++
	}
	if len(filter.Audiences) > 0 {
		placeholders := make([]string, len(filter.Audiences))
		for i, aud := range filter.Audiences {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, string(aud))
			argIndex++
		}
		whereClause += fmt.Sprintf(" AND a.audience IN (%s)", strings.Join(placeholders, ", "))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM announcements a %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count announcements: %w", err)
	}

	query := fmt.Sprintf(`%s %s ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`,
		announcementSelect, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	var announcements []announcement.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}

	return announcements, total, rows.Err()
}

// DeactivateExpired implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) DeactivateExpired(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE announcements
		SET is_active = false, updated_at = NOW()
		WHERE is_active = true AND expires_at IS NOT NULL AND expires_at < NOW()
	`

	result, err := q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired announcements: %w", err)
	}

	return result.RowsAffected(), nil
}
