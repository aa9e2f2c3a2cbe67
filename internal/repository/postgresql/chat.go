package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/chat"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type chatRepositoryImpl struct {
	db *database.DB
}

func NewChatRepository(db *database.DB) chat.ChatRepository {
	return &chatRepositoryImpl{db: db}
}

const chatSelect = `
	SELECT c.id, c.type, c.name, c.participants, c.created_by,
		   c.last_message_body, c.last_message_sender, c.last_message_at,
		   c.created_at, c.updated_at
	FROM chats c
`

func scanChat(row pgx.Row) (chat.Chat, error) {
	var c chat.Chat
	err := row.Scan(
		&c.ID,
		&c.Type,
		&c.Name,
		&c.Participants,
		&c.CreatedBy,
		&c.LastMessageBody,
		&c.LastMessageSender,
		&c.LastMessageAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create implements chat.ChatRepository.
func (r *chatRepositoryImpl) Create(ctx context.Context, c chat.Chat) (chat.Chat, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO chats (id, type, name, participants, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.ID,
		c.Type,
		c.Name,
		c.Participants,
		c.CreatedBy,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return chat.Chat{}, fmt.Errorf("failed to create chat: %w", err)
	}

	return c, nil
}

// GetByID implements chat.ChatRepository.
func (r *chatRepositoryImpl) GetByID(ctx context.Context, id string) (chat.Chat, error) {
	q := GetQuerier(ctx, r.db)

	query := chatSelect + ` WHERE c.id = $1`

	found, err := scanChat(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chat.Chat{}, chat.ErrChatNotFound
		}
		return chat.Chat{}, fmt.Errorf("failed to get chat: %w", err)
	}

	return found, nil
}

// GetDirectBetween implements chat.ChatRepository.
func (r *chatRepositoryImpl) GetDirectBetween(ctx context.Context, userA, userB string) (*chat.Chat, error) {
	q := GetQuerier(ctx, r.db)

	query := chatSelect + `
		WHERE c.type = 'direct'
		  AND c.participants @> ARRAY[$1, $2]::text[]
		  AND array_length(c.participants, 1) = 2
	`

	found, err := scanChat(q.QueryRow(ctx, query, userA, userB))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get direct chat: %w", err)
	}

	return &found, nil
}

// ListByUser implements chat.ChatRepository.
func (r *chatRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]chat.Chat, error) {
	q := GetQuerier(ctx, r.db)

	query := chatSelect + `
		WHERE c.participants @> ARRAY[$1]::text[]
		ORDER BY COALESCE(c.last_message_at, c.created_at) DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []chat.Chat
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}

	return chats, rows.Err()
}

// SetLastMessage implements chat.ChatRepository.
func (r *chatRepositoryImpl) SetLastMessage(ctx context.Context, chatID string, m chat.Message) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE chats
		SET last_message_body = $1, last_message_sender = $2, last_message_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := q.Exec(ctx, query, m.Preview(), m.SenderID, m.CreatedAt, chatID)
	if err != nil {
		return fmt.Errorf("failed to set last message: %w", err)
	}
	if result.RowsAffected() == 0 {
		return chat.ErrChatNotFound
	}

	return nil
}

type messageRepositoryImpl struct {
	db *database.DB
}

func NewMessageRepository(db *database.DB) chat.MessageRepository {
	return &messageRepositoryImpl{db: db}
}

const messageSelect = `
	SELECT m.id, m.chat_id, m.sender_id, m.type, m.body, m.file_url, m.is_read, m.created_at, u.name
	FROM messages m
	JOIN users u ON u.id = m.sender_id
`

func scanMessage(row pgx.Row) (chat.Message, error) {
	var m chat.Message
	err := row.Scan(
		&m.ID,
		&m.ChatID,
		&m.SenderID,
		&m.Type,
		&m.Body,
		&m.FileURL,
		&m.IsRead,
		&m.CreatedAt,
		&m.SenderName,
	)
	return m, err
}

// Create implements chat.MessageRepository.
func (r *messageRepositoryImpl) Create(ctx context.Context, m chat.Message) (chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	query := `
		INSERT INTO messages (id, chat_id, sender_id, type, body, file_url, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		m.ID,
		m.ChatID,
		m.SenderID,
		m.Type,
		m.Body,
		m.FileURL,
		m.IsRead,
	).Scan(&m.CreatedAt)
	if err != nil {
		return chat.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	return m, nil
}

// ListByChat implements chat.MessageRepository.
func (r *messageRepositoryImpl) ListByChat(ctx context.Context, chatID string, filter chat.HistoryFilter) ([]chat.Message, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `SELECT COUNT(*) FROM messages WHERE chat_id = $1`
	var total int64
	if err := q.QueryRow(ctx, countQuery, chatID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	query := messageSelect + `
		WHERE m.chat_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, chatID, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, total, rows.Err()
}

// MarkRead implements chat.MessageRepository.
func (r *messageRepositoryImpl) MarkRead(ctx context.Context, chatID, readerID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE messages
		SET is_read = true
		WHERE chat_id = $1 AND sender_id <> $2 AND is_read = false
		RETURNING id
	`

	rows, err := q.Query(ctx, query, chatID, readerID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan message id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// CountUnread implements chat.MessageRepository.
func (r *messageRepositoryImpl) CountUnread(ctx context.Context, chatID, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM messages WHERE chat_id = $1 AND sender_id <> $2 AND is_read = false`

	var count int64
	if err := q.QueryRow(ctx, query, chatID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}
