package chat

import "context"

type ChatRepository interface {
	Create(ctx context.Context, c Chat) (Chat, error)
	GetByID(ctx context.Context, id string) (Chat, error)

	// GetDirectBetween returns the direct chat shared by exactly the two
	// users, or nil when none exists yet.
	GetDirectBetween(ctx context.Context, userA, userB string) (*Chat, error)

	// ListByUser returns the user's chats ordered by last activity.
	ListByUser(ctx context.Context, userID string) ([]Chat, error)

	// SetLastMessage updates the denormalised snapshot on the chat row.
	SetLastMessage(ctx context.Context, chatID string, m Message) error
}

type MessageRepository interface {
	Create(ctx context.Context, m Message) (Message, error)

	// ListByChat pages through a chat's history, newest first.
	ListByChat(ctx context.Context, chatID string, filter HistoryFilter) ([]Message, int64, error)

	// MarkRead flags every message in the chat not sent by the reader.
	// Returns the IDs of the messages it touched.
	MarkRead(ctx context.Context, chatID, readerID string) ([]string, error)

	CountUnread(ctx context.Context, chatID, userID string) (int64, error)
}
