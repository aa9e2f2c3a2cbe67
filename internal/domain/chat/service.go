package chat

import "context"

type ChatService interface {
	// Create opens a chat. For direct chats an existing conversation between
	// the same two users is returned instead of creating a duplicate.
	Create(ctx context.Context, req CreateChatRequest) (ChatResponse, error)

	GetByID(ctx context.Context, id string) (ChatResponse, error)
	ListMy(ctx context.Context) ([]ChatResponse, error)

	// Join subscribes the caller's live stream to the chat room. Callers who
	// are not participants are rejected with ErrNotParticipant.
	Join(ctx context.Context, chatID string) error
	Leave(ctx context.Context, chatID string) error

	// Send persists the message, refreshes the chat's last-message snapshot
	// and pushes a new_message event to everyone else in the room.
	Send(ctx context.Context, req SendMessageRequest) (MessageResponse, error)

	History(ctx context.Context, chatID string, filter HistoryFilter) (HistoryResponse, error)

	// MarkRead flags the other side's messages as read and emits a
	// messages_read event to the room.
	MarkRead(ctx context.Context, chatID string) error

	// Typing relays an ephemeral typing indicator; nothing is persisted.
	Typing(ctx context.Context, chatID string, typing bool) error
}
