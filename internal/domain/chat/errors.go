package chat

import "errors"

var (
	ErrChatNotFound    = errors.New("chat not found")
	ErrNotParticipant  = errors.New("user is not a participant of this chat")
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyChat       = errors.New("a chat needs at least two participants")
)
