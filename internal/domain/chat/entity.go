package chat

import "time"

type Type string

const (
	TypeDirect Type = "direct"
	TypeGroup  Type = "group"
)

func ValidTypes() []string {
	return []string{string(TypeDirect), string(TypeGroup)}
}

type Chat struct {
	ID           string
	Type         Type
	Name         *string
	Participants []string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Snapshot of the latest message, denormalised onto the chat row so
	// conversation lists render without a join per chat.
	LastMessageBody   *string
	LastMessageSender *string
	LastMessageAt     *time.Time
}

// HasParticipant reports whether the user belongs to the chat.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageFile  MessageType = "file"
	MessageImage MessageType = "image"
)

func ValidMessageTypes() []string {
	return []string{string(MessageText), string(MessageFile), string(MessageImage)}
}

type Message struct {
	ID        string
	ChatID    string
	SenderID  string
	Type      MessageType
	Body      string
	FileURL   *string
	IsRead    bool
	CreatedAt time.Time

	SenderName *string
}

// Preview is the text shown in conversation lists. Non-text messages get a
// placeholder instead of their raw body.
func (m *Message) Preview() string {
	switch m.Type {
	case MessageFile:
		return "📎 File"
	case MessageImage:
		return "🖼️ Image"
	default:
		return m.Body
	}
}
