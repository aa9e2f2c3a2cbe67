package chat

import (
	"context"
	"fmt"
	"math"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/chat"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/sse"
)

type ChatServiceImpl struct {
	chatRepository    chat.ChatRepository
	messageRepository chat.MessageRepository
	hub               *sse.Hub
}

func NewChatService(chatRepository chat.ChatRepository, messageRepository chat.MessageRepository, hub *sse.Hub) chat.ChatService {
	return &ChatServiceImpl{
		chatRepository:    chatRepository,
		messageRepository: messageRepository,
		hub:               hub,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

func toMessageResponse(m chat.Message) chat.MessageResponse {
	return chat.MessageResponse{
		ID:         m.ID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Type:       string(m.Type),
		Body:       m.Body,
		FileURL:    m.FileURL,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}

func toChatResponse(c chat.Chat, unread int64) chat.ChatResponse {
	return chat.ChatResponse{
		ID:           c.ID,
		Type:         string(c.Type),
		Name:         c.Name,
		Participants: c.Participants,
		CreatedBy:    c.CreatedBy,
		UnreadCount:  unread,
		LastMessage:  c.LastMessageBody,
		LastSender:   c.LastMessageSender,
		LastActivity: c.LastMessageAt,
		CreatedAt:    c.CreatedAt,
	}
}

// Create implements chat.ChatService.
func (s *ChatServiceImpl) Create(ctx context.Context, req chat.CreateChatRequest) (chat.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return chat.ChatResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return chat.ChatResponse{}, err
	}

	if req.Type == string(chat.TypeDirect) {
		existing, err := s.chatRepository.GetDirectBetween(ctx, userID, req.Participants[0])
		if err != nil {
			return chat.ChatResponse{}, err
		}
		if existing != nil {
			unread, err := s.messageRepository.CountUnread(ctx, existing.ID, userID)
			if err != nil {
				return chat.ChatResponse{}, err
			}
			return toChatResponse(*existing, unread), nil
		}
	}

	participants := []string{userID}
	for _, p := range req.Participants {
		if p != userID {
			participants = append(participants, p)
		}
	}
	if len(participants) < 2 {
		return chat.ChatResponse{}, chat.ErrEmptyChat
	}

	created, err := s.chatRepository.Create(ctx, chat.Chat{
		Type:         chat.Type(req.Type),
		Name:         req.Name,
		Participants: participants,
		CreatedBy:    userID,
	})
	if err != nil {
		return chat.ChatResponse{}, err
	}

	response := toChatResponse(created, 0)
	s.hub.PublishToMany(participants, sse.Event{Event: "new_chat", Data: response})

	return response, nil
}

// GetByID implements chat.ChatService.
func (s *ChatServiceImpl) GetByID(ctx context.Context, id string) (chat.ChatResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return chat.ChatResponse{}, err
	}

	found, err := s.chatRepository.GetByID(ctx, id)
	if err != nil {
		return chat.ChatResponse{}, err
	}
	if !found.HasParticipant(userID) {
		return chat.ChatResponse{}, chat.ErrNotParticipant
	}

	unread, err := s.messageRepository.CountUnread(ctx, id, userID)
	if err != nil {
		return chat.ChatResponse{}, err
	}

	return toChatResponse(found, unread), nil
}

// ListMy implements chat.ChatService.
func (s *ChatServiceImpl) ListMy(ctx context.Context) ([]chat.ChatResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	chats, err := s.chatRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]chat.ChatResponse, 0, len(chats))
	for _, c := range chats {
		unread, err := s.messageRepository.CountUnread(ctx, c.ID, userID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toChatResponse(c, unread))
	}

	return responses, nil
}

// membership loads the chat and verifies the caller belongs to it.
func (s *ChatServiceImpl) membership(ctx context.Context, chatID string) (chat.Chat, string, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return chat.Chat{}, "", err
	}

	found, err := s.chatRepository.GetByID(ctx, chatID)
	if err != nil {
		return chat.Chat{}, "", err
	}
	if !found.HasParticipant(userID) {
		return chat.Chat{}, "", chat.ErrNotParticipant
	}

	return found, userID, nil
}

// Join implements chat.ChatService.
func (s *ChatServiceImpl) Join(ctx context.Context, chatID string) error {
	_, userID, err := s.membership(ctx, chatID)
	if err != nil {
		return err
	}

	s.hub.JoinRoom(chatID, userID)
	return nil
}

// Leave implements chat.ChatService.
func (s *ChatServiceImpl) Leave(ctx context.Context, chatID string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	s.hub.LeaveRoom(chatID, userID)
	return nil
}

// Send implements chat.ChatService.
func (s *ChatServiceImpl) Send(ctx context.Context, req chat.SendMessageRequest) (chat.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return chat.MessageResponse{}, err
	}

	_, userID, err := s.membership(ctx, req.ChatID)
	if err != nil {
		return chat.MessageResponse{}, err
	}

	created, err := s.messageRepository.Create(ctx, chat.Message{
		ChatID:   req.ChatID,
		SenderID: userID,
		Type:     chat.MessageType(req.Type),
		Body:     req.Body,
		FileURL:  req.FileURL,
		IsRead:   false,
	})
	if err != nil {
		return chat.MessageResponse{}, err
	}

	if err := s.chatRepository.SetLastMessage(ctx, req.ChatID, created); err != nil {
		return chat.MessageResponse{}, err
	}

	response := toMessageResponse(created)
	// Every connection in the room gets the message, the sender's included,
	// so the sender's other tabs stay in sync.
	s.hub.PublishToRoom(req.ChatID, sse.Event{Event: "new_message", Data: response}, "")

	return response, nil
}

// History implements chat.ChatService.
func (s *ChatServiceImpl) History(ctx context.Context, chatID string, filter chat.HistoryFilter) (chat.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return chat.HistoryResponse{}, err
	}

	if _, _, err := s.membership(ctx, chatID); err != nil {
		return chat.HistoryResponse{}, err
	}

	messages, total, err := s.messageRepository.ListByChat(ctx, chatID, filter)
	if err != nil {
		return chat.HistoryResponse{}, err
	}

	responses := make([]chat.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, toMessageResponse(m))
	}

	return chat.HistoryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Messages:   responses,
	}, nil
}

// MarkRead implements chat.ChatService.
func (s *ChatServiceImpl) MarkRead(ctx context.Context, chatID string) error {
	_, userID, err := s.membership(ctx, chatID)
	if err != nil {
		return err
	}

	messageIDs, err := s.messageRepository.MarkRead(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if len(messageIDs) == 0 {
		return nil
	}

	s.hub.PublishToRoom(chatID, sse.Event{
		Event: "messages_read",
		Data: map[string]interface{}{
			"chat_id":     chatID,
			"reader_id":   userID,
			"message_ids": messageIDs,
		},
	}, userID)

	return nil
}

// Typing implements chat.ChatService.
func (s *ChatServiceImpl) Typing(ctx context.Context, chatID string, typing bool) error {
	_, userID, err := s.membership(ctx, chatID)
	if err != nil {
		return err
	}

	event := "user_typing"
	if !typing {
		event = "user_stop_typing"
	}

	s.hub.PublishToRoom(chatID, sse.Event{
		Event: event,
		Data: map[string]interface{}{
			"chat_id": chatID,
			"user_id": userID,
		},
	}, userID)

	return nil
}
