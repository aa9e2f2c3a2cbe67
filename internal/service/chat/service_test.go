package chat

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/chat"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatRepo struct {
	chats map[string]chat.Chat
}

func (f *fakeChatRepo) Create(ctx context.Context, c chat.Chat) (chat.Chat, error) {
	c.ID = fmt.Sprintf("chat-%d", len(f.chats)+1)
	f.chats[c.ID] = c
	return c, nil
}

func (f *fakeChatRepo) GetByID(ctx context.Context, id string) (chat.Chat, error) {
	c, ok := f.chats[id]
	if !ok {
		return chat.Chat{}, chat.ErrChatNotFound
	}
	return c, nil
}

func (f *fakeChatRepo) GetDirectBetween(ctx context.Context, userA, userB string) (*chat.Chat, error) {
	return nil, nil
}

func (f *fakeChatRepo) ListByUser(ctx context.Context, userID string) ([]chat.Chat, error) {
	return nil, nil
}

func (f *fakeChatRepo) SetLastMessage(ctx context.Context, chatID string, m chat.Message) error {
	c, ok := f.chats[chatID]
	if !ok {
		return chat.ErrChatNotFound
	}
	preview := m.Preview()
	c.LastMessageBody = &preview
	c.LastMessageSender = &m.SenderID
	f.chats[chatID] = c
	return nil
}

type fakeMessageRepo struct {
	messages []chat.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, m chat.Message) (chat.Message, error) {
	m.ID = fmt.Sprintf("msg-%d", len(f.messages)+1)
	m.CreatedAt = time.Now().UTC()
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeMessageRepo) ListByChat(ctx context.Context, chatID string, filter chat.HistoryFilter) ([]chat.Message, int64, error) {
	return f.messages, int64(len(f.messages)), nil
}

func (f *fakeMessageRepo) MarkRead(ctx context.Context, chatID, readerID string) ([]string, error) {
	return nil, nil
}

func (f *fakeMessageRepo) CountUnread(ctx context.Context, chatID, userID string) (int64, error) {
	return 0, nil
}

func ctxWithUser(t *testing.T, userID string) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    "employee",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func fixture() (*fakeChatRepo, *fakeMessageRepo, *sse.Hub, chat.ChatService) {
	chatRepo := &fakeChatRepo{chats: map[string]chat.Chat{
		"chat-1": {
			ID:           "chat-1",
			Type:         chat.TypeGroup,
			Participants: []string{"alice", "bob"},
			CreatedBy:    "alice",
		},
	}}
	messageRepo := &fakeMessageRepo{}
	hub := sse.NewHub()
	return chatRepo, messageRepo, hub, NewChatService(chatRepo, messageRepo, hub)
}

func drain(ch chan sse.Event) []sse.Event {
	var events []sse.Event
	for {
		select {
		case ev := <-ch:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestJoin(t *testing.T) {
	t.Run("participant joins the room", func(t *testing.T) {
		_, _, hub, svc := fixture()

		require.NoError(t, svc.Join(ctxWithUser(t, "alice"), "chat-1"))
		assert.True(t, hub.InRoom("chat-1", "alice"))
	})

	t.Run("outsider is rejected and never joins", func(t *testing.T) {
		_, _, hub, svc := fixture()

		err := svc.Join(ctxWithUser(t, "mallory"), "chat-1")
		assert.ErrorIs(t, err, chat.ErrNotParticipant)
		assert.False(t, hub.InRoom("chat-1", "mallory"))
	})
}

func TestSend(t *testing.T) {
	t.Run("outsider cannot send", func(t *testing.T) {
		_, messageRepo, _, svc := fixture()

		_, err := svc.Send(ctxWithUser(t, "mallory"), chat.SendMessageRequest{
			ChatID: "chat-1",
			Body:   "hello",
		})
		assert.ErrorIs(t, err, chat.ErrNotParticipant)
		assert.Empty(t, messageRepo.messages)
	})

	t.Run("message reaches every room member, sender included", func(t *testing.T) {
		chatRepo, _, hub, svc := fixture()

		aliceCh, aliceCleanup := hub.Subscribe("alice")
		defer aliceCleanup()
		bobCh, bobCleanup := hub.Subscribe("bob")
		defer bobCleanup()
		hub.JoinRoom("chat-1", "alice")
		hub.JoinRoom("chat-1", "bob")

		sent, err := svc.Send(ctxWithUser(t, "alice"), chat.SendMessageRequest{
			ChatID: "chat-1",
			Body:   "hello",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", sent.SenderID)

		aliceEvents := drain(aliceCh)
		require.Len(t, aliceEvents, 1)
		assert.Equal(t, "new_message", aliceEvents[0].Event)

		bobEvents := drain(bobCh)
		require.Len(t, bobEvents, 1)
		assert.Equal(t, "new_message", bobEvents[0].Event)

		snapshot := chatRepo.chats["chat-1"]
		require.NotNil(t, snapshot.LastMessageBody)
		assert.Equal(t, "hello", *snapshot.LastMessageBody)
	})
}

func TestTyping(t *testing.T) {
	t.Run("relay skips the typist", func(t *testing.T) {
		_, _, hub, svc := fixture()

		aliceCh, aliceCleanup := hub.Subscribe("alice")
		defer aliceCleanup()
		bobCh, bobCleanup := hub.Subscribe("bob")
		defer bobCleanup()
		hub.JoinRoom("chat-1", "alice")
		hub.JoinRoom("chat-1", "bob")

		require.NoError(t, svc.Typing(ctxWithUser(t, "alice"), "chat-1", true))

		assert.Empty(t, drain(aliceCh))

		bobEvents := drain(bobCh)
		require.Len(t, bobEvents, 1)
		assert.Equal(t, "user_typing", bobEvents[0].Event)
	})
}
