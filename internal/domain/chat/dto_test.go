package chat

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChatRequestValidate(t *testing.T) {
	other := uuid.New().String()
	name := "Engineering"

	t.Run("valid direct", func(t *testing.T) {
		req := CreateChatRequest{Type: "direct", Participants: []string{other}}
		assert.NoError(t, req.Validate())
	})

	t.Run("valid group", func(t *testing.T) {
		req := CreateChatRequest{Type: "group", Name: &name, Participants: []string{other, uuid.New().String()}}
		assert.NoError(t, req.Validate())
	})

	t.Run("invalid type", func(t *testing.T) {
		req := CreateChatRequest{Type: "broadcast", Participants: []string{other}}
		assert.Error(t, req.Validate())
	})

	t.Run("direct with two participants", func(t *testing.T) {
		req := CreateChatRequest{Type: "direct", Participants: []string{other, uuid.New().String()}}
		assert.Error(t, req.Validate())
	})

	t.Run("group without name", func(t *testing.T) {
		req := CreateChatRequest{Type: "group", Participants: []string{other}}
		assert.Error(t, req.Validate())
	})

	t.Run("no participants", func(t *testing.T) {
		req := CreateChatRequest{Type: "group", Name: &name}
		assert.Error(t, req.Validate())
	})

	t.Run("malformed participant id", func(t *testing.T) {
		req := CreateChatRequest{Type: "direct", Participants: []string{"not-a-uuid"}}
		assert.Error(t, req.Validate())
	})
}

func TestSendMessageRequestValidate(t *testing.T) {
	fileURL := "/uploads/chat/u1/doc.pdf"

	t.Run("text message", func(t *testing.T) {
		req := SendMessageRequest{Body: "hello"}
		require.NoError(t, req.Validate())
		assert.Equal(t, "text", req.Type)
	})

	t.Run("text without body", func(t *testing.T) {
		req := SendMessageRequest{Type: "text", Body: "   "}
		assert.Error(t, req.Validate())
	})

	t.Run("file message", func(t *testing.T) {
		req := SendMessageRequest{Type: "file", FileURL: &fileURL}
		assert.NoError(t, req.Validate())
	})

	t.Run("file without url", func(t *testing.T) {
		req := SendMessageRequest{Type: "file", Body: "doc.pdf"}
		assert.Error(t, req.Validate())
	})

	t.Run("image message", func(t *testing.T) {
		req := SendMessageRequest{Type: "image", FileURL: &fileURL}
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		req := SendMessageRequest{Type: "video", FileURL: &fileURL}
		assert.Error(t, req.Validate())
	})
}

func TestHistoryFilterDefaults(t *testing.T) {
	f := HistoryFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)

	f = HistoryFilter{Limit: 500}
	assert.Error(t, f.Validate())

	f = HistoryFilter{Page: -1}
	assert.Error(t, f.Validate())
}

func TestMessagePreview(t *testing.T) {
	url := "/uploads/chat/u1/pic.png"

	text := Message{Type: MessageText, Body: "see you at 3"}
	assert.Equal(t, "see you at 3", text.Preview())

	file := Message{Type: MessageFile, FileURL: &url}
	assert.Equal(t, "📎 File", file.Preview())

	image := Message{Type: MessageImage, FileURL: &url}
	assert.Equal(t, "🖼️ Image", image.Preview())
}
