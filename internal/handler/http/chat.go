package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/chat"
	"github.com/greythr-lite/hrms-backend-go/internal/handler/http/response"
	"github.com/greythr-lite/hrms-backend-go/internal/service/file"
)

type ChatHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	Join(w http.ResponseWriter, r *http.Request)
	Leave(w http.ResponseWriter, r *http.Request)
	Send(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	Typing(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
}

type ChatHandlerImpl struct {
	chatService chat.ChatService
	fileService file.FileService
}

func NewChatHandler(chatService chat.ChatService, fileService file.FileService) ChatHandler {
	return &ChatHandlerImpl{
		chatService: chatService,
		fileService: fileService,
	}
}

// Create implements ChatHandler.
func (h *ChatHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req chat.CreateChatRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create chat decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.chatService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Chat created successfully", created)
}

// GetByID implements ChatHandler.
func (h *ChatHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Chat ID is required", nil)
		return
	}

	found, err := h.chatService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// ListMy implements ChatHandler.
func (h *ChatHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatService.ListMy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, chats)
}

// Join implements ChatHandler.
func (h *ChatHandlerImpl) Join(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Chat ID is required", nil)
		return
	}

	if err := h.chatService.Join(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Joined chat room", nil)
}

// Leave implements ChatHandler.
func (h *ChatHandlerImpl) Leave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Chat ID is required", nil)
		return
	}

	if err := h.chatService.Leave(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Left chat room", nil)
}

// Send implements ChatHandler.
func (h *ChatHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	var req chat.SendMessageRequest

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Chat ID is required", nil)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Send message decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ChatID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	message, err := h.chatService.Send(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Message sent successfully", message)
}

// History implements ChatHandler.
func (h *ChatHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Chat ID is required", nil)
		return
	}

	filter := chat.HistoryFilter{}
	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	history, err := h.chatService.History(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// MarkRead implements ChatHandler.
func (h *ChatHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Chat ID is required", nil)
		return
	}

	if err := h.chatService.MarkRead(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Messages marked as read", nil)
}

// Upload implements ChatHandler. The returned file_url is sent back through
// the regular send-message endpoint as a file or image message.
func (h *ChatHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	uploaded, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer uploaded.Close()

	path, isImage, err := h.fileService.UploadChatFile(r.Context(), userID, uploaded, fileHeader.Filename)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	messageType := chat.MessageFile
	if isImage {
		messageType = chat.MessageImage
	}

	response.Created(w, "File uploaded successfully", map[string]string{
		"file_url": path,
		"type":     string(messageType),
	})
}

// Typing implements ChatHandler.
func (h *ChatHandlerImpl) Typing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Typing bool `json:"typing"`
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Chat ID is required", nil)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.chatService.Typing(r.Context(), id, req.Typing); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Typing indicator sent", nil)
}
