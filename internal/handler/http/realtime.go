package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/handler/http/response"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/jwt"
	"github.com/greythr-lite/hrms-backend-go/internal/pkg/sse"
)

type RealtimeHandler interface {
	// StreamToken mints a short-lived token the browser passes as a query
	// parameter, since EventSource cannot set an Authorization header.
	StreamToken(w http.ResponseWriter, r *http.Request)

	Stream(w http.ResponseWriter, r *http.Request)

	// UpdateStatus broadcasts a presence change to every connected user.
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type RealtimeHandlerImpl struct {
	jwtService jwt.Service
	hub        *sse.Hub
}

func NewRealtimeHandler(jwtService jwt.Service, hub *sse.Hub) RealtimeHandler {
	return &RealtimeHandlerImpl{
		jwtService: jwtService,
		hub:        hub,
	}
}

// StreamToken implements RealtimeHandler.
func (h *RealtimeHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
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

	token, expiresIn, err := h.jwtService.GenerateStreamToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream implements RealtimeHandler.
func (h *RealtimeHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w, "Stream token is required")
		return
	}

	userID, err := h.jwtService.ValidateStreamToken(token)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	wasOnline := h.hub.IsOnline(userID)
	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	if !wasOnline {
		h.hub.Broadcast(sse.Event{
			Event: "user_status_update",
			Data:  map[string]interface{}{"user_id": userID, "online": true},
		}, userID)
	}
	defer func() {
		// Last connection gone means the user went offline.
		if h.hub.SubscriberCount(userID) <= 1 {
			h.hub.Broadcast(sse.Event{
				Event: "user_status_update",
				Data:  map[string]interface{}{"user_id": userID, "online": false},
			}, userID)
		}
	}()

	writeEvent(w, sse.Event{
		Event: "connected",
		Data:  map[string]string{"user_id": userID},
	})
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			writeEvent(w, event)
			flusher.Flush()
		}
	}
}

// UpdateStatus implements RealtimeHandler.
func (h *RealtimeHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		response.BadRequest(w, "Field 'status' is required", nil)
		return
	}

	h.hub.Broadcast(sse.Event{
		Event: "user_status_update",
		Data: map[string]interface{}{
			"user_id": userID,
			"status":  req.Status,
			"online":  h.hub.IsOnline(userID),
		},
	}, userID)

	response.SuccessWithMessage(w, "Status updated", nil)
}

func writeEvent(w http.ResponseWriter, event sse.Event) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		slog.Error("Failed to marshal SSE event", "event", event.Event, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, payload)
}
