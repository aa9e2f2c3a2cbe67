package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Event string
	Data  interface{}
}

// Hub manages SSE subscribers, room membership and event broadcasting.
//
// Subscribers are keyed by user id: one user may hold several open streams
// (multiple tabs), each with its own buffered channel. Rooms are a map from
// room key (chat id) to the set of member user ids; membership is mutated
// only through JoinRoom/LeaveRoom/RemoveFromAllRooms. A room references its
// members by user id, never by channel, so dropping a stream never leaves a
// dangling handle inside a room.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	rooms       map[string]map[string]struct{}
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		rooms:       make(map[string]map[string]struct{}),
	}
}

// Subscribe registers a new stream for a user and returns the event channel
// and a cleanup function. Cleanup removes only this stream; the user stays in
// their rooms as long as other streams remain open.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
			h.removeFromAllRoomsLocked(userID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all streams of a specific user.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.publishLocked(userID, event)
}

// PublishToMany sends an event to multiple users.
func (h *Hub) PublishToMany(userIDs []string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, userID := range userIDs {
		h.publishLocked(userID, event)
	}
}

// PublishToRoom sends an event to every member of a room. A non-empty
// excludeUserID skips that member (used for typing relays, where the sender
// must not receive their own event).
func (h *Hub) PublishToRoom(roomID string, event Event, excludeUserID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID := range h.rooms[roomID] {
		if userID == excludeUserID {
			continue
		}
		h.publishLocked(userID, event)
	}
}

// Broadcast sends an event to every connected user (presence updates).
func (h *Hub) Broadcast(event Event, excludeUserID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID := range h.subscribers {
		if userID == excludeUserID {
			continue
		}
		h.publishLocked(userID, event)
	}
}

func (h *Hub) publishLocked(userID string, event Event) {
	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
			// Slow consumer: drop rather than block the relay.
		}
	}
}

// JoinRoom adds a user to a room. Idempotent.
func (h *Hub) JoinRoom(roomID string, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]struct{})
	}
	h.rooms[roomID][userID] = struct{}{}
}

// LeaveRoom removes a user from a room.
func (h *Hub) LeaveRoom(roomID string, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.rooms[roomID], userID)
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}
}

// InRoom reports whether a user is currently a member of a room.
func (h *Hub) InRoom(roomID string, userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.rooms[roomID][userID]
	return ok
}

// RoomMembers returns the user ids currently joined to a room.
func (h *Hub) RoomMembers(roomID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]string, 0, len(h.rooms[roomID]))
	for userID := range h.rooms[roomID] {
		members = append(members, userID)
	}
	return members
}

// IsOnline reports whether a user has at least one open stream.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[userID]) > 0
}

func (h *Hub) removeFromAllRoomsLocked(userID string) {
	for roomID, members := range h.rooms {
		delete(members, userID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// SubscriberCount returns the number of open streams for a user.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[userID])
}

// TotalSubscribers returns the total number of open streams across all users.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
