package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribePublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{Event: "test", Data: "hello"})

	event := <-ch
	assert.Equal(t, "test", event.Event)
	assert.Equal(t, "hello", event.Data)
}

func TestPublishToUnknownUserDoesNotPanic(t *testing.T) {
	hub := NewHub()
	hub.Publish("nobody", Event{Event: "test"})
}

func TestMultipleStreamsPerUser(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	ch2, cleanup2 := hub.Subscribe("user-1")
	defer cleanup1()
	defer cleanup2()

	assert.Equal(t, 2, hub.SubscriberCount("user-1"))

	hub.Publish("user-1", Event{Event: "ping"})

	assert.Equal(t, "ping", (<-ch1).Event)
	assert.Equal(t, "ping", (<-ch2).Event)
}

func TestCleanupRemovesOnlyOwnStream(t *testing.T) {
	hub := NewHub()

	_, cleanup1 := hub.Subscribe("user-1")
	ch2, cleanup2 := hub.Subscribe("user-1")
	defer cleanup2()

	cleanup1()

	assert.True(t, hub.IsOnline("user-1"))
	assert.Equal(t, 1, hub.SubscriberCount("user-1"))

	hub.Publish("user-1", Event{Event: "still-here"})
	assert.Equal(t, "still-here", (<-ch2).Event)
}

func TestCleanupLastStreamGoesOffline(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	hub.JoinRoom("room-1", "user-1")

	cleanup()

	assert.False(t, hub.IsOnline("user-1"))
	assert.False(t, hub.InRoom("room-1", "user-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestPublishToMany(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	ch2, cleanup2 := hub.Subscribe("user-2")
	_, cleanup3 := hub.Subscribe("user-3")
	defer cleanup1()
	defer cleanup2()
	defer cleanup3()

	hub.PublishToMany([]string{"user-1", "user-2"}, Event{Event: "notice"})

	assert.Equal(t, "notice", (<-ch1).Event)
	assert.Equal(t, "notice", (<-ch2).Event)
}

func TestPublishToRoomExcludesSender(t *testing.T) {
	hub := NewHub()

	chSender, cleanupSender := hub.Subscribe("sender")
	chOther, cleanupOther := hub.Subscribe("other")
	defer cleanupSender()
	defer cleanupOther()

	hub.JoinRoom("room-1", "sender")
	hub.JoinRoom("room-1", "other")

	hub.PublishToRoom("room-1", Event{Event: "typing"}, "sender")

	assert.Equal(t, "typing", (<-chOther).Event)
	select {
	case event := <-chSender:
		t.Fatalf("sender received own event: %v", event)
	default:
	}
}

func TestBroadcastExclude(t *testing.T) {
	hub := NewHub()

	chExcluded, cleanup1 := hub.Subscribe("user-1")
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup1()
	defer cleanup2()

	hub.Broadcast(Event{Event: "presence"}, "user-1")

	assert.Equal(t, "presence", (<-ch2).Event)
	select {
	case <-chExcluded:
		t.Fatal("excluded user received broadcast")
	default:
	}
}

func TestLeaveRoom(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.JoinRoom("room-1", "user-1")
	assert.True(t, hub.InRoom("room-1", "user-1"))
	assert.Equal(t, []string{"user-1"}, hub.RoomMembers("room-1"))

	hub.LeaveRoom("room-1", "user-1")
	assert.False(t, hub.InRoom("room-1", "user-1"))
	assert.Empty(t, hub.RoomMembers("room-1"))
}

func TestSlowConsumerDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Channel buffer is 16; overfilling must drop instead of deadlock.
	for i := 0; i < 50; i++ {
		hub.Publish("user-1", Event{Event: "flood"})
	}
}
