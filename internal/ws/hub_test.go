package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestClient(hub *Hub, userID uint, isAdmin bool) *Client {
	return &Client{
		Hub:     hub,
		Send:    make(chan []byte, 4),
		UserID:  userID,
		IsAdmin: isAdmin,
	}
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case message, ok := <-client.Send:
		if !ok {
			t.Fatal("send channel closed while waiting for event")
		}
		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("no event within a second")
	}
	return Event{}
}

func TestPushToUserReachesOnlyThatUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := newTestClient(hub, 1, false)
	bob := newTestClient(hub, 2, false)
	hub.Register <- alice
	hub.Register <- bob

	hub.PushToUser(1, "new_comment", map[string]any{"forum_id": 5})

	event := receiveEvent(t, alice)
	if event.Type != "new_comment" {
		t.Errorf("event type = %q, want new_comment", event.Type)
	}

	select {
	case message := <-bob.Send:
		t.Errorf("unexpected event for other user: %s", message)
	default:
	}
}

func TestUnregisterClosesSendAfterUnindex(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 7, true)
	hub.Register <- client
	hub.Unregister <- client

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-client.Send:
			if !ok {
				// closed; pushes to the departed user must now be no-ops
				hub.PushToUser(7, "new_comment", nil)
				hub.PushToAdmins("new_report", nil)
				return
			}
		case <-deadline:
			t.Fatal("send channel never closed after unregister")
		}
	}
}

func TestConcurrentPushWithUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 7, true)
	hub.Register <- client

	// drain so the client is never reaped as slow
	go func() {
		for range client.Send {
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			hub.PushToUser(7, "new_comment", map[string]any{"i": i})
			hub.PushToAdmins("new_report", nil)
		}
	}()

	hub.Unregister <- client
	<-done
}
