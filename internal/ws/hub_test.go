package ws

import (
	"testing"
	"time"
)

func TestHub_BroadcastReachesClients(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	c1 := &Client{hub: hub, send: make(chan []byte, 4)}
	c2 := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Broadcast([]byte("hello"))

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.send:
			if string(msg) != "hello" {
				t.Fatalf("unexpected message %q", msg)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("broadcast never arrived")
		}
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.Register(slow)

	hub.Broadcast([]byte("one"))

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("slow client was never dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, open := <-slow.send; open {
		t.Fatal("dropped client's send channel should be closed")
	}
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub := NewHub(nil)

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)
	hub.Unregister(c)
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}
