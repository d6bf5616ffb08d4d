package notify

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"
)

func newTestDispatcher() (*Dispatcher, *MemoryStore) {
	store := NewMemoryStore()
	d := NewDispatcher(store, nil)
	d.now = func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }
	return d, store
}

func TestSend_FansOutPerRecipient(t *testing.T) {
	d, store := newTestDispatcher()

	payload := Payload{Title: "hi", Body: "there"}
	results := d.Send(context.Background(), []string{"u1", "u2"}, payload)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	recipients := []string{results[0].Recipient, results[1].Recipient}
	sort.Strings(recipients)
	if recipients[0] != "u1" || recipients[1] != "u2" {
		t.Fatalf("unexpected recipients: %v", recipients)
	}
	for _, r := range results {
		if !r.Success {
			t.Fatalf("stub delivery must always succeed: %+v", r)
		}
		if r.Payload.Title != "hi" || r.Payload.Body != "there" {
			t.Fatalf("payload not carried through: %+v", r.Payload)
		}
		if r.Timestamp.IsZero() {
			t.Fatal("timestamp not captured")
		}
	}

	if got := len(store.Delivered()); got != 2 {
		t.Fatalf("store should hold 2 deliveries, got %d", got)
	}
}

func TestNotifyPartnerRequest_WithGym(t *testing.T) {
	d, store := newTestDispatcher()

	results := d.NotifyPartnerRequest(context.Background(), "target", PartnerRequestOpts{
		FromName: "Alex",
		Gym:      "City Gym",
	})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.Recipient != "target" {
		t.Fatalf("unexpected recipient %q", res.Recipient)
	}
	if !strings.Contains(res.Payload.Body, "Alex") || !strings.Contains(res.Payload.Body, "City Gym") {
		t.Fatalf("body should mention sender and gym: %q", res.Payload.Body)
	}
	if res.Payload.Data["type"] != TypePartnerRequest {
		t.Fatalf("unexpected data.type %q", res.Payload.Data["type"])
	}

	if got := len(store.Delivered()); got != 1 {
		t.Fatalf("store should hold 1 delivery, got %d", got)
	}
}

func TestNotifyPartnerRequest_WithoutGym(t *testing.T) {
	d, _ := newTestDispatcher()

	results := d.NotifyPartnerRequest(context.Background(), "target", PartnerRequestOpts{FromName: "Alex"})
	body := results[0].Payload.Body
	if !strings.Contains(body, "Alex") || strings.Contains(body, " at ") {
		t.Fatalf("gymless body should not mention a location: %q", body)
	}
}

func TestNotifyMatchAccepted(t *testing.T) {
	d, _ := newTestDispatcher()

	results := d.NotifyMatchAccepted(context.Background(), "requester", MatchAcceptedOpts{PartnerName: "Jordan"})
	res := results[0]
	if !strings.Contains(res.Payload.Body, "Jordan") {
		t.Fatalf("body should mention partner: %q", res.Payload.Body)
	}
	if res.Payload.Data["type"] != TypeRequestAccepted {
		t.Fatalf("unexpected data.type %q", res.Payload.Data["type"])
	}
}

func TestStoreResetIsolatesScenarios(t *testing.T) {
	d, store := newTestDispatcher()

	d.Send(context.Background(), []string{"u1"}, Payload{Title: "a", Body: "b"})
	store.Reset()
	if got := len(store.Delivered()); got != 0 {
		t.Fatalf("reset should clear the log, got %d entries", got)
	}

	d.Send(context.Background(), []string{"u2"}, Payload{Title: "c", Body: "d"})
	delivered := store.Delivered()
	if len(delivered) != 1 || delivered[0].Recipient != "u2" {
		t.Fatalf("unexpected log after reset: %+v", delivered)
	}
}

func TestDeliveredReturnsCopy(t *testing.T) {
	d, store := newTestDispatcher()
	d.Send(context.Background(), []string{"u1"}, Payload{Title: "a", Body: "b"})

	got := store.Delivered()
	got[0].Recipient = "mutated"
	if store.Delivered()[0].Recipient != "u1" {
		t.Fatal("Delivered must return a copy")
	}
}

type captureBroadcaster struct {
	messages [][]byte
}

func (c *captureBroadcaster) Broadcast(message []byte) {
	c.messages = append(c.messages, message)
}

func TestSend_BroadcastsDeliveries(t *testing.T) {
	store := NewMemoryStore()
	bc := &captureBroadcaster{}
	d := NewDispatcher(store, bc)

	d.Send(context.Background(), []string{"u1", "u2"}, Payload{Title: "t", Body: "b"})
	if len(bc.messages) != 1 {
		t.Fatalf("expected one broadcast frame, got %d", len(bc.messages))
	}
	if !strings.Contains(string(bc.messages[0]), `"recipient":"u1"`) {
		t.Fatalf("broadcast frame missing recipients: %s", bc.messages[0])
	}
}
