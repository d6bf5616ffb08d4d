package notify

import (
	"context"
	"encoding/json"
	"time"
)

const (
	TypePartnerRequest  = "PARTNER_REQUEST"
	TypeRequestAccepted = "REQUEST_ACCEPTED"
)

// Payload is what a recipient would see: display strings plus optional
// string metadata used for typed routing on the client.
type Payload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// SendResult records one delivery attempt per recipient.
type SendResult struct {
	Recipient string    `json:"recipient"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Payload   Payload   `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Broadcaster pushes a marshaled delivery to connected realtime clients.
// The websocket hub satisfies it; a nil broadcaster is fine.
type Broadcaster interface {
	Broadcast(message []byte)
}

// Dispatcher delivers notifications into an injected Store. It carries
// no real transport; the production push service would bind here.
type Dispatcher struct {
	store       Store
	broadcaster Broadcaster
	now         func() time.Time
}

func NewDispatcher(store Store, broadcaster Broadcaster) *Dispatcher {
	return &Dispatcher{store: store, broadcaster: broadcaster, now: time.Now}
}

// Send fans the payload out to every recipient, one always-success
// result each. Results land in the store in call order.
func (d *Dispatcher) Send(ctx context.Context, to []string, payload Payload) []SendResult {
	if err := ctx.Err(); err != nil {
		return nil
	}

	results := make([]SendResult, 0, len(to))
	for _, r := range to {
		res := SendResult{
			Recipient: r,
			Success:   true,
			Payload:   payload,
			Timestamp: d.now().UTC(),
		}
		if d.store != nil {
			d.store.Append(res)
		}
		results = append(results, res)
	}

	if d.broadcaster != nil && len(results) > 0 {
		if b, err := json.Marshal(results); err == nil {
			d.broadcaster.Broadcast(b)
		}
	}

	return results
}

// PartnerRequestOpts describes who is asking and, optionally, where.
type PartnerRequestOpts struct {
	FromName string
	Gym      string
}

// NotifyPartnerRequest tells toUID that someone wants to train with
// them. The body mentions the gym when one is supplied.
func (d *Dispatcher) NotifyPartnerRequest(ctx context.Context, toUID string, opts PartnerRequestOpts) []SendResult {
	body := opts.FromName + " sent you a partner request"
	if opts.Gym != "" {
		body = opts.FromName + " wants to train with you at " + opts.Gym
	}

	return d.Send(ctx, []string{toUID}, Payload{
		Title: "New Partner Request",
		Body:  body,
		Data: map[string]string{
			"type":     TypePartnerRequest,
			"fromName": opts.FromName,
			"gym":      opts.Gym,
		},
	})
}

// MatchAcceptedOpts names the partner who accepted.
type MatchAcceptedOpts struct {
	PartnerName string
}

// NotifyMatchAccepted tells toUID their request went through.
func (d *Dispatcher) NotifyMatchAccepted(ctx context.Context, toUID string, opts MatchAcceptedOpts) []SendResult {
	return d.Send(ctx, []string{toUID}, Payload{
		Title: "Partner Request Accepted",
		Body:  opts.PartnerName + " accepted your partner request",
		Data: map[string]string{
			"type":        TypeRequestAccepted,
			"partnerName": opts.PartnerName,
		},
	})
}
