package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"pump-partner/internal/notify"
	"pump-partner/internal/repository"
)

type fakeRequestRepo struct {
	requests map[uuid.UUID]repository.PartnerRequest
	err      error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[uuid.UUID]repository.PartnerRequest{}}
}

func (r *fakeRequestRepo) Create(_ context.Context, req repository.PartnerRequest) error {
	if r.err != nil {
		return r.err
	}
	r.requests[req.ID] = req
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id uuid.UUID) (repository.PartnerRequest, error) {
	if r.err != nil {
		return repository.PartnerRequest{}, r.err
	}
	req, ok := r.requests[id]
	if !ok {
		return repository.PartnerRequest{}, repository.ErrPartnerRequestNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) ExistsPending(_ context.Context, fromUserID, toUserID uuid.UUID) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, req := range r.requests {
		if req.FromUserID == fromUserID && req.ToUserID == toUserID && req.Status == repository.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	if r.err != nil {
		return r.err
	}
	req, ok := r.requests[id]
	if !ok {
		return repository.ErrPartnerRequestNotFound
	}
	req.Status = status
	r.requests[id] = req
	return nil
}

func (r *fakeRequestRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]repository.PartnerRequest, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]repository.PartnerRequest, 0)
	for _, req := range r.requests {
		if req.FromUserID == userID || req.ToUserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func newRequestFixture(t *testing.T) (*PartnerRequests, *fakeRequestRepo, *notify.MemoryStore, uuid.UUID, uuid.UUID) {
	t.Helper()
	fromID := uuid.New()
	toID := uuid.New()
	profiles := newFakeProfileRepo(completeProfile(fromID, "Alex"), completeProfile(toID, "Jordan"))
	requests := newFakeRequestRepo()
	store := notify.NewMemoryStore()
	uc := NewPartnerRequestUsecase(requests, profiles, notify.NewDispatcher(store, nil))
	return uc, requests, store, fromID, toID
}

func TestPartnerRequests_Create_NotifiesTarget(t *testing.T) {
	uc, _, store, fromID, toID := newRequestFixture(t)

	req, err := uc.Create(context.Background(), fromID, toID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if req.Status != repository.RequestStatusPending {
		t.Fatalf("new request should be pending, got %q", req.Status)
	}

	delivered := store.Delivered()
	if len(delivered) != 1 {
		t.Fatalf("expected one notification, got %d", len(delivered))
	}
	n := delivered[0]
	if n.Recipient != toID.String() {
		t.Fatalf("notification went to %q, want %q", n.Recipient, toID)
	}
	if !strings.Contains(n.Payload.Body, "Alex") || !strings.Contains(n.Payload.Body, "City Gym") {
		t.Fatalf("body should name sender and gym, got %q", n.Payload.Body)
	}
}

func TestPartnerRequests_Create_SelfTarget(t *testing.T) {
	uc, _, _, fromID, _ := newRequestFixture(t)

	if _, err := uc.Create(context.Background(), fromID, fromID); !errors.Is(err, ErrSelfRequest) {
		t.Fatalf("expected ErrSelfRequest, got %v", err)
	}
}

func TestPartnerRequests_Create_DuplicatePending(t *testing.T) {
	uc, _, store, fromID, toID := newRequestFixture(t)

	if _, err := uc.Create(context.Background(), fromID, toID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	store.Reset()

	if _, err := uc.Create(context.Background(), fromID, toID); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	if len(store.Delivered()) != 0 {
		t.Fatal("rejected duplicate must not notify")
	}
}

func TestPartnerRequests_Create_IncompleteSender(t *testing.T) {
	fromID := uuid.New()
	toID := uuid.New()
	from := completeProfile(fromID, "Alex")
	from.Goals = nil
	profiles := newFakeProfileRepo(from, completeProfile(toID, "Jordan"))
	uc := NewPartnerRequestUsecase(newFakeRequestRepo(), profiles, nil)

	if _, err := uc.Create(context.Background(), fromID, toID); !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
}

func TestPartnerRequests_Create_UnknownTarget(t *testing.T) {
	fromID := uuid.New()
	profiles := newFakeProfileRepo(completeProfile(fromID, "Alex"))
	uc := NewPartnerRequestUsecase(newFakeRequestRepo(), profiles, nil)

	if _, err := uc.Create(context.Background(), fromID, uuid.New()); !errors.Is(err, ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
}

func TestPartnerRequests_Accept_NotifiesRequester(t *testing.T) {
	uc, _, store, fromID, toID := newRequestFixture(t)

	req, err := uc.Create(context.Background(), fromID, toID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	store.Reset()

	accepted, err := uc.Accept(context.Background(), req.ID, toID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if accepted.Status != repository.RequestStatusAccepted {
		t.Fatalf("status not updated, got %q", accepted.Status)
	}

	delivered := store.Delivered()
	if len(delivered) != 1 {
		t.Fatalf("expected one notification, got %d", len(delivered))
	}
	n := delivered[0]
	if n.Recipient != fromID.String() {
		t.Fatalf("acceptance should notify the requester, went to %q", n.Recipient)
	}
	if !strings.Contains(n.Payload.Body, "Jordan") {
		t.Fatalf("body should name the accepter, got %q", n.Payload.Body)
	}
}

func TestPartnerRequests_Accept_OnlyRecipientMayRespond(t *testing.T) {
	uc, _, _, fromID, toID := newRequestFixture(t)

	req, err := uc.Create(context.Background(), fromID, toID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := uc.Accept(context.Background(), req.ID, fromID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.Accept(context.Background(), req.ID, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
}

func TestPartnerRequests_Respond_OnlyOnce(t *testing.T) {
	uc, _, _, fromID, toID := newRequestFixture(t)

	req, err := uc.Create(context.Background(), fromID, toID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.Decline(context.Background(), req.ID, toID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := uc.Accept(context.Background(), req.ID, toID); !errors.Is(err, ErrRequestResponded) {
		t.Fatalf("expected ErrRequestResponded, got %v", err)
	}
}

func TestPartnerRequests_Respond_UnknownRequest(t *testing.T) {
	uc, _, _, _, toID := newRequestFixture(t)

	if _, err := uc.Accept(context.Background(), uuid.New(), toID); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestPartnerRequests_ListForUser(t *testing.T) {
	uc, _, _, fromID, toID := newRequestFixture(t)

	if _, err := uc.Create(context.Background(), fromID, toID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	mine, err := uc.ListForUser(context.Background(), fromID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 request for sender, got %d", len(mine))
	}

	none, err := uc.ListForUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no requests for stranger, got %d", len(none))
	}
}
