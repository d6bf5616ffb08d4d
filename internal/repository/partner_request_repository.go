package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pump-partner/internal/database"
)

var ErrPartnerRequestNotFound = errors.New("partner request not found")

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

type PartnerRequest struct {
	ID          uuid.UUID
	FromUserID  uuid.UUID
	ToUserID    uuid.UUID
	Status      string
	CreatedAt   time.Time
	RespondedAt *time.Time
}

type PartnerRequestRepository interface {
	Create(ctx context.Context, req PartnerRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (PartnerRequest, error)
	ExistsPending(ctx context.Context, fromUserID, toUserID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]PartnerRequest, error)
}

type PostgresPartnerRequestRepository struct {
	db database.DB
}

func NewPostgresPartnerRequestRepository(db database.DB) *PostgresPartnerRequestRepository {
	return &PostgresPartnerRequestRepository{db: db}
}

func (r *PostgresPartnerRequestRepository) Create(ctx context.Context, req PartnerRequest) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO partner_requests (id, from_user_id, to_user_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		req.ID, req.FromUserID, req.ToUserID, req.Status, time.Now().UTC(),
	)
	return err
}

func (r *PostgresPartnerRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (PartnerRequest, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, from_user_id, to_user_id, status, created_at, responded_at
		 FROM partner_requests WHERE id = $1`,
		id,
	)
	var req PartnerRequest
	if err := row.Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.Status, &req.CreatedAt, &req.RespondedAt); err != nil {
		if isNoRows(err) {
			return PartnerRequest{}, ErrPartnerRequestNotFound
		}
		return PartnerRequest{}, err
	}
	return req, nil
}

func (r *PostgresPartnerRequestRepository) ExistsPending(ctx context.Context, fromUserID, toUserID uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM partner_requests
			WHERE from_user_id = $1 AND to_user_id = $2 AND status = $3
		)`,
		fromUserID, toUserID, RequestStatusPending,
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresPartnerRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE partner_requests SET status = $2, responded_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPartnerRequestNotFound
	}
	return nil
}

func (r *PostgresPartnerRequestRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]PartnerRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, from_user_id, to_user_id, status, created_at, responded_at
		 FROM partner_requests
		 WHERE from_user_id = $1 OR to_user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PartnerRequest, 0)
	for rows.Next() {
		var req PartnerRequest
		if err := rows.Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.Status, &req.CreatedAt, &req.RespondedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
