package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pump-partner/internal/database"
	"pump-partner/internal/domain/profile"
	"pump-partner/internal/domain/schedule"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	Upsert(ctx context.Context, p profile.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	ListOthers(ctx context.Context, excludeUserID uuid.UUID) ([]profile.Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// Upsert writes the profile row and replaces its schedule blocks in one
// transaction, so readers never observe a half-updated schedule.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now().UTC()
	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (user_id, display_name, gym, split, goals, level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			gym = EXCLUDED.gym,
			split = EXCLUDED.split,
			goals = EXCLUDED.goals,
			level = EXCLUDED.level,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.DisplayName, p.Gym, p.Split, p.Goals, p.Level.String(), now,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM schedule_blocks WHERE user_id = $1`, p.UserID); err != nil {
		return err
	}
	for _, b := range p.Blocks {
		_, err := tx.Exec(ctx,
			`INSERT INTO schedule_blocks (id, user_id, day, start_min, end_min)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), p.UserID, b.Day.String(), b.Start, b.End,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, COALESCE(display_name, ''), COALESCE(gym, ''), COALESCE(split, ''),
			COALESCE(goals, '{}'), COALESCE(level, ''), created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	)

	var p profile.Profile
	var level string
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.Gym, &p.Split, &p.Goals, &level, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	p.Level = profile.ParseLevel(level)

	blocks, err := r.blocksFor(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}
	p.Blocks = blocks
	return p, nil
}

func (r *PostgresProfileRepository) ListOthers(ctx context.Context, excludeUserID uuid.UUID) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, COALESCE(display_name, ''), COALESCE(gym, ''), COALESCE(split, ''),
			COALESCE(goals, '{}'), COALESCE(level, ''), created_at, updated_at
		 FROM profiles WHERE user_id <> $1
		 ORDER BY updated_at DESC`,
		excludeUserID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		var p profile.Profile
		var level string
		if err := rows.Scan(&p.UserID, &p.DisplayName, &p.Gym, &p.Split, &p.Goals, &level, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Level = profile.ParseLevel(level)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		blocks, err := r.blocksFor(ctx, out[i].UserID)
		if err != nil {
			return nil, err
		}
		out[i].Blocks = blocks
	}
	return out, nil
}

func (r *PostgresProfileRepository) blocksFor(ctx context.Context, userID uuid.UUID) ([]schedule.Block, error) {
	rows, err := r.db.Query(ctx,
		`SELECT day, start_min, end_min FROM schedule_blocks
		 WHERE user_id = $1
		 ORDER BY day, start_min`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedule.Block, 0)
	for rows.Next() {
		var day string
		var b schedule.Block
		if err := rows.Scan(&day, &b.Start, &b.End); err != nil {
			return nil, err
		}
		d, ok := schedule.ParseDay(day)
		if !ok {
			continue
		}
		b.Day = d
		out = append(out, b)
	}
	return out, rows.Err()
}
