package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pump-partner/internal/database"
)

// Gym is a directory entry users can attach their profile to. Rows come
// from the seeder or the directory importer.
type Gym struct {
	ID        uuid.UUID
	Name      string
	City      string
	URL       string
	Source    string
	ScrapedAt *time.Time
}

type GymRepository interface {
	Upsert(ctx context.Context, g Gym) error
	List(ctx context.Context, city string) ([]Gym, error)
}

type PostgresGymRepository struct {
	db database.DB
}

func NewPostgresGymRepository(db database.DB) *PostgresGymRepository {
	return &PostgresGymRepository{db: db}
}

func (r *PostgresGymRepository) Upsert(ctx context.Context, g Gym) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO gyms (id, name, city, url, source, scraped_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (name, city) DO UPDATE SET
			url = COALESCE(NULLIF(EXCLUDED.url, ''), gyms.url),
			source = EXCLUDED.source,
			scraped_at = EXCLUDED.scraped_at`,
		g.ID, strings.TrimSpace(g.Name), strings.TrimSpace(g.City), strings.TrimSpace(g.URL), g.Source, g.ScrapedAt,
	)
	return err
}

func (r *PostgresGymRepository) List(ctx context.Context, city string) ([]Gym, error) {
	query := `SELECT id, name, COALESCE(city, ''), COALESCE(url, ''), COALESCE(source, ''), scraped_at
		 FROM gyms`
	args := []any{}
	if strings.TrimSpace(city) != "" {
		query += ` WHERE lower(city) = lower($1)`
		args = append(args, strings.TrimSpace(city))
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Gym, 0)
	for rows.Next() {
		var g Gym
		if err := rows.Scan(&g.ID, &g.Name, &g.City, &g.URL, &g.Source, &g.ScrapedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
