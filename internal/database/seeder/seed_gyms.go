package seeder

import (
	"context"
	"fmt"

	"pump-partner/internal/database"
)

// GymsSeeder inserts a small starter directory so fresh installs have
// gyms to attach profiles to before any import runs.
type GymsSeeder struct{}

func (GymsSeeder) Name() string { return "gyms" }

func (GymsSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name string
		City string
	}{
		{Name: "Iron Temple", City: "Jakarta"},
		{Name: "City Gym", City: "Jakarta"},
		{Name: "Powerhouse Fitness", City: "Bandung"},
		{Name: "The Barbell Club", City: "Surabaya"},
		{Name: "Flex Factory", City: "Yogyakarta"},
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO gyms (id, name, city, source) VALUES (gen_random_uuid(), $1, $2, 'seed') ON CONFLICT (name, city) DO NOTHING`,
			it.Name, it.City,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
