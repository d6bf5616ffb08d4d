package directory

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"pump-partner/internal/database"
)

func ensureSource(ctx context.Context, db database.DB, name, baseURL string) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, fmt.Errorf("nil db")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, fmt.Errorf("empty source name")
	}

	_, _ = db.Exec(ctx,
		`INSERT INTO directory_sources (id, name, base_url) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
		name,
		nullableText(baseURL),
	)

	row := db.QueryRow(ctx, `SELECT id FROM directory_sources WHERE name = $1 LIMIT 1`, name)
	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func createImportRun(ctx context.Context, db database.DB, sourceID uuid.UUID) (uuid.UUID, error) {
	if db == nil {
		return uuid.Nil, fmt.Errorf("nil db")
	}
	id := uuid.New()
	_, err := db.Exec(ctx,
		`INSERT INTO import_runs (id, source_id, started_at, status) VALUES ($1,$2,$3,$4)`,
		id, sourceID, time.Now().UTC(), "running",
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func finishImportRun(ctx context.Context, db database.DB, runID uuid.UUID, status string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if runID == uuid.Nil {
		return nil
	}
	_, err := db.Exec(ctx,
		`UPDATE import_runs SET finished_at = $2, status = $3 WHERE id = $1`,
		runID, time.Now().UTC(), strings.TrimSpace(status),
	)
	return err
}

func logImport(ctx context.Context, db database.DB, runID uuid.UUID, level, message string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if runID == uuid.Nil {
		return nil
	}
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	_, err := db.Exec(ctx,
		`INSERT INTO import_logs (id, import_run_id, level, message) VALUES ($1,$2,$3,$4)`,
		uuid.New(), runID, level, message,
	)
	return err
}

func nullableText(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func pickNonEmpty(a, b string) string {
	a = strings.TrimSpace(a)
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
