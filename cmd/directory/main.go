package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"pump-partner/internal/app"
	"pump-partner/internal/config"
	"pump-partner/internal/database/migration"
	"pump-partner/internal/directory"
	"pump-partner/internal/repository"
)

func main() {
	targetsPath := flag.String("targets", "", "path to a JSON file of directory targets")
	workers := flag.Int("workers", 4, "concurrent upsert workers")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := (migration.Runner{Dir: "migrations"}).Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	targets, err := loadTargets(*targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}
	if len(targets) == 0 {
		log.Fatalf("provide -targets pointing at a non-empty JSON target list")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	im := directory.NewImporter(c.DB, repository.NewPostgresGymRepository(c.DB), log.Default())
	if err := im.Import(ctx, targets, *workers); err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("directory import complete | targets=%d", len(targets))
}

func loadTargets(path string) ([]directory.Target, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []directory.Target
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
