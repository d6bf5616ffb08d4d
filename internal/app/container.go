package app

import (
	"context"
	"log"
	"time"

	"pump-partner/internal/config"
	"pump-partner/internal/database"
	dbpostgres "pump-partner/internal/database/postgres"
	"pump-partner/internal/infrastructure/cache"
)

// Container holds the process-wide infrastructure handles.
type Container struct {
	Config config.Config
	DB     database.DB
	Redis  *cache.Redis
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  cache.NewRedis(cfg.Redis, log.Default()),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
