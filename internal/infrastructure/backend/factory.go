package backend

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/waste3d/survivors-profile/config"
	"github.com/waste3d/survivors-profile/internal/infrastructure/cache"
	"github.com/waste3d/survivors-profile/internal/infrastructure/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Platform string

const (
	PlatformLocal Platform = "local"
	PlatformCloud Platform = "cloud"
)

// DetectPlatform: явный PLATFORM, иначе облако, если известен игрок.
func DetectPlatform(cfg config.Config) Platform {
	switch Platform(strings.ToLower(strings.TrimSpace(cfg.Platform))) {
	case PlatformLocal:
		return PlatformLocal
	case PlatformCloud:
		return PlatformCloud
	}
	if strings.TrimSpace(cfg.PlayerID) != "" {
		return PlatformCloud
	}
	return PlatformLocal
}

// New выбирает реализацию в рантайме.
func New(ctx context.Context, cfg config.Config, logger *log.Logger) (PersistenceBackend, error) {
	if DetectPlatform(cfg) == PlatformCloud {
		b, err := newCloud(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	b, err := newLocal(cfg)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func newLocal(cfg config.Config) (*LocalBackend, error) {
	db, err := repository.OpenSQLite(cfg.LocalDBPath)
	if err != nil {
		return nil, err
	}
	repo := repository.NewBlobRepository(db)
	if err := repo.Migrate(); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("failed to migrate local storage: %w", err)
	}
	return NewLocalBackend(repo), nil
}

func newCloud(ctx context.Context, cfg config.Config, logger *log.Logger) (*CloudBackend, error) {
	playerID, err := uuid.Parse(strings.TrimSpace(cfg.PlayerID))
	if err != nil {
		return nil, fmt.Errorf("invalid player id %q: %w", cfg.PlayerID, err)
	}

	var store KeyValueStore
	switch strings.ToLower(cfg.CloudProvider) {
	case "", "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		store = cache.NewProfileCache(rdb)
	case "postgres":
		db, err := repository.OpenPostgres(repository.PostgresConfig{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Name:     cfg.DBName,
		})
		if err != nil {
			return nil, err
		}
		repo := repository.NewBlobRepository(db)
		if err := repo.Migrate(); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("failed to migrate DB: %w", err)
		}
		store = repo
	default:
		return nil, fmt.Errorf("unknown cloud provider %q", cfg.CloudProvider)
	}

	return NewCloudBackend(store, playerID, cfg.CloudSaveTimeout, logger), nil
}
