package backend

import (
	"context"
	"errors"
	"io"
	"log"
)

// ProfileStorageKey - имя блоба профиля. Менять нельзя: старые сохранения потеряются.
const ProfileStorageKey = "player_profile_v1"

var ErrBackendClosed = errors.New("persistence backend is closed")

// PersistenceBackend читает и пишет один непрозрачный блоб профиля.
// Load возвращает domain.ErrNotFound, если профиля ещё нет.
type PersistenceBackend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	// SupportsCloud только для диагностики, на контракт не влияет.
	SupportsCloud() bool
	Close() error
}

// KeyValueStore - носитель: sqlite на устройстве, Redis или Postgres в облаке.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard, "", 0)
	}
	return l
}
