package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/waste3d/survivors-profile/internal/domain"
)

// LocalBackend пишет синхронно в хранилище устройства под одним фиксированным ключом.
type LocalBackend struct {
	store KeyValueStore
	key   string
}

func NewLocalBackend(store KeyValueStore) *LocalBackend {
	return &LocalBackend{store: store, key: ProfileStorageKey}
}

func (b *LocalBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := b.store.Get(ctx, b.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("local load: %w", err)
	}
	return data, nil
}

func (b *LocalBackend) Save(ctx context.Context, data []byte) error {
	if err := b.store.Put(ctx, b.key, data); err != nil {
		return fmt.Errorf("local save: %w", err)
	}
	return nil
}

func (b *LocalBackend) SupportsCloud() bool { return false }

func (b *LocalBackend) Close() error {
	return b.store.Close()
}
