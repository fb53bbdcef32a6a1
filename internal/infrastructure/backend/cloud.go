package backend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/waste3d/survivors-profile/internal/domain"

	"github.com/google/uuid"
)

const DefaultCloudSaveTimeout = 10 * time.Second

// CloudBackend хранит профиль в удалённом key/value под ключом сессии игрока.
// Save не ждёт сети: payload уходит фоновому писателю, который всегда пишет последний принятый.
// Повторов при ошибке нет, ошибка только логируется.
type CloudBackend struct {
	store   KeyValueStore
	key     string
	timeout time.Duration
	logger  *log.Logger

	mu         sync.Mutex
	latest     []byte
	latestSeq  uint64
	writtenSeq uint64
	closed     bool

	wake      chan struct{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func NewCloudBackend(store KeyValueStore, playerID uuid.UUID, timeout time.Duration, logger *log.Logger) *CloudBackend {
	if timeout <= 0 {
		timeout = DefaultCloudSaveTimeout
	}
	b := &CloudBackend{
		store:   store,
		key:     CloudKey(playerID),
		timeout: timeout,
		logger:  orDiscard(logger),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go b.run()
	return b
}

// CloudKey - ключ профиля конкретного игрока.
func CloudKey(playerID uuid.UUID) string {
	return ProfileStorageKey + ":" + playerID.String()
}

// Load отдаёт ещё не записанный payload, если он есть, иначе читает из облака.
func (b *CloudBackend) Load(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	if b.latestSeq > b.writtenSeq {
		data := append([]byte(nil), b.latest...)
		b.mu.Unlock()
		return data, nil
	}
	b.mu.Unlock()

	data, err := b.store.Get(ctx, b.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("cloud load: %w", err)
	}
	return data, nil
}

// Save принимает payload и сразу возвращается.
func (b *CloudBackend) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBackendClosed
	}
	b.latest = append([]byte(nil), data...)
	b.latestSeq++
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
		// писатель уже разбужен и заберёт последний payload
	}
	return nil
}

func (b *CloudBackend) SupportsCloud() bool { return true }

// Close дописывает последний payload и закрывает соединение.
func (b *CloudBackend) Close() error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
		close(b.quit)
		<-b.done
		b.closeErr = b.store.Close()
	})
	return b.closeErr
}

func (b *CloudBackend) run() {
	defer close(b.done)
	for {
		select {
		case <-b.wake:
			b.flush()
		case <-b.quit:
			b.flush()
			return
		}
	}
}

func (b *CloudBackend) flush() {
	b.mu.Lock()
	if b.latestSeq == b.writtenSeq {
		b.mu.Unlock()
		return
	}
	data, seq := b.latest, b.latestSeq
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	err := b.store.Put(ctx, b.key, data)
	cancel()
	if err != nil {
		b.logger.Printf("cloud: save of %d bytes failed, dropped: %v", len(data), err)
	}

	b.mu.Lock()
	if seq > b.writtenSeq {
		b.writtenSeq = seq
	}
	b.mu.Unlock()
}
