package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/waste3d/survivors-profile/internal/domain"
	"github.com/waste3d/survivors-profile/internal/infrastructure/backend"
	"github.com/waste3d/survivors-profile/internal/infrastructure/codec"
)

// ProfileStore - единственный владелец живого профиля в процессе.
// Чтения идут из памяти, каждая запись сразу уходит в backend.
// Не потокобезопасен: вызывается из главного цикла игры.
type ProfileStore struct {
	backend backend.PersistenceBackend
	logger  *log.Logger
	gate    domain.AdCooldownGate

	current *domain.ProfileRecord
}

func NewProfileStore(b backend.PersistenceBackend, logger *log.Logger) *ProfileStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ProfileStore{
		backend: b,
		logger:  logger,
		gate:    domain.NewAdCooldownGate(),
	}
}

// Current возвращает копию профиля. При первом обращении читает backend.
func (s *ProfileStore) Current(ctx context.Context) (domain.ProfileRecord, error) {
	p, err := s.load(ctx)
	if err != nil {
		return domain.ProfileRecord{}, err
	}
	return p.Clone(), nil
}

// Persist пишет закэшированный профиль в backend.
func (s *ProfileStore) Persist(ctx context.Context) error {
	if s.current == nil {
		return nil
	}
	data, err := codec.Encode(*s.current)
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	return nil
}

// Reload сбрасывает кэш. Следующий Current перечитает backend.
func (s *ProfileStore) Reload() {
	s.current = nil
}

// SupportsCloud - для диагностики в UI.
func (s *ProfileStore) SupportsCloud() bool {
	return s.backend.SupportsCloud()
}

func (s *ProfileStore) load(ctx context.Context) (*domain.ProfileRecord, error) {
	if s.current != nil {
		return s.current, nil
	}

	data, err := s.backend.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("profile: no stored profile, creating default")
			return s.bootstrap(ctx), nil
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}

	decoded, err := codec.Decode(data)
	if err != nil {
		s.logger.Printf("profile: stored profile unreadable (%d bytes): %v; profile reset to defaults", len(data), err)
		return s.bootstrap(ctx), nil
	}

	dirty := len(decoded.Repairs) > 0
	for _, r := range decoded.Repairs {
		s.logger.Printf("profile: corrupt data repaired: %s", r)
	}

	switch v := decoded.Record.SchemaVersion; {
	case v > domain.CurrentSchemaVersion:
		s.logger.Printf("profile: stored schema v%d is newer than v%d, keeping as is", v, domain.CurrentSchemaVersion)
	case v < domain.CurrentSchemaVersion:
		s.logger.Printf("profile: migrating schema v%d -> v%d", v, domain.CurrentSchemaVersion)
		dirty = true
	}

	p := domain.Validate(decoded.Record)
	s.current = &p

	// Перезаписываем починенный профиль, чтобы следующая загрузка была чистой
	if dirty {
		if err := s.Persist(ctx); err != nil {
			s.logger.Printf("profile: failed to store repaired profile: %v", err)
		}
	}
	return s.current, nil
}

func (s *ProfileStore) bootstrap(ctx context.Context) *domain.ProfileRecord {
	p := domain.CreateDefault()
	s.current = &p
	if err := s.Persist(ctx); err != nil {
		s.logger.Printf("profile: failed to store default profile: %v", err)
	}
	return s.current
}

// mutate - одна мутация в памяти и один Persist.
// Если fn вернула ошибку, профиль не тронут и ничего не пишется.
func (s *ProfileStore) mutate(ctx context.Context, fn func(p *domain.ProfileRecord) error) error {
	_, err := s.apply(ctx, fn)
	return err
}

// apply - как mutate, но сообщает, применена ли мутация в памяти.
// applied=true с ошибкой значит: профиль изменён, но не сохранён.
func (s *ProfileStore) apply(ctx context.Context, fn func(p *domain.ProfileRecord) error) (bool, error) {
	p, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if err := fn(p); err != nil {
		return false, err
	}
	return true, s.Persist(ctx)
}

// ResetProfile заменяет профиль свежим и сразу сохраняет.
func (s *ProfileStore) ResetProfile(ctx context.Context) error {
	p := domain.CreateDefault()
	s.current = &p
	s.logger.Printf("profile: reset requested, profile reset to defaults")
	return s.Persist(ctx)
}

// CooldownRemaining - секунды до следующей наградной рекламы.
func (s *ProfileStore) CooldownRemaining(ctx context.Context, now time.Time) (int, error) {
	p, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return s.gate.Remaining(p.LastAdWatchedAt, now), nil
}

func (s *ProfileStore) CanWatchAd(ctx context.Context, now time.Time) (bool, error) {
	remaining, err := s.CooldownRemaining(ctx, now)
	if err != nil {
		return false, err
	}
	return remaining == 0, nil
}
