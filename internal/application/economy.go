package application

import (
	"context"
	"errors"
	"time"

	"github.com/waste3d/survivors-profile/internal/domain"
)

// errRejected - внутренний сигнал "операция отклонена, ничего не писать".
var errRejected = errors.New("rejected")

// rejectable превращает бизнес-отказ в false без ошибки.
// ok отражает изменение профиля, err - сбой загрузки или сохранения:
// при упавшем Persist операция уже применена в памяти, поэтому true вместе с ошибкой.
func rejectable(applied bool, err error) (bool, error) {
	if errors.Is(err, errRejected) {
		return false, nil
	}
	return applied, err
}

func (s *ProfileStore) AddGold(ctx context.Context, amount int) error {
	return s.mutate(ctx, func(p *domain.ProfileRecord) error {
		return p.AddGold(amount)
	})
}

// SpendGold возвращает false и ничего не меняет, если золота меньше amount.
func (s *ProfileStore) SpendGold(ctx context.Context, amount int) (bool, error) {
	return rejectable(s.apply(ctx, func(p *domain.ProfileRecord) error {
		if err := p.SpendGold(amount); err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return errRejected
			}
			return err
		}
		return nil
	}))
}

func (s *ProfileStore) UnlockCharacter(ctx context.Context, id string) error {
	return s.mutate(ctx, func(p *domain.ProfileRecord) error {
		p.UnlockCharacter(id)
		return nil
	})
}

// SelectCharacter возвращает false, если персонаж не открыт.
func (s *ProfileStore) SelectCharacter(ctx context.Context, id string) (bool, error) {
	return rejectable(s.apply(ctx, func(p *domain.ProfileRecord) error {
		if err := p.SelectCharacter(id); err != nil {
			return errRejected
		}
		return nil
	}))
}

// PurchaseCharacter списывает цену и открывает персонажа за одну запись.
// Уже открытый персонаж второй раз не покупается.
func (s *ProfileStore) PurchaseCharacter(ctx context.Context, id string, price int) (bool, error) {
	return rejectable(s.apply(ctx, func(p *domain.ProfileRecord) error {
		if p.IsCharacterUnlocked(id) {
			return errRejected
		}
		if err := p.SpendGold(price); err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return errRejected
			}
			return err
		}
		p.UnlockCharacter(id)
		return nil
	}))
}

func (s *ProfileStore) SetStatLevel(ctx context.Context, key string, value int) error {
	return s.mutate(ctx, func(p *domain.ProfileRecord) error {
		p.SetStatLevel(key, value)
		return nil
	})
}

// UpgradeStat покупает следующий уровень характеристики. Возвращает новый уровень.
func (s *ProfileStore) UpgradeStat(ctx context.Context, key string, cost int) (int, bool, error) {
	if !domain.IsKnownStat(key) {
		return 0, false, domain.ErrUnknownStat
	}
	var level int
	ok, err := rejectable(s.apply(ctx, func(p *domain.ProfileRecord) error {
		if err := p.SpendGold(cost); err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return errRejected
			}
			return err
		}
		level = p.GetStatLevel(key) + 1
		p.SetStatLevel(key, level)
		return nil
	}))
	if !ok {
		return 0, false, err
	}
	return level, true, err
}

// RecordSessionResult обновляет рекорды. true - установлен хотя бы один новый рекорд.
func (s *ProfileStore) RecordSessionResult(ctx context.Context, survivalSeconds, kills, level, goldInRun int) (bool, error) {
	var improved bool
	err := s.mutate(ctx, func(p *domain.ProfileRecord) error {
		improved = p.UpdateHighScores(survivalSeconds, kills, level, goldInRun)
		return nil
	})
	return improved, err
}

func (s *ProfileStore) SetAdsRemoved(ctx context.Context) error {
	return s.mutate(ctx, func(p *domain.ProfileRecord) error {
		p.AdsRemoved = true
		return nil
	})
}

func (s *ProfileStore) RecordAdWatched(ctx context.Context, packID string, at time.Time) error {
	return s.mutate(ctx, func(p *domain.ProfileRecord) error {
		p.RecordAdWatched(packID, at)
		return nil
	})
}

// GrantAdReward засчитывает просмотр и начисляет награду пака одной записью.
func (s *ProfileStore) GrantAdReward(ctx context.Context, pack domain.AdPack, at time.Time) error {
	return s.mutate(ctx, func(p *domain.ProfileRecord) error {
		if err := p.AddGold(pack.GoldReward); err != nil {
			return err
		}
		p.RecordAdWatched(pack.ID, at)
		return nil
	})
}
