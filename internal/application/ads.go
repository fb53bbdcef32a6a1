package application

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/waste3d/survivors-profile/internal/domain"
)

var (
	ErrAdInFlight = errors.New("rewarded ad already in progress")
	ErrAdCooldown = errors.New("rewarded ad is on cooldown")
)

// AdPresenter показывает рекламу. true - игрок досмотрел и заслужил награду.
type AdPresenter interface {
	ShowRewarded(ctx context.Context, packID string) (bool, error)
}

// PurchaseProvider проводит покупку в магазине платформы.
type PurchaseProvider interface {
	Purchase(ctx context.Context, productID string) (bool, error)
}

// RewardedAdFlow пропускает не больше одного запроса рекламы одновременно.
// Второй запрос отклоняется, а не ставится в очередь.
type RewardedAdFlow struct {
	store     *ProfileStore
	presenter AdPresenter
	now       func() time.Time

	inFlight atomic.Bool
}

func NewRewardedAdFlow(store *ProfileStore, presenter AdPresenter) *RewardedAdFlow {
	return &RewardedAdFlow{store: store, presenter: presenter, now: time.Now}
}

// Watch показывает рекламу пака и начисляет награду.
// Закрытая без награды реклама даёт false без ошибки. Отмена ctx завершает ожидание.
func (f *RewardedAdFlow) Watch(ctx context.Context, packID string) (bool, error) {
	pack, ok := domain.AdPackByID(packID)
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrUnknownAdPack, packID)
	}
	if !f.inFlight.CompareAndSwap(false, true) {
		return false, ErrAdInFlight
	}
	release := true
	defer func() {
		if release {
			f.inFlight.Store(false)
		}
	}()

	can, err := f.store.CanWatchAd(ctx, f.now())
	if err != nil {
		return false, err
	}
	if !can {
		return false, ErrAdCooldown
	}

	type result struct {
		rewarded bool
		err      error
	}
	ch := make(chan result, 1)
	go func() {
		rewarded, err := f.presenter.ShowRewarded(ctx, packID)
		ch <- result{rewarded: rewarded, err: err}
	}()

	var res result
	select {
	case res = <-ch:
	case <-ctx.Done():
		// реклама ещё на экране: флаг снимается, когда presenter вернётся
		release = false
		go func() {
			<-ch
			f.inFlight.Store(false)
		}()
		return false, ctx.Err()
	}
	if res.err != nil {
		return false, fmt.Errorf("show rewarded ad: %w", res.err)
	}
	if !res.rewarded {
		return false, nil
	}

	if err := f.store.GrantAdReward(ctx, pack, f.now()); err != nil {
		return false, err
	}
	return true, nil
}

// InFlight - идёт ли сейчас показ.
func (f *RewardedAdFlow) InFlight() bool {
	return f.inFlight.Load()
}

type PurchaseFlow struct {
	store    *ProfileStore
	provider PurchaseProvider
}

func NewPurchaseFlow(store *ProfileStore, provider PurchaseProvider) *PurchaseFlow {
	return &PurchaseFlow{store: store, provider: provider}
}

// RemoveAds покупает отключение рекламы. Повторная покупка не нужна, флаг односторонний.
func (f *PurchaseFlow) RemoveAds(ctx context.Context) (bool, error) {
	p, err := f.store.Current(ctx)
	if err != nil {
		return false, err
	}
	if p.AdsRemoved {
		return true, nil
	}

	ok, err := f.provider.Purchase(ctx, domain.ProductRemoveAds)
	if err != nil {
		return false, fmt.Errorf("purchase %s: %w", domain.ProductRemoveAds, err)
	}
	if !ok {
		return false, nil
	}
	if err := f.store.SetAdsRemoved(ctx); err != nil {
		return false, err
	}
	return true, nil
}
