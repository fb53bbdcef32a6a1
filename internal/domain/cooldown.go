package domain

import (
	"strings"
	"time"
)

// AdCooldownWindow - сколько ждать между просмотрами наградной рекламы.
const AdCooldownWindow = 60 * time.Second

// AdCooldownGate считает кулдаун по переданному "сейчас", своих часов не держит.
type AdCooldownGate struct {
	Window time.Duration
}

func NewAdCooldownGate() AdCooldownGate {
	return AdCooldownGate{Window: AdCooldownWindow}
}

// Remaining - сколько секунд осталось до следующего просмотра. Нулевое время = можно сразу.
func (g AdCooldownGate) Remaining(lastWatchedAt, now time.Time) int {
	if lastWatchedAt.IsZero() {
		return 0
	}
	window := int64(g.Window / time.Second)
	elapsed := int64(now.Sub(lastWatchedAt) / time.Second)

	remaining := window - elapsed
	if remaining < 0 {
		return 0
	}
	// часы устройства ушли назад
	if remaining > window {
		return int(window)
	}
	return int(remaining)
}

func (g AdCooldownGate) CanWatchAt(lastWatchedAt, now time.Time) bool {
	return g.Remaining(lastWatchedAt, now) == 0
}

// RemainingCooldownSeconds работает с сохранённой строкой. Пустая или битая строка = можно смотреть.
func RemainingCooldownSeconds(lastWatchedAt string, now time.Time) int {
	t, ok := ParseWatchedAt(lastWatchedAt)
	if !ok {
		return 0
	}
	return NewAdCooldownGate().Remaining(t, now)
}

func CanWatch(lastWatchedAt string, now time.Time) bool {
	return RemainingCooldownSeconds(lastWatchedAt, now) == 0
}

// ParseWatchedAt разбирает ISO-8601 время последнего просмотра.
func ParseWatchedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// FormatWatchedAt - обратная операция. Нулевое время кодируется пустой строкой.
func FormatWatchedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
