package domain

import "errors"

var (
	// ErrNotFound - в хранилище ещё нет профиля. Это не ошибка, а сигнал первого запуска.
	ErrNotFound = errors.New("profile not found")
	// ErrCorruptData - блоб есть, но прочитать его нельзя.
	ErrCorruptData = errors.New("profile data is corrupt")

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidSelection  = errors.New("character is not unlocked")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrUnknownStat       = errors.New("unknown stat")
	ErrUnknownAdPack     = errors.New("unknown ad pack")
)
