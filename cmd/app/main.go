package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/waste3d/survivors-profile/config"
	"github.com/waste3d/survivors-profile/internal/application"
	"github.com/waste3d/survivors-profile/internal/infrastructure/backend"
)

func main() {
	// 1. Загрузка конфига
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 2. Хранилище выбирается по платформе в рантайме
	platform := backend.DetectPlatform(cfg)
	storage, err := backend.New(ctx, cfg, log.Default())
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", platform, err)
	}
	defer func() {
		// облачный писатель дописывает последний профиль
		if err := storage.Close(); err != nil {
			log.Printf("Failed to close storage: %v", err)
		}
	}()

	// 3. Стор профиля - один на всё приложение
	store := application.NewProfileStore(storage, log.Default())

	profile, err := store.Current(ctx)
	if err != nil {
		log.Printf("Failed to load profile: %v", err)
		return
	}

	remaining, _ := store.CooldownRemaining(ctx, time.Now())
	log.Printf("Profile loaded (platform=%s, cloud=%t): v%d, gold=%d, selected=%s, unlocked=%v",
		platform, store.SupportsCloud(), profile.SchemaVersion, profile.GoldBalance,
		profile.SelectedCharacter, profile.UnlockedList())
	log.Printf("High scores: survival=%ds kills=%d level=%d gold=%d; ads removed=%t, ad cooldown=%ds",
		profile.HighScores.LongestSurvivalSeconds, profile.HighScores.HighestKillCount,
		profile.HighScores.HighestLevelReached, profile.HighScores.MostGoldInRun,
		profile.AdsRemoved, remaining)
}
