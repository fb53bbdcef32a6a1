package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Platform      string `mapstructure:"PLATFORM"` // local | cloud | пусто = определить
	LocalDBPath   string `mapstructure:"LOCAL_DB_PATH"`
	CloudProvider string `mapstructure:"CLOUD_PROVIDER"` // redis | postgres
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	PlayerID      string `mapstructure:"PLAYER_ID"`

	CloudSaveTimeout time.Duration `mapstructure:"CLOUD_SAVE_TIMEOUT"`
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("LOCAL_DB_PATH", "data/profile.db")
	v.SetDefault("CLOUD_PROVIDER", "redis")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CLOUD_SAVE_TIMEOUT", "10s")

	// Явно биндим, чтобы переменные окружения работали без файла
	for _, key := range []string{
		"PLATFORM", "LOCAL_DB_PATH", "CLOUD_PROVIDER", "REDIS_ADDR", "REDIS_PASSWORD",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "PLAYER_ID", "CLOUD_SAVE_TIMEOUT",
	} {
		_ = v.BindEnv(key)
	}

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// Файла нет - работаем на ENV
	}

	err = v.Unmarshal(&config)
	return
}
