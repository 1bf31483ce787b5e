package config

import (
	"log/slog"
	"os"
)

// Load reads the environment. DATABASE_URL is the only hard
// requirement; everything else has a dev default.
func Load() App {
	return App{
		Port:         envOr("APP_PORT", "8080"),
		DatabaseURL:  mustEnv("DATABASE_URL"),
		JWTSecret:    envOr("JWT_SECRET", "local_dev_secret"),
		ApiNinjasKey: os.Getenv("API_NINJAS_KEY"),
		Env:          envOr("APP_ENV", "dev"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required env missing", "key", key)
		panic("missing env " + key)
	}
	return v
}
