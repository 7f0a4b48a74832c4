package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadEnv reads .env if present; real deployments set env vars directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}
}

func Get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
