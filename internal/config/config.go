package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Store selects the project table backend: memory, sqlite, postgres or redis.
	Store         string
	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	LogLevel      string
	// EnvFileLoaded reports whether a .env file was read.
	EnvFileLoaded bool
}

// Load reads .env when present, then the environment. It does not log, so
// callers can set the log level from the result first.
func Load() *Config {
	loaded := godotenv.Load() == nil

	return &Config{
		Store:         getEnv("PROJECT_STORE", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "translator_project.db"),
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/rpgm_translator?sslmode=disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPrefix:   getEnv("REDIS_PREFIX", "rpgm:project:"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnvFileLoaded: loaded,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
