package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	RedisKeyPrefix         string
	RateLimit              int
	RetentionDays          int
	SweepIntervalSeconds   int
	BriefSize              int
	SummaryCacheTTLSeconds int
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "tasks.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "task_tracker:"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		RetentionDays:          getEnvAsInt("ARCHIVE_RETENTION_DAYS", 7),
		SweepIntervalSeconds:   getEnvAsInt("AUTOMATION_SWEEP_INTERVAL_SECONDS", 300),
		BriefSize:              getEnvAsInt("BRIEF_TOP_TASKS", 5),
		SummaryCacheTTLSeconds: getEnvAsInt("SUMMARY_CACHE_TTL_SECONDS", 60),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.RetentionDays <= 0 {
		log.Fatal("ARCHIVE_RETENTION_DAYS must be greater than 0")
	}
	if cfg.BriefSize <= 0 {
		log.Fatal("BRIEF_TOP_TASKS must be greater than 0")
	}
	if cfg.SweepIntervalSeconds < 0 {
		log.Fatal("AUTOMATION_SWEEP_INTERVAL_SECONDS must not be negative")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
