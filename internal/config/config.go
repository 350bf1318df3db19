package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	AMQPURL string

	// HolidayDates holds YYYY-MM-DD dates the default day-type resolver
	// classifies as holidays.
	HolidayDates []string
}

// Load reads .env (when present) and the environment. Missing optional
// values degrade the related feature (no redis -> no cache, no amqp -> no
// events) rather than failing startup.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   getenv("DATABASE_URL", "quickcourt.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        parseDur(getenv("JWT_TTL", "24h")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       atoi(getenv("REDIS_DB", "0")),
		CacheTTL:      parseDur(getenv("CACHE_TTL", "30s")),
		AMQPURL:       os.Getenv("AMQP_URL"),
	}

	if raw := os.Getenv("HOLIDAY_DATES"); raw != "" {
		for _, d := range strings.Split(raw, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				cfg.HolidayDates = append(cfg.HolidayDates, d)
			}
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
