package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDriver string
	DBDSN    string
	LogFile  string

	// Beer listing paging; read once at startup.
	DefaultPageSize int
	PageLimit       int

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string
	RateLimitMax int

	SeedData    bool
	BeerCSVPath string
}

// Defaults returns the configuration used when no environment is set.
// Tests build on it directly.
func Defaults() Config {
	return Config{
		Port:            "8080",
		DBDriver:        "sqlite",
		DBDSN:           "beerservice.db",
		DefaultPageSize: 25,
		PageLimit:       1000,
		JWTSecret:       "change-me",
		JWTTTL:          time.Hour,
		KafkaTopic:      "beerservice.events",
		RateLimitMax:    120,
	}
}

func Load() Config {
	// .env is optional; real environment always wins.
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	cfg := Defaults()
	cfg.Port = str("PORT", cfg.Port)
	cfg.DBDriver = strings.ToLower(str("DB_DRIVER", cfg.DBDriver))
	cfg.DBDSN = str("DB_DSN", cfg.DBDSN)
	cfg.LogFile = str("LOG_FILE", "")
	cfg.DefaultPageSize = num("BEER_DEFAULT_PAGE_SIZE", cfg.DefaultPageSize)
	cfg.PageLimit = num("BEER_PAGE_LIMIT", cfg.PageLimit)
	cfg.JWTSecret = str("JWT_SECRET", cfg.JWTSecret)
	if d, err := time.ParseDuration(os.Getenv("JWT_TTL")); err == nil && d > 0 {
		cfg.JWTTTL = d
	}
	cfg.RedisAddr = str("REDIS_ADDR", "")
	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	cfg.KafkaTopic = str("KAFKA_TOPIC", cfg.KafkaTopic)
	cfg.RateLimitMax = num("RATE_LIMIT_MAX", cfg.RateLimitMax)
	cfg.SeedData, _ = strconv.ParseBool(os.Getenv("SEED_DATA"))
	cfg.BeerCSVPath = str("BEER_CSV_PATH", "")

	if cfg.PageLimit < 1 {
		cfg.PageLimit = 1000
	}
	if cfg.DefaultPageSize < 1 || cfg.DefaultPageSize > cfg.PageLimit {
		cfg.DefaultPageSize = min(25, cfg.PageLimit)
	}

	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN=%s LOG_FILE=%s PAGE=%d/%d REDIS=%q KAFKA=%v",
		cfg.Port, cfg.DBDriver, cfg.DBDSN, cfg.LogFile, cfg.DefaultPageSize, cfg.PageLimit, cfg.RedisAddr, cfg.KafkaBrokers)
	return cfg
}

func str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func num(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] ignoring %s=%q: %v", key, v, err)
		return def
	}
	return n
}
