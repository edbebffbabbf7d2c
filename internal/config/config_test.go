package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"beerservice/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "BEER_DEFAULT_PAGE_SIZE", "BEER_PAGE_LIMIT", "KAFKA_BROKERS", "JWT_TTL"} {
		t.Setenv(k, "")
	}
	cfg := config.Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 25, cfg.DefaultPageSize)
	assert.Equal(t, 1000, cfg.PageLimit)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("BEER_DEFAULT_PAGE_SIZE", "50")
	t.Setenv("BEER_PAGE_LIMIT", "500")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("SEED_DATA", "true")

	cfg := config.Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 50, cfg.DefaultPageSize)
	assert.Equal(t, 500, cfg.PageLimit)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.SeedData)
}

func TestLoadClampsPaging(t *testing.T) {
	t.Setenv("BEER_DEFAULT_PAGE_SIZE", "5000")
	t.Setenv("BEER_PAGE_LIMIT", "100")
	cfg := config.Load()
	assert.Equal(t, 100, cfg.PageLimit)
	assert.Equal(t, 25, cfg.DefaultPageSize)

	t.Setenv("BEER_PAGE_LIMIT", "oops")
	cfg = config.Load()
	assert.Equal(t, 1000, cfg.PageLimit)
}
