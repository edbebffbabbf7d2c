package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"beerservice/internal/cache"
	"beerservice/internal/config"
	"beerservice/internal/events"
	"beerservice/internal/http/handlers"
	applog "beerservice/internal/log"
	"beerservice/internal/repos"
	"beerservice/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Printf("[warn] kafka unavailable, events disabled: %v", err)
		} else {
			pub = kp
			log.Printf("[events] publishing to %s on %v", cfg.KafkaTopic, cfg.KafkaBrokers)
		}
	}
	defer pub.Close()

	var store fiber.Storage
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		rs, err := cache.Connect(ctx, cfg.RedisAddr, "beerservice:limiter:")
		cancel()
		if err != nil {
			log.Printf("[warn] redis unavailable, rate limits kept in memory: %v", err)
		} else {
			store = rs
			defer rs.Close()
		}
	}

	if cfg.SeedData {
		boot := &services.Bootstrap{
			Beers:     repos.NewBeerRepo(db),
			Customers: repos.NewCustomerRepo(db),
			CSVPath:   cfg.BeerCSVPath,
		}
		if err := boot.Run(context.Background()); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	authSvc := services.NewAuthService(repos.NewUserRepo(db), cfg.JWTSecret, cfg.JWTTTL)
	metrics := &services.Metrics{}

	app := fiber.New(fiber.Config{
		AppName:      "beerservice",
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: time.Minute,
		Storage:    store,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	deps := handlers.NewDeps(db, cfg, authSvc, pub, metrics)
	handlers.Register(app, deps, store)

	log.Fatal(app.Listen(":" + cfg.Port))
}
