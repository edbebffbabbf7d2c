package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"beerservice/internal/log"
	"beerservice/internal/repos"
	"beerservice/internal/services"
)

type ActuatorHandler struct {
	DB       *sqlx.DB
	Driver   string
	Beers    *repos.BeerRepo
	Counters *services.Metrics
}

func (h *ActuatorHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := repos.Ping(ctx, h.DB); err != nil {
		log.Error(c, "health.db.down", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":     "DOWN",
			"components": fiber.Map{"db": fiber.Map{"status": "DOWN"}},
		})
	}
	return c.JSON(fiber.Map{
		"status":     "UP",
		"components": fiber.Map{"db": fiber.Map{"status": "UP", "driver": h.Driver}},
	})
}

func (h *ActuatorHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"app": fiber.Map{"name": "beerservice"}, "db": fiber.Map{"driver": h.Driver}})
}

func (h *ActuatorHandler) Metrics(c *fiber.Ctx) error {
	out := fiber.Map{}
	for k, v := range h.Counters.Snapshot() {
		out[k] = v
	}
	n, err := h.Beers.Count(c.UserContext())
	if err != nil {
		return err
	}
	out["beer.rows"] = n
	return c.JSON(out)
}
