package handlers

import (
	"errors"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"beerservice/internal/log"
	"beerservice/internal/repos"
	"beerservice/internal/services"
	"beerservice/internal/validate"
)

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
}

// invalid answers 400 with the per-field messages.
func invalid(c *fiber.Ctx, errs validate.Errors) error {
	fields := make([]string, 0, len(errs))
	for k := range errs {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	log.Security(c, "validation.fail", map[string]any{"fields": fields})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
}

func badBody(c *fiber.Ctx, err error) error {
	return invalid(c, validate.Errors{"body": "malformed request body: " + err.Error()})
}

// pathID parses :id style params; ok is false after the 400 has been written.
func pathID(c *fiber.Ctx, name string) (uuid.UUID, bool, error) {
	id, ok := validate.ID(c.Params(name))
	if !ok {
		return uuid.Nil, false, invalid(c, validate.Errors{name: "must be a UUID"})
	}
	return id, true, nil
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ErrorHandler is the last stop for errors returned by handlers. Internals never
// reach the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	case errors.Is(err, repos.ErrOptimisticLock):
		log.Info(c, "write.conflict", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "the resource was modified concurrently, reload and retry"})
	case errors.Is(err, services.ErrNotFound):
		return notFound(c)
	}
	log.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
}
