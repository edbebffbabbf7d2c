package handlers

import (
	"github.com/gofiber/fiber/v2"

	"beerservice/internal/domain"
	"beerservice/internal/log"
	"beerservice/internal/services"
	"beerservice/internal/validate"
)

const beerPath = "/api/v1/beer"

type BeerHandler struct {
	Beers *services.BeerService
}

// GET /api/v1/beer
func (h *BeerHandler) List(c *fiber.Ctx) error {
	var p services.ListBeersParams
	errs := validate.Errors{}

	if name := c.Query("beerName"); name != "" {
		p.BeerName = &name
	}
	if raw := c.Query("beerStyle"); raw != "" {
		st, err := domain.ParseBeerStyle(raw)
		if err != nil {
			errs["beerStyle"] = err.Error()
		} else {
			p.BeerStyle = &st
		}
	}
	var err error
	if p.ShowInventory, err = queryBool(c, "showInventory"); err != nil {
		errs["showInventory"] = "must be true or false"
	}
	if p.PageNumber, err = queryInt(c, "pageNumber"); err != nil {
		errs["pageNumber"] = "must be an integer"
	}
	if p.PageSize, err = queryInt(c, "pageSize"); err != nil {
		errs["pageSize"] = "must be an integer"
	}
	if len(errs) > 0 {
		return invalid(c, errs)
	}

	page, err := h.Beers.List(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// GET /api/v1/beer/:id
func (h *BeerHandler) Get(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	b, err := h.Beers.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if b == nil {
		return notFound(c)
	}
	return c.JSON(b)
}

// POST /api/v1/beer
func (h *BeerHandler) Create(c *fiber.Ctx) error {
	var in domain.BeerDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if errs := validate.Struct(&in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.Beers.Create(c.UserContext(), &in)
	if err != nil {
		return err
	}
	log.Audit(c, "beer.create", map[string]any{"id": out.ID.String()})
	c.Location(beerPath + "/" + out.ID.String())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PUT /api/v1/beer/:id
func (h *BeerHandler) Replace(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in domain.BeerDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if errs := validate.Struct(&in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.Beers.Replace(c.UserContext(), id, &in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound(c)
	}
	log.Audit(c, "beer.replace", map[string]any{"id": id.String(), "version": out.Version})
	return c.SendStatus(fiber.StatusNoContent)
}

// PATCH /api/v1/beer/:id
func (h *BeerHandler) Patch(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in domain.BeerDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if errs := validate.BeerPatch(&in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.Beers.Patch(c.UserContext(), id, &in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound(c)
	}
	log.Audit(c, "beer.patch", map[string]any{"id": id.String(), "version": out.Version})
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/v1/beer/:id
func (h *BeerHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	deleted, err := h.Beers.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(c)
	}
	log.Audit(c, "beer.delete", map[string]any{"id": id.String()})
	return c.SendStatus(fiber.StatusNoContent)
}
