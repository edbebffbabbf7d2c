package handlers

import (
	"github.com/gofiber/fiber/v2"

	"beerservice/internal/log"
	"beerservice/internal/mapper"
	"beerservice/internal/services"
	"beerservice/internal/validate"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cats)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if errs := validate.Struct(&in); errs != nil {
		return invalid(c, errs)
	}
	cat, err := h.Categories.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	log.Audit(c, "category.create", map[string]any{"id": cat.ID.String()})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// POST /api/v1/category/:id/beers/:beerId
func (h *CategoryHandler) AssignBeer(c *fiber.Ctx) error {
	catID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	beerID, ok, err := pathID(c, "beerId")
	if !ok {
		return err
	}
	cat, beer, err := h.Categories.AssignBeer(c.UserContext(), catID, beerID)
	if err != nil {
		return err
	}
	log.Audit(c, "category.assign", map[string]any{"category_id": catID.String(), "beer_id": beerID.String()})
	return c.JSON(fiber.Map{
		"category":       cat,
		"beer":           mapper.BeerToDTO(beer),
		"beerCategories": beer.Categories,
	})
}
