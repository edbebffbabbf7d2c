package handlers

import (
	"github.com/gofiber/fiber/v2"

	"beerservice/internal/domain"
	"beerservice/internal/log"
	"beerservice/internal/services"
	"beerservice/internal/validate"
)

const customerPath = "/api/v1/customer"

type CustomerHandler struct {
	Customers *services.CustomerService
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.Customers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	out, err := h.Customers.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(out)
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in domain.CustomerDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if errs := validate.Struct(&in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.Customers.Create(c.UserContext(), &in)
	if err != nil {
		return err
	}
	log.Audit(c, "customer.create", map[string]any{"id": out.ID.String()})
	c.Location(customerPath + "/" + out.ID.String())
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CustomerHandler) Replace(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in domain.CustomerDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if errs := validate.Struct(&in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.Customers.Replace(c.UserContext(), id, &in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound(c)
	}
	log.Audit(c, "customer.replace", map[string]any{"id": id.String()})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CustomerHandler) Patch(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in domain.CustomerDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if errs := validate.CustomerPatch(&in); errs != nil {
		return invalid(c, errs)
	}
	out, err := h.Customers.Patch(c.UserContext(), id, &in)
	if err != nil {
		return err
	}
	if out == nil {
		return notFound(c)
	}
	log.Audit(c, "customer.patch", map[string]any{"id": id.String()})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	deleted, err := h.Customers.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(c)
	}
	log.Audit(c, "customer.delete", map[string]any{"id": id.String()})
	return c.SendStatus(fiber.StatusNoContent)
}
