package handlers

import (
	"github.com/gofiber/fiber/v2"

	"beerservice/internal/log"
	"beerservice/internal/services"
	"beerservice/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /api/v1/customer/:id/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	cust, err := h.Orders.ListForCustomer(c.UserContext(), id)
	if err != nil {
		return err
	}
	if cust == nil {
		return notFound(c)
	}
	return c.JSON(cust)
}

// POST /api/v1/customer/:id/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in services.PlaceOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if errs := validate.Struct(&in); errs != nil {
		return invalid(c, errs)
	}
	order, err := h.Orders.Place(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	log.Audit(c, "order.place", map[string]any{"order_id": order.ID.String(), "customer_id": id.String(), "lines": len(order.Lines)})
	return c.Status(fiber.StatusCreated).JSON(order)
}
