package handler

import (
	"github.com/syafrud/Kasir-new-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	service service.CustomerService
}

func NewCustomerHandler(s service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, meta, err := h.service.List(c.UserContext(), paginationFrom(c))
	if err != nil {
		return respondError(c, "customer", "GetCustomers", err)
	}
	return paginated(c, customers, meta)
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid customer ID")
	}
	customer, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, "customer", "GetCustomer", err)
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	customer, err := h.service.Create(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return respondError(c, "customer", "CreateCustomer", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Customer created", "data": customer})
}

func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid customer ID")
	}
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	customer, err := h.service.Update(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "customer", "UpdateCustomer", err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "data": customer})
}

func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid customer ID")
	}
	if err := h.service.Delete(c.UserContext(), id, actorFrom(c)); err != nil {
		return respondError(c, "customer", "DeleteCustomer", err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}
