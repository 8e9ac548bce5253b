package handler

import (
	"strings"

	"github.com/syafrud/Kasir-new-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// parseSaleRequest accepts a JSON body or the checkout form, whose items field
// is a JSON-encoded array
func parseSaleRequest(c *fiber.Ctx) (*service.CreateSaleRequest, error) {
	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		if err := req.Items.Parse(c.FormValue("items")); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// CreateSale records a POS checkout
// POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	req, err := parseSaleRequest(c)
	if err != nil {
		return badRequest(c, "Invalid request body")
	}

	sale, err := h.service.CreateSale(c.UserContext(), req, actorFrom(c))
	if err != nil {
		return respondError(c, "sale", "CreateSale", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// UpdateSale rewrites an invoice
// PUT /api/v1/sales/:id
func (h *SaleHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid sale ID")
	}
	req, err := parseSaleRequest(c)
	if err != nil {
		return badRequest(c, "Invalid request body")
	}

	sale, err := h.service.UpdateSale(c.UserContext(), id, req, actorFrom(c))
	if err != nil {
		return respondError(c, "sale", "UpdateSale", err)
	}
	return c.JSON(fiber.Map{"message": "Sale updated", "data": sale})
}

func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid sale ID")
	}
	if err := h.service.DeleteSale(c.UserContext(), id, actorFrom(c)); err != nil {
		return respondError(c, "sale", "DeleteSale", err)
	}
	return c.JSON(fiber.Map{"message": "Sale deleted"})
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid sale ID")
	}
	sale, err := h.service.GetSale(c.UserContext(), id)
	if err != nil {
		return respondError(c, "sale", "GetSale", err)
	}
	return c.JSON(sale)
}

// GetSales lists invoices newest first
// Query params: page, limit, search, start_date, end_date, customer_id
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	q := service.SaleListQuery{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 10),
		Search:     c.Query("search"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		CustomerID: uint(c.QueryInt("customer_id", 0)),
	}
	sales, meta, err := h.service.ListSales(c.UserContext(), q)
	if err != nil {
		return respondError(c, "sale", "GetSales", err)
	}
	return paginated(c, sales, meta)
}
