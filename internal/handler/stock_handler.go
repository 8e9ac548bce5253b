package handler

import (
	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// AdjustStock records a manual stock in or out
// POST /api/v1/stock/adjust
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var req service.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	record, err := h.service.AdjustStock(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return respondError(c, "stock", "AdjustStock", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Stock updated", "data": record})
}

// GetMovements lists the stock audit trail
// Query params: product_id, page, limit, search
func (h *StockHandler) GetMovements(c *fiber.Ctx) error {
	f := model.StockMovementFilter{
		Pagination: paginationFrom(c),
		ProductID:  uint(c.QueryInt("product_id", 0)),
	}
	movements, meta, err := h.service.ListMovements(c.UserContext(), f)
	if err != nil {
		return respondError(c, "stock", "GetMovements", err)
	}
	return paginated(c, movements, meta)
}
