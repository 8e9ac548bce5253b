package handler

import (
	"github.com/syafrud/Kasir-new-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func daysParam(c *fiber.Ctx) int {
	days := c.QueryInt("days", 7)
	if days <= 0 {
		days = 7
	}
	return days
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return respondError(c, "dashboard", "GetDashboardStats", err)
	}
	return c.JSON(stats)
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days := daysParam(c)
	data, err := h.service.GetStockMovement(c.UserContext(), days)
	if err != nil {
		return respondError(c, "dashboard", "GetStockMovement", err)
	}
	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetSalesChart returns daily revenue and profit
func (h *DashboardHandler) GetSalesChart(c *fiber.Ctx) error {
	days := daysParam(c)
	data, err := h.service.GetSalesChart(c.UserContext(), days)
	if err != nil {
		return respondError(c, "dashboard", "GetSalesChart", err)
	}
	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

func (h *DashboardHandler) GetTopProducts(c *fiber.Ctx) error {
	days := daysParam(c)
	data, err := h.service.GetTopProducts(c.UserContext(), days, c.QueryInt("limit", 5))
	if err != nil {
		return respondError(c, "dashboard", "GetTopProducts", err)
	}
	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}
