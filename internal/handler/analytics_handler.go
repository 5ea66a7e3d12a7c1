package handler

import (
	"strconv"

	"vyaparpro-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GET /api/analytics/summary
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.analytics.GetSummary()
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// GET /api/analytics/monthly-sales
func (h *AnalyticsHandler) GetMonthlySales(c *fiber.Ctx) error {
	monthly, err := h.analytics.GetMonthlySales()
	if err != nil {
		return err
	}
	return c.JSON(monthly)
}

// GET /api/analytics/category-distribution
func (h *AnalyticsHandler) GetCategoryDistribution(c *fiber.Ctx) error {
	distribution, err := h.analytics.GetCategoryDistribution()
	if err != nil {
		return err
	}
	return c.JSON(distribution)
}

// GET /api/analytics/recent-sales?limit=
func (h *AnalyticsHandler) GetRecentSales(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	sales, err := h.analytics.GetRecentSales(limit)
	if err != nil {
		return err
	}
	return c.JSON(sales)
}

// GET /api/analytics/top-products
func (h *AnalyticsHandler) GetTopProducts(c *fiber.Ctx) error {
	top, err := h.analytics.GetTopProducts()
	if err != nil {
		return err
	}
	return c.JSON(top)
}
