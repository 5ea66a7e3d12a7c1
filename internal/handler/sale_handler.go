package handler

import (
	"strconv"
	"time"

	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/middleware"
	"vyaparpro-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	salesService service.SalesService
}

func NewSaleHandler(salesService service.SalesService) *SaleHandler {
	return &SaleHandler{salesService: salesService}
}

type createSaleRequest struct {
	ProductID    uuid.UUID `json:"product_id"`
	QuantitySold int       `json:"quantity_sold"`
}

// GET /api/sales?pageNumber=&keyword=
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("pageNumber", "1"))
	result, err := h.salesService.GetSalesPage(c.Query("keyword"), page)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GET /api/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	sale, err := h.salesService.GetSaleByID(id)
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

// POST /api/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req createSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}

	sale, err := h.salesService.RecordSale(req.ProductID, req.QuantitySold, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(201).JSON(sale)
}

// DELETE /api/sales/:id (admin only)
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.salesService.DeleteSale(id, middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Sale removed and stock restored"})
}

// GET /api/sales/filter/daterange?startDate=&endDate=
func (h *SaleHandler) GetSalesByDateRange(c *fiber.Ctx) error {
	start, err := parseDate(c.Query("startDate"))
	if err != nil {
		return apperr.Validation("Invalid startDate, use YYYY-MM-DD")
	}
	end, err := parseDate(c.Query("endDate"))
	if err != nil {
		return apperr.Validation("Invalid endDate, use YYYY-MM-DD")
	}
	// Make the end date inclusive through end of day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	sales, err := h.salesService.GetSalesByDateRange(start, end)
	if err != nil {
		return err
	}
	return c.JSON(sales)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
