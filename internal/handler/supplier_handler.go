package handler

import (
	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/middleware"
	"vyaparpro-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	catalog service.CatalogService
}

func NewSupplierHandler(catalog service.CatalogService) *SupplierHandler {
	return &SupplierHandler{catalog: catalog}
}

// GET /api/suppliers
func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.catalog.GetSuppliers()
	if err != nil {
		return err
	}
	return c.JSON(suppliers)
}

// GET /api/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	supplier, err := h.catalog.GetSupplierByID(id)
	if err != nil {
		return err
	}
	return c.JSON(supplier)
}

// POST /api/suppliers
func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}
	supplier, err := h.catalog.CreateSupplier(&req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(201).JSON(supplier)
}

// PUT /api/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}
	supplier, err := h.catalog.UpdateSupplier(id, &req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(supplier)
}

// DELETE /api/suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteSupplier(id, middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Supplier removed"})
}
