package handler

import (
	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/middleware"
	"vyaparpro-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	catalog service.CatalogService
}

func NewCategoryHandler(catalog service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// GET /api/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.GetCategories()
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GET /api/categories/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	category, err := h.catalog.GetCategoryByID(id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// POST /api/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}
	category, err := h.catalog.CreateCategory(&req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(201).JSON(category)
}

// PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}
	category, err := h.catalog.UpdateCategory(id, &req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// DELETE /api/categories/:id
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteCategory(id, middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Category removed"})
}
