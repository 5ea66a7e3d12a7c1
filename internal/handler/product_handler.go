package handler

import (
	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/middleware"
	"vyaparpro-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /api/products?keyword=
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetProducts(c.Query("keyword"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	product, err := h.productService.GetProductByID(id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}
	product, err := h.productService.CreateProduct(&req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(201).JSON(product)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}
	product, err := h.productService.UpdateProduct(id, &req, middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.productService.DeleteProduct(id, middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product removed"})
}
