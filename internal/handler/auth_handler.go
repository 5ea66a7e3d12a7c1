package handler

import (
	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/middleware"
	"vyaparpro-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
// POST /api/users/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(resp)
}

// Login handles authentication
// POST /api/users/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetProfile returns the authenticated user's own profile
// GET /api/users/profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	profile, err := h.authService.GetProfile(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateProfile updates the authenticated user's own profile
// PUT /api/users/profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("Invalid JSON")
	}

	profile, err := h.authService.UpdateProfile(user.ID, &req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
