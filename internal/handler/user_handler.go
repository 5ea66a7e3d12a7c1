package handler

import (
	"vyaparpro-api/internal/middleware"
	"vyaparpro-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUsers returns all users
// GET /api/users (admin)
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// DeleteUser removes a user account
// DELETE /api/users/:id (admin, not self)
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(id, middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User removed"})
}
