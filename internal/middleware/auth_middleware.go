package middleware

import (
	"strings"

	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/policy"
	"vyaparpro-api/internal/repository"
	"vyaparpro-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "current_user"

// RequireAuth validates the bearer token and loads the user from the store,
// so role changes take effect on the next request. The loaded user is the
// request-scoped identity passed into every policy check downstream.
func RequireAuth(secret string, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"message": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.Validate(secret, parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"message": "User not found"})
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// RequirePermission consults the access policy table before the handler runs.
// A denied check performs no side effect.
func RequirePermission(resource policy.Resource, action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(401).JSON(fiber.Map{"message": "Not authenticated"})
		}
		if !policy.Allows(user.Role, resource, action) {
			return c.Status(403).JSON(fiber.Map{
				"message": "Forbidden: role '" + string(user.Role) + "' may not " + string(action) + " " + string(resource),
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userLocalKey).(*model.User)
	return user
}
