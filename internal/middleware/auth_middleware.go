package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-admin-portal/internal/model"
	"go-admin-portal/internal/repository"
	"go-admin-portal/pkg/jwt"
)

// RequireAuth is the request gate: decode and verify the credential, confirm
// it matches the claimed user header, and confirm a live session row exists.
// A token that verifies cryptographically but has been superseded or logged
// out is rejected here.
func RequireAuth(tokenRepo repository.TokenRepository, manager *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get("Authorization")
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization token"})
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := manager.Validate(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Both headers are caller-controlled independently; requiring them
		// to agree stops one being spoofed without the other.
		claimedUser := c.Get("User")
		if claimedUser == "" {
			claimedUser = c.Query("user")
		}
		if claimedUser != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid token: username not match"})
		}

		if _, err := tokenRepo.FindLive(claims.UserID, tokenString); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid token: no live session"})
		}

		c.Locals("user_email", claims.UserID)
		return c.Next()
	}
}

// RequireAdmin gates mutating endpoints on the user's role name. This is a
// coarse check: any role named admin or superAdmin passes, everything else
// is rejected. Fine-grained per-menu permissions are a separate concern.
func RequireAdmin(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := c.Locals("user_email").(string)
		if !ok || email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authenticated user"})
		}

		user, err := userRepo.FindByEmail(email)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Failed to get user role"})
		}
		if user.Role == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Permission denied, no role assigned"})
		}
		if !model.IsAdminRole(user.Role.Name) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Permission denied, admin required"})
		}

		return c.Next()
	}
}
