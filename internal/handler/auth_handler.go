package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-admin-portal/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login starts the authorization-code flow.
// GET /api/v1/auth/login?frontend_host=...
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	authURL, err := h.authService.LoginURL(c.Context(), c.Query("frontend_host"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start login flow"})
	}
	return c.Redirect(authURL, fiber.StatusFound)
}

// Redirect is the provider callback. The outcome is always a 302 to the
// frontend; success or failure is carried in the redirect URL.
// GET /api/v1/auth/redirect?code=...&state=...
func (h *AuthHandler) Redirect(c *fiber.Ctx) error {
	target := h.authService.HandleRedirect(c.Context(), c.Query("code"), c.Query("state"))
	return c.Redirect(target, fiber.StatusFound)
}

// Logout invalidates the caller's live session.
// GET /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	username, _ := c.Locals("user_email").(string)
	if err := h.authService.Logout(username); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Token returns the stored credential for a username. Used by trusted
// collaborators that act on a user's behalf.
// GET /api/v1/auth/token?user=...
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	username := c.Query("user")
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing user parameter"})
	}

	token, err := h.authService.Token(username)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Token not found"})
	}
	return c.JSON(fiber.Map{"token": token})
}
