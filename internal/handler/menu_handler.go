package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-admin-portal/internal/service"
)

type MenuHandler struct {
	menuService service.MenuService
}

func NewMenuHandler(menuService service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// GetMenus returns every menu, parents and children alike.
// GET /api/v1/rbac/menus
func (h *MenuHandler) GetMenus(c *fiber.Ctx) error {
	menus, err := h.menuService.GetMenus()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch menus"})
	}
	return c.JSON(menus)
}

// CreateMenu creates a menu, its three actions, and default role grants.
// POST /api/v1/rbac/menus
func (h *MenuHandler) CreateMenu(c *fiber.Ctx) error {
	var req service.MenuRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	menu, err := h.menuService.CreateMenu(&req)
	if err != nil {
		if errors.Is(err, service.ErrMenuExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Menu created successfully",
		"data":    menu,
	})
}

// UpdateMenu updates a menu, re-applying the parent inheritance rule.
// PUT /api/v1/rbac/menus/:id
func (h *MenuHandler) UpdateMenu(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid menu ID"})
	}

	var req service.MenuRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	menu, err := h.menuService.UpdateMenu(uint(id), &req)
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrMenuExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message": "Menu updated successfully",
		"data":    menu,
	})
}

// DeleteMenu removes a menu; root menus cascade to their children.
// DELETE /api/v1/rbac/menus/:id
func (h *MenuHandler) DeleteMenu(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid menu ID"})
	}

	if err := h.menuService.DeleteMenu(uint(id)); err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Menu and related actions deleted successfully"})
}
