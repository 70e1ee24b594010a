package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"go-admin-portal/internal/service"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// GetRoles returns all roles.
// GET /api/v1/rbac/roles?limit=&offset=
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	roles, err := h.roleService.GetRoles(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch roles"})
	}
	return c.JSON(roles)
}

// GetRole returns a single role.
// GET /api/v1/rbac/roles/:id
func (h *RoleHandler) GetRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	role, err := h.roleService.GetRole(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
	}
	return c.JSON(role)
}

// CreateRole creates a role with default view grants.
// POST /api/v1/rbac/roles
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var req service.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	role, err := h.roleService.CreateRole(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Role created successfully",
		"data":    role,
	})
}

// UpdateRole updates name/description.
// PUT /api/v1/rbac/roles/:id
func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	var req service.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	role, err := h.roleService.UpdateRole(uint(id), &req)
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message": "Role updated successfully",
		"data":    role,
	})
}

// DeleteRole removes a role unless it is preset or still assigned.
// DELETE /api/v1/rbac/roles/:id
func (h *RoleHandler) DeleteRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	if err := h.roleService.DeleteRole(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrRoleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRoleInUse), errors.Is(err, service.ErrPresetRole):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Role deleted successfully"})
}

// GetRoleMenus returns the menu-with-action view for a role.
// GET /api/v1/rbac/roles/:id/menus
func (h *RoleHandler) GetRoleMenus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	menus, err := h.roleService.GetRoleMenus(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role menus not found"})
	}
	return c.JSON(menus)
}

// AssignMenus replaces the role's whole grant set.
// PUT /api/v1/rbac/roles/:id/menus
func (h *RoleHandler) AssignMenus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role ID"})
	}

	var grants []service.MenuGrant
	if err := c.BodyParser(&grants); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	menus, err := h.roleService.AssignMenus(uint(id), grants)
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) || errors.Is(err, service.ErrMenuNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"message": "Menus assigned to role successfully",
		"data":    menus,
	})
}

// GetMyMenus returns the caller's visible menus with actions.
// GET /api/v1/rbac/my_menus
func (h *RoleHandler) GetMyMenus(c *fiber.Ctx) error {
	email, _ := c.Locals("user_email").(string)
	menus, err := h.roleService.GetMyMenus(email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menus not found"})
	}
	return c.JSON(menus)
}
