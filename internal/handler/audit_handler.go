package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-admin-portal/internal/repository"
	"go-admin-portal/internal/service"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetLogs lists audit entries, newest first.
// GET /api/v1/audit?limit=&offset=&name=&action=&result=
func (h *AuditHandler) GetLogs(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	logs, err := h.auditService.GetLogs(limit, offset, repository.AuditFilters{
		Username: c.Query("name"),
		Action:   c.Query("action"),
		Result:   c.Query("result"),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch audit logs"})
	}
	return c.JSON(logs)
}
