package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/flo-mobility/admin-console/internal/service"
)

// AuditHandler lists recorded operator actions.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List GET /api/audit?action&operatorId&targetId&page&size.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	page, err := h.audit.List(c.UserContext(), service.AuditQuery{
		Action:     c.Query("action"),
		OperatorID: c.Query("operatorId"),
		TargetID:   c.Query("targetId"),
		Page:       parseInt(c.Query("page"), 1),
		Size:       parseInt(c.Query("size"), 20),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
