package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flo-mobility/admin-console/internal/api/dto"
	"github.com/flo-mobility/admin-console/internal/service"
)

// UsersHandler exposes bulk actions that span both product lines.
type UsersHandler struct {
	users *service.UserAdminService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserAdminService) *UsersHandler {
	return &UsersHandler{users: users}
}

// BlockAny handles POST /api/users/block.
func (h *UsersHandler) BlockAny(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.UserIDsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.users.BlockAny(c.UserContext(), actor, req.UserIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": res})
}
