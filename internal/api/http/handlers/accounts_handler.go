package handlers

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/flo-mobility/admin-console/internal/api/dto"
	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/listing"
	"github.com/flo-mobility/admin-console/internal/service"
)

// AccountsHandler serves the customers (rental) or billing (taxi) pages.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler for one product line.
func NewAccountsHandler(accounts *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// List handles GET /.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	values := queryValues(c)
	params := listing.Parse(values)
	list, err := h.accounts.List(c.UserContext(), params)
	if err != nil {
		return err
	}
	return c.JSON(listResponse(c.Path(), values, listing.ListKeys, params, list))
}

// Get handles GET /:id.
func (h *AccountsHandler) Get(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.accounts.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Analytics handles GET /:id/analytics.
func (h *AccountsHandler) Analytics(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	analytics, err := h.accounts.Analytics(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": analytics})
}

// Overview handles GET /:id/overview.
func (h *AccountsHandler) Overview(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	overview, err := h.accounts.Overview(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": overview})
}

// Block handles POST /block.
func (h *AccountsHandler) Block(c *fiber.Ctx) error {
	return h.mutate(c, h.accounts.Block)
}

// Unblock handles POST /unblock.
func (h *AccountsHandler) Unblock(c *fiber.Ctx) error {
	return h.mutate(c, h.accounts.Unblock)
}

// Delete handles POST /delete.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	return h.mutate(c, h.accounts.Delete)
}

type bulkAction func(ctx context.Context, actor events.Actor, ids []string) (*service.MutationResult, error)

func (h *AccountsHandler) mutate(c *fiber.Ctx, action bulkAction) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.UserIDsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := action(c.UserContext(), actor, req.UserIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": res})
}

func listResponse[T any](path string, values url.Values, keys listing.Keys, params listing.Params, list *domain.List[T]) dto.ListResponse[T] {
	data := list.Data
	if data == nil {
		data = []T{}
	}
	return dto.ListResponse[T]{
		Data:   data,
		Page:   list.Page,
		Params: params,
		Links:  listing.BuildLinks(path, values, keys, params, int(list.Page.Next), int(list.Page.Previous)),
	}
}
