package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/listing"
	"github.com/flo-mobility/admin-console/internal/service"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

// RidesHandler serves a customer's ride history and reviews.
type RidesHandler struct {
	rides *service.RideService
}

// NewRidesHandler constructs handler.
func NewRidesHandler(rides *service.RideService) *RidesHandler {
	return &RidesHandler{rides: rides}
}

// Rides GET /api/rides/:kind/:customerId.
func (h *RidesHandler) Rides(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return err
	}
	customerID, err := pathParam(c, "customerId")
	if err != nil {
		return err
	}
	values := queryValues(c)
	params := listing.Parse(values)
	page, err := h.rides.Rides(c.UserContext(), kind, customerID, params)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":      page.Data,
		"page":      page.Page,
		"fareTotal": page.FareTotal,
		"params":    params,
		"links":     listing.BuildLinks(c.Path(), values, listing.ListKeys, params, int(page.Page.Next), int(page.Page.Previous)),
	})
}

// Reviews GET /api/reviews/:kind/:customerId.
func (h *RidesHandler) Reviews(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return err
	}
	customerID, err := pathParam(c, "customerId")
	if err != nil {
		return err
	}
	values := queryValues(c)
	params := listing.ParseReviews(values)
	page, err := h.rides.Reviews(c.UserContext(), kind, customerID, params)
	if err != nil {
		return err
	}
	return c.JSON(reviewResponse(c.Path(), values, params, page))
}

// LegacyReviews GET /api/reviews/:customerId.
func (h *RidesHandler) LegacyReviews(c *fiber.Ctx) error {
	customerID, err := pathParam(c, "customerId")
	if err != nil {
		return err
	}
	values := queryValues(c)
	params := listing.ParseReviews(values)
	page, err := h.rides.LegacyReviews(c.UserContext(), customerID, params)
	if err != nil {
		return err
	}
	return c.JSON(reviewResponse(c.Path(), values, params, page))
}

func reviewResponse(path string, values url.Values, params listing.Params, page *service.ReviewPage) fiber.Map {
	return fiber.Map{
		"data":   page.Data,
		"page":   page.Page,
		"params": params,
		"links":  listing.BuildLinks(path, values, listing.ReviewKeys, params, int(page.Page.Next), int(page.Page.Previous)),
	}
}

func kindParam(c *fiber.Ctx) (domain.UserKind, error) {
	kind, ok := domain.ParseUserKind(c.Params("kind"))
	if !ok {
		return "", apperrors.NewValidationError("unknown account kind", map[string]any{"kind": c.Params("kind")})
	}
	return kind, nil
}
