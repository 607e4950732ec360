package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/flo-mobility/admin-console/internal/service"
)

// InsightsHandler serves the dashboard and the activity timeline.
type InsightsHandler struct {
	dashboard  *service.DashboardService
	activities *service.ActivityService
	now        func() time.Time
}

// NewInsightsHandler constructs handler.
func NewInsightsHandler(dashboard *service.DashboardService, activities *service.ActivityService) *InsightsHandler {
	return &InsightsHandler{dashboard: dashboard, activities: activities, now: time.Now}
}

// Dashboard GET /api/dashboard?startDate&endDate.
func (h *InsightsHandler) Dashboard(c *fiber.Ctx) error {
	r, err := requestRange(c, h.now)
	if err != nil {
		return err
	}
	view, err := h.dashboard.Dashboard(c.UserContext(), r)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// Refresh POST /api/dashboard/refresh?startDate&endDate.
func (h *InsightsHandler) Refresh(c *fiber.Ctx) error {
	r, err := requestRange(c, h.now)
	if err != nil {
		return err
	}
	h.dashboard.Refresh(c.UserContext(), r)
	view, err := h.dashboard.Dashboard(c.UserContext(), r)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// RecentlyJoined GET /api/dashboard/recently-joined.
func (h *InsightsHandler) RecentlyJoined(c *fiber.Ctx) error {
	users, err := h.dashboard.RecentlyJoined(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

// Activities GET /api/activities?startDate&endDate.
func (h *InsightsHandler) Activities(c *fiber.Ctx) error {
	r, err := requestRange(c, h.now)
	if err != nil {
		return err
	}
	groups, err := h.activities.Timeline(c.UserContext(), r)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": groups})
}
