package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/flo-mobility/admin-console/internal/api/http/handlers"
	"github.com/flo-mobility/admin-console/internal/auth"
	"github.com/flo-mobility/admin-console/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Customers      *handlers.AccountsHandler
	Billing        *handlers.AccountsHandler
	Users          *handlers.UsersHandler
	Rides          *handlers.RidesHandler
	Tickets        *handlers.TicketsHandler
	Insights       *handlers.InsightsHandler
	Audit          *handlers.AuditHandler
	Metrics        *observability.Metrics
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/login/verify", cfg.Auth.VerifyOTP)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/forgot-password/verify", cfg.Auth.VerifyForgotPassword)
	authGroup.Post("/change-password", cfg.Auth.ChangePassword)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	registerAccounts(protected.Group("/customers"), cfg.Customers)
	registerAccounts(protected.Group("/billing"), cfg.Billing)
	protected.Post("/users/block", cfg.Users.BlockAny)

	protected.Get("/rides/:kind/:customerId", cfg.Rides.Rides)
	protected.Get("/reviews/:kind/:customerId", cfg.Rides.Reviews)
	protected.Get("/reviews/:customerId", cfg.Rides.LegacyReviews)

	tickets := protected.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/", cfg.Insights.Dashboard)
	dashboard.Post("/refresh", cfg.Insights.Refresh)
	dashboard.Get("/recently-joined", cfg.Insights.RecentlyJoined)
	protected.Get("/activities", cfg.Insights.Activities)

	protected.Get("/audit", cfg.Audit.List)
}

func registerAccounts(group fiber.Router, h *handlers.AccountsHandler) {
	group.Get("/", h.List)
	group.Post("/block", h.Block)
	group.Post("/unblock", h.Unblock)
	group.Post("/delete", h.Delete)
	group.Get("/:id", h.Get)
	group.Get("/:id/analytics", h.Analytics)
	group.Get("/:id/overview", h.Overview)
}
