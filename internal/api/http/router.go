package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/citizenloop/internal/api/http/handlers"
	"github.com/spec-kit/citizenloop/internal/auth"
	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Citizen        *handlers.CitizenHandler
	Admin          *handlers.AdminHandler
	Public         *handlers.PublicHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verify-token", cfg.Auth.VerifyToken)

	citizen := api.Group("/citizen", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	citizen.Get("/complaint/:complaintId", cfg.Citizen.GetComplaint)

	// Per-route rather than a group: a "/:userId" group prefix would also
	// match "/complaint/...".
	self := auth.RequireSelfOrAdmin("userId")
	citizen.Post("/:userId/complaints", self, cfg.Citizen.SubmitComplaint)
	citizen.Get("/:userId/complaints", self, cfg.Citizen.ListComplaints)
	citizen.Get("/:userId/complaints/:complaintId/status", self, cfg.Citizen.TrackStatus)
	citizen.Get("/:userId/profile", self, cfg.Citizen.GetProfile)
	citizen.Put("/:userId/profile", self, cfg.Citizen.UpdateProfile)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/complaints", cfg.Admin.ListComplaints)
	admin.Get("/complaints/status/:status", cfg.Admin.ListByStatus)
	admin.Get("/complaints/category/:category", cfg.Admin.ListByCategory)
	admin.Get("/complaints/category/:category/status/:status", cfg.Admin.ListByCategoryAndStatus)
	admin.Put("/complaint/:id/status", cfg.Admin.UpdateStatus)
	admin.Patch("/complaint/:id", cfg.Admin.PatchComplaint)
	admin.Get("/dashboard/stats", cfg.Admin.DashboardStats)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/users/:userId", cfg.Admin.GetUser)
	admin.Get("/users/:userId/complaints", cfg.Admin.ListUserComplaints)

	public := api.Group("/public")
	public.Get("/dashboard/stats", cfg.Public.DashboardStats)
	public.Get("/complaints/resolved", cfg.Public.ResolvedComplaints)
	public.Get("/complaints/map", cfg.Public.AllComplaints)
	public.Get("/complaints/all", cfg.Public.AllComplaints)
	public.Get("/complaints/sdg/:sdgGoal", cfg.Public.ComplaintsBySDG)
	public.Get("/sdg-analytics", cfg.Public.SDGAnalytics)
	public.Get("/health", cfg.Public.Health)
}
