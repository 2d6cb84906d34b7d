package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cosmic-portals/portals-api/internal/application/analyze"
	"github.com/cosmic-portals/portals-api/internal/application/auth"
	"github.com/cosmic-portals/portals-api/internal/application/scan"
	"github.com/cosmic-portals/portals-api/internal/application/usecase"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	DeviceUC       *usecase.DeviceUseCase
	LandingUC      *usecase.LandingUseCase
	AnalyticsUC    *usecase.AnalyticsUseCase
	TeamUC         *usecase.TeamUseCase
	AdminUC        *usecase.AdminUseCase
	Recorder       *scan.Recorder
	AnalyzeUC      *analyze.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(MetricsMiddleware())

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Rutas públicas: las abren los teléfonos al escanear un dispositivo o una URL
	publicHandler := NewPublicHandler(deps.Recorder, deps.LandingUC)
	app.Get("/scan/:deviceId", publicHandler.Scan)
	app.Get("/landing/:slug", publicHandler.Landing)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Organizations (protegido)
	orgs := protected.Group("/organizations")
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs.Post("/", orgHandler.Create)
	orgs.Get("/:id", orgHandler.Get)
	orgs.Put("/:id", orgHandler.Update)

	// Devices (protegido)
	devices := protected.Group("/devices")
	deviceHandler := NewDeviceHandler(deps.DeviceUC)
	devices.Post("/", deviceHandler.Register)
	devices.Get("/", deviceHandler.List)
	devices.Get("/:id", deviceHandler.GetByID)
	devices.Delete("/:id", deviceHandler.Delete)
	devices.Get("/:id/analytics", deviceHandler.Analytics)
	devices.Get("/:id/scans", deviceHandler.Scans)
	devices.Get("/:id/report.pdf", deviceHandler.Report)

	// Landing pages (protegido)
	pages := protected.Group("/landing-pages")
	landingHandler := NewLandingHandler(deps.LandingUC)
	pages.Post("/", landingHandler.Create)
	pages.Get("/", landingHandler.List)
	pages.Get("/:id", landingHandler.GetByID)
	pages.Put("/:id", landingHandler.Update)
	pages.Delete("/:id", landingHandler.Delete)
	pages.Post("/:id/publish", landingHandler.Publish)
	pages.Post("/:id/unpublish", landingHandler.Unpublish)

	// Analytics (protegido)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	protected.Get("/analytics", analyticsHandler.Organization)

	// Team (protegido; escrituras solo admin/owner)
	team := protected.Group("/team")
	teamHandler := NewTeamHandler(deps.TeamUC)
	team.Get("/", teamHandler.Team)
	team.Post("/invitations/:token/accept", teamHandler.Accept)
	adminOnly := RequireOrgAdmin()
	team.Post("/invitations", adminOnly, teamHandler.Invite)
	team.Delete("/invitations/:id", adminOnly, teamHandler.CancelInvitation)
	team.Put("/members/:id/role", adminOnly, teamHandler.UpdateMemberRole)
	team.Delete("/members/:id", adminOnly, teamHandler.RemoveMember)

	// Analyze (protegido)
	analyzeGroup := protected.Group("/analyze")
	analyzeHandler := NewAnalyzeHandler(deps.AnalyzeUC)
	analyzeGroup.Post("/summarize", analyzeHandler.Submit)
	analyzeGroup.Get("/results", analyzeHandler.List)
	analyzeGroup.Get("/results/:id", analyzeHandler.GetResult)

	// Admin (solo superadmin, por claim del token)
	admin := protected.Group("/admin", RequireRole(entity.RoleSuperAdmin))
	adminHandler := NewAdminHandler(deps.AdminUC)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/organizations", adminHandler.ListOrganizations)
	admin.Put("/organizations/:id", adminHandler.UpdateOrganization)
}
