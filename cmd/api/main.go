package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cosmic-portals/portals-api/internal/application/analyze"
	"github.com/cosmic-portals/portals-api/internal/application/auth"
	"github.com/cosmic-portals/portals-api/internal/application/ports"
	"github.com/cosmic-portals/portals-api/internal/application/scan"
	"github.com/cosmic-portals/portals-api/internal/application/usecase"
	infraai "github.com/cosmic-portals/portals-api/internal/infrastructure/ai"
	"github.com/cosmic-portals/portals-api/internal/infrastructure/geoip"
	"github.com/cosmic-portals/portals-api/internal/infrastructure/pdfx"
	"github.com/cosmic-portals/portals-api/internal/infrastructure/postgres"
	"github.com/cosmic-portals/portals-api/internal/infrastructure/report"
	httpRouter "github.com/cosmic-portals/portals-api/internal/interfaces/http"
	"github.com/cosmic-portals/portals-api/pkg/config"
	"github.com/cosmic-portals/portals-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orgRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	deviceRepo := postgres.NewDeviceRepository(pool)
	scanRepo := postgres.NewScanRepository(pool)
	pageRepo := postgres.NewLandingPageRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	analysisRepo := postgres.NewAnalysisRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// GeoIP: enriquecimiento geográfico de escaneos, deshabilitado sin BaseURL
	var geoSvc ports.GeoIPService
	if cfg.GeoIP.BaseURL != "" {
		geoSvc = geoip.NewClient(cfg.GeoIP.BaseURL, time.Duration(cfg.GeoIP.TimeoutMS)*time.Millisecond)
	}

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	orgUC := usecase.NewOrganizationUseCase(orgRepo, analyticsRepo)
	reportGen := report.NewMarotoReportGenerator()
	deviceUC := usecase.NewDeviceUseCase(deviceRepo, orgRepo, scanRepo, analyticsRepo, reportGen)
	landingUC := usecase.NewLandingUseCase(pageRepo, log)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)
	teamUC := usecase.NewTeamUseCase(userRepo, invitationRepo, orgRepo)
	adminUC := usecase.NewAdminUseCase(orgRepo, analyticsRepo)

	recorder := scan.NewRecorder(deviceRepo, scanRepo, geoSvc, log)

	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	extractor := pdfx.NewExtractor()
	analyzeUC := analyze.NewUseCase(analysisRepo, extractor, geminiSvc, cfg.Analyze.MaxFileSizeMB, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    (cfg.Analyze.MaxFileSizeMB + 1) * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cosmic Portals API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganizationUC: orgUC,
		DeviceUC:       deviceUC,
		LandingUC:      landingUC,
		AnalyticsUC:    analyticsUC,
		TeamUC:         teamUC,
		AdminUC:        adminUC,
		Recorder:       recorder,
		AnalyzeUC:      analyzeUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
