package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"agiliza_backend/internal/controller"
	"agiliza_backend/internal/gate"
	"agiliza_backend/internal/middleware"
	"agiliza_backend/internal/model"
	"agiliza_backend/internal/registry"
	"agiliza_backend/internal/repository"
	"agiliza_backend/pkg/config"
	"agiliza_backend/pkg/cron"
	"agiliza_backend/pkg/database"
	"agiliza_backend/pkg/email"
	"agiliza_backend/pkg/seed"
	"agiliza_backend/pkg/tracking"
	"agiliza_backend/pkg/utils/jwt"
)

func loginLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":  "too_many_requests",
				"error": "Muitas tentativas falhas. Tente novamente mais tarde.",
			})
		},
	})
}

func leadLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":  "too_many_requests",
				"error": "Muitas solicitações. Aguarde um momento e tente novamente.",
			})
		},
	})
}

func setupRoutes(app *fiber.App) {
	// Public pages
	app.Get("/", controller.LandingPage)
	app.Get("/privacidade", controller.PrivacyPage)
	app.Get("/termos", controller.TermsPage)
	app.Get("/admin/login", controller.AdminLoginPage)
	app.Get("/admin/dashboard", middleware.PageAuthMiddleware(), controller.AdminDashboardPage)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", loginLimiter(), controller.Login)
	auth.Post("/logout", controller.Logout)

	api.Get("/me", middleware.AuthMiddleware(), controller.GetMe)

	// Public lead intake
	api.Post("/leads", leadLimiter(), controller.CreateLead)

	// Hidden admin entry
	api.Post("/gate/logo", controller.TapLogo)

	// Protected admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware())
	admin.Get("/leads", controller.GetLeads)
	admin.Get("/leads/stream", controller.StreamLeads)
	admin.Get("/leads/export", controller.ExportLeads)
	admin.Put("/leads/:id/status", controller.UpdateLeadStatus)
	admin.Delete("/leads/:id", controller.DeleteLead)
	admin.Get("/settings", controller.GetSettings)
	admin.Put("/settings", controller.UpdateSettings)
	admin.Get("/stats", controller.GetDashboardStats)
}

func main() {
	cfg := config.Load()

	// Must happen before any token is issued or validated.
	jwt.Init(cfg.JWT.Secret)
	if cfg.JWT.Secret == "" {
		log.Println("JWT_SECRET is not set, sessions are signed with the dev fallback")
	}

	if cfg.Email.ResendAPIKey != "" {
		if err := email.InitEmailService(cfg.Email.ResendAPIKey); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY is not set, email notifications disabled")
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Lead{},
		&model.SiteSettings{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	db := database.GetDB()

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		seed.SeedAdminUser(db, cfg.Admin.Email, cfg.Admin.Password)
	}

	reg := registry.New()
	leadRepo := repository.NewLeadRepository(db, reg)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)

	leads, err := leadRepo.All()
	if err != nil {
		log.Fatal("Could not load leads:", err)
	}
	reg.Load(leads)

	settingsCache := tracking.NewCache(settingsRepo, 5*time.Minute)
	injector := tracking.NewInjector(settingsCache)
	sink := tracking.Live{Cache: settingsCache, Client: &http.Client{Timeout: 5 * time.Second}}

	controller.InitAuthController(userRepo)
	controller.InitLeadController(leadRepo, reg, sink, cfg.Brand, cfg.Email.NotifyEmail)
	controller.InitSettingsController(settingsRepo, settingsCache)
	controller.InitStatsController(leadRepo)
	controller.InitGateController(gate.New())
	if err := controller.InitPageController(injector, cfg.Brand); err != nil {
		log.Fatal("Could not load page templates:", err)
	}

	if cfg.Email.NotifyEmail != "" {
		cron.InitLeadSummaryCron(leadRepo, cfg.Email.NotifyEmail)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
