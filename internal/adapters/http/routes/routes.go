package routes

import (
	"schoolhub-erp/internal/adapters/http/handlers"
	"schoolhub-erp/internal/adapters/http/middleware"
	"schoolhub-erp/internal/adapters/persistence/repositories"
	"schoolhub-erp/internal/config"
	"schoolhub-erp/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the services
// the server wires into background jobs.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	schoolRepo := repositories.NewSchoolRepository(db)

	// Catalog repositories
	clubRepo := repositories.NewClubRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	trainingRepo := repositories.NewTrainingRepository(db)
	clauseRepo := repositories.NewClauseRepository(db)

	// Tenant data repositories
	studentRepo := repositories.NewStudentRepository(db)
	docRepo := repositories.NewDocumentRepository(db)

	// Workflow repositories
	regRepo := repositories.NewRegistrationRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	pointRepo := repositories.NewPointRepository(db)
	msgRepo := repositories.NewMessageRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, schoolRepo)
	notifyService := services.NewNotificationService(notificationRepo)
	gamification := services.NewGamificationService(pointRepo)

	regService := services.NewRegistrationService(
		regRepo,
		clubRepo,
		eventRepo,
		trainingRepo,
		clauseRepo,
		docRepo,
		userRepo,
		notifyService,
		gamification,
	)

	msgService := services.NewMessageService(msgRepo, userRepo, notifyService)
	dashboardService := services.NewDashboardService(db)
	cronService := services.NewCronService(notifyService, eventRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	schoolHandler := handlers.NewSchoolHandler(schoolRepo)
	catalogHandler := handlers.NewCatalogHandler(clubRepo, eventRepo, trainingRepo, clauseRepo)
	studentHandler := handlers.NewStudentHandler(studentRepo)
	docHandler := handlers.NewDocumentHandler(docRepo, cfg)
	regHandler := handlers.NewRegistrationHandler(regService)
	notifyHandler := handlers.NewNotificationHandler(notifyService)
	msgHandler := handlers.NewMessageHandler(msgService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, gamification)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Shared auth guard: validates the token then reloads the principal
	guard := middleware.AuthMiddleware(cfg, userRepo)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (login is public and rate limited)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", guard, authHandler.Me)
	authRoutes.Put("/password", guard, authHandler.ChangePassword)

	// User management routes (admins only; the service narrows what a
	// tenant admin may do)
	userRoutes := apiV1.Group("/users", guard, middleware.AnyAdmin())
	userRoutes.Post("/", userHandler.Create)
	userRoutes.Get("/", userHandler.List)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Put("/:id", userHandler.Update)
	userRoutes.Patch("/:id/active", userHandler.SetActive)

	// School routes (Global admin only)
	schoolRoutes := apiV1.Group("/schools", guard)
	schoolRoutes.Get("/", schoolHandler.List)
	schoolRoutes.Get("/:id", schoolHandler.Get)
	schoolRoutes.Post("/", middleware.GlobalAdminOnly(), schoolHandler.Create)
	schoolRoutes.Put("/:id", middleware.GlobalAdminOnly(), schoolHandler.Update)
	schoolRoutes.Delete("/:id", middleware.GlobalAdminOnly(), schoolHandler.Delete)

	// Catalog routes: reads for everyone, mutations for admins
	clubRoutes := apiV1.Group("/clubs", guard)
	clubRoutes.Get("/", catalogHandler.ListClubs)
	clubRoutes.Get("/:id", catalogHandler.GetClub)
	clubRoutes.Post("/", middleware.AnyAdmin(), catalogHandler.CreateClub)
	clubRoutes.Put("/:id", middleware.AnyAdmin(), catalogHandler.UpdateClub)
	clubRoutes.Delete("/:id", middleware.AnyAdmin(), catalogHandler.DeleteClub)

	eventRoutes := apiV1.Group("/events", guard)
	eventRoutes.Get("/", catalogHandler.ListEvents)
	eventRoutes.Get("/:id", catalogHandler.GetEvent)
	eventRoutes.Post("/", middleware.AnyAdmin(), catalogHandler.CreateEvent)
	eventRoutes.Put("/:id", middleware.AnyAdmin(), catalogHandler.UpdateEvent)
	eventRoutes.Delete("/:id", middleware.AnyAdmin(), catalogHandler.DeleteEvent)

	trainingRoutes := apiV1.Group("/trainings", guard)
	trainingRoutes.Get("/", catalogHandler.ListTrainings)
	trainingRoutes.Get("/:id", catalogHandler.GetTraining)
	trainingRoutes.Post("/", middleware.AnyAdmin(), catalogHandler.CreateTraining)
	trainingRoutes.Put("/:id", middleware.AnyAdmin(), catalogHandler.UpdateTraining)
	trainingRoutes.Delete("/:id", middleware.AnyAdmin(), catalogHandler.DeleteTraining)

	// Clause master data: cached reads, global admin mutations
	clauseRoutes := apiV1.Group("/clauses", guard)
	clauseRoutes.Get("/", middleware.MasterDataCache(), catalogHandler.ListClauses)
	clauseRoutes.Get("/:id", middleware.MasterDataCache(), catalogHandler.GetClause)
	clauseRoutes.Post("/", middleware.GlobalAdminOnly(), catalogHandler.CreateClause)
	clauseRoutes.Put("/:id", middleware.GlobalAdminOnly(), catalogHandler.UpdateClause)

	// Student roster routes (tenant principals)
	studentRoutes := apiV1.Group("/students", guard)
	studentRoutes.Get("/", studentHandler.List)
	studentRoutes.Get("/:id", studentHandler.Get)
	studentRoutes.Post("/", middleware.TenantRoles(), studentHandler.Create)
	studentRoutes.Put("/:id", middleware.TenantRoles(), studentHandler.Update)
	studentRoutes.Delete("/:id", middleware.TenantRoles(), studentHandler.Delete)

	// Document routes
	docRoutes := apiV1.Group("/documents", guard)
	docRoutes.Get("/", docHandler.List)
	docRoutes.Get("/:id", docHandler.Get)
	docRoutes.Get("/:id/download", docHandler.Download)
	docRoutes.Post("/", middleware.UploadRateLimiter(), docHandler.Upload)
	docRoutes.Delete("/:id", docHandler.Delete)

	// Registration workflow routes
	regRoutes := apiV1.Group("/registrations", guard)
	regRoutes.Get("/", regHandler.List)
	regRoutes.Get("/:id", regHandler.Get)
	// Literal-suffix routes must register before the kind/id pair
	regRoutes.Post("/:id/submit", middleware.TenantRoles(), regHandler.Submit)
	regRoutes.Post("/:id/review", middleware.GlobalAdminOnly(), regHandler.Review)
	regRoutes.Post("/:kind/:id", middleware.TenantRoles(), regHandler.Register)
	regRoutes.Delete("/:kind/:id/unregister", middleware.TenantRoles(), regHandler.Unregister)
	regRoutes.Delete("/:id", middleware.GlobalAdminOnly(), regHandler.Delete)

	// Notification routes
	notifyRoutes := apiV1.Group("/notifications", guard)
	notifyRoutes.Get("/", notifyHandler.ListUnread)
	notifyRoutes.Get("/count", notifyHandler.Count)
	notifyRoutes.Patch("/:id/read", notifyHandler.MarkRead)

	// Message routes
	msgRoutes := apiV1.Group("/messages", guard)
	msgRoutes.Post("/", msgHandler.Send)
	msgRoutes.Get("/inbox", msgHandler.Inbox)
	msgRoutes.Get("/outbox", msgHandler.Outbox)
	msgRoutes.Get("/:id", msgHandler.Get)
	msgRoutes.Patch("/:id/read", msgHandler.MarkRead)

	// Dashboard and gamification routes
	apiV1.Get("/dashboard", guard, dashboardHandler.Get)
	apiV1.Get("/points/me", guard, dashboardHandler.MyPoints)
	apiV1.Get("/points/leaderboard", guard, dashboardHandler.Leaderboard)

	return cronService
}
