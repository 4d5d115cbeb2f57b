package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/servicehub/marketplace-api/internal/config"
	"github.com/servicehub/marketplace-api/internal/database"
	"github.com/servicehub/marketplace-api/internal/handlers"
	"github.com/servicehub/marketplace-api/internal/middleware"
	"github.com/servicehub/marketplace-api/internal/repository"
	"github.com/servicehub/marketplace-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Index creation queries pg_indexes and only applies to Postgres
	if cfg.DBDriver == "postgres" {
		if err := database.MigrateDatabase(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // username (empty for default user)
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("servicehub_session", store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Initialize services
	var assistantService *services.AssistantService
	if cfg.OpenAIAPIKey != "" {
		assistantService = services.NewAssistantService(cfg.OpenAIAPIKey)
	}
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	paymentService := services.NewPaymentService(paymentRepo)
	applicationService := services.NewApplicationService(applicationRepo, taskRepo, userRepo, paymentService)
	reviewService := services.NewReviewService(reviewRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, assistantService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "ServiceHub marketplace API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes: listing and creation work without identity
		tasks := api.Group("/tasks")
		{
			tasks.GET("", middleware.OptionalAuth(), taskHandler.ListTasks)
			tasks.GET("/grouped", taskHandler.GroupedTasks)
			tasks.GET("/partition", middleware.OptionalAuth(), taskHandler.PartitionTasks)
			tasks.POST("", middleware.OptionalAuth(), taskHandler.CreateTask)
			tasks.POST("/drafts", middleware.RequireAuth(), taskHandler.SuggestDraft)
			tasks.GET("/:id", taskHandler.GetTask)
		}

		// Application routes (protected)
		applications := api.Group("/applications")
		applications.Use(middleware.RequireAuth())
		{
			applications.POST("", applicationHandler.SubmitApplication)
			applications.GET("", applicationHandler.ListApplications)
			applications.GET("/:id/task", middleware.RequireApplicationParty(), applicationHandler.ResolveTask)
			applications.POST("/:id/accept", middleware.RequireApplicationParty(), applicationHandler.AcceptApplication)
			applications.POST("/:id/reject", middleware.RequireApplicationParty(), applicationHandler.RejectApplication)
		}

		// Review routes
		api.GET("/users/:id/reviews", reviewHandler.ListReviews)
		reviews := api.Group("/reviews")
		reviews.Use(middleware.RequireAuth())
		{
			reviews.POST("", reviewHandler.CreateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		// Payment routes (protected)
		payments := api.Group("/payments")
		payments.Use(middleware.RequireAuth())
		{
			payments.GET("/account", paymentHandler.GetAccount)
			payments.POST("/account", paymentHandler.ConnectAccount)
			payments.DELETE("/account", paymentHandler.DisconnectAccount)
			payments.GET("", paymentHandler.ListPayments)
			payments.POST("/:id/capture", paymentHandler.CapturePayment)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
