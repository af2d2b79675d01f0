package main

import (
	"fmt"
	"net/http"
	"os"

	"centime/internal/config"
	"centime/internal/database"
	"centime/internal/handlers"
	"centime/internal/logger"
	"centime/internal/middleware"
	"centime/internal/services"
	"centime/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	analysisService := services.NewAnalysisService(db)
	budgetService := services.NewBudgetService(db, analysisService)
	preferenceService := services.NewPreferenceService(db)
	backupService := services.NewBackupService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	categoryHandler := handlers.NewCategoryHandler()
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	backupHandler := handlers.NewBackupHandler(backupService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Analysis routes
	analyses := protected.Group("/analyses")
	analyses.POST("", analysisHandler.Upload)
	analyses.GET("", analysisHandler.List)
	analyses.GET("/:id", analysisHandler.Get)
	analyses.DELETE("/:id", analysisHandler.Delete)
	analyses.POST("/:id/merge", analysisHandler.Merge)
	analyses.GET("/:id/report", analysisHandler.Report)
	analyses.GET("/:id/duplicates", analysisHandler.Duplicates)
	analyses.PUT("/:id/overrides", analysisHandler.SetOverride)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.Set)
	budgets.GET("", budgetHandler.List)
	budgets.DELETE("/:id", budgetHandler.Delete)
	budgets.GET("/status", budgetHandler.Status)

	// Category catalog
	protected.GET("/categories", categoryHandler.List)

	// Chart preferences
	preferences := protected.Group("/preferences")
	preferences.PUT("", preferenceHandler.Set)
	preferences.GET("", preferenceHandler.List)

	// Encrypted backup
	backup := protected.Group("/backup")
	backup.POST("/export", backupHandler.Export)
	backup.POST("/import", backupHandler.Import)

	log.Infof("Starting Centime backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
