package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/ClaireRuysschaert/BudgetMate/internal/config"
	"github.com/ClaireRuysschaert/BudgetMate/internal/database"
	"github.com/ClaireRuysschaert/BudgetMate/internal/handlers"
	"github.com/ClaireRuysschaert/BudgetMate/internal/logger"
	"github.com/ClaireRuysschaert/BudgetMate/internal/middleware"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
	"github.com/ClaireRuysschaert/BudgetMate/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ClaireRuysschaert/BudgetMate/internal/docs" // Import swagger docs
)

// @title           BudgetMate API
// @version         1.0
// @description     BudgetMate ingests bank statement exports, categorizes every line and tracks which expenses are shared with the household.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Register custom validation tags
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	bankService := services.NewBankService(db)
	categoryService := services.NewCategoryService(db)
	statementService := services.NewStatementService(db, categoryService)
	shareService := services.NewShareService(db)

	// Uploads resolve categories without prompting and leave sharing
	// decisions pending; clients decide them through the lines endpoints.
	ingestionService := services.NewIngestionService(db, bankService, categoryService,
		statementService, shareService, services.AcceptProposals, services.LeavePending)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	bankHandler := handlers.NewBankHandler(bankService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	statementHandler := handlers.NewStatementHandler(statementService, shareService)
	importHandler := handlers.NewImportHandler(ingestionService)

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

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

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

	// Bank routes
	banks := protected.Group("/banks")
	banks.POST("/brands", bankHandler.CreateBankBrand)
	banks.GET("/brands", bankHandler.GetBankBrands)
	banks.POST("/accounts", bankHandler.CreateBankAccount)
	banks.GET("/accounts", bankHandler.GetUserBankAccounts)
	banks.GET("/accounts/:id", bankHandler.GetBankAccountByID)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetUserCategories)

	// Statement routes
	statements := protected.Group("/statements")
	statements.GET("", statementHandler.GetUserStatements)
	statements.POST("/import", importHandler.ImportStatements)
	statements.GET("/:id", statementHandler.GetStatementByID)
	statements.GET("/:id/lines", statementHandler.GetStatementLines)
	statements.GET("/:id/totals", statementHandler.GetStatementTotals)
	statements.GET("/:id/pending", statementHandler.GetPendingLines)

	// Statement line routes
	lines := protected.Group("/lines")
	lines.POST("/:id/share", statementHandler.DecideShare)
	lines.POST("/:id/recategorize", statementHandler.RecategorizeLine)

	log.Infof("Starting BudgetMate backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
