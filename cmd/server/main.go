package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventops/staffing-backend/internal/cache"
	"github.com/eventops/staffing-backend/internal/config"
	"github.com/eventops/staffing-backend/internal/database"
	"github.com/eventops/staffing-backend/internal/handlers"
	"github.com/eventops/staffing-backend/internal/middleware"
	"github.com/eventops/staffing-backend/internal/models"
	"github.com/eventops/staffing-backend/internal/services"
	"github.com/eventops/staffing-backend/pkg/googleauth"
	"github.com/eventops/staffing-backend/pkg/jwt"
	"github.com/eventops/staffing-backend/pkg/validator"
)

var version = "1.0.0"

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting event staffing backend")
	logger.Infof("Version: %s", version)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := database.RunMigrations(db.DB, logger); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Dashboard cache is optional: a nil cache means every request hits
	// the database.
	var dashboardCache cache.Cache
	if redisCache := cache.NewRedis(cfg.Redis, logger); redisCache != nil {
		dashboardCache = redisCache
		defer redisCache.Close()
	}

	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	googleVerifier := googleauth.NewVerifier(cfg.Google.ClientID)
	documentValidator := validator.NewDocumentValidator()

	companyRepo := database.NewCompanyRepository(db)
	userRepo := database.NewUserRepository(db)
	inviteRepo := database.NewInviteRepository(db.DB)
	loginAuditRepo := database.NewLoginAuditRepository(db)
	staffRepo := database.NewStaffRepository(db)
	projectRepo := database.NewProjectRepository(db)
	eventRepo := database.NewEventRepository(db)
	eventsCompanyRepo := database.NewEventsCompanyRepository(db)
	eventsStaffRepo := database.NewEventsStaffRepository(db)
	checkRepo := database.NewCheckRepository(db.DB)
	dashboardRepo := database.NewDashboardRepository(db)

	authService := services.NewAuthService(googleVerifier, userRepo, inviteRepo, loginAuditRepo, jwtService, logger)
	checkService := services.NewCheckService(checkRepo, logger)
	importService := services.NewStaffImportService(eventRepo, staffRepo, eventsStaffRepo, documentValidator, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, dashboardCache, cfg.Redis.TTL, logger)
	logger.Info("Services initialized")

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)
	companyHandler := handlers.NewCompanyHandler(companyRepo, documentValidator)
	inviteHandler := handlers.NewInviteHandler(inviteRepo, cfg)
	staffHandler := handlers.NewStaffHandler(staffRepo, documentValidator)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	eventHandler := handlers.NewEventHandler(eventRepo, eventsCompanyRepo, eventsStaffRepo, importService)
	checkHandler := handlers.NewCheckHandler(checkService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheckHandler(db))

	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/google/login", authHandler.GoogleLogin)
			auth.POST("/google/register", authHandler.Register)
			auth.POST("/refresh", authHandler.Refresh)

			// Invite preview for the signup page
			auth.GET("/invites/:id", inviteHandler.Get)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/me", userHandler.Me)

			// Platform administration (admin only)
			admin := protected.Group("")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/companies", companyHandler.Create)
				admin.GET("/companies", companyHandler.List)
				admin.GET("/companies/:id", companyHandler.Get)
				admin.PUT("/companies/:id", companyHandler.Update)
				admin.DELETE("/companies/:id", companyHandler.Delete)

				admin.POST("/users", userHandler.Create)
				admin.GET("/users", userHandler.List)
				admin.GET("/users/:id", userHandler.Get)
				admin.PUT("/users/:id", userHandler.UpdateName)
				admin.PATCH("/users/:id/status", userHandler.SetStatus)

				admin.POST("/invites", inviteHandler.Create)
				admin.GET("/invites", inviteHandler.List)
				admin.DELETE("/invites/:id", inviteHandler.Delete)

				admin.POST("/projects", projectHandler.Create)
				admin.PUT("/projects/:id", projectHandler.Update)
				admin.DELETE("/projects/:id", projectHandler.Delete)

				admin.POST("/events", eventHandler.Create)
				admin.PUT("/events/:id", eventHandler.Update)
				admin.DELETE("/events/:id", eventHandler.Delete)

				admin.POST("/events/:id/companies", eventHandler.AddCompany)
				admin.GET("/events/:id/companies", eventHandler.ListCompanies)
				admin.DELETE("/events/:id/companies/:company_id", eventHandler.RemoveCompany)
			}

			protected.GET("/dashboard/metrics", dashboardHandler.Metrics)

			// Staff management (admin and company, scoping in the handler)
			staff := protected.Group("/staff")
			staff.Use(middleware.RequireRole(models.RoleAdmin, models.RoleCompany))
			{
				staff.POST("", staffHandler.Create)
				staff.GET("", staffHandler.List)
				staff.GET("/:id", staffHandler.Get)
				staff.PUT("/:id", staffHandler.Update)
				staff.DELETE("/:id", staffHandler.Delete)
			}

			// Read surfaces scoped per role inside the handlers
			protected.GET("/projects", projectHandler.List)
			protected.GET("/projects/:id", projectHandler.Get)
			protected.GET("/events", eventHandler.List)
			protected.GET("/events/:id", eventHandler.Get)
			protected.GET("/events/:id/overview", eventHandler.Overview)
			protected.GET("/events/:id/staff", eventHandler.Roster)

			// Bulk import: company users only, ownership enforced in the
			// service with no admin bypass
			importGroup := protected.Group("")
			importGroup.Use(middleware.RequireRole(models.RoleCompany))
			{
				importGroup.POST("/events/:id/staff/bulk", eventHandler.ImportStaff)
			}

			// Check lifecycle (admin and control)
			checks := protected.Group("")
			checks.Use(middleware.RequireRole(models.RoleAdmin, models.RoleControl))
			{
				checks.POST("/checks", checkHandler.Submit)
				checks.GET("/checks", checkHandler.List)
				checks.GET("/events-staff/:id/status", checkHandler.Status)
				checks.GET("/events-staff/:id/checks", checkHandler.History)
			}
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}
		if userCtx, ok := middleware.GetUserContext(c); ok {
			fields["user_id"] = userCtx.UserID
			fields["role"] = userCtx.Role
		}

		entry := logger.WithFields(fields)
		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
