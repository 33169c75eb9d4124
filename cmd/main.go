package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/shoppingk/jitsi-session-keeper/internal/auth"
	"github.com/shoppingk/jitsi-session-keeper/internal/handler"
	"github.com/shoppingk/jitsi-session-keeper/internal/middleware"
	"github.com/shoppingk/jitsi-session-keeper/internal/model"
	"github.com/shoppingk/jitsi-session-keeper/internal/recording"
	"github.com/shoppingk/jitsi-session-keeper/internal/tenant"
	"github.com/shoppingk/jitsi-session-keeper/pkg/config"
	"github.com/shoppingk/jitsi-session-keeper/pkg/jwtutil"
	"github.com/shoppingk/jitsi-session-keeper/pkg/logger"
	"github.com/shoppingk/jitsi-session-keeper/pkg/sessionstore"
	"github.com/shoppingk/jitsi-session-keeper/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("jitsi-session-keeper")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting session service...", cfg.LogConfig()...)

	// Session store: file-backed when a path is configured, in-memory
	// otherwise
	var store sessionstore.Store
	if cfg.Session.StorePath != "" {
		store, err = sessionstore.NewFile(cfg.Session.StorePath)
		if err != nil {
			log.Fatal("Failed to open session store", zap.Error(err))
		}
		log.Info("Session store opened", zap.String("path", cfg.Session.StorePath))
	} else {
		store = sessionstore.NewMemory()
		log.Info("Using in-memory session store")
	}

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      cfg.JWT.SigningKey,
		ExpirationHours: cfg.JWT.ExpirationHours,
	})

	// Core services, constructed once and passed by reference
	tenants := tenant.NewService(cfg.Tenant.LookupDelay, log)
	authSvc := auth.NewService(tenants, store, jwtUtil, log)
	ledger := recording.NewLedger(cfg.Recording.ProcessingDelay, log)
	defer ledger.Close()

	authSvc.Subscribe(func(state model.AuthState) {
		log.Debug("auth state transition", zap.Bool("authenticated", state.IsAuthenticated))
	})

	h := handler.New(tenants, authSvc, ledger, cfg.Conference)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)
	e.GET("/tenant", h.ResolveTenant)

	// Authentication routes
	authGroup := e.Group("/auth")
	authGroup.POST("/login", h.Login)

	// API routes - all require a valid session token
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtUtil))
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)
	api.GET("/conference/config", h.ConferenceConfig)
	api.GET("/recordings", h.ListRecordings)
	api.GET("/recordings/:room/active", h.ActiveRecording)

	// Admin routes - role gated
	admin := api.Group("")
	admin.Use(middleware.RequireAdmin)
	admin.GET("/users", h.ListTenantUsers)
	admin.POST("/recordings/start", h.StartRecording)
	admin.POST("/recordings/:room/stop", h.StopRecording)
	admin.GET("/recordings/:id/download", h.DownloadRecording)

	// Tenant directory - super-admin checks live in the handlers
	admin.GET("/tenants", h.ListTenants)
	admin.POST("/tenants", h.CreateTenant)
	admin.PATCH("/tenants/:id", h.UpdateTenant)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
