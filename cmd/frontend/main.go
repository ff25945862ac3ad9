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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andray-nkhatel/meeting-room-frontend/config"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/booking"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/cache"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/handlers"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/middleware"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/storage"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/upstream"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/jwt"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/logger"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/metrics"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/profiling"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerAuthenticatedRoutes wires the routes that require a logged-in
// session. The guard chain runs after the session middleware, so a slow
// hydration renders pending instead of bouncing the user to login.
func registerAuthenticatedRoutes(
	group *gin.RouterGroup,
	cfg *config.Config,
	roomHandler *handlers.RoomHandler,
	bookingHandler *handlers.BookingHandler,
) {
	group.Use(middleware.RequireAuthenticated(cfg.Session.LoginPath))

	group.GET("/rooms", roomHandler.ListRooms)
	group.GET("/rooms/available", roomHandler.AvailableRooms)
	group.GET("/rooms/:id", roomHandler.GetRoom)
	group.GET("/rooms/:id/availability", roomHandler.RoomAvailability)

	group.GET("/bookings", bookingHandler.ListBookings)
	group.GET("/bookings/my", bookingHandler.MyBookings)
	group.GET("/bookings/today", bookingHandler.TodaysMeetings)
	group.GET("/bookings/room/:id", bookingHandler.BookingsByRoom)
	group.GET("/bookings/room/:id/available", bookingHandler.CheckAvailability)
	group.GET("/bookings/:id", bookingHandler.GetBooking)
	group.POST("/bookings", bookingHandler.CreateBooking)
	group.PUT("/bookings/:id", bookingHandler.UpdateBooking)
	group.DELETE("/bookings/:id", bookingHandler.DeleteBooking)
}

// registerAdminRoutes wires the user-management screen. Non-admins are sent
// back to the home page.
func registerAdminRoutes(
	group *gin.RouterGroup,
	cfg *config.Config,
	userHandler *handlers.UserHandler,
) {
	group.Use(middleware.RequireAuthenticated(cfg.Session.LoginPath))
	group.Use(middleware.RequireAdmin(cfg.Session.HomePath))

	group.GET("/usermanagement", userHandler.ListUsers)
	group.GET("/usermanagement/:id", userHandler.GetUser)
	group.PUT("/usermanagement/:id", userHandler.UpdateUser)
	group.PUT("/usermanagement/:id/promote", userHandler.PromoteUser)
	group.PUT("/usermanagement/:id/demote", userHandler.DemoteUser)
	group.DELETE("/usermanagement/:id", userHandler.DeleteUser)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting meeting room frontend gateway",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.CollectorEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (no-op unless enabled)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Durable per-browser-session storage
	sessionStore, err := storage.NewFileStore(cfg.Session.StoreDir)
	if err != nil {
		logger.Fatal("Failed to open session store", zap.Error(err))
	}

	// Session cookie signing
	tokenManager := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.CookieTTLHours)

	// Upstream booking API client
	apiClient := upstream.NewClient(cfg.Upstream)

	// Room metadata cache (availability is never cached)
	roomCache := cache.NewRoomCache(apiClient, cfg.Cache.RoomTTLSeconds, cfg.Cache.DisableRoomCache)
	if cfg.Cache.DisableRoomCache {
		logger.Warn("Room cache is DISABLED - reading from upstream on every request")
	}

	// Booking submission workflow
	bookingWorkflow := booking.NewWorkflow(apiClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg.Session)
	roomHandler := handlers.NewRoomHandler(roomCache, apiClient, cfg.Session)
	bookingHandler := handlers.NewBookingHandler(apiClient, bookingWorkflow, cfg.Session)
	userHandler := handlers.NewUserHandler(apiClient, cfg.Session)
	healthHandler := handlers.NewHealthHandler(roomCache.Stats)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only allow the configured browser origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for the session cookie
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(1, 5)        // 1 req/sec, burst of 5 (login abuse prevention)

	sessionMiddleware := middleware.BrowserSessionMiddleware(tokenManager, sessionStore, apiClient, cfg.Session)

	// Operational endpoints (no session required)
	router.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	router.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	// Auth endpoints: session resolution but no guard, so anonymous visitors
	// can log in and register
	auth := router.Group("/api/auth")
	auth.Use(generalRateLimiter.Middleware())
	auth.Use(middleware.BodySizeLimitMiddleware(64*1024))
	auth.Use(sessionMiddleware)
	auth.POST("/login", authRateLimiter.Middleware(), authHandler.Login)
	auth.POST("/register", authRateLimiter.Middleware(), authHandler.Register)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	// Authenticated application routes
	app := router.Group("/api")
	app.Use(generalRateLimiter.Middleware())
	app.Use(middleware.BodySizeLimitMiddleware(256*1024))
	app.Use(sessionMiddleware)
	registerAuthenticatedRoutes(app, cfg, roomHandler, bookingHandler)

	// Admin routes
	admin := router.Group("/api")
	admin.Use(generalRateLimiter.Middleware())
	admin.Use(middleware.BodySizeLimitMiddleware(64*1024))
	admin.Use(sessionMiddleware)
	registerAdminRoutes(admin, cfg, userHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
