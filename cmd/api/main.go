package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	httpAdapter "github.com/lorrc/helpdesk-backend/internal/adapters/primary/http"
	mw "github.com/lorrc/helpdesk-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/helpdesk-backend/internal/adapters/primary/websocket"
	"github.com/lorrc/helpdesk-backend/internal/adapters/secondary/email"
	"github.com/lorrc/helpdesk-backend/internal/adapters/secondary/postgres"
	"github.com/lorrc/helpdesk-backend/internal/adapters/secondary/rediscache"
	"github.com/lorrc/helpdesk-backend/internal/auth"
	"github.com/lorrc/helpdesk-backend/internal/config"
	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
	"github.com/lorrc/helpdesk-backend/internal/core/services"
	"github.com/lorrc/helpdesk-backend/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Database Pool
	ctx := context.Background()
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database connection established")

	// 4. Initialize Report Cache (optional)
	var (
		reportCache  *rediscache.ReportCache
		cacheChecker httpAdapter.HealthChecker
	)
	if cfg.Redis.URL != "" {
		reportCache, err = rediscache.NewReportCache(cfg.Redis.URL, cfg.Redis.ReportCacheTTL, logger)
		if err != nil {
			logger.Error("failed to configure redis", "error", err)
			os.Exit(1)
		}
		defer reportCache.Close()
		cacheChecker = reportCache
	}

	// 5. Initialize Security & Real-time Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	hub := websocket.NewHub(logger)
	go hub.Run()

	// 6. Initialize Rate Limiters
	var generalRateLimiter, authRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalCfg := mw.DefaultRateLimiterConfig()
		generalCfg.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		generalCfg.BurstSize = cfg.RateLimit.BurstSize
		generalRateLimiter = mw.NewRateLimiter(generalCfg)

		authCfg := mw.AuthRateLimiterConfig()
		authCfg.RequestsPerSecond = cfg.RateLimit.AuthRPS
		authCfg.BurstSize = cfg.RateLimit.AuthBurst
		authRateLimiter = mw.NewRateLimiter(authCfg)
	}

	// 7. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	userRepo := postgres.NewUserRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	// Notifier (Secondary Adapter)
	notifier := email.NewMockSMTPNotifier(userRepo, logger)

	// Services (Core)
	authService := services.NewAuthService(userRepo, tokenManager)
	ticketService := services.NewTicketService(ticketRepo, notifier, hub)
	commentService := services.NewCommentService(commentRepo, ticketRepo)
	reportService := services.NewReportService(reportRepo, userRepo, ports.RealClock{})

	escalationService := services.NewEscalationService(
		ticketRepo, notifier, hub, ports.RealClock{}, cfg.Escalation.SweepInterval, logger,
	)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go escalationService.Run(sweepCtx)

	// Handlers (Primary Adapters)
	authHandler := httpAdapter.NewAuthHandler(authService, errorHandler, logger)
	commentHandler := httpAdapter.NewCommentHandler(commentService, errorHandler, logger)
	ticketHandler := httpAdapter.NewTicketHandler(ticketService, commentHandler, errorHandler, logger)
	reportHandler := httpAdapter.NewReportHandler(reportService, errorHandler, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(
		hub, tokenManager, cfg.WebSocket.AllowedOrigins, cfg.IsDevelopment(), logger,
	)
	healthHandler := httpAdapter.NewHealthHandler(pool, cacheChecker, cfg.App.Version)

	// 8. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(cors.Handler(corsOptions(cfg)))
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))

	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleLiveness)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes with stricter rate limiting
		r.Group(func(r chi.Router) {
			if authRateLimiter != nil {
				r.Use(authRateLimiter.Middleware)
			}
			r.Mount("/auth", authHandler.Router())
		})

		// WebSocket route (authentication is handled inside the handler)
		r.Get("/ws", wsHandler.HandleConnect)

		// Protected REST routes
		r.Group(func(r chi.Router) {
			r.Use(mw.JWTMiddleware(tokenManager))
			r.Mount("/tickets", ticketHandler.Router())

			// Reports are admin only. The cache sits behind the role
			// check so cached payloads are never served to non-admins.
			r.Route("/reports", func(r chi.Router) {
				r.Use(mw.RequireRole(domain.RoleAdmin))
				if reportCache != nil {
					r.Use(httpAdapter.CacheReports(reportCache))
				}
				r.Mount("/", reportHandler.Router())
			})
		})
	})

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	stopSweep()
	ticketService.Shutdown()

	logger.Info("server shutdown complete")
}

func corsOptions(cfg *config.Config) cors.Options {
	allowedOrigins := cfg.WebSocket.AllowedOrigins
	if cfg.IsDevelopment() && len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}
