// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"unburden/internal/cache"
	"unburden/internal/config"
	"unburden/internal/database"
	"unburden/internal/middleware"
	"unburden/internal/repository"
	"unburden/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	confessionRepo repository.ConfessionRepository
	followRepo     repository.FollowRepository

	accountService    *service.AccountService
	confessionService *service.ConfessionService
	feedService       *service.FeedService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	confessionRepo := repository.NewConfessionRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := middleware.InitMetrics("unburden-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		confessionRepo: confessionRepo,
		followRepo:     followRepo,
	}

	server.accountService = service.NewAccountService(userRepo, confessionRepo, followRepo)
	server.confessionService = service.NewConfessionService(confessionRepo, userRepo)
	server.feedService = service.NewFeedService(confessionRepo, followRepo, userRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Bearer identity (parsed when present, never enforced)
	app.Use(middleware.BearerIdentity)

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	// Backwards-compatible legacy route: map /health to readiness
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Unburden Backend Metrics Dashboard",
	}))

	// Onboarding routes
	onboarding := api.Group("/onboarding")
	onboarding.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	onboarding.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	onboarding.Put("/complete-profile/:userId", s.CompleteProfile)

	// Profile routes
	// Define specific /:userId/:resource routes BEFORE generic /:userId routes
	profile := api.Group("/profile")
	profile.Get("/:userId/confessions", s.GetUserConfessions)
	profile.Get("/:userId/stats", s.GetUserStats)
	profile.Post("/:userId/follow", middleware.RateLimit(
		s.redis, 30, time.Minute, "follow"), s.FollowUser)
	profile.Delete("/:userId/follow", s.UnfollowUser)
	profile.Get("/:userId", s.GetProfile)
	profile.Put("/:userId", s.UpdateProfile)
	profile.Delete("/:userId", s.DeleteAccount)

	// Feed routes
	feed := api.Group("/feed")
	feed.Get("/", s.GetFeed)
	feed.Get("/trending", s.GetTrending)
	feed.Get("/following", s.GetFollowingFeed)
	feed.Post("/:confessionId/like", s.LikeConfession)
	feed.Post("/:confessionId/comment", middleware.RateLimit(
		s.redis, 10, time.Minute, "comment"), s.CommentOnConfession)
	feed.Get("/:confessionId", s.GetConfession)

	// Confession CRUD routes
	post := api.Group("/post")
	post.Post("/", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_confession"), s.CreateConfessionPost)
	post.Get("/:postId", s.GetConfessionPost)
	post.Put("/:postId", s.UpdateConfessionPost)
	post.Delete("/:postId", s.DeleteConfessionPost)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app serves without Redis, it just loses caching and rate limits.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Unburden",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server resources during graceful shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		return sqlDB.Close()
	}
	return nil
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uuid.UUID, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID.String(),                    // Subject (user ID)
		"username": username,                           // Username (cached in token)
		"iss":      "unburden-api",                     // Issuer
		"aud":      "unburden-client",                  // Audience
		"exp":      now.Add(time.Hour * 24 * 7).Unix(), // Expiration (7 days)
		"iat":      now.Unix(),                         // Issued at
		"nbf":      now.Unix(),                         // Not before
		"jti":      s.generateJTI(),                    // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
