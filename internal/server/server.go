// Package server contains the HTTP handlers and route table of the API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	_ "estately/docs" // swagger docs
	"estately/internal/cache"
	"estately/internal/config"
	"estately/internal/database"
	"estately/internal/jobs"
	"estately/internal/middleware"
	"estately/internal/models"
	"estately/internal/notifications"
	"estately/internal/observability"
	"estately/internal/repository"
	"estately/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config          *config.Config
	db              *gorm.DB
	redis           *redis.Client
	cache           *cache.Store
	app             *fiber.App
	promMiddleware  *fiberprometheus.FiberPrometheus
	scheduler       *jobs.Scheduler
	notifier        *notifications.Notifier
	stopFeed        context.CancelFunc
	userRepo        repository.UserRepository
	userService     *service.UserService
	propertyService *service.PropertyService
	moderation      *service.ModerationService
	inquiryService  *service.InquiryService
	wishlistService *service.WishlistService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; caching, token revocation and Redis rate limits are then disabled.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	models.ConfigureErrorDetails(!cfg.IsProduction())

	store := cache.NewStore(redisClient)
	userRepo := repository.NewUserRepository(db, store)
	propertyRepo := repository.NewPropertyRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	searchTTL := time.Duration(cfg.SearchCacheTTLSeconds) * time.Second

	notifier := notifications.NewNotifier(redisClient)
	moderation := service.NewModerationService(propertyRepo, store)
	moderation.SetNotifier(notifier)
	inquiries := service.NewInquiryService(inquiryRepo, propertyRepo)
	inquiries.SetNotifier(notifier)

	return &Server{
		config:          cfg,
		db:              db,
		redis:           redisClient,
		cache:           store,
		promMiddleware:  middleware.InitMetrics("estately-api"),
		userRepo:        userRepo,
		userService:     service.NewUserService(userRepo),
		propertyService: service.NewPropertyService(propertyRepo, store, searchTTL),
		moderation:      moderation,
		inquiryService:  inquiries,
		notifier:        notifier,
		wishlistService: service.NewWishlistService(wishlistRepo, propertyRepo),
	}, nil
}

// NewApp builds a Fiber app with the full middleware chain and route table.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Estately API",
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Message: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return models.RespondWithAppError(c, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Tracing runs before the context middleware so the trace ID reaches the logger.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS must run before anything that can short-circuit so error responses still carry the headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Estately API Metrics",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/me", s.AuthRequired(), s.Me)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	owners := s.RequireRoles(models.RoleOwner, models.RoleAdmin)

	properties := api.Group("/properties")
	properties.Get("/", middleware.RateLimit(s.redis, 60, time.Minute, "search"), s.SearchProperties)
	// Specific routes before the generic /:id route
	properties.Get("/owner/my", s.AuthRequired(), owners, s.GetMyProperties)
	properties.Get("/:id", s.OptionalAuth(), s.GetProperty)
	properties.Post("/", s.AuthRequired(), owners,
		middleware.RateLimit(s.redis, 20, time.Hour, "create_property"), s.CreateProperty)
	properties.Put("/:id", s.AuthRequired(), owners, s.UpdateProperty)
	properties.Delete("/:id", s.AuthRequired(), owners, s.DeleteProperty)

	admin := api.Group("/admin", s.AuthRequired(), s.RequireRoles(models.RoleAdmin))
	admin.Get("/users", s.GetAllUsers)
	admin.Get("/properties/pending", s.GetPendingProperties)
	admin.Get("/properties/all", s.GetAllProperties)
	admin.Put("/properties/:id/approve", s.ApproveProperty)
	admin.Put("/properties/:id/reject", s.RejectProperty)

	wishlist := api.Group("/wishlist", s.AuthRequired())
	wishlist.Get("/", s.GetWishlist)
	wishlist.Post("/:propertyId", s.AddToWishlist)
	wishlist.Delete("/:propertyId", s.RemoveFromWishlist)

	inquiries := api.Group("/inquiries", s.AuthRequired())
	inquiries.Get("/owner/all", owners, s.GetOwnerInquiries)
	inquiries.Put("/:id/status", owners, s.UpdateInquiryStatus)
	inquiries.Post("/:propertyId", s.RequireRoles(models.RoleUser),
		middleware.RateLimit(s.redis, 10, time.Hour, "inquiry"), s.CreateInquiry)
}

// HealthCheck is an alias for ReadinessCheck under /api.
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

// ReadinessCheck reports database and Redis health. Redis is optional:
// without it the API still serves requests, only uncached.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.cache.Enabled() {
		redisStatus = "healthy"
		if err := s.cache.Ping(ctx); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Estately API",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the digest scheduler and the notification feed, then serves HTTP until shutdown.
func (s *Server) Start() error {
	s.app = s.NewApp()

	scheduler, err := jobs.StartModerationDigest(s.config.ModerationDigestSchedule, jobs.NewModerationDigest(s.moderation))
	if err != nil {
		return err
	}
	s.scheduler = scheduler

	// Owner notifications are best effort; the API serves without them.
	if err := s.startNotificationFeed(); err != nil {
		middleware.Logger.Warn("notification feed unavailable", slog.String("error", err.Error()))
	}

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port), slog.String("env", s.config.Env))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown drains HTTP, stops background work and closes SQL and Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	s.scheduler.Stop(ctx)
	if s.stopFeed != nil {
		s.stopFeed()
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing sql DB", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}

// startNotificationFeed subscribes to every owner channel and records each delivery
// until Shutdown. It is a no-op without Redis.
func (s *Server) startNotificationFeed() error {
	ctx, cancel := context.WithCancel(context.Background())
	if err := s.notifier.StartSubscriber(ctx, logNotification); err != nil {
		cancel()
		return err
	}
	s.stopFeed = cancel
	return nil
}

func logNotification(userID uint, ev notifications.Event) {
	observability.NotificationsDelivered.WithLabelValues(ev.Type).Inc()
	middleware.Logger.Info("owner notification delivered",
		slog.Uint64("user_id", uint64(userID)),
		slog.String("type", ev.Type),
		slog.Uint64("property_id", uint64(ev.PropertyID)),
		slog.String("status", ev.Status),
	)
}
