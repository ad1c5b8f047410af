package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tasko-app/tasko-api/internal/api/handler"
	"github.com/tasko-app/tasko-api/internal/api/middleware"
	"github.com/tasko-app/tasko-api/internal/core/ports"
)

// RouterConfig carries the assembled services and shared clients the HTTP
// layer needs.
type RouterConfig struct {
	Accounts      ports.AccountService
	Tasks         ports.TaskService
	Notifications ports.NotificationService
	SessionTTL    time.Duration
	Mongo         *mongo.Database
	Redis         *redis.Client
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tasko"))
	e.Use(middleware.Session(cfg.Accounts))

	// --- Handlers ---
	accountHandler := handler.NewAccountHandler(cfg.Accounts, cfg.SessionTTL)
	taskHandler := handler.NewTaskHandler(cfg.Tasks)
	notificationHandler := handler.NewNotificationHandler(cfg.Notifications)

	// --- Identity routes ---
	auth := e.Group("/auth")
	auth.POST("/send-otp", accountHandler.SendOTP)
	auth.POST("/verify-otp", accountHandler.VerifyOTP)
	auth.POST("/resend-otp", accountHandler.ResendOTP)
	auth.POST("/complete-signup", accountHandler.CompleteSignup)
	auth.POST("/signup", accountHandler.Signup)
	auth.POST("/login", accountHandler.Login)
	auth.POST("/logout", accountHandler.Logout, middleware.RequireAuth)
	auth.GET("/check-session", accountHandler.CheckSession)
	auth.POST("/forgot-password/send-otp", accountHandler.ForgotPassword)
	auth.POST("/forgot-password/verify-otp", accountHandler.VerifyResetOTP)
	auth.POST("/forgot-password/resend-otp", accountHandler.ResendResetOTP)
	auth.POST("/reset-password", accountHandler.ResetPassword)

	e.GET("/user/me", accountHandler.Me, middleware.RequireAuth)

	// --- Task routes ---
	tasks := e.Group("/tasks", middleware.RequireAuth)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.POST("/bulk-update", taskHandler.BulkUpdate)
	tasks.POST("/bulk-operations", taskHandler.BulkOperation)
	tasks.GET("/stats", taskHandler.Stats)
	tasks.GET("/dashboard-stats", taskHandler.DashboardStats)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Notification routes ---
	notifications := e.Group("/notifications", middleware.RequireAuth)
	notifications.GET("", notificationHandler.List)
	notifications.POST("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.DELETE("/clear-all", notificationHandler.ClearAll)
	notifications.POST("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Mongo, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
