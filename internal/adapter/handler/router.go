package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	httpmw "github.com/ShashankMk031/ZenAI-AI-Backend/internal/infrastructure/http/middleware"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/config"
)

// AdminRole may trigger notification runs by hand
const AdminRole = "admin"

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// Handlers groups the API handlers. Nil handlers leave their routes unregistered.
type Handlers struct {
	Meeting      *Meeting
	Task         *Task
	Report       *Report
	Notification *Notification
}

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	handlers Handlers
	auth     echo.MiddlewareFunc
	checks   map[string]HealthCheck
	logger   *zap.Logger
}

// NewRouter creates a new router with all handlers. auth guards the /v1 group.
func NewRouter(cfg *config.Config, handlers Handlers, auth echo.MiddlewareFunc, checks map[string]HealthCheck, logger *zap.Logger) *Router {
	return &Router{
		cfg:      cfg,
		handlers: handlers,
		auth:     auth,
		checks:   checks,
		logger:   logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	if rt.auth != nil {
		v1.Use(rt.auth)
	}

	rt.setupMeetingRoutes(v1)
	rt.setupTaskRoutes(v1)
	rt.setupReportRoutes(v1)
	rt.setupNotificationRoutes(v1)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	h := rt.handlers.Meeting
	if h == nil {
		return
	}
	meetings := g.Group("/meetings")
	meetings.POST("/analyze", h.Analyze)
	meetings.POST("/analyze-audio", h.AnalyzeAudio)
	meetings.POST("/analyze-and-sync", h.AnalyzeAndSync)
	meetings.GET("", h.List)
	meetings.GET("/:id", h.Get)
}

func (rt *Router) setupTaskRoutes(g *echo.Group) {
	h := rt.handlers.Task
	if h == nil {
		return
	}
	g.GET("/tasks/overdue", h.Overdue)
	g.GET("/tasks/at-risk", h.AtRisk)
	g.GET("/dashboard", h.Dashboard)
}

func (rt *Router) setupReportRoutes(g *echo.Group) {
	h := rt.handlers.Report
	if h == nil {
		return
	}
	reports := g.Group("/reports")
	reports.GET("", h.List)
	reports.GET("/daily", h.Daily)
	reports.GET("/latest", h.Latest)
	reports.GET("/:id", h.Get)
	reports.GET("/:id/pdf", h.PDF)
	reports.POST("/:id/email", h.Email)
}

func (rt *Router) setupNotificationRoutes(g *echo.Group) {
	h := rt.handlers.Notification
	if h == nil {
		return
	}
	notifications := g.Group("/notifications", httpmw.RequireRole(AdminRole))
	notifications.POST("/alerts", h.Alerts)
	notifications.POST("/digest", h.Digest)
}

// healthCheck reports the state of every registered dependency. Any failing
// check turns the response into 503.
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(rt.checks))
	for name := range rt.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(names))
	for _, name := range names {
		if err := rt.checks[name](ctx); err != nil {
			deps[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			if rt.logger != nil {
				rt.logger.Warn("⚠️ Health check failed", zap.String("dependency", name), zap.Error(err))
			}
			continue
		}
		deps[name] = "ok"
	}

	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(code, map[string]interface{}{
		"status":       status,
		"environment":  env,
		"dependencies": deps,
	})
}
