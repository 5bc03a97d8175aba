package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docmind-backend/internal/admin"
	googleauth "docmind-backend/internal/auth"
	"docmind-backend/internal/documents"
	"docmind-backend/internal/insights"
	"docmind-backend/internal/search"
	"docmind-backend/internal/shared/config"
	"docmind-backend/internal/shared/metrics"
	"docmind-backend/internal/shared/server/middleware"
	"docmind-backend/internal/shared/server/respond"
)

// RouterDeps lists the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
	InsightsHandler  *insights.Handler
	SearchHandler    *search.Handler
	AdminHandler     *admin.Handler
	GoogleAuth       *googleauth.GoogleService
	RateLimiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(rateLimitConfig(deps.RateLimiter)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.SearchHandler != nil {
		deps.SearchHandler.RegisterRoutes(api)
	}
	if deps.InsightsHandler != nil {
		deps.InsightsHandler.RegisterRoutes(api)
	}
	if deps.AdminHandler != nil {
		adminGroup := api.Group("")
		adminGroup.Use(middleware.RequireAdmin())
		deps.AdminHandler.RegisterRoutes(adminGroup)
	}

	return r
}

// rateLimitConfig throttles model-backed endpoints harder than plain CRUD.
func rateLimitConfig(limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		Limiter:      limiter,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodPost {
				return "DEFAULT"
			}
			full := c.FullPath()
			if strings.HasSuffix(full, "/summary") ||
				strings.HasSuffix(full, "/keywords") ||
				strings.HasSuffix(full, "/:id/search") {
				return "AI"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 5, Burst: 30},
			"AI":      {Rate: 0.5, Burst: 5},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
