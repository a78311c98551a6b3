package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/analyses"
	"cvmatch-backend/internal/services/health"
	"cvmatch-backend/internal/shared/config"
	"cvmatch-backend/internal/shared/metrics"
	"cvmatch-backend/internal/shared/server/middleware"
	"cvmatch-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers and services the router mounts.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	HealthService   *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Routes live at the root so existing clients keep working unchanged.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.HealthService.Status())
	})
	r.GET("/metrics", metrics.Handler())

	root := r.Group("/")
	deps.AnalysisHandler.RegisterRoutes(root)

	return r
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
