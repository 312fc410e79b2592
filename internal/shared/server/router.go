package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MithunChowdary/resume-roaster/internal/analyses"
	"github.com/MithunChowdary/resume-roaster/internal/shared/config"
	"github.com/MithunChowdary/resume-roaster/internal/shared/metrics"
	"github.com/MithunChowdary/resume-roaster/internal/shared/server/middleware"
	"github.com/MithunChowdary/resume-roaster/internal/shared/server/respond"
	"github.com/MithunChowdary/resume-roaster/internal/web"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
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
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	deps.AnalysisHandler.RegisterRoutes(api)

	web.Register(r)

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
