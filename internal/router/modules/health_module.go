package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-exercise-tracker/internal/container"
	"github.com/oksasatya/go-exercise-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-exercise-tracker/pkg/response"
)

type HealthModule struct {
	Metrics      *middleware.HTTPMetrics
	DebugEnabled bool
}

func NewHealthModule(m *middleware.HTTPMetrics, debugEnabled bool) *HealthModule {
	return &HealthModule{Metrics: m, DebugEnabled: debugEnabled}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "ok", nil)
	})

	if !m.DebugEnabled {
		return
	}
	// Public metrics endpoints, rate-limited per IP; private networks (scrapers) bypass
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	if m.Metrics != nil {
		rg.GET("/metrics", rl, gin.WrapH(m.Metrics.Handler()))
	}
}
