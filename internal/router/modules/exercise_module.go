package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-exercise-tracker/internal/container"
	handlers "github.com/oksasatya/go-exercise-tracker/internal/interface/http"
	"github.com/oksasatya/go-exercise-tracker/internal/interface/middleware"
)

// ExerciseModule serves the caller's exercise log and everything derived from it.
// Every route requires a bearer token.
type ExerciseModule struct {
	Handler *handlers.ExerciseHandler
	Stats   *handlers.StatsHandler
	Authn   middleware.Authenticator
}

func NewExerciseModule(h *handlers.ExerciseHandler, s *handlers.StatsHandler, authn middleware.Authenticator) *ExerciseModule {
	return &ExerciseModule{Handler: h, Stats: s, Authn: authn}
}

func (m *ExerciseModule) Register(rg *gin.RouterGroup) {
	ex := rg.Group("/exercises")
	ex.Use(
		middleware.Auth(m.Authn),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil),
	)
	{
		ex.GET("", m.Handler.List)
		ex.POST("/add", m.Handler.Add)
		ex.POST("/update/:id", m.Handler.Update)

		ex.GET("/stats", m.Stats.Dashboard)
		ex.GET("/view", m.Stats.View)
		ex.GET("/heatmap", m.Stats.Heatmap)
		ex.GET("/achievements", m.Stats.Achievements)

		ex.GET("/search", m.Handler.Search)
		ex.GET("/export", m.Handler.Export)

		ex.GET("/:id", m.Handler.Get)
		ex.DELETE("/:id", m.Handler.Delete)
	}

	// Archiving uploads to object storage, so it gets a tighter budget
	archiveLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByUser(), nil)
	ex.POST("/export/archive", archiveLimiter, m.Handler.Archive)
}
