package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-exercise-tracker/internal/container"
	handlers "github.com/oksasatya/go-exercise-tracker/internal/interface/http"
	"github.com/oksasatya/go-exercise-tracker/internal/interface/middleware"
)

// UserModule wires the profile routes.
// Protected: POST /api/users/update-goal, GET /api/users/me
type UserModule struct {
	Handler *handlers.UserHandler
	Authn   middleware.Authenticator
}

func NewUserModule(h *handlers.UserHandler, authn middleware.Authenticator) *UserModule {
	return &UserModule{Handler: h, Authn: authn}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(
		middleware.Auth(m.Authn),
		middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUser(), nil),
	)
	{
		users.POST("/update-goal", m.Handler.UpdateGoal)
		users.GET("/me", m.Handler.Profile)
	}
}
