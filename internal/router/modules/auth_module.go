package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-exercise-tracker/internal/container"
	handlers "github.com/oksasatya/go-exercise-tracker/internal/interface/http"
	"github.com/oksasatya/go-exercise-tracker/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Authn   middleware.Authenticator
}

func NewAuthModule(h *handlers.AuthHandler, authn middleware.Authenticator) *AuthModule {
	return &AuthModule{Handler: h, Authn: authn}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Authn))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
