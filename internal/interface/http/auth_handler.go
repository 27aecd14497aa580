package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/internal/application"
	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/go-exercise-tracker/pkg/helpers"
	"github.com/oksasatya/go-exercise-tracker/pkg/response"
	"github.com/oksasatya/go-exercise-tracker/pkg/session"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type authResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, token, err := h.Svc.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		fail(c, h.Logger, err, "user not found")
		return
	}
	helpers.LogInfo(h.Logger, "user registered", logrus.Fields{"username": u.Username})
	response.Success(c, http.StatusCreated, authResult{User: u, Token: token}, "registered", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, token, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, h.Logger, err, "user not found")
		return
	}
	response.Success(c, http.StatusOK, authResult{User: u, Token: token}, "login successful", nil)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		fail(c, h.Logger, application.ErrUnauthenticated, "")
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), sess); err != nil {
		fail(c, h.Logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}
