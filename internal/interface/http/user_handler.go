package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/internal/application"
	"github.com/oksasatya/go-exercise-tracker/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// UpdateGoal POST /api/users/update-goal
func (h *UserHandler) UpdateGoal(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Svc.UpdateGoal(c.Request.Context(), user, int(*req.WeeklyGoal))
	if err != nil {
		fail(c, h.Logger, err, "user not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Goal updated!", "weeklyGoal": u.WeeklyGoal}, "Goal updated!", nil)
}

// Profile GET /api/users/me
func (h *UserHandler) Profile(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	u, err := h.Svc.Profile(c.Request.Context(), user)
	if err != nil {
		fail(c, h.Logger, err, "user not found")
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}
