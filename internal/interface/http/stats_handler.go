package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/internal/application"
	"github.com/oksasatya/go-exercise-tracker/internal/domain/stats"
	"github.com/oksasatya/go-exercise-tracker/pkg/response"
)

// StatsHandler serves the read-only aggregations over the caller's exercises.
type StatsHandler struct {
	Svc    *application.ExerciseService
	Logger *logrus.Logger
}

func NewStatsHandler(svc *application.ExerciseService, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{Svc: svc, Logger: logger}
}

// Dashboard GET /api/exercises/stats?goal=
func (h *StatsHandler) Dashboard(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	goal := 0
	if raw := c.Query("goal"); raw != "" {
		g, err := strconv.Atoi(raw)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"goal": "must be a number"})
			return
		}
		goal = g
	}
	d, err := h.Svc.Dashboard(c.Request.Context(), user, goal)
	if err != nil {
		fail(c, h.Logger, err, "user not found")
		return
	}
	response.Success(c, http.StatusOK, d, "", nil)
}

// View GET /api/exercises/view?category=&window=&sort=
func (h *StatsHandler) View(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	opts, err := stats.ParseViewOptions(c.Query("category"), c.Query("window"), c.Query("sort"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"query": err.Error()})
		return
	}
	v, err := h.Svc.View(c.Request.Context(), user, opts)
	if err != nil {
		fail(c, h.Logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, v, "", map[string]any{
		"category": opts.Category,
		"window":   opts.Window,
		"sort":     opts.Sort,
	})
}

// Heatmap GET /api/exercises/heatmap
func (h *StatsHandler) Heatmap(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	hm, err := h.Svc.Heatmap(c.Request.Context(), user)
	if err != nil {
		fail(c, h.Logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, hm, "", nil)
}

// Achievements GET /api/exercises/achievements
func (h *StatsHandler) Achievements(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	as, err := h.Svc.Achievements(c.Request.Context(), user)
	if err != nil {
		fail(c, h.Logger, err, "")
		return
	}
	response.Success(c, http.StatusOK, as, "", nil)
}
