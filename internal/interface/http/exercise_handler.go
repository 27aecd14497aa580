package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/internal/application"
	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/go-exercise-tracker/pkg/response"
	"github.com/oksasatya/go-exercise-tracker/pkg/session"
	"github.com/oksasatya/go-exercise-tracker/pkg/validation"
)

const exerciseNotFound = "exercise not found"

type ExerciseHandler struct {
	Svc    *application.ExerciseService
	Logger *logrus.Logger
}

func NewExerciseHandler(svc *application.ExerciseService, logger *logrus.Logger) *ExerciseHandler {
	return &ExerciseHandler{Svc: svc, Logger: logger}
}

// owner returns the caller's username or writes a 401.
func owner(c *gin.Context, logger *logrus.Logger) (string, bool) {
	s, err := session.MustFromContext(c.Request.Context())
	if err != nil {
		fail(c, logger, application.ErrUnauthenticated, "")
		return "", false
	}
	return s.Username, true
}

func (r exerciseRequest) toInput() (application.ExerciseInput, error) {
	cat, err := entity.ParseCategory(r.Category)
	if err != nil {
		return application.ExerciseInput{}, &validation.FieldError{
			Field:   "category",
			Message: "must be one of: " + strings.Join(validation.Categories, ", "),
		}
	}
	return application.ExerciseInput{
		Description: r.Description,
		Duration:    int(*r.Duration),
		Date:        r.Date.Time,
		Category:    cat,
	}, nil
}

// List GET /api/exercises
func (h *ExerciseHandler) List(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	exs, err := h.Svc.List(c.Request.Context(), user)
	if err != nil {
		fail(c, h.Logger, err, exerciseNotFound)
		return
	}
	response.Success(c, http.StatusOK, exs, "", map[string]any{"count": len(exs)})
}

// Add POST /api/exercises/add
func (h *ExerciseHandler) Add(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		badRequest(c, err)
		return
	}
	ex, err := h.Svc.Add(c.Request.Context(), user, in)
	if err != nil {
		fail(c, h.Logger, err, exerciseNotFound)
		return
	}
	response.Success(c, http.StatusOK, ex, "Exercise added!", nil)
}

// Get GET /api/exercises/:id
func (h *ExerciseHandler) Get(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	ex, err := h.Svc.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err, exerciseNotFound)
		return
	}
	response.Success(c, http.StatusOK, ex, "", nil)
}

// Update POST /api/exercises/update/:id
func (h *ExerciseHandler) Update(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		badRequest(c, err)
		return
	}
	ex, err := h.Svc.Update(c.Request.Context(), user, c.Param("id"), in)
	if err != nil {
		fail(c, h.Logger, err, exerciseNotFound)
		return
	}
	response.Success(c, http.StatusOK, ex, "Exercise updated!", nil)
}

// Delete DELETE /api/exercises/:id
func (h *ExerciseHandler) Delete(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		fail(c, h.Logger, err, exerciseNotFound)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Exercise deleted.", nil)
}

// Search GET /api/exercises/search?q=
func (h *ExerciseHandler) Search(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	exs, err := h.Svc.Search(c.Request.Context(), user, c.Query("q"))
	if err != nil {
		fail(c, h.Logger, err, exerciseNotFound)
		return
	}
	response.Success(c, http.StatusOK, exs, "", map[string]any{"count": len(exs)})
}

// Export GET /api/exercises/export
func (h *ExerciseHandler) Export(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	var buf bytes.Buffer
	name, err := h.Svc.ExportCSV(c.Request.Context(), user, &buf)
	if err != nil {
		fail(c, h.Logger, err, exerciseNotFound)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(name, `"`, "")+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Archive POST /api/exercises/export/archive
func (h *ExerciseHandler) Archive(c *gin.Context) {
	user, ok := owner(c, h.Logger)
	if !ok {
		return
	}
	url, err := h.Svc.Archive(c.Request.Context(), user)
	if err != nil {
		fail(c, h.Logger, err, exerciseNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "export archived", nil)
}
