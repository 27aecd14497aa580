package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/internal/application"
	"github.com/oksasatya/go-exercise-tracker/pkg/helpers"
	"github.com/oksasatya/go-exercise-tracker/pkg/response"
	"github.com/oksasatya/go-exercise-tracker/pkg/validation"
)

// fail maps application errors onto the response envelope. notFound is the
// message used for ErrNotFound.
func fail(c *gin.Context, logger *logrus.Logger, err error, notFound string) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", verr.Fields)
	case errors.Is(err, application.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "unable to login", nil)
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, notFound, nil)
	case errors.Is(err, application.ErrUsernameTaken):
		response.Error[any](c, http.StatusConflict, "username already taken", nil)
	case errors.Is(err, application.ErrUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, "feature not configured", nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func badRequest(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
