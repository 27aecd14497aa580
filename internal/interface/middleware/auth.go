package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-exercise-tracker/pkg/response"
	"github.com/oksasatya/go-exercise-tracker/pkg/session"
)

// Authenticator verifies a bearer token. *application.AuthService implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (session.Session, error)
}

// Auth requires "Authorization: Bearer <token>". On success the session is
// stored on both the gin context and the request context.
func Auth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		sess, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		c.Set(session.GinKey, &sess)
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), &sess))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentSession returns the session stored by Auth.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(session.GinKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok && s != nil
}
