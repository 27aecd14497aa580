// Package session carries the authenticated caller through a request.
//
// A Session is created by the auth middleware once the bearer token has been
// verified and is the only identity handlers and services trust.
package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned when a request context carries no authenticated caller.
var ErrNoSession = errors.New("no session in context")

type Session struct {
	UserID    string `json:"id"`
	Username  string `json:"username"`
	SessionID string `json:"-"`
}

type contextKey string

const sessionKey contextKey = "exercise-tracker-session"

// GinKey is the key the auth middleware uses to expose the session on gin.Context.
const GinKey = "session"

// WithSession stores s on the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext retrieves the session stored by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

// MustFromContext is FromContext returning ErrNoSession instead of a bool.
func MustFromContext(ctx context.Context) (*Session, error) {
	s, ok := FromContext(ctx)
	if !ok || s.Username == "" {
		return nil, ErrNoSession
	}
	return s, nil
}
