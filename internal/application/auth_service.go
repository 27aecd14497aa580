package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-exercise-tracker/internal/domain/repository"
	"github.com/oksasatya/go-exercise-tracker/pkg/helpers"
	"github.com/oksasatya/go-exercise-tracker/pkg/mailer"
	"github.com/oksasatya/go-exercise-tracker/pkg/mailer/templates"
	"github.com/oksasatya/go-exercise-tracker/pkg/session"
)

// AuthService registers users, issues tokens and tracks the active session per user.
type AuthService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	SessionTTL  time.Duration
	DefaultGoal int
	Mail        Publisher
	AppName     string
	Logger      *logrus.Logger

	// NewSessionID defaults to uuid.NewString.
	NewSessionID func() string
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, sessionTTL time.Duration, defaultGoal int, logger *logrus.Logger) *AuthService {
	if defaultGoal <= 0 {
		defaultGoal = entity.DefaultWeeklyGoal
	}
	return &AuthService{
		Users:       users,
		JWT:         jwt,
		Redis:       rdb,
		SessionTTL:  sessionTTL,
		DefaultGoal: defaultGoal,
		Logger:      logger,

		NewSessionID: uuid.NewString,
	}
}

// sessionKey holds one issued token's session. Each login gets its own key,
// so tokens are revoked one at a time.
func sessionKey(sid string) string {
	return "user:session:" + sid
}

// Register creates the account and logs it in.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, "", invalid("username", "is required")
	}
	if len(password) < 6 {
		return nil, "", invalid("password", "min length 6")
	}

	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, "", err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &entity.User{
		Username:   username,
		Password:   hash,
		Email:      strings.TrimSpace(email),
		WeeklyGoal: s.DefaultGoal,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	token, err := s.issue(ctx, u)
	if err != nil {
		return nil, "", err
	}
	s.sendWelcome(ctx, u)
	return u, token, nil
}

// Login verifies credentials. Unknown users and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	u, err := s.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			helpers.LogError(s.Logger, "user lookup failed", err, logrus.Fields{"username": username})
		}
		return nil, "", ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issue(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate turns a bearer token into a session. When redis is configured
// the token's own session must still exist, so a logout revokes that token only.
func (s *AuthService) Authenticate(ctx context.Context, token string) (session.Session, error) {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return session.Session{}, ErrUnauthenticated
	}
	if s.Redis != nil {
		owner, err := s.Redis.Get(ctx, sessionKey(claims.SessionID)).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				helpers.LogWarn(s.Logger, "session lookup failed", err, logrus.Fields{"user_id": claims.UserID})
			}
			return session.Session{}, ErrUnauthenticated
		}
		if owner != claims.Username {
			return session.Session{}, ErrUnauthenticated
		}
	}
	return session.Session{UserID: claims.UserID, Username: claims.Username, SessionID: claims.SessionID}, nil
}

// Logout drops the session of the presented token. Other tokens of the same user stay valid.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if s.Redis == nil || sess.SessionID == "" {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(sess.SessionID)).Err()
}

func (s *AuthService) issue(ctx context.Context, u *entity.User) (string, error) {
	newID := s.NewSessionID
	if newID == nil {
		newID = uuid.NewString
	}
	sid := newID()
	token, _, err := s.JWT.GenerateToken(u.ID, u.Username, sid)
	if err != nil {
		helpers.LogError(s.Logger, "generate token failed", err, logrus.Fields{"user_id": u.ID})
		return "", err
	}

	if s.Redis != nil {
		key := sessionKey(sid)
		if err := s.Redis.Set(ctx, key, u.Username, s.SessionTTL).Err(); err != nil {
			// without a stored session the token would be rejected
			helpers.LogError(s.Logger, "store session failed", err, logrus.Fields{"key": key})
			return "", err
		}
	}
	return token, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil || u.Email == "" {
		return
	}
	job := mailer.NewTemplateJob(u.Email, templates.Welcome, templates.Data{
		AppName:  s.AppName,
		Username: u.Username,
		SentAt:   time.Now().UTC(),
	})
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		helpers.LogWarn(s.Logger, "publish welcome email failed", err, logrus.Fields{"username": u.Username})
	}
}
