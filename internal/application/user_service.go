package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-exercise-tracker/internal/domain/repository"
)

type UserService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

// UpdateGoal sets the owner's weekly goal in minutes.
func (s *UserService) UpdateGoal(ctx context.Context, owner string, goal int) (*entity.User, error) {
	if goal <= 0 {
		return nil, invalid("weeklyGoal", "must be greater than 0")
	}
	u, err := s.Users.UpdateWeeklyGoal(ctx, owner, goal)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (s *UserService) Profile(ctx context.Context, owner string) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, owner)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}
