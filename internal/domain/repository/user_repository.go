package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup, including
	// records that exist but belong to another owner.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user-related storage operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateWeeklyGoal(ctx context.Context, username string, goal int) (*entity.User, error)
}
