package repository

import (
	"context"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
)

// ExerciseRepository stores exercises. Every method is scoped to owner; a record
// owned by someone else behaves as if it did not exist.
type ExerciseRepository interface {
	Create(ctx context.Context, ex *entity.Exercise) error
	ListByOwner(ctx context.Context, owner string) ([]entity.Exercise, error)
	GetByID(ctx context.Context, id, owner string) (*entity.Exercise, error)
	Update(ctx context.Context, owner string, ex *entity.Exercise) error
	Delete(ctx context.Context, id, owner string) error
}
