// Package memory keeps users and exercises in process memory. It backs the
// memory store driver and the handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/go-exercise-tracker/internal/domain/repository"
)

type Store struct {
	mu        sync.RWMutex
	users     map[string]entity.User // by username
	exercises map[string]entity.Exercise
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		exercises: make(map[string]entity.Exercise),
	}
}

// Users returns the user side of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Exercises returns the exercise side of the store.
func (s *Store) Exercises() *ExerciseRepository { return &ExerciseRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.Username]; ok {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.Username] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdateWeeklyGoal(_ context.Context, username string, goal int) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.WeeklyGoal = goal
	u.UpdatedAt = time.Now().UTC()
	r.s.users[username] = u
	return &u, nil
}

type ExerciseRepository struct{ s *Store }

func (r *ExerciseRepository) Create(_ context.Context, ex *entity.Exercise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	ex.ID = uuid.NewString()
	ex.Category = ex.Category.OrOther()
	ex.CreatedAt = now
	ex.UpdatedAt = now
	r.s.exercises[ex.ID] = *ex
	return nil
}

func (r *ExerciseRepository) ListByOwner(_ context.Context, owner string) ([]entity.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Exercise, 0)
	for _, ex := range r.s.exercises {
		if ex.Username == owner {
			out = append(out, ex)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ExerciseRepository) GetByID(_ context.Context, id, owner string) (*entity.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ex, ok := r.s.exercises[id]
	if !ok || ex.Username != owner {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (r *ExerciseRepository) Update(_ context.Context, owner string, ex *entity.Exercise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.exercises[ex.ID]
	if !ok || cur.Username != owner {
		return repository.ErrNotFound
	}
	cur.Description = ex.Description
	cur.Duration = ex.Duration
	cur.Date = ex.Date
	cur.Category = ex.Category.OrOther()
	cur.UpdatedAt = time.Now().UTC()
	r.s.exercises[cur.ID] = cur
	*ex = cur
	return nil
}

func (r *ExerciseRepository) Delete(_ context.Context, id, owner string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ex, ok := r.s.exercises[id]
	if !ok || ex.Username != owner {
		return repository.ErrNotFound
	}
	delete(r.s.exercises, id)
	return nil
}

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.ExerciseRepository = (*ExerciseRepository)(nil)
)
