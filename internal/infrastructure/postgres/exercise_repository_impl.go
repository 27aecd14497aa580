package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/go-exercise-tracker/internal/domain/repository"
)

type ExerciseRepository struct {
	pool *pgxpool.Pool
}

func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

const exerciseColumns = `id, username, description, duration, date, category, created_at, updated_at`

func (r *ExerciseRepository) Create(ctx context.Context, ex *entity.Exercise) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO exercises (username, description, duration, date, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, ex.Username, ex.Description, ex.Duration, ex.Date, string(ex.Category.OrOther()))

	return mapErr(row.Scan(&ex.ID, &ex.CreatedAt, &ex.UpdatedAt))
}

func (r *ExerciseRepository) ListByOwner(ctx context.Context, owner string) ([]entity.Exercise, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+exerciseColumns+`
		FROM exercises
		WHERE username = $1
		ORDER BY date DESC, created_at DESC
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Exercise, 0)
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ex)
	}
	return out, rows.Err()
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id, owner string) (*entity.Exercise, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+exerciseColumns+`
		FROM exercises
		WHERE id = $1 AND username = $2
	`, id, owner)
	ex, err := scanExercise(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return ex, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, owner string, ex *entity.Exercise) error {
	ex.UpdatedAt = time.Now().UTC()
	row := r.pool.QueryRow(ctx, `
		UPDATE exercises
		SET description = $1, duration = $2, date = $3, category = $4, updated_at = $5
		WHERE id = $6 AND username = $7
		RETURNING `+exerciseColumns,
		ex.Description, ex.Duration, ex.Date, string(ex.Category.OrOther()), ex.UpdatedAt, ex.ID, owner)

	updated, err := scanExercise(row)
	if err != nil {
		return mapErr(err)
	}
	*ex = *updated
	return nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, id, owner string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1 AND username = $2`, id, owner)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanExercise(row pgx.Row) (*entity.Exercise, error) {
	var (
		ex  entity.Exercise
		cat string
	)
	if err := row.Scan(&ex.ID, &ex.Username, &ex.Description, &ex.Duration, &ex.Date, &cat,
		&ex.CreatedAt, &ex.UpdatedAt); err != nil {
		return nil, err
	}
	ex.Category = entity.Category(cat).OrOther()
	ex.Date = ex.Date.UTC()
	return &ex, nil
}

var _ repository.ExerciseRepository = (*ExerciseRepository)(nil)
