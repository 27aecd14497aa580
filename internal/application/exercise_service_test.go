package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-exercise-tracker/internal/domain/repository"
	"github.com/oksasatya/go-exercise-tracker/internal/domain/stats"
	"github.com/oksasatya/go-exercise-tracker/internal/infrastructure/cache"
	"github.com/oksasatya/go-exercise-tracker/internal/infrastructure/memory"
	"github.com/oksasatya/go-exercise-tracker/pkg/helpers"
	"github.com/oksasatya/go-exercise-tracker/pkg/mailer"
)

var fixedNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newExerciseService(t *testing.T) (*ExerciseService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, name := range []string{"alice", "bob"} {
		require.NoError(t, store.Users().Create(context.Background(), &entity.User{Username: name, WeeklyGoal: 150}))
	}
	s := NewExerciseService(store.Exercises(), store.Users(), helpers.NewNopLogger())
	s.Now = func() time.Time { return fixedNow }
	return s, store
}

func input(desc string, dur int, date time.Time) ExerciseInput {
	return ExerciseInput{Description: desc, Duration: dur, Date: date}
}

func TestExerciseService_AddDefaultsCategory(t *testing.T) {
	s, _ := newExerciseService(t)
	ex, err := s.Add(context.Background(), "alice", input("  Run ", 30, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, "Run", ex.Description)
	assert.Equal(t, entity.CategoryOther, ex.Category)
	assert.Equal(t, "alice", ex.Username)
	assert.NotEmpty(t, ex.ID)
}

func TestExerciseService_AddValidation(t *testing.T) {
	s, _ := newExerciseService(t)
	_, err := s.Add(context.Background(), "alice", input(" ", 30, fixedNow))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.Add(context.Background(), "alice", input("Run", 30, time.Time{}))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExerciseService_Ownership(t *testing.T) {
	s, _ := newExerciseService(t)
	ctx := context.Background()

	a, err := s.Add(ctx, "alice", input("Run", 30, fixedNow))
	require.NoError(t, err)
	b, err := s.Add(ctx, "bob", input("Swim", 40, fixedNow))
	require.NoError(t, err)

	list, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	_, err = s.Get(ctx, "alice", b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Update(ctx, "alice", b.ID, input("mine now", 1, fixedNow))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "alice", b.ID), ErrNotFound)

	got, err := s.Get(ctx, "bob", b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Swim", got.Description)
	assert.Equal(t, 40, got.Duration)
}

func TestExerciseService_UpdateAndDelete(t *testing.T) {
	s, _ := newExerciseService(t)
	ctx := context.Background()
	ex, err := s.Add(ctx, "alice", input("Run", 30, fixedNow))
	require.NoError(t, err)

	in := input("Long run", 75, fixedNow.AddDate(0, 0, -1))
	in.Category = entity.CategoryCardio
	upd, err := s.Update(ctx, "alice", ex.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Long run", upd.Description)
	assert.Equal(t, entity.CategoryCardio, upd.Category)
	assert.Equal(t, "alice", upd.Username)

	require.NoError(t, s.Delete(ctx, "alice", ex.ID))
	assert.ErrorIs(t, s.Delete(ctx, "alice", ex.ID), ErrNotFound)
	list, err := s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExerciseService_ListServedFromCache(t *testing.T) {
	s, _ := newExerciseService(t)
	db, mock := redismock.NewClientMock()
	s.Cache = cache.NewExerciseCache(db, time.Minute)

	cached := []entity.Exercise{{ID: "c1", Username: "alice", Description: "cached", Duration: 5, Date: fixedNow}}
	b, err := json.Marshal(cached)
	require.NoError(t, err)
	mock.ExpectGet("exercises:gen:alice").SetVal("2")
	mock.ExpectGet("exercises:list:alice:2").SetVal(string(b))

	list, err := s.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cached", list[0].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExerciseService_DeleteInvalidatesCache(t *testing.T) {
	s, _ := newExerciseService(t)
	ctx := context.Background()
	ex, err := s.Add(ctx, "alice", input("Run", 30, fixedNow))
	require.NoError(t, err)

	db, mock := redismock.NewClientMock()
	s.Cache = cache.NewExerciseCache(db, time.Minute)
	mock.ExpectIncr("exercises:gen:alice").SetVal(1)

	require.NoError(t, s.Delete(ctx, "alice", ex.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// racingRepo runs beforeReturn between reading the list and handing it back,
// the window in which another request can mutate and invalidate.
type racingRepo struct {
	repo.ExerciseRepository
	beforeReturn func(exs []entity.Exercise)
}

func (r *racingRepo) ListByOwner(ctx context.Context, owner string) ([]entity.Exercise, error) {
	exs, err := r.ExerciseRepository.ListByOwner(ctx, owner)
	if err == nil && r.beforeReturn != nil {
		r.beforeReturn(exs)
	}
	return exs, err
}

func TestExerciseService_ConcurrentDeleteIsNotMaskedByCache(t *testing.T) {
	s, store := newExerciseService(t)
	ctx := context.Background()
	ex, err := s.Add(ctx, "alice", input("Run", 30, fixedNow))
	require.NoError(t, err)

	db, mock := redismock.NewClientMock()
	s.Cache = cache.NewExerciseCache(db, time.Minute)
	racing := &racingRepo{ExerciseRepository: store.Exercises()}
	s.Exercises = racing

	expectSet := func(key string, exs []entity.Exercise) {
		b, err := json.Marshal(exs)
		require.NoError(t, err)
		mock.ExpectSet(key, b, time.Minute).SetVal("OK")
	}

	// first reader: the delete lands after the store read, before the cache write
	mock.ExpectGet("exercises:gen:alice").SetVal("0")
	mock.ExpectGet("exercises:list:alice:0").RedisNil()
	racing.beforeReturn = func(exs []entity.Exercise) {
		racing.beforeReturn = nil
		mock.ExpectIncr("exercises:gen:alice").SetVal(1)
		require.NoError(t, s.Delete(ctx, "alice", ex.ID))
		expectSet("exercises:list:alice:0", exs)
	}
	stale, err := s.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, stale, 1)

	// next reader uses the new generation and sees the delete
	mock.ExpectGet("exercises:gen:alice").SetVal("1")
	mock.ExpectGet("exercises:list:alice:1").RedisNil()
	expectSet("exercises:list:alice:1", []entity.Exercise{})
	list, err := s.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExerciseService_Dashboard(t *testing.T) {
	s, store := newExerciseService(t)
	ctx := context.Background()
	_, err := s.Add(ctx, "alice", input("Run", 75, fixedNow))
	require.NoError(t, err)

	d, err := s.Dashboard(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Equal(t, 150, d.WeeklyGoal)
	assert.Equal(t, 50, d.GoalProgress)

	_, err = store.Users().UpdateWeeklyGoal(ctx, "alice", 300)
	require.NoError(t, err)
	d, err = s.Dashboard(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Equal(t, 25, d.GoalProgress)

	d, err = s.Dashboard(ctx, "alice", 75)
	require.NoError(t, err)
	assert.Equal(t, 100, d.GoalProgress)
}

func TestExerciseService_ViewAndAchievements(t *testing.T) {
	s, _ := newExerciseService(t)
	ctx := context.Background()
	cardio := input("Run", 20, fixedNow.AddDate(0, 0, -2))
	cardio.Category = entity.CategoryCardio
	_, err := s.Add(ctx, "alice", cardio)
	require.NoError(t, err)
	_, err = s.Add(ctx, "alice", input("Stretch", 65, fixedNow.AddDate(0, 0, -40)))
	require.NoError(t, err)

	v, err := s.View(ctx, "alice", stats.ViewOptions{Category: stats.CategoryAll, Window: stats.Window30d, Sort: stats.SortDateDesc})
	require.NoError(t, err)
	assert.Equal(t, 1, v.Count)
	assert.Equal(t, 20, v.TotalDuration)

	as, err := s.Achievements(ctx, "alice")
	require.NoError(t, err)
	unlocked := map[string]bool{}
	for _, a := range as {
		unlocked[a.ID] = a.Unlocked
	}
	assert.True(t, unlocked["rookie"])
	assert.True(t, unlocked["endurance"])
	assert.False(t, unlocked["centurion"])

	hm, err := s.Heatmap(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, hm.Days, stats.HeatmapDays)
}

func TestExerciseService_ExportCSV(t *testing.T) {
	s, _ := newExerciseService(t)
	ctx := context.Background()
	_, err := s.Add(ctx, "alice", input(`Leg day, "new PR"`, 45, fixedNow))
	require.NoError(t, err)

	var buf bytes.Buffer
	name, err := s.ExportCSV(ctx, "alice", &buf)
	require.NoError(t, err)
	assert.Equal(t, "exercise_history_2024-05-15.csv", name)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `Leg day, "new PR"`, rows[1][0])
}

func TestExerciseService_ArchiveWithoutBucket(t *testing.T) {
	s, _ := newExerciseService(t)
	_, err := s.Archive(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestExerciseService_SearchFallback(t *testing.T) {
	s, _ := newExerciseService(t)
	ctx := context.Background()
	_, err := s.Add(ctx, "alice", input("Morning Run", 30, fixedNow))
	require.NoError(t, err)
	_, err = s.Add(ctx, "alice", input("Bench press", 30, fixedNow))
	require.NoError(t, err)
	_, err = s.Add(ctx, "bob", input("Run club", 30, fixedNow))
	require.NoError(t, err)

	got, err := s.Search(ctx, "alice", "run")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Morning Run", got[0].Description)

	got, err = s.Search(ctx, "alice", "other")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = s.Search(ctx, "alice", "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExerciseService_NotifiesNewAchievements(t *testing.T) {
	s, store := newExerciseService(t)
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &entity.User{Username: "erin", Email: "erin@example.com", WeeklyGoal: 150}))
	pub := &fakePublisher{}
	s.Mail = pub

	_, err := s.Add(ctx, "erin", input("Short", 10, fixedNow))
	require.NoError(t, err)
	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0].(mailer.EmailJob)
	assert.Equal(t, "erin@example.com", job.To)
	assert.Equal(t, "achievement_unlocked", job.Template)

	// nothing new unlocked
	_, err = s.Add(ctx, "erin", input("Short again", 10, fixedNow))
	require.NoError(t, err)
	assert.Len(t, pub.jobs, 1)

	// users without an email are never notified
	_, err = s.Add(ctx, "alice", input("Run", 90, fixedNow))
	require.NoError(t, err)
	assert.Len(t, pub.jobs, 1)
}
