package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-exercise-tracker/internal/domain/repository"
	"github.com/oksasatya/go-exercise-tracker/internal/domain/stats"
	"github.com/oksasatya/go-exercise-tracker/internal/infrastructure/cache"
	"github.com/oksasatya/go-exercise-tracker/internal/infrastructure/search"
	"github.com/oksasatya/go-exercise-tracker/pkg/helpers"
	"github.com/oksasatya/go-exercise-tracker/pkg/mailer"
	"github.com/oksasatya/go-exercise-tracker/pkg/mailer/templates"
)

// ExerciseInput is the caller-editable part of an exercise.
type ExerciseInput struct {
	Description string
	Duration    int
	Date        time.Time
	Category    entity.Category
}

func (in ExerciseInput) validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("description", "is required")
	}
	if in.Date.IsZero() {
		return invalid("date", "is required")
	}
	return nil
}

// ExerciseService is the single place that scopes exercise access to the
// caller. Every method takes the owner's username from the session.
type ExerciseService struct {
	Exercises repo.ExerciseRepository
	Users     repo.UserRepository
	Cache     *cache.ExerciseCache
	Index     *search.ExerciseIndex
	Mail      Publisher
	GCS       *storage.Client
	GCSBucket string
	AppName   string
	Logger    *logrus.Logger
	Now       func() time.Time
}

func NewExerciseService(exercises repo.ExerciseRepository, users repo.UserRepository, logger *logrus.Logger) *ExerciseService {
	return &ExerciseService{
		Exercises: exercises,
		Users:     users,
		Logger:    logger,
		Now:       time.Now,
	}
}

func (s *ExerciseService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// List returns every exercise owned by owner, newest first.
func (s *ExerciseService) List(ctx context.Context, owner string) ([]entity.Exercise, error) {
	// the generation is read before the store so a concurrent invalidation
	// leaves our write under a dead key
	gen, err := s.Cache.Generation(ctx, owner)
	cacheOK := err == nil
	if err != nil {
		helpers.LogWarn(s.Logger, "exercise cache read failed", err, logrus.Fields{"username": owner})
	} else if exs, ok, err := s.Cache.Get(ctx, owner, gen); err != nil {
		helpers.LogWarn(s.Logger, "exercise cache read failed", err, logrus.Fields{"username": owner})
	} else if ok {
		return exs, nil
	}

	exs, err := s.Exercises.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cacheOK {
		if err := s.Cache.Set(ctx, owner, gen, exs); err != nil {
			helpers.LogWarn(s.Logger, "exercise cache write failed", err, logrus.Fields{"username": owner})
		}
	}
	return exs, nil
}

func (s *ExerciseService) Get(ctx context.Context, owner, id string) (*entity.Exercise, error) {
	ex, err := s.Exercises.GetByID(ctx, id, owner)
	if err != nil {
		return nil, translate(err)
	}
	return ex, nil
}

func (s *ExerciseService) Add(ctx context.Context, owner string, in ExerciseInput) (*entity.Exercise, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	before := s.achievementsBefore(ctx, owner)

	ex := &entity.Exercise{
		Username:    owner,
		Description: strings.TrimSpace(in.Description),
		Duration:    in.Duration,
		Date:        in.Date.UTC(),
		Category:    in.Category.OrOther(),
	}
	if err := s.Exercises.Create(ctx, ex); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, owner, ex, before)
	return ex, nil
}

// Update replaces every editable field of the owner's exercise id.
func (s *ExerciseService) Update(ctx context.Context, owner, id string, in ExerciseInput) (*entity.Exercise, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	before := s.achievementsBefore(ctx, owner)

	ex := &entity.Exercise{
		ID:          id,
		Username:    owner,
		Description: strings.TrimSpace(in.Description),
		Duration:    in.Duration,
		Date:        in.Date.UTC(),
		Category:    in.Category.OrOther(),
	}
	if err := s.Exercises.Update(ctx, owner, ex); err != nil {
		return nil, translate(err)
	}
	s.afterWrite(ctx, owner, ex, before)
	return ex, nil
}

func (s *ExerciseService) Delete(ctx context.Context, owner, id string) error {
	if err := s.Exercises.Delete(ctx, id, owner); err != nil {
		return translate(err)
	}
	s.invalidate(ctx, owner)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			helpers.LogWarn(s.Logger, "search index delete failed", err, logrus.Fields{"exercise_id": id})
		}
	}
	return nil
}

// Dashboard computes the dashboard bundle. A positive goal overrides the
// owner's stored weekly goal.
func (s *ExerciseService) Dashboard(ctx context.Context, owner string, goal int) (stats.Dashboard, error) {
	exs, err := s.List(ctx, owner)
	if err != nil {
		return stats.Dashboard{}, err
	}
	if goal <= 0 {
		u, err := s.Users.GetByUsername(ctx, owner)
		if err != nil {
			return stats.Dashboard{}, translate(err)
		}
		goal = u.Goal()
	}
	return stats.BuildDashboard(exs, goal, s.now()), nil
}

func (s *ExerciseService) View(ctx context.Context, owner string, opts stats.ViewOptions) (stats.View, error) {
	exs, err := s.List(ctx, owner)
	if err != nil {
		return stats.View{}, err
	}
	return stats.BuildView(exs, opts, s.now()), nil
}

func (s *ExerciseService) Heatmap(ctx context.Context, owner string) (stats.Heatmap, error) {
	exs, err := s.List(ctx, owner)
	if err != nil {
		return stats.Heatmap{}, err
	}
	return stats.BuildHeatmap(exs, s.now()), nil
}

func (s *ExerciseService) Achievements(ctx context.Context, owner string) ([]stats.Achievement, error) {
	exs, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return stats.Achievements(exs), nil
}

// ExportCSV writes the owner's full history to w and returns the download name.
func (s *ExerciseService) ExportCSV(ctx context.Context, owner string, w io.Writer) (string, error) {
	exs, err := s.List(ctx, owner)
	if err != nil {
		return "", err
	}
	if err := stats.WriteCSV(w, exs); err != nil {
		return "", err
	}
	return stats.ExportFileName(s.now()), nil
}

// Archive uploads a CSV export to the configured bucket and returns its URL.
func (s *ExerciseService) Archive(ctx context.Context, owner string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", ErrUnavailable
	}
	var buf bytes.Buffer
	name, err := s.ExportCSV(ctx, owner, &buf)
	if err != nil {
		return "", err
	}
	object := path.Join("exports", owner, uuid.NewString()+"_"+name)
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, object, "text/csv", &buf)
}

// Search finds the owner's exercises whose description or category matches q.
// Without a search index, or when it fails, a case-insensitive substring match is used.
func (s *ExerciseService) Search(ctx context.Context, owner, q string) ([]entity.Exercise, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalid("q", "is required")
	}
	exs, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	if s.Index != nil {
		ids, err := s.Index.Search(ctx, owner, q)
		if err == nil {
			byID := make(map[string]entity.Exercise, len(exs))
			for _, ex := range exs {
				byID[ex.ID] = ex
			}
			// hits are re-checked against the owner's list so a stale index cannot leak records
			out := make([]entity.Exercise, 0, len(ids))
			for _, id := range ids {
				if ex, ok := byID[id]; ok {
					out = append(out, ex)
				}
			}
			return out, nil
		}
		helpers.LogWarn(s.Logger, "search index query failed, falling back", err, logrus.Fields{"username": owner})
	}

	needle := strings.ToLower(q)
	out := make([]entity.Exercise, 0)
	for _, ex := range exs {
		if strings.Contains(strings.ToLower(ex.Description), needle) ||
			strings.Contains(strings.ToLower(string(ex.Category.OrOther())), needle) {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (s *ExerciseService) afterWrite(ctx context.Context, owner string, ex *entity.Exercise, before []stats.Achievement) {
	s.invalidate(ctx, owner)
	if s.Index != nil {
		if err := s.Index.Index(ctx, ex); err != nil {
			helpers.LogWarn(s.Logger, "search index update failed", err, logrus.Fields{"exercise_id": ex.ID})
		}
	}
	if before != nil {
		s.notifyUnlocked(ctx, owner, before)
	}
}

func (s *ExerciseService) invalidate(ctx context.Context, owner string) {
	if err := s.Cache.Invalidate(ctx, owner); err != nil {
		helpers.LogWarn(s.Logger, "exercise cache invalidate failed", err, logrus.Fields{"username": owner})
	}
}

// achievementsBefore returns nil when notifications are off or the state is unknown.
func (s *ExerciseService) achievementsBefore(ctx context.Context, owner string) []stats.Achievement {
	if s.Mail == nil {
		return nil
	}
	exs, err := s.List(ctx, owner)
	if err != nil {
		return nil
	}
	return stats.Achievements(exs)
}

func (s *ExerciseService) notifyUnlocked(ctx context.Context, owner string, before []stats.Achievement) {
	exs, err := s.Exercises.ListByOwner(ctx, owner)
	if err != nil {
		helpers.LogWarn(s.Logger, "achievement check failed", err, logrus.Fields{"username": owner})
		return
	}
	unlocked := stats.NewlyUnlocked(before, stats.Achievements(exs))
	if len(unlocked) == 0 {
		return
	}
	u, err := s.Users.GetByUsername(ctx, owner)
	if err != nil || u.Email == "" {
		return
	}

	data := templates.Data{AppName: s.AppName, Username: owner, SentAt: s.now().UTC()}
	for _, a := range unlocked {
		data.Achievements = append(data.Achievements, templates.Badge{Title: a.Title, Description: a.Description})
	}
	for _, ex := range exs {
		data.TotalMinutes += ex.Duration
	}
	job := mailer.NewTemplateJob(u.Email, templates.AchievementUnlocked, data)
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		helpers.LogWarn(s.Logger, "publish achievement email failed", err, logrus.Fields{"username": owner})
	}
}

func translate(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
