package router

import (
	"github.com/oksasatya/go-exercise-tracker/internal/application"
	"github.com/oksasatya/go-exercise-tracker/internal/container"
	"github.com/oksasatya/go-exercise-tracker/internal/infrastructure/cache"
	"github.com/oksasatya/go-exercise-tracker/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-exercise-tracker/internal/interface/http"
	"github.com/oksasatya/go-exercise-tracker/internal/router/modules"
)

type ModuleDeps struct {
	Auth      *application.AuthService
	Exercises *application.ExerciseService
	Users     *application.UserService

	AuthHandler     *handlers.AuthHandler
	ExerciseHandler *handlers.ExerciseHandler
	StatsHandler    *handlers.StatsHandler
	UserHandler     *handlers.UserHandler
}

func buildDeps() ModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	users := container.GetUserRepo()

	auth := application.NewAuthService(users, container.GetJWT(), container.GetRedis(), cfg.SessionTTL, cfg.DefaultWeeklyGoal, logger)
	auth.AppName = cfg.AppName

	exercises := application.NewExerciseService(container.GetExerciseRepo(), users, logger)
	exercises.Cache = cache.NewExerciseCache(container.GetRedis(), cfg.ExerciseCacheTTL)
	exercises.Index = search.NewExerciseIndex(container.GetES(), cfg.ESExercisesIndex)
	exercises.GCS = container.GetGCS()
	exercises.GCSBucket = cfg.GCSBucket
	exercises.AppName = cfg.AppName

	// avoid storing a typed nil in the Publisher interface
	if pub := container.GetRabbitPub(); pub != nil {
		auth.Mail = pub
		exercises.Mail = pub
	}

	userSvc := application.NewUserService(users, logger)

	return ModuleDeps{
		Auth:            auth,
		Exercises:       exercises,
		Users:           userSvc,
		AuthHandler:     handlers.NewAuthHandler(auth, logger),
		ExerciseHandler: handlers.NewExerciseHandler(exercises, logger),
		StatsHandler:    handlers.NewStatsHandler(exercises, logger),
		UserHandler:     handlers.NewUserHandler(userSvc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	r.Add(modules.NewHealthModule(container.GetMetrics(), container.GetConfig().DebugMetricsEnabled))
	r.Add(modules.NewAuthModule(deps.AuthHandler, deps.Auth))
	r.Add(modules.NewExerciseModule(deps.ExerciseHandler, deps.StatsHandler, deps.Auth))
	r.Add(modules.NewUserModule(deps.UserHandler, deps.Auth))
}
