package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/config"
	"github.com/oksasatya/go-exercise-tracker/internal/application"
	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	pginfra "github.com/oksasatya/go-exercise-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-exercise-tracker/pkg/helpers"
)

const (
	demoUser     = "demo"
	demoPassword = "password123"
)

var samples = []struct {
	desc     string
	minutes  int
	daysAgo  int
	category entity.Category
}{
	{"Morning run", 30, 0, entity.CategoryCardio},
	{"Upper body", 45, 1, entity.CategoryStrength},
	{"Yoga flow", 20, 2, entity.CategoryFlexibility},
	{"Cycling", 60, 4, entity.CategoryCardio},
	{"Single-leg drills", 15, 6, entity.CategoryBalance},
	{"Leg day", 50, 9, entity.CategoryStrength},
	{"Walk", 25, 20, entity.CategoryOther},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	jwt := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	auth := application.NewAuthService(users, jwt, nil, cfg.SessionTTL, cfg.DefaultWeeklyGoal, logger)
	exercises := application.NewExerciseService(pginfra.NewExerciseRepository(pool), users, logger)

	u, _, err := auth.Register(ctx, demoUser, demoPassword, "")
	switch {
	case errors.Is(err, application.ErrUsernameTaken):
		logger.WithField("username", demoUser).Info("demo user already exists, skipping seed")
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "username": u.Username, "password": demoPassword}).Info("seeded user")

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, s := range samples {
		_, err := exercises.Add(ctx, u.Username, application.ExerciseInput{
			Description: s.desc,
			Duration:    s.minutes,
			Date:        today.AddDate(0, 0, -s.daysAgo),
			Category:    s.category,
		})
		if err != nil {
			log.Fatalf("failed to seed exercise %q: %v", s.desc, err)
		}
	}
	logger.WithField("count", len(samples)).Info("seeded exercises")
}
