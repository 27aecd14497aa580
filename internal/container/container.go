package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-exercise-tracker/config"
	repo "github.com/oksasatya/go-exercise-tracker/internal/domain/repository"
	"github.com/oksasatya/go-exercise-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-exercise-tracker/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	gcsClient   *storage.Client

	userRepo     repo.UserRepository
	exerciseRepo repo.ExerciseRepository

	jwtManager *helpers.JWTManager

	rabbitPub   *helpers.RabbitPublisher
	esClient    *elasticsearch.Client
	httpMetrics *middleware.HTTPMetrics
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return logger
}
func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }
func SetGCS(s *storage.Client) { gcsClient = s }
func GetGCS() *storage.Client  { return gcsClient }

// SetRepositories installs the record store chosen at startup.
func SetRepositories(users repo.UserRepository, exercises repo.ExerciseRepository) {
	userRepo, exerciseRepo = users, exercises
}
func GetUserRepo() repo.UserRepository         { return userRepo }
func GetExerciseRepo() repo.ExerciseRepository { return exerciseRepo }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetMetrics(m *middleware.HTTPMetrics)    { httpMetrics = m }
func GetMetrics() *middleware.HTTPMetrics     { return httpMetrics }
