package app

import (
	"gorm.io/gorm"

	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Learning services.LearningService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	authService := services.NewAuthService(
		db,
		log,
		reposet.User,
		reposet.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	userService := services.NewUserService(db, log, reposet.User)
	learningService := services.NewLearningService(
		db,
		log,
		services.LearningConfig{
			WordBatchSize:   cfg.WordBatchSize,
			PageSize:        cfg.PageSize,
			MaxPageSize:     cfg.MaxPageSize,
			ReviewStaleness: cfg.ReviewStaleness,
		},
		reposet.User,
		reposet.Word,
		reposet.UserWord,
		clients.WordCache,
	)
	return Services{
		Auth:     authService,
		User:     userService,
		Learning: learningService,
	}
}
