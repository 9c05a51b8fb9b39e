package app

import (
	"gorm.io/gorm"

	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/repos"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Word      repos.WordRepo
	UserWord  repos.UserWordRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Word:      repos.NewWordRepo(db, log),
		UserWord:  repos.NewUserWordRepo(db, log),
	}
}
