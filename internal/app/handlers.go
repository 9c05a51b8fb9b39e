package app

import (
	"github.com/learneloquent/vocab-backend/internal/handlers"
	"github.com/learneloquent/vocab-backend/internal/logger"
)

type Handlers struct {
	Auth  *handlers.AuthHandler
	User  *handlers.UserHandler
	Words *handlers.WordsHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:  handlers.NewAuthHandler(serviceset.Auth),
		User:  handlers.NewUserHandler(serviceset.User),
		Words: handlers.NewWordsHandler(serviceset.Learning),
	}
}
