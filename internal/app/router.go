package app

import (
	"github.com/gin-gonic/gin"

	"github.com/learneloquent/vocab-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:    "vocab-backend",
		AllowedOrigins: cfg.CORSOrigins,
		AuthHandler:    handlerset.Auth,
		AuthMiddleware: middlewareset.Auth,
		UserHandler:    handlerset.User,
		WordsHandler:   handlerset.Words,
	})
}
