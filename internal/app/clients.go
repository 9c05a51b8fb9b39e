package app

import (
	"os"
	"strings"

	"github.com/learneloquent/vocab-backend/internal/clients/redis"
	"github.com/learneloquent/vocab-backend/internal/logger"
)

type Clients struct {
	WordCache redis.WordCache
}

// wireClients sets up optional external clients. The word cache only comes up
// when REDIS_ADDR is configured; everything else degrades to store reads.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")
	var clients Clients
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		cache, err := redis.NewWordCache(log)
		if err != nil {
			log.Warn("Word cache init failed, continuing without it", "error", err)
		} else {
			clients.WordCache = cache
		}
	}
	return clients
}
