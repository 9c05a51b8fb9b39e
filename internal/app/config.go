package app

import (
	"strings"
	"time"

	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/utils"
)

type Config struct {
	Environment     string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	WordBatchSize   int
	PageSize        int
	MaxPageSize     int
	ReviewStaleness time.Duration
	CORSOrigins     []string
}

func LoadConfig(log *logger.Logger) Config {
	environment := utils.GetEnv("ENVIRONMENT", "development", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	wordBatchSize := utils.GetEnvAsInt("WORD_BATCH_SIZE", 5, log)
	pageSize := utils.GetEnvAsInt("PAGE_SIZE", 10, log)
	maxPageSize := utils.GetEnvAsInt("MAX_PAGE_SIZE", 100, log)
	reviewStalenessMinutes := utils.GetEnvAsInt("REVIEW_STALENESS_MINUTES", 15, log)
	return Config{
		Environment:     environment,
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		WordBatchSize:   wordBatchSize,
		PageSize:        pageSize,
		MaxPageSize:     maxPageSize,
		ReviewStaleness: time.Duration(reviewStalenessMinutes) * time.Minute,
		CORSOrigins:     corsOrigins(environment, log),
	}
}

func corsOrigins(environment string, log *logger.Logger) []string {
	if raw := utils.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		var origins []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
		if len(origins) > 0 {
			return origins
		}
	}
	switch environment {
	case "production":
		return []string{"https://learn-eloquent.com"}
	default:
		return []string{
			"http://localhost:3000",
			"http://localhost:8081",
		}
	}
}
