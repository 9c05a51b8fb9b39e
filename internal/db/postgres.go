package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/types"
	"github.com/learneloquent/vocab-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "vocab", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Word{},
		&types.UserWord{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		model interface{}
		name  string
		sql   string
	}{
		{
			model: &types.UserToken{},
			name:  "fk_user_token_user_id",
			sql: `
				ALTER TABLE "user_token"
				ADD CONSTRAINT "fk_user_token_user_id"
				FOREIGN KEY ("user_id")
				REFERENCES "user"("id")
				ON DELETE CASCADE
			`,
		},
		{
			model: &types.UserWord{},
			name:  "fk_user_word_user_id",
			sql: `
				ALTER TABLE "user_word"
				ADD CONSTRAINT "fk_user_word_user_id"
				FOREIGN KEY ("user_id")
				REFERENCES "user"("id")
				ON DELETE CASCADE
			`,
		},
		{
			model: &types.UserWord{},
			name:  "fk_user_word_word_id",
			sql: `
				ALTER TABLE "user_word"
				ADD CONSTRAINT "fk_user_word_word_id"
				FOREIGN KEY ("word_id")
				REFERENCES "word"("id")
				ON DELETE RESTRICT
			`,
		},
	}
	for _, c := range constraints {
		if s.db.Migrator().HasConstraint(c.model, c.name) {
			continue
		}
		if err := s.db.Exec(c.sql).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
