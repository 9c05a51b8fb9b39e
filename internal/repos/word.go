package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/types"
)

type WordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Word) ([]*types.Word, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Word, error)
	// GetByIndexRange returns words at the given difficulty whose index lies in
	// the half-open range [from, to), ordered by index ascending.
	GetByIndexRange(ctx context.Context, tx *gorm.DB, difficulty types.Level, from, to int) ([]*types.Word, error)
}

type wordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWordRepo(db *gorm.DB, baseLog *logger.Logger) WordRepo {
	repoLog := baseLog.With("repo", "WordRepo")
	return &wordRepo{db: db, log: repoLog}
}

func (r *wordRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Word) ([]*types.Word, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Word{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *wordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Word, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Word
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *wordRepo) GetByIndexRange(ctx context.Context, tx *gorm.DB, difficulty types.Level, from, to int) ([]*types.Word, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Word
	if to <= from {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("difficulty = ? AND word_index >= ? AND word_index < ?", difficulty, from, to).
		Order("word_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
