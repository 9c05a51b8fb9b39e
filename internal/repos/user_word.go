package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/types"
)

type UserWordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserWord) ([]*types.UserWord, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.UserWord, error)
	// GetByIDsForUpdate locks the rows for a read-modify-write so concurrent
	// reviews of the same word cannot lose updates.
	GetByIDsForUpdate(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.UserWord, error)
	// GetDueForReview returns tracked words at the user's level that are
	// neither learned nor already known and were last seen before the cutoff.
	// Rows with a NULL last_seen_at are not due: they have never been
	// presented, so there is nothing to review yet.
	GetDueForReview(ctx context.Context, tx *gorm.DB, userID uuid.UUID, difficulty types.Level, seenBefore time.Time, limit int) ([]*types.UserWord, error)
	// GetPage returns tracked words ordered by last_seen_at ascending with
	// NULLs first, strictly after the cursor when one is given. Postgres
	// defaults to NULLS LAST on ascending order, so the ordering is explicit.
	GetPage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, difficulty types.Level, after *time.Time, limit int) ([]*types.UserWord, error)
	// StampLastSeen sets last_seen_at on all given rows in one statement.
	StampLastSeen(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, seenAt time.Time) error
	// UpdateReview persists the outcome of a progress review.
	UpdateReview(ctx context.Context, tx *gorm.DB, id uuid.UUID, progress int, seenAt time.Time, alreadyKnown, learned bool) error
}

type userWordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserWordRepo(db *gorm.DB, baseLog *logger.Logger) UserWordRepo {
	repoLog := baseLog.With("repo", "UserWordRepo")
	return &userWordRepo{db: db, log: repoLog}
}

func (r *userWordRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserWord) ([]*types.UserWord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.UserWord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userWordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.UserWord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserWord
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

func (r *userWordRepo) GetByIDsForUpdate(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.UserWord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserWord
	if len(ids) == 0 {
		return results, nil
	}

	query := transaction.WithContext(ctx)
	// sqlite has no FOR UPDATE; its single-writer transactions already serialize.
	if transaction.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userWordRepo) GetDueForReview(ctx context.Context, tx *gorm.DB, userID uuid.UUID, difficulty types.Level, seenBefore time.Time, limit int) ([]*types.UserWord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserWord
	if userID == uuid.Nil || limit <= 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND difficulty = ? AND already_known = ? AND learned = ? AND last_seen_at < ?",
			userID, difficulty, false, false, seenBefore).
		Order("last_seen_at ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userWordRepo) GetPage(ctx context.Context, tx *gorm.DB, userID uuid.UUID, difficulty types.Level, after *time.Time, limit int) ([]*types.UserWord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserWord
	if userID == uuid.Nil || limit <= 0 {
		return results, nil
	}

	query := transaction.WithContext(ctx).
		Where("user_id = ? AND difficulty = ? AND already_known = ?", userID, difficulty, false)
	if after != nil {
		query = query.Where("last_seen_at > ?", *after)
	}
	if err := query.
		Order("last_seen_at ASC NULLS FIRST").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userWordRepo) StampLastSeen(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, seenAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.UserWord{}).
		Where("id IN ?", ids).
		Update("last_seen_at", seenAt).Error; err != nil {
		return err
	}
	return nil
}

func (r *userWordRepo) UpdateReview(ctx context.Context, tx *gorm.DB, id uuid.UUID, progress int, seenAt time.Time, alreadyKnown, learned bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.UserWord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"progress":      progress,
			"last_seen_at":  seenAt,
			"already_known": alreadyKnown,
			"learned":       learned,
		}).Error; err != nil {
		return err
	}
	return nil
}
