package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learneloquent/vocab-backend/internal/apierr"
	"github.com/learneloquent/vocab-backend/internal/clients/redis"
	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/repos"
	"github.com/learneloquent/vocab-backend/internal/requestdata"
	"github.com/learneloquent/vocab-backend/internal/types"
)

// LearningWord is one entry of a learning batch: the tracked-word state with
// the catalog word denormalized in.
type LearningWord struct {
	ID           uuid.UUID   `json:"id"`
	Word         *types.Word `json:"word"`
	Progress     int         `json:"progress"`
	LastSeenAt   *time.Time  `json:"lastSeenAt"`
	Learned      bool        `json:"learned"`
	AlreadyKnown bool        `json:"alreadyKnown"`
	Difficulty   types.Level `json:"difficulty"`
}

type PagedUserWord struct {
	ID         uuid.UUID   `json:"id"`
	Word       *types.Word `json:"word"`
	Progress   int         `json:"progress"`
	LastSeenAt *time.Time  `json:"lastSeenAt"`
}

type UserWordPage struct {
	UserWords     []*PagedUserWord `json:"userWords"`
	NextPageToken *string          `json:"nextPageToken"`
}

type LearningService interface {
	// GetLearningWords returns the next batch of words to present: tracked
	// words due for review topped up with fresh words from the catalog. The
	// top-up creates tracking rows and advances the user's reading cursor in
	// one transaction.
	GetLearningWords(ctx context.Context) ([]*LearningWord, error)
	// GetUserWords returns one page of the user's tracked words ordered by
	// lastSeenAt, stamping never-seen rows as a side effect. lastSeenAt is an
	// opaque page token from a previous call; empty means the first page.
	GetUserWords(ctx context.Context, lastSeenAt string, limit int) (*UserWordPage, error)
	// UpdateWordProgress applies a +1/-1 review to a tracked word and returns
	// the new progress value.
	UpdateWordProgress(ctx context.Context, userWordID string, increment int) (int, error)
}

type LearningConfig struct {
	WordBatchSize   int
	PageSize        int
	MaxPageSize     int
	ReviewStaleness time.Duration
}

type learningService struct {
	db           *gorm.DB
	log          *logger.Logger
	cfg          LearningConfig
	userRepo     repos.UserRepo
	wordRepo     repos.WordRepo
	userWordRepo repos.UserWordRepo
	wordCache    redis.WordCache
}

func NewLearningService(
	db *gorm.DB,
	log *logger.Logger,
	cfg LearningConfig,
	userRepo repos.UserRepo,
	wordRepo repos.WordRepo,
	userWordRepo repos.UserWordRepo,
	wordCache redis.WordCache,
) LearningService {
	serviceLog := log.With("service", "LearningService")
	return &learningService{
		db:           db,
		log:          serviceLog,
		cfg:          cfg,
		userRepo:     userRepo,
		wordRepo:     wordRepo,
		userWordRepo: userWordRepo,
		wordCache:    wordCache,
	}
}

func (ls *learningService) GetLearningWords(ctx context.Context) ([]*LearningWord, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthenticated("user must be authenticated to fetch learning words")
	}

	user, err := ls.fetchUser(ctx, nil, rd.UserID)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-ls.cfg.ReviewStaleness)
	due, err := ls.userWordRepo.GetDueForReview(ctx, nil, user.ID, user.SkillLevel, cutoff, ls.cfg.WordBatchSize)
	if err != nil {
		return nil, ls.internal(err, "fetching words due for review")
	}

	dueWordIDs := make([]uuid.UUID, 0, len(due))
	for _, row := range due {
		dueWordIDs = append(dueWordIDs, row.WordID)
	}
	wordsByID, err := ls.resolveWords(ctx, nil, dueWordIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*LearningWord, 0, ls.cfg.WordBatchSize)
	for _, row := range due {
		out = append(out, &LearningWord{
			ID:           row.ID,
			Word:         wordsByID[row.WordID],
			Progress:     row.Progress,
			LastSeenAt:   row.LastSeenAt,
			Learned:      row.Learned,
			AlreadyKnown: row.AlreadyKnown,
			Difficulty:   row.Difficulty,
		})
	}

	if len(due) >= ls.cfg.WordBatchSize {
		return out, nil
	}
	remaining := ls.cfg.WordBatchSize - len(due)

	var created []*types.UserWord
	var freshWords []*types.Word
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read the user inside the transaction with a row lock: the cursor
		// is the serialization point that keeps two concurrent requests from
		// being handed the same word range.
		fresh, ferr := ls.fetchUserForUpdate(ctx, tx, rd.UserID)
		if ferr != nil {
			return ferr
		}
		level := fresh.SkillLevel
		cursor := fresh.Cursor()
		start := cursor.Next(level)

		words, werr := ls.wordRepo.GetByIndexRange(ctx, tx, level, start, start+remaining)
		if werr != nil {
			return werr
		}
		if len(words) == 0 {
			// Level exhausted; a short batch is a valid result.
			return nil
		}

		rows := make([]*types.UserWord, 0, len(words))
		for _, word := range words {
			rows = append(rows, &types.UserWord{
				ID:         uuid.New(),
				UserID:     fresh.ID,
				WordID:     word.ID,
				Difficulty: level,
				Progress:   types.MinProgress,
				LastSeenAt: nil,
			})
		}
		createdRows, cerr := ls.userWordRepo.Create(ctx, tx, rows)
		if cerr != nil {
			return cerr
		}

		// Advance by the number of words actually consumed, not by the
		// requested count, so nothing is skipped when the range came up short.
		if uerr := ls.userRepo.UpdateNextWords(ctx, tx, fresh.ID, cursor.Advanced(level, len(words))); uerr != nil {
			return uerr
		}

		created = createdRows
		freshWords = words
		return nil
	}); err != nil {
		return nil, ls.internal(err, "assigning fresh learning words")
	}

	for i, row := range created {
		out = append(out, &LearningWord{
			ID:           row.ID,
			Word:         freshWords[i],
			Progress:     row.Progress,
			LastSeenAt:   row.LastSeenAt,
			Learned:      row.Learned,
			AlreadyKnown: row.AlreadyKnown,
			Difficulty:   row.Difficulty,
		})
	}
	if ls.wordCache != nil {
		ls.wordCache.SetMany(ctx, freshWords)
	}
	return out, nil
}

func (ls *learningService) GetUserWords(ctx context.Context, lastSeenAt string, limit int) (*UserWordPage, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthenticated("user must be authenticated to fetch user words")
	}

	// Validate the page token before touching the store.
	var after *time.Time
	if lastSeenAt != "" {
		parsed, err := time.Parse(time.RFC3339Nano, lastSeenAt)
		if err != nil {
			return nil, apierr.InvalidArgument("invalid lastSeenAt timestamp: %s", lastSeenAt)
		}
		after = &parsed
	}

	if limit <= 0 {
		limit = ls.cfg.PageSize
	}
	if limit > ls.cfg.MaxPageSize {
		limit = ls.cfg.MaxPageSize
	}

	user, err := ls.fetchUser(ctx, nil, rd.UserID)
	if err != nil {
		return nil, err
	}

	page, err := ls.userWordRepo.GetPage(ctx, nil, user.ID, user.SkillLevel, after, limit)
	if err != nil {
		return nil, ls.internal(err, "fetching user words")
	}

	wordIDs := make([]uuid.UUID, 0, len(page))
	for _, row := range page {
		wordIDs = append(wordIDs, row.WordID)
	}
	wordsByID, err := ls.resolveWords(ctx, nil, wordIDs)
	if err != nil {
		return nil, err
	}

	// First surfacing: stamp every never-seen row with one server timestamp.
	// Deliberately a batch update after the read, not a transaction around it;
	// a concurrent identical read double-stamping the same rows is idempotent.
	var neverSeen []uuid.UUID
	for _, row := range page {
		if row.LastSeenAt == nil {
			neverSeen = append(neverSeen, row.ID)
		}
	}
	if len(neverSeen) > 0 {
		seenAt := time.Now().UTC()
		if err := ls.userWordRepo.StampLastSeen(ctx, nil, neverSeen, seenAt); err != nil {
			return nil, ls.internal(err, "stamping first-seen words")
		}
		for _, row := range page {
			if row.LastSeenAt == nil {
				stamped := seenAt
				row.LastSeenAt = &stamped
			}
		}
	}

	items := make([]*PagedUserWord, 0, len(page))
	for _, row := range page {
		items = append(items, &PagedUserWord{
			ID:         row.ID,
			Word:       wordsByID[row.WordID],
			Progress:   row.Progress,
			LastSeenAt: row.LastSeenAt,
		})
	}

	// A full page yields a token; a short or empty page means end of data.
	var nextPageToken *string
	if len(items) == limit && len(items) > 0 {
		last := items[len(items)-1]
		if last.LastSeenAt != nil {
			token := last.LastSeenAt.UTC().Format(time.RFC3339Nano)
			nextPageToken = &token
		}
	}

	return &UserWordPage{UserWords: items, NextPageToken: nextPageToken}, nil
}

func (ls *learningService) UpdateWordProgress(ctx context.Context, userWordID string, increment int) (int, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return 0, apierr.Unauthenticated("user is not authenticated")
	}

	id, err := uuid.Parse(userWordID)
	if err != nil {
		return 0, apierr.InvalidArgument("invalid userWordId provided")
	}
	if increment != 1 && increment != -1 {
		return 0, apierr.InvalidArgument("increment must be 1 or -1")
	}

	var newProgress int
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, gerr := ls.userWordRepo.GetByIDsForUpdate(ctx, tx, []uuid.UUID{id})
		if gerr != nil {
			return gerr
		}
		if len(rows) == 0 || rows[0] == nil {
			return apierr.NotFound("user word not found")
		}
		userWord := rows[0]

		if userWord.UserID != rd.UserID {
			return apierr.PermissionDenied("you don't have permission to update this word")
		}

		// Directional clamp: an increment can never lower progress and a
		// decrement can never raise it.
		if increment == 1 {
			newProgress = userWord.Progress + 1
			if newProgress > types.MaxProgress {
				newProgress = types.MaxProgress
			}
		} else {
			newProgress = userWord.Progress - 1
			if newProgress < types.MinProgress {
				newProgress = types.MinProgress
			}
		}

		// A positive answer on a word never surfaced before means the user
		// knew it already, as opposed to learning it through repetition.
		alreadyKnown := userWord.AlreadyKnown
		if userWord.LastSeenAt == nil && increment == 1 {
			alreadyKnown = true
		}

		// Reaching max progress is a one-way transition.
		learned := userWord.Learned
		if newProgress == types.MaxProgress {
			learned = true
		}

		return ls.userWordRepo.UpdateReview(ctx, tx, userWord.ID, newProgress, time.Now().UTC(), alreadyKnown, learned)
	}); err != nil {
		return 0, ls.internal(err, "updating word progress")
	}

	return newProgress, nil
}

// fetchUser resolves the authenticated identifier to its user row. A missing
// row is NotFound, never a nil dereference.
func (ls *learningService) fetchUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	found, err := ls.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return nil, ls.internal(err, "fetching user")
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("user %s not found", userID)
	}
	return found[0], nil
}

func (ls *learningService) fetchUserForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	found, err := ls.userRepo.GetByIDsForUpdate(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("user %s not found", userID)
	}
	return found[0], nil
}

// resolveWords joins tracked words to their catalog entries, cache first.
func (ls *learningService) resolveWords(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*types.Word, error) {
	out := make(map[uuid.UUID]*types.Word, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	missing := ids
	if ls.wordCache != nil {
		cached := ls.wordCache.GetMany(ctx, ids)
		missing = make([]uuid.UUID, 0, len(ids))
		for _, id := range ids {
			if word, ok := cached[id]; ok {
				out[id] = word
			} else {
				missing = append(missing, id)
			}
		}
	}

	if len(missing) > 0 {
		words, err := ls.wordRepo.GetByIDs(ctx, tx, missing)
		if err != nil {
			return nil, ls.internal(err, "fetching words")
		}
		for _, word := range words {
			out[word.ID] = word
		}
		if ls.wordCache != nil {
			ls.wordCache.SetMany(ctx, words)
		}
	}

	for _, id := range ids {
		if out[id] == nil {
			return nil, apierr.NotFound("word %s not found", id)
		}
	}
	return out, nil
}

// internal passes tagged errors through untouched and wraps anything else,
// logging the cause server-side. Callers never see raw store errors.
func (ls *learningService) internal(err error, context string) error {
	if tagged, ok := apierr.From(err); ok {
		return tagged
	}
	ls.log.Error("Store operation failed", "context", context, "error", err)
	return apierr.Internal(err, context)
}
