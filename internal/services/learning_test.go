package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/learneloquent/vocab-backend/internal/apierr"
	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/repos"
	"github.com/learneloquent/vocab-backend/internal/requestdata"
	"github.com/learneloquent/vocab-backend/internal/types"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// An in-memory sqlite database lives per connection; pin the pool to one
	// so every query and transaction sees the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&types.User{}, &types.UserToken{}, &types.Word{}, &types.UserWord{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestLearningService(t *testing.T, db *gorm.DB, cfg LearningConfig) LearningService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	userRepo := repos.NewUserRepo(db, log)
	wordRepo := repos.NewWordRepo(db, log)
	userWordRepo := repos.NewUserWordRepo(db, log)
	return NewLearningService(db, log, cfg, userRepo, wordRepo, userWordRepo, nil)
}

func defaultLearningConfig() LearningConfig {
	return LearningConfig{
		WordBatchSize:   5,
		PageSize:        10,
		MaxPageSize:     100,
		ReviewStaleness: 15 * time.Minute,
	}
}

func seedUser(t *testing.T, db *gorm.DB, level types.Level) *types.User {
	t.Helper()
	user := &types.User{
		ID:         uuid.New(),
		Email:      uuid.New().String() + "@example.com",
		Password:   "hashed",
		FirstName:  "Test",
		LastName:   "User",
		SkillLevel: level,
		NextWords:  datatypes.NewJSONType(types.LevelCursor{}),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedWords(t *testing.T, db *gorm.DB, level types.Level, n int) []*types.Word {
	t.Helper()
	words := make([]*types.Word, 0, n)
	for i := 0; i < n; i++ {
		word := &types.Word{
			ID:          uuid.New(),
			Text:        fmt.Sprintf("%s-word-%d", level, i),
			Translation: fmt.Sprintf("%s-translation-%d", level, i),
			Difficulty:  level,
			Index:       i,
		}
		if err := db.Create(word).Error; err != nil {
			t.Fatalf("seed word %d: %v", i, err)
		}
		words = append(words, word)
	}
	return words
}

func seedUserWord(t *testing.T, db *gorm.DB, user *types.User, word *types.Word, progress int, lastSeenAt *time.Time, alreadyKnown, learned bool) *types.UserWord {
	t.Helper()
	row := &types.UserWord{
		ID:           uuid.New(),
		UserID:       user.ID,
		WordID:       word.ID,
		Difficulty:   word.Difficulty,
		Progress:     progress,
		LastSeenAt:   lastSeenAt,
		AlreadyKnown: alreadyKnown,
		Learned:      learned,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed user word: %v", err)
	}
	return row
}

func authedCtx(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	tagged, ok := apierr.From(err)
	if !ok {
		t.Fatalf("expected %s error, got untagged: %v", code, err)
	}
	if tagged.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, tagged.Code, err)
	}
}

func reloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) *types.User {
	t.Helper()
	var user types.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &user
}

func reloadUserWord(t *testing.T, db *gorm.DB, id uuid.UUID) *types.UserWord {
	t.Helper()
	var row types.UserWord
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		t.Fatalf("reload user word: %v", err)
	}
	return &row
}

func TestGetLearningWordsFreshUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	seedWords(t, db, types.LevelBeginner, 10)

	out, err := svc.GetLearningWords(authedCtx(user.ID))
	if err != nil {
		t.Fatalf("GetLearningWords: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 words, got %d", len(out))
	}
	for i, lw := range out {
		if lw.Word == nil {
			t.Fatalf("word %d missing catalog entry", i)
		}
		if lw.Word.Index != i {
			t.Fatalf("expected cursor order, word %d has index %d", i, lw.Word.Index)
		}
		if lw.Progress != types.MinProgress {
			t.Fatalf("new word %d has progress %d", i, lw.Progress)
		}
		if lw.LastSeenAt != nil {
			t.Fatalf("new word %d should not be stamped yet", i)
		}
		if lw.Learned || lw.AlreadyKnown {
			t.Fatalf("new word %d has stale flags", i)
		}
	}

	fresh := reloadUser(t, db, user.ID)
	if got := fresh.Cursor().Next(types.LevelBeginner); got != 5 {
		t.Fatalf("expected cursor at 5, got %d", got)
	}

	var count int64
	if err := db.Model(&types.UserWord{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count user words: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 tracking rows, got %d", count)
	}
}

func TestGetLearningWordsDueOnlyLeavesCursorAlone(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 10)

	stale := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seenAt := stale.Add(time.Duration(i) * time.Minute)
		seedUserWord(t, db, user, words[i], 2, &seenAt, false, false)
	}

	out, err := svc.GetLearningWords(authedCtx(user.ID))
	if err != nil {
		t.Fatalf("GetLearningWords: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 due words, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].LastSeenAt == nil || out[i].LastSeenAt == nil {
			t.Fatalf("due word missing lastSeenAt")
		}
		if out[i].LastSeenAt.Before(*out[i-1].LastSeenAt) {
			t.Fatalf("due words out of order at %d", i)
		}
	}

	fresh := reloadUser(t, db, user.ID)
	if got := fresh.Cursor().Next(types.LevelBeginner); got != 0 {
		t.Fatalf("cursor should stay at 0 on a full due batch, got %d", got)
	}
	var count int64
	if err := db.Model(&types.UserWord{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count user words: %v", err)
	}
	if count != 5 {
		t.Fatalf("no rows should be created, got %d", count)
	}
}

func TestGetLearningWordsTopsUpShortDueBatch(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 10)

	stale := time.Now().UTC().Add(-time.Hour)
	seedUserWord(t, db, user, words[0], 3, &stale, false, false)
	seedUserWord(t, db, user, words[1], 2, &stale, false, false)
	// The user already consumed the first two catalog entries.
	if err := db.Model(&types.User{}).Where("id = ?", user.ID).
		Update("next_words", datatypes.NewJSONType(types.LevelCursor{types.LevelBeginner: 2})).Error; err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	out, err := svc.GetLearningWords(authedCtx(user.ID))
	if err != nil {
		t.Fatalf("GetLearningWords: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 2 due + 3 fresh, got %d", len(out))
	}
	for i, lw := range out[:2] {
		if lw.LastSeenAt == nil {
			t.Fatalf("due word %d lost its lastSeenAt", i)
		}
	}
	for i, lw := range out[2:] {
		if lw.LastSeenAt != nil {
			t.Fatalf("fresh word %d should not be stamped", i)
		}
		if lw.Word.Index != 2+i {
			t.Fatalf("fresh word %d has index %d, want %d", i, lw.Word.Index, 2+i)
		}
	}

	fresh := reloadUser(t, db, user.ID)
	if got := fresh.Cursor().Next(types.LevelBeginner); got != 5 {
		t.Fatalf("expected cursor at 5, got %d", got)
	}
}

func TestGetLearningWordsAdvancesCursorByActualCount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	// Only 3 words exist; the 5-word request comes up short.
	seedWords(t, db, types.LevelBeginner, 3)

	out, err := svc.GetLearningWords(authedCtx(user.ID))
	if err != nil {
		t.Fatalf("GetLearningWords: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 words, got %d", len(out))
	}

	fresh := reloadUser(t, db, user.ID)
	if got := fresh.Cursor().Next(types.LevelBeginner); got != 3 {
		t.Fatalf("cursor must advance by the 3 words consumed, got %d", got)
	}
}

func TestGetLearningWordsLevelExhausted(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)

	out, err := svc.GetLearningWords(authedCtx(user.ID))
	if err != nil {
		t.Fatalf("GetLearningWords: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty batch, got %d", len(out))
	}
	fresh := reloadUser(t, db, user.ID)
	if got := fresh.Cursor().Next(types.LevelBeginner); got != 0 {
		t.Fatalf("cursor should not move on an empty range, got %d", got)
	}
}

func TestGetLearningWordsSkipsRecentLearnedAndKnown(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 4)

	stale := time.Now().UTC().Add(-time.Hour)
	recent := time.Now().UTC().Add(-time.Minute)
	seedUserWord(t, db, user, words[0], 2, &recent, false, false) // seen too recently
	seedUserWord(t, db, user, words[1], 5, &stale, false, true)   // learned
	seedUserWord(t, db, user, words[2], 3, &stale, true, false)   // already known
	due := seedUserWord(t, db, user, words[3], 2, &stale, false, false)

	// Everything is already tracked, so no top-up is possible.
	if err := db.Model(&types.User{}).Where("id = ?", user.ID).
		Update("next_words", datatypes.NewJSONType(types.LevelCursor{types.LevelBeginner: 4})).Error; err != nil {
		t.Fatalf("set cursor: %v", err)
	}

	out, err := svc.GetLearningWords(authedCtx(user.ID))
	if err != nil {
		t.Fatalf("GetLearningWords: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected only the stale unlearned word, got %d", len(out))
	}
	if out[0].ID != due.ID {
		t.Fatalf("wrong word selected as due")
	}
}

func TestGetLearningWordsUsesCurrentSkillLevel(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelIntermediate)
	seedWords(t, db, types.LevelBeginner, 5)
	seedWords(t, db, types.LevelIntermediate, 5)

	out, err := svc.GetLearningWords(authedCtx(user.ID))
	if err != nil {
		t.Fatalf("GetLearningWords: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 words, got %d", len(out))
	}
	for i, lw := range out {
		if lw.Word.Difficulty != types.LevelIntermediate {
			t.Fatalf("word %d has difficulty %s", i, lw.Word.Difficulty)
		}
		if lw.Difficulty != types.LevelIntermediate {
			t.Fatalf("tracking row %d has difficulty %s", i, lw.Difficulty)
		}
	}
}

func TestGetLearningWordsUnauthenticated(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())

	_, err := svc.GetLearningWords(context.Background())
	assertCode(t, err, apierr.CodeUnauthenticated)
}

func TestGetUserWordsStampsNeverSeenRows(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 3)

	t1 := time.Now().UTC().Add(-time.Hour)
	a := seedUserWord(t, db, user, words[0], 1, nil, false, false)
	b := seedUserWord(t, db, user, words[1], 1, nil, false, false)
	seedUserWord(t, db, user, words[2], 2, &t1, false, false)

	page, err := svc.GetUserWords(authedCtx(user.ID), "", 2)
	if err != nil {
		t.Fatalf("GetUserWords: %v", err)
	}
	if len(page.UserWords) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.UserWords))
	}
	// NULLs sort first: both never-seen rows fill the page.
	for i, item := range page.UserWords {
		if item.LastSeenAt == nil {
			t.Fatalf("item %d should carry the fresh stamp", i)
		}
	}
	if !page.UserWords[0].LastSeenAt.Equal(*page.UserWords[1].LastSeenAt) {
		t.Fatalf("both rows must get one shared stamp")
	}
	if page.NextPageToken == nil {
		t.Fatalf("full page must yield a token")
	}

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		row := reloadUserWord(t, db, id)
		if row.LastSeenAt == nil {
			t.Fatalf("row %s was not stamped in the store", id)
		}
	}
}

func TestGetUserWordsPaginationWalk(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 5)

	base := time.Now().UTC().Add(-time.Hour)
	for i, word := range words {
		seenAt := base.Add(time.Duration(i) * time.Minute)
		seedUserWord(t, db, user, word, 2, &seenAt, false, false)
	}

	seen := map[uuid.UUID]bool{}
	token := ""
	pages := 0
	var prev *time.Time
	for {
		page, err := svc.GetUserWords(authedCtx(user.ID), token, 2)
		if err != nil {
			t.Fatalf("page %d: %v", pages, err)
		}
		for _, item := range page.UserWords {
			if seen[item.ID] {
				t.Fatalf("item %s returned twice", item.ID)
			}
			seen[item.ID] = true
			if prev != nil && item.LastSeenAt.Before(*prev) {
				t.Fatalf("items out of lastSeenAt order")
			}
			prev = item.LastSeenAt
		}
		pages++
		if page.NextPageToken == nil {
			if len(page.UserWords) == 2 && len(seen) < 5 {
				t.Fatalf("token missing mid-walk")
			}
			break
		}
		token = *page.NextPageToken
		if pages > 10 {
			t.Fatalf("pagination did not terminate")
		}
	}
	if len(seen) != 5 {
		t.Fatalf("expected all 5 rows across pages, got %d", len(seen))
	}
	if pages != 3 {
		t.Fatalf("expected 3 pages of 2/2/1, got %d", pages)
	}
}

func TestGetUserWordsExcludesAlreadyKnown(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 2)

	t1 := time.Now().UTC().Add(-time.Hour)
	seedUserWord(t, db, user, words[0], 3, &t1, true, false)
	kept := seedUserWord(t, db, user, words[1], 2, &t1, false, false)

	page, err := svc.GetUserWords(authedCtx(user.ID), "", 0)
	if err != nil {
		t.Fatalf("GetUserWords: %v", err)
	}
	if len(page.UserWords) != 1 || page.UserWords[0].ID != kept.ID {
		t.Fatalf("already-known rows must not be listed")
	}
	if page.NextPageToken != nil {
		t.Fatalf("short page must not yield a token")
	}
}

func TestGetUserWordsClampsLimit(t *testing.T) {
	db := setupTestDB(t)
	cfg := defaultLearningConfig()
	cfg.MaxPageSize = 3
	svc := newTestLearningService(t, db, cfg)
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 5)

	base := time.Now().UTC().Add(-time.Hour)
	for i, word := range words {
		seenAt := base.Add(time.Duration(i) * time.Minute)
		seedUserWord(t, db, user, word, 2, &seenAt, false, false)
	}

	page, err := svc.GetUserWords(authedCtx(user.ID), "", 50)
	if err != nil {
		t.Fatalf("GetUserWords: %v", err)
	}
	if len(page.UserWords) != 3 {
		t.Fatalf("expected limit clamped to 3, got %d items", len(page.UserWords))
	}
}

func TestGetUserWordsInvalidToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)

	_, err := svc.GetUserWords(authedCtx(user.ID), "not-a-timestamp", 0)
	assertCode(t, err, apierr.CodeInvalidArgument)
}

func TestGetUserWordsUnauthenticated(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())

	_, err := svc.GetUserWords(context.Background(), "", 0)
	assertCode(t, err, apierr.CodeUnauthenticated)
}

func TestUpdateWordProgressIncrementToLearned(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 1)

	t1 := time.Now().UTC().Add(-time.Hour)
	row := seedUserWord(t, db, user, words[0], 4, &t1, false, false)

	got, err := svc.UpdateWordProgress(authedCtx(user.ID), row.ID.String(), 1)
	if err != nil {
		t.Fatalf("UpdateWordProgress: %v", err)
	}
	if got != types.MaxProgress {
		t.Fatalf("expected progress %d, got %d", types.MaxProgress, got)
	}
	stored := reloadUserWord(t, db, row.ID)
	if !stored.Learned {
		t.Fatalf("reaching max progress must set learned")
	}
	if stored.AlreadyKnown {
		t.Fatalf("a previously seen word is not already-known")
	}

	// Idempotent at the ceiling.
	got, err = svc.UpdateWordProgress(authedCtx(user.ID), row.ID.String(), 1)
	if err != nil {
		t.Fatalf("UpdateWordProgress at max: %v", err)
	}
	if got != types.MaxProgress {
		t.Fatalf("progress must stay clamped at %d, got %d", types.MaxProgress, got)
	}
}

func TestUpdateWordProgressDecrementKeepsLearned(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 2)

	t1 := time.Now().UTC().Add(-time.Hour)
	learned := seedUserWord(t, db, user, words[0], 5, &t1, false, true)
	floor := seedUserWord(t, db, user, words[1], 1, &t1, false, false)

	got, err := svc.UpdateWordProgress(authedCtx(user.ID), learned.ID.String(), -1)
	if err != nil {
		t.Fatalf("UpdateWordProgress: %v", err)
	}
	if got != 4 {
		t.Fatalf("expected progress 4, got %d", got)
	}
	if stored := reloadUserWord(t, db, learned.ID); !stored.Learned {
		t.Fatalf("learned is a one-way flag")
	}

	got, err = svc.UpdateWordProgress(authedCtx(user.ID), floor.ID.String(), -1)
	if err != nil {
		t.Fatalf("UpdateWordProgress at floor: %v", err)
	}
	if got != types.MinProgress {
		t.Fatalf("progress must stay clamped at %d, got %d", types.MinProgress, got)
	}
}

func TestUpdateWordProgressFirstReviewMarksAlreadyKnown(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 2)

	neverSeen := seedUserWord(t, db, user, words[0], 1, nil, false, false)
	neverSeenDown := seedUserWord(t, db, user, words[1], 2, nil, false, false)

	if _, err := svc.UpdateWordProgress(authedCtx(user.ID), neverSeen.ID.String(), 1); err != nil {
		t.Fatalf("UpdateWordProgress: %v", err)
	}
	stored := reloadUserWord(t, db, neverSeen.ID)
	if !stored.AlreadyKnown {
		t.Fatalf("a correct first review marks the word already known")
	}
	if stored.LastSeenAt == nil {
		t.Fatalf("review must stamp lastSeenAt")
	}

	if _, err := svc.UpdateWordProgress(authedCtx(user.ID), neverSeenDown.ID.String(), -1); err != nil {
		t.Fatalf("UpdateWordProgress: %v", err)
	}
	if stored := reloadUserWord(t, db, neverSeenDown.ID); stored.AlreadyKnown {
		t.Fatalf("a failed first review must not mark the word already known")
	}
}

func TestUpdateWordProgressWrongOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	owner := seedUser(t, db, types.LevelBeginner)
	intruder := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 1)

	t1 := time.Now().UTC().Add(-time.Hour)
	row := seedUserWord(t, db, owner, words[0], 3, &t1, false, false)

	_, err := svc.UpdateWordProgress(authedCtx(intruder.ID), row.ID.String(), 1)
	assertCode(t, err, apierr.CodePermissionDenied)

	stored := reloadUserWord(t, db, row.ID)
	if stored.Progress != 3 || !stored.LastSeenAt.Equal(t1) {
		t.Fatalf("denied update must leave the record untouched")
	}
}

func TestUpdateWordProgressValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestLearningService(t, db, defaultLearningConfig())
	user := seedUser(t, db, types.LevelBeginner)
	words := seedWords(t, db, types.LevelBeginner, 1)
	t1 := time.Now().UTC().Add(-time.Hour)
	row := seedUserWord(t, db, user, words[0], 3, &t1, false, false)

	_, err := svc.UpdateWordProgress(authedCtx(user.ID), "not-a-uuid", 1)
	assertCode(t, err, apierr.CodeInvalidArgument)

	_, err = svc.UpdateWordProgress(authedCtx(user.ID), row.ID.String(), 2)
	assertCode(t, err, apierr.CodeInvalidArgument)

	_, err = svc.UpdateWordProgress(authedCtx(user.ID), row.ID.String(), 0)
	assertCode(t, err, apierr.CodeInvalidArgument)

	_, err = svc.UpdateWordProgress(authedCtx(user.ID), uuid.New().String(), 1)
	assertCode(t, err, apierr.CodeNotFound)

	_, err = svc.UpdateWordProgress(context.Background(), row.ID.String(), 1)
	assertCode(t, err, apierr.CodeUnauthenticated)
}
