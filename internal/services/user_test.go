package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/learneloquent/vocab-backend/internal/apierr"
	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/repos"
	"github.com/learneloquent/vocab-backend/internal/types"
)

func newTestUserService(t *testing.T, db *gorm.DB) UserService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewUserService(db, log, repos.NewUserRepo(db, log))
}

func TestGetMe(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(t, db)
	user := seedUser(t, db, types.LevelBeginner)

	me, err := svc.GetMe(authedCtx(user.ID))
	if err != nil {
		t.Fatalf("GetMe: %v", err)
	}
	if me.ID != user.ID || me.Email != user.Email {
		t.Fatalf("wrong user returned")
	}

	_, err = svc.GetMe(context.Background())
	assertCode(t, err, apierr.CodeUnauthenticated)
}

func TestUpdateSkillLevel(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(t, db)
	user := seedUser(t, db, types.LevelBeginner)

	me, err := svc.UpdateSkillLevel(authedCtx(user.ID), "advanced")
	if err != nil {
		t.Fatalf("UpdateSkillLevel: %v", err)
	}
	if me.SkillLevel != types.LevelAdvanced {
		t.Fatalf("expected advanced, got %s", me.SkillLevel)
	}
	if stored := reloadUser(t, db, user.ID); stored.SkillLevel != types.LevelAdvanced {
		t.Fatalf("level not persisted")
	}

	_, err = svc.UpdateSkillLevel(authedCtx(user.ID), "wizard")
	assertCode(t, err, apierr.CodeInvalidArgument)
}
