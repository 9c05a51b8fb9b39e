package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learneloquent/vocab-backend/internal/apierr"
	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/repos"
	"github.com/learneloquent/vocab-backend/internal/requestdata"
	"github.com/learneloquent/vocab-backend/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	// UpdateSkillLevel moves the user to a different proficiency tier.
	// Tracked words keep the difficulty they were created with; only future
	// selections follow the new level.
	UpdateSkillLevel(ctx context.Context, level string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthenticated("user must be authenticated")
	}

	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		us.log.Error("Failed to fetch user", "error", err)
		return nil, apierr.Internal(err, "fetching user")
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("user %s not found", rd.UserID)
	}
	return found[0], nil
}

func (us *userService) UpdateSkillLevel(ctx context.Context, level string) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthenticated("user must be authenticated")
	}

	parsed, err := types.ParseLevel(level)
	if err != nil {
		return nil, apierr.InvalidArgument("%v", err)
	}

	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, ferr := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.UserID})
		if ferr != nil {
			return ferr
		}
		if len(found) == 0 || found[0] == nil {
			return apierr.NotFound("user %s not found", rd.UserID)
		}
		if uerr := us.userRepo.UpdateSkillLevel(ctx, tx, rd.UserID, parsed); uerr != nil {
			return uerr
		}
		found[0].SkillLevel = parsed
		out = found[0]
		return nil
	}); err != nil {
		if tagged, ok := apierr.From(err); ok {
			return nil, tagged
		}
		us.log.Error("Skill level update failed", "error", err)
		return nil, apierr.Internal(err, "updating skill level")
	}
	return out, nil
}
