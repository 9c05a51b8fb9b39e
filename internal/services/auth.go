package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/learneloquent/vocab-backend/internal/apierr"
	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/repos"
	"github.com/learneloquent/vocab-backend/internal/requestdata"
	"github.com/learneloquent/vocab-backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)

	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return apierr.InvalidArgument("a valid email is required")
	}
	if len(user.Password) < 8 {
		return apierr.InvalidArgument("password must be at least 8 characters")
	}
	if user.FirstName == "" || user.LastName == "" {
		return apierr.InvalidArgument("first_name and last_name are required")
	}
	if user.SkillLevel == "" {
		user.SkillLevel = types.LevelBeginner
	}
	if !user.SkillLevel.Valid() {
		return apierr.InvalidArgument("unknown skill level %q", user.SkillLevel)
	}

	existing, err := as.userRepo.GetByEmails(ctx, nil, []string{user.Email})
	if err != nil {
		as.log.Error("Failed to check existing email", "error", err)
		return apierr.Internal(err, "registering user")
	}
	if len(existing) > 0 {
		return apierr.InvalidArgument("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		as.log.Error("Failed to hash password", "error", err)
		return apierr.Internal(err, "registering user")
	}
	user.Password = string(hashed)

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		user.NextWords = datatypes.NewJSONType(types.LevelCursor{})
		if _, cerr := as.userRepo.Create(ctx, tx, []*types.User{user}); cerr != nil {
			as.log.Error("Failed to create user", "error", cerr)
			return apierr.Internal(cerr, "registering user")
		}
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		as.log.Error("Failed to fetch user by email", "error", err)
		return "", "", apierr.Internal(err, "logging in")
	}
	if len(users) == 0 {
		return "", "", apierr.Unauthenticated("invalid email or password")
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", apierr.Unauthenticated("invalid email or password")
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if derr := as.userTokenRepo.DeleteExpiredBefore(ctx, tx, time.Now()); derr != nil {
			return derr
		}
		pair, perr := as.issueTokenPair(ctx, tx, user)
		if perr != nil {
			return perr
		}
		accessToken = pair.AccessToken
		refreshToken = pair.RefreshToken
		return nil
	}); err != nil {
		if tagged, ok := apierr.From(err); ok {
			return "", "", tagged
		}
		as.log.Error("Login transaction failed", "error", err)
		return "", "", apierr.Internal(err, "logging in")
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", apierr.Unauthenticated("no refresh token in request context")
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, ferr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if ferr != nil {
			return ferr
		}
		if len(found) == 0 || found[0] == nil {
			return apierr.Unauthenticated("unknown refresh token")
		}
		existing := found[0]

		if existing.ExpiresAt.Before(time.Now()) {
			_ = as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID})
			return apierr.Unauthenticated("refresh token expired")
		}

		users, uerr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
		if uerr != nil {
			return uerr
		}
		if len(users) == 0 || users[0] == nil {
			return apierr.Unauthenticated("no user for refresh token")
		}

		pair, perr := as.issueTokenPair(ctx, tx, users[0])
		if perr != nil {
			return perr
		}
		if derr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); derr != nil {
			return derr
		}
		accessToken = pair.AccessToken
		refreshToken = pair.RefreshToken
		return nil
	}); err != nil {
		if tagged, ok := apierr.From(err); ok {
			return "", "", tagged
		}
		as.log.Error("Refresh transaction failed", "error", err)
		return "", "", apierr.Internal(err, "refreshing session")
	}
	return accessToken, refreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apierr.Unauthenticated("no access token in request context")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, ferr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ferr != nil {
			as.log.Error("Failed to look up token for logout", "error", ferr)
			return apierr.Internal(ferr, "logging out")
		}
		if len(found) == 0 || found[0] == nil {
			return nil
		}
		if derr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{found[0].ID}); derr != nil {
			as.log.Error("Failed to delete token for logout", "error", derr)
			return apierr.Internal(derr, "logging out")
		}
		return nil
	})
}

func (as *authService) issueTokenPair(ctx context.Context, tx *gorm.DB, user *types.User) (*types.UserToken, error) {
	accessToken, err := as.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: uuid.New().String(),
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, cerr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{row}); cerr != nil {
		return nil, fmt.Errorf("store user token: %w", cerr)
	}
	return row, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			// iat/exp have one-second granularity; the jti keeps two tokens
			// issued within the same second from colliding, which rotation
			// and revocation both depend on.
			ID:        uuid.New().String(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apierr.Unauthenticated("failed to parse token")
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.Unauthenticated("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthenticated("invalid user id in token")
	}

	var refreshToken string
	found, ferr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if ferr != nil {
		as.log.Error("Failed to fetch user token by access token", "error", ferr)
		return ctx, apierr.Internal(ferr, "resolving session")
	}
	if len(found) == 0 || found[0] == nil {
		return ctx, apierr.Unauthenticated("session revoked")
	}
	refreshToken = found[0].RefreshToken

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		UserID:       userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
