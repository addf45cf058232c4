package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID int64) (string, error)
}

// TokenRevoker records revoked token ids until they expire.
type TokenRevoker interface {
	Add(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService issues and revokes tokens.
type AuthService struct {
	reader    UserReader
	jwt       JWTGenerator
	blacklist TokenRevoker
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, jwt JWTGenerator, blacklist TokenRevoker) *AuthService {
	return &AuthService{
		reader:    reader,
		jwt:       jwt,
		blacklist: blacklist,
	}
}

// Token authenticates an active user by email and password and returns a JWT.
func (svc *AuthService) Token(ctx context.Context, email, password string) (string, error) {
	user, err := svc.reader.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Log.Warnw("user does not exist", "email", email)
			return "", ErrInvalidCredentials
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if !user.IsActive {
		logger.Log.Warnw("inactive user requested a token", "userID", user.ID)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Warnw("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// Logout revokes the token with the given id until it would have expired.
func (svc *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrUnauthenticated
	}
	if err := svc.blacklist.Add(ctx, tokenID, time.Until(expiresAt)); err != nil {
		logger.Log.Errorw("failed to revoke token", "tokenID", tokenID, "err", err)
		return err
	}
	return nil
}
