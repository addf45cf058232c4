package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/jwt"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// TokenBlacklist reports whether a token id has been revoked.
type TokenBlacklist interface {
	Contains(ctx context.Context, tokenID string) (bool, error)
}

// UserLookup loads the account a token was issued to.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying the caller's claims.
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.Claims)
	return claims, ok && claims != nil
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// AuthMiddleware returns a middleware that validates the bearer JWT, rejects
// revoked tokens and stores the claims in the request context.
// A nil blacklist disables the revocation check.
func AuthMiddleware(tokener Tokener, blacklist TokenBlacklist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				unauthorized(w, "Authentication credentials were not provided.")
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				unauthorized(w, "Invalid token.")
				return
			}

			if blacklist != nil {
				revoked, err := blacklist.Contains(ctx, claims.ID)
				if err != nil {
					logger.Log.Errorw("failed to check token blacklist", "err", err)
					internalError(w)
					return
				}
				if revoked {
					logger.Log.Warnw("revoked token used", "userID", claims.UserID, "tokenID", claims.ID)
					unauthorized(w, "Invalid token.")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

// ActiveUserMiddleware rejects requests whose token belongs to a user that was
// deleted or deactivated after the token was issued. It must run after
// AuthMiddleware. A nil users lookup disables the check.
func ActiveUserMiddleware(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if users == nil {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				unauthorized(w, "Authentication credentials were not provided.")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				logger.Log.Warnw("token of deleted user used", "userID", userID)
				unauthorized(w, "User not found.")
				return
			case err != nil:
				logger.Log.Errorw("failed to load token owner", "userID", userID, "err", err)
				internalError(w)
				return
			case !user.IsActive:
				logger.Log.Warnw("token of inactive user used", "userID", userID)
				unauthorized(w, "User inactive or deleted.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser authenticates the bearer token and then checks that its owner
// still exists and is active.
func RequireUser(tokener Tokener, blacklist TokenBlacklist, users UserLookup) func(http.Handler) http.Handler {
	auth := AuthMiddleware(tokener, blacklist)
	active := ActiveUserMiddleware(users)
	return func(next http.Handler) http.Handler {
		return auth(active(next))
	}
}

func internalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
