package handlers

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/recipe-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

// TokenIssuer defines the interface that the service must implement.
type TokenIssuer interface {
	Token(ctx context.Context, email, password string) (string, error)
}

// TokenRevoker revokes the caller's token.
type TokenRevoker interface {
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// TokenRequest represents the JSON body for obtaining a token
// swagger:model TokenRequest
type TokenRequest struct {
	// Email
	// required: true
	// default: test@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// default: testpass123
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents a successful authentication
// swagger:model TokenResponse
type TokenResponse struct {
	// JWT token
	// default: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	Token string `json:"token"`
}

// NewTokenHandler returns an HTTP handler issuing a JWT for valid credentials.
// @Summary Obtain a token
// @Description Authenticates a user by email and password and returns a JWT token.
// @Tags user
// @Accept json
// @Produce json
// @Param request body handlers.TokenRequest true "Credentials"
// @Success 200 {object} handlers.TokenResponse "JWT token"
// @Failure 400 {object} handlers.ErrorResponse "Unable to authenticate with provided credentials"
// @Router /user/token [post]
func NewTokenHandler(svc TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TokenRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, r, err)
			return
		}

		token, err := svc.Token(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{Token: token})
	}
}

// NewLogoutHandler returns an HTTP handler revoking the caller's token.
// @Summary Log out
// @Description Revokes the presented token until it expires.
// @Tags user
// @Success 204 "Token revoked"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /user/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc TokenRevoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, r, services.ErrUnauthenticated)
			return
		}

		var expiresAt time.Time
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}

		if err := svc.Logout(r.Context(), claims.ID, expiresAt); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
