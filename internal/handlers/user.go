package handlers

//go:generate mockgen -source=user.go -destination=user_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
)

// UserCreator defines the interface that the service must implement.
type UserCreator interface {
	Create(ctx context.Context, in models.UserInput) (*models.UserDB, error)
}

// UserManager manages the authenticated user.
type UserManager interface {
	Me(ctx context.Context, userID int64) (*models.UserDB, error)
	UpdateMe(ctx context.Context, userID int64, in models.UserInput, partial bool) (*models.UserDB, error)
	DeleteMe(ctx context.Context, userID int64) error
}

// CreateUserRequest represents the JSON body for user registration
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Email
	// required: true
	// default: test@example.com
	Email string `json:"email" validate:"required,email,max=255"`

	// Password, at least 5 characters
	// required: true
	// default: testpass123
	Password string `json:"password" validate:"required,min=5"`

	// Display name
	// required: true
	// default: Test Name
	Name string `json:"name" validate:"required,max=255"`
}

// UpdateUserRequest represents the JSON body for updating the current user
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=5"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
}

// UserResponse represents a user
// swagger:model UserResponse
type UserResponse struct {
	// Email
	// default: test@example.com
	Email string `json:"email"`

	// Display name
	// default: Test Name
	Name string `json:"name"`
}

func newUserResponse(u *models.UserDB) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// NewCreateUserHandler returns an HTTP handler for user registration.
// @Summary Create a new user
// @Description Creates a new user account. The email must be unique; the password is hashed before storing.
// @Tags user
// @Accept json
// @Produce json
// @Param request body handlers.CreateUserRequest true "User registration request"
// @Success 201 {object} handlers.UserResponse "User created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input or email already taken"
// @Router /user/create [post]
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, r, err)
			return
		}

		user, err := svc.Create(r.Context(), models.UserInput{
			Email:    &req.Email,
			Name:     &req.Name,
			Password: &req.Password,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, newUserResponse(user))
	}
}

// NewGetMeHandler returns an HTTP handler returning the authenticated user.
// @Summary Get the current user
// @Tags user
// @Produce json
// @Success 200 {object} handlers.UserResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /user/me [get]
// @Security BearerAuth
func NewGetMeHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerID(w, r)
		if !ok {
			return
		}

		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// NewUpdateMeHandler returns an HTTP handler updating the authenticated user.
// With partial set (PATCH) only submitted fields change; otherwise (PUT) every
// field is required.
// @Summary Update the current user
// @Tags user
// @Accept json
// @Produce json
// @Param request body handlers.UpdateUserRequest true "Fields to update"
// @Success 200 {object} handlers.UserResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /user/me [put]
// @Router /user/me [patch]
// @Security BearerAuth
func NewUpdateMeHandler(svc UserManager, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerID(w, r)
		if !ok {
			return
		}

		var req UpdateUserRequest
		if err := decodeJSON(r, &req, "email", "password", "name"); err != nil {
			writeError(w, r, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, r, err)
			return
		}

		user, err := svc.UpdateMe(r.Context(), userID, models.UserInput{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
		}, partial)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// NewDeleteMeHandler returns an HTTP handler deleting the authenticated user
// and everything it owns.
// @Summary Delete the current user
// @Tags user
// @Success 204 "User deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /user/me [delete]
// @Security BearerAuth
func NewDeleteMeHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerID(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteMe(r.Context(), userID); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
