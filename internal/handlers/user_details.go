package handlers

//go:generate mockgen -source=user_details.go -destination=user_details_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
)

// UserDetailsManager defines the interface that the service must implement.
type UserDetailsManager interface {
	Upsert(ctx context.Context, userID int64, in models.UserDetailsInput) (*models.UserDetailsDB, error)
	Get(ctx context.Context, userID int64) (*models.UserDetailsDB, error)
	Patch(ctx context.Context, userID int64, in models.UserDetailsInput) (*models.UserDetailsDB, error)
}

// UserDetailsRequest represents the JSON body for user details
// swagger:model UserDetailsRequest
type UserDetailsRequest struct {
	// Age, defaults to 0
	// default: 25
	Age *int `json:"age" validate:"omitempty,gte=0,lte=2147483647"`

	// default: UAE
	Country *string `json:"country" validate:"omitempty,max=255"`

	// default: Dubai
	City *string `json:"city" validate:"omitempty,max=255"`

	// default: Sushi
	FavoriteFood *string `json:"favorite_food" validate:"omitempty,max=255"`
}

func (req UserDetailsRequest) input() models.UserDetailsInput {
	return models.UserDetailsInput{
		Age:          req.Age,
		Country:      req.Country,
		City:         req.City,
		FavoriteFood: req.FavoriteFood,
	}
}

// UserDetailsResponse represents user details
// swagger:model UserDetailsResponse
type UserDetailsResponse struct {
	ID           int64  `json:"id"`
	Age          int    `json:"age"`
	Country      string `json:"country"`
	City         string `json:"city"`
	FavoriteFood string `json:"favorite_food"`
}

func newUserDetailsResponse(d *models.UserDetailsDB) UserDetailsResponse {
	return UserDetailsResponse{
		ID:           d.ID,
		Age:          d.Age,
		Country:      d.Country,
		City:         d.City,
		FavoriteFood: d.FavoriteFood,
	}
}

var userDetailsFields = []string{"age", "country", "city", "favorite_food"}

// NewUpsertUserDetailsHandler returns an HTTP handler creating or replacing
// the authenticated user's details.
// @Summary Create or replace user details
// @Description Stores the submitted details; an existing row is replaced, not merged.
// @Tags user
// @Accept json
// @Produce json
// @Param request body handlers.UserDetailsRequest true "User details"
// @Success 201 {object} handlers.UserDetailsResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /user/details [post]
// @Security BearerAuth
func NewUpsertUserDetailsHandler(svc UserDetailsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerID(w, r)
		if !ok {
			return
		}

		var req UserDetailsRequest
		if err := decodeJSON(r, &req, userDetailsFields...); err != nil {
			writeError(w, r, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, r, err)
			return
		}

		details, err := svc.Upsert(r.Context(), userID, req.input())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, newUserDetailsResponse(details))
	}
}

// NewGetUserDetailsHandler returns an HTTP handler returning the authenticated
// user's details.
// @Summary Get user details
// @Tags user
// @Produce json
// @Success 200 {object} handlers.UserDetailsResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "No details yet"
// @Router /user/details/me [get]
// @Security BearerAuth
func NewGetUserDetailsHandler(svc UserDetailsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerID(w, r)
		if !ok {
			return
		}

		details, err := svc.Get(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserDetailsResponse(details))
	}
}

// NewPatchUserDetailsHandler returns an HTTP handler partially updating the
// authenticated user's details.
// @Summary Update user details
// @Tags user
// @Accept json
// @Produce json
// @Param request body handlers.UserDetailsRequest true "Fields to update"
// @Success 200 {object} handlers.UserDetailsResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "No details yet"
// @Router /user/details/me [patch]
// @Security BearerAuth
func NewPatchUserDetailsHandler(svc UserDetailsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ownerID(w, r)
		if !ok {
			return
		}

		var req UserDetailsRequest
		if err := decodeJSON(r, &req, userDetailsFields...); err != nil {
			writeError(w, r, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, r, err)
			return
		}

		details, err := svc.Patch(r.Context(), userID, req.input())
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserDetailsResponse(details))
	}
}
