package services

//go:generate mockgen -source=user_details.go -destination=user_details_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
)

// UserDetailsStore reads, upserts and partially updates user details rows.
type UserDetailsStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserDetailsDB, error)
	Save(ctx context.Context, d *models.UserDetailsDB) (*models.UserDetailsDB, error)
	Update(ctx context.Context, userID int64, in models.UserDetailsInput) (*models.UserDetailsDB, error)
}

// UserDetailsService manages the one-to-one details of the authenticated user.
type UserDetailsService struct {
	store UserDetailsStore
}

// NewUserDetailsService creates a new UserDetailsService.
func NewUserDetailsService(store UserDetailsStore) *UserDetailsService {
	return &UserDetailsService{store: store}
}

// Upsert creates the user's details or replaces them wholesale. Fields missing
// from in are reset to their defaults.
func (svc *UserDetailsService) Upsert(ctx context.Context, userID int64, in models.UserDetailsInput) (*models.UserDetailsDB, error) {
	d := &models.UserDetailsDB{UserID: userID}
	if err := applyDetails(d, in); err != nil {
		return nil, err
	}

	saved, err := svc.store.Save(ctx, d)
	if err != nil {
		if errors.Is(err, repositories.ErrMissingReference) {
			return nil, ErrUnauthenticated
		}
		logger.Log.Errorw("failed to save user details", "userID", userID, "err", err)
		return nil, err
	}
	return saved, nil
}

// Get returns the user's details or ErrNotFound.
func (svc *UserDetailsService) Get(ctx context.Context, userID int64) (*models.UserDetailsDB, error) {
	d, err := svc.store.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.Errorw("failed to get user details", "userID", userID, "err", err)
		return nil, err
	}
	return d, nil
}

// Patch changes only the submitted fields of existing details. Unsubmitted
// columns are left to the database so concurrent patches of different fields
// do not overwrite each other.
func (svc *UserDetailsService) Patch(ctx context.Context, userID int64, in models.UserDetailsInput) (*models.UserDetailsDB, error) {
	if err := applyDetails(&models.UserDetailsDB{}, in); err != nil {
		return nil, err
	}

	updated, err := svc.store.Update(ctx, userID, in)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Log.Errorw("failed to update user details", "userID", userID, "err", err)
		return nil, err
	}
	return updated, nil
}

func applyDetails(d *models.UserDetailsDB, in models.UserDetailsInput) error {
	v := &ValidationError{}
	if in.Age != nil {
		checkCount(v, "age", *in.Age)
	}
	if in.Country != nil {
		*in.Country = checkText(v, "country", *in.Country, true)
	}
	if in.City != nil {
		*in.City = checkText(v, "city", *in.City, true)
	}
	if in.FavoriteFood != nil {
		*in.FavoriteFood = checkText(v, "favorite_food", *in.FavoriteFood, true)
	}
	if err := v.Err(); err != nil {
		return err
	}
	in.Apply(d)
	return nil
}
