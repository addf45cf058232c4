package services

//go:generate mockgen -source=user.go -destination=user_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Password constraints.
const (
	PasswordMinLength = 5
	msgPasswordShort  = "Ensure this field has at least 5 characters."
	msgInvalidEmail   = "Enter a valid email address."
	msgEmailTaken     = "user with this email already exists."
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.UserDB) (*models.UserDB, error)
	Update(ctx context.Context, user *models.UserDB) (*models.UserDB, error)
	Delete(ctx context.Context, id int64) error
}

// UserService creates users and manages the authenticated user.
type UserService struct {
	reader UserReader
	writer UserWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
	}
}

// Create registers an active user. The email domain is lowercased and the
// password is stored as a bcrypt hash.
func (svc *UserService) Create(ctx context.Context, in models.UserInput) (*models.UserDB, error) {
	return svc.create(ctx, in, false)
}

// CreateSuperuser registers an active user with the staff and superuser flags set.
func (svc *UserService) CreateSuperuser(ctx context.Context, in models.UserInput) (*models.UserDB, error) {
	return svc.create(ctx, in, true)
}

func (svc *UserService) create(ctx context.Context, in models.UserInput, superuser bool) (*models.UserDB, error) {
	v := &ValidationError{}
	email, name := validateUserInput(v, in, true)
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := hashPassword(*in.Password)
	if err != nil {
		return nil, err
	}

	user, err := svc.writer.Create(ctx, &models.UserDB{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewValidationError("email", msgEmailTaken)
		}
		logger.Log.Errorw("failed to save user", "email", email, "err", err)
		return nil, err
	}
	return user, nil
}

// Me returns the authenticated user.
func (svc *UserService) Me(ctx context.Context, userID int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	return user, nil
}

// UpdateMe changes the authenticated user. A full update requires every field;
// a partial one only touches submitted fields. A new password is re-hashed.
func (svc *UserService) UpdateMe(ctx context.Context, userID int64, in models.UserInput, partial bool) (*models.UserDB, error) {
	v := &ValidationError{}
	email, name := validateUserInput(v, in, !partial)
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := svc.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = email
	}
	if in.Name != nil {
		user.Name = name
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	updated, err := svc.writer.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewValidationError("email", msgEmailTaken)
		}
		logger.Log.Errorw("failed to update user", "userID", userID, "err", err)
		return nil, err
	}
	return updated, nil
}

// DeleteMe removes the authenticated user together with everything it owns.
func (svc *UserService) DeleteMe(ctx context.Context, userID int64) error {
	if err := svc.writer.Delete(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnauthenticated
		}
		logger.Log.Errorw("failed to delete user", "userID", userID, "err", err)
		return err
	}
	return nil
}

// validateUserInput checks submitted fields and returns the normalized email
// and trimmed name. With required set, missing fields are errors too.
func validateUserInput(v *ValidationError, in models.UserInput, required bool) (email, name string) {
	switch {
	case in.Email != nil:
		email = checkText(v, "email", models.NormalizeEmail(*in.Email), false)
		if email != "" {
			if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
				v.Add("email", msgInvalidEmail)
			}
		}
	case required:
		v.Add("email", msgRequired)
	}

	switch {
	case in.Name != nil:
		name = checkText(v, "name", *in.Name, false)
	case required:
		v.Add("name", msgRequired)
	}

	switch {
	case in.Password != nil:
		if len([]rune(*in.Password)) < PasswordMinLength {
			v.Add("password", msgPasswordShort)
		}
	case required:
		v.Add("password", msgRequired)
	}
	return email, name
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return "", err
	}
	return string(hashed), nil
}
