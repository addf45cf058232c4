package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        models.UserInput
		superuser bool
		writerErr error
		wantField string
		wantErr   error
	}{
		{
			name: "successful registration",
			in:   models.UserInput{Email: ptr("Test@EXAMPLE.com"), Name: ptr("Test"), Password: ptr("testpass123")},
		},
		{
			name:      "superuser",
			in:        models.UserInput{Email: ptr("admin@example.com"), Name: ptr("Admin"), Password: ptr("testpass123")},
			superuser: true,
		},
		{
			name:      "email taken",
			in:        models.UserInput{Email: ptr("test@example.com"), Name: ptr("Test"), Password: ptr("testpass123")},
			writerErr: repositories.ErrDuplicate,
			wantField: "email",
		},
		{
			name:      "password too short",
			in:        models.UserInput{Email: ptr("test@example.com"), Name: ptr("Test"), Password: ptr("pw")},
			wantField: "password",
		},
		{
			name:      "invalid email",
			in:        models.UserInput{Email: ptr("not-an-email"), Name: ptr("Test"), Password: ptr("testpass123")},
			wantField: "email",
		},
		{
			name:      "missing name",
			in:        models.UserInput{Email: ptr("test@example.com"), Password: ptr("testpass123")},
			wantField: "name",
		},
		{
			name:      "writer error",
			in:        models.UserInput{Email: ptr("test@example.com"), Name: ptr("Test"), Password: ptr("testpass123")},
			writerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := NewMockUserReader(ctrl)
			writer := NewMockUserWriter(ctrl)
			svc := NewUserService(reader, writer)

			validInput := tt.wantField == "" || tt.writerErr != nil
			if validInput {
				writer.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, u *models.UserDB) (*models.UserDB, error) {
						if tt.writerErr != nil {
							return nil, tt.writerErr
						}
						assert.Equal(t, models.NormalizeEmail(*tt.in.Email), u.Email)
						assert.True(t, u.IsActive)
						assert.Equal(t, tt.superuser, u.IsStaff)
						assert.Equal(t, tt.superuser, u.IsSuperuser)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(*tt.in.Password)))
						created := *u
						created.ID = 1
						return &created, nil
					})
			}

			var (
				user *models.UserDB
				err  error
			)
			if tt.superuser {
				user, err = svc.CreateSuperuser(ctx, tt.in)
			} else {
				user, err = svc.Create(ctx, tt.in)
			}

			switch {
			case tt.wantErr != nil:
				assert.EqualError(t, err, tt.wantErr.Error())
			case tt.wantField != "":
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Contains(t, ve.Fields, tt.wantField)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(1), user.ID)
			}
		})
	}
}

func TestUserService_CreateNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockUserWriter(ctrl)
	svc := NewUserService(NewMockUserReader(ctrl), writer)

	writer.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *models.UserDB) (*models.UserDB, error) {
			assert.Equal(t, "Test2@example.com", u.Email)
			return u, nil
		})

	_, err := svc.Create(ctx, models.UserInput{Email: ptr("Test2@EXAMPLE.COM"), Name: ptr("T"), Password: ptr("secret")})
	assert.NoError(t, err)
}

func TestUserService_Me(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockUserReader(ctrl)
	svc := NewUserService(reader, NewMockUserWriter(ctrl))

	reader.EXPECT().GetByID(ctx, int64(1)).Return(&models.UserDB{ID: 1, Email: "a@example.com"}, nil)
	user, err := svc.Me(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)

	reader.EXPECT().GetByID(ctx, int64(2)).Return(nil, sql.ErrNoRows)
	_, err = svc.Me(ctx, 2)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUserService_UpdateMe(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update rehashes password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := NewMockUserReader(ctrl)
		writer := NewMockUserWriter(ctrl)
		svc := NewUserService(reader, writer)

		reader.EXPECT().GetByID(ctx, int64(1)).Return(&models.UserDB{ID: 1, Email: "a@example.com", Name: "Old", PasswordHash: "old"}, nil)
		writer.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u *models.UserDB) (*models.UserDB, error) {
				assert.Equal(t, "a@example.com", u.Email)
				assert.Equal(t, "New name", u.Name)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpassword123")))
				return u, nil
			})

		user, err := svc.UpdateMe(ctx, 1, models.UserInput{Name: ptr("New name"), Password: ptr("newpassword123")}, true)
		require.NoError(t, err)
		assert.Equal(t, "New name", user.Name)
	})

	t.Run("full update requires every field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc := NewUserService(NewMockUserReader(ctrl), NewMockUserWriter(ctrl))

		_, err := svc.UpdateMe(ctx, 1, models.UserInput{Name: ptr("New")}, false)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, "email")
		assert.Contains(t, ve.Fields, "password")
	})

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := NewMockUserReader(ctrl)
		writer := NewMockUserWriter(ctrl)
		svc := NewUserService(reader, writer)

		reader.EXPECT().GetByID(ctx, int64(1)).Return(&models.UserDB{ID: 1}, nil)
		writer.EXPECT().Update(ctx, gomock.Any()).Return(nil, repositories.ErrDuplicate)

		_, err := svc.UpdateMe(ctx, 1, models.UserInput{Email: ptr("b@example.com")}, true)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, []string{msgEmailTaken}, ve.Fields["email"])
	})
}

func TestUserService_DeleteMe(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockUserWriter(ctrl)
	svc := NewUserService(NewMockUserReader(ctrl), writer)

	writer.EXPECT().Delete(ctx, int64(1)).Return(nil)
	assert.NoError(t, svc.DeleteMe(ctx, 1))

	writer.EXPECT().Delete(ctx, int64(1)).Return(sql.ErrNoRows)
	assert.ErrorIs(t, svc.DeleteMe(ctx, 1), ErrUnauthenticated)
}
