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
)

func TestUserDetailsService_UpsertReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockUserDetailsStore(ctrl)
	svc := NewUserDetailsService(store)

	store.EXPECT().Save(ctx, &models.UserDetailsDB{UserID: 1, Age: 25, City: "Dubai"}).
		Return(&models.UserDetailsDB{ID: 3, UserID: 1, Age: 25, City: "Dubai"}, nil)

	d, err := svc.Upsert(ctx, 1, models.UserDetailsInput{Age: ptr(25), City: ptr(" Dubai ")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.ID)
	assert.Empty(t, d.Country)
}

func TestUserDetailsService_UpsertValidation(t *testing.T) {
	tests := []struct {
		name string
		age  int
		want string
	}{
		{name: "negative age", age: -1, want: msgMinValue},
		{name: "age beyond integer column", age: 2147483648, want: msgMaxValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewUserDetailsService(NewMockUserDetailsStore(ctrl))

			_, err := svc.Upsert(context.Background(), 1, models.UserDetailsInput{Age: ptr(tt.age)})
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, []string{tt.want}, ve.Fields["age"])
		})
	}
}

func TestUserDetailsService_UpsertForDeletedUser(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockUserDetailsStore(ctrl)
	svc := NewUserDetailsService(store)

	store.EXPECT().Save(ctx, gomock.Any()).Return(nil, repositories.ErrMissingReference)
	_, err := svc.Upsert(ctx, 1, models.UserDetailsInput{Age: ptr(25)})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUserDetailsService_Get(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockUserDetailsStore(ctrl)
	svc := NewUserDetailsService(store)

	store.EXPECT().GetByUserID(ctx, int64(1)).Return(nil, sql.ErrNoRows)
	_, err := svc.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	store.EXPECT().GetByUserID(ctx, int64(1)).Return(nil, errors.New("db error"))
	_, err = svc.Get(ctx, 1)
	assert.EqualError(t, err, "db error")
}

func TestUserDetailsService_Patch(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockUserDetailsStore(ctrl)
	svc := NewUserDetailsService(store)

	store.EXPECT().Update(ctx, int64(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, in models.UserDetailsInput) (*models.UserDetailsDB, error) {
			require.NotNil(t, in.Age)
			assert.Equal(t, 30, *in.Age)
			require.NotNil(t, in.City)
			assert.Equal(t, "Abu Dhabi", *in.City)
			assert.Nil(t, in.Country)
			assert.Nil(t, in.FavoriteFood)
			return &models.UserDetailsDB{ID: 3, UserID: 1, Age: 30, Country: "UAE", City: "Abu Dhabi", FavoriteFood: "Sushi"}, nil
		})

	d, err := svc.Patch(ctx, 1, models.UserDetailsInput{Age: ptr(30), City: ptr(" Abu Dhabi ")})
	require.NoError(t, err)
	assert.Equal(t, 30, d.Age)
	assert.Equal(t, "Sushi", d.FavoriteFood)

	store.EXPECT().Update(ctx, int64(2), gomock.Any()).Return(nil, sql.ErrNoRows)
	_, err = svc.Patch(ctx, 2, models.UserDetailsInput{Age: ptr(30)})
	assert.ErrorIs(t, err, ErrNotFound)

	store.EXPECT().Update(ctx, int64(3), gomock.Any()).Return(nil, errors.New("db error"))
	_, err = svc.Patch(ctx, 3, models.UserDetailsInput{Age: ptr(30)})
	assert.EqualError(t, err, "db error")
}

func TestUserDetailsService_PatchValidatesBeforeWriting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := NewUserDetailsService(NewMockUserDetailsStore(ctrl))

	_, err := svc.Patch(context.Background(), 1, models.UserDetailsInput{Age: ptr(2147483648)})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{msgMaxValue}, ve.Fields["age"])
}
