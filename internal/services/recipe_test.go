package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recipeMocks struct {
	tx          *MockTransactor
	reader      *MockRecipeReader
	writer      *MockRecipeWriter
	reconciler  *MockAssociationReconciler
	tags        *MockAssociationLister
	ingredients *MockAssociationLister
	images      *MockImageStorage
	publisher   *MockRecipePublisher
}

func newRecipeService(t *testing.T) (*RecipeService, recipeMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := recipeMocks{
		tx:          NewMockTransactor(ctrl),
		reader:      NewMockRecipeReader(ctrl),
		writer:      NewMockRecipeWriter(ctrl),
		reconciler:  NewMockAssociationReconciler(ctrl),
		tags:        NewMockAssociationLister(ctrl),
		ingredients: NewMockAssociationLister(ctrl),
		images:      NewMockImageStorage(ctrl),
		publisher:   NewMockRecipePublisher(ctrl),
	}
	svc := NewRecipeService(m.tx, m.reader, m.writer, m.reconciler, m.tags, m.ingredients, m.images, m.publisher)
	return svc, m
}

// expectTx runs the transaction body inline.
func (m recipeMocks) expectTx() {
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func ptr[T any](v T) *T { return &v }

func validRecipeInput() models.RecipeInput {
	return models.RecipeInput{
		Title:       ptr("Pancakes"),
		TimeMinutes: ptr(10),
		Price:       ptr(models.MustPrice("5.5")),
	}
}

func TestRecipeService_Create(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	in := validRecipeInput()
	in.Title = ptr("  Pancakes ")
	in.Tags = names("Vegan", "Dessert")

	m.expectTx()
	m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.RecipeDB) (*models.RecipeDB, error) {
			assert.Equal(t, int64(1), r.UserID)
			assert.Equal(t, "Pancakes", r.Title)
			assert.Equal(t, 10, r.TimeMinutes)
			assert.Equal(t, "5.50", r.Price.String())
			created := *r
			created.ID = 5
			return &created, nil
		})
	m.reconciler.EXPECT().Reconcile(gomock.Any(), int64(1), int64(5), in.Tags, nil, false).Return(nil)
	m.tags.EXPECT().ListByRecipes(gomock.Any(), []int64{5}).Return(map[int64][]models.NamedDB{
		5: {{ID: 10, Name: "Vegan"}, {ID: 11, Name: "Dessert"}},
	}, nil)
	m.ingredients.EXPECT().ListByRecipes(gomock.Any(), []int64{5}).Return(map[int64][]models.NamedDB{}, nil)
	m.publisher.EXPECT().Publish(ctx, int64(1), int64(5), models.RecipeCreated)

	recipe, err := svc.Create(ctx, 1, in)
	require.NoError(t, err)
	assert.Equal(t, int64(5), recipe.ID)
	assert.Len(t, recipe.Tags, 2)
	assert.NotNil(t, recipe.Ingredients)
	assert.Empty(t, recipe.Ingredients)
}

func TestRecipeService_CreateValidation(t *testing.T) {
	svc, _ := newRecipeService(t)

	_, err := svc.Create(context.Background(), 1, models.RecipeInput{
		Title: ptr(" "),
		Price: ptr(models.MustPrice("1000")),
		Tags:  names(""),
	})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{msgBlank}, ve.Fields["title"])
	assert.Equal(t, []string{msgRequired}, ve.Fields["time_minutes"])
	assert.Equal(t, []string{models.ErrPriceTooManyWhole.Error()}, ve.Fields["price"])
	assert.Equal(t, []string{msgBlank}, ve.Fields["tags.0.name"])
}

func TestRecipeService_TimeMinutesBounds(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
	}{
		{name: "negative", minutes: -1, want: msgMinValue},
		{name: "beyond integer column", minutes: 2147483648, want: msgMaxValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newRecipeService(t)

			in := validRecipeInput()
			in.TimeMinutes = ptr(tt.minutes)
			_, err := svc.Create(context.Background(), 1, in)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, []string{tt.want}, ve.Fields["time_minutes"])

			_, err = svc.Update(context.Background(), 1, 5, models.RecipeInput{TimeMinutes: ptr(tt.minutes)}, true)
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, []string{tt.want}, ve.Fields["time_minutes"])
		})
	}
}

func TestRecipeService_CreateForDeletedOwner(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	m.expectTx()
	m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, repositories.ErrMissingReference)

	_, err := svc.Create(ctx, 1, validRecipeInput())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRecipeService_CreateRollsBackOnReconcileError(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	m.expectTx()
	m.writer.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&models.RecipeDB{ID: 5, UserID: 1}, nil)
	m.reconciler.EXPECT().Reconcile(gomock.Any(), int64(1), int64(5), gomock.Any(), gomock.Any(), false).
		Return(errors.New("upsert failed"))

	_, err := svc.Create(ctx, 1, validRecipeInput())
	assert.EqualError(t, err, "upsert failed")
}

func TestRecipeService_Get(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	m.reader.EXPECT().GetByID(ctx, int64(2), int64(5)).Return(nil, sql.ErrNoRows)
	_, err := svc.Get(ctx, 2, 5)
	assert.ErrorIs(t, err, ErrNotFound)

	m.reader.EXPECT().GetByID(ctx, int64(1), int64(5)).Return(&models.RecipeDB{ID: 5, UserID: 1, Title: "Soup"}, nil)
	m.tags.EXPECT().ListByRecipes(ctx, []int64{5}).Return(nil, nil)
	m.ingredients.EXPECT().ListByRecipes(ctx, []int64{5}).Return(map[int64][]models.NamedDB{5: {{ID: 1, Name: "Salt"}}}, nil)

	recipe, err := svc.Get(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "Soup", recipe.Title)
	assert.Empty(t, recipe.Tags)
	assert.Equal(t, "Salt", recipe.Ingredients[0].Name)
}

func TestRecipeService_List(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)
	filter := models.RecipeFilter{TagIDs: []int64{1, 2}}

	m.reader.EXPECT().List(ctx, int64(1), filter).Return([]models.RecipeDB{{ID: 9}, {ID: 4}}, nil)
	m.tags.EXPECT().ListByRecipes(ctx, []int64{9, 4}).Return(map[int64][]models.NamedDB{
		9: {{ID: 1, Name: "a"}},
		4: {{ID: 2, Name: "b"}},
	}, nil)
	m.ingredients.EXPECT().ListByRecipes(ctx, []int64{9, 4}).Return(map[int64][]models.NamedDB{}, nil)

	recipes, err := svc.List(ctx, 1, filter)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, int64(9), recipes[0].ID)
	assert.Equal(t, "a", recipes[0].Tags[0].Name)
	assert.Equal(t, "b", recipes[1].Tags[0].Name)

	m.reader.EXPECT().List(ctx, int64(1), filter).Return(nil, errors.New("db error"))
	_, err = svc.List(ctx, 1, filter)
	assert.EqualError(t, err, "db error")
}

func TestRecipeService_PartialUpdateDetachesIngredients(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	existing := &models.RecipeDB{ID: 5, UserID: 1, Title: "Soup", TimeMinutes: 20, Price: models.MustPrice("3")}
	in := models.RecipeInput{Ingredients: names()}

	m.expectTx()
	m.reader.EXPECT().GetByID(gomock.Any(), int64(1), int64(5)).Return(existing, nil)
	m.writer.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.RecipeDB) (*models.RecipeDB, error) {
			assert.Equal(t, "Soup", r.Title)
			assert.Equal(t, 20, r.TimeMinutes)
			return r, nil
		})
	m.reconciler.EXPECT().Reconcile(gomock.Any(), int64(1), int64(5), nil, in.Ingredients, true).Return(nil)
	m.tags.EXPECT().ListByRecipes(gomock.Any(), []int64{5}).Return(map[int64][]models.NamedDB{5: {{ID: 1, Name: "Vegan"}}}, nil)
	m.ingredients.EXPECT().ListByRecipes(gomock.Any(), []int64{5}).Return(map[int64][]models.NamedDB{}, nil)
	m.publisher.EXPECT().Publish(ctx, int64(1), int64(5), models.RecipeUpdated)

	recipe, err := svc.Update(ctx, 1, 5, in, true)
	require.NoError(t, err)
	assert.Len(t, recipe.Tags, 1)
	assert.Empty(t, recipe.Ingredients)
}

func TestRecipeService_FullUpdateRequiresFields(t *testing.T) {
	svc, _ := newRecipeService(t)

	_, err := svc.Update(context.Background(), 1, 5, models.RecipeInput{Title: ptr("New")}, false)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "time_minutes")
	assert.Contains(t, ve.Fields, "price")
	assert.NotContains(t, ve.Fields, "title")
}

func TestRecipeService_UpdateNotOwned(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	m.expectTx()
	m.reader.EXPECT().GetByID(gomock.Any(), int64(2), int64(5)).Return(nil, sql.ErrNoRows)

	_, err := svc.Update(ctx, 2, 5, models.RecipeInput{Title: ptr("Stolen")}, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecipeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not owned", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.expectTx()
		m.reader.EXPECT().GetByID(gomock.Any(), int64(2), int64(5)).Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, 2, 5), ErrNotFound)
	})

	t.Run("removes image", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.expectTx()
		m.reader.EXPECT().GetByID(gomock.Any(), int64(1), int64(5)).Return(&models.RecipeDB{ID: 5, UserID: 1, Image: "/media/a.png"}, nil)
		m.writer.EXPECT().Delete(gomock.Any(), int64(1), int64(5)).Return(nil)
		m.images.EXPECT().Delete(ctx, "/media/a.png").Return(errors.New("gone"))
		m.publisher.EXPECT().Publish(ctx, int64(1), int64(5), models.RecipeDeleted)

		assert.NoError(t, svc.Delete(ctx, 1, 5))
	})

	t.Run("without image", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.expectTx()
		m.reader.EXPECT().GetByID(gomock.Any(), int64(1), int64(5)).Return(&models.RecipeDB{ID: 5, UserID: 1}, nil)
		m.writer.EXPECT().Delete(gomock.Any(), int64(1), int64(5)).Return(nil)
		m.publisher.EXPECT().Publish(ctx, int64(1), int64(5), models.RecipeDeleted)

		assert.NoError(t, svc.Delete(ctx, 1, 5))
	})
}

func TestRecipeService_UploadImage(t *testing.T) {
	ctx := context.Background()
	data := encodePNG(t)

	t.Run("success replaces previous image", func(t *testing.T) {
		svc, m := newRecipeService(t)

		m.reader.EXPECT().GetByID(ctx, int64(1), int64(5)).Return(&models.RecipeDB{ID: 5, UserID: 1, Image: "/media/old.png"}, nil)
		m.images.EXPECT().Save(ctx, gomock.Any(), "image/png", data).DoAndReturn(
			func(_ context.Context, key, _ string, _ []byte) (string, error) {
				assert.True(t, strings.HasPrefix(key, "uploads/recipe/5/"))
				assert.True(t, strings.HasSuffix(key, ".png"))
				return "/media/" + key, nil
			})
		m.writer.EXPECT().SetImage(ctx, int64(1), int64(5), gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ int64, ref string) (*models.RecipeDB, error) {
				return &models.RecipeDB{ID: 5, UserID: 1, Image: ref}, nil
			})
		m.images.EXPECT().Delete(ctx, "/media/old.png").Return(nil)
		m.publisher.EXPECT().Publish(ctx, int64(1), int64(5), models.RecipeImageUploaded)

		recipe, err := svc.UploadImage(ctx, 1, 5, data)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(recipe.Image, "/media/uploads/recipe/5/"))
	})

	t.Run("not an image", func(t *testing.T) {
		svc, _ := newRecipeService(t)

		_, err := svc.UploadImage(ctx, 1, 5, []byte("notimage"))
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, "image")
	})

	t.Run("not owned", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.reader.EXPECT().GetByID(ctx, int64(2), int64(5)).Return(nil, sql.ErrNoRows)

		_, err := svc.UploadImage(ctx, 2, 5, data)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("record failure removes the new file", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.reader.EXPECT().GetByID(ctx, int64(1), int64(5)).Return(&models.RecipeDB{ID: 5, UserID: 1}, nil)
		m.images.EXPECT().Save(ctx, gomock.Any(), "image/png", data).Return("/media/new.png", nil)
		m.writer.EXPECT().SetImage(ctx, int64(1), int64(5), "/media/new.png").Return(nil, errors.New("db error"))
		m.images.EXPECT().Delete(ctx, "/media/new.png").Return(nil)

		_, err := svc.UploadImage(ctx, 1, 5, data)
		assert.EqualError(t, err, "db error")
	})
}
