package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/recipe-api/internal/db"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// --- Setup Postgres ---
func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	conn, err := db.Connect(ctx, db.DSN(host, port.Int(), "postgres", "secret", "testdb"), 20, 10)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(ctx, conn.DB))
	return conn
}

func createUser(t *testing.T, conn *sqlx.DB, email string) *models.UserDB {
	t.Helper()
	user, err := NewUserWriteRepository(conn, db.GetTxFromContext).Create(context.Background(), &models.UserDB{
		Email:        email,
		Name:         "Test",
		PasswordHash: "hash",
		IsActive:     true,
	})
	require.NoError(t, err)
	return user
}

func createRecipe(t *testing.T, conn *sqlx.DB, ownerID int64, title string) *models.RecipeDB {
	t.Helper()
	recipe, err := NewRecipeWriteRepository(conn, db.GetTxFromContext).Create(context.Background(), &models.RecipeDB{
		UserID:      ownerID,
		Title:       title,
		TimeMinutes: 10,
		Price:       models.MustPrice("5.50"),
	})
	require.NoError(t, err)
	return recipe
}

func TestPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	conn := setupPostgres(t)
	ctx := context.Background()

	userRead := NewUserReadRepository(conn, db.GetTxFromContext)
	userWrite := NewUserWriteRepository(conn, db.GetTxFromContext)
	details := NewUserDetailsRepository(conn, db.GetTxFromContext)
	recipeRead := NewRecipeReadRepository(conn, db.GetTxFromContext)
	recipeWrite := NewRecipeWriteRepository(conn, db.GetTxFromContext)
	tags := NewTagRepository(conn, db.GetTxFromContext)
	ingredients := NewIngredientRepository(conn, db.GetTxFromContext)

	t.Run("users", func(t *testing.T) {
		user := createUser(t, conn, "alice@example.com")

		got, err := userRead.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.True(t, got.IsActive)

		_, err = userWrite.Create(ctx, &models.UserDB{Email: "alice@example.com", PasswordHash: "x"})
		assert.ErrorIs(t, err, ErrDuplicate)

		got.Name = "Alice"
		updated, err := userWrite.Update(ctx, got)
		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.Name)

		_, err = userRead.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("user details upsert replaces the row", func(t *testing.T) {
		user := createUser(t, conn, "details@example.com")

		first, err := details.Save(ctx, &models.UserDetailsDB{UserID: user.ID, Age: 32, Country: "Country", City: "City", FavoriteFood: "Pizza"})
		require.NoError(t, err)

		second, err := details.Save(ctx, &models.UserDetailsDB{UserID: user.ID, Age: 25, City: "Dubai"})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		got, err := details.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 25, got.Age)
		assert.Equal(t, "Dubai", got.City)
		assert.Equal(t, "", got.Country)
		assert.Equal(t, "", got.FavoriteFood)
	})

	t.Run("get or create never duplicates", func(t *testing.T) {
		user := createUser(t, conn, "tags@example.com")

		vegan, err := tags.GetOrCreate(ctx, user.ID, "Vegan")
		require.NoError(t, err)
		again, err := tags.GetOrCreate(ctx, user.ID, "Vegan")
		require.NoError(t, err)
		assert.Equal(t, vegan.ID, again.ID)

		other, err := tags.GetOrCreate(ctx, user.ID, "vegan")
		require.NoError(t, err)
		assert.NotEqual(t, vegan.ID, other.ID, "names match case-sensitively")

		var wg sync.WaitGroup
		ids := make([]int64, 8)
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				e, err := tags.GetOrCreate(ctx, user.ID, "Concurrent")
				assert.NoError(t, err)
				if e != nil {
					ids[i] = e.ID
				}
			}(i)
		}
		wg.Wait()
		for _, id := range ids {
			assert.Equal(t, ids[0], id)
		}

		var count int
		require.NoError(t, conn.Get(&count, `SELECT COUNT(*) FROM tags WHERE user_id = $1 AND name = 'Concurrent'`, user.ID))
		assert.Equal(t, 1, count)
	})

	t.Run("recipe listing is scoped and filtered", func(t *testing.T) {
		owner := createUser(t, conn, "owner@example.com")
		other := createUser(t, conn, "other@example.com")

		r1 := createRecipe(t, conn, owner.ID, "Thai curry")
		r2 := createRecipe(t, conn, owner.ID, "Tahini")
		r3 := createRecipe(t, conn, owner.ID, "Fish and chips")
		foreign := createRecipe(t, conn, other.ID, "Foreign")

		vegan, err := tags.GetOrCreate(ctx, owner.ID, "Vegan")
		require.NoError(t, err)
		veg, err := tags.GetOrCreate(ctx, owner.ID, "Vegetarian")
		require.NoError(t, err)
		require.NoError(t, tags.Attach(ctx, r1.ID, vegan.ID))
		require.NoError(t, tags.Attach(ctx, r1.ID, veg.ID))
		require.NoError(t, tags.Attach(ctx, r1.ID, veg.ID))
		require.NoError(t, tags.Attach(ctx, r2.ID, veg.ID))

		all, err := recipeRead.List(ctx, owner.ID, models.RecipeFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int64{r3.ID, r2.ID, r1.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

		filtered, err := recipeRead.List(ctx, owner.ID, models.RecipeFilter{TagIDs: []int64{vegan.ID, veg.ID}})
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		assert.Equal(t, r2.ID, filtered[0].ID)
		assert.Equal(t, r1.ID, filtered[1].ID)

		_, err = recipeRead.GetByID(ctx, owner.ID, foreign.ID)
		assert.ErrorIs(t, err, sql.ErrNoRows)

		assoc, err := tags.ListByRecipes(ctx, []int64{r1.ID, r2.ID, r3.ID})
		require.NoError(t, err)
		assert.Len(t, assoc[r1.ID], 2)
		assert.Len(t, assoc[r2.ID], 1)
		assert.Empty(t, assoc[r3.ID])

		require.NoError(t, tags.Clear(ctx, r1.ID))
		assoc, err = tags.ListByRecipes(ctx, []int64{r1.ID})
		require.NoError(t, err)
		assert.Empty(t, assoc[r1.ID])
	})

	t.Run("tag and ingredient filters combine with and", func(t *testing.T) {
		owner := createUser(t, conn, "filters@example.com")

		both := createRecipe(t, conn, owner.ID, "Vegan omelette")
		tagOnly := createRecipe(t, conn, owner.ID, "Vegan salad")
		ingredientOnly := createRecipe(t, conn, owner.ID, "Fried eggs")
		neither := createRecipe(t, conn, owner.ID, "Plain rice")

		vegan, err := tags.GetOrCreate(ctx, owner.ID, "Vegan")
		require.NoError(t, err)
		eggs, err := ingredients.GetOrCreate(ctx, owner.ID, "Eggs")
		require.NoError(t, err)
		tofu, err := ingredients.GetOrCreate(ctx, owner.ID, "Tofu")
		require.NoError(t, err)

		require.NoError(t, tags.Attach(ctx, both.ID, vegan.ID))
		require.NoError(t, tags.Attach(ctx, tagOnly.ID, vegan.ID))
		require.NoError(t, ingredients.Attach(ctx, both.ID, eggs.ID))
		require.NoError(t, ingredients.Attach(ctx, both.ID, tofu.ID))
		require.NoError(t, ingredients.Attach(ctx, ingredientOnly.ID, eggs.ID))

		ids := func(list []models.RecipeDB) []int64 {
			out := make([]int64, 0, len(list))
			for _, r := range list {
				out = append(out, r.ID)
			}
			return out
		}

		byIngredient, err := recipeRead.List(ctx, owner.ID, models.RecipeFilter{IngredientIDs: []int64{eggs.ID, tofu.ID}})
		require.NoError(t, err)
		assert.Equal(t, []int64{ingredientOnly.ID, both.ID}, ids(byIngredient), "each recipe listed once")

		combined, err := recipeRead.List(ctx, owner.ID, models.RecipeFilter{
			TagIDs:        []int64{vegan.ID},
			IngredientIDs: []int64{eggs.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{both.ID}, ids(combined))
		assert.NotContains(t, ids(combined), tagOnly.ID)
		assert.NotContains(t, ids(combined), ingredientOnly.ID)
		assert.NotContains(t, ids(combined), neither.ID)

		none, err := recipeRead.List(ctx, owner.ID, models.RecipeFilter{IngredientIDs: []int64{tofu.ID + 1000}})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("user details update touches only submitted columns", func(t *testing.T) {
		user := createUser(t, conn, "patch@example.com")
		_, err := details.Save(ctx, &models.UserDetailsDB{UserID: user.ID, Age: 32, Country: "UAE", City: "Dubai", FavoriteFood: "Sushi"})
		require.NoError(t, err)

		age, city := 33, "Abu Dhabi"
		updated, err := details.Update(ctx, user.ID, models.UserDetailsInput{Age: &age})
		require.NoError(t, err)
		assert.Equal(t, 33, updated.Age)
		assert.Equal(t, "Dubai", updated.City)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := details.Update(ctx, user.ID, models.UserDetailsInput{City: &city})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			food := "Pizza"
			_, err := details.Update(ctx, user.ID, models.UserDetailsInput{FavoriteFood: &food})
			assert.NoError(t, err)
		}()
		wg.Wait()

		got, err := details.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 33, got.Age)
		assert.Equal(t, "UAE", got.Country)
		assert.Equal(t, "Abu Dhabi", got.City)
		assert.Equal(t, "Pizza", got.FavoriteFood)

		missing := createUser(t, conn, "nodetails@example.com")
		_, err = details.Update(ctx, missing.ID, models.UserDetailsInput{Age: &age})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("writes for a deleted user report a missing reference", func(t *testing.T) {
		user := createUser(t, conn, "gone@example.com")
		require.NoError(t, userWrite.Delete(ctx, user.ID))

		_, err := recipeWrite.Create(ctx, &models.RecipeDB{UserID: user.ID, Title: "Ghost", Price: models.MustPrice("1")})
		assert.ErrorIs(t, err, ErrMissingReference)

		_, err = tags.GetOrCreate(ctx, user.ID, "Ghost")
		assert.ErrorIs(t, err, ErrMissingReference)

		_, err = details.Save(ctx, &models.UserDetailsDB{UserID: user.ID, Age: 1})
		assert.ErrorIs(t, err, ErrMissingReference)
	})

	t.Run("assigned only lists each attached entity once", func(t *testing.T) {
		owner := createUser(t, conn, "ingredients@example.com")
		r1 := createRecipe(t, conn, owner.ID, "Eggs benedict")
		r2 := createRecipe(t, conn, owner.ID, "Herb eggs")

		eggs, err := ingredients.GetOrCreate(ctx, owner.ID, "Eggs")
		require.NoError(t, err)
		_, err = ingredients.GetOrCreate(ctx, owner.ID, "Lentils")
		require.NoError(t, err)
		require.NoError(t, ingredients.Attach(ctx, r1.ID, eggs.ID))
		require.NoError(t, ingredients.Attach(ctx, r2.ID, eggs.ID))

		assigned, err := ingredients.List(ctx, owner.ID, models.NamedFilter{AssignedOnly: true})
		require.NoError(t, err)
		require.Len(t, assigned, 1)
		assert.Equal(t, "Eggs", assigned[0].Name)

		all, err := ingredients.List(ctx, owner.ID, models.NamedFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Lentils", all[0].Name)
		assert.Equal(t, "Eggs", all[1].Name)
	})

	t.Run("rename and delete are owner scoped", func(t *testing.T) {
		owner := createUser(t, conn, "rename@example.com")
		intruder := createUser(t, conn, "intruder@example.com")

		salt, err := ingredients.GetOrCreate(ctx, owner.ID, "Salt")
		require.NoError(t, err)
		_, err = ingredients.GetOrCreate(ctx, owner.ID, "Pepper")
		require.NoError(t, err)

		_, err = ingredients.Rename(ctx, intruder.ID, salt.ID, "Sugar")
		assert.ErrorIs(t, err, sql.ErrNoRows)

		_, err = ingredients.Rename(ctx, owner.ID, salt.ID, "Pepper")
		assert.ErrorIs(t, err, ErrDuplicate)

		renamed, err := ingredients.Rename(ctx, owner.ID, salt.ID, "Sea salt")
		require.NoError(t, err)
		assert.Equal(t, "Sea salt", renamed.Name)

		assert.ErrorIs(t, ingredients.Delete(ctx, intruder.ID, salt.ID), sql.ErrNoRows)
		assert.NoError(t, ingredients.Delete(ctx, owner.ID, salt.ID))
	})

	t.Run("recipe writes", func(t *testing.T) {
		owner := createUser(t, conn, "writer@example.com")
		intruder := createUser(t, conn, "thief@example.com")
		recipe := createRecipe(t, conn, owner.ID, "Bread")
		assert.Equal(t, "5.50", recipe.Price.String())

		recipe.Title = "Sourdough"
		recipe.Price = models.MustPrice("7.25")
		updated, err := recipeWrite.Update(ctx, recipe)
		require.NoError(t, err)
		assert.Equal(t, "Sourdough", updated.Title)
		assert.Equal(t, "7.25", updated.Price.String())

		stolen := *recipe
		stolen.UserID = intruder.ID
		_, err = recipeWrite.Update(ctx, &stolen)
		assert.ErrorIs(t, err, sql.ErrNoRows)

		withImage, err := recipeWrite.SetImage(ctx, owner.ID, recipe.ID, "uploads/recipe/1/a.png")
		require.NoError(t, err)
		assert.Equal(t, "uploads/recipe/1/a.png", withImage.Image)

		assert.ErrorIs(t, recipeWrite.Delete(ctx, intruder.ID, recipe.ID), sql.ErrNoRows)
		assert.NoError(t, recipeWrite.Delete(ctx, owner.ID, recipe.ID))
	})

	t.Run("deleting a user cascades", func(t *testing.T) {
		user := createUser(t, conn, "cascade@example.com")
		recipe := createRecipe(t, conn, user.ID, "Soup")
		tag, err := tags.GetOrCreate(ctx, user.ID, "Warm")
		require.NoError(t, err)
		require.NoError(t, tags.Attach(ctx, recipe.ID, tag.ID))
		_, err = details.Save(ctx, &models.UserDetailsDB{UserID: user.ID, Age: 1})
		require.NoError(t, err)

		require.NoError(t, userWrite.Delete(ctx, user.ID))

		for _, table := range []string{"recipes", "tags", "user_details"} {
			var count int
			require.NoError(t, conn.Get(&count, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, table), user.ID))
			assert.Zero(t, count, table)
		}
		assert.ErrorIs(t, userWrite.Delete(ctx, user.ID), sql.ErrNoRows)
	})

	t.Run("writes inside a rolled back transaction vanish", func(t *testing.T) {
		user := createUser(t, conn, "rollback@example.com")
		tr := db.NewTransactor(conn)

		err := tr.WithTx(ctx, func(ctx context.Context) error {
			if _, err := tags.GetOrCreate(ctx, user.ID, "Ghost"); err != nil {
				return err
			}
			return fmt.Errorf("abort")
		})
		assert.Error(t, err)

		list, err := tags.List(ctx, user.ID, models.NamedFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
