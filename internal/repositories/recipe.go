package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

const recipeColumns = `r.id, r.user_id, r.title, r.description, r.time_minutes, r.price, r.link, r.image, r.created_at, r.updated_at`

// RecipeReadRepository handles owner-scoped recipe reads.
type RecipeReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeReadRepository(db *sqlx.DB, txGetter TxGetter) *RecipeReadRepository {
	return &RecipeReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the recipe when it exists and belongs to ownerID, sql.ErrNoRows otherwise.
func (r *RecipeReadRepository) GetByID(ctx context.Context, ownerID, id int64) (*models.RecipeDB, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.id = $1 AND r.user_id = $2`

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &recipe, query, id, ownerID)
	logQuery(query, []any{id, ownerID}, recipe.ID, err)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns the owner's recipes, newest first. Tag and ingredient filters
// match when any associated id is listed; both filters must match when both
// are given. Subqueries keep each recipe to a single row.
func (r *RecipeReadRepository) List(ctx context.Context, ownerID int64, filter models.RecipeFilter) ([]models.RecipeDB, error) {
	clauses := []string{"r.user_id = ?"}
	args := []any{ownerID}

	if len(filter.TagIDs) > 0 {
		clauses = append(clauses, "r.id IN (SELECT rt.recipe_id FROM recipe_tags rt WHERE rt.tag_id IN (?))")
		args = append(args, filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		clauses = append(clauses, "r.id IN (SELECT ri.recipe_id FROM recipe_ingredients ri WHERE ri.ingredient_id IN (?))")
		args = append(args, filter.IngredientIDs)
	}

	query, args, err := sqlx.In(
		`SELECT `+recipeColumns+` FROM recipes r WHERE `+strings.Join(clauses, " AND ")+` ORDER BY r.id DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}

	ex := executor(ctx, r.db, r.txGetter)
	query = ex.Rebind(query)

	recipes := []models.RecipeDB{}
	err = sqlx.SelectContext(ctx, ex, &recipes, query, args...)
	logQuery(query, args, len(recipes), err)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// RecipeWriteRepository handles owner-scoped recipe writes.
type RecipeWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeWriteRepository(db *sqlx.DB, txGetter TxGetter) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a recipe owned by recipe.UserID.
func (r *RecipeWriteRepository) Create(ctx context.Context, recipe *models.RecipeDB) (*models.RecipeDB, error) {
	query := `
		INSERT INTO recipes AS r (user_id, title, description, time_minutes, price, link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + recipeColumns
	args := []any{recipe.UserID, recipe.Title, recipe.Description, recipe.TimeMinutes, recipe.Price, recipe.Link}

	var created models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &created, query, args...)
	logQuery(query, args, created.ID, err)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

// Update overwrites the scalar fields of a recipe. The owner is part of the
// WHERE clause, so a foreign recipe yields sql.ErrNoRows.
func (r *RecipeWriteRepository) Update(ctx context.Context, recipe *models.RecipeDB) (*models.RecipeDB, error) {
	query := `
		UPDATE recipes AS r
		SET title = $3, description = $4, time_minutes = $5, price = $6, link = $7, updated_at = NOW()
		WHERE r.id = $1 AND r.user_id = $2
		RETURNING ` + recipeColumns
	args := []any{recipe.ID, recipe.UserID, recipe.Title, recipe.Description, recipe.TimeMinutes, recipe.Price, recipe.Link}

	var updated models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &updated, query, args...)
	logQuery(query, args, updated.ID, err)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetImage records the storage reference of the recipe image.
func (r *RecipeWriteRepository) SetImage(ctx context.Context, ownerID, id int64, image string) (*models.RecipeDB, error) {
	query := `
		UPDATE recipes AS r
		SET image = $3, updated_at = NOW()
		WHERE r.id = $1 AND r.user_id = $2
		RETURNING ` + recipeColumns
	args := []any{id, ownerID, image}

	var updated models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &updated, query, args...)
	logQuery(query, args, updated.ID, err)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an owned recipe and, through cascades, its associations.
func (r *RecipeWriteRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query := `DELETE FROM recipes WHERE id = $1 AND user_id = $2`
	return deleteOne(ctx, executor(ctx, r.db, r.txGetter), query, id, ownerID)
}
