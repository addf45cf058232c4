package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// namedTable describes where a named entity kind lives.
type namedTable struct {
	table      string // tags | ingredients
	joinTable  string // recipe_tags | recipe_ingredients
	joinColumn string // tag_id | ingredient_id
}

var (
	tagTable        = namedTable{table: "tags", joinTable: "recipe_tags", joinColumn: "tag_id"}
	ingredientTable = namedTable{table: "ingredients", joinTable: "recipe_ingredients", joinColumn: "ingredient_id"}
)

// NamedRepository stores tags or ingredients and their recipe associations.
// One type serves both kinds; the constructor picks the tables.
type NamedRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
	t        namedTable
}

// NewTagRepository returns a NamedRepository over tags.
func NewTagRepository(db *sqlx.DB, txGetter TxGetter) *NamedRepository {
	return &NamedRepository{db: db, txGetter: txGetter, t: tagTable}
}

// NewIngredientRepository returns a NamedRepository over ingredients.
func NewIngredientRepository(db *sqlx.DB, txGetter TxGetter) *NamedRepository {
	return &NamedRepository{db: db, txGetter: txGetter, t: ingredientTable}
}

// GetOrCreate resolves (ownerID, name) to a row in one statement. The no-op
// DO UPDATE makes RETURNING yield the existing row on conflict, so concurrent
// callers naming the same new entity end up with the same id.
func (r *NamedRepository) GetOrCreate(ctx context.Context, ownerID int64, name string) (*models.NamedDB, error) {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, name)
		DO UPDATE SET name = EXCLUDED.name
		RETURNING id, user_id, name
	`, r.t.table)

	var entity models.NamedDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &entity, query, ownerID, name)
	logQuery(query, []any{ownerID, name}, entity.ID, err)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &entity, nil
}

// GetByID returns an owned entity or sql.ErrNoRows.
func (r *NamedRepository) GetByID(ctx context.Context, ownerID, id int64) (*models.NamedDB, error) {
	query := fmt.Sprintf(`SELECT id, user_id, name FROM %s WHERE id = $1 AND user_id = $2`, r.t.table)

	var entity models.NamedDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &entity, query, id, ownerID)
	logQuery(query, []any{id, ownerID}, entity.ID, err)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns the owner's entities ordered by name descending. With
// AssignedOnly only entities attached to at least one recipe are returned,
// each once.
func (r *NamedRepository) List(ctx context.Context, ownerID int64, filter models.NamedFilter) ([]models.NamedDB, error) {
	query := fmt.Sprintf(`SELECT e.id, e.user_id, e.name FROM %s e WHERE e.user_id = $1`, r.t.table)
	if filter.AssignedOnly {
		query += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM %s j WHERE j.%s = e.id)`, r.t.joinTable, r.t.joinColumn)
	}
	query += ` ORDER BY e.name DESC, e.id DESC`

	entities := []models.NamedDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &entities, query, ownerID)
	logQuery(query, []any{ownerID, filter.AssignedOnly}, len(entities), err)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// Rename changes the name of an owned entity. Renaming onto a name the owner
// already uses yields ErrDuplicate.
func (r *NamedRepository) Rename(ctx context.Context, ownerID, id int64, name string) (*models.NamedDB, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $3
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name
	`, r.t.table)

	var entity models.NamedDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &entity, query, id, ownerID, name)
	logQuery(query, []any{id, ownerID, name}, entity.ID, err)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &entity, nil
}

// Delete removes an owned entity and detaches it from every recipe.
func (r *NamedRepository) Delete(ctx context.Context, ownerID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.t.table)
	return deleteOne(ctx, executor(ctx, r.db, r.txGetter), query, id, ownerID)
}

// Attach adds entityID to the recipe's association set; attaching twice is a no-op.
func (r *NamedRepository) Attach(ctx context.Context, recipeID, entityID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (recipe_id, %s) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.t.joinTable, r.t.joinColumn)

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, recipeID, entityID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{recipeID, entityID}, rowsAffected, err)
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Clear detaches every entity of this kind from the recipe.
func (r *NamedRepository) Clear(ctx context.Context, recipeID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE recipe_id = $1`, r.t.joinTable)

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, recipeID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{recipeID}, rowsAffected, err)
	return err
}

// ListByRecipes returns the associated entities of every given recipe keyed by
// recipe id, each set ordered by entity id.
func (r *NamedRepository) ListByRecipes(ctx context.Context, recipeIDs []int64) (map[int64][]models.NamedDB, error) {
	result := make(map[int64][]models.NamedDB, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT j.recipe_id, e.id, e.user_id, e.name
		FROM %s e
		JOIN %s j ON j.%s = e.id
		WHERE j.recipe_id IN (?)
		ORDER BY j.recipe_id, e.id
	`, r.t.table, r.t.joinTable, r.t.joinColumn), recipeIDs)
	if err != nil {
		return nil, err
	}

	ex := executor(ctx, r.db, r.txGetter)
	query = ex.Rebind(query)

	var rows []struct {
		RecipeID int64 `db:"recipe_id"`
		models.NamedDB
	}
	err = sqlx.SelectContext(ctx, ex, &rows, query, args...)
	logQuery(query, args, len(rows), err)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], row.NamedDB)
	}
	return result, nil
}
