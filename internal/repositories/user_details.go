package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

type UserDetailsRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserDetailsRepository(db *sqlx.DB, txGetter TxGetter) *UserDetailsRepository {
	return &UserDetailsRepository{db: db, txGetter: txGetter}
}

// GetByUserID returns the details row of a user or sql.ErrNoRows.
func (r *UserDetailsRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserDetailsDB, error) {
	const query = `
		SELECT id, user_id, age, country, city, favorite_food
		FROM user_details
		WHERE user_id = $1
	`

	var details models.UserDetailsDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &details, query, userID)
	logQuery(query, []any{userID}, details, err)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// Save performs an UPSERT keyed by user_id: every column is replaced, nothing
// is merged with the previous row.
func (r *UserDetailsRepository) Save(ctx context.Context, d *models.UserDetailsDB) (*models.UserDetailsDB, error) {
	const query = `
		INSERT INTO user_details (user_id, age, country, city, favorite_food)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET age = EXCLUDED.age,
		              country = EXCLUDED.country,
		              city = EXCLUDED.city,
		              favorite_food = EXCLUDED.favorite_food
		RETURNING id, user_id, age, country, city, favorite_food
	`
	args := []any{d.UserID, d.Age, d.Country, d.City, d.FavoriteFood}

	var saved models.UserDetailsDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &saved, query, args...)
	logQuery(query, args, saved, err)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &saved, nil
}

// Update changes only the submitted columns of an existing row in a single
// statement. Missing details yield sql.ErrNoRows.
func (r *UserDetailsRepository) Update(ctx context.Context, userID int64, in models.UserDetailsInput) (*models.UserDetailsDB, error) {
	const query = `
		UPDATE user_details
		SET age = COALESCE($2, age),
		    country = COALESCE($3, country),
		    city = COALESCE($4, city),
		    favorite_food = COALESCE($5, favorite_food)
		WHERE user_id = $1
		RETURNING id, user_id, age, country, city, favorite_food
	`
	args := []any{userID, in.Age, in.Country, in.City, in.FavoriteFood}

	var updated models.UserDetailsDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &updated, query, args...)
	logQuery(query, args, updated, err)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
