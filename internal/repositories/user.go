package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

const userColumns = `id, email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at`

type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with the given email or sql.ErrNoRows.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, email)
	logQuery(query, []any{email}, user.ID, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user with the given id or sql.ErrNoRows.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, id)
	logQuery(query, []any{id}, user.ID, err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a user. A taken email yields ErrDuplicate.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.UserDB) (*models.UserDB, error) {
	query := `
		INSERT INTO users (email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns

	var created models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &created, query,
		user.Email, user.Name, user.PasswordHash, user.IsActive, user.IsStaff, user.IsSuperuser)
	logQuery(query, []any{user.Email, user.Name, user.IsActive, user.IsStaff, user.IsSuperuser}, created.ID, err)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &created, nil
}

// Update overwrites the mutable fields of an existing user.
func (r *UserWriteRepository) Update(ctx context.Context, user *models.UserDB) (*models.UserDB, error) {
	query := `
		UPDATE users
		SET email = $2, name = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var updated models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &updated, query,
		user.ID, user.Email, user.Name, user.PasswordHash)
	logQuery(query, []any{user.ID, user.Email, user.Name}, updated.ID, err)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &updated, nil
}

// Delete removes a user; owned rows go with it through ON DELETE CASCADE.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	return deleteOne(ctx, executor(ctx, r.db, r.txGetter), query, id)
}
