// Package repositories is the entity store: owner-scoped SQL access to users,
// user details, recipes, tags and ingredients, plus the Redis token blacklist.
package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/recipe-api/internal/logger"
)

// ErrDuplicate is returned when a write hits a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// ErrMissingReference is returned when a write references a row that no longer
// exists, such as the owner of a recipe deleted concurrently.
var ErrMissingReference = errors.New("referenced row does not exist")

// PostgreSQL SQLSTATE codes.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// TxGetter returns the transaction carried by ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor returns the transaction from ctx when there is one, db otherwise.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// mapWriteError turns unique violations into ErrDuplicate and foreign key
// violations into ErrMissingReference.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return ErrDuplicate
		case foreignKeyViolation:
			return ErrMissingReference
		}
	}
	return err
}

// logQuery logs query, args, result and error with the query on a single line.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
