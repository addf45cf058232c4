package repositories

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// deleteOne runs a DELETE expected to hit exactly one row and reports
// sql.ErrNoRows when nothing matched.
func deleteOne(ctx context.Context, ex sqlx.ExtContext, query string, args ...any) error {
	res, err := ex.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
