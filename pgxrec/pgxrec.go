/*
Package pgxrec runs statements synthesized by `sqlrec` over pgx connections,
pools and transactions. It's the pgx counterpart of `sqlrec.Insert`,
`sqlrec.Update` and `sqlrec.Upsert`, which work with "database/sql".

Following the pgx convention, every function returns a `pgx.Row`. Errors of
statement synthesis or argument binding are deferred until `Row.Scan`, and the
database is never contacted in that case.
*/
package pgxrec

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mitranim/sqlrec"
)

/*
Subset of `*pgx.Conn`, `*pgxpool.Pool` and `pgx.Tx` used by this package.
*/
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Inserts the record and returns the row produced by `RETURNING`.
func Insert(ctx context.Context, db Querier, def sqlrec.Def, rec any) pgx.Row {
	return QueryRow(ctx, db, def, sqlrec.OpInsert, rec)
}

// Updates the record by its natural key and returns the row produced by
// `RETURNING`.
func Update(ctx context.Context, db Querier, def sqlrec.Def, rec any) pgx.Row {
	return QueryRow(ctx, db, def, sqlrec.OpUpdate, rec)
}

// Inserts or updates the record and returns the row produced by `RETURNING`.
func Upsert(ctx context.Context, db Querier, def sqlrec.Def, rec any) pgx.Row {
	return QueryRow(ctx, db, def, sqlrec.OpUpsert, rec)
}

/*
Synthesizes the statement of the given kind, binds the record's values, and
runs the query. The definition must use `sqlrec.StyleOrdinal`, which is what
Postgres expects; otherwise the returned row reports
`sqlrec.ErrInvalidPlaceholder`.
*/
func QueryRow(ctx context.Context, db Querier, def sqlrec.Def, op sqlrec.Op, rec any) pgx.Row {
	if style := def.Config().Style; style != sqlrec.StyleOrdinal {
		return errRow{sqlrec.Err{
			Code:  sqlrec.ErrCodeInvalidPlaceholder,
			While: `running pgx query for ` + op.String(),
			Cause: fmt.Errorf(`pgx requires %v placeholders, got %v`, sqlrec.StyleOrdinal, style),
		}}
	}

	text, args, err := sqlrec.Prepare(def, op, rec)
	if err != nil {
		return errRow{err}
	}
	return db.QueryRow(ctx, text, args...)
}

// Implements `pgx.Row` by reporting a deferred error.
type errRow struct{ err error }

func (self errRow) Scan(...any) error { return self.err }
