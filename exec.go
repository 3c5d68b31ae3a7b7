package sqlrec

import (
	"context"
	"database/sql"
	"log/slog"
)

/*
Logger used by the execution helpers. Nil means `slog.Default()`. Statements
and their arguments are logged at debug level.
*/
var Logger *slog.Logger

func logger() *slog.Logger {
	if Logger != nil {
		return Logger
	}
	return slog.Default()
}

/*
Subset of `*sql.DB`, `*sql.Tx` and `*sql.Conn` used by the execution helpers.
*/
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

/*
Inserts the record and returns the row produced by `RETURNING`. Scanning the
row is up to the caller:

	var out Car
	row, err := sqlrec.Insert(ctx, db, carDef, car)
	if err != nil {
		return err
	}
	err = row.Scan(&out.Id, &out.Name, &out.Color)

Errors of statement synthesis or argument binding are returned immediately,
before touching the database. Execution errors are reported by `Row.Scan`.
*/
func Insert(ctx context.Context, db QueryRower, def Def, rec any) (*sql.Row, error) {
	return QueryRow(ctx, db, def, OpInsert, rec)
}

// Same as `Insert` but for UPDATE.
func Update(ctx context.Context, db QueryRower, def Def, rec any) (*sql.Row, error) {
	return QueryRow(ctx, db, def, OpUpdate, rec)
}

// Same as `Insert` but for UPSERT.
func Upsert(ctx context.Context, db QueryRower, def Def, rec any) (*sql.Row, error) {
	return QueryRow(ctx, db, def, OpUpsert, rec)
}

// Synthesizes the statement of the given kind, binds the record's values, and
// runs the query.
func QueryRow(ctx context.Context, db QueryRower, def Def, op Op, rec any) (*sql.Row, error) {
	text, args, err := Prepare(def, op, rec)
	if err != nil {
		return nil, err
	}

	logger().DebugContext(ctx, `sqlrec: query`,
		`op`, op.String(),
		`table`, def.Table(),
		`query`, text,
		`args`, args,
	)
	return db.QueryRowContext(ctx, text, args...), nil
}

/*
Synthesizes the statement of the given kind and returns its text with the
record's values in binding order. Go database drivers tend to require
`string, []any` as inputs for queries and statements.
*/
func Prepare(def Def, op Op, rec any) (string, []any, error) {
	stmt, err := def.Statement(op)
	if err != nil {
		return ``, nil, err
	}

	args, err := stmt.Args(rec)
	if err != nil {
		return ``, nil, err
	}
	return stmt.Text, args, nil
}
