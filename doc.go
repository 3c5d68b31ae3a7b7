/*
SQL Record: synthesizes INSERT, UPDATE and UPSERT statements for record types,
together with the exact order in which the record's values must be bound to
the statement's parameters. Oriented towards Postgres; also supports SQLite
via anonymous "?" parameters.

Key Features

• Statements are built from field metadata only. Values never become part of
the text: every value is a positional parameter.

• Placeholders are numbered across clauses: the SET clause of an UPSERT
continues after its VALUES clause, the WHERE clause of an UPDATE continues
after its SET clause. The count always starts at 1.

• Output is deterministic: columns always follow the declaration order of the
record, regardless of the order of names in the configuration.

• Misconfiguration is an error, never a silent no-op: skip and key sets may only
name declared fields, and statements with empty clauses are rejected.

• Derives record schemas from structs tagged with `db`, and binding values from
struct instances.

Pipeline

Every statement is produced by three pure stages. `Classify` partitions the
fields into the columns of each clause. `Allocate` assigns ordinals to the
columns of all clauses of one statement. The synthesizer (`Def.Insert`,
`Def.Update`, `Def.Upsert`) renders the text and the binding order from them.
None of the stages has state, so definitions may be shared between goroutines.

Identifiers

Table and column names are emitted verbatim unless `Config.Quote` is set. They
must come from trusted record metadata: this package is a template compiler
over field metadata, not a sanitizer of arbitrary input.

Examples

See `Def.Insert`, `Def.Update`, `Def.Upsert`, `Stmt.Args`. For pgx, see the
sibling package "pgxrec". For ahead-of-time generation, see "cmd/sqlrecgen".
*/
package sqlrec
