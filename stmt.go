package sqlrec

// Statement kind synthesized by `Statement` and `Def.Statement`.
type Op byte

const (
	OpInsert Op = iota
	OpUpdate
	OpUpsert
)

// Implement `fmt.Stringer`.
func (self Op) String() string {
	switch self {
	case OpInsert:
		return `insert`
	case OpUpdate:
		return `update`
	case OpUpsert:
		return `upsert`
	default:
		return `unknown`
	}
}

/*
Synthesized statement: SQL text plus its binding order. `.Fields[n]` is the
field whose value must be bound to the `n+1`th parameter. A field may appear
more than once: an UPSERT binds its SET columns a second time.

Immutable by convention. See `Stmt.Args` for extracting values in binding
order.
*/
type Stmt struct {
	Text   string
	Fields []string
}

// Implement `fmt.Stringer`.
func (self Stmt) String() string { return self.Text }

// Shortcut for `Define` followed by `Def.Insert`.
func InsertStatement(schema Schema, conf Config) (Stmt, error) {
	return Statement(schema, conf, OpInsert)
}

// Shortcut for `Define` followed by `Def.Update`.
func UpdateStatement(schema Schema, conf Config) (Stmt, error) {
	return Statement(schema, conf, OpUpdate)
}

// Shortcut for `Define` followed by `Def.Upsert`.
func UpsertStatement(schema Schema, conf Config) (Stmt, error) {
	return Statement(schema, conf, OpUpsert)
}

/*
Shortcut for `Define` followed by `Def.Statement`. Note that this validates the
entire configuration, including sets not consulted by the requested statement.
*/
func Statement(schema Schema, conf Config, op Op) (Stmt, error) {
	def, err := Define(schema, conf)
	if err != nil {
		return Stmt{}, err
	}
	return def.Statement(op)
}

// Synthesizes the statement of the given kind.
func (self Def) Statement(op Op) (Stmt, error) {
	switch op {
	case OpInsert:
		return self.Insert()
	case OpUpdate:
		return self.Update()
	case OpUpsert:
		return self.Upsert()
	default:
		return Stmt{}, ErrInvalidInput.while(`synthesizing statement`).because(errf(`unknown statement kind %d`, op))
	}
}

/*
Synthesizes an INSERT. For a record `[id name color]` with default
configuration and table `car`:

	INSERT INTO car ( name,color ) VALUES ( $1,$2 ) RETURNING *

Binding order: `[name color]`.
*/
func (self Def) Insert() (out Stmt, err error) {
	defer rec(&err)
	const while = `synthesizing insert`

	cols := self.cols(while, KindInsert, `insert columns`)
	alloc := Allocate(cols)

	bui := self.bui(alloc.Len())
	self.appendInsert(&bui, cols, alloc.Group(0))
	self.appendReturning(&bui)
	return bui.Reify(), nil
}

/*
Synthesizes an UPDATE. The SET clause is numbered first, the WHERE clause
continues after it. For a record `[id name color]` with default configuration
and table `car`:

	UPDATE car SET name=$1,color=$2 WHERE id=$3 RETURNING *

Binding order: `[name color id]`. Multiple update-by fields are joined with
`AND`.
*/
func (self Def) Update() (out Stmt, err error) {
	defer rec(&err)
	const while = `synthesizing update`

	set := self.cols(while, KindUpdateSet, `SET assignments`)
	by := self.cols(while, KindUpdateBy, `WHERE keys`)
	alloc := Allocate(set, by)

	bui := self.bui(alloc.Len())
	bui.Str(`UPDATE `)
	bui.Ident(self.conf.Table)
	bui.Str(` SET `)
	bui.Assigns(set, alloc.Group(0), `,`)
	bui.Str(` WHERE `)
	bui.Assigns(by, alloc.Group(1), ` AND `)
	self.appendReturning(&bui)
	return bui.Reify(), nil
}

/*
Synthesizes an UPSERT: an INSERT with an `ON CONFLICT ... DO UPDATE` clause.
The SET clause reuses the UPDATE classification, but its parameters continue
after the VALUES clause. The conflict target lists column names, never
parameters. For a record `[id name color]` with default configuration and table
`car`:

	INSERT INTO car ( name,color ) VALUES ( $1,$2 ) ON CONFLICT (id) DO UPDATE SET name=$3,color=$4 RETURNING *

Binding order: `[name color name color]`.
*/
func (self Def) Upsert() (out Stmt, err error) {
	defer rec(&err)
	const while = `synthesizing upsert`

	cols := self.cols(while, KindInsert, `insert columns`)
	target := self.cols(while, KindConflictTarget, `conflict target`)
	set := self.cols(while, KindUpdateSet, `SET assignments`)
	alloc := Allocate(cols, set)

	bui := self.bui(alloc.Len())
	self.appendInsert(&bui, cols, alloc.Group(0))
	bui.Str(` ON CONFLICT (`)
	bui.Idents(target, `,`)
	bui.Str(`) DO UPDATE SET `)
	bui.Assigns(set, alloc.Group(1), `,`)
	self.appendReturning(&bui)
	return bui.Reify(), nil
}

/*
Classifies and rejects empty clauses. Panics on error; callers use `rec`. The
classification of every clause happens before any text is appended.
*/
func (self Def) cols(while string, kind Kind, clause string) Cols {
	if self.schema.IsEmpty() {
		panic(ErrInvalidInput.while(while).because(errf(`undefined record, use "Define"`)))
	}

	cols, err := classify(self.schema, self.conf, kind)
	if err != nil {
		panic(err)
	}
	if len(cols) == 0 {
		panic(ErrDegenerateStatement.while(while).because(
			errf(`no %v for record %q`, clause, self.schema.Name()),
		))
	}
	return cols
}

func (self Def) bui(params int) Bui {
	bui := MakeBui(64+params*16, params)
	bui.Style = self.conf.Style
	bui.Quote = self.conf.Quote
	return bui
}

func (self Def) appendInsert(bui *Bui, cols Cols, ords []Ord) {
	bui.Str(`INSERT INTO `)
	bui.Ident(self.conf.Table)
	bui.Str(` ( `)
	bui.Idents(cols, `,`)
	bui.Str(` ) VALUES ( `)
	bui.Params(cols, ords, `,`)
	bui.Str(` )`)
}

func (self Def) appendReturning(bui *Bui) {
	if self.conf.NoReturning {
		return
	}
	bui.Str(` RETURNING `)
	bui.Str(self.conf.Returning)
}
