package sqlrec

import (
	"strings"

	"github.com/kenshaw/snaker"
)

// Default member of every key and skip set.
const DefaultKey = `id`

// Default text following `RETURNING`.
const DefaultReturning = `*`

/*
Placeholder style used when rendering statements. The binding order is the same
for every style; only the text differs.
*/
type Style byte

const (
	// Postgres-style numbered parameters: "$1", "$2", and so on.
	StyleOrdinal Style = iota

	// SQLite/MySQL-style anonymous parameters "?", bound strictly left to right.
	StyleQuestion
)

// Implement `fmt.Stringer`.
func (self Style) String() string {
	switch self {
	case StyleOrdinal:
		return `ordinal`
	case StyleQuestion:
		return `question`
	default:
		return `unknown`
	}
}

/*
Parses a style from its name. Accepts "ordinal", "postgres" and "$" for
`StyleOrdinal`, and "question", "sqlite" and "?" for `StyleQuestion`. An empty
string is `StyleOrdinal`.
*/
func ParseStyle(src string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(src)) {
	case ``, `ordinal`, `postgres`, `$`:
		return StyleOrdinal, nil
	case `question`, `sqlite`, `?`:
		return StyleQuestion, nil
	default:
		return 0, ErrInvalidInput.while(`parsing placeholder style`).because(errf(`unknown style %q`, src))
	}
}

/*
Set of field names used for skip and key configuration. Order is irrelevant:
every statement emits columns in schema order. Duplicates are harmless.

A nil `Fields` in `Config` means "use the default", which is `{"id"}`. A non-nil
empty `Fields` means "explicitly empty".
*/
type Fields []string

/*
Parses a comma-separated list such as "id, name". Whitespace around names is
trimmed and blank entries are dropped. Always returns a non-nil value, so an
empty string produces an explicitly empty set rather than the default.
*/
func ParseFields(src string) Fields {
	out := Fields{}
	for _, name := range strings.Split(src, `,`) {
		name = strings.TrimSpace(name)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// True if the set contains the name.
func (self Fields) Has(name string) bool {
	for _, val := range self {
		if val == name {
			return true
		}
	}
	return false
}

// Implement `fmt.Stringer`. Inverse of `ParseFields`.
func (self Fields) String() string { return strings.Join(self, `,`) }

func (self Fields) orDefault() Fields {
	if self == nil {
		return Fields{DefaultKey}
	}
	return append(Fields{}, self...)
}

/*
Per-record statement configuration. The zero value is usable: every set
defaults to `{"id"}`, the table name defaults to the snake-cased type name, the
placeholder style is `StyleOrdinal`, and statements end with `RETURNING *`.

Identifiers are emitted verbatim unless `.Quote` is set. They're expected to
come from trusted record metadata, never from runtime user input: this package
compiles templates over field metadata and doesn't sanitize arbitrary strings.
*/
type Config struct {
	// Table name. Default: snake-cased type name, for example `create_car` or
	// `http_server`.
	Table string

	// Fields excluded from INSERT.
	InsertSkip Fields

	// Fields excluded from the SET clause of UPDATE and UPSERT.
	UpdateSkip Fields

	// Natural key: fields in the WHERE clause of UPDATE. Also excluded from SET.
	UpdateBy Fields

	// Fields in the `ON CONFLICT (...)` target of UPSERT.
	ConflictKey Fields

	// Placeholder style.
	Style Style

	// Quote identifiers, Postgres-style.
	Quote bool

	// Text after RETURNING. Default: "*".
	Returning string

	// Omit the RETURNING clause entirely.
	NoReturning bool
}

// Returns a copy with all defaults filled in.
func (self Config) withDefaults(schema Schema) (Config, error) {
	if self.Table == "" {
		if schema.Name() == "" {
			return self, ErrInvalidInput.while(`resolving table name`).because(errf(`no table name and no type name to derive it from`))
		}
		self.Table = tableName(schema.Name())
	}
	self = self.withSetDefaults()
	if self.Returning == "" {
		self.Returning = DefaultReturning
	}
	return self, nil
}

// Resolves only the key and skip sets. Classification needs nothing else.
func (self Config) withSetDefaults() Config {
	self.InsertSkip = self.InsertSkip.orDefault()
	self.UpdateSkip = self.UpdateSkip.orDefault()
	self.UpdateBy = self.UpdateBy.orDefault()
	self.ConflictKey = self.ConflictKey.orDefault()
	return self
}

/*
Snake-cases a type name, keeping initialisms whole: `CreateCar` becomes
`create_car`, `HTTPServer` becomes `http_server`, `UserID` becomes `user_id`.
*/
func tableName(typeName string) string { return snaker.CamelToSnake(typeName) }

func validateFields(schema Schema, while, setName string, fields Fields) error {
	for _, name := range fields {
		if !schema.Has(name) {
			return ErrConfiguration.while(while).field(name).because(
				errf(`%v names a field not declared by record %q`, setName, schema.Name()),
			)
		}
	}
	return nil
}

/*
Record definition: a schema paired with its resolved and validated
configuration. Built once via `Define`, typically at program startup, and
read-only afterwards. Safe for concurrent use.
*/
type Def struct {
	schema Schema
	conf   Config
}

/*
Resolves configuration defaults and validates every configured set against the
schema. Any field name not declared by the schema is an `ErrConfiguration`.
Validation is eager, so that misconfiguration surfaces at definition time
rather than on first use.
*/
func Define(schema Schema, conf Config) (Def, error) {
	const while = `defining record`

	if schema.IsEmpty() {
		return Def{}, ErrInvalidInput.while(while).because(errf(`empty schema`))
	}

	conf, err := conf.withDefaults(schema)
	if err != nil {
		return Def{}, err
	}

	for _, set := range [...]struct {
		name   string
		fields Fields
	}{
		{`insert skip`, conf.InsertSkip},
		{`update skip`, conf.UpdateSkip},
		{`update by`, conf.UpdateBy},
		{`conflict key`, conf.ConflictKey},
	} {
		err := validateFields(schema, while, set.name, set.fields)
		if err != nil {
			return Def{}, err
		}
	}

	return Def{schema: schema, conf: conf}, nil
}

/*
Shortcut for `SchemaOf` followed by `Define`. Useful for package-level
definitions:

	var carDef = sqlrec.MustDefine((*Car)(nil), sqlrec.Config{Table: `car`})
*/
func DefineOf(val any, conf Config) (Def, error) {
	schema, err := SchemaOf(val)
	if err != nil {
		return Def{}, err
	}
	return Define(schema, conf)
}

// Variant of `DefineOf` that panics on error.
func MustDefine(val any, conf Config) Def {
	def, err := DefineOf(val, conf)
	if err != nil {
		panic(err)
	}
	return def
}

// Returns the schema.
func (self Def) Schema() Schema { return self.schema }

// Returns a copy of the resolved configuration, with all defaults filled in.
func (self Def) Config() Config {
	conf, _ := self.conf.withDefaults(self.schema)
	return conf
}

// Returns the resolved table name.
func (self Def) Table() string { return self.conf.Table }
