package sqlrec

import (
	"fmt"
	r "reflect"

	"github.com/mitranim/refut"
)

/*
Describes the fields of one record type: an ordered, duplicate-free sequence of
field names, plus the name of the type, which is used to derive the default
table name. Declaration order is significant: it defines the column order of
every generated statement.

Immutable once constructed, and therefore safe for concurrent use. Obtain via
`NewSchema` or `SchemaOf`.
*/
type Schema struct {
	name   string
	fields []string
	index  map[string]int
}

/*
Explicit schema builder. The type name may be empty, in which case `Config.Table`
must be provided. Field names must be non-empty and unique.
*/
func NewSchema(typeName string, fields ...string) (Schema, error) {
	const while = `building record schema`

	if len(fields) == 0 {
		return Schema{}, ErrInvalidInput.while(while).because(errf(`expected at least one field`))
	}

	index := make(map[string]int, len(fields))
	for ind, name := range fields {
		if name == "" {
			return Schema{}, ErrInvalidInput.while(while).because(errf(`empty field name at index %v`, ind))
		}
		if _, ok := index[name]; ok {
			return Schema{}, ErrInvalidInput.while(while).field(name).because(errf(`duplicate field`))
		}
		index[name] = ind
	}

	return Schema{
		name:   typeName,
		fields: append([]string(nil), fields...),
		index:  index,
	}, nil
}

/*
Takes a struct and derives a schema from its fields tagged with `db`. Also
accepts the following inputs and automatically dereferences them into a struct
type:

	* Struct pointer.
	* Struct slice.
	* Struct slice pointer.

Nil slices and pointers are fine, as long as they carry a struct type. Untagged
fields and fields tagged with `db:"-"` are ignored. Embedded structs are treated
as part of the enclosing struct.

For example, this:

	type Car struct {
		Id    int64  `db:"id"`
		Name  string `db:"name"`
		Color string `db:"color"`
	}

	schema, err := SchemaOf((*Car)(nil))

Is equivalent to:

	schema, err := NewSchema(`Car`, `id`, `name`, `color`)
*/
func SchemaOf(val any) (Schema, error) {
	const while = `deriving record schema from struct`

	typ := structRtype(r.TypeOf(val))
	if typ == nil || typ.Kind() != r.Struct {
		return Schema{}, ErrInvalidInput.while(while).because(fmt.Errorf(`expected struct, got %v`, typ))
	}

	var fields []string
	err := refut.TraverseStructRtype(typ, func(sfield r.StructField, _ []int) error {
		name := sfieldColumnName(sfield)
		if name != "" {
			fields = append(fields, name)
		}
		return nil
	})
	if err != nil {
		return Schema{}, ErrInvalidInput.while(while).because(err)
	}

	return NewSchema(typ.Name(), fields...)
}

// Name of the record type, as given to `NewSchema` or found by `SchemaOf`.
func (self Schema) Name() string { return self.name }

// Returns a copy of the field names in declaration order.
func (self Schema) Fields() []string { return append([]string(nil), self.fields...) }

// Number of fields.
func (self Schema) Len() int { return len(self.fields) }

// True if the schema declares a field with this name.
func (self Schema) Has(name string) bool {
	_, ok := self.index[name]
	return ok
}

// True if the schema has no fields, which is only the case for a zero value.
func (self Schema) IsEmpty() bool { return len(self.fields) == 0 }
