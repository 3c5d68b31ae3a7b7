package sqlrec

import (
	r "reflect"

	"github.com/mitranim/refut"
)

/*
Returns the values to bind to the statement's parameters, in binding order.
The input must be either a `map[string]any` keyed by field name, or a struct or
struct pointer whose fields are tagged with `db` (see `StructMap`). Every field
in `.Fields` must be present, otherwise the result is `ErrMissingArgument`.

For example, this:

	stmt, _ := def.Upsert() // binding order: [name color name color]
	args, _ := stmt.Args(Car{Id: 1, Name: `Skoda`, Color: `red`})

Is equivalent to:

	args := []any{`Skoda`, `red`, `Skoda`, `red`}
*/
func (self Stmt) Args(src any) ([]any, error) {
	const while = `binding statement arguments`

	dict, ok := src.(map[string]any)
	if !ok {
		var err error
		dict, err = StructMap(src)
		if err != nil {
			return nil, err
		}
	}

	out := make([]any, 0, len(self.Fields))
	for _, field := range self.Fields {
		val, ok := dict[field]
		if !ok {
			return nil, ErrMissingArgument.while(while).field(field).because(errf(`record has no value for this field`))
		}
		out = append(out, val)
	}
	return out, nil
}

/*
Scans a struct, accumulating fields tagged with `db` into a map keyed by column
name. The input must be a struct or a non-nil struct pointer. Treats embedded
structs as part of enclosing structs.
*/
func StructMap(input any) (map[string]any, error) {
	const while = `traversing struct for DB fields`

	if input == nil {
		return nil, ErrInvalidInput.while(while).because(errf(`expected struct, got nil`))
	}

	rval := r.ValueOf(input)
	typ := refut.RtypeDeref(rval.Type())
	if typ.Kind() != r.Struct {
		return nil, ErrInvalidInput.while(while).because(errf(`expected struct, got %q`, typ))
	}
	if refut.IsRvalNil(rval) {
		return nil, ErrInvalidInput.while(while).because(errf(`expected struct, got nil %q`, rval.Type()))
	}

	dict := map[string]any{}
	err := refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		name := sfieldColumnName(sfield)
		if name != "" {
			dict[name] = rval.Interface()
		}
		return nil
	})
	if err != nil {
		return nil, ErrInvalidInput.while(while).because(err)
	}
	return dict, nil
}
