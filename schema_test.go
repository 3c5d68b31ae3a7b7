package sqlrec

import (
	"testing"
	"time"
)

// nolint:govet
type Embed struct {
	Id        string `db:"embed_id"`
	Name      string `db:"embed_name"`
	private   string `db:"embed_private"`
	Untagged0 string ``
	Untagged1 string `db:"-"`
}

type Outer struct {
	Embed
	Id       string    `db:"outer_id"`
	Name     string    `db:"outer_name"`
	Created  time.Time `db:"created_at"`
	OnlyJson string    `json:"onlyJson"`
}

func TestNewSchema(t *testing.T) {
	schema, err := NewSchema(`Car`, `id`, `name`, `color`)
	try(err)

	eq(t, `Car`, schema.Name())
	eq(t, []string{`id`, `name`, `color`}, schema.Fields())
	eq(t, 3, schema.Len())
	eq(t, true, schema.Has(`name`))
	eq(t, false, schema.Has(`nope`))
	eq(t, false, schema.IsEmpty())

	t.Run(`fields_are_copied`, func(t *testing.T) {
		src := []string{`id`, `name`}
		schema := try1(NewSchema(`Car`, src...))
		src[0] = `changed`
		schema.Fields()[1] = `changed`
		eq(t, []string{`id`, `name`}, schema.Fields())
	})

	t.Run(`invalid`, func(t *testing.T) {
		_, err := NewSchema(`Car`)
		errs(t, ErrInvalidInput, err, `at least one field`)

		_, err = NewSchema(`Car`, `id`, ``)
		errs(t, ErrInvalidInput, err, `empty field name at index 1`)

		_, err = NewSchema(`Car`, `id`, `name`, `id`)
		errs(t, ErrInvalidInput, err, `field "id"`)
	})
}

func TestSchemaOf(t *testing.T) {
	exp := []string{`embed_id`, `embed_name`, `outer_id`, `outer_name`, `created_at`}

	test := func(val interface{}) {
		t.Helper()
		schema, err := SchemaOf(val)
		try(err)
		eq(t, `Outer`, schema.Name())
		eq(t, exp, schema.Fields())
	}

	test(Outer{})
	test((*Outer)(nil))
	test([]Outer(nil))
	test((*[]*Outer)(nil))

	t.Run(`declaration_order`, func(t *testing.T) {
		schema := try1(SchemaOf(Car{}))
		eq(t, []string{`id`, `name`, `color`}, schema.Fields())
	})

	t.Run(`invalid`, func(t *testing.T) {
		_, err := SchemaOf(nil)
		errs(t, ErrInvalidInput, err, `expected struct`)

		_, err = SchemaOf(`str`)
		errs(t, ErrInvalidInput, err, `expected struct`)

		_, err = SchemaOf(struct{ Untagged string }{})
		errs(t, ErrInvalidInput, err, `at least one field`)

		type Dup struct {
			One string `db:"one"`
			Two string `db:"one"`
		}
		_, err = SchemaOf(Dup{})
		errs(t, ErrInvalidInput, err, `field "one"`)
	})
}
