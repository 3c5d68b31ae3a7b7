package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mitranim/sqlrec"
)

const sample = `
package: models
style: ordinal
records:
  - type: Car
    table: car
    fields: [id, name, color]
    insert: {skip: id}
    update: {skip: id, by: id}
    conflict: id
  - type: Ticket
    style: question
    fields:
      - id
      - column: title
        go: Headline
      - status
    insert:
      skip: []
    update:
      by: [id]
    ops: [upsert, insert]
    noReturning: true
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, `models`, m.Package)
	require.Len(t, m.Records, 2)

	car := m.Records[0]
	assert.Equal(t, []Field{{Column: `id`}, {Column: `name`}, {Column: `color`}}, car.Fields)
	assert.Equal(t, List{`id`}, *car.Insert.Skip)
	assert.Equal(t, List{`id`}, *car.Conflict)

	ticket := m.Records[1]
	assert.Equal(t, Field{Column: `title`, GoName: `Headline`}, ticket.Fields[1])
	assert.NotNil(t, ticket.Insert.Skip)
	assert.Empty(t, *ticket.Insert.Skip)
	assert.Nil(t, ticket.Update.Skip)
	assert.Nil(t, ticket.Conflict)
}

func TestList_notations(t *testing.T) {
	var out struct {
		A List `yaml:"a"`
		B List `yaml:"b"`
		C List `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 'id, vin ,'\nb: [id, ' vin ', '']\nc: ''\n"), &out))

	assert.Equal(t, List{`id`, `vin`}, out.A)
	assert.Equal(t, List{`id`, `vin`}, out.B)
	assert.NotNil(t, out.C)
	assert.Empty(t, out.C)

	err := yaml.Unmarshal([]byte("a: {x: 1}\n"), &out)
	assert.ErrorContains(t, err, `expected string or list`)
}

func TestList_MarshalYAML(t *testing.T) {
	data, err := yaml.Marshal(struct {
		A List `yaml:"a"`
	}{List{`id`, `vin`}})
	require.NoError(t, err)
	assert.Equal(t, "a: id,vin\n", string(data))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
	}{
		{`no package`, "records: [{type: A, fields: [id]}]", `missing package`},
		{`no records`, "package: p", `no records`},
		{`no type`, "package: p\nrecords: [{fields: [id]}]", `record 0: missing type`},
		{`duplicate`, "package: p\nrecords: [{type: A, fields: [id]}, {type: A, fields: [id]}]", `duplicate record type "A"`},
		{`empty column`, "package: p\nrecords: [{type: A, fields: [{go: X}]}]", `field 0: missing column`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src))
			assert.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), `records.yaml`)
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Records, 2)

	_, err = Load(filepath.Join(t.TempDir(), `missing.yaml`))
	assert.ErrorContains(t, err, `read manifest`)
}

func TestRecord_Def(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	car, err := m.Records[0].Def(m)
	require.NoError(t, err)
	stmt, err := car.Upsert()
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO car ( name,color ) VALUES ( $1,$2 ) ON CONFLICT (id) DO UPDATE SET name=$3,color=$4 RETURNING *`, stmt.Text)

	ticket, err := m.Records[1].Def(m)
	require.NoError(t, err)
	assert.Equal(t, `ticket`, ticket.Table())
	assert.Equal(t, sqlrec.StyleQuestion, ticket.Config().Style)
	stmt, err = ticket.Insert()
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO ticket ( id,title,status ) VALUES ( ?,?,? )`, stmt.Text)
}

func TestRecord_Def_errors(t *testing.T) {
	m := &Manifest{Package: `p`}

	_, err := Record{Type: `A`, Fields: []Field{{Column: `id`}, {Column: `id`}}}.Def(m)
	assert.ErrorIs(t, err, sqlrec.ErrInvalidInput)

	_, err = Record{Type: `A`, Fields: []Field{{Column: `name`}}}.Def(m)
	assert.ErrorIs(t, err, sqlrec.ErrConfiguration)

	_, err = Record{Type: `A`, Style: `dollar`, Fields: []Field{{Column: `id`}}}.Def(m)
	assert.ErrorIs(t, err, sqlrec.ErrInvalidInput)
	assert.ErrorContains(t, err, `record "A"`)
}

func TestRecord_Operations(t *testing.T) {
	ops, err := Record{}.Operations()
	require.NoError(t, err)
	assert.Equal(t, []sqlrec.Op{sqlrec.OpInsert, sqlrec.OpUpdate, sqlrec.OpUpsert}, ops)

	ops, err = Record{Ops: List{`Upsert`, `insert`, `upsert`}}.Operations()
	require.NoError(t, err)
	assert.Equal(t, []sqlrec.Op{sqlrec.OpInsert, sqlrec.OpUpsert}, ops)

	_, err = Record{Type: `A`, Ops: List{`delete`}}.Operations()
	assert.ErrorContains(t, err, `unknown op "delete"`)
}
