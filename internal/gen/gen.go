// Package gen renders Go source for the records of a manifest: SQL constants
// synthesized by sqlrec, and methods returning each record's values in binding
// order. The generated code has no runtime dependency on sqlrec.
package gen

import (
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/mitranim/sqlrec"
	"github.com/mitranim/sqlrec/internal/manifest"
)

// Header is the comment placed at the top of generated files.
const Header = "Code generated by sqlrecgen. DO NOT EDIT."

// Render generates the file for the manifest and writes it to w.
func Render(m *manifest.Manifest, w io.Writer) error {
	f, err := Generate(m)
	if err != nil {
		return err
	}
	if err := f.Render(w); err != nil {
		return fmt.Errorf("render %s: %w", m.Package, err)
	}
	return nil
}

// Generate builds the file for the manifest. Every statement is synthesized
// before any code is emitted, so a misconfigured record produces no output.
func Generate(m *manifest.Manifest) (*jen.File, error) {
	records := make([]record, 0, len(m.Records))
	for _, rec := range m.Records {
		out, err := synthesize(m, rec)
		if err != nil {
			return nil, err
		}
		records = append(records, out)
	}

	f := jen.NewFile(m.Package)
	f.HeaderComment(Header)
	for _, rec := range records {
		genRecord(f, rec)
	}
	return f, nil
}

type record struct {
	manifest.Record
	goNames map[string]string
	stmts   []statement
}

type statement struct {
	op   sqlrec.Op
	stmt sqlrec.Stmt
}

func synthesize(m *manifest.Manifest, rec manifest.Record) (record, error) {
	def, err := rec.Def(m)
	if err != nil {
		return record{}, err
	}
	ops, err := rec.Operations()
	if err != nil {
		return record{}, err
	}

	out := record{Record: rec, goNames: make(map[string]string, len(rec.Fields))}
	for _, field := range rec.Fields {
		out.goNames[field.Column] = goName(field)
	}
	for _, op := range ops {
		stmt, err := def.Statement(op)
		if err != nil {
			return record{}, fmt.Errorf("record %q: %w", rec.Type, err)
		}
		out.stmts = append(out.stmts, statement{op: op, stmt: stmt})
	}
	return out, nil
}

func genRecord(f *jen.File, rec record) {
	f.Commentf("SQL statements for %s.", rec.Type)
	f.Const().DefsFunc(func(group *jen.Group) {
		for _, st := range rec.stmts {
			group.Id(constName(rec.Type, st.op)).Op("=").Lit(st.stmt.Text)
		}
	})

	for _, st := range rec.stmts {
		method := opName(st.op) + "Args"
		f.Commentf("%s returns the values bound by %s, in binding order.", method, constName(rec.Type, st.op))
		f.Func().Params(jen.Id("self").Id(rec.Type)).Id(method).Params().Index().Any().Block(
			jen.Return(jen.Index().Any().ValuesFunc(func(group *jen.Group) {
				for _, field := range st.stmt.Fields {
					group.Id("self").Dot(rec.goNames[field])
				}
			})),
		)
	}
}

func constName(typ string, op sqlrec.Op) string {
	return typ + opName(op) + "SQL"
}

func opName(op sqlrec.Op) string {
	return inflect.Capitalize(op.String())
}

// goName returns the Go field name holding the column's value. Defaults to the
// camel-cased column name: "car_name" becomes "CarName".
func goName(field manifest.Field) string {
	if field.GoName != "" {
		return field.GoName
	}
	return inflect.Camelize(field.Column)
}
