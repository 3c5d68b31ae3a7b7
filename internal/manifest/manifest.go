// Package manifest loads YAML manifests describing records for sqlrecgen.
//
// A manifest mirrors the per-record configuration of the sqlrec package:
//
//	package: models
//	style: ordinal
//	records:
//	  - type: Car
//	    table: car
//	    fields: [id, name, color]
//	    insert: {skip: id}
//	    update: {skip: id, by: id}
//	    conflict: id
//
// Every set accepts either a comma-separated string or a YAML list. An absent
// set means the default `{id}`; an empty string or empty list means an
// explicitly empty set.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitranim/sqlrec"
)

// Manifest is the root of a manifest file.
type Manifest struct {
	// Package is the Go package of the generated file.
	Package string `yaml:"package"`

	// Style is the default placeholder style: "ordinal" or "question".
	Style string `yaml:"style,omitempty"`

	// Quote enables identifier quoting for every record.
	Quote bool `yaml:"quote,omitempty"`

	Records []Record `yaml:"records"`
}

// Record describes one record type.
type Record struct {
	// Type is the Go type name. Generated methods use it as the receiver.
	Type string `yaml:"type"`

	// Table defaults to the snake-cased type name.
	Table string `yaml:"table,omitempty"`

	Fields []Field `yaml:"fields"`

	Insert   *Insert `yaml:"insert,omitempty"`
	Update   *Update `yaml:"update,omitempty"`
	Conflict *List   `yaml:"conflict,omitempty"`

	// Ops lists the statements to generate. Default: insert, update, upsert.
	Ops List `yaml:"ops,omitempty"`

	// Style overrides the manifest-level style.
	Style string `yaml:"style,omitempty"`

	Returning   string `yaml:"returning,omitempty"`
	NoReturning bool   `yaml:"noReturning,omitempty"`
}

// Insert holds INSERT options.
type Insert struct {
	Skip *List `yaml:"skip,omitempty"`
}

// Update holds UPDATE options.
type Update struct {
	Skip *List `yaml:"skip,omitempty"`
	By   *List `yaml:"by,omitempty"`
}

// Field is a column of a record, optionally with the name of the Go struct
// field holding its value.
type Field struct {
	Column string `yaml:"column"`
	GoName string `yaml:"go,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler for Field. A scalar is a column
// name; a mapping may also name the Go field.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		f.Column = strings.TrimSpace(node.Value)
		return nil
	case yaml.MappingNode:
		type plain Field
		var out plain
		if err := node.Decode(&out); err != nil {
			return err
		}
		*f = Field(out)
		return nil
	default:
		return fmt.Errorf("line %d: expected column name or mapping, got %v", node.Line, node.Kind)
	}
}

// List is a YAML type that can be either a comma-separated string or a list
// of strings.
type List []string

// UnmarshalYAML implements yaml.Unmarshaler for List.
func (l *List) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = List(sqlrec.ParseFields(node.Value))
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		out := List{}
		for _, val := range list {
			if val = strings.TrimSpace(val); val != "" {
				out = append(out, val)
			}
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for List.
func (l List) MarshalYAML() (any, error) {
	return strings.Join(l, ","), nil
}

func (l *List) fields() sqlrec.Fields {
	if l == nil {
		return nil
	}
	return append(sqlrec.Fields{}, (*l)...)
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest structure. Record configuration is validated
// against the record's fields by Record.Def.
func (m *Manifest) Validate() error {
	if m.Package == "" {
		return fmt.Errorf("manifest: missing package")
	}
	if len(m.Records) == 0 {
		return fmt.Errorf("manifest: no records")
	}
	seen := make(map[string]bool, len(m.Records))
	for i, rec := range m.Records {
		if rec.Type == "" {
			return fmt.Errorf("manifest: record %d: missing type", i)
		}
		if seen[rec.Type] {
			return fmt.Errorf("manifest: duplicate record type %q", rec.Type)
		}
		seen[rec.Type] = true
		for j, field := range rec.Fields {
			if field.Column == "" {
				return fmt.Errorf("manifest: record %q: field %d: missing column", rec.Type, j)
			}
		}
	}
	return nil
}

// Def builds the record's validated definition. The manifest supplies defaults
// for style and quoting.
func (r Record) Def(m *Manifest) (sqlrec.Def, error) {
	columns := make([]string, len(r.Fields))
	for i, field := range r.Fields {
		columns[i] = field.Column
	}

	schema, err := sqlrec.NewSchema(r.Type, columns...)
	if err != nil {
		return sqlrec.Def{}, fmt.Errorf("record %q: %w", r.Type, err)
	}

	style := r.Style
	if style == "" {
		style = m.Style
	}
	conf := sqlrec.Config{
		Table:       r.Table,
		ConflictKey: r.Conflict.fields(),
		Quote:       m.Quote,
		Returning:   r.Returning,
		NoReturning: r.NoReturning,
	}
	if conf.Style, err = sqlrec.ParseStyle(style); err != nil {
		return sqlrec.Def{}, fmt.Errorf("record %q: %w", r.Type, err)
	}
	if r.Insert != nil {
		conf.InsertSkip = r.Insert.Skip.fields()
	}
	if r.Update != nil {
		conf.UpdateSkip = r.Update.Skip.fields()
		conf.UpdateBy = r.Update.By.fields()
	}

	def, err := sqlrec.Define(schema, conf)
	if err != nil {
		return sqlrec.Def{}, fmt.Errorf("record %q: %w", r.Type, err)
	}
	return def, nil
}

// Operations returns the statements to generate, in a fixed order.
func (r Record) Operations() ([]sqlrec.Op, error) {
	if len(r.Ops) == 0 {
		return []sqlrec.Op{sqlrec.OpInsert, sqlrec.OpUpdate, sqlrec.OpUpsert}, nil
	}
	want := make(map[sqlrec.Op]bool, len(r.Ops))
	for _, name := range r.Ops {
		op, err := parseOp(name)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", r.Type, err)
		}
		want[op] = true
	}
	var out []sqlrec.Op
	for _, op := range []sqlrec.Op{sqlrec.OpInsert, sqlrec.OpUpdate, sqlrec.OpUpsert} {
		if want[op] {
			out = append(out, op)
		}
	}
	return out, nil
}

func parseOp(name string) (sqlrec.Op, error) {
	switch strings.ToLower(name) {
	case "insert":
		return sqlrec.OpInsert, nil
	case "update":
		return sqlrec.OpUpdate, nil
	case "upsert":
		return sqlrec.OpUpsert, nil
	default:
		return 0, fmt.Errorf("unknown op %q", name)
	}
}
