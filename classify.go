package sqlrec

/*
Ordered sequence of field names emitted as columns for one clause of one
statement. Computed fresh by `Classify`, never mutated afterwards.
*/
type Cols []string

// Column classification requested from `Classify`.
type Kind byte

const (
	// Columns of INSERT: schema minus the insert skip set.
	KindInsert Kind = iota

	// SET columns of UPDATE and UPSERT: schema minus update-by and update-skip.
	KindUpdateSet

	// WHERE columns of UPDATE: members of the update-by set.
	KindUpdateBy

	// `ON CONFLICT` target of UPSERT: members of the conflict key.
	KindConflictTarget
)

// Implement `fmt.Stringer`.
func (self Kind) String() string {
	switch self {
	case KindInsert:
		return `insert`
	case KindUpdateSet:
		return `update set`
	case KindUpdateBy:
		return `update by`
	case KindConflictTarget:
		return `conflict target`
	default:
		return `unknown`
	}
}

/*
Partitions the schema's fields into the columns of one clause. The output is
always in schema declaration order, regardless of the order of names in the
configured sets, so repeated calls are stable.

Only the key and skip sets are consulted, so neither the table name nor the
schema's type name is required. Every configured name consulted for this kind
must be declared by the schema, otherwise the result is `ErrConfiguration`
naming the field. A field present in
both the update-by and update-skip sets is excluded from `KindUpdateSet` once:
exclusions are a set union.
*/
func Classify(schema Schema, conf Config, kind Kind) (Cols, error) {
	return classify(schema, conf.withSetDefaults(), kind)
}

// Requires a config with set defaults already resolved.
func classify(schema Schema, conf Config, kind Kind) (Cols, error) {
	while := `classifying ` + kind.String() + ` columns`

	switch kind {
	case KindInsert:
		err := validateFields(schema, while, `insert skip`, conf.InsertSkip)
		if err != nil {
			return nil, err
		}
		return schema.filter(func(name string) bool {
			return !conf.InsertSkip.Has(name)
		}), nil

	case KindUpdateSet:
		err := validateFields(schema, while, `update by`, conf.UpdateBy)
		if err != nil {
			return nil, err
		}
		err = validateFields(schema, while, `update skip`, conf.UpdateSkip)
		if err != nil {
			return nil, err
		}
		return schema.filter(func(name string) bool {
			return !conf.UpdateBy.Has(name) && !conf.UpdateSkip.Has(name)
		}), nil

	case KindUpdateBy:
		err := validateFields(schema, while, `update by`, conf.UpdateBy)
		if err != nil {
			return nil, err
		}
		return schema.filter(conf.UpdateBy.Has), nil

	case KindConflictTarget:
		err := validateFields(schema, while, `conflict key`, conf.ConflictKey)
		if err != nil {
			return nil, err
		}
		return schema.filter(conf.ConflictKey.Has), nil

	default:
		return nil, ErrInvalidInput.while(while).because(errf(`unknown column kind %d`, kind))
	}
}

// Always returns a non-nil slice, so that "no columns" is distinguishable from
// "not computed".
func (self Schema) filter(fun func(string) bool) Cols {
	out := make(Cols, 0, len(self.fields))
	for _, name := range self.fields {
		if fun(name) {
			out = append(out, name)
		}
	}
	return out
}
