package sqlrec

/*
Ordinal parameter index such as `$1`. Always 1-based. The zero value is
invalid.
*/
type Ord int

/*
Assignment of ordinal parameters to the columns of one statement. Built by
`Allocate`. For group `i`, `.Group(i)[j]` is the parameter bound to the `j`th
column of that group.
*/
type Alloc struct {
	groups []Cols
	ords   [][]Ord
}

/*
Assigns sequential ordinals to the columns of every group, concatenated in the
given order. The count starts at 1 and increases by exactly 1 per column, across
all groups. This is how the SET clause of an UPSERT continues numbering after
the VALUES clause, and how the WHERE clause of an UPDATE continues after its
SET clause. For identical input the output is always identical.

For example, groups `[name color] [name color]` are assigned `[1 2] [3 4]`.
*/
func Allocate(groups ...Cols) Alloc {
	ords := make([][]Ord, len(groups))
	next := Ord(1)
	for ind, group := range groups {
		out := make([]Ord, len(group))
		for col := range group {
			out[col] = next
			next++
		}
		ords[ind] = out
	}
	return Alloc{groups: groups, ords: ords}
}

// Total number of allocated parameters.
func (self Alloc) Len() int {
	var out int
	for _, group := range self.ords {
		out += len(group)
	}
	return out
}

// Ordinals of the group at the given index. Panics if out of bounds.
func (self Alloc) Group(ind int) []Ord { return self.ords[ind] }

/*
Returns the ordinal assigned to the field within the group at the given index.
The second result is false if the group index is out of bounds or the group
doesn't contain the field.
*/
func (self Alloc) Of(group int, field string) (Ord, bool) {
	if group < 0 || group >= len(self.groups) {
		return 0, false
	}
	for ind, name := range self.groups[group] {
		if name == field {
			return self.ords[group][ind], true
		}
	}
	return 0, false
}

/*
Binding order: the fields of every group concatenated in group order. The
`n`th element is the field bound to ordinal `n+1`.
*/
func (self Alloc) Fields() []string {
	out := make([]string, 0, self.Len())
	for _, group := range self.groups {
		out = append(out, group...)
	}
	return out
}
