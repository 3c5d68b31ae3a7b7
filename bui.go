package sqlrec

import (
	"strings"

	"github.com/lib/pq"
)

/*
Prealloc tool. Makes a `Bui` with the specified capacity of the text and fields
buffers.
*/
func MakeBui(textCap, fieldsCap int) Bui {
	return Bui{
		Text:   make([]byte, 0, textCap),
		Fields: make([]string, 0, fieldsCap),
	}
}

/*
Short for "builder". Accumulates statement text together with its binding
order: every appended parameter records the field whose value must be bound to
it. Used internally by the statement synthesizer. Appends text verbatim, without
inserting any delimiters of its own.
*/
type Bui struct {
	Text   []byte
	Fields []string
	Style  Style
	Quote  bool
}

// Returns the accumulated text and binding order as a `Stmt`. The result
// doesn't share memory with the builder.
func (self Bui) Reify() Stmt {
	return Stmt{
		Text:   string(self.Text),
		Fields: append([]string(nil), self.Fields...),
	}
}

// Returns inner text as a string, performing a free cast.
func (self Bui) String() string { return bytesToMutableString(self.Text) }

// Appends the provided string verbatim.
func (self *Bui) Str(val string) { appendStr(&self.Text, val) }

/*
Appends an identifier: verbatim by default, or double-quoted if `.Quote` is
set. Quoting treats dots as separators, so that `public.car` becomes
`"public"."car"`.
*/
func (self *Bui) Ident(val string) {
	if !self.Quote {
		self.Str(val)
		return
	}
	for ind, part := range strings.Split(val, `.`) {
		if ind > 0 {
			self.Str(`.`)
		}
		self.Str(pq.QuoteIdentifier(part))
	}
}

// Appends identifiers separated by the delimiter.
func (self *Bui) Idents(vals []string, delim string) {
	for ind, val := range vals {
		if ind > 0 {
			self.Str(delim)
		}
		self.Ident(val)
	}
}

/*
Appends a placeholder for the given ordinal and records the field in the
binding order. Parameters must be appended in ordinal order, starting at 1,
because anonymous placeholders such as "?" are bound strictly left to right.
Panics otherwise.
*/
func (self *Bui) Param(field string, ord Ord) {
	if ord != Ord(len(self.Fields)+1) {
		panic(ErrInvalidPlaceholder.while(`appending parameter`).field(field).because(
			errf(`expected ordinal %v, got %v`, len(self.Fields)+1, ord),
		))
	}
	self.Fields = append(self.Fields, field)
	appendOrd(&self.Text, self.Style, ord)
}

// Appends placeholders for the fields, separated by the delimiter.
func (self *Bui) Params(fields []string, ords []Ord, delim string) {
	for ind, field := range fields {
		if ind > 0 {
			self.Str(delim)
		}
		self.Param(field, ords[ind])
	}
}

// Appends `field=$N` pairs separated by the delimiter.
func (self *Bui) Assigns(fields []string, ords []Ord, delim string) {
	for ind, field := range fields {
		if ind > 0 {
			self.Str(delim)
		}
		self.Ident(field)
		self.Str(`=`)
		self.Param(field, ords[ind])
	}
}
