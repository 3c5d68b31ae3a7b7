package sqlrec

import (
	"strings"

	"github.com/mitranim/sqlp"
)

/*
Verifies that the placeholders in the text correspond to the binding order.
Tokenizes the text, so that quoted identifiers, string literals and comments
are never mistaken for parameters.

For `StyleOrdinal`, requires every ordinal parameter to be either a repeat of
an already-seen one or exactly one greater than the highest seen so far, with
the highest equal to `len(.Fields)`: ordinals are contiguous and start at 1.
For `StyleQuestion`, requires exactly `len(.Fields)` "?" markers outside of
quotes and comments. Parameters of the other style and named parameters are
rejected.

Statements synthesized by this package always pass. Useful for statements
assembled or edited by hand, such as generated code checked into a repository.
*/
func (self Stmt) Check(style Style) error {
	const while = `checking statement placeholders`

	tokenizer := sqlp.Tokenizer{Source: self.Text}
	var count int

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeText:
			if style == StyleQuestion {
				count += strings.Count(string(node), `?`)
			}

		case sqlp.NodeOrdinalParam:
			if style == StyleQuestion {
				return ErrInvalidPlaceholder.while(while).because(
					errf(`expected only "?" params, got ordinal param %v`, node),
				)
			}

			ord := int(node)
			if ord > count+1 || ord < 1 {
				return ErrInvalidPlaceholder.while(while).because(
					errf(`ordinal parameter %v follows %v, leaving a gap`, node, count),
				)
			}
			if ord > count {
				count = ord
			}

		case sqlp.NodeNamedParam:
			return ErrInvalidPlaceholder.while(while).because(
				errf(`expected only %v params, got named param %q`, style, node),
			)
		}
	}

	if count != len(self.Fields) {
		return ErrInvalidPlaceholder.while(while).because(
			errf(`expected %v parameters, found %v`, len(self.Fields), count),
		)
	}
	return nil
}
