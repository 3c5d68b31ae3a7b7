package sqlrec

import (
	"errors"
	"fmt"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown             ErrCode = ""
	ErrCodeInvalidInput        ErrCode = "InvalidInput"
	ErrCodeConfiguration       ErrCode = "Configuration"
	ErrCodeDegenerateStatement ErrCode = "DegenerateStatement"
	ErrCodeMissingArgument     ErrCode = "MissingArgument"
	ErrCodeInvalidPlaceholder  ErrCode = "InvalidPlaceholder"
)

/*
Use blank error variables to detect error types:

	if errors.Is(err, sqlrec.ErrConfiguration) {
		// Handle specific error.
	}

Note that errors returned by this package can't be compared via `==` because
they may include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrInvalidInput        Err = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrConfiguration       Err = Err{Code: ErrCodeConfiguration, Cause: errors.New(`unknown field in configuration`)}
	ErrDegenerateStatement Err = Err{Code: ErrCodeDegenerateStatement, Cause: errors.New(`statement clause has no columns`)}
	ErrMissingArgument     Err = Err{Code: ErrCodeMissingArgument, Cause: errors.New(`missing argument`)}
	ErrInvalidPlaceholder  Err = Err{Code: ErrCodeInvalidPlaceholder, Cause: errors.New(`invalid placeholder`)}
)

/*
Type of errors returned by this package. `.Field` names the offending field,
when there is one.
*/
type Err struct {
	Code  ErrCode
	While string
	Field string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ""
	}
	msg := `[sqlrec]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != "" {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Field != "" {
		msg += fmt.Sprintf(` (field %q)`, self.Field)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) field(name string) Err {
	self.Field = name
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}
