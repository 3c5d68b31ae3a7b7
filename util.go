package sqlrec

import (
	"fmt"
	r "reflect"
	"strconv"
	"unsafe"

	"github.com/mitranim/refut"
)

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Reasonably safe. Should not be used when the underlying
byte array is volatile.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

func sfieldColumnName(sfield r.StructField) string {
	if sfield.PkgPath != "" {
		return ""
	}
	name := refut.TagIdent(sfield.Tag.Get("db"))
	if name == "-" {
		return ""
	}
	return name
}

// Dereferences pointers, then slices of (pointers to) structs.
func structRtype(typ r.Type) r.Type {
	if typ == nil {
		return nil
	}
	typ = refut.RtypeDeref(typ)
	if typ != nil && typ.Kind() == r.Slice {
		typ = refut.RtypeDeref(typ.Elem())
	}
	return typ
}

func appendStr(buf *[]byte, str string) {
	*buf = append(*buf, str...)
}

func appendOrd(buf *[]byte, style Style, ord Ord) {
	if style == StyleQuestion {
		*buf = append(*buf, '?')
		return
	}
	*buf = append(*buf, '$')
	*buf = strconv.AppendInt(*buf, int64(ord), 10)
}

func errf(pattern string, args ...any) error {
	return fmt.Errorf(pattern, args...)
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}
