package sqlrec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type (
	B  = testing.B
	T  = testing.T
	TB = testing.TB
)

func eq(t TB, expected interface{}, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected:\n%#v\nactual:\n%#v", expected, actual)
	}
}

func errs(t TB, target error, err error, msg string) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error %v, got %#v", target, err)
	}
	if !strings.Contains(err.Error(), msg) {
		t.Fatalf("expected error message to contain %q, got %q", msg, err.Error())
	}
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

func try1[A any](val A, err error) A {
	try(err)
	return val
}

type Car struct {
	Id    int64  `db:"id"`
	Name  string `db:"name"`
	Color string `db:"color"`
}

var carSchema = try1(NewSchema(`Car`, `id`, `name`, `color`))

func carDef(t TB, conf Config) Def {
	t.Helper()
	if conf.Table == "" {
		conf.Table = `car`
	}
	def, err := Define(carSchema, conf)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	return def
}
