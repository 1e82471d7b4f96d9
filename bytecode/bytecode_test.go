package bytecode

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vuet/vuet/data"
	"github.com/vuet/vuet/parse"
)

func eval(t *testing.T, expr string) data.Value {
	t.Helper()
	node, err := parse.ParseExpr(expr)
	if err != nil {
		t.Fatalf("%s: %v", expr, err)
	}
	value, err := Evaluate(node)
	if err != nil {
		t.Fatalf("%s: %v", expr, err)
	}
	return value
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr     string
		expected data.Value
	}{
		{"1 + 2 * 3", data.Int(7)},
		{"(1 + 2) * 3", data.Int(9)},
		{"10 / 4", data.Float(2.5)},
		{"7 % 3", data.Int(1)},
		{"-5 + 1", data.Int(-4)},
		{"'a' + 'b'", data.String("ab")},
		{"'n = ' + 42", data.String("n = 42")},
		{"1 < 2", data.Bool(true)},
		{"'a' < 'b'", data.Bool(true)},
		{"2 >= 2.0", data.Bool(true)},
		{"1 == '1'", data.Bool(false)},
		{"null == undefined", data.Bool(true)},
		{"null === undefined", data.Bool(false)},
		{"1 === 1.0", data.Bool(true)},
		{"!0", data.Bool(true)},
		{"true && 'yes'", data.String("yes")},
		{"false || 'no'", data.String("no")},
		{"null ?? 'fallback'", data.String("fallback")},
		{"0 ?? 1", data.Int(0)},
		{"true ? 1 : 2", data.Int(1)},
		{"[1, 2, 3][1]", data.Int(2)},
		{"{ a: 1 }['a']", data.Int(1)},
		{"{ 'x-y': 2 }['x-y']", data.Int(2)},
		{"[10][5]", data.Undefined{}},
	}
	for _, test := range tests {
		if actual := eval(t, test.expr); !reflect.DeepEqual(actual, test.expected) {
			t.Errorf("%s: expected %#v, got %#v", test.expr, test.expected, actual)
		}
	}
}

func TestEvaluateNotConst(t *testing.T) {
	exprs := []string{
		"count",
		"1 + count",
		"user.name",
		"fn(1)",
		"{ [k]: 1 }",
		"a = 1",
	}
	for _, expr := range exprs {
		node, err := parse.ParseExpr(expr)
		if err != nil {
			t.Fatalf("%s: %v", expr, err)
		}
		if _, err := Evaluate(node); !errors.Is(err, ErrNotConst) {
			t.Errorf("%s: expected ErrNotConst, got %v", expr, err)
		}
	}
}

func TestCompileProgramShape(t *testing.T) {
	node, err := parse.ParseExpr("1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	prog, err := Compile(node)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Instr{{OpConst, 0}, {OpConst, 1}, {OpAdd, 0}}
	if !reflect.DeepEqual(prog.Instrs, expected) {
		t.Errorf("expected %v, got %v", expected, prog.Instrs)
	}
}
