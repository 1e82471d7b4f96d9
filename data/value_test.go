package data

import "testing"

func TestTruthy(t *testing.T) {
	var truthy = []Value{
		Bool(true), Int(1), Int(-1), Float(0.5), String("x"), String("false"),
		List{}, Map{},
	}
	var falsy = []Value{
		Undefined{}, Null{}, Bool(false), Int(0), Float(0), String(""),
	}
	for _, v := range truthy {
		if !v.Truthy() {
			t.Errorf("expected truthy: %#v", v)
		}
	}
	for _, v := range falsy {
		if v.Truthy() {
			t.Errorf("expected falsy: %#v", v)
		}
	}
}

func TestDisplayString(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{Undefined{}, ""},
		{Null{}, ""},
		{Bool(true), "true"},
		{Int(42), "42"},
		{Float(0.5), "0.5"},
		{String("hello"), "hello"},
		{List{Int(1), String("a")}, `[1,"a"]`},
		{Map{"a": Int(1)}, `{"a":1}`},
	}
	for _, test := range tests {
		if actual := test.value.String(); actual != test.expected {
			t.Errorf("%#v: expected %q, got %q", test.value, test.expected, actual)
		}
	}
}

func TestEquals(t *testing.T) {
	var list = List{Int(1)}
	tests := []struct {
		a, b     Value
		expected bool
	}{
		{Int(5), Float(5.0), true},
		{Float(5.0), Int(5), true},
		{Int(5), Int(6), false},
		{Null{}, Undefined{}, true},
		{Undefined{}, Null{}, true},
		{Null{}, Int(0), false},
		{String("a"), String("a"), true},
		{String("5"), Int(5), false},
		{list, list, true},
		{list, List{Int(1)}, false},
	}
	for _, test := range tests {
		if actual := test.a.Equals(test.b); actual != test.expected {
			t.Errorf("%v == %v: expected %v", test.a, test.b, test.expected)
		}
	}
}
