package parse

import (
	"strings"
	"testing"
)

// The expected strings double as a check on operator precedence: the AST
// re-renders with the minimal parentheses that preserve its structure.
func TestParseExpr(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"42", "42"},
		{"-0.5", "-0.5"},
		{"'hi'", "'hi'"},
		{"null", "null"},
		{"undefined", "undefined"},
		{"count", "count"},

		{"1 + 2 * 3", "1 + 2 * 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"1 - 2 - 3", "1 - 2 - 3"},
		{"a ?? b ?? c", "a ?? b ?? c"},
		{"!ok && items.length > 0", "!ok && items.length > 0"},
		{"!(a && b)", "!(a && b)"},
		{"a === b || c !== d", "a === b || c !== d"},
		{"a % 2 == 0", "a % 2 == 0"},

		{"user.name", "user.name"},
		{"a?.b ?? 'd'", "a?.b ?? 'd'"},
		{"a?.[k]", "a?.[k]"},
		{"items[i + 1]", "items[i + 1]"},
		{"a.b.c()", "a.b.c()"},
		{"fn(a, 1)(b)", "fn(a, 1)(b)"},
		{"(a ?? b).c", "(a ?? b).c"},
		{"item.in", "item.in"},

		{"cond ? x : y", "cond ? x : y"},
		{"a ? b : c ? d : e", "a ? b : c ? d : e"},
		{"(a ? b : c) + 1", "(a ? b : c) + 1"},

		{"count = count + 1", "count = count + 1"},
		{"count += step", "count += step"},
		{"count++", "count++"},
		{"--count", "--count"},
		{"open = !open", "open = !open"},

		{"[]", "[]"},
		{"[1, 2, ]", "[1, 2]"},
		{"[a, 'b', c.d]", "[a, 'b', c.d]"},
		{"{}", "{}"},
		{"{ a: 1, b }", "{ a: 1, b: b }"},
		{"{ 'a-b': 1, [k]: 2 }", "{ 'a-b': 1, [k]: 2 }"},
		{"{ active: isActive, 'text-danger': hasError }",
			"{ active: isActive, 'text-danger': hasError }"},
	}
	for _, test := range tests {
		node, err := ParseExpr(test.input)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		if actual := node.String(); actual != test.expected {
			t.Errorf("%s: expected %q, got %q", test.input, test.expected, actual)
		}
	}
}

func TestParseExprErrors(t *testing.T) {
	tests := []struct {
		input  string
		substr string
	}{
		{"", "unexpected"},
		{"a ** b", "unexpected"},
		{"1 = 2", "invalid assignment target"},
		{"(a + b)++", "invalid ++ target"},
		{"a => b", "arrow functions"},
		{"`x`", "template literals"},
		{"'unterminated", "eof while scanning string"},
		{"{ a: }", "unexpected"},
		{"a.1", "property access"},
	}
	for _, test := range tests {
		_, err := ParseExpr(test.input)
		if err == nil {
			t.Errorf("%s: expected error", test.input)
			continue
		}
		if !strings.Contains(err.Error(), test.substr) {
			t.Errorf("%s: expected error containing %q, got: %v", test.input, test.substr, err)
		}
	}
}
