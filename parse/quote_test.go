package parse

import "testing"

func TestUnquoteString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`'hello'`, "hello"},
		{`"hello"`, "hello"},
		{`'it\'s'`, "it's"},
		{`"a\nb"`, "a\nb"},
		{`'tab\there'`, "tab\there"},
		{`'\\'`, `\`},
		{`'A'`, "A"},
		{`'\x41'`, "A"},
		{`'\xe9'`, "é"},
		{`'caf\xe9'`, "café"},
		{`'é'`, "é"},
		{`''`, ""},
	}
	for _, test := range tests {
		actual, err := unquoteString(test.input)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		if actual != test.expected {
			t.Errorf("%s: expected %q, got %q", test.input, test.expected, actual)
		}
	}
}

func TestUnquoteStringErrors(t *testing.T) {
	tests := []string{
		`'`,
		`'a"`,
		`a`,
		`'a\q'`,
		`'\u00'`,
		`'\x4'`,
	}
	for _, test := range tests {
		if _, err := unquoteString(test); err == nil {
			t.Errorf("%s: expected error", test)
		}
	}
}
