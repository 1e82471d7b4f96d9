package parse

import "testing"

func TestRawtext(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"a  b", "a  b"},             // no newline, whitespace kept
		{"a\n  b", "a b"},            // newline run condensed
		{"a \t\n\t c", "a c"},        // mixed run condensed
		{"&amp; &lt;3", "& <3"},      // entities decoded
		{"cafe\u0301", "caf\u00e9"}, // NFC normalization
		{"x\ny\nz", "x y z"},
	}
	for _, test := range tests {
		if actual := rawtext(test.input); actual != test.expected {
			t.Errorf("rawtext(%q): expected %q, got %q", test.input, test.expected, actual)
		}
	}
}

func TestRawtextPreserve(t *testing.T) {
	const input = "a\n  b &amp; c"
	const expected = "a\n  b & c"
	if actual := rawtextPreserve(input); actual != expected {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}
