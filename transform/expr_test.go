package transform

import (
	"testing"

	"github.com/vuet/vuet/data"
	"github.com/vuet/vuet/parse"
)

func prefix(t *testing.T, tr *transformer, expr string) string {
	t.Helper()
	node, err := parse.ParseExpr(expr)
	if err != nil {
		t.Fatalf("%s: %v", expr, err)
	}
	return tr.dynExpr(node).Src
}

func TestPrefixExpr(t *testing.T) {
	tests := []struct{ expr, expected string }{
		{"count", "_ctx.count"},
		{"count + 1", "_ctx.count + 1"},
		{"user.name.first", "_ctx.user.name.first"},
		{"a[b]", "_ctx.a[_ctx.b]"},
		{"fn(x, 1)", "_ctx.fn(_ctx.x, 1)"},
		{"Math.max(a, b)", "Math.max(_ctx.a, _ctx.b)"},
		{"JSON.stringify(user)", "JSON.stringify(_ctx.user)"},
		{"ok ? a : b", "_ctx.ok ? _ctx.a : _ctx.b"},
		{"!done", "!_ctx.done"},
		{"count++", "_ctx.count++"},
		{"count = count + 1", "_ctx.count = _ctx.count + 1"},
		{"{ active: isActive }", "{ active: _ctx.isActive }"},
		{"[a, 1]", "[_ctx.a, 1]"},
		{"a ?? b.c", "_ctx.a ?? _ctx.b.c"},
		{"(a + b) * c", "(_ctx.a + _ctx.b) * _ctx.c"},
		{"user?.address?.city", "_ctx.user?.address?.city"},
		{"$event.target.value", "$event.target.value"},
		{"undefined", "undefined"},
	}
	tr := &transformer{opts: Options{PrefixIdentifiers: true}, globals: map[string]bool{}}
	for _, test := range tests {
		if actual := prefix(t, tr, test.expr); actual != test.expected {
			t.Errorf("%s: expected %q, got %q", test.expr, test.expected, actual)
		}
	}
}

func TestPrefixScope(t *testing.T) {
	tr := &transformer{opts: Options{PrefixIdentifiers: true}, globals: map[string]bool{}}
	tr.scope.push([]string{"item", "i"})
	if actual := prefix(t, tr, "item.id + count"); actual != "item.id + _ctx.count" {
		t.Errorf("got %q", actual)
	}
	if actual := prefix(t, tr, "rows[i]"); actual != "_ctx.rows[i]" {
		t.Errorf("got %q", actual)
	}
	tr.scope.pop()
	if actual := prefix(t, tr, "item.id"); actual != "_ctx.item.id" {
		t.Errorf("got %q", actual)
	}
}

func TestPrefixDoesNotMutate(t *testing.T) {
	node, err := parse.ParseExpr("a.b + c")
	if err != nil {
		t.Fatal(err)
	}
	before := node.String()
	tr := &transformer{opts: Options{PrefixIdentifiers: true}, globals: map[string]bool{}}
	tr.prefixed(node)
	if after := node.String(); after != before {
		t.Errorf("input modified: %q became %q", before, after)
	}
}

func TestPrefixUserGlobals(t *testing.T) {
	tr := &transformer{
		opts:    Options{PrefixIdentifiers: true},
		globals: map[string]bool{"VERSION": true},
	}
	if actual := prefix(t, tr, "VERSION + build"); actual != "VERSION + _ctx.build" {
		t.Errorf("got %q", actual)
	}
}

func TestJSLiteral(t *testing.T) {
	tests := []struct {
		value    data.Value
		expected string
	}{
		{data.Int(42), "42"},
		{data.Float(2.5), "2.5"},
		{data.Bool(true), "true"},
		{data.String("it's"), `'it\'s'`},
		{data.Null{}, "null"},
		{data.Undefined{}, "undefined"},
		{data.List{data.Int(1), data.String("a")}, "[1, 'a']"},
		{data.Map{"b": data.Int(2), "a": data.Int(1)}, "{ a: 1, b: 2 }"},
		{data.Map{"x-y": data.Int(1)}, "{ 'x-y': 1 }"},
		{data.Map{}, "{}"},
	}
	for _, test := range tests {
		if actual := jsLiteral(test.value); actual != test.expected {
			t.Errorf("%#v: expected %q, got %q", test.value, test.expected, actual)
		}
	}
}

func TestCamelize(t *testing.T) {
	tests := []struct{ in, out string }{
		{"click", "click"},
		{"my-event", "myEvent"},
		{"a-b-c", "aBC"},
	}
	for _, test := range tests {
		if actual := camelize(test.in); actual != test.out {
			t.Errorf("camelize(%q): expected %q, got %q", test.in, test.out, actual)
		}
	}
}
