package ast

import "testing"

// The String representations are relied upon by error messages and by the
// transform passes that re-render rewritten expressions.

func TestExprStrings(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{&NullNode{}, "null"},
		{&BoolNode{0, true}, "true"},
		{&IntNode{0, 42}, "42"},
		{&FloatNode{0, 0.5}, "0.5"},
		{&StringNode{0, "'hi'", "hi"}, "'hi'"},
		{&IdentNode{0, "count"}, "count"},
		{&PropertyNode{0, &IdentNode{0, "user"}, "name", false}, "user.name"},
		{&PropertyNode{0, &IdentNode{0, "user"}, "name", true}, "user?.name"},
		{&IndexNode{0, &IdentNode{0, "items"}, &IntNode{0, 0}, false}, "items[0]"},
		{&CallNode{0, &IdentNode{0, "fn"}, []Node{&IntNode{0, 1}, &IntNode{0, 2}}}, "fn(1, 2)"},
		{&NotNode{0, &IdentNode{0, "ok"}}, "!ok"},
		{&AddNode{BinaryOpNode{"+", 0, &IntNode{0, 1}, &IntNode{0, 2}}}, "1 + 2"},
		{&NullishNode{BinaryOpNode{"??", 0, &IdentNode{0, "a"}, &IntNode{0, 1}}}, "a ?? 1"},
		{&TernNode{0, &IdentNode{0, "ok"}, &IntNode{0, 1}, &IntNode{0, 2}}, "ok ? 1 : 2"},
		{&AssignNode{0, "=", &IdentNode{0, "a"}, &IntNode{0, 1}}, "a = 1"},
		{&UpdateNode{0, "++", false, &IdentNode{0, "n"}}, "n++"},
		{&ListLiteralNode{0, []Node{&IntNode{0, 1}, &IntNode{0, 2}}}, "[1, 2]"},
		{&MapLiteralNode{0, []*MapEntryNode{
			{0, "a", nil, &IntNode{0, 1}},
			{0, "", &IdentNode{0, "k"}, &IntNode{0, 2}},
		}}, "{ a: 1, [k]: 2 }"},
	}
	for _, test := range tests {
		if actual := test.node.String(); actual != test.expected {
			t.Errorf("expected %q, got %q", test.expected, actual)
		}
	}
}

func TestTemplateStrings(t *testing.T) {
	var el = &ElementNode{
		Tag: "div",
		Attrs: []*AttrNode{
			{0, "id", "app", false},
			{0, "hidden", "", true},
		},
		Directives: []*DirectiveNode{
			{Name: "if", Expr: &IdentNode{0, "ok"}, RawExpr: "ok"},
			{Name: "bind", Arg: "title", Expr: &IdentNode{0, "t"}, RawExpr: "t"},
			{Name: "on", Arg: "click", Modifiers: []string{"stop"}, Expr: &IdentNode{0, "go"}, RawExpr: "go"},
		},
		Children: []Node{
			&TextNode{0, "Hi "},
			&InterpolationNode{0, &IdentNode{0, "name"}},
		},
	}
	const expected = `<div id="app" hidden v-if="ok" :title="t" @click.stop="go">Hi {{ name }}</div>`
	if actual := el.String(); actual != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, actual)
	}
}

func TestForExprString(t *testing.T) {
	var n = &ForExprNode{0, "item", "key", "i", &IdentNode{0, "items"}, false}
	if actual := n.String(); actual != "(item, key, i) in items" {
		t.Errorf("got %q", actual)
	}
	n = &ForExprNode{0, "x", "", "", &IdentNode{0, "xs"}, true}
	if actual := n.String(); actual != "x of xs" {
		t.Errorf("got %q", actual)
	}
}
