package parse

import (
	"strings"
	"testing"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/errortypes"
)

// TestParseRoundTrip relies on the AST String() methods reconstructing the
// source, which exercises most of the parser in one table.
func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, <b>World</b>!", "Hello, <b>World</b>!"},
		{"{{ msg }}", "{{ msg }}"},
		{"{{ user.name }}", "{{ user.name }}"},
		{"<div>\n  <b>a</b>\n</div>", "<div><b>a</b></div>"},
		{"a\n  b", "a b"},
		{"a &lt; b", "a < b"},
		{`<p title="a&amp;b">x</p>`, `<p title="a&b">x</p>`},
		{"<br/>", "<br/>"},
		{`<input v-model="text">`, `<input v-model="text">`},
		{`<input v-model.lazy="text">`, `<input v-model.lazy="text">`},
		{`<p v-if="ok">y</p>`, `<p v-if="ok">y</p>`},
		{`<p v-else>n</p>`, `<p v-else>n</p>`},
		{`<li v-for="(item, i) in items" :key="item.id">{{ item.name }}</li>`,
			`<li v-for="(item, i) in items" :key="item.id">{{ item.name }}</li>`},
		{`<a :[key]="v">x</a>`, `<a :[key]="v">x</a>`},
		{`<button @click.stop="go()">x</button>`, `<button @click.stop="go()">x</button>`},
		{`<form @submit.prevent>x</form>`, `<form @submit.prevent>x</form>`},
		{`<template #header="{ item }">x</template>`, `<template #header="{ item }">x</template>`},
		{"<!--x-->", "<!--x-->"},
		{"<pre>a\n  b</pre>", "<pre>a\n  b</pre>"},
		{`<span v-pre>{{ raw }}</span>`, `<span v-pre>{{ raw }}</span>`},
		{`<span v-pre>{{msg}} and {{  n  }}</span>`, `<span v-pre>{{msg}} and {{  n  }}</span>`},
	}
	for _, test := range tests {
		node, err := Parse("test.vue", test.input)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		if actual := node.String(); actual != test.expected {
			t.Errorf("%s:\nexpected: %s\n     got: %s", test.input, test.expected, actual)
		}
	}
}

func TestParseElement(t *testing.T) {
	node, err := Parse("test.vue", `<div id="app" hidden v-show="visible">x</div>`)
	if err != nil {
		t.Fatal(err)
	}
	el, ok := node.Body[0].(*ast.ElementNode)
	if !ok {
		t.Fatalf("expected ElementNode, got %T", node.Body[0])
	}
	if el.Tag != "div" || el.IsVoid || el.SelfClosing {
		t.Errorf("bad element: %#v", el)
	}
	if len(el.Attrs) != 2 || el.Attrs[0].Name != "id" || el.Attrs[0].Value != "app" {
		t.Errorf("bad attrs: %v", el.Attrs)
	}
	if !el.Attrs[1].Bare {
		t.Errorf("hidden should be a bare attribute")
	}
	if len(el.Directives) != 1 || el.Directives[0].Name != "show" {
		t.Errorf("bad directives: %v", el.Directives)
	}
}

func TestParseVFor(t *testing.T) {
	tests := []struct {
		input             string
		value, key, index string
		source            string
		of                bool
	}{
		{`<li v-for="item in items">x</li>`, "item", "", "", "items", false},
		{`<li v-for="(item, i) in list.items">x</li>`, "item", "i", "", "list.items", false},
		{`<li v-for="(v, k, i) in obj">x</li>`, "v", "k", "i", "obj", false},
		{`<li v-for="{ id } of rows">x</li>`, "{ id }", "", "", "rows", true},
		{`<li v-for="n in 10">x</li>`, "n", "", "", "10", false},
	}
	for _, test := range tests {
		node, err := Parse("test.vue", test.input)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		el := node.Body[0].(*ast.ElementNode)
		fe, ok := el.Directives[0].Expr.(*ast.ForExprNode)
		if !ok {
			t.Errorf("%s: expected ForExprNode, got %T", test.input, el.Directives[0].Expr)
			continue
		}
		if fe.Value != test.value || fe.Key != test.key || fe.Index != test.index ||
			fe.Source.String() != test.source || fe.Of != test.of {
			t.Errorf("%s: got %s", test.input, fe)
		}
	}
}

func TestParseSlotDefault(t *testing.T) {
	node, err := Parse("test.vue", `<template v-slot="props">x</template>`)
	if err != nil {
		t.Fatal(err)
	}
	dir := node.Body[0].(*ast.ElementNode).Directives[0]
	if dir.Name != "slot" || dir.Arg != "default" {
		t.Errorf("expected default slot, got %v", dir)
	}
	if ident, ok := dir.Expr.(*ast.IdentNode); !ok || ident.Name != "props" {
		t.Errorf("bad slot props: %v", dir.Expr)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		substr string
	}{
		{"<div>", "unclosed element"},
		{"<div></span>", "unexpected </span>"},
		{"</div>", "unexpected closing tag"},
		{"{{ x", "unclosed interpolation"},
		{`<p v-else="x">a</p>`, "v-else does not take an expression"},
		{`<p v-if>a</p>`, "v-if requires an expression"},
		{`<p v-for="item">a</p>`, "v-for expects"},
		{"{{ (a }}", "parenthesized"},
		{"{{ a => b }}", "arrow functions"},
	}
	for _, test := range tests {
		_, err := Parse("test.vue", test.input)
		if err == nil {
			t.Errorf("%s: expected error", test.input)
			continue
		}
		if !strings.Contains(err.Error(), test.substr) {
			t.Errorf("%s: expected error containing %q, got: %v", test.input, test.substr, err)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	var _, err = Parse("widget.vue", "<div>\n  {{ 1 + }}\n</div>")
	if err == nil {
		t.Fatal("expected error")
	}
	pos := errortypes.ToErrSourcePos(err)
	if pos == nil {
		t.Fatalf("expected a positioned error, got: %v", err)
	}
	if pos.File() != "widget.vue" || pos.Line() != 2 {
		t.Errorf("expected widget.vue:2, got %s:%d", pos.File(), pos.Line())
	}
}
