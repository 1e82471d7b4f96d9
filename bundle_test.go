package vuet

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vuet/vuet/data"
)

func TestBundleCompile(t *testing.T) {
	var registry, err = NewBundle().
		AddTemplateString("todo-list.vue", `<ul><todo-item v-for="item in items" :key="item.id" :label="item.label"/></ul>`).
		AddTemplateString("todo-item.vue", `<li>{{ label }}</li>`).
		Compile()
	if err != nil {
		t.Fatal(err)
	}
	var names = registry.Names()
	if len(names) != 2 || names[0] != "TodoItem" || names[1] != "TodoList" {
		t.Errorf("got template names %v", names)
	}
	if _, ok := registry.ResolveComponent("todo-item"); !ok {
		t.Errorf("kebab-case lookup failed")
	}
}

func TestBundleRender(t *testing.T) {
	var renderer, err = NewBundle().
		AddTemplateString("greeting.vue", `<p>Hello {{ name }}</p>`).
		CompileToRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, "Greeting", map[string]interface{}{"name": "world"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<p>Hello world</p>" {
		t.Errorf("got %q", buf.String())
	}
}

func TestBundleGlobals(t *testing.T) {
	var renderer, err = NewBundle().
		AddGlobalsMap(data.Map{"VERSION": data.String("1.2.3")}).
		AddTemplateString("footer.vue", `<footer>v{{ VERSION }}</footer>`).
		CompileToRenderer()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, "Footer", nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<footer>v1.2.3</footer>" {
		t.Errorf("got %q", buf.String())
	}
}

func TestBundleDuplicateGlobal(t *testing.T) {
	var _, err = NewBundle().
		AddGlobalsMap(data.Map{"DEBUG": data.Bool(true)}).
		AddGlobalsMap(data.Map{"DEBUG": data.Bool(false)}).
		AddTemplateString("app.vue", `<div/>`).
		Compile()
	if err == nil {
		t.Errorf("expected duplicate global error")
	}
}

func TestBundleDuplicateTemplate(t *testing.T) {
	var _, err = NewBundle().
		AddTemplateString("app.vue", `<div/>`).
		AddTemplateString("widgets/app.vue", `<span/>`).
		Compile()
	if err == nil || !strings.Contains(err.Error(), "already defined") {
		t.Errorf("expected duplicate template error, got %v", err)
	}
}

func TestBundleParseError(t *testing.T) {
	var _, err = NewBundle().
		AddTemplateString("bad.vue", `<div>{{ 1 + }}</div>`).
		Compile()
	if err == nil {
		t.Errorf("expected parse error")
	}
}

func TestBundleDirectiveError(t *testing.T) {
	var _, err = NewBundle().
		AddTemplateString("bad.vue", `<div><p v-else>hm</p></div>`).
		Compile()
	if err == nil || !strings.Contains(err.Error(), "v-else") {
		t.Errorf("expected directive error, got %v", err)
	}
}

func TestBundleTemplateDir(t *testing.T) {
	var dir = t.TempDir()
	var files = map[string]string{
		"todo-item.vue": `<li>{{ label }}</li>`,
		"notes.txt":     `not a template`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	var registry, err = NewBundle().AddTemplateDir(dir).Compile()
	if err != nil {
		t.Fatal(err)
	}
	var names = registry.Names()
	if len(names) != 1 || names[0] != "TodoItem" {
		t.Errorf("got template names %v", names)
	}
}

func TestParseGlobals(t *testing.T) {
	var input = `
// app settings
APP_NAME = 'todos'
MAX_ITEMS = 10 * 10
DEBUG = false
PI_ISH = 3.14
`
	var globals, err = ParseGlobals(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	var expected = data.Map{
		"APP_NAME":  data.String("todos"),
		"MAX_ITEMS": data.Int(100),
		"DEBUG":     data.Bool(false),
		"PI_ISH":    data.Float(3.14),
	}
	if len(globals) != len(expected) {
		t.Fatalf("got %v", globals)
	}
	for k, v := range expected {
		if !globals[k].Equals(v) {
			t.Errorf("global %s: expected %v, got %v", k, v, globals[k])
		}
	}
}

func TestParseGlobalsErrors(t *testing.T) {
	var tests = []string{
		"NO_EQUALS",
		"X = 1\nX = 2",
		"BAD = 1 +",
		"DYNAMIC = someVariable",
	}
	for _, input := range tests {
		if _, err := ParseGlobals(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}
