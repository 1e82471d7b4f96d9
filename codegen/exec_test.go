package codegen

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/robertkrimen/otto"

	"github.com/vuet/vuet/parse"
	"github.com/vuet/vuet/transform"
)

// The exec tests run generated render functions under otto against the stub
// runtime in testdata/runtime.js and compare the serialized HTML.

type d map[string]interface{}

type execTest struct {
	name     string
	input    string
	data     d
	output   string
	noPrefix bool
	hoist    bool
}

func TestExecBasic(t *testing.T) {
	runExecTests(t, []execTest{
		{"static", `<p>hello</p>`, nil, `<p>hello</p>`, false, false},
		{"interpolation", `<div id="app">{{ msg }}</div>`,
			d{"msg": "hello"}, `<div id="app">hello</div>`, false, false},
		{"escaping", `<p>{{ html }}</p>`,
			d{"html": "<b>&</b>"}, `<p>&lt;b&gt;&amp;&lt;/b&gt;</p>`, false, false},
		{"constant folding", `<p>{{ 1 + 2 }}</p>`, nil, `<p>3</p>`, false, false},
		{"mixed text", `<p>a {{ n }} b</p>`, d{"n": 5}, `<p>a 5 b</p>`, false, false},
		{"expressions", `<p>{{ user.name + '!' }}</p>`,
			d{"user": d{"name": "Rob"}}, `<p>Rob!</p>`, false, false},
		{"ternary", `<p>{{ ok ? 'yes' : 'no' }}</p>`, d{"ok": false}, `<p>no</p>`, false, false},
		{"null prints empty", `<p>{{ missing }}</p>`, nil, `<p></p>`, false, false},
		{"multiple roots", `<p>a</p><p>b</p>`, nil, `<p>a</p><p>b</p>`, false, false},
		{"comment", `<div><!-- note --></div>`, nil, `<div><!-- note --></div>`, false, false},
		{"with block", `<div id="app">{{ msg }}</div>`,
			d{"msg": "hi"}, `<div id="app">hi</div>`, true, false},
	})
}

func TestExecConditionals(t *testing.T) {
	var chain = `<p v-if="n > 0">pos</p><p v-else-if="n < 0">neg</p><p v-else>zero</p>`
	runExecTests(t, []execTest{
		{"if true", chain, d{"n": 2}, `<p>pos</p>`, false, false},
		{"elseif", chain, d{"n": -2}, `<p>neg</p>`, false, false},
		{"else", chain, d{"n": 0}, `<p>zero</p>`, false, false},
		{"lone if false", `<p v-if="ok">x</p>`, d{"ok": false}, `<!--v-if-->`, false, false},
		{"lone if true", `<p v-if="ok">x</p>`, d{"ok": true}, `<p>x</p>`, false, false},
	})
}

func TestExecFor(t *testing.T) {
	runExecTests(t, []execTest{
		{"range", `<li v-for="n in 3">{{ n }}</li>`, nil,
			`<li>1</li><li>2</li><li>3</li>`, false, false},
		{"keyed list", `<li v-for="item in items" :key="item.id">{{ item.name }}</li>`,
			d{"items": []interface{}{d{"id": 1, "name": "a"}, d{"id": 2, "name": "b"}}},
			`<li>a</li><li>b</li>`, false, false},
		{"index alias", `<li v-for="(item, i) in items">{{ i }}:{{ item }}</li>`,
			d{"items": []interface{}{"x", "y"}},
			`<li>0:x</li><li>1:y</li>`, false, false},
		{"object", `<span v-for="(v, k) in obj">{{ k }}={{ v }}</span>`,
			d{"obj": d{"a": 1, "b": 2}},
			`<span>a=1</span><span>b=2</span>`, false, false},
		{"empty list", `<li v-for="item in items">{{ item }}</li>`,
			d{"items": []interface{}{}}, ``, false, false},
	})
}

func TestExecBindings(t *testing.T) {
	runExecTests(t, []execTest{
		{"class object", `<div :class="{ active: isOn }">x</div>`,
			d{"isOn": true}, `<div class="active">x</div>`, false, false},
		{"class object off", `<div :class="{ active: isOn }">x</div>`,
			d{"isOn": false}, `<div>x</div>`, false, false},
		{"class merge", `<div class="a" :class="extra">x</div>`,
			d{"extra": "b"}, `<div class="a b">x</div>`, false, false},
		{"style object", `<div :style="{ fontSize: size }">x</div>`,
			d{"size": "12px"}, `<div style="font-size:12px;">x</div>`, false, false},
		{"boolean attr true", `<button :disabled="off">x</button>`,
			d{"off": true}, `<button disabled>x</button>`, false, false},
		{"boolean attr false", `<button :disabled="off">x</button>`,
			d{"off": false}, `<button>x</button>`, false, false},
		{"spread", `<div v-bind="attrs">x</div>`,
			d{"attrs": d{"id": "a"}}, `<div id="a">x</div>`, false, false},
		{"handlers skipped", `<button @click.prevent="go">go</button>`,
			nil, `<button>go</button>`, false, false},
	})
}

func TestExecDirectives(t *testing.T) {
	runExecTests(t, []execTest{
		{"show true", `<div v-show="on">x</div>`, d{"on": true}, `<div>x</div>`, false, false},
		{"show false", `<div v-show="on">x</div>`,
			d{"on": false}, `<div style="display:none;">x</div>`, false, false},
		{"model", `<input v-model="name">`, d{"name": "x"}, `<input>`, false, false},
		{"html", `<div v-html="raw"></div>`,
			d{"raw": "<b>x</b>"}, `<div><b>x</b></div>`, false, false},
		{"text", `<div v-text="msg"></div>`,
			d{"msg": "<b>"}, `<div>&lt;b&gt;</div>`, false, false},
	})
}

func TestExecSlots(t *testing.T) {
	runExecTests(t, []execTest{
		{"component default slot", `<my-thing>hi</my-thing>`, nil, `hi`, false, false},
		{"component slot interpolation", `<my-thing><p>{{ msg }}</p></my-thing>`,
			d{"msg": "deep"}, `<p>deep</p>`, false, false},
		{"outlet fallback", `<div><slot>fallback</slot></div>`,
			nil, `<div>fallback</div>`, false, false},
		{"named outlet fallback", `<div><slot name="side"><p>side</p></slot></div>`,
			nil, `<div><p>side</p></div>`, false, false},
	})
}

func TestExecHoisting(t *testing.T) {
	runExecTests(t, []execTest{
		{"hoisted static", `<div><p class="big">hi</p><p>{{ n }}</p></div>`,
			d{"n": 1}, `<div><p class="big">hi</p><p>1</p></div>`, false, true},
		{"hoisted tree", `<div><ul><li>a</li><li>b</li></ul>{{ n }}</div>`,
			d{"n": 2}, `<div><ul><li>a</li><li>b</li></ul>2</div>`, false, true},
	})
}

// TestExecCacheReuse renders twice with a shared cache and verifies that the
// v-once subtree keeps its first-render content.
func TestExecCacheReuse(t *testing.T) {
	var vm = initVM(t)
	var code = genCode(t, `<div><p v-once>{{ msg }}</p><p>{{ msg }}</p></div>`,
		transform.Options{PrefixIdentifiers: true}, Options{})
	if _, err := vm.Run("var render = (function () {\n" + code + "})();"); err != nil {
		t.Fatalf("compile error: %v\n%v", err, numberLines(bytes.NewBufferString(code)))
	}
	val, err := vm.Run(`
var cache = [];
var first = Vue.renderToString(render({ msg: 'a' }, cache));
var second = Vue.renderToString(render({ msg: 'b' }, cache));
first + '|' + second;`)
	if err != nil {
		t.Fatal(err)
	}
	var expected = "<div><p>a</p><p>a</p></div>|<div><p>a</p><p>b</p></div>"
	if val.String() != expected {
		t.Errorf("expected %q, got %q", expected, val.String())
	}
}

func runExecTests(t *testing.T, tests []execTest) {
	var vm = initVM(t)
	for _, test := range tests {
		var js = vm.Copy()

		doc, err := parse.Parse(test.name, test.input)
		if err != nil {
			t.Errorf("%s: parse error: %v", test.name, err)
			continue
		}
		root, err := transform.Transform(test.name, doc, transform.Options{
			PrefixIdentifiers: !test.noPrefix,
			HoistStatic:       test.hoist,
		})
		if err != nil {
			t.Errorf("%s: transform error: %v", test.name, err)
			continue
		}
		var buf bytes.Buffer
		if err := Write(&buf, root, Options{PrefixIdentifiers: !test.noPrefix}); err != nil {
			t.Errorf("%s: write error: %v", test.name, err)
			continue
		}

		var source = "var render = (function () {\n" + buf.String() + "})();"
		if _, err := js.Run(source); err != nil {
			t.Errorf("%s: compile error: %v\n%v", test.name, err, numberLines(&buf))
			continue
		}

		var data = test.data
		if data == nil {
			data = d{}
		}
		var jsonData, _ = json.Marshal(data)
		var renderStatement = fmt.Sprintf(
			"Vue.renderToString(render(JSON.parse(%q), []));", string(jsonData))
		switch actual, err := js.Run(renderStatement); {
		case err != nil:
			t.Errorf("%s: render error: %v\n%v\n%v",
				test.name, err, numberLines(bytes.NewBufferString(source)), renderStatement)
		case actual.String() != test.output:
			t.Errorf("%s: expected:\n%v\n\nactual:\n%v\n%v",
				test.name, test.output, actual.String(), numberLines(bytes.NewBufferString(source)))
		}
	}
}

func initVM(t *testing.T) *otto.Otto {
	runtime, err := os.ReadFile("testdata/runtime.js")
	if err != nil {
		t.Fatal(err)
	}
	var vm = otto.New()
	if _, err := vm.Run(string(runtime)); err != nil {
		t.Fatalf("runtime.js: %v", err)
	}
	return vm
}

func numberLines(src io.Reader) string {
	var buf bytes.Buffer
	var scanner = bufio.NewScanner(src)
	var i = 1
	for scanner.Scan() {
		fmt.Fprintf(&buf, "%03d ", i)
		buf.Write(scanner.Bytes())
		buf.WriteString("\n")
		i++
	}
	return buf.String()
}
