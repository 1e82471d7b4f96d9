package codegen

import (
	"bytes"
	"testing"

	"github.com/andreyvit/diff"

	"github.com/vuet/vuet/parse"
	"github.com/vuet/vuet/transform"
)

func genCode(t *testing.T, src string, topts transform.Options, opts Options) string {
	t.Helper()
	doc, err := parse.Parse("test.vue", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root, err := transform.Transform("test.vue", doc, topts)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	var buf bytes.Buffer
	opts.PrefixIdentifiers = topts.PrefixIdentifiers
	if err := Write(&buf, root, opts); err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf.String()
}

func expectCode(t *testing.T, actual, expected string) {
	t.Helper()
	if actual != expected {
		t.Errorf("generated code differs:\n%v", diff.LineDiff(expected, actual))
	}
}

func TestFunctionMode(t *testing.T) {
	actual := genCode(t, `<div id="app">{{ msg }}</div>`,
		transform.Options{PrefixIdentifiers: true}, Options{})
	expectCode(t, actual, `var _openBlock = Vue.openBlock
var _createElementBlock = Vue.createElementBlock
var _toDisplayString = Vue.toDisplayString

return function render(_ctx, _cache) {
  return (_openBlock(), _createElementBlock('div', { id: 'app' }, _toDisplayString(_ctx.msg), 1 /* TEXT */))
}
`)
}

func TestWithBlockMode(t *testing.T) {
	actual := genCode(t, `<div id="app">{{ msg }}</div>`, transform.Options{}, Options{})
	expectCode(t, actual, `var _Vue = Vue

return function render(_ctx, _cache) {
  with (_ctx) {
    var _openBlock = _Vue.openBlock
    var _createElementBlock = _Vue.createElementBlock
    var _toDisplayString = _Vue.toDisplayString

    return (_openBlock(), _createElementBlock('div', { id: 'app' }, _toDisplayString(msg), 1 /* TEXT */))
  }
}
`)
}

func TestModuleMode(t *testing.T) {
	src := `<div>
  <p v-if="ok">yes</p>
  <p v-else>no</p>
  <ul>
    <li v-for="item in items" :key="item.id">{{ item.name }}</li>
  </ul>
</div>`
	actual := genCode(t, src,
		transform.Options{PrefixIdentifiers: true}, Options{Formatter: ModuleFormatter{}})
	expectCode(t, actual, `import { Fragment as _Fragment, openBlock as _openBlock, createElementBlock as _createElementBlock, createElementVNode as _createElementVNode, toDisplayString as _toDisplayString, renderList as _renderList } from "vue"

export function render(_ctx, _cache) {
  return (_openBlock(), _createElementBlock('div', null, [
    _ctx.ok
      ? (_openBlock(), _createElementBlock('p', { key: 0 }, 'yes'))
      : (_openBlock(), _createElementBlock('p', { key: 1 }, 'no')),
    _createElementVNode('ul', null, [
      (_openBlock(true), _createElementBlock(_Fragment, null, _renderList(_ctx.items, function (item) {
        return (_openBlock(), _createElementBlock('li', { key: item.id }, _toDisplayString(item.name), 1 /* TEXT */))
      }), 128 /* KEYED_FRAGMENT */))
    ])
  ]))
}
`)
}

func TestHoistedConstants(t *testing.T) {
	actual := genCode(t, `<div><p class="big">hello</p><p>{{ n }}</p></div>`,
		transform.Options{PrefixIdentifiers: true, HoistStatic: true}, Options{})
	expectCode(t, actual, `var _openBlock = Vue.openBlock
var _createElementBlock = Vue.createElementBlock
var _createElementVNode = Vue.createElementVNode
var _toDisplayString = Vue.toDisplayString

var _hoisted_1 = _createElementVNode('p', { class: 'big' }, 'hello', -1 /* HOISTED */)

return function render(_ctx, _cache) {
  return (_openBlock(), _createElementBlock('div', null, [
    _hoisted_1,
    _createElementVNode('p', null, _toDisplayString(_ctx.n), 1 /* TEXT */)
  ]))
}
`)
}

func TestDirectiveWrapping(t *testing.T) {
	actual := genCode(t, `<input v-model="name">`,
		transform.Options{PrefixIdentifiers: true}, Options{})
	expectCode(t, actual, `var _openBlock = Vue.openBlock
var _createElementBlock = Vue.createElementBlock
var _withDirectives = Vue.withDirectives
var _vModelText = Vue.vModelText

return function render(_ctx, _cache) {
  return _withDirectives((_openBlock(), _createElementBlock('input', { 'onUpdate:modelValue': function ($event) { (_ctx.name) = $event } }, null, 520 /* PROPS, NEED_PATCH */, ['onUpdate:modelValue'])), [
    [_vModelText, _ctx.name]
  ])
}
`)
}

func TestComponentWithSlots(t *testing.T) {
	actual := genCode(t, `<my-item :id="id"><template #body>text</template></my-item>`,
		transform.Options{PrefixIdentifiers: true}, Options{})
	expectCode(t, actual, `var _openBlock = Vue.openBlock
var _createBlock = Vue.createBlock
var _createTextVNode = Vue.createTextVNode
var _resolveComponent = Vue.resolveComponent
var _withCtx = Vue.withCtx

return function render(_ctx, _cache) {
  var _component_MyItem = _resolveComponent('MyItem')

  return (_openBlock(), _createBlock(_component_MyItem, { id: _ctx.id }, {
    body: _withCtx(function () { return [
      _createTextVNode('text')
    ] }),
    _: 1 /* STABLE */
  }, 8 /* PROPS */, ['id']))
}
`)
}

func TestModuleModeRequiresPrefixing(t *testing.T) {
	doc, err := parse.Parse("test.vue", `<p>x</p>`)
	if err != nil {
		t.Fatal(err)
	}
	root, err := transform.Transform("test.vue", doc, transform.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, root, Options{Formatter: ModuleFormatter{}}); err == nil {
		t.Error("expected an error for module output without prefixing")
	}
}
