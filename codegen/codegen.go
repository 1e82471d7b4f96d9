// Package codegen turns render-function IR into Javascript source.  The
// output targets the Vue 3 runtime helper API and comes in two shapes: a
// function body for evaluation with new Function, or an ES module.
package codegen

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vuet/vuet/ast"
	"github.com/vuet/vuet/ir"
	"github.com/vuet/vuet/template"
	"github.com/vuet/vuet/transform"
)

// Options for render function source generation.
type Options struct {
	// Formatter packages the output; nil means FunctionFormatter.
	Formatter Formatter

	// PrefixIdentifiers must match the option the IR was transformed with.
	// When false the render body is wrapped in with (_ctx).
	PrefixIdentifiers bool
}

// Generator produces Javascript render functions for the templates of a
// registry.
type Generator struct {
	registry *template.Registry
	opts     transform.Options
}

// NewGenerator returns a generator over the given registry.  The transform
// options decide scope prefixing, hoisting, and user globals.
func NewGenerator(registry *template.Registry, opts transform.Options) *Generator {
	return &Generator{registry, opts}
}

// ErrNotFound is returned when a template name is not in the registry.
var ErrNotFound = errors.New("template not found")

// WriteTemplate generates the render function for one template.
func (gen *Generator) WriteTemplate(out io.Writer, name string, opts Options) error {
	var tmpl, ok = gen.registry.Template(name)
	if !ok {
		return ErrNotFound
	}
	var root, err = transform.Transform(tmpl.Name, tmpl.Doc, gen.opts)
	if err != nil {
		return err
	}
	opts.PrefixIdentifiers = gen.opts.PrefixIdentifiers
	return Write(out, root, opts)
}

// Write generates the Javascript for one compiled template.
func Write(out io.Writer, root *ir.Root, opts Options) (err error) {
	defer errRecover(&err)

	var formatter = opts.Formatter
	if formatter == nil {
		formatter = FunctionFormatter{}
	}
	if _, ok := formatter.(ModuleFormatter); ok && !opts.PrefixIdentifiers {
		return errors.New("module output requires prefixed identifiers")
	}

	var s = &state{wr: out, prefix: opts.PrefixIdentifiers}
	var helpers = make([]string, len(root.Helpers))
	for i, h := range root.Helpers {
		helpers[i] = h.String()
	}

	if s.prefix {
		if len(helpers) > 0 {
			s.jsln(formatter.Bind(helpers))
			s.js("\n")
		}
	} else {
		s.jsln("var _Vue = ", RuntimeGlobalName)
		if len(root.Hoists) > 0 {
			s.bindHelpers(helpers, "_Vue")
		}
		s.js("\n")
	}

	for i, hoisted := range root.Hoists {
		s.indent()
		s.js("var _hoisted_", strconv.Itoa(i+1), " = ")
		s.walk(hoisted)
		s.js("\n")
	}
	if len(root.Hoists) > 0 {
		s.js("\n")
	}

	s.jsln(formatter.OpenRender())
	s.indentLevels++
	if !s.prefix {
		s.jsln("with (_ctx) {")
		s.indentLevels++
		if len(helpers) > 0 {
			s.bindHelpers(helpers, "_Vue")
			s.js("\n")
		}
	}

	for _, name := range root.Components {
		s.jsln("var _component_", name, " = _resolveComponent(", ast.QuoteJS(name), ")")
	}
	for _, name := range root.Directives {
		s.jsln("var ", directiveVar(name), " = _resolveDirective(", ast.QuoteJS(name), ")")
	}
	if len(root.Components)+len(root.Directives) > 0 {
		s.js("\n")
	}

	s.indent()
	s.js("return ")
	if root.Body == nil {
		s.js("null")
	} else {
		s.walk(root.Body)
	}
	s.js("\n")

	if !s.prefix {
		s.indentLevels--
		s.jsln("}")
	}
	s.indentLevels--
	s.jsln(formatter.CloseRender())
	return nil
}

type state struct {
	wr           io.Writer
	indentLevels int
	prefix       bool
}

// bindHelpers writes a var binding each helper to its _-prefixed name.
func (s *state) bindHelpers(helpers []string, source string) {
	for _, name := range helpers {
		s.jsln("var _", name, " = ", source, ".", name)
	}
}

// walk writes the expression for one IR node at the current position.
func (s *state) walk(node ir.Node) {
	switch node := node.(type) {
	case *ir.HoistRef:
		s.js("_hoisted_", strconv.Itoa(node.N))
	case *ir.TextCall:
		s.js("_createTextVNode(", node.Expr.Src)
		if node.PatchFlag != 0 {
			s.js(", ", flagArg(node.PatchFlag))
		}
		s.js(")")
	case *ir.Comment:
		s.js("_createCommentVNode(", ast.QuoteJS(node.Text), ")")
	case *ir.If:
		s.visitBranches(node.Branches)
	case *ir.For:
		s.visitFor(node)
	case *ir.SlotOutlet:
		s.visitSlotOutlet(node)
	case *ir.VNodeCall:
		s.visitVNode(node)
	default:
		s.errorf("unknown node type %T", node)
	}
}

// visitBranches writes a conditional chain as nested ternaries.  A chain
// without a final v-else falls through to a comment placeholder vnode.
func (s *state) visitBranches(branches []ir.IfBranch) {
	if len(branches) == 0 {
		s.js("_createCommentVNode('v-if', true)")
		return
	}
	var branch = branches[0]
	if branch.Cond.IsZero() {
		s.walk(branch.Node)
		return
	}
	s.js(branch.Cond.Src)
	s.indentLevels++
	s.js("\n")
	s.indent()
	s.js("? ")
	s.walk(branch.Node)
	s.js("\n")
	s.indent()
	s.js(": ")
	s.visitBranches(branches[1:])
	s.indentLevels--
}

func (s *state) visitFor(node *ir.For) {
	s.js("(_openBlock(true), _createElementBlock(_Fragment, null, _renderList(",
		node.Source.Src, ", function ", node.Params, " {")
	s.indentLevels++
	s.js("\n")
	s.indent()
	s.js("return ")
	s.walk(node.Node)
	s.indentLevels--
	s.js("\n")
	s.indent()
	s.js("}), ", flagArg(node.PatchFlag), "))")
}

func (s *state) visitSlotOutlet(node *ir.SlotOutlet) {
	s.js("_renderSlot(", s.ctx("$slots"), ", ", node.Name.Src)
	var hasFallback = len(node.Fallback) > 0
	if node.Props != nil || hasFallback {
		s.js(", ")
		if node.Props != nil {
			s.visitProps(node.Props)
		} else {
			s.js("{}")
		}
	}
	if hasFallback {
		s.js(", function () { return ")
		s.childArray(node.Fallback)
		s.js(" }")
	}
	s.js(")")
}

func (s *state) visitVNode(vn *ir.VNodeCall) {
	if vn.CacheIndex > 0 {
		var slot = strconv.Itoa(vn.CacheIndex - 1)
		s.js("_cache[", slot, "] || (_cache[", slot, "] = ")
		defer s.js(")")
	}
	if len(vn.Directives) > 0 {
		s.js("_withDirectives(")
		defer s.visitDirectives(vn.Directives)
	}
	if vn.IsBlock {
		s.js("(_openBlock(), ")
		defer s.js(")")
	}

	switch {
	case vn.IsBlock && vn.IsComponent:
		s.js("_createBlock(")
	case vn.IsBlock:
		s.js("_createElementBlock(")
	case vn.IsComponent:
		s.js("_createVNode(")
	default:
		s.js("_createElementVNode(")
	}
	if vn.IsFragment {
		s.js("_Fragment")
	} else {
		s.js(vn.Tag)
	}

	// omitted middle arguments are null-filled up to the last one present
	var haveDynProps = len(vn.DynamicProps) > 0
	var haveFlag = haveDynProps || vn.PatchFlag != 0
	var haveChildren = haveFlag || len(vn.Children) > 0 || vn.Slots != nil
	var haveProps = haveChildren || !vn.Props.IsZero()

	if haveProps {
		s.js(", ")
		if vn.Props.IsZero() {
			s.js("null")
		} else {
			s.visitProps(vn.Props)
		}
	}
	if haveChildren {
		s.js(", ")
		s.visitChildren(vn)
	}
	if haveFlag {
		s.js(", ", flagArg(vn.PatchFlag))
	}
	if haveDynProps {
		s.js(", [", quoteJoin(vn.DynamicProps), "]")
	}
	s.js(")")
}

func (s *state) visitChildren(vn *ir.VNodeCall) {
	switch {
	case vn.Slots != nil:
		s.visitSlots(vn.Slots)
	case len(vn.Children) == 0:
		s.js("null")
	case len(vn.Children) == 1 && !vn.IsFragment && !vn.IsComponent:
		// a sole text child is inlined as the children argument
		if text, ok := vn.Children[0].(*ir.TextCall); ok {
			s.js(text.Expr.Src)
			return
		}
		s.childArray(vn.Children)
	default:
		s.childArray(vn.Children)
	}
}

func (s *state) childArray(children []ir.Node) {
	s.js("[")
	s.indentLevels++
	for i, child := range children {
		if i > 0 {
			s.js(",")
		}
		s.js("\n")
		s.indent()
		s.walk(child)
	}
	s.indentLevels--
	s.js("\n")
	s.indent()
	s.js("]")
}

func (s *state) visitProps(props *ir.Props) {
	if len(props.Spreads) > 0 {
		if len(props.Props) == 0 && len(props.Spreads) == 1 {
			s.js(props.Spreads[0].Src)
			return
		}
		s.js("_mergeProps(")
		for i, spread := range props.Spreads {
			if i > 0 {
				s.js(", ")
			}
			s.js(spread.Src)
		}
		if len(props.Props) > 0 {
			s.js(", ")
			s.propsObject(props.Props)
		}
		s.js(")")
		return
	}
	if hasDynamicKey(props) {
		s.js("_normalizeProps(")
		s.propsObject(props.Props)
		s.js(")")
		return
	}
	s.propsObject(props.Props)
}

func (s *state) propsObject(props []ir.Prop) {
	s.js("{ ")
	for i, prop := range props {
		if i > 0 {
			s.js(", ")
		}
		if prop.Key.Static {
			s.js(keySrc(prop.Key.Src))
		} else {
			s.js("[", prop.Key.Src, "]")
		}
		s.js(": ", prop.Value.Src)
	}
	s.js(" }")
}

func hasDynamicKey(props *ir.Props) bool {
	for _, prop := range props.Props {
		if !prop.Key.Static {
			return true
		}
	}
	return false
}

func (s *state) visitSlots(slots *ir.Slots) {
	s.js("{")
	s.indentLevels++
	for _, slot := range slots.Slots {
		s.js("\n")
		s.indent()
		if slot.Name.Static {
			s.js(keySrc(slot.Name.Src))
		} else {
			s.js("[", slot.Name.Src, "]")
		}
		s.js(": _withCtx(function (", slot.Params, ") { return ")
		s.childArray(slot.Body)
		s.js(" }),")
	}
	s.js("\n")
	s.indent()
	if slots.Dynamic {
		s.js("_: 2 /* DYNAMIC */")
	} else {
		s.js("_: 1 /* STABLE */")
	}
	s.indentLevels--
	s.js("\n")
	s.indent()
	s.js("}")
}

// visitDirectives closes a _withDirectives wrapper with the directive tuples.
func (s *state) visitDirectives(apps []ir.DirectiveApp) {
	s.js(", [")
	s.indentLevels++
	for i, app := range apps {
		if i > 0 {
			s.js(",")
		}
		s.js("\n")
		s.indent()
		s.js("[")
		var ref = app.Helper.String()
		if app.Name != "" {
			s.js(directiveVar(app.Name))
		} else {
			s.js("_", ref)
		}
		var parts []string
		if !app.Value.IsZero() {
			parts = append(parts, app.Value.Src)
		}
		if !app.Arg.IsZero() {
			parts = fill(parts, 1)
			parts = append(parts, app.Arg.Src)
		}
		if len(app.Modifiers) > 0 {
			parts = fill(parts, 2)
			var mods = make([]string, len(app.Modifiers))
			for i, mod := range app.Modifiers {
				mods[i] = keySrc(mod) + ": true"
			}
			parts = append(parts, "{ "+strings.Join(mods, ", ")+" }")
		}
		for _, part := range parts {
			s.js(", ", part)
		}
		s.js("]")
	}
	s.indentLevels--
	s.js("\n")
	s.indent()
	s.js("])")
}

// fill pads the tuple with void 0 so later entries land in the right slot.
func fill(parts []string, upto int) []string {
	for len(parts) < upto {
		parts = append(parts, "void 0")
	}
	return parts
}

// ctx returns a reference to an instance property, through _ctx when
// identifier prefixing is on.
func (s *state) ctx(name string) string {
	if s.prefix {
		return "_ctx." + name
	}
	return name
}

func flagArg(flag ir.PatchFlag) string {
	return strconv.Itoa(int(flag)) + " /* " + flag.String() + " */"
}

func directiveVar(name string) string {
	return "_directive_" + strings.Replace(name, "-", "_", -1)
}

// keySrc renders an object key, quoting it unless it is a valid identifier.
func keySrc(key string) string {
	for i, r := range key {
		var ok = r == '_' || r == '$' ||
			'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' ||
			i > 0 && '0' <= r && r <= '9'
		if !ok {
			return ast.QuoteJS(key)
		}
	}
	if key == "" {
		return "''"
	}
	return key
}

func quoteJoin(items []string) string {
	var quoted = make([]string, len(items))
	for i, item := range items {
		quoted[i] = ast.QuoteJS(item)
	}
	return strings.Join(quoted, ", ")
}

func (s *state) js(args ...string) {
	for _, arg := range args {
		if _, err := io.WriteString(s.wr, arg); err != nil {
			panic(err)
		}
	}
}

func (s *state) jsln(args ...string) {
	s.indent()
	s.js(args...)
	s.js("\n")
}

func (s *state) indent() {
	s.js(strings.Repeat("  ", s.indentLevels))
}

func (s *state) errorf(format string, args ...interface{}) {
	panic(fmt.Errorf(format, args...))
}

func errRecover(errp *error) {
	if e := recover(); e != nil {
		var ok bool
		if *errp, ok = e.(error); !ok {
			panic(e)
		}
	}
}
